package selection

import (
	"fmt"

	language "github.com/hanpama/gqlshape/internal/language"
	schema "github.com/hanpama/gqlshape/internal/schema"
)

// fragmentRegistry creates fragments lazily and hands out the same instance
// for the same name or inline span for the rest of the session.
type fragmentRegistry struct {
	oracle    TypeOracle
	document  *language.QueryDocument
	fragments map[string]*Fragment
}

func newFragmentRegistry(oracle TypeOracle, document *language.QueryDocument) *fragmentRegistry {
	return &fragmentRegistry{
		oracle:    oracle,
		document:  document,
		fragments: make(map[string]*Fragment),
	}
}

// resolve returns the fragment a spread refers to.
func (r *fragmentRegistry) resolve(spread *language.FragmentSpread) (*Fragment, error) {
	if f, ok := r.fragments[spread.Name]; ok {
		return f, nil
	}
	def := r.definition(spread.Name)
	if def == nil {
		return nil, &UnresolvedFragmentError{Name: spread.Name, Position: spread.Position}
	}
	cond, ok := r.oracle.TryGetType(def.TypeCondition)
	if !ok {
		return nil, &UnresolvedTypeError{Name: def.TypeCondition, Position: def.Position}
	}
	f := &Fragment{
		Name:          def.Name,
		Kind:          FragmentKindNamed,
		TypeCondition: cond,
		SelectionSet:  def.SelectionSet,
	}
	r.fragments[spread.Name] = f
	return f, nil
}

func (r *fragmentRegistry) definition(name string) *language.FragmentDefinition {
	if r.document == nil {
		return nil
	}
	return r.document.Fragments.ForName(name)
}

// resolveInline returns the fragment for an inline fragment. Without a type
// condition the fragment is guarded by parent, the type it was first
// encountered under.
func (r *fragmentRegistry) resolveInline(inline *language.InlineFragment, parent *schema.Type) (*Fragment, error) {
	key := inlineFragmentKey(inline)
	if f, ok := r.fragments[key]; ok {
		return f, nil
	}
	cond := parent
	if inline.TypeCondition != "" {
		t, ok := r.oracle.TryGetType(inline.TypeCondition)
		if !ok {
			return nil, &UnresolvedTypeError{Name: inline.TypeCondition, Position: inline.Position}
		}
		cond = t
	}
	f := &Fragment{
		Name:          cond.Name,
		Kind:          FragmentKindInline,
		TypeCondition: cond,
		SelectionSet:  inline.SelectionSet,
	}
	r.fragments[key] = f
	return f, nil
}

// inlineFragmentKey derives a name from the fragment's source span. The
// caret cannot start a GraphQL name, so keys never collide with named
// fragments.
func inlineFragmentKey(inline *language.InlineFragment) string {
	if inline.Position == nil {
		return fmt.Sprintf("^%p", inline)
	}
	return fmt.Sprintf("^%d_%d", inline.Position.Start, inline.Position.End)
}
