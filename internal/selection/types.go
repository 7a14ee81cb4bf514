package selection

import (
	language "github.com/hanpama/gqlshape/internal/language"
	schema "github.com/hanpama/gqlshape/internal/schema"
)

// TypeOracle answers the schema questions the collector needs.
// *schema.Schema implements it.
type TypeOracle interface {
	TryGetType(name string) (*schema.Type, bool)
	TryGetField(t *schema.Type, name string) (*schema.Field, bool)
	IsAbstractType(t *schema.Type) bool
	PossibleTypes(t *schema.Type) []*schema.Type
	TypeConditionApplies(cond, current *schema.Type) bool
}

type FragmentKind int

const (
	FragmentKindNamed FragmentKind = iota
	FragmentKindInline
)

func (k FragmentKind) String() string {
	if k == FragmentKindInline {
		return "INLINE"
	}
	return "NAMED"
}

// Fragment is a type-guarded selection set. Named fragments carry their
// definition name; inline fragments carry the name of their type condition.
type Fragment struct {
	Name          string
	Kind          FragmentKind
	TypeCondition *schema.Type
	SelectionSet  language.SelectionSet
}

// FieldSelection is one response entry of a merged selection set.
type FieldSelection struct {
	Field  *schema.Field
	Syntax *language.Field
	Path   *Path

	// IsConditional is reserved for @skip/@include aware merging and is
	// always false.
	IsConditional bool
}

// ResponseName returns the alias if present, else the field name.
func (f *FieldSelection) ResponseName() string { return responseName(f.Syntax) }

func responseName(f *language.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// FragmentNode records one applied fragment and the fragments applied inside it.
type FragmentNode struct {
	Fragment *Fragment
	Children []*FragmentNode
}

// SelectionSet is the merged selection for one type.
type SelectionSet struct {
	Type          *schema.Type
	Syntax        language.SelectionSet
	Fields        []*FieldSelection
	FragmentNodes []*FragmentNode
}

// Field returns the entry for responseName, or nil.
func (s *SelectionSet) Field(responseName string) *FieldSelection {
	for _, f := range s.Fields {
		if f.ResponseName() == responseName {
			return f
		}
	}
	return nil
}

// SelectionSetVariants is the result of resolving a selection set.
// Variants is nil unless the possible types of an abstract type merge to
// different shapes; then it holds one entry per possible type.
type SelectionSetVariants struct {
	ReturnType *SelectionSet
	Variants   []*SelectionSet
}

// IsUniform reports whether a single shape describes every possible type.
func (v *SelectionSetVariants) IsUniform() bool { return v.Variants == nil }

// VariantFor returns the merged selection for the named possible type. For
// uniform results it returns ReturnType.
func (v *SelectionSetVariants) VariantFor(typeName string) *SelectionSet {
	if v.Variants == nil {
		return v.ReturnType
	}
	for _, s := range v.Variants {
		if s.Type.Name == typeName {
			return s
		}
	}
	return nil
}
