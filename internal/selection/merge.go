package selection

import (
	"fmt"

	language "github.com/hanpama/gqlshape/internal/language"
	schema "github.com/hanpama/gqlshape/internal/schema"
)

// fieldAccumulator preserves first-occurrence order of response names.
type fieldAccumulator struct {
	fields []*FieldSelection
	index  map[string]int

	// named fragments currently being expanded
	active map[*Fragment]bool
}

func newFieldAccumulator() *fieldAccumulator {
	return &fieldAccumulator{
		index:  make(map[string]int),
		active: make(map[*Fragment]bool),
	}
}

func (a *fieldAccumulator) has(responseName string) bool {
	_, ok := a.index[responseName]
	return ok
}

func (a *fieldAccumulator) add(responseName string, f *FieldSelection) {
	a.index[responseName] = len(a.fields)
	a.fields = append(a.fields, f)
}

// merge collects the fields of selectionSet that apply to typ.
func (c *Collector) merge(selectionSet language.SelectionSet, typ *schema.Type, path *Path) (*SelectionSet, error) {
	acc := newFieldAccumulator()
	var nodes []*FragmentNode
	if err := c.collectFields(selectionSet, typ, path, acc, &nodes); err != nil {
		return nil, err
	}
	return &SelectionSet{
		Type:          typ,
		Syntax:        selectionSet,
		Fields:        acc.fields,
		FragmentNodes: nodes,
	}, nil
}

func (c *Collector) collectFields(selectionSet language.SelectionSet, typ *schema.Type, path *Path, acc *fieldAccumulator, nodes *[]*FragmentNode) error {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			if err := c.collectField(sel, typ, path, acc); err != nil {
				return err
			}

		case *language.FragmentSpread:
			fragment, err := c.fragments.resolve(sel)
			if err != nil {
				return err
			}
			if acc.active[fragment] {
				return &FragmentCycleError{Name: fragment.Name, Position: sel.Position}
			}
			acc.active[fragment] = true
			err = c.collectFragment(fragment, typ, path, acc, nodes)
			delete(acc.active, fragment)
			if err != nil {
				return err
			}

		case *language.InlineFragment:
			fragment, err := c.fragments.resolveInline(sel, typ)
			if err != nil {
				return err
			}
			if err := c.collectFragment(fragment, typ, path, acc, nodes); err != nil {
				return err
			}

		default:
			return fmt.Errorf("unsupported selection %T", selection)
		}
	}
	return nil
}

func (c *Collector) collectField(field *language.Field, typ *schema.Type, path *Path, acc *fieldAccumulator) error {
	def, ok := c.oracle.TryGetField(typ, field.Name)
	if !ok {
		return &UnknownFieldError{
			TypeName:  typ.Name,
			FieldName: field.Name,
			Path:      path,
			Position:  field.Position,
		}
	}
	name := responseName(field)
	if acc.has(name) {
		// First occurrence wins. Conditional merging under @skip/@include is
		// not supported.
		return nil
	}
	acc.add(name, &FieldSelection{
		Field:  def,
		Syntax: field,
		Path:   path.Append(name),
	})
	return nil
}

// collectFragment merges fragment into acc when its type condition applies to typ.
func (c *Collector) collectFragment(fragment *Fragment, typ *schema.Type, path *Path, acc *fieldAccumulator, nodes *[]*FragmentNode) error {
	if !c.oracle.TypeConditionApplies(fragment.TypeCondition, typ) {
		return nil
	}
	node := &FragmentNode{Fragment: fragment}
	*nodes = append(*nodes, node)
	return c.collectFields(fragment.SelectionSet, typ, path, acc, &node.Children)
}
