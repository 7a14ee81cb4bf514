package selection

import (
	language "github.com/hanpama/gqlshape/internal/language"
	schema "github.com/hanpama/gqlshape/internal/schema"
)

// analyze merges selectionSet against typ and, for abstract types, against
// every possible type to decide whether one shape covers them all.
func (c *Collector) analyze(selectionSet language.SelectionSet, typ *schema.Type, path *Path) (*SelectionSetVariants, error) {
	returnType, err := c.merge(selectionSet, typ, path)
	if err != nil {
		return nil, err
	}
	if !c.oracle.IsAbstractType(typ) {
		return &SelectionSetVariants{ReturnType: returnType}, nil
	}

	possibleTypes := c.oracle.PossibleTypes(typ)
	variants := make([]*SelectionSet, 0, len(possibleTypes))
	uniform := true
	for _, objectType := range possibleTypes {
		objectSelection, err := c.merge(selectionSet, objectType, path)
		if err != nil {
			return nil, err
		}
		variants = append(variants, objectSelection)
		if !sameFieldSelections(returnType.Fields, objectSelection.Fields) {
			uniform = false
		}
	}
	if uniform {
		return &SelectionSetVariants{ReturnType: returnType}, nil
	}
	return &SelectionSetVariants{ReturnType: returnType, Variants: variants}, nil
}

// sameFieldSelections compares syntax node identity position by position.
func sameFieldSelections(a, b []*FieldSelection) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Syntax != b[i].Syntax {
			return false
		}
	}
	return true
}
