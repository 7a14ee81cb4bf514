package schema

import "fmt"

// Meta fields available outside of a type's declared field list.
var (
	typeNameField = &Field{
		Name:        "__typename",
		Description: "The name of the current Object type at runtime.",
		Type:        NonNullType(NamedType("String")),
	}
	schemaField = &Field{
		Name:        "__schema",
		Description: "Access the current type schema of this server.",
		Type:        NonNullType(NamedType("__Schema")),
	}
	typeField = &Field{
		Name:        "__type",
		Description: "Request the type information of a single type.",
		Type:        NamedType("__Type"),
		Arguments:   []*InputValue{{Name: "name", Type: NonNullType(NamedType("String"))}},
	}
)

// TryGetType looks up a named type.
func (s *Schema) TryGetType(name string) (*Type, bool) {
	t, ok := s.Types[name]
	return t, ok && t != nil
}

// GetType looks up a named type and, when kinds are given, requires it to be
// one of them.
func (s *Schema) GetType(name string, kinds ...TypeKind) (*Type, error) {
	t, ok := s.TryGetType(name)
	if !ok {
		return nil, fmt.Errorf("type %q does not exist in the schema", name)
	}
	if len(kinds) == 0 {
		return t, nil
	}
	for _, k := range kinds {
		if t.Kind == k {
			return t, nil
		}
	}
	return nil, fmt.Errorf("type %q is %s, expected one of %v", name, t.Kind, kinds)
}

// TryGetField looks up a field selectable on t, including meta fields.
// Unions expose only __typename.
func (s *Schema) TryGetField(t *Type, name string) (*Field, bool) {
	if t == nil || !t.IsComposite() {
		return nil, false
	}
	switch name {
	case typeNameField.Name:
		return typeNameField, true
	case schemaField.Name, typeField.Name:
		if t.Name == s.QueryType {
			if name == schemaField.Name {
				return schemaField, true
			}
			return typeField, true
		}
	}
	if t.Kind == TypeKindUnion {
		return nil, false
	}
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// IsAbstractType reports whether t is an interface or a union.
func (s *Schema) IsAbstractType(t *Type) bool { return t != nil && t.IsAbstract() }

// PossibleTypes returns the object types an abstract type can resolve to, in
// schema enumeration order. Union members keep their declared order. Interface
// implementors follow PossibleTypes when recorded, otherwise type definition order.
func (s *Schema) PossibleTypes(t *Type) []*Type {
	if t == nil {
		return nil
	}
	var names []string
	switch t.Kind {
	case TypeKindObject:
		return []*Type{t}
	case TypeKindUnion:
		names = t.PossibleTypes
	case TypeKindInterface:
		if len(t.PossibleTypes) > 0 {
			names = t.PossibleTypes
			break
		}
		for _, name := range s.TypeNames() {
			if candidate := s.Types[name]; candidate.Kind == TypeKindObject && candidate.Implements(t.Name) {
				names = append(names, name)
			}
		}
	default:
		return nil
	}
	out := make([]*Type, 0, len(names))
	for _, name := range names {
		if pt, ok := s.TryGetType(name); ok && pt.Kind == TypeKindObject {
			out = append(out, pt)
		}
	}
	return out
}

// TypeConditionApplies reports whether fields guarded by a fragment on cond
// apply when selecting on current.
//
// Object conditions match by identity. Interface conditions match objects
// implementing them and interfaces of the same name. Union conditions match
// their members.
func (s *Schema) TypeConditionApplies(cond, current *Type) bool {
	if cond == nil || current == nil {
		return false
	}
	switch cond.Kind {
	case TypeKindObject:
		return cond == current
	case TypeKindInterface:
		switch current.Kind {
		case TypeKindObject:
			return current.Implements(cond.Name)
		case TypeKindInterface:
			return cond.Name == current.Name
		}
	case TypeKindUnion:
		return cond.HasPossibleType(current.Name)
	}
	return false
}
