package schema

import (
	"fmt"
	"os"
	"sort"

	language "github.com/hanpama/gqlshape/internal/language"
)

// BuildFromAST converts a validated gqlparser schema into a Schema.
// Types are registered in definition order: built-ins first, then by source
// name and offset.
func BuildFromAST(src *language.Schema) (*Schema, error) {
	if src == nil {
		return nil, fmt.Errorf("nil schema")
	}
	s := NewSchema("")
	if src.Query != nil {
		s.SetQueryType(src.Query.Name)
	}
	if src.Mutation != nil {
		s.SetMutationType(src.Mutation.Name)
	}
	if src.Subscription != nil {
		s.SetSubscriptionType(src.Subscription.Name)
	}

	defs := make([]*language.Definition, 0, len(src.Types))
	for _, def := range src.Types {
		defs = append(defs, def)
	}
	sort.SliceStable(defs, func(i, j int) bool { return definitionLess(defs[i], defs[j]) })

	for _, def := range defs {
		t, err := buildType(def)
		if err != nil {
			return nil, err
		}
		s.AddType(t)
	}
	return s, nil
}

func definitionLess(a, b *language.Definition) bool {
	ab, bb := a.BuiltIn, b.BuiltIn
	if ab != bb {
		return ab
	}
	pa, pb := a.Position, b.Position
	if pa == nil || pb == nil {
		if pa != pb {
			return pa != nil
		}
		return a.Name < b.Name
	}
	na, nb := sourceName(pa), sourceName(pb)
	if na != nb {
		return na < nb
	}
	if pa.Start != pb.Start {
		return pa.Start < pb.Start
	}
	return a.Name < b.Name
}

func sourceName(p *language.Position) string {
	if p.Src == nil {
		return ""
	}
	return p.Src.Name
}

func buildType(def *language.Definition) (*Type, error) {
	switch def.Kind {
	case language.Object:
		return buildComposite(def, TypeKindObject), nil
	case language.Interface:
		return buildComposite(def, TypeKindInterface), nil
	case language.Union:
		t := NewType(def.Name, TypeKindUnion, def.Description)
		for _, name := range def.Types {
			t.AddPossibleType(name)
		}
		return t, nil
	case language.Scalar:
		return NewType(def.Name, TypeKindScalar, def.Description), nil
	case language.Enum:
		return NewType(def.Name, TypeKindEnum, def.Description), nil
	case language.InputObject:
		return NewType(def.Name, TypeKindInputObject, def.Description), nil
	}
	return nil, fmt.Errorf("type %q has unsupported kind %s", def.Name, def.Kind)
}

func buildComposite(def *language.Definition, kind TypeKind) *Type {
	t := NewType(def.Name, kind, def.Description)
	for _, name := range def.Interfaces {
		t.AddInterface(name)
	}
	for _, fd := range def.Fields {
		// gqlparser lists introspection meta fields on the query root; they are
		// served by TryGetField instead.
		if len(fd.Name) > 1 && fd.Name[:2] == "__" {
			continue
		}
		t.AddField(buildField(fd))
	}
	return t
}

func buildField(def *language.FieldDefinition) *Field {
	f := NewField(def.Name, def.Description, buildTypeRef(def.Type))
	for _, arg := range def.Arguments {
		in := &InputValue{Name: arg.Name, Description: arg.Description, Type: buildTypeRef(arg.Type)}
		if arg.DefaultValue != nil {
			in.DefaultValue = arg.DefaultValue.String()
		}
		f.AddArgument(in)
	}
	if d := def.Directives.ForName("deprecated"); d != nil {
		reason := "No longer supported"
		if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
			reason = arg.Value.Raw
		}
		f.Deprecate(reason)
	}
	return f
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	var ref *TypeRef
	if t.Elem != nil {
		ref = ListType(buildTypeRef(t.Elem))
	} else {
		ref = NamedType(t.NamedType)
	}
	if t.NonNull {
		ref = NonNullType(ref)
	}
	return ref
}

// BuildFromSDL parses and validates sdl and returns the corresponding Schema.
func BuildFromSDL(sdl string) (*Schema, error) {
	src, err := language.LoadSchema(&language.Source{Name: "schema.graphql", Input: sdl})
	if err != nil {
		return nil, err
	}
	return BuildFromAST(src)
}

// LoadFiles reads SDL files and builds one schema from all of them. The
// validated gqlparser schema is returned as well for query validation.
func LoadFiles(paths ...string) (*Schema, *language.Schema, error) {
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no schema files given")
	}
	sources := make([]*language.Source, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("read schema: %w", err)
		}
		sources = append(sources, &language.Source{Name: p, Input: string(content)})
	}
	src, err := language.LoadSchema(sources...)
	if err != nil {
		return nil, nil, fmt.Errorf("load schema: %w", err)
	}
	s, err := BuildFromAST(src)
	if err != nil {
		return nil, nil, err
	}
	return s, src, nil
}
