package selection

import (
	"testing"

	language "github.com/hanpama/gqlshape/internal/language"
	schema "github.com/hanpama/gqlshape/internal/schema"
	"github.com/stretchr/testify/require"
)

const testSDL = `
type Query {
	node: Node
	nodes: [Node!]!
	search: SearchResult
	a: A
}

interface Node {
	id: ID!
}

type A implements Node {
	id: ID!
	x: String
	name: String
}

type B implements Node {
	id: ID!
	y: String
	name: String
}

union SearchResult = A | B
`

func mustSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sch, err := schema.BuildFromSDL(testSDL)
	require.NoError(t, err)
	return sch
}

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

// fieldSelectionSet returns the sub-selection of the root field with the
// given response name in the first operation.
func fieldSelectionSet(t *testing.T, doc *language.QueryDocument, name string) language.SelectionSet {
	t.Helper()
	for _, sel := range doc.Operations[0].SelectionSet {
		if f, ok := sel.(*language.Field); ok && responseName(f) == name {
			return f.SelectionSet
		}
	}
	t.Fatalf("no root field %q", name)
	return nil
}

func responseNames(s *SelectionSet) []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.ResponseName())
	}
	return out
}

func typeNames(sets []*SelectionSet) []string {
	out := make([]string, 0, len(sets))
	for _, s := range sets {
		out = append(out, s.Type.Name)
	}
	return out
}
