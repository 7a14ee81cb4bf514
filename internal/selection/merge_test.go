package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	language "github.com/hanpama/gqlshape/internal/language"
	"github.com/stretchr/testify/require"
)

func TestMerge_OrderAndUniqueness(t *testing.T) {
	sch := mustSchema(t)
	doc := mustParseQuery(t, `
		{ a { id ...F x id name ... on A { x name id2: id } } }
		fragment F on A { name x }
	`)
	ss := fieldSelectionSet(t, doc, "a")

	got, err := NewCollector(sch, doc).merge(ss, sch.Types["A"], Root().Append("a"))
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"id", "name", "x", "id2"}, responseNames(got)); diff != "" {
		t.Fatalf("response names mismatch (-want +got):\n%s", diff)
	}

	frag := doc.Fragments.ForName("F").SelectionSet
	inline := ss[5].(*language.InlineFragment)
	wantSyntax := []*language.Field{
		ss[0].(*language.Field),
		frag[0].(*language.Field),
		frag[1].(*language.Field),
		inline.SelectionSet[2].(*language.Field),
	}
	for i, want := range wantSyntax {
		require.Same(t, want, got.Fields[i].Syntax, "field %d", i)
		require.False(t, got.Fields[i].IsConditional)
	}
	require.Equal(t, "id", got.Fields[3].Field.Name)
	require.Equal(t, "/a/id2", got.Fields[3].Path.String())
}

func TestMerge_FragmentNodesRecordExpansionTree(t *testing.T) {
	sch := mustSchema(t)
	doc := mustParseQuery(t, `
		{ a { ...Outer ... on B { y } } }
		fragment Outer on Node { ...Inner ... on A { x } }
		fragment Inner on A { id }
	`)

	got, err := NewCollector(sch, doc).merge(fieldSelectionSet(t, doc, "a"), sch.Types["A"], Root())
	require.NoError(t, err)

	type node struct {
		Name     string
		Kind     FragmentKind
		Children []node
	}
	var flatten func([]*FragmentNode) []node
	flatten = func(ns []*FragmentNode) []node {
		var out []node
		for _, n := range ns {
			out = append(out, node{Name: n.Fragment.Name, Kind: n.Fragment.Kind, Children: flatten(n.Children)})
		}
		return out
	}

	want := []node{{
		Name: "Outer",
		Kind: FragmentKindNamed,
		Children: []node{
			{Name: "Inner", Kind: FragmentKindNamed},
			{Name: "A", Kind: FragmentKindInline},
		},
	}}
	if diff := cmp.Diff(want, flatten(got.FragmentNodes)); diff != "" {
		t.Fatalf("fragment nodes mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"id", "x"}, responseNames(got))
}

func TestMerge_TypeConditions(t *testing.T) {
	sch := mustSchema(t)
	tests := []struct {
		name     string
		query    string
		typeName string
		want     []string
	}{
		{"object matches itself", `{ a { ... on A { x } } }`, "A", []string{"x"}},
		{"object does not match sibling", `{ a { ... on B { y } } }`, "A", []string{}},
		{"interface matches implementor", `{ a { ... on Node { id } } }`, "A", []string{"id"}},
		{"interface matches itself", `{ a { ... on Node { id } } }`, "Node", []string{"id"}},
		{"union matches member", `{ a { ... on SearchResult { __typename } } }`, "B", []string{"__typename"}},
		{"union does not match itself", `{ a { ... on SearchResult { __typename } } }`, "SearchResult", []string{}},
		{"object does not match interface", `{ a { ... on A { x } } }`, "Node", []string{}},
		{"untyped inline uses enclosing type", `{ a { ... { id } } }`, "A", []string{"id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParseQuery(t, tt.query)
			got, err := NewCollector(sch, doc).merge(fieldSelectionSet(t, doc, "a"), sch.Types[tt.typeName], Root())
			require.NoError(t, err)
			require.Equal(t, tt.want, responseNames(got))
		})
	}
}

func TestMerge_MetaFields(t *testing.T) {
	sch := mustSchema(t)

	t.Run("typename on union", func(t *testing.T) {
		doc := mustParseQuery(t, `{ a { __typename } }`)
		got, err := NewCollector(sch, doc).merge(fieldSelectionSet(t, doc, "a"), sch.Types["SearchResult"], Root())
		require.NoError(t, err)
		require.Equal(t, []string{"__typename"}, responseNames(got))
		require.Equal(t, "String!", got.Fields[0].Field.Type.String())
	})

	t.Run("regular field on union", func(t *testing.T) {
		doc := mustParseQuery(t, `{ a { id } }`)
		_, err := NewCollector(sch, doc).merge(fieldSelectionSet(t, doc, "a"), sch.Types["SearchResult"], Root())
		require.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("schema on query root", func(t *testing.T) {
		doc := mustParseQuery(t, `{ __schema { queryType { name } } a { id } }`)
		got, err := NewCollector(sch, doc).merge(doc.Operations[0].SelectionSet, sch.GetQueryType(), Root())
		require.NoError(t, err)
		require.Equal(t, []string{"__schema", "a"}, responseNames(got))
	})
}

func TestMerge_Errors(t *testing.T) {
	sch := mustSchema(t)
	tests := []struct {
		name    string
		query   string
		wantErr error
		message string
	}{
		{
			name:    "missing fragment",
			query:   `{ a { ...Missing } }`,
			wantErr: ErrUnresolvedFragment,
			message: `Could not resolve fragment "Missing"`,
		},
		{
			name:    "inline fragment on unknown type",
			query:   `{ a { ... on Nope { id } } }`,
			wantErr: ErrUnresolvedType,
			message: `Unknown type "Nope" in type condition`,
		},
		{
			name:    "fragment definition on unknown type",
			query:   "{ a { ...F } }\nfragment F on Nope { id }",
			wantErr: ErrUnresolvedType,
			message: `Unknown type "Nope" in type condition 2:`,
		},
		{
			name:    "self spreading fragments",
			query:   "{ a { ...F } }\nfragment F on A { id ...G }\nfragment G on A { ...F }",
			wantErr: ErrFragmentCycle,
			message: `Fragment "F" spreads itself`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParseQuery(t, tt.query)
			got, err := NewCollector(sch, doc).Resolve(fieldSelectionSet(t, doc, "a"), sch.Types["A"], nil)
			require.Nil(t, got)
			require.ErrorIs(t, err, tt.wantErr)
			require.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestMerge_RepeatedFragmentSpreadIsNotACycle(t *testing.T) {
	sch := mustSchema(t)
	doc := mustParseQuery(t, `
		{ a { ...F ...F ... on A { ...F } } }
		fragment F on A { id }
	`)
	got, err := NewCollector(sch, doc).merge(fieldSelectionSet(t, doc, "a"), sch.Types["A"], Root())
	require.NoError(t, err)
	require.Equal(t, []string{"id"}, responseNames(got))
	require.Len(t, got.FragmentNodes, 3)
	require.Same(t, got.FragmentNodes[0].Fragment, got.FragmentNodes[1].Fragment)
	require.Same(t, got.FragmentNodes[0].Fragment, got.FragmentNodes[2].Children[0].Fragment)
}
