package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hanpama/gqlshape/internal/analysis"
	"github.com/hanpama/gqlshape/internal/selection"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testSchema = `
type Query {
  me: User
  search(term: String!): [SearchResult!]!
}

interface Node { id: ID! }

type User implements Node {
  id: ID!
  name: String
  nick: String @deprecated
}

type Post implements Node {
  id: ID!
  title: String
}

union SearchResult = User | Post
`

const testQuery = `
query Me { me { id handle: name } }
query Search { search(term: "x") { ... on User { id } ... on Post { title } } }
`

func captureOutput(t *testing.T, fn func() error) (stdout, stderr string, err error) {
	t.Helper()
	oldOut, oldErr := os.Stdout, os.Stderr
	defer func() {
		os.Stdout, os.Stderr = oldOut, oldErr
	}()

	outR, outW, _ := os.Pipe()
	errR, errW, _ := os.Pipe()
	os.Stdout, os.Stderr = outW, errW

	doneOut := make(chan struct{})
	var bufOut bytes.Buffer
	go func() { io.Copy(&bufOut, outR); close(doneOut) }()

	doneErr := make(chan struct{})
	var bufErr bytes.Buffer
	go func() { io.Copy(&bufErr, errR); close(doneErr) }()

	err = fn()
	outW.Close()
	errW.Close()
	<-doneOut
	<-doneErr
	stdout, stderr = bufOut.String(), bufErr.String()
	return
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func fixtures(t *testing.T, query string) (schemaPath, queryPath string) {
	t.Helper()
	dir := t.TempDir()
	return writeFile(t, dir, "schema.graphql", testSchema), writeFile(t, dir, "query.graphql", query)
}

func TestHelp(t *testing.T) {
	out, _, err := captureOutput(t, func() error {
		return run([]string{"help", "analyze"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "analyze FLAGS")

	out, _, err = captureOutput(t, func() error {
		return run([]string{"help"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "COMMANDS:")

	_, _, err = captureOutput(t, func() error {
		return run([]string{"help", "serve"})
	})
	require.EqualError(t, err, `unknown help topic "serve"`)
}

func TestRun_Errors(t *testing.T) {
	_, stderr, err := captureOutput(t, func() error { return run(nil) })
	require.EqualError(t, err, "missing command")
	require.Contains(t, stderr, "USAGE:")

	_, _, err = captureOutput(t, func() error { return run([]string{"serve"}) })
	require.EqualError(t, err, `unknown command "serve"`)

	schemaPath, queryPath := fixtures(t, testQuery)
	_, stderr, err = captureOutput(t, func() error {
		return run([]string{"analyze", "-query", queryPath})
	})
	require.EqualError(t, err, "-schema is required")
	require.Contains(t, stderr, "analyze FLAGS")

	_, _, err = captureOutput(t, func() error {
		return run([]string{"analyze", "-schema", schemaPath})
	})
	require.EqualError(t, err, "-query is required")

	_, _, err = captureOutput(t, func() error {
		return run([]string{"analyze", "-schema", schemaPath, "-query", queryPath, "-format", "xml"})
	})
	require.EqualError(t, err, `unknown format "xml"`)
}

func TestAnalyze_Text(t *testing.T) {
	schemaPath, queryPath := fixtures(t, testQuery)
	out, _, err := captureOutput(t, func() error {
		return run([]string{"analyze", "-schema", schemaPath, "-query", queryPath})
	})
	require.NoError(t, err)
	require.Contains(t, out, "query Me\n  me: User\n    id: ID!\n    handle (name): String\n")
	require.Contains(t, out, "  search: [SearchResult!]! (divergent)\n    on User:\n      id: ID!\n    on Post:\n      title: String\n")
}

func TestAnalyze_JSON(t *testing.T) {
	schemaPath, queryPath := fixtures(t, testQuery)
	out, _, err := captureOutput(t, func() error {
		return run([]string{"analyze", "-schema", schemaPath, "-query", queryPath, "-format", "json", "-operation", "Me"})
	})
	require.NoError(t, err)

	var docs []*analysis.Document
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
	require.Equal(t, queryPath, docs[0].Name)
	require.Len(t, docs[0].Operations, 1)
	op := docs[0].Operations[0]
	require.Equal(t, "Me", op.Name)
	require.Equal(t, "query", op.Kind)
	me := op.Selection.Fields[0]
	require.Equal(t, "/me", me.Selection.Path)
	require.Equal(t, "handle", me.Selection.Fields[1].ResponseName)
}

func TestAnalyze_YAMLToFile(t *testing.T) {
	schemaPath, queryPath := fixtures(t, testQuery)
	outPath := filepath.Join(t.TempDir(), "out.yaml")
	err := run([]string{"analyze", "-schema", schemaPath, "-query", queryPath, "-query", queryPath, "-format", "yaml", "-out", outPath})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var docs []*analysis.Document
	require.NoError(t, yaml.Unmarshal(data, &docs))
	require.Len(t, docs, 2)
	for _, d := range docs {
		require.Len(t, d.Operations, 2)
		search := d.Operations[1].Selection.Fields[0].Selection
		require.True(t, search.Abstract)
		require.Len(t, search.Variants, 2)
		require.Equal(t, "User", search.Variants[0].Type)
		require.Equal(t, "Post", search.Variants[1].Type)
	}
}

func TestAnalyze_Validation(t *testing.T) {
	schemaPath, queryPath := fixtures(t, `{ me { bogus } }`)

	_, _, err := captureOutput(t, func() error {
		return run([]string{"analyze", "-schema", schemaPath, "-query", queryPath})
	})
	require.ErrorContains(t, err, "validate query")

	_, _, err = captureOutput(t, func() error {
		return run([]string{"analyze", "-schema", schemaPath, "-query", queryPath, "-validate=false"})
	})
	require.ErrorIs(t, err, selection.ErrUnknownField)
	require.ErrorContains(t, err, `Field "bogus" does not exist on type "User"`)
}
