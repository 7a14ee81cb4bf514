package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hanpama/gqlshape/internal/analysis"
	"github.com/hanpama/gqlshape/internal/eventbus"
	"github.com/hanpama/gqlshape/internal/language"
	"github.com/hanpama/gqlshape/internal/otel"
	"github.com/hanpama/gqlshape/internal/schema"
	"gopkg.in/yaml.v3"
)

const rootUsage = `gqlshape — GraphQL selection shape analysis

USAGE:
  gqlshape <command> [flags]

COMMANDS:
  analyze          Resolve the selection shapes of GraphQL operations
  help             Show help for any command
`

const analyzeUsage = `analyze FLAGS:
  -schema <file>            GraphQL SDL file. Repeatable; at least one required
  -query <file>             Query document. Repeatable; at least one required
  -operation <name>         Analyze only this operation (default: all)
  -format <json|yaml|text>  Output format (default: text)
  -validate <bool>          Validate documents against the schema (default: true)
  -parallel N               Max documents analyzed at once (default: 0, no limit)
  -out <file>               Write output to file (default: stdout)
  -otel.endpoint <addr>     OTLP collector endpoint
  -otel.service <name>      OpenTelemetry service name (default: gqlshape)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gqlshape", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer))
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "analyze":
		return cmdAnalyze(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "analyze":
		fmt.Print(analyzeUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdAnalyze(args []string) error {
	var schemaFiles, queryFiles stringListFlag
	operation := ""
	format := "text"
	validate := true
	parallel := 0
	outFile := ""
	otelEndpoint := ""
	otelService := "gqlshape"

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.Var(&schemaFiles, "schema", "GraphQL SDL file")
	fs.Var(&queryFiles, "query", "Query document")
	fs.StringVar(&operation, "operation", operation, "Analyze only this operation")
	fs.StringVar(&format, "format", format, "Output format")
	fs.BoolVar(&validate, "validate", validate, "Validate documents against the schema")
	fs.IntVar(&parallel, "parallel", parallel, "Max documents analyzed at once")
	fs.StringVar(&outFile, "out", outFile, "Write output to file")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, analyzeUsage)
		return err
	}
	if len(schemaFiles) == 0 {
		fmt.Fprint(os.Stderr, analyzeUsage)
		return fmt.Errorf("-schema is required")
	}
	if len(queryFiles) == 0 {
		fmt.Fprint(os.Stderr, analyzeUsage)
		return fmt.Errorf("-query is required")
	}
	encode, ok := encoders[format]
	if !ok {
		return fmt.Errorf("unknown format %q", format)
	}

	sch, src, err := schema.LoadFiles(schemaFiles...)
	if err != nil {
		return err
	}
	inputs := make([]analysis.Input, 0, len(queryFiles))
	for _, path := range queryFiles {
		doc, err := loadQuery(src, path, validate)
		if err != nil {
			return err
		}
		inputs = append(inputs, analysis.Input{Name: path, Document: doc, Operation: operation})
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	docs, err := analysis.AnalyzeAll(context.Background(), sch, inputs, parallel)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encode(&buf, docs); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if outFile == "" {
		fmt.Print(buf.String())
		return nil
	}
	return os.WriteFile(outFile, buf.Bytes(), 0644)
}

func loadQuery(src *language.Schema, path string, validate bool) (*language.QueryDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read query: %w", err)
	}
	if !validate {
		doc, err := language.ParseQueryFile(path, string(data))
		if err != nil {
			return nil, fmt.Errorf("parse query: %w", err)
		}
		return doc, nil
	}
	doc, err := language.LoadQuery(src, path, string(data))
	if err != nil {
		return nil, fmt.Errorf("validate query: %w", err)
	}
	return doc, nil
}

var encoders = map[string]func(*bytes.Buffer, []*analysis.Document) error{
	"json": encodeJSON,
	"yaml": encodeYAML,
	"text": encodeText,
}

func encodeJSON(buf *bytes.Buffer, docs []*analysis.Document) error {
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

func encodeYAML(buf *bytes.Buffer, docs []*analysis.Document) error {
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return err
	}
	return enc.Close()
}
