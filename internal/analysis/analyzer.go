package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventbus "github.com/hanpama/gqlshape/internal/eventbus"
	events "github.com/hanpama/gqlshape/internal/events"
	language "github.com/hanpama/gqlshape/internal/language"
	runid "github.com/hanpama/gqlshape/internal/runid"
	schema "github.com/hanpama/gqlshape/internal/schema"
	selection "github.com/hanpama/gqlshape/internal/selection"
)

var ErrOperationNotFound = errors.New("operation not found")

type options struct {
	documentName string
}

// Option configures an analysis.
type Option func(*options)

// WithDocumentName labels results and events with the document's name.
func WithDocumentName(name string) Option { return func(o *options) { o.documentName = name } }

// Analyze resolves a single operation of doc. An empty operationName selects
// the document's only operation.
func Analyze(ctx context.Context, sch *schema.Schema, doc *language.QueryDocument, operationName string, opts ...Option) (*Operation, error) {
	op := getOperation(doc, operationName)
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationName)
	}
	d, err := analyzeDocument(ctx, sch, doc, []*language.OperationDefinition{op}, opts)
	if err != nil {
		return nil, err
	}
	return d.Operations[0], nil
}

// AnalyzeDocument resolves every operation of doc in document order. All
// operations share one resolution session, so fragments and selection sets
// used by several operations are resolved once.
func AnalyzeDocument(ctx context.Context, sch *schema.Schema, doc *language.QueryDocument, opts ...Option) (*Document, error) {
	return analyzeDocument(ctx, sch, doc, doc.Operations, opts)
}

func analyzeDocument(ctx context.Context, sch *schema.Schema, doc *language.QueryDocument, ops []*language.OperationDefinition, opts []Option) (*Document, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if _, ok := runid.FromContext(ctx); !ok {
		ctx, _ = runid.NewContext(ctx)
	}
	s := &session{
		ctx:          ctx,
		schema:       sch,
		collector:    selection.NewCollector(sch, doc),
		documentName: o.documentName,
	}

	out := &Document{Name: o.documentName, Operations: make([]*Operation, 0, len(ops))}
	for _, op := range ops {
		result, err := s.operation(op)
		if err != nil {
			return nil, err
		}
		out.Operations = append(out.Operations, result)
	}
	stats := s.collector.Stats()
	out.Stats = Stats{
		Selections:  s.selections,
		CacheHits:   stats.Hits,
		CacheMisses: stats.Misses,
		Fragments:   stats.Fragments,
	}
	return out, nil
}

// session walks operations of one document with a single collector.
type session struct {
	ctx          context.Context
	schema       *schema.Schema
	collector    *selection.Collector
	documentName string
	selections   int
}

func (s *session) operation(op *language.OperationDefinition) (result *Operation, err error) {
	kind := string(op.Operation)
	eventbus.Publish(s.ctx, events.AnalysisStart{
		Document:      s.documentName,
		OperationName: op.Name,
		OperationType: kind,
	})
	start := time.Now()
	before := s.collector.Stats()
	selectionsBefore := s.selections
	defer func() {
		after := s.collector.Stats()
		eventbus.Publish(s.ctx, events.AnalysisFinish{
			Document:      s.documentName,
			OperationName: op.Name,
			OperationType: kind,
			Selections:    s.selections - selectionsBefore,
			CacheHits:     after.Hits - before.Hits,
			CacheMisses:   after.Misses - before.Misses,
			Err:           err,
			Duration:      time.Since(start),
		})
	}()

	rootType, err := s.rootType(op.Operation)
	if err != nil {
		return nil, err
	}
	root, err := s.selection(op.SelectionSet, rootType, selection.Root())
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", displayName(op), err)
	}
	return &Operation{Name: op.Name, Kind: kind, Selection: root}, nil
}

func (s *session) rootType(operation language.Operation) (*schema.Type, error) {
	var rootType *schema.Type
	switch operation {
	case language.Query:
		rootType = s.schema.GetQueryType()
	case language.Mutation:
		rootType = s.schema.GetMutationType()
	case language.Subscription:
		rootType = s.schema.GetSubscriptionType()
	default:
		return nil, fmt.Errorf("unsupported operation type: %s", operation)
	}
	if rootType == nil {
		return nil, fmt.Errorf("root type not found for %s operation", operation)
	}
	return rootType, nil
}

// selection resolves selectionSet against typ and descends into every field
// with a sub-selection, once per shape.
func (s *session) selection(selectionSet language.SelectionSet, typ *schema.Type, path *selection.Path) (*Selection, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	cached := s.collector.Cached(selectionSet, typ)
	v, err := s.collector.Resolve(selectionSet, typ, path)
	s.selections++
	resolved := events.SelectionResolved{
		Path:     path.String(),
		TypeName: typ.Name,
		Abstract: typ.IsAbstract(),
		Cached:   cached,
		Err:      err,
		Start:    start,
		Duration: time.Since(start),
	}
	if v != nil {
		resolved.Variants = len(v.Variants)
	}
	eventbus.Publish(s.ctx, resolved)
	if err != nil {
		return nil, err
	}

	out := &Selection{
		Path:      path.String(),
		Type:      typ.Name,
		Abstract:  typ.IsAbstract(),
		Fragments: fragmentRefs(v.ReturnType.FragmentNodes),
	}
	if out.Fields, err = s.fields(v.ReturnType, path); err != nil {
		return nil, err
	}
	for _, variant := range v.Variants {
		fields, err := s.fields(variant, path)
		if err != nil {
			return nil, err
		}
		out.Variants = append(out.Variants, &Variant{
			Type:      variant.Type.Name,
			Fields:    fields,
			Fragments: fragmentRefs(variant.FragmentNodes),
		})
	}
	return out, nil
}

func (s *session) fields(set *selection.SelectionSet, path *selection.Path) ([]*Field, error) {
	out := make([]*Field, 0, len(set.Fields))
	for _, fs := range set.Fields {
		name := fs.ResponseName()
		f := &Field{
			ResponseName: name,
			Name:         fs.Field.Name,
			Type:         fs.Field.Type.String(),
			Deprecated:   fs.Field.IsDeprecated,
		}
		// Only the first occurrence of a response name is kept, so only its
		// sub-selection is followed.
		if len(fs.Syntax.SelectionSet) > 0 {
			named := fs.Field.Type.GetNamedType()
			fieldType, ok := s.schema.TryGetType(named)
			if !ok {
				return nil, &selection.UnresolvedTypeError{Name: named, Position: fs.Syntax.Position}
			}
			sub, err := s.selection(fs.Syntax.SelectionSet, fieldType, path.Append(name))
			if err != nil {
				return nil, err
			}
			f.Selection = sub
		}
		out = append(out, f)
	}
	return out, nil
}

func fragmentRefs(nodes []*selection.FragmentNode) []*FragmentRef {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*FragmentRef, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &FragmentRef{
			Name:          n.Fragment.Name,
			Kind:          n.Fragment.Kind.String(),
			TypeCondition: n.Fragment.TypeCondition.Name,
			Children:      fragmentRefs(n.Children),
		})
	}
	return out
}

// getOperation retrieves the operation from the document
func getOperation(document *language.QueryDocument, operationName string) *language.OperationDefinition {
	if operationName == "" && len(document.Operations) == 1 {
		return document.Operations[0]
	}
	if operationName == "" {
		return nil
	}
	return document.Operations.ForName(operationName)
}

func displayName(op *language.OperationDefinition) string {
	if op.Name == "" {
		return "anonymous " + string(op.Operation)
	}
	return string(op.Operation) + " " + op.Name
}
