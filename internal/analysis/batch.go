package analysis

import (
	"context"
	"fmt"

	language "github.com/hanpama/gqlshape/internal/language"
	runid "github.com/hanpama/gqlshape/internal/runid"
	schema "github.com/hanpama/gqlshape/internal/schema"
	"golang.org/x/sync/errgroup"
)

// Input is one document to analyze. Operation restricts the analysis to a
// single named operation; empty analyzes all of them.
type Input struct {
	Name      string
	Document  *language.QueryDocument
	Operation string
}

// AnalyzeAll analyzes inputs concurrently with one resolution session per
// document. Results are returned in input order. limit bounds the number of
// documents analyzed at once; zero or less means no limit. The first failure
// cancels the remaining analyses.
func AnalyzeAll(ctx context.Context, sch *schema.Schema, inputs []Input, limit int) ([]*Document, error) {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	out := make([]*Document, len(inputs))
	for i, in := range inputs {
		g.Go(func() error {
			dctx, _ := runid.NewContext(gctx)
			doc, err := analyzeInput(dctx, sch, in)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Name, err)
			}
			out[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func analyzeInput(ctx context.Context, sch *schema.Schema, in Input) (*Document, error) {
	if in.Operation == "" {
		return AnalyzeDocument(ctx, sch, in.Document, WithDocumentName(in.Name))
	}
	op := getOperation(in.Document, in.Operation)
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, in.Operation)
	}
	return analyzeDocument(ctx, sch, in.Document, []*language.OperationDefinition{op}, []Option{WithDocumentName(in.Name)})
}
