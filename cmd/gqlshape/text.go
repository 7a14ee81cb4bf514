package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hanpama/gqlshape/internal/analysis"
)

func encodeText(buf *bytes.Buffer, docs []*analysis.Document) error {
	for i, d := range docs {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(buf, "# %s (selections=%d hits=%d misses=%d fragments=%d)\n",
			d.Name, d.Stats.Selections, d.Stats.CacheHits, d.Stats.CacheMisses, d.Stats.Fragments)
		for _, op := range d.Operations {
			name := op.Name
			if name == "" {
				name = "<anonymous>"
			}
			fmt.Fprintf(buf, "%s %s\n", op.Kind, name)
			writeSelection(buf, op.Selection, 1)
		}
	}
	return nil
}

func writeSelection(buf *bytes.Buffer, sel *analysis.Selection, depth int) {
	if len(sel.Variants) == 0 {
		writeFields(buf, sel.Fields, depth)
		return
	}
	indent := strings.Repeat("  ", depth)
	for _, v := range sel.Variants {
		fmt.Fprintf(buf, "%son %s:\n", indent, v.Type)
		writeFields(buf, v.Fields, depth+1)
	}
}

func writeFields(buf *bytes.Buffer, fields []*analysis.Field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range fields {
		label := f.ResponseName
		if f.Name != f.ResponseName {
			label += " (" + f.Name + ")"
		}
		fmt.Fprintf(buf, "%s%s: %s", indent, label, f.Type)
		if f.Deprecated {
			buf.WriteString(" @deprecated")
		}
		if f.Selection != nil && f.Selection.Abstract {
			if len(f.Selection.Variants) > 0 {
				buf.WriteString(" (divergent)")
			} else {
				buf.WriteString(" (uniform)")
			}
		}
		buf.WriteByte('\n')
		if f.Selection != nil {
			writeSelection(buf, f.Selection, depth+1)
		}
	}
}
