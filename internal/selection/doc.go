// Package selection resolves GraphQL selection sets into the concrete fields
// each possible result type carries.
//
// # Overview
//
// A Collector is one resolution session over a single query document and
// schema. Callers ask it to resolve a syntactic selection set against a named
// output type:
//
//	c := selection.NewCollector(sch, doc)
//	v, err := c.Resolve(op.SelectionSet, sch.GetQueryType(), selection.Root())
//
// The result is a SelectionSetVariants value: the merged field list computed
// against the requested type (ReturnType) and, for interfaces and unions whose
// possible types do not all merge to the same fields, one merged SelectionSet
// per possible type (Variants).
//
// # Merging
//
// Fields are merged by response name (alias, else field name) in first
// occurrence order, walking the selection set depth-first in document order.
// Fragment spreads and inline fragments contribute their fields only when
// their type condition applies to the type being merged:
//
//   - object conditions apply to the same object type;
//   - interface conditions apply to implementing objects and to the interface itself;
//   - union conditions apply to member objects.
//
// A repeated response name keeps the first FieldSelection. Each applied
// fragment is recorded as a FragmentNode so consumers can trace where fields
// came from.
//
// # Shapes
//
// For an abstract type the selection set is merged once against the abstract
// type and once per possible type, in schema order. Two merges have the same
// shape when they hold the same field syntax nodes at the same positions.
// Comparison is by node identity: two fields with equal text written in two
// places are different fields.
//
// # Caching
//
// Fragments are created once per session and keyed by name; inline fragments
// are keyed by their source span. Completed resolutions are cached per
// (type, selection set) pair, where selection set identity is the identity of
// the parsed node. Failed resolutions are never cached.
//
// A Collector keeps unsynchronized maps and must not be shared between
// goroutines. Use one Collector per document.
package selection
