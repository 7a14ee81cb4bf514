package selection

import (
	"fmt"

	language "github.com/hanpama/gqlshape/internal/language"
	schema "github.com/hanpama/gqlshape/internal/schema"
)

// Collector is a resolution session for one document. It is not safe for
// concurrent use.
type Collector struct {
	oracle    TypeOracle
	document  *language.QueryDocument
	fragments *fragmentRegistry
	cache     map[cacheKey]*SelectionSetVariants
	stats     Stats
}

// Stats counts cache activity of a Collector.
type Stats struct {
	Hits      int
	Misses    int
	Entries   int
	Fragments int
}

type cacheKey struct {
	typ          *schema.Type
	selectionSet selectionSetID
}

// selectionSetID identifies a parsed selection set by its backing array.
type selectionSetID struct {
	first *language.Selection
	n     int
}

func identify(selectionSet language.SelectionSet) selectionSetID {
	if len(selectionSet) == 0 {
		return selectionSetID{}
	}
	return selectionSetID{first: &selectionSet[0], n: len(selectionSet)}
}

// NewCollector starts a session over document using oracle for schema lookups.
func NewCollector(oracle TypeOracle, document *language.QueryDocument) *Collector {
	return &Collector{
		oracle:    oracle,
		document:  document,
		fragments: newFragmentRegistry(oracle, document),
		cache:     make(map[cacheKey]*SelectionSetVariants),
	}
}

// Resolve returns the merged fields of selectionSet for typ. Results are
// cached per (typ, selectionSet); repeated calls return the same value.
// path is recorded on field selections of a fresh resolution and defaults to
// the root.
func (c *Collector) Resolve(selectionSet language.SelectionSet, typ *schema.Type, path *Path) (*SelectionSetVariants, error) {
	if typ == nil {
		return nil, fmt.Errorf("resolve selection set: nil type")
	}
	if path == nil {
		path = Root()
	}
	key := cacheKey{typ: typ, selectionSet: identify(selectionSet)}
	if v, ok := c.cache[key]; ok {
		c.stats.Hits++
		return v, nil
	}
	c.stats.Misses++
	v, err := c.analyze(selectionSet, typ, path)
	if err != nil {
		return nil, err
	}
	c.cache[key] = v
	return v, nil
}

// Cached reports whether a resolution of selectionSet against typ is stored.
func (c *Collector) Cached(selectionSet language.SelectionSet, typ *schema.Type) bool {
	_, ok := c.cache[cacheKey{typ: typ, selectionSet: identify(selectionSet)}]
	return ok
}

func (c *Collector) Stats() Stats {
	s := c.stats
	s.Entries = len(c.cache)
	s.Fragments = len(c.fragments.fragments)
	return s
}

// Document returns the document this session resolves.
func (c *Collector) Document() *language.QueryDocument { return c.document }
