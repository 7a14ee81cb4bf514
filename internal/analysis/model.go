package analysis

// Document holds the analyzed operations of one query document.
type Document struct {
	Name       string       `json:"name,omitempty" yaml:"name,omitempty"`
	Operations []*Operation `json:"operations" yaml:"operations"`
	Stats      Stats        `json:"stats" yaml:"stats"`
}

// Stats summarizes the resolution session of a document.
type Stats struct {
	Selections  int `json:"selections" yaml:"selections"`
	CacheHits   int `json:"cacheHits" yaml:"cacheHits"`
	CacheMisses int `json:"cacheMisses" yaml:"cacheMisses"`
	Fragments   int `json:"fragments" yaml:"fragments"`
}

type Operation struct {
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	Kind      string     `json:"kind" yaml:"kind"`
	Selection *Selection `json:"selection" yaml:"selection"`
}

// Selection is the resolved selection set at one response path. Variants is
// set only when the possible types of an abstract type need distinct shapes.
type Selection struct {
	Path      string         `json:"path" yaml:"path"`
	Type      string         `json:"type" yaml:"type"`
	Abstract  bool           `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Fields    []*Field       `json:"fields" yaml:"fields"`
	Fragments []*FragmentRef `json:"fragments,omitempty" yaml:"fragments,omitempty"`
	Variants  []*Variant     `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// Variant is the shape of a selection for one possible type.
type Variant struct {
	Type      string         `json:"type" yaml:"type"`
	Fields    []*Field       `json:"fields" yaml:"fields"`
	Fragments []*FragmentRef `json:"fragments,omitempty" yaml:"fragments,omitempty"`
}

type Field struct {
	ResponseName string     `json:"responseName" yaml:"responseName"`
	Name         string     `json:"name" yaml:"name"`
	Type         string     `json:"type" yaml:"type"`
	Deprecated   bool       `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Selection    *Selection `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// FragmentRef records a fragment applied to a selection and the fragments
// applied inside it.
type FragmentRef struct {
	Name          string         `json:"name" yaml:"name"`
	Kind          string         `json:"kind" yaml:"kind"`
	TypeCondition string         `json:"typeCondition" yaml:"typeCondition"`
	Children      []*FragmentRef `json:"children,omitempty" yaml:"children,omitempty"`
}
