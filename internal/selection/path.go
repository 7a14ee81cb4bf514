package selection

import "strings"

// Path is an immutable chain of response names from the operation root to a
// selection. The zero value is not usable; start from Root.
type Path struct {
	parent *Path
	name   string
	depth  int
}

var root = &Path{}

// Root returns the empty path.
func Root() *Path { return root }

// Append returns a new path with name appended. p is not modified.
func (p *Path) Append(name string) *Path {
	return &Path{parent: p, name: name, depth: p.depth + 1}
}

// Name returns the last segment, or "" for the root.
func (p *Path) Name() string { return p.name }

// Parent returns the enclosing path, or nil for the root.
func (p *Path) Parent() *Path { return p.parent }

func (p *Path) IsRoot() bool { return p.parent == nil }

func (p *Path) Depth() int { return p.depth }

// Segments returns the response names from the root down.
func (p *Path) Segments() []string {
	out := make([]string, p.depth)
	for cur := p; cur.parent != nil; cur = cur.parent {
		out[cur.depth-1] = cur.name
	}
	return out
}

// String renders the path as "/a/b". The root renders as "/".
func (p *Path) String() string {
	if p.IsRoot() {
		return "/"
	}
	return "/" + strings.Join(p.Segments(), "/")
}
