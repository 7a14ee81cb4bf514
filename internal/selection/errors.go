package selection

import (
	"errors"
	"fmt"

	language "github.com/hanpama/gqlshape/internal/language"
)

var (
	ErrUnknownField       = errors.New("unknown field")
	ErrUnresolvedFragment = errors.New("unresolved fragment")
	ErrUnresolvedType     = errors.New("unresolved type")
	ErrFragmentCycle      = errors.New("fragment cycle")
)

// UnknownFieldError reports a selected field that the type does not declare.
type UnknownFieldError struct {
	TypeName  string
	FieldName string
	Path      *Path
	Position  *language.Position
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("Field %q does not exist on type %q", e.FieldName, e.TypeName) + location(e.Position)
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// UnresolvedFragmentError reports a spread of a fragment the document does not define.
type UnresolvedFragmentError struct {
	Name     string
	Position *language.Position
}

func (e *UnresolvedFragmentError) Error() string {
	return fmt.Sprintf("Could not resolve fragment %q", e.Name) + location(e.Position)
}

func (e *UnresolvedFragmentError) Is(target error) bool { return target == ErrUnresolvedFragment }

// UnresolvedTypeError reports a type condition naming a type the schema lacks.
type UnresolvedTypeError struct {
	Name     string
	Position *language.Position
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("Unknown type %q in type condition", e.Name) + location(e.Position)
}

func (e *UnresolvedTypeError) Is(target error) bool { return target == ErrUnresolvedType }

// FragmentCycleError reports a named fragment that spreads itself, directly
// or through other fragments.
type FragmentCycleError struct {
	Name     string
	Position *language.Position
}

func (e *FragmentCycleError) Error() string {
	return fmt.Sprintf("Fragment %q spreads itself", e.Name) + location(e.Position)
}

func (e *FragmentCycleError) Is(target error) bool { return target == ErrFragmentCycle }

func location(pos *language.Position) string {
	if pos == nil {
		return ""
	}
	if pos.Src != nil && pos.Src.Name != "" {
		return fmt.Sprintf(" %s:%d:%d", pos.Src.Name, pos.Line, pos.Column)
	}
	return fmt.Sprintf(" %d:%d", pos.Line, pos.Column)
}
