package dependency

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by the graph and everything that operates on it. They are
// wrapped with context, so compare with errors.Is.
var (
	// ErrNilArgument indicates a required argument was nil or the zero value.
	ErrNilArgument = errors.New("required argument is nil")

	// ErrDuplicate indicates a node, or the edges of a source node, were
	// already registered.
	ErrDuplicate = errors.New("already registered")

	// ErrNotMember indicates an operation referenced something that is not part
	// of the graph it targets.
	ErrNotMember = errors.New("not part of the graph")

	// ErrNotFound indicates a lookup matched nothing.
	ErrNotFound = errors.New("node cannot be found")

	// ErrCycle indicates an edge would have introduced a circular reference.
	ErrCycle = errors.New("circular reference found")
)

// CycleError is returned by AddEdge and AddEdges when the requested edges
// would close a cycle. Path lists the cycle, starting and ending with the same
// node; a self-edge yields a two element path.
type CycleError[T any] struct {
	Path []T
}

// Error implements the error interface.
func (e *CycleError[T]) Error() string {
	parts := make([]string, len(e.Path))
	for i, n := range e.Path {
		parts[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(parts, " -> "))
}

// Is makes errors.Is(err, ErrCycle) hold for every CycleError.
func (e *CycleError[T]) Is(target error) bool {
	return target == ErrCycle
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCycle reports whether err is or wraps a cycle error.
func IsCycle(err error) bool {
	return errors.Is(err, ErrCycle)
}

// IsNotMember reports whether err is or wraps ErrNotMember.
func IsNotMember(err error) bool {
	return errors.Is(err, ErrNotMember)
}
