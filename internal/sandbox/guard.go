package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ViolationError reports a mutation attempted outside the sandbox root.
type ViolationError struct {
	// Path is the resolved path that was attempted.
	Path string
	// Root is the resolved sandbox root in effect at the time.
	Root string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("modification outside sandbox root %s is not allowed: attempted to modify %s", e.Root, e.Path)
}

// Guard is the sole authority on whether a path may be mutated. It holds no
// boundary state of its own; the boundary is re-read from the injected
// source on every call.
type Guard struct {
	source BoundarySource
}

// NewGuard creates a Guard backed by the given boundary source.
func NewGuard(source BoundarySource) (*Guard, error) {
	if source == nil {
		return nil, fmt.Errorf("boundary source is required")
	}
	return &Guard{source: source}, nil
}

// Authorize resolves candidatePath and validates it against the current
// boundary. It returns nil when the mutation is permitted and a
// *ViolationError when it is not. Callers must invoke it before any
// filesystem access, including existence checks.
//
// Resolution collapses "." and ".." segments; symlinks are not followed.
func (g *Guard) Authorize(candidatePath string) error {
	boundary, err := g.source.Boundary()
	if err != nil {
		return fmt.Errorf("resolving sandbox boundary: %w", err)
	}
	if boundary.AllowOutside {
		return nil
	}

	abs, err := filepath.Abs(candidatePath)
	if err != nil {
		return fmt.Errorf("resolving path %s: %w", candidatePath, err)
	}
	root, err := filepath.Abs(boundary.Root)
	if err != nil {
		return fmt.Errorf("resolving sandbox root %s: %w", boundary.Root, err)
	}

	if !contains(root, abs) {
		return &ViolationError{Path: abs, Root: root}
	}
	return nil
}

// contains reports whether path equals root or is nested under it. The
// comparison is separator-terminated so that root /work rejects /work-evil.
func contains(root, path string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}
