package sandbox

import (
	"os"
	"strings"
)

// Environment variables the default boundary source consults.
const (
	DefaultRootVar  = "SANDBOX_ROOT"
	DefaultAllowVar = "ALLOW_OUTSIDE_MODIFICATIONS"
)

// Boundary is the sandbox configuration value: the root directory outside
// which mutations are disallowed, plus the override flag.
type Boundary struct {
	// Root is the sandbox root directory.
	Root string
	// AllowOutside permits mutations outside Root when true.
	AllowOutside bool
}

// BoundarySource yields the current boundary. The guard consults its source
// on every authorization, so a source backed by mutable configuration takes
// effect immediately without restart.
type BoundarySource interface {
	Boundary() (Boundary, error)
}

// StaticSource is a BoundarySource returning a fixed boundary.
type StaticSource Boundary

// Boundary implements BoundarySource.
func (s StaticSource) Boundary() (Boundary, error) {
	return Boundary(s), nil
}

// EnvSource reads the boundary from the environment on every call.
type EnvSource struct {
	// RootVar names the root variable; empty means DefaultRootVar.
	RootVar string
	// AllowVar names the override flag variable; empty means DefaultAllowVar.
	AllowVar string
	// DefaultRoot is used when the root variable is unset. When it is also
	// empty, the process working directory is used.
	DefaultRoot string
}

// Boundary implements BoundarySource.
func (e EnvSource) Boundary() (Boundary, error) {
	rootVar := e.RootVar
	if rootVar == "" {
		rootVar = DefaultRootVar
	}
	allowVar := e.AllowVar
	if allowVar == "" {
		allowVar = DefaultAllowVar
	}

	root := os.Getenv(rootVar)
	if root == "" {
		root = e.DefaultRoot
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Boundary{}, err
		}
		root = cwd
	}

	allow := strings.EqualFold(strings.TrimSpace(os.Getenv(allowVar)), "true")
	return Boundary{Root: root, AllowOutside: allow}, nil
}
