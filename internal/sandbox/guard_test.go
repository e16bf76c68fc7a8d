package sandbox

import (
	stdErrors "errors"
	"path/filepath"
	"testing"
)

func TestGuardAuthorize(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work")

	tests := []struct {
		name      string
		boundary  Boundary
		path      string
		wantError bool
	}{
		{
			name:     "path inside root",
			boundary: Boundary{Root: root},
			path:     filepath.Join(root, "notes.txt"),
		},
		{
			name:     "nested path inside root",
			boundary: Boundary{Root: root},
			path:     filepath.Join(root, "a", "b", "c.txt"),
		},
		{
			name:     "root itself",
			boundary: Boundary{Root: root},
			path:     root,
		},
		{
			name:      "path outside root",
			boundary:  Boundary{Root: root},
			path:      filepath.Join(string(filepath.Separator), "etc", "passwd"),
			wantError: true,
		},
		{
			name:      "sibling sharing root as string prefix",
			boundary:  Boundary{Root: root},
			path:      root + "-evil" + string(filepath.Separator) + "x.txt",
			wantError: true,
		},
		{
			name:      "dot-dot escaping the root",
			boundary:  Boundary{Root: root},
			path:      filepath.Join(root, "..", "other", "x.txt"),
			wantError: true,
		},
		{
			name:     "dot-dot staying inside the root",
			boundary: Boundary{Root: root},
			path:     filepath.Join(root, "sub", "..", "x.txt"),
		},
		{
			name:     "outside root with override",
			boundary: Boundary{Root: root, AllowOutside: true},
			path:     filepath.Join(string(filepath.Separator), "etc", "passwd"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard, err := NewGuard(StaticSource(tt.boundary))
			if err != nil {
				t.Fatalf("NewGuard failed: %v", err)
			}
			err = guard.Authorize(tt.path)
			if tt.wantError {
				if err == nil {
					t.Fatalf("Authorize(%q) = nil, want violation", tt.path)
				}
				var violation *ViolationError
				if !stdErrors.As(err, &violation) {
					t.Fatalf("Authorize(%q) = %v, want *ViolationError", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authorize(%q) = %v, want nil", tt.path, err)
			}
		})
	}
}

func TestNewGuardRequiresSource(t *testing.T) {
	if _, err := NewGuard(nil); err == nil {
		t.Fatal("NewGuard(nil) = nil error, want failure")
	}
}

func TestEnvSourceReadsEnvironmentPerCall(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()

	t.Setenv(DefaultRootVar, root)
	t.Setenv(DefaultAllowVar, "")

	guard, err := NewGuard(EnvSource{})
	if err != nil {
		t.Fatalf("NewGuard failed: %v", err)
	}

	outside := filepath.Join(other, "x.txt")
	if err := guard.Authorize(outside); err == nil {
		t.Fatalf("Authorize(%q) = nil, want violation", outside)
	}

	// Flipping the override between calls must take effect without a new guard.
	t.Setenv(DefaultAllowVar, "true")
	if err := guard.Authorize(outside); err != nil {
		t.Fatalf("Authorize(%q) with override = %v, want nil", outside, err)
	}

	// Moving the root between calls must take effect too.
	t.Setenv(DefaultAllowVar, "false")
	t.Setenv(DefaultRootVar, other)
	if err := guard.Authorize(outside); err != nil {
		t.Fatalf("Authorize(%q) after root change = %v, want nil", outside, err)
	}
}

func TestEnvSourceDefaultRootFallback(t *testing.T) {
	root := t.TempDir()
	t.Setenv(DefaultRootVar, "")
	t.Setenv(DefaultAllowVar, "")

	source := EnvSource{DefaultRoot: root}
	boundary, err := source.Boundary()
	if err != nil {
		t.Fatalf("Boundary failed: %v", err)
	}
	if boundary.Root != root {
		t.Errorf("Root = %q, want %q", boundary.Root, root)
	}
	if boundary.AllowOutside {
		t.Error("AllowOutside = true, want false")
	}
}

func TestEnvSourceAllowParsing(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{" true ", true},
		{"false", false},
		{"1", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			t.Setenv(DefaultRootVar, t.TempDir())
			t.Setenv(DefaultAllowVar, tt.value)
			boundary, err := EnvSource{}.Boundary()
			if err != nil {
				t.Fatalf("Boundary failed: %v", err)
			}
			if boundary.AllowOutside != tt.want {
				t.Errorf("AllowOutside for %q = %v, want %v", tt.value, boundary.AllowOutside, tt.want)
			}
		})
	}
}
