package vfs

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		cwd      string
		expected string
	}{
		{
			name:     "blank resolves to cwd",
			path:     "",
			cwd:      "/home/user",
			expected: "/home/user",
		},
		{
			name:     "whitespace resolves to cwd",
			path:     "   ",
			cwd:      "/tmp",
			expected: "/tmp",
		},
		{
			name:     "tilde alone is home",
			path:     "~",
			cwd:      "/tmp",
			expected: "/home/user",
		},
		{
			name:     "tilde prefix",
			path:     "~/documents",
			cwd:      "/tmp",
			expected: "/home/user/documents",
		},
		{
			name:     "absolute ignores cwd",
			path:     "/etc/hosts",
			cwd:      "/home/user",
			expected: "/etc/hosts",
		},
		{
			name:     "relative joins cwd",
			path:     "documents/notes.txt",
			cwd:      "/home/user",
			expected: "/home/user/documents/notes.txt",
		},
		{
			name:     "dot is a no-op",
			path:     "./readme.txt",
			cwd:      "/home/user",
			expected: "/home/user/readme.txt",
		},
		{
			name:     "dotdot pops a segment",
			path:     "../user/readme.txt",
			cwd:      "/home/other",
			expected: "/home/user/readme.txt",
		},
		{
			name:     "dotdot at root is a no-op",
			path:     "..",
			cwd:      "/",
			expected: "/",
		},
		{
			name:     "dotdot past root never underflows",
			path:     "../../../../etc",
			cwd:      "/home",
			expected: "/etc",
		},
		{
			name:     "duplicate separators collapse",
			path:     "//etc///hosts",
			cwd:      "/",
			expected: "/etc/hosts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.path, tt.cwd)
			if got != tt.expected {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.path, tt.cwd, got, tt.expected)
			}
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	paths := []string{"", "~", "~/a/b", "../x", "a/./b/../c", "/etc//hosts"}
	cwd := "/home/user"
	for _, p := range paths {
		once := Resolve(p, cwd)
		twice := Resolve(once, cwd)
		if once != twice {
			t.Errorf("Resolve not idempotent for %q: %q != %q", p, once, twice)
		}
	}
}

func TestPathHelpers(t *testing.T) {
	if got := Parent("/a/b/c"); got != "/a/b" {
		t.Errorf("Parent = %q, want /a/b", got)
	}
	if got := Parent("/a"); got != "/" {
		t.Errorf("Parent of top-level = %q, want /", got)
	}
	if got := Parent("/"); got != "/" {
		t.Errorf("Parent of root = %q, want /", got)
	}
	if got := Base("/a/b/c"); got != "c" {
		t.Errorf("Base = %q, want c", got)
	}
	if got := Base("/"); got != "" {
		t.Errorf("Base of root = %q, want empty", got)
	}
	if got := Join("/", "x"); got != "/x" {
		t.Errorf("Join at root = %q, want /x", got)
	}
	if got := Join("/a", "x"); got != "/a/x" {
		t.Errorf("Join = %q, want /a/x", got)
	}
}
