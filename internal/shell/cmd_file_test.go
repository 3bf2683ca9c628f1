package shell

import (
	"strings"
	"testing"
)

func TestCat(t *testing.T) {
	s := newTestSession(t)

	// A single file passes through verbatim, trailing newline included.
	res := mustExec(t, s, "cat /etc/motd")
	if res.Output != "Welcome. This system forgets everything when you leave.\n" {
		t.Errorf("cat = %q", res.Output)
	}

	// Multiple files are separated by a blank line.
	res = mustExec(t, s, "cat /etc/motd /etc/hosts")
	want := "Welcome. This system forgets everything when you leave.\n\n127.0.0.1 localhost\n127.0.1.1 termshell\n"
	if res.Output != want {
		t.Errorf("cat multi = %q, want %q", res.Output, want)
	}

	res = mustExec(t, s, "cat -n /etc/hosts")
	want = "     1  127.0.0.1 localhost\n     2  127.0.1.1 termshell\n"
	if res.Output != want {
		t.Errorf("cat -n = %q, want %q", res.Output, want)
	}

	res = s.Execute("cat missing.txt")
	if res.OK || res.Output != "cat: missing.txt: No such file or directory\n" {
		t.Errorf("cat missing: %+v", res)
	}
	res = s.Execute("cat documents")
	if res.OK || !strings.Contains(res.Output, "Is a directory") {
		t.Errorf("cat dir: %+v", res)
	}
	res = s.Execute("cat")
	if res.OK || !strings.Contains(res.Output, "missing operand") {
		t.Errorf("cat without input: %+v", res)
	}
}

func TestHeadTail(t *testing.T) {
	s := newTestSession(t)

	res := mustExec(t, s, "head -n 1 readme.txt")
	if res.Output != "Welcome to termshell, a small Unix-like terminal.\n" {
		t.Errorf("head -n 1 = %q", res.Output)
	}

	// Fused -N form.
	res = mustExec(t, s, "head -2 readme.txt")
	if got := strings.Count(res.Output, "\n"); got != 2 {
		t.Errorf("head -2 returned %d lines", got)
	}

	res = mustExec(t, s, "tail -n 1 readme.txt")
	if res.Output != "There are a few surprises hidden in the tree. Happy hunting.\n" {
		t.Errorf("tail -n 1 = %q", res.Output)
	}

	// Asking for more lines than exist returns everything.
	res = mustExec(t, s, "head -n 100 /etc/hosts")
	if got := strings.Count(res.Output, "\n"); got != 2 {
		t.Errorf("head past end returned %d lines", got)
	}

	res = s.Execute("head -n x readme.txt")
	if res.OK || !strings.Contains(res.Output, "invalid line count") {
		t.Errorf("head bad count: %+v", res)
	}
}

func TestFileClassification(t *testing.T) {
	s := newTestSession(t)

	tests := []struct {
		path     string
		expected string
	}{
		{"downloads/archive.zip", "Zip archive data"},
		{"downloads/report.pdf", "PDF document"},
		{"downloads/index.html", "HTML document"},
		{"downloads/feed.xml", "XML document"},
		{"downloads/data.json", "JSON data"},
		{"downloads/random.bin", "data"},
		{"scripts/hello.sh", "Bourne-Again shell script, ASCII text executable"},
		{"scripts/stats.py", "Python script, ASCII text executable"},
		{"readme.txt", "ASCII text"},
		{"documents", "directory"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := mustExec(t, s, "file "+tt.path)
			want := tt.path + ": " + tt.expected + "\n"
			if res.Output != want {
				t.Errorf("file %s = %q, want %q", tt.path, res.Output, want)
			}
		})
	}

	mustExec(t, s, "touch /tmp/empty.txt")
	res := mustExec(t, s, "file /tmp/empty.txt")
	if res.Output != "/tmp/empty.txt: empty\n" {
		t.Errorf("file on empty = %q", res.Output)
	}

	res = s.Execute("file /nope")
	if res.OK || !strings.Contains(res.Output, "No such file or directory") {
		t.Errorf("file missing: %+v", res)
	}
}

func TestStat(t *testing.T) {
	s := newTestSession(t)

	res := mustExec(t, s, "stat readme.txt")
	for _, line := range []string{
		"  File: readme.txt\n",
		"  Type: regular file\n",
		"Access: -rw-r--r--\n",
		"  Path: /home/user/readme.txt\n",
	} {
		if !strings.Contains(res.Output, line) {
			t.Errorf("stat output missing %q:\n%s", line, res.Output)
		}
	}

	res = mustExec(t, s, "stat /tmp")
	if !strings.Contains(res.Output, "  Type: directory\n") {
		t.Errorf("stat dir = %q", res.Output)
	}
	if !strings.Contains(res.Output, "Access: drwxr-xr-x\n") {
		t.Errorf("stat dir perm = %q", res.Output)
	}
}

func TestMkdirTouch(t *testing.T) {
	s := newTestSession(t)

	mustExec(t, s, "mkdir /tmp/work")
	mustExec(t, s, "cd /tmp/work")
	if s.WorkingDir() != "/tmp/work" {
		t.Errorf("cwd = %q", s.WorkingDir())
	}

	res := s.Execute("mkdir /tmp/work")
	if res.OK || !strings.Contains(res.Output, "File exists") {
		t.Errorf("duplicate mkdir: %+v", res)
	}
	res = s.Execute("mkdir /nope/deep")
	if res.OK || !strings.Contains(res.Output, "No such file or directory") {
		t.Errorf("mkdir missing parent: %+v", res)
	}

	mustExec(t, s, "touch notes.txt")
	res = mustExec(t, s, "cat notes.txt")
	if res.Output != "" {
		t.Errorf("touched file not empty: %q", res.Output)
	}
}

func TestFind(t *testing.T) {
	s := newTestSession(t)

	res := mustExec(t, s, "find / -name 'flag*'")
	if res.Output != "/home/user/.secrets/flag.txt\n" {
		t.Errorf("find flag* = %q", res.Output)
	}

	res = mustExec(t, s, "find documents")
	want := "/home/user/documents\n/home/user/documents/notes.txt\n/home/user/documents/todo.txt\n"
	if res.Output != want {
		t.Errorf("find documents = %q, want %q", res.Output, want)
	}

	// Matching is case-insensitive.
	res = mustExec(t, s, "find / -name 'README.txt'")
	if res.Output != "/home/user/readme.txt\n" {
		t.Errorf("case-insensitive find = %q", res.Output)
	}

	res = mustExec(t, s, "find / -name 'no-such-name'")
	if res.Output != "" {
		t.Errorf("no matches = %q", res.Output)
	}

	res = s.Execute("find /nope")
	if res.OK || res.Output != "find: /nope: No such file or directory\n" {
		t.Errorf("find missing root: %+v", res)
	}
}
