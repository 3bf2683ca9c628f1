package shell

import (
	"math/rand"
	"strings"
	"testing"
	"time"
)

// newTestSession builds a session with a deterministic clock and
// randomness source.
func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession()
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })
	s.SetRandom(rand.New(rand.NewSource(1)))
	return s
}

// mustExec runs a line and fails the test if the result is not OK.
func mustExec(t *testing.T, s *Session, line string) Result {
	t.Helper()
	res := s.Execute(line)
	if !res.OK {
		t.Fatalf("Execute(%q) failed: exit=%d output=%q", line, res.ExitCode, res.Output)
	}
	return res
}

func TestExecuteBasics(t *testing.T) {
	s := newTestSession(t)

	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"quoted echo", `echo "Hello World"`, "Hello World\n"},
		{"echo without newline", `echo -n "no newline"`, "no newline"},
		{"pwd starts at home", "pwd", "/home/user\n"},
		{"whoami", "whoami", "user\n"},
		{"uname", "uname", "TermOS\n"},
		{"date is deterministic", "date", "Fri Mar 01 12:00:00 UTC 2024\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustExec(t, s, tt.line)
			if res.Output != tt.expected {
				t.Errorf("Execute(%q) = %q, want %q", tt.line, res.Output, tt.expected)
			}
		})
	}
}

func TestExecuteBlankLine(t *testing.T) {
	s := newTestSession(t)
	res := s.Execute("   ")
	if !res.OK || res.Output != "" {
		t.Errorf("blank line: %+v", res)
	}
	if len(s.History()) != 0 {
		t.Error("blank line was recorded in history")
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	s := newTestSession(t)
	res := s.Execute("frobnicate --fast")
	if res.OK || res.ExitCode != 127 {
		t.Errorf("unknown command: ok=%v exit=%d", res.OK, res.ExitCode)
	}
	want := "frobnicate: command not found. Type 'help' for available commands.\n"
	if res.Output != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}
}

func TestExecutePipeline(t *testing.T) {
	s := newTestSession(t)

	// The readme ships with exactly 8 lines.
	res := mustExec(t, s, "cat /home/user/readme.txt | wc -l")
	if strings.TrimSpace(res.Output) != "8" {
		t.Errorf("wc -l over readme = %q, want 8", res.Output)
	}

	// Three stages: filter then count.
	res = mustExec(t, s, "cat readme.txt | grep memory | wc -l")
	if strings.TrimSpace(res.Output) != "2" {
		t.Errorf("grep memory | wc -l = %q, want 2", res.Output)
	}

	// A failing stage short-circuits the rest.
	res = s.Execute("cat missing.txt | wc -l")
	if res.OK {
		t.Error("pipeline with failing first stage reported success")
	}
	if !strings.Contains(res.Output, "No such file or directory") {
		t.Errorf("short-circuit output = %q", res.Output)
	}
}

func TestExecuteRedirect(t *testing.T) {
	s := newTestSession(t)

	mustExec(t, s, "echo secret > /tmp/out.txt")
	res := mustExec(t, s, "cat /tmp/out.txt")
	if res.Output != "secret" {
		t.Errorf("round trip = %q, want %q", res.Output, "secret")
	}

	// Append accumulates lines.
	mustExec(t, s, "echo one > /tmp/a.txt")
	mustExec(t, s, "echo two >> /tmp/a.txt")
	res = mustExec(t, s, "cat /tmp/a.txt")
	if res.Output != "one\ntwo" {
		t.Errorf("append = %q, want %q", res.Output, "one\ntwo")
	}

	// Overwrite replaces.
	mustExec(t, s, "echo three > /tmp/a.txt")
	res = mustExec(t, s, "cat /tmp/a.txt")
	if res.Output != "three" {
		t.Errorf("overwrite = %q", res.Output)
	}

	// Redirecting a failing command writes nothing.
	res = s.Execute("cat missing.txt > /tmp/never.txt")
	if res.OK {
		t.Error("redirect of failing command reported success")
	}
	if _, err := s.FS().Read("/tmp/never.txt"); err == nil {
		t.Error("failed command still wrote its redirect target")
	}

	// A trailing redirect captures the whole pipeline's output.
	mustExec(t, s, "cat readme.txt | grep memory > /tmp/hits.txt")
	content, err := s.FS().Read("/tmp/hits.txt")
	if err != nil {
		t.Fatalf("reading hits.txt: %v", err)
	}
	if got := strings.Count(content, "memory"); got != 2 {
		t.Errorf("captured %d matches, want 2 (content %q)", got, content)
	}
}

func TestExecuteRedirectSyntaxErrors(t *testing.T) {
	s := newTestSession(t)
	res := s.Execute("> /tmp/x")
	if res.OK || !strings.Contains(res.Output, "missing command") {
		t.Errorf("bare redirect: %+v", res)
	}
	res = s.Execute("echo hi >")
	if res.OK || !strings.Contains(res.Output, "missing redirect target") {
		t.Errorf("missing target: %+v", res)
	}
}

func TestExecuteQuotedControlChars(t *testing.T) {
	s := newTestSession(t)
	res := mustExec(t, s, `echo "a|b"`)
	if res.Output != "a|b\n" {
		t.Errorf("quoted pipe = %q", res.Output)
	}
	res = mustExec(t, s, `echo "1 > 0"`)
	if res.Output != "1 > 0\n" {
		t.Errorf("quoted redirect = %q", res.Output)
	}
}

func TestExecuteAlias(t *testing.T) {
	s := newTestSession(t)

	mustExec(t, s, "alias greet='echo hi'")
	res := mustExec(t, s, "greet there")
	if res.Output != "hi there\n" {
		t.Errorf("alias expansion = %q, want %q", res.Output, "hi there\n")
	}

	// Defaults work out of the box.
	res = mustExec(t, s, "ll")
	if !strings.Contains(res.Output, "-rw-r--r--") {
		t.Errorf("ll did not produce a long listing: %q", res.Output)
	}

	res = s.Execute("alias broken")
	if res.OK || !strings.Contains(res.Output, "invalid syntax") {
		t.Errorf("malformed alias: %+v", res)
	}
}

func TestExecuteHistory(t *testing.T) {
	s := newTestSession(t)
	mustExec(t, s, "pwd")
	mustExec(t, s, "pwd") // consecutive duplicate, coalesced
	mustExec(t, s, "whoami")
	res := mustExec(t, s, "history")

	want := "    1  pwd\n    2  whoami\n    3  history\n"
	if res.Output != want {
		t.Errorf("history = %q, want %q", res.Output, want)
	}

	mustExec(t, s, "history -c")
	res = mustExec(t, s, "history")
	// only the clearing and this listing survive
	if strings.Contains(res.Output, "pwd") {
		t.Errorf("history after -c still has old entries: %q", res.Output)
	}
}

func TestExecuteCd(t *testing.T) {
	s := newTestSession(t)

	mustExec(t, s, "cd /tmp")
	if s.WorkingDir() != "/tmp" {
		t.Errorf("cwd = %q", s.WorkingDir())
	}
	mustExec(t, s, "cd")
	if s.WorkingDir() != "/home/user" {
		t.Errorf("cd without args: cwd = %q", s.WorkingDir())
	}
	mustExec(t, s, "cd ..")
	if s.WorkingDir() != "/home" {
		t.Errorf("cd ..: cwd = %q", s.WorkingDir())
	}

	res := s.Execute("cd /nope")
	if res.OK || !strings.Contains(res.Output, "No such file or directory") {
		t.Errorf("cd to missing: %+v", res)
	}
	res = s.Execute("cd /etc/hosts")
	if res.OK || !strings.Contains(res.Output, "Not a directory") {
		t.Errorf("cd to file: %+v", res)
	}
	// failures leave the working directory alone
	if s.WorkingDir() != "/home" {
		t.Errorf("cwd moved on failed cd: %q", s.WorkingDir())
	}
}

func TestExecuteLsOrdering(t *testing.T) {
	s := newTestSession(t)

	res := mustExec(t, s, "ls -a")
	got := strings.Split(strings.TrimSuffix(res.Output, "\n"), "\n")
	want := []string{
		".", "..",
		".secrets", "documents", "downloads", "projects", "scripts",
		".bashrc", "about.txt", "contact.txt", "readme.txt",
	}
	if len(got) != len(want) {
		t.Fatalf("ls -a = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ls -a[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Without -a the dotfiles disappear.
	res = mustExec(t, s, "ls")
	if strings.Contains(res.Output, ".secrets") || strings.Contains(res.Output, ".bashrc") {
		t.Errorf("ls leaked hidden entries: %q", res.Output)
	}
}

func TestExecuteGrepErrors(t *testing.T) {
	s := newTestSession(t)

	res := s.Execute(`grep -i "flag" nonexistent.txt`)
	if res.OK || res.ExitCode != 1 {
		t.Errorf("grep missing file: ok=%v exit=%d", res.OK, res.ExitCode)
	}
	want := "grep: nonexistent.txt: No such file or directory\n"
	if res.Output != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}

	// Zero matches: silent, exit 1.
	res = s.Execute("grep zzznothere readme.txt")
	if res.OK || res.ExitCode != 1 || res.Output != "" {
		t.Errorf("zero matches: ok=%v exit=%d output=%q", res.OK, res.ExitCode, res.Output)
	}

	// Directories need -r.
	res = s.Execute("grep flag documents")
	if res.OK || !strings.Contains(res.Output, "Is a directory") {
		t.Errorf("grep on dir: %+v", res)
	}
	res = mustExec(t, s, "grep -r flag documents")
	if !strings.Contains(res.Output, "notes.txt") {
		t.Errorf("grep -r output = %q", res.Output)
	}

	res = s.Execute("grep [ readme.txt")
	if res.OK || !strings.Contains(res.Output, "invalid pattern") {
		t.Errorf("bad regex: %+v", res)
	}
}

func TestExecuteRmGuard(t *testing.T) {
	s := newTestSession(t)

	res := mustExec(t, s, "rm -rf /")
	if !strings.Contains(res.Output, "just kidding") {
		t.Errorf("rm -rf / output = %q", res.Output)
	}
	// Nothing was touched.
	for _, path := range []string{"/home/user/readme.txt", "/etc/hosts", "/var/log/system.log"} {
		if _, err := s.FS().Lookup(path); err != nil {
			t.Errorf("rm -rf / deleted %s", path)
		}
	}

	// Real removal still works.
	mustExec(t, s, "touch /tmp/gone.txt")
	mustExec(t, s, "rm /tmp/gone.txt")
	if _, err := s.FS().Lookup("/tmp/gone.txt"); err == nil {
		t.Error("rm left the file in place")
	}

	res = s.Execute("rm documents")
	if res.OK || !strings.Contains(res.Output, "Directory not empty") {
		t.Errorf("rm on populated dir: %+v", res)
	}
	mustExec(t, s, "rm -r documents")
	if _, err := s.FS().Lookup("/home/user/documents"); err == nil {
		t.Error("rm -r left the directory in place")
	}
}

func TestExecuteEffects(t *testing.T) {
	s := newTestSession(t)

	res := mustExec(t, s, "clear")
	if len(res.Effects) != 1 || res.Effects[0] != EffectClearScreen {
		t.Errorf("clear effects = %v", res.Effects)
	}
	res = mustExec(t, s, "matrix")
	if len(res.Effects) != 1 || res.Effects[0] != EffectMatrix {
		t.Errorf("matrix effects = %v", res.Effects)
	}
	// cls is an alias for clear
	res = mustExec(t, s, "cls")
	if len(res.Effects) != 1 || res.Effects[0] != EffectClearScreen {
		t.Errorf("cls effects = %v", res.Effects)
	}
}

func TestExecuteRandomizedCommands(t *testing.T) {
	s := newTestSession(t)

	res := s.Execute("sudo rm -rf /")
	if res.OK || res.ExitCode != 1 {
		t.Errorf("sudo: ok=%v exit=%d", res.OK, res.ExitCode)
	}
	if !contains(sudoDenials, strings.TrimSuffix(res.Output, "\n")) {
		t.Errorf("sudo output not a known denial: %q", res.Output)
	}

	res = mustExec(t, s, "fortune")
	if !contains(fortunes, strings.TrimSuffix(res.Output, "\n")) {
		t.Errorf("fortune output unknown: %q", res.Output)
	}

	res = mustExec(t, s, "exit")
	if !contains(exitMessages, strings.TrimSuffix(res.Output, "\n")) {
		t.Errorf("exit output unknown: %q", res.Output)
	}
}

func contains(candidates []string, s string) bool {
	for _, c := range candidates {
		if c == s {
			return true
		}
	}
	return false
}

func TestExecuteDeferredDigest(t *testing.T) {
	s := newTestSession(t)

	// sha256("abc") is a published test vector.
	res := mustExec(t, s, "echo -n abc | sha256sum")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  -\n"
	if res.Output != want {
		t.Errorf("sha256sum = %q, want %q", res.Output, want)
	}

	// Deferred stages resolve inside pipelines too.
	res = mustExec(t, s, "echo -n abc | sha256sum | cut -d ' ' -f 1")
	if strings.TrimSpace(res.Output) != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("piped sha256sum = %q", res.Output)
	}
}

func TestExecuteSessionIsolation(t *testing.T) {
	a := newTestSession(t)
	b := newTestSession(t)

	if a.ID() == b.ID() {
		t.Error("sessions share an id")
	}

	mustExec(t, a, "echo leak > /tmp/only-a.txt")
	if _, err := b.FS().Read("/tmp/only-a.txt"); err == nil {
		t.Error("write in one session visible in another")
	}

	mustExec(t, a, "cd /tmp")
	if b.WorkingDir() != "/home/user" {
		t.Error("cd in one session moved another")
	}

	mustExec(t, a, "alias only='echo a'")
	if _, ok := b.Aliases().Get("only"); ok {
		t.Error("alias in one session visible in another")
	}
}

func TestExecuteHandlerPanicIsContained(t *testing.T) {
	s := newTestSession(t)
	register(&handler{
		name:     "selfdestruct",
		category: catFun,
		usage:    "selfdestruct",
		desc:     "panics on purpose",
		run: func(*Session, []string, string) Result {
			panic("boom")
		},
	})
	defer delete(registry, "selfdestruct")

	res := s.Execute("selfdestruct")
	if res.OK {
		t.Error("panicking handler reported success")
	}
	if !strings.Contains(res.Output, "Error executing selfdestruct") {
		t.Errorf("panic output = %q", res.Output)
	}
	// The session still works afterwards.
	mustExec(t, s, "pwd")
}
