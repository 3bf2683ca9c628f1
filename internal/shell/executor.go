package shell

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"termshell/internal/logging"
	"termshell/internal/vfs"
)

var execLogger = logging.GetLogger().WithPrefix("exec")

// handler is one builtin command: metadata for help/man plus the
// implementation. Handlers are pure functions of (session, args,
// piped input); they never call each other and reach session state
// only through the explicitly passed handle.
type handler struct {
	name     string
	category string
	usage    string
	desc     string
	options  []string
	escapes  []string
	examples []string
	run      func(s *Session, args []string, piped string) Result
}

// Help/man category names, in display order.
const (
	catNav      = "Navigation"
	catFiles    = "Files"
	catText     = "Text Processing"
	catEncoding = "Encoding & Hashing"
	catSystem   = "System"
	catFun      = "Fun"
)

var categoryOrder = []string{catNav, catFiles, catText, catEncoding, catSystem, catFun}

var registry = make(map[string]*handler)

// register installs a builtin. Called from init functions only.
func register(hs ...*handler) {
	for _, h := range hs {
		registry[h.name] = h
	}
}

// commandNames returns all builtin names sorted.
func commandNames() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Execute runs one raw command line to completion and returns its
// result. This is the only entry point the UI needs.
//
// The line is trimmed, recorded in history, alias-expanded on its
// first token, then classified: an unquoted pipe selects the pipeline
// path, an unquoted redirect the redirect path, anything else runs as
// a single command. Deferred results are resolved before returning.
func (s *Session) Execute(line string) Result {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Success("")
	}
	s.history.Append(trimmed)
	expanded := s.aliases.Expand(trimmed)
	execLogger.Debug("session %s: %q", s.id, expanded)

	switch {
	case ContainsUnquotedPipe(expanded):
		return s.runPipeline(expanded).resolve()
	case ContainsUnquotedRedirect(expanded):
		return s.runRedirect(expanded, "").resolve()
	default:
		return s.runSingle(expanded, "").resolve()
	}
}

// runSingle tokenizes and dispatches one plain command.
func (s *Session) runSingle(line, piped string) Result {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return Errorf("syntax error: empty command")
	}
	name := tokens[0].Text
	args := tokenTexts(tokens[1:])
	h, ok := registry[name]
	if !ok {
		return Failure(fmt.Sprintf("%s: command not found. Type 'help' for available commands.\n", name), 127)
	}
	return s.invoke(h, args, piped)
}

// invoke guards a handler call so a defect inside a builtin becomes an
// error result instead of ending the session.
func (s *Session) invoke(h *handler, args []string, piped string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			execLogger.Error("handler %s panicked: %v", h.name, r)
			res = Errorf("Error executing %s: %v", h.name, r)
		}
	}()
	return h.run(s, args, piped)
}

// runPipeline executes unquoted-pipe segments left to right, feeding
// each stage's output into the next stage's piped input. A failing
// stage short-circuits the remainder. A trailing redirect applies to
// the accumulated piped output.
func (s *Session) runPipeline(line string) Result {
	segments := SplitPipeline(line)
	piped := ""
	var res Result
	for i, seg := range segments {
		last := i == len(segments)-1
		if last && ContainsUnquotedRedirect(seg) {
			return s.runRedirect(seg, piped)
		}
		res = s.runSingle(seg, piped).resolve()
		if !res.OK {
			return res
		}
		piped = res.Output
	}
	return res
}

// runRedirect executes the command before the redirect token and
// writes its output into the destination file, overwriting or (for
// ">>") appending. On success the command's own output is suppressed.
func (s *Session) runRedirect(line, piped string) Result {
	cmdTokens, dest, appendMode, err := ParseRedirect(line)
	if err != nil {
		return Errorf("%v\nusage: <command> > <file> or <command> >> <file>", err)
	}
	name := cmdTokens[0].Text
	args := tokenTexts(cmdTokens[1:])
	h, ok := registry[name]
	if !ok {
		return Failure(fmt.Sprintf("%s: command not found. Type 'help' for available commands.\n", name), 127)
	}
	res := s.invoke(h, args, piped).resolve()
	if !res.OK {
		return res
	}

	abs := s.resolve(dest)
	content := strings.TrimSuffix(res.Output, "\n")
	if appendMode {
		if old, readErr := s.fs.Read(abs); readErr == nil {
			content = old + "\n" + content
		}
	}
	if writeErr := s.fs.Write(abs, content); writeErr != nil {
		return Errorf("%s: %s", dest, unixMessage(writeErr))
	}
	return Success("")
}

// unixMessage maps a VFS error to conventional Unix phrasing.
func unixMessage(err error) string {
	switch {
	case errors.Is(err, vfs.ErrNotFound):
		return "No such file or directory"
	case errors.Is(err, vfs.ErrNotADirectory):
		return "Not a directory"
	case errors.Is(err, vfs.ErrIsADirectory):
		return "Is a directory"
	case errors.Is(err, vfs.ErrAlreadyExists):
		return "File exists"
	case errors.Is(err, vfs.ErrDirectoryNotEmpty):
		return "Directory not empty"
	case errors.Is(err, vfs.ErrInvalidPath):
		return "Invalid path"
	}
	return err.Error()
}

// pathError renders "<cmd>: <path>: <unix message>" as a failed result.
func pathError(cmd, path string, err error) Result {
	return Errorf("%s: %s: %s", cmd, path, unixMessage(err))
}
