package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"termshell/internal/vfs"
)

func init() {
	register(
		&handler{
			name:     "cat",
			category: catFiles,
			usage:    "cat [-n] <file>...",
			desc:     "print file contents",
			options:  []string{"-n   number all output lines"},
			examples: []string{"cat readme.txt", "cat -n /etc/hosts"},
			run:      runCat,
		},
		&handler{
			name:     "head",
			category: catFiles,
			usage:    "head [-n N] <file>",
			desc:     "print the first lines of a file",
			options:  []string{"-n N   print the first N lines (default 10)"},
			examples: []string{"head -n 3 readme.txt", "head -5 readme.txt"},
			run:      makeHeadTail("head", false),
		},
		&handler{
			name:     "tail",
			category: catFiles,
			usage:    "tail [-n N] <file>",
			desc:     "print the last lines of a file",
			options:  []string{"-n N   print the last N lines (default 10)"},
			examples: []string{"tail -n 3 /var/log/system.log"},
			run:      makeHeadTail("tail", true),
		},
		&handler{
			name:     "file",
			category: catFiles,
			usage:    "file <path>",
			desc:     "guess a file's type from its content",
			examples: []string{"file downloads/archive.zip"},
			run:      runFile,
		},
		&handler{
			name:     "stat",
			category: catFiles,
			usage:    "stat <path>",
			desc:     "show detailed information about a file or directory",
			examples: []string{"stat readme.txt"},
			run:      runStat,
		},
		&handler{
			name:     "mkdir",
			category: catFiles,
			usage:    "mkdir <directory>...",
			desc:     "create directories",
			examples: []string{"mkdir /tmp/work"},
			run:      runMkdir,
		},
		&handler{
			name:     "touch",
			category: catFiles,
			usage:    "touch <file>...",
			desc:     "create empty files or update timestamps",
			examples: []string{"touch /tmp/empty.txt"},
			run:      runTouch,
		},
		&handler{
			name:     "find",
			category: catFiles,
			usage:    "find [path] [-name <pattern>]",
			desc:     "search the tree for names matching a glob",
			options:  []string{"-name PATTERN   glob with * and ? wildcards (default *)"},
			examples: []string{"find . -name '*.txt'", "find / -name 'flag*'"},
			run:      runFind,
		},
	)
}

func runCat(s *Session, args []string, piped string) Result {
	opts, operands := splitOpts(args)
	numbered := hasOpt(opts, 'n')

	// piped mode: number (or pass through) the piped text, no lookup
	if len(operands) == 0 {
		if piped == "" {
			return Errorf("cat: missing operand")
		}
		if numbered {
			return Success(numberLines(piped))
		}
		return Success(piped)
	}

	var parts []string
	for _, op := range operands {
		content, err := s.fs.Read(s.resolve(op))
		if err != nil {
			return pathError("cat", op, err)
		}
		parts = append(parts, strings.TrimSuffix(content, "\n"))
	}
	out := strings.Join(parts, "\n\n")
	if len(operands) == 1 {
		// single file passes through verbatim
		content, _ := s.fs.Read(s.resolve(operands[0]))
		out = content
	} else if out != "" {
		out += "\n"
	}
	if numbered {
		return Success(numberLines(out))
	}
	return Success(out)
}

// numberLines prefixes each line with a 6-wide right-justified 1-based
// number followed by two spaces.
func numberLines(content string) string {
	lines := splitLines(content)
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%6d  %s\n", i+1, line)
	}
	return b.String()
}

// makeHeadTail builds the head and tail handlers; fromEnd selects the
// trailing lines instead of the leading ones.
func makeHeadTail(name string, fromEnd bool) func(*Session, []string, string) Result {
	return func(s *Session, args []string, piped string) Result {
		n := 10
		var operands []string
		for i := 0; i < len(args); i++ {
			a := args[i]
			switch {
			case a == "-n" && i+1 < len(args):
				v, err := strconv.Atoi(args[i+1])
				if err != nil || v < 0 {
					return Errorf("%s: invalid line count: '%s'", name, args[i+1])
				}
				n = v
				i++
			case len(a) > 1 && a[0] == '-':
				// fused -N form
				v, err := strconv.Atoi(a[1:])
				if err != nil || v < 0 {
					return Errorf("%s: invalid option: '%s'", name, a)
				}
				n = v
			default:
				operands = append(operands, a)
			}
		}
		text, _, res, ok := filterInput(s, name, operands, piped)
		if !ok {
			return res
		}
		lines := splitLines(text)
		if fromEnd {
			if len(lines) > n {
				lines = lines[len(lines)-n:]
			}
		} else if len(lines) > n {
			lines = lines[:n]
		}
		if len(lines) == 0 {
			return Success("")
		}
		return Success(strings.Join(lines, "\n") + "\n")
	}
}

func runFile(s *Session, args []string, _ string) Result {
	_, operands := splitOpts(args)
	if len(operands) == 0 {
		return Errorf("file: missing operand")
	}
	op := operands[0]
	node, err := s.fs.Lookup(s.resolve(op))
	if err != nil {
		return pathError("file", op, err)
	}
	if node.IsDir() {
		return Success(fmt.Sprintf("%s: directory\n", op))
	}
	return Success(fmt.Sprintf("%s: %s\n", op, classifyContent(node.Content(), node.Mime())))
}

// classifyContent guesses a type label with ordered signature checks;
// the first matching rule wins.
func classifyContent(content, mime string) string {
	trimmed := strings.TrimSpace(content)
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(content, "PK\x03\x04"):
		return "Zip archive data"
	case strings.HasPrefix(content, "\x1f\x8b"):
		return "gzip compressed data"
	case strings.HasPrefix(content, "%PDF"):
		return "PDF document"
	case strings.HasPrefix(lower, "<!doctype html") || strings.Contains(lower, "<html"):
		return "HTML document"
	case strings.HasPrefix(trimmed, "<?xml"):
		return "XML document"
	case looksLikeJSON(trimmed):
		return "JSON data"
	case strings.HasPrefix(content, "#!"):
		return shebangLabel(content)
	case strings.HasPrefix(trimmed, "import ") || strings.Contains(content, "\nimport ") || strings.Contains(content, "def "):
		return "Python script"
	case hasControlBytes(content):
		return "data"
	case content == "":
		return "empty"
	case mime != "":
		return mime
	}
	return "ASCII text"
}

// looksLikeJSON requires a bracket-matched trimmed string that parses.
func looksLikeJSON(trimmed string) bool {
	matched := (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"))
	return matched && json.Valid([]byte(trimmed))
}

func shebangLabel(content string) string {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	switch {
	case strings.Contains(line, "python"):
		return "Python script, ASCII text executable"
	case strings.Contains(line, "bash"):
		return "Bourne-Again shell script, ASCII text executable"
	case strings.Contains(line, "node"):
		return "Node.js script, ASCII text executable"
	case strings.Contains(line, "sh"):
		return "POSIX shell script, ASCII text executable"
	}
	return "script text executable"
}

// hasControlBytes reports any control character other than common
// whitespace.
func hasControlBytes(content string) bool {
	for i := 0; i < len(content); i++ {
		c := content[i]
		if c < 32 && c != '\n' && c != '\r' && c != '\t' {
			return true
		}
	}
	return false
}

const statTimeFormat = "Jan 02 2006 15:04:05"

func runStat(s *Session, args []string, _ string) Result {
	_, operands := splitOpts(args)
	if len(operands) == 0 {
		return Errorf("stat: missing operand")
	}
	op := operands[0]
	abs := s.resolve(op)
	node, err := s.fs.Lookup(abs)
	if err != nil {
		return pathError("stat", op, err)
	}
	name := node.Name()
	if name == "" {
		name = "/"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  File: %s\n", name)
	fmt.Fprintf(&b, "  Type: %s\n", node.Kind())
	fmt.Fprintf(&b, "  Size: %d bytes\n", node.Size())
	fmt.Fprintf(&b, "Access: %s\n", node.Perm())
	fmt.Fprintf(&b, "Created: %s\n", node.Created().Format(statTimeFormat))
	fmt.Fprintf(&b, "Modified: %s\n", node.Modified().Format(statTimeFormat))
	fmt.Fprintf(&b, "  Path: %s\n", abs)
	return Success(b.String())
}

func runMkdir(s *Session, args []string, _ string) Result {
	_, operands := splitOpts(args)
	if len(operands) == 0 {
		return Errorf("mkdir: missing operand")
	}
	for _, op := range operands {
		if err := s.fs.MakeDirectory(s.resolve(op)); err != nil {
			return Errorf("mkdir: cannot create directory '%s': %s", op, unixMessage(err))
		}
	}
	return Success("")
}

func runTouch(s *Session, args []string, _ string) Result {
	_, operands := splitOpts(args)
	if len(operands) == 0 {
		return Errorf("touch: missing operand")
	}
	for _, op := range operands {
		if err := s.fs.Touch(s.resolve(op)); err != nil {
			return Errorf("touch: cannot touch '%s': %s", op, unixMessage(err))
		}
	}
	return Success("")
}

func runFind(s *Session, args []string, _ string) Result {
	root := "."
	pattern := "*"
	for i := 0; i < len(args); i++ {
		if args[i] == "-name" && i+1 < len(args) {
			pattern = args[i+1]
			i++
			continue
		}
		root = args[i]
	}
	abs := s.resolve(root)
	matches, err := s.fs.Find(abs, pattern)
	if err != nil {
		if errors.Is(err, vfs.ErrNotFound) {
			return pathError("find", root, err)
		}
		return Errorf("find: invalid pattern '%s'", pattern)
	}
	if len(matches) == 0 {
		return Success("")
	}
	return Success(strings.Join(matches, "\n") + "\n")
}
