package vfs

import (
	"regexp"
	"strings"
	"time"

	"termshell/internal/logging"
)

var vfsLogger = logging.GetLogger().WithPrefix("vfs")

// VFS is one session's virtual filesystem: a single rooted tree plus a
// clock. Sessions never share a VFS, so no locking is needed; there is
// no concurrent access within a session.
type VFS struct {
	root *Node
	now  func() time.Time
}

// New wraps a root directory node into a filesystem.
func New(root *Node) *VFS {
	return &VFS{root: root, now: time.Now}
}

// SetClock overrides the clock used for created/modified timestamps.
// Intended for tests.
func (v *VFS) SetClock(now func() time.Time) {
	v.now = now
}

// Root returns the root directory node.
func (v *VFS) Root() *Node { return v.root }

// Lookup walks a normalized absolute path from the root. It returns
// ErrNotFound if any intermediate segment is missing or is a file
// (there is no descending into a file).
func (v *VFS) Lookup(abs string) (*Node, error) {
	node := v.root
	for _, seg := range Split(abs) {
		if !node.IsDir() {
			return nil, NewError(OpLookup, abs, ErrNotFound)
		}
		child, ok := node.Child(seg)
		if !ok {
			return nil, NewError(OpLookup, abs, ErrNotFound)
		}
		node = child
	}
	return node, nil
}

// List returns the entries at a path. Listing a file returns a single
// synthetic entry describing that file; listing a directory returns its
// children under the directories-first sort contract.
func (v *VFS) List(abs string) ([]*Node, error) {
	node, err := v.Lookup(abs)
	if err != nil {
		return nil, NewError(OpList, abs, ErrNotFound)
	}
	switch node.Kind() {
	case KindFile:
		return []*Node{node}, nil
	case KindDirectory:
		return node.Children(), nil
	}
	return nil, NewError(OpList, abs, ErrInvalidPath)
}

// Read returns a file's content.
func (v *VFS) Read(abs string) (string, error) {
	node, err := v.Lookup(abs)
	if err != nil {
		return "", NewError(OpRead, abs, ErrNotFound)
	}
	if node.IsDir() {
		return "", NewError(OpRead, abs, ErrIsADirectory)
	}
	return node.Content(), nil
}

// Write creates or overwrites the file at abs. The parent directory
// must already exist; writing over a directory fails.
func (v *VFS) Write(abs, content string) error {
	if abs == "/" {
		return NewError(OpWrite, abs, ErrIsADirectory)
	}
	parent, err := v.lookupDir(OpWrite, Parent(abs))
	if err != nil {
		return err
	}
	name := Base(abs)
	if existing, ok := parent.Child(name); ok {
		if existing.IsDir() {
			return NewError(OpWrite, abs, ErrIsADirectory)
		}
		existing.SetContent(content, v.now())
		return nil
	}
	vfsLogger.Debug("creating file %q", abs)
	if err := parent.AddChild(NewFile(name, content, "", v.now())); err != nil {
		return NewError(OpWrite, abs, err)
	}
	return nil
}

// Touch creates an empty file at abs, or bumps the modified timestamp
// of an existing node.
func (v *VFS) Touch(abs string) error {
	if node, err := v.Lookup(abs); err == nil {
		node.Touch(v.now())
		return nil
	}
	parent, err := v.lookupDir(OpTouch, Parent(abs))
	if err != nil {
		return err
	}
	if err := parent.AddChild(NewFile(Base(abs), "", "", v.now())); err != nil {
		return NewError(OpTouch, abs, err)
	}
	return nil
}

// MakeDirectory creates a directory at abs. The parent must exist and
// be a directory; an existing node of either kind is a conflict.
func (v *VFS) MakeDirectory(abs string) error {
	if abs == "/" {
		return NewError(OpMkdir, abs, ErrAlreadyExists)
	}
	parent, err := v.lookupDir(OpMkdir, Parent(abs))
	if err != nil {
		return err
	}
	name := Base(abs)
	if _, exists := parent.Child(name); exists {
		return NewError(OpMkdir, abs, ErrAlreadyExists)
	}
	vfsLogger.Debug("creating directory %q", abs)
	if err := parent.AddChild(NewDirectory(name, v.now())); err != nil {
		return NewError(OpMkdir, abs, err)
	}
	return nil
}

// Remove deletes the node at abs. A populated directory is only
// removed when recursive is set.
func (v *VFS) Remove(abs string, recursive bool) error {
	if abs == "/" {
		return NewError(OpRemove, abs, ErrInvalidPath)
	}
	node, err := v.Lookup(abs)
	if err != nil {
		return NewError(OpRemove, abs, ErrNotFound)
	}
	if node.IsDir() && node.Len() > 0 && !recursive {
		return NewError(OpRemove, abs, ErrDirectoryNotEmpty)
	}
	parent, err := v.lookupDir(OpRemove, Parent(abs))
	if err != nil {
		return err
	}
	vfsLogger.Debug("removing %q (recursive=%v)", abs, recursive)
	if err := parent.RemoveChild(Base(abs)); err != nil {
		return NewError(OpRemove, abs, err)
	}
	return nil
}

// Find walks the tree under root collecting absolute paths of nodes
// whose name matches the glob pattern. The glob is translated to an
// anchored, case-insensitive regular expression where "*" matches any
// run, "?" matches one character and "." is literal.
func (v *VFS) Find(root, glob string) ([]string, error) {
	re, err := compileGlob(glob)
	if err != nil {
		return nil, NewError(OpFind, root, err)
	}
	start, err := v.Lookup(root)
	if err != nil {
		return nil, NewError(OpFind, root, ErrNotFound)
	}
	var out []string
	var walk func(abs string, n *Node)
	walk = func(abs string, n *Node) {
		if n.Name() != "" && re.MatchString(n.Name()) {
			out = append(out, abs)
		}
		if n.IsDir() {
			for _, c := range n.Children() {
				walk(Join(abs, c.Name()), c)
			}
		}
	}
	walk(root, start)
	return out, nil
}

// compileGlob translates a shell-style glob into a regexp.
func compileGlob(glob string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, c := range glob {
		switch c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '.':
			b.WriteString(`\.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// Match is one SearchText hit.
type Match struct {
	Path string // absolute file path
	Line int    // 1-based line number
	Text string // trimmed line text
}

// SearchText runs a line-by-line regular expression search over file
// contents under root. A directory root requires recursive; a file
// root is searched directly.
func (v *VFS) SearchText(pattern, root string, recursive bool) ([]Match, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	start, err := v.Lookup(root)
	if err != nil {
		return nil, NewError(OpSearch, root, ErrNotFound)
	}
	if start.IsDir() && !recursive {
		return nil, NewError(OpSearch, root, ErrIsADirectory)
	}
	var out []Match
	var search func(abs string, n *Node)
	search = func(abs string, n *Node) {
		switch n.Kind() {
		case KindFile:
			for i, line := range strings.Split(n.Content(), "\n") {
				if re.MatchString(line) {
					out = append(out, Match{Path: abs, Line: i + 1, Text: strings.TrimSpace(line)})
				}
			}
		case KindDirectory:
			for _, c := range n.Children() {
				search(Join(abs, c.Name()), c)
			}
		}
	}
	search(root, start)
	return out, nil
}

// lookupDir resolves abs and requires a directory.
func (v *VFS) lookupDir(op, abs string) (*Node, error) {
	node, err := v.Lookup(abs)
	if err != nil {
		return nil, NewError(op, abs, ErrNotFound)
	}
	if !node.IsDir() {
		return nil, NewError(op, abs, ErrNotADirectory)
	}
	return node, nil
}
