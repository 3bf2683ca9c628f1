package vfs

import (
	"sort"
	"strings"
	"time"
)

// Kind tags a node as a file or a directory. Every VFS operation
// switches exhaustively on it, so a third kind is a compile-visible
// change rather than a silent fallthrough.
type Kind int

const (
	// KindFile is a regular file holding text content
	KindFile Kind = iota
	// KindDirectory is a directory holding child nodes
	KindDirectory
)

// String returns a human-readable kind label
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "regular file"
	case KindDirectory:
		return "directory"
	}
	return "unknown"
}

// Node is a single entry in the virtual tree. A node is owned by
// exactly one parent directory; the tree has no cycles and no shared
// children. The root node has an empty name and no parent.
type Node struct {
	name     string
	kind     Kind
	created  time.Time
	modified time.Time
	perm     string

	// file fields
	content string
	mime    string

	// directory fields, children keyed by name in insertion order
	order    []string
	children map[string]*Node
}

// NewFile creates a file node. The permission string is display-only.
func NewFile(name, content, mime string, now time.Time) *Node {
	perm := "-rw-r--r--"
	return &Node{
		name:     name,
		kind:     KindFile,
		created:  now,
		modified: now,
		perm:     perm,
		content:  content,
		mime:     mime,
	}
}

// NewDirectory creates an empty directory node.
func NewDirectory(name string, now time.Time) *Node {
	return &Node{
		name:     name,
		kind:     KindDirectory,
		created:  now,
		modified: now,
		perm:     "drwxr-xr-x",
		children: make(map[string]*Node),
	}
}

// Name returns the node name (empty for the root)
func (n *Node) Name() string { return n.name }

// Kind returns the node kind
func (n *Node) Kind() Kind { return n.kind }

// IsDir reports whether the node is a directory
func (n *Node) IsDir() bool { return n.kind == KindDirectory }

// Created returns the creation timestamp
func (n *Node) Created() time.Time { return n.created }

// Modified returns the last-modified timestamp
func (n *Node) Modified() time.Time { return n.modified }

// Perm returns the display permission string
func (n *Node) Perm() string { return n.perm }

// SetPerm overrides the display permission string (seed data only)
func (n *Node) SetPerm(perm string) { n.perm = perm }

// Content returns the file content. Directories have no content.
func (n *Node) Content() string { return n.content }

// Mime returns the mime hint used by the file-type heuristics
func (n *Node) Mime() string { return n.mime }

// Size returns the UTF-8 byte length of the file content
func (n *Node) Size() int { return len(n.content) }

// SetContent replaces the file content and bumps the modified timestamp.
func (n *Node) SetContent(content string, now time.Time) {
	n.content = content
	n.modified = now
}

// Touch bumps the modified timestamp without changing content.
func (n *Node) Touch(now time.Time) {
	n.modified = now
}

// Child returns the immediate child with the given name, if any.
func (n *Node) Child(name string) (*Node, bool) {
	if n.kind != KindDirectory {
		return nil, false
	}
	c, ok := n.children[name]
	return c, ok
}

// AddChild attaches a child node. Names must be unique within the
// parent and must not contain a path separator.
func (n *Node) AddChild(child *Node) error {
	if n.kind != KindDirectory {
		return ErrNotADirectory
	}
	if child.name == "" || strings.Contains(child.name, "/") {
		return ErrInvalidPath
	}
	if _, exists := n.children[child.name]; exists {
		return ErrAlreadyExists
	}
	n.children[child.name] = child
	n.order = append(n.order, child.name)
	return nil
}

// RemoveChild detaches the named child.
func (n *Node) RemoveChild(name string) error {
	if n.kind != KindDirectory {
		return ErrNotADirectory
	}
	if _, exists := n.children[name]; !exists {
		return ErrNotFound
	}
	delete(n.children, name)
	for i, c := range n.order {
		if c == name {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of immediate children.
func (n *Node) Len() int { return len(n.children) }

// Children returns the immediate children sorted directories-first,
// then lexicographically by name. The ls output format depends on this
// ordering, so it is part of the contract rather than cosmetic.
func (n *Node) Children() []*Node {
	if n.kind != KindDirectory {
		return nil
	}
	out := make([]*Node, 0, len(n.children))
	for _, name := range n.order {
		out = append(out, n.children[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].IsDir(), out[j].IsDir()
		if di != dj {
			return di
		}
		return out[i].name < out[j].name
	})
	return out
}
