// Package seed builds the fixed demo filesystem every session starts
// from. The dataset is an embedded YAML manifest; each Build call
// produces a fresh tree so sessions never share nodes.
package seed

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"termshell/internal/logging"
	"termshell/internal/vfs"
)

var seedLogger = logging.GetLogger().WithPrefix("seed")

//go:embed manifest.yaml
var rawManifest []byte

// manifestVersion is the only manifest layout this loader understands.
const manifestVersion = 1

// Manifest is the parsed seed dataset.
type Manifest struct {
	Version int     `yaml:"version"`
	Entries []Entry `yaml:"entries"`
}

// Entry describes one seeded node. Directories are created implicitly
// for every file path, so only empty directories need Dir entries.
type Entry struct {
	Path    string `yaml:"path"`
	Dir     bool   `yaml:"dir,omitempty"`
	Mime    string `yaml:"mime,omitempty"`
	Perm    string `yaml:"perm,omitempty"`
	Content string `yaml:"content,omitempty"`
}

var (
	parseOnce sync.Once
	manifest  *Manifest
	parseErr  error
)

// load parses and validates the embedded manifest once.
func load() (*Manifest, error) {
	parseOnce.Do(func() {
		var m Manifest
		if err := yaml.Unmarshal(rawManifest, &m); err != nil {
			parseErr = fmt.Errorf("failed to parse seed manifest: %w", err)
			return
		}
		if m.Version != manifestVersion {
			parseErr = fmt.Errorf("unsupported seed manifest version %d", m.Version)
			return
		}
		seen := make(map[string]bool)
		for _, e := range m.Entries {
			if !strings.HasPrefix(e.Path, "/") {
				parseErr = fmt.Errorf("seed path %q is not absolute", e.Path)
				return
			}
			if seen[e.Path] {
				parseErr = fmt.Errorf("duplicate seed path %q", e.Path)
				return
			}
			seen[e.Path] = true
		}
		seedLogger.Debug("parsed seed manifest: %d entries", len(m.Entries))
		manifest = &m
	})
	return manifest, parseErr
}

// Build constructs a fresh seeded tree. All nodes carry now as their
// initial created/modified timestamp.
func Build(now time.Time) (*vfs.Node, error) {
	m, err := load()
	if err != nil {
		return nil, err
	}
	root := vfs.NewDirectory("", now)
	for _, e := range m.Entries {
		parent, err := ensureDirs(root, vfs.Parent(e.Path), now)
		if err != nil {
			return nil, fmt.Errorf("seed entry %q: %w", e.Path, err)
		}
		name := vfs.Base(e.Path)
		var node *vfs.Node
		if e.Dir {
			if existing, ok := parent.Child(name); ok && existing.IsDir() {
				continue
			}
			node = vfs.NewDirectory(name, now)
		} else {
			node = vfs.NewFile(name, e.Content, e.Mime, now)
		}
		if e.Perm != "" {
			node.SetPerm(e.Perm)
		}
		if err := parent.AddChild(node); err != nil {
			return nil, fmt.Errorf("seed entry %q: %w", e.Path, err)
		}
	}
	return root, nil
}

// ensureDirs creates all missing directories along abs and returns the
// final one.
func ensureDirs(root *vfs.Node, abs string, now time.Time) (*vfs.Node, error) {
	node := root
	for _, seg := range vfs.Split(abs) {
		child, ok := node.Child(seg)
		if !ok {
			child = vfs.NewDirectory(seg, now)
			if err := node.AddChild(child); err != nil {
				return nil, err
			}
		}
		if !child.IsDir() {
			return nil, vfs.ErrNotADirectory
		}
		node = child
	}
	return node, nil
}
