package shell

import (
	"sort"
	"strings"
)

// Aliases maps command names to replacement text. Expansion applies to
// the first whitespace-delimited token of a line only, exactly once
// per line; the replacement is never re-checked against the table.
type Aliases struct {
	table map[string]string
}

// NewAliases returns a table seeded with the default aliases.
func NewAliases() *Aliases {
	return &Aliases{table: map[string]string{
		"ll":  "ls -la",
		"la":  "ls -a",
		"cls": "clear",
	}}
}

// Get returns the expansion for a name.
func (a *Aliases) Get(name string) (string, bool) {
	v, ok := a.table[name]
	return v, ok
}

// Set defines or overwrites an alias. Last write wins.
func (a *Aliases) Set(name, value string) {
	a.table[name] = value
}

// Names returns all alias names sorted.
func (a *Aliases) Names() []string {
	names := make([]string, 0, len(a.table))
	for n := range a.table {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Expand replaces the line's first token with its alias expansion, if
// one is defined, keeping the remainder of the line verbatim.
func (a *Aliases) Expand(line string) string {
	first := line
	rest := ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		first, rest = line[:i], line[i:]
	}
	if repl, ok := a.table[first]; ok {
		return repl + rest
	}
	return line
}
