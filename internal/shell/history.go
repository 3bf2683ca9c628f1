package shell

// historyCap bounds the history list; the oldest entry is evicted
// first once the cap is exceeded.
const historyCap = 1000

// History is an append-only, bounded list of previously executed
// command lines. Blank lines are never recorded and a repeat of the
// immediately preceding command is coalesced.
type History struct {
	entries []string
}

// Append records a command line, subject to the blank/dedupe/cap rules.
func (h *History) Append(line string) {
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > historyCap {
		h.entries = h.entries[len(h.entries)-historyCap:]
	}
}

// Entries returns a copy of the retained lines, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear drops all retained lines.
func (h *History) Clear() {
	h.entries = nil
}

// Len returns the number of retained lines.
func (h *History) Len() int {
	return len(h.entries)
}
