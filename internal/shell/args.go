package shell

import "strings"

// splitOpts separates dash-prefixed option words from positional
// operands. A bare "-" counts as an operand.
func splitOpts(args []string) (opts []string, operands []string) {
	for _, a := range args {
		if len(a) > 1 && strings.HasPrefix(a, "-") {
			opts = append(opts, a)
		} else {
			operands = append(operands, a)
		}
	}
	return opts, operands
}

// hasOpt reports whether any short option word contains the flag rune,
// so fused forms like "-la" and separate "-l -a" both match.
func hasOpt(opts []string, flag rune) bool {
	for _, o := range opts {
		if strings.HasPrefix(o, "--") {
			continue
		}
		if strings.ContainsRune(o[1:], flag) {
			return true
		}
	}
	return false
}

// hasLongOpt reports whether the exact long option word is present.
func hasLongOpt(opts []string, name string) bool {
	for _, o := range opts {
		if o == name {
			return true
		}
	}
	return false
}

// splitLines breaks content into logical lines, treating a trailing
// newline as a terminator rather than the start of an empty last line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	trimmed := strings.TrimSuffix(content, "\n")
	if trimmed == "" {
		return []string{""}
	}
	return strings.Split(trimmed, "\n")
}

// countLines counts logical lines: every newline terminates one, and a
// trailing partial line counts as well.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// filterInput resolves the text a line filter operates on: the first
// file operand if present, otherwise the piped input. The returned
// name is empty for piped input. A command uses one or the other,
// never both.
func filterInput(s *Session, cmd string, operands []string, piped string) (text string, name string, res Result, ok bool) {
	if len(operands) > 0 {
		abs := s.resolve(operands[0])
		content, err := s.fs.Read(abs)
		if err != nil {
			return "", "", pathError(cmd, operands[0], err), false
		}
		return content, operands[0], Result{}, true
	}
	if piped != "" {
		return piped, "", Result{}, true
	}
	return "", "", Errorf("%s: missing operand", cmd), false
}

// literalInput resolves input for the encoding commands: piped input
// wins, then a file if the operand resolves to one, then the literal
// operand text itself. The name is "-" unless a file supplied the
// text.
func literalInput(s *Session, cmd string, operands []string, piped string) (text string, name string, res Result, ok bool) {
	if piped != "" {
		return piped, "-", Result{}, true
	}
	if len(operands) == 0 {
		return "", "", Errorf("%s: missing operand", cmd), false
	}
	abs := s.resolve(operands[0])
	if node, err := s.fs.Lookup(abs); err == nil && !node.IsDir() {
		return node.Content(), operands[0], Result{}, true
	}
	return strings.Join(operands, " "), "-", Result{}, true
}
