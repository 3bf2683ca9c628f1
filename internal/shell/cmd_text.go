package shell

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"termshell/internal/vfs"
)

func init() {
	register(
		&handler{
			name:     "grep",
			category: catText,
			usage:    "grep [-invr] <pattern> [file...]",
			desc:     "search file contents for a pattern",
			options: []string{
				"-i   ignore case",
				"-n   prefix matches with line numbers",
				"-v   select non-matching lines",
				"-r   recurse into directories",
			},
			examples: []string{"grep memory readme.txt", "cat readme.txt | grep -i WELCOME"},
			run:      runGrep,
		},
		&handler{
			name:     "wc",
			category: catText,
			usage:    "wc [-lwc] [file...]",
			desc:     "count lines, words and characters",
			options: []string{
				"-l   lines only",
				"-w   words only",
				"-c   characters only",
			},
			examples: []string{"wc readme.txt", "cat readme.txt | wc -l"},
			run:      runWc,
		},
		&handler{
			name:     "sort",
			category: catText,
			usage:    "sort [-rn] [file]",
			desc:     "sort lines of text",
			options: []string{
				"-r   reverse the ordering",
				"-n   compare lines numerically",
			},
			examples: []string{"sort notes.txt", "cat nums.txt | sort -n"},
			run:      runSort,
		},
		&handler{
			name:     "uniq",
			category: catText,
			usage:    "uniq [-cd] [file]",
			desc:     "collapse consecutive duplicate lines",
			options: []string{
				"-c   prefix each line with its repeat count",
				"-d   only print lines that repeated",
			},
			examples: []string{"sort notes.txt | uniq -c"},
			run:      runUniq,
		},
		&handler{
			name:     "cut",
			category: catText,
			usage:    "cut -f <fields> [-d <delim>] [file]",
			desc:     "select fields from each line",
			options: []string{
				"-f LIST   fields to keep: comma list and ranges like 2-4",
				"-d DELIM  field delimiter (default: tab)",
			},
			examples: []string{"cat /etc/passwd | cut -d : -f 1,6"},
			run:      runCut,
		},
		&handler{
			name:     "tr",
			category: catText,
			usage:    "tr <set1> <set2> | tr -d <set>",
			desc:     "translate or delete characters of piped input",
			options:  []string{"-d SET   delete every character in SET"},
			examples: []string{"echo hello | tr el ip", "echo hello | tr -d l"},
			run:      runTr,
		},
	)
}

func runGrep(s *Session, args []string, piped string) Result {
	opts, operands := splitOpts(args)
	ignoreCase := hasOpt(opts, 'i')
	numbered := hasOpt(opts, 'n')
	invert := hasOpt(opts, 'v')
	recursive := hasOpt(opts, 'r')

	if len(operands) == 0 {
		return Errorf("usage: grep [-invr] <pattern> [file...]")
	}
	pattern := operands[0]
	files := operands[1:]

	rePattern := pattern
	if ignoreCase {
		rePattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(rePattern)
	if err != nil {
		return Errorf("grep: invalid pattern: %v", err)
	}

	// source is one searchable text with an optional display path
	type source struct {
		path    string
		content string
	}
	var sources []source

	if len(files) == 0 {
		if piped == "" {
			return Errorf("usage: grep [-invr] <pattern> [file...]")
		}
		sources = append(sources, source{path: "", content: piped})
	}
	for _, f := range files {
		abs := s.resolve(f)
		node, lookupErr := s.fs.Lookup(abs)
		if lookupErr != nil {
			return pathError("grep", f, lookupErr)
		}
		if node.IsDir() {
			if !recursive {
				return Errorf("grep: %s: Is a directory", f)
			}
			paths, findErr := s.fs.Find(abs, "*")
			if findErr != nil {
				return pathError("grep", f, findErr)
			}
			for _, p := range paths {
				if child, childErr := s.fs.Lookup(p); childErr == nil && !child.IsDir() {
					sources = append(sources, source{path: p, content: child.Content()})
				}
			}
			continue
		}
		sources = append(sources, source{path: f, content: node.Content()})
	}

	prefixPaths := len(sources) > 1
	var b strings.Builder
	matched := false
	for _, src := range sources {
		if !invert && src.path != "" {
			// the straight search path runs through the VFS engine so
			// directory and file sources behave identically
			hits, searchErr := s.fs.SearchText(rePattern, s.resolve(src.path), false)
			if searchErr != nil {
				return pathError("grep", src.path, vfs.ErrNotFound)
			}
			for _, h := range hits {
				matched = true
				writeGrepLine(&b, src.path, h.Line, h.Text, prefixPaths, numbered)
			}
			continue
		}
		for i, line := range splitLines(src.content) {
			if re.MatchString(line) == invert {
				continue
			}
			matched = true
			writeGrepLine(&b, src.path, i+1, line, prefixPaths, numbered)
		}
	}
	if !matched {
		// conventional grep semantics: no output, nonzero exit
		return Failure("", 1)
	}
	return Success(b.String())
}

func writeGrepLine(b *strings.Builder, path string, line int, text string, withPath, withLine bool) {
	if withPath && path != "" {
		b.WriteString(path)
		b.WriteString(":")
	}
	if withLine {
		fmt.Fprintf(b, "%d:", line)
	}
	b.WriteString(text)
	b.WriteString("\n")
}

func runWc(s *Session, args []string, piped string) Result {
	opts, operands := splitOpts(args)
	wantLines := hasOpt(opts, 'l')
	wantWords := hasOpt(opts, 'w')
	wantChars := hasOpt(opts, 'c')
	if !wantLines && !wantWords && !wantChars {
		wantLines, wantWords, wantChars = true, true, true
	}

	row := func(content, name string) string {
		var fields []string
		if wantLines {
			fields = append(fields, fmt.Sprintf("%8d", countLines(content)))
		}
		if wantWords {
			fields = append(fields, fmt.Sprintf("%8d", len(strings.Fields(content))))
		}
		if wantChars {
			fields = append(fields, fmt.Sprintf("%8d", utf8.RuneCountInString(content)))
		}
		out := strings.Join(fields, "")
		if name != "" {
			out += " " + name
		}
		return out + "\n"
	}

	if len(operands) == 0 {
		if piped == "" {
			return Errorf("wc: missing operand")
		}
		return Success(row(piped, ""))
	}

	var b strings.Builder
	var totalL, totalW, totalC int
	for _, op := range operands {
		content, err := s.fs.Read(s.resolve(op))
		if err != nil {
			return pathError("wc", op, err)
		}
		totalL += countLines(content)
		totalW += len(strings.Fields(content))
		totalC += utf8.RuneCountInString(content)
		b.WriteString(row(content, op))
	}
	if len(operands) > 1 {
		var fields []string
		if wantLines {
			fields = append(fields, fmt.Sprintf("%8d", totalL))
		}
		if wantWords {
			fields = append(fields, fmt.Sprintf("%8d", totalW))
		}
		if wantChars {
			fields = append(fields, fmt.Sprintf("%8d", totalC))
		}
		b.WriteString(strings.Join(fields, "") + " total\n")
	}
	return Success(b.String())
}

func runSort(s *Session, args []string, piped string) Result {
	opts, operands := splitOpts(args)
	reverse := hasOpt(opts, 'r')
	numeric := hasOpt(opts, 'n')

	text, _, res, ok := filterInput(s, "sort", operands, piped)
	if !ok {
		return res
	}
	lines := splitLines(text)
	sort.SliceStable(lines, func(i, j int) bool {
		if numeric {
			return numericValue(lines[i]) < numericValue(lines[j])
		}
		return lines[i] < lines[j]
	})
	if reverse {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}
	if len(lines) == 0 {
		return Success("")
	}
	return Success(strings.Join(lines, "\n") + "\n")
}

// numericValue parses a line as a float; non-numeric lines sort as 0.
func numericValue(line string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0
	}
	return v
}

func runUniq(s *Session, args []string, piped string) Result {
	opts, operands := splitOpts(args)
	counted := hasOpt(opts, 'c')
	dupOnly := hasOpt(opts, 'd')

	text, _, res, ok := filterInput(s, "uniq", operands, piped)
	if !ok {
		return res
	}
	lines := splitLines(text)
	var b strings.Builder
	for i := 0; i < len(lines); {
		j := i
		for j < len(lines) && lines[j] == lines[i] {
			j++
		}
		count := j - i
		if !dupOnly || count > 1 {
			if counted {
				fmt.Fprintf(&b, "%7d %s\n", count, lines[i])
			} else {
				b.WriteString(lines[i])
				b.WriteString("\n")
			}
		}
		i = j
	}
	return Success(b.String())
}

func runCut(s *Session, args []string, piped string) Result {
	delim := "\t"
	var fieldSpec string
	var operands []string
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-f" && i+1 < len(args):
			fieldSpec = args[i+1]
			i++
		case args[i] == "-d" && i+1 < len(args):
			delim = args[i+1]
			i++
		default:
			operands = append(operands, args[i])
		}
	}
	if fieldSpec == "" {
		return Errorf("usage: cut -f <fields> [-d <delim>] [file]")
	}
	fields, err := parseFieldList(fieldSpec)
	if err != nil {
		return Errorf("cut: invalid field list: '%s'", fieldSpec)
	}

	text, _, res, ok := filterInput(s, "cut", operands, piped)
	if !ok {
		return res
	}
	var b strings.Builder
	for _, line := range splitLines(text) {
		parts := strings.Split(line, delim)
		var picked []string
		for _, f := range fields {
			// out-of-range fields are silently skipped
			if f <= len(parts) {
				picked = append(picked, parts[f-1])
			}
		}
		b.WriteString(strings.Join(picked, delim))
		b.WriteString("\n")
	}
	return Success(b.String())
}

// parseFieldList expands a comma list with inclusive ranges ("1,3-5")
// into deduplicated ascending 1-based field numbers.
func parseFieldList(spec string) ([]int, error) {
	seen := make(map[int]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if lo, hi, found := strings.Cut(part, "-"); found {
			a, errA := strconv.Atoi(lo)
			z, errZ := strconv.Atoi(hi)
			if errA != nil || errZ != nil || a < 1 || z < a {
				return nil, fmt.Errorf("bad range %q", part)
			}
			for f := a; f <= z; f++ {
				seen[f] = true
			}
			continue
		}
		f, err := strconv.Atoi(part)
		if err != nil || f < 1 {
			return nil, fmt.Errorf("bad field %q", part)
		}
		seen[f] = true
	}
	fields := make([]int, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Ints(fields)
	return fields, nil
}

func runTr(s *Session, args []string, piped string) Result {
	if piped == "" {
		return Errorf("tr: missing input: tr operates on piped text")
	}
	opts, operands := splitOpts(args)
	if hasOpt(opts, 'd') {
		if len(operands) == 0 {
			return Errorf("usage: tr -d <set>")
		}
		del := make(map[rune]bool)
		for _, c := range operands[0] {
			del[c] = true
		}
		var b strings.Builder
		for _, c := range piped {
			if !del[c] {
				b.WriteRune(c)
			}
		}
		return Success(b.String())
	}
	if len(operands) < 2 {
		return Errorf("usage: tr <set1> <set2>")
	}
	set1 := []rune(operands[0])
	set2 := []rune(operands[1])
	n := len(set1)
	if len(set2) < n {
		n = len(set2)
	}
	mapping := make(map[rune]rune, n)
	for i := 0; i < n; i++ {
		mapping[set1[i]] = set2[i]
	}
	var b strings.Builder
	for _, c := range piped {
		if to, mapped := mapping[c]; mapped {
			b.WriteRune(to)
		} else {
			b.WriteRune(c)
		}
	}
	return Success(b.String())
}
