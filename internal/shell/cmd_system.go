package shell

import (
	"fmt"
	"strings"
)

func init() {
	register(
		&handler{
			name:     "echo",
			category: catSystem,
			usage:    "echo [-ne] [text...]",
			desc:     "display a line of text",
			options: []string{
				"-n   do not output the trailing newline",
				"-e   interpret backslash escapes",
			},
			escapes: []string{
				`\n   newline`,
				`\t   horizontal tab`,
				`\r   carriage return`,
				`\\   backslash`,
			},
			examples: []string{`echo "Hello World"`, `echo -e "a\tb"`},
			run:      runEcho,
		},
		&handler{
			name:     "help",
			category: catSystem,
			usage:    "help [command]",
			desc:     "list available commands",
			examples: []string{"help", "help grep"},
			run:      runHelp,
		},
		&handler{
			name:     "man",
			category: catSystem,
			usage:    "man <command>",
			desc:     "show a command's manual page",
			examples: []string{"man echo"},
			run:      runMan,
		},
		&handler{
			name:     "history",
			category: catSystem,
			usage:    "history [-c]",
			desc:     "show or clear command history",
			options:  []string{"-c   clear the history list"},
			examples: []string{"history", "history -c"},
			run:      runHistory,
		},
		&handler{
			name:     "whoami",
			category: catSystem,
			usage:    "whoami",
			desc:     "print the current user",
			run:      runWhoami,
		},
		&handler{
			name:     "date",
			category: catSystem,
			usage:    "date",
			desc:     "print the current date and time",
			run:      runDate,
		},
		&handler{
			name:     "uname",
			category: catSystem,
			usage:    "uname [-a]",
			desc:     "print system information",
			options:  []string{"-a   print all information"},
			run:      runUname,
		},
		&handler{
			name:     "alias",
			category: catSystem,
			usage:    "alias [name='value']",
			desc:     "list or define command aliases",
			examples: []string{"alias", "alias gs='grep -i secret'"},
			run:      runAlias,
		},
		&handler{
			name:     "type",
			category: catSystem,
			usage:    "type <name>...",
			desc:     "describe how a name would be interpreted",
			examples: []string{"type ll", "type echo"},
			run:      runType,
		},
		&handler{
			name:     "clear",
			category: catSystem,
			usage:    "clear",
			desc:     "clear the terminal screen",
			run:      runClear,
		},
	)
}

func runEcho(_ *Session, args []string, _ string) Result {
	noNewline := false
	interpret := false
	i := 0
	for ; i < len(args); i++ {
		if !isEchoFlag(args[i]) {
			break
		}
		if strings.ContainsRune(args[i], 'n') {
			noNewline = true
		}
		if strings.ContainsRune(args[i], 'e') {
			interpret = true
		}
	}
	out := strings.Join(args[i:], " ")
	if interpret {
		out = interpretEscapes(out)
	}
	if !noNewline {
		out += "\n"
	}
	return Success(out)
}

// isEchoFlag accepts -n, -e and fused forms like -ne.
func isEchoFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	for _, c := range arg[1:] {
		if c != 'n' && c != 'e' {
			return false
		}
	}
	return true
}

// interpretEscapes expands \n, \t, \r and \\ sequences.
func interpretEscapes(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' || i+1 >= len(text) {
			b.WriteByte(text[i])
			continue
		}
		switch text[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte(text[i])
			b.WriteByte(text[i+1])
		}
		i++
	}
	return b.String()
}

func runHelp(_ *Session, args []string, _ string) Result {
	if len(args) > 0 {
		h, ok := registry[args[0]]
		if !ok {
			return Errorf("help: no help topics match '%s'", args[0])
		}
		return Success(fmt.Sprintf("%s - %s\nusage: %s\n", h.name, h.desc, h.usage))
	}

	byCategory := make(map[string][]*handler)
	for _, name := range commandNames() {
		h := registry[name]
		byCategory[h.category] = append(byCategory[h.category], h)
	}
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, cat := range categoryOrder {
		hs := byCategory[cat]
		if len(hs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", cat)
		for _, h := range hs {
			fmt.Fprintf(&b, "  %-10s %s\n", h.name, h.desc)
		}
	}
	b.WriteString("\nType 'man <command>' for details.\n")
	return Success(b.String())
}

func runMan(_ *Session, args []string, _ string) Result {
	if len(args) != 1 {
		return Errorf("What manual page do you want?")
	}
	h, ok := registry[args[0]]
	if !ok {
		return Errorf("No manual entry for %s", args[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "NAME\n    %s - %s\n\n", h.name, h.desc)
	fmt.Fprintf(&b, "SYNOPSIS\n    %s\n\n", h.usage)
	fmt.Fprintf(&b, "DESCRIPTION\n    %s\n", manDescription(h))
	if len(h.options) > 0 {
		b.WriteString("\nOPTIONS\n")
		for _, o := range h.options {
			fmt.Fprintf(&b, "    %s\n", o)
		}
	}
	if len(h.escapes) > 0 {
		b.WriteString("\nESCAPE SEQUENCES\n")
		for _, e := range h.escapes {
			fmt.Fprintf(&b, "    %s\n", e)
		}
	}
	if len(h.examples) > 0 {
		b.WriteString("\nEXAMPLES\n")
		for _, e := range h.examples {
			fmt.Fprintf(&b, "    %s\n", e)
		}
	}
	return Success(b.String())
}

// manDescription upper-cases the first rune of the one-line description.
func manDescription(h *handler) string {
	d := h.desc
	if d == "" {
		return h.name
	}
	return strings.ToUpper(d[:1]) + d[1:] + "."
}

func runHistory(s *Session, args []string, _ string) Result {
	opts, _ := splitOpts(args)
	if hasOpt(opts, 'c') {
		s.ClearHistory()
		return Success("")
	}
	var b strings.Builder
	for i, line := range s.History() {
		fmt.Fprintf(&b, "%5d  %s\n", i+1, line)
	}
	return Success(b.String())
}

func runWhoami(_ *Session, _ []string, _ string) Result {
	return Success("user\n")
}

func runDate(s *Session, _ []string, _ string) Result {
	return Success(s.now().UTC().Format("Mon Jan 02 15:04:05 UTC 2006") + "\n")
}

func runUname(_ *Session, args []string, _ string) Result {
	opts, _ := splitOpts(args)
	if hasOpt(opts, 'a') {
		return Success("TermOS termshell 1.0.0 #1 SMP x86_64 virtual\n")
	}
	return Success("TermOS\n")
}

func runAlias(s *Session, args []string, _ string) Result {
	if len(args) == 0 {
		var b strings.Builder
		for _, name := range s.aliases.Names() {
			value, _ := s.aliases.Get(name)
			fmt.Fprintf(&b, "alias %s='%s'\n", name, value)
		}
		return Success(b.String())
	}
	spec := strings.Join(args, " ")
	name, value, found := strings.Cut(spec, "=")
	name = strings.TrimSpace(name)
	if !found || name == "" || strings.ContainsAny(name, " \t") {
		return Errorf("alias: invalid syntax: use alias name='value'")
	}
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `'"`)
	s.SetAlias(name, value)
	return Success("")
}

func runType(s *Session, args []string, _ string) Result {
	if len(args) == 0 {
		return Errorf("type: missing operand")
	}
	var b strings.Builder
	allKnown := true
	for _, name := range args {
		if expansion, ok := s.aliases.Get(name); ok {
			fmt.Fprintf(&b, "%s is aliased to `%s'\n", name, expansion)
			continue
		}
		if _, ok := registry[name]; ok {
			fmt.Fprintf(&b, "%s is a shell builtin\n", name)
			continue
		}
		fmt.Fprintf(&b, "type: %s: not found\n", name)
		allKnown = false
	}
	if !allKnown {
		return Failure(b.String(), 1)
	}
	return Success(b.String())
}

func runClear(_ *Session, _ []string, _ string) Result {
	return Success("").withEffect(EffectClearScreen)
}
