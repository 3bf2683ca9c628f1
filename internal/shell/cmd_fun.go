package shell

import (
	"fmt"
	"regexp"
	"strings"
)

func init() {
	register(
		&handler{
			name:     "sudo",
			category: catFun,
			usage:    "sudo <command>",
			desc:     "try to become root",
			run:      runSudo,
		},
		&handler{
			name:     "rm",
			category: catFun,
			usage:    "rm [-rf] <path>...",
			desc:     "remove files or directories",
			options: []string{
				"-r, --recursive   remove directories and their contents",
				"-f, --force       ignore nonexistent operands (display only)",
			},
			examples: []string{"rm /tmp/out.txt", "rm -r /tmp/work"},
			run:      runRm,
		},
		&handler{
			name:     "cowsay",
			category: catFun,
			usage:    "cowsay [text]",
			desc:     "a cow says things",
			examples: []string{"cowsay moo"},
			run:      runCowsay,
		},
		&handler{
			name:     "matrix",
			category: catFun,
			usage:    "matrix",
			desc:     "follow the white rabbit",
			run:      runMatrix,
		},
		&handler{
			name:     "hack",
			category: catFun,
			usage:    "hack [target]",
			desc:     "hack the planet",
			run:      runHack,
		},
		&handler{
			name:     "neofetch",
			category: catFun,
			usage:    "neofetch",
			desc:     "show system information with style",
			run:      runNeofetch,
		},
		&handler{
			name:     "sl",
			category: catFun,
			usage:    "sl",
			desc:     "you meant ls, but here is a train",
			run:      runSl,
		},
		&handler{
			name:     "fortune",
			category: catFun,
			usage:    "fortune",
			desc:     "print a random fortune",
			run:      runFortune,
		},
		&handler{name: "exit", category: catFun, usage: "exit", desc: "try to leave", run: runExit},
		&handler{name: "quit", category: catFun, usage: "quit", desc: "try to leave", run: runExit},
		&handler{name: "logout", category: catFun, usage: "logout", desc: "try to leave", run: runExit},
	)
}

var sudoDenials = []string{
	"user is not in the sudoers file. This incident will be reported.",
	"Nice try.",
	"Permission denied: you are not worthy.",
	"sudo: a password is required. You do not know it.",
}

func runSudo(s *Session, _ []string, _ string) Result {
	return Failure(pick(s, sudoDenials)+"\n", 1)
}

// dangerousRm matches a recursive flag aimed at the filesystem root in
// the raw argument text.
var dangerousRm = regexp.MustCompile(`(^|\s)(-[a-zA-Z]*r[a-zA-Z]*|--recursive)(\s+\S+)*\s+/\s*$`)

const rmCatastrophe = `rm: removing '/'...
rm: removing '/home'... gone
rm: removing '/etc'... gone
rm: removing '/var'... gone
rm: just kidding. This filesystem is not even real.
Nothing was harmed. Try 'ls /' if you don't believe it.
`

func runRm(s *Session, args []string, _ string) Result {
	raw := strings.Join(args, " ")
	if dangerousRm.MatchString(raw) {
		return Success(rmCatastrophe)
	}
	opts, operands := splitOpts(args)
	recursive := hasOpt(opts, 'r') || hasLongOpt(opts, "--recursive")
	if len(operands) == 0 {
		return Errorf("rm: missing operand")
	}
	for _, op := range operands {
		if err := s.fs.Remove(s.resolve(op), recursive); err != nil {
			return Errorf("rm: cannot remove '%s': %s", op, unixMessage(err))
		}
	}
	return Success("")
}

func runCowsay(_ *Session, args []string, piped string) Result {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		text = strings.TrimSpace(piped)
	}
	if text == "" {
		text = "Moo!"
	}
	border := strings.Repeat("_", len(text)+2)
	bottom := strings.Repeat("-", len(text)+2)
	out := fmt.Sprintf(` %s
< %s >
 %s
        \   ^__^
         \  (oo)\_______
            (__)\       )\/\
                ||----w |
                ||     ||
`, border, text, bottom)
	return Success(out)
}

func runMatrix(_ *Session, _ []string, _ string) Result {
	return Success("Wake up, Neo...\nThe Matrix has you.\n").withEffect(EffectMatrix)
}

func runHack(_ *Session, args []string, _ string) Result {
	target := "the mainframe"
	if len(args) > 0 {
		target = strings.Join(args, " ")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Initializing hack on %s...\n", target)
	b.WriteString("Bypassing firewall............ done\n")
	b.WriteString("Cracking encryption........... done\n")
	b.WriteString("Downloading secret files...... done\n")
	b.WriteString("Covering tracks............... done\n")
	b.WriteString("ACCESS GRANTED. (Not really. Nothing happened.)\n")
	return Success(b.String())
}

func runNeofetch(s *Session, _ []string, _ string) Result {
	out := `            .---.        user@termshell
           /     \       --------------
           \.@-@./       OS: TermOS 1.0.0 x86_64
           /'\_/'\       Host: an in-memory figment
          //  _  \\      Kernel: none whatsoever
         | \     )|_     Shell: termshell
        /'\_'>  <_/ \    Memory: all of it is yours
        \__/'---'\__/    Disk: 0 bytes (and staying that way)
`
	return Success(out)
}

func runSl(_ *Session, _ []string, _ string) Result {
	out := `      ====        ________
  _D _|  |_______/        \__I_I_____===__|_________
   |(_)---  |   H\________/ |   |        =|___ ___|
   /     |  |   H  |  |     |   |         ||_| |_||
  |      |  |   H  |__--------------------| [___] |
  | ________|___H__/__|_____/[][]~\_______|       |
  |/ |   |-----------I_____I [][] []  D   |=======|__
`
	return Success(out)
}

var fortunes = []string{
	"A journey of a thousand commands begins with a single keystroke.",
	"You will find a flag in an unexpected place.",
	"He who greps too broadly matches nothing of value.",
	"The best time to write tests was yesterday. The second best is now.",
	"Your history remembers what you would rather forget. Try 'history -c'.",
	"Real filesystems have feelings. This one does not. Type freely.",
}

func runFortune(s *Session, _ []string, _ string) Result {
	return Success(pick(s, fortunes) + "\n")
}

var exitMessages = []string{
	"There is no escape. This terminal is your home now.",
	"exit: command completed successfully. You are still here.",
	"You can check out any time you like, but you can never leave.",
	"Session persists. Resistance is futile.",
}

func runExit(s *Session, _ []string, _ string) Result {
	return Success(pick(s, exitMessages) + "\n")
}

// pick selects one candidate using the session's randomness source.
func pick(s *Session, candidates []string) string {
	return candidates[s.rand.Intn(len(candidates))]
}
