package shell

import (
	"fmt"
	"strings"

	"termshell/internal/vfs"
)

func init() {
	register(
		&handler{
			name:     "pwd",
			category: catNav,
			usage:    "pwd",
			desc:     "print the current working directory",
			examples: []string{"pwd"},
			run:      runPwd,
		},
		&handler{
			name:     "cd",
			category: catNav,
			usage:    "cd [directory]",
			desc:     "change the working directory",
			examples: []string{"cd /tmp", "cd ..", "cd"},
			run:      runCd,
		},
		&handler{
			name:     "ls",
			category: catNav,
			usage:    "ls [-la] [path]",
			desc:     "list directory contents",
			options: []string{
				"-l   long listing with permissions, size and dates",
				"-a   include hidden entries plus . and ..",
			},
			examples: []string{"ls", "ls -la /home/user"},
			run:      runLs,
		},
	)
}

func runPwd(s *Session, _ []string, _ string) Result {
	return Success(s.cwd + "\n")
}

func runCd(s *Session, args []string, _ string) Result {
	_, operands := splitOpts(args)
	target := ""
	if len(operands) > 0 {
		target = operands[0]
	}
	if target == "" || target == "~" {
		s.cwd = s.Home()
		return Success("")
	}
	abs := s.resolve(target)
	node, err := s.fs.Lookup(abs)
	if err != nil {
		return pathError("cd", target, err)
	}
	if !node.IsDir() {
		return Errorf("cd: %s: Not a directory", target)
	}
	s.cwd = abs
	return Success("")
}

func runLs(s *Session, args []string, _ string) Result {
	opts, operands := splitOpts(args)
	long := hasOpt(opts, 'l')
	all := hasOpt(opts, 'a')

	path := s.cwd
	display := "."
	if len(operands) > 0 {
		display = operands[0]
		path = s.resolve(operands[0])
	}

	entries, err := s.fs.List(path)
	if err != nil {
		return pathError("ls", display, err)
	}

	type row struct {
		name string
		node *vfs.Node
	}
	var rows []row
	if all {
		if dir, lookupErr := s.fs.Lookup(path); lookupErr == nil && dir.IsDir() {
			rows = append(rows, row{".", dir}, row{"..", dir})
		}
	}
	for _, e := range entries {
		if !all && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		rows = append(rows, row{e.Name(), e})
	}

	var b strings.Builder
	for _, r := range rows {
		if long {
			// link count, owner and group are fixed display values
			fmt.Fprintf(&b, "%s %2d %-4s %-4s %8d %s %s\n",
				r.node.Perm(), 1, "user", "user", r.node.Size(),
				r.node.Modified().Format("Jan 02 15:04"), r.name)
		} else {
			b.WriteString(r.name)
			b.WriteString("\n")
		}
	}
	return Success(b.String())
}
