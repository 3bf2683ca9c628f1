package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"termshell/internal/logging"
	"termshell/internal/shell"
	"termshell/internal/vfs"
)

var logger = logging.GetLogger()

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	if *verbose {
		logger.SetLevel(logging.LevelDebug)
	}

	session, err := shell.NewSession()
	if err != nil {
		logger.Error("Failed to create session: %v", err)
		os.Exit(1)
	}
	logger.Debug("Session %s ready", session.ID())

	fmt.Println("termshell - an in-memory terminal. Type 'help' to get started.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt(session))
		if !scanner.Scan() {
			break
		}
		res := session.Execute(scanner.Text())
		for _, effect := range res.Effects {
			if effect == shell.EffectClearScreen {
				fmt.Print("\033[2J\033[H")
			}
		}
		if res.Output != "" {
			fmt.Print(res.Output)
			if !strings.HasSuffix(res.Output, "\n") {
				fmt.Println()
			}
		}
	}
	fmt.Println()
}

// prompt renders "user@termshell:~/path$ " with the home directory
// abbreviated to "~".
func prompt(s *shell.Session) string {
	cwd := s.WorkingDir()
	if cwd == vfs.HomeDir {
		cwd = "~"
	} else if strings.HasPrefix(cwd, vfs.HomeDir+"/") {
		cwd = "~" + cwd[len(vfs.HomeDir):]
	}
	return fmt.Sprintf("user@termshell:%s$ ", cwd)
}
