package shell

import (
	"strings"
	"testing"
)

func TestLsLongFormat(t *testing.T) {
	s := newTestSession(t)

	res := mustExec(t, s, "ls -l /etc")
	lines := strings.Split(strings.TrimSuffix(res.Output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("ls -l /etc returned %d lines: %q", len(lines), res.Output)
	}
	// hosts is 40 bytes; the row carries perm, links, owner, group,
	// size, date and name.
	var hostsRow string
	for _, l := range lines {
		if strings.HasSuffix(l, " hosts") {
			hostsRow = l
		}
	}
	if hostsRow == "" {
		t.Fatalf("no hosts row in %q", res.Output)
	}
	if !strings.HasPrefix(hostsRow, "-rw-r--r--  1 user user       40 ") {
		t.Errorf("hosts row = %q", hostsRow)
	}
}

func TestLsOnFile(t *testing.T) {
	s := newTestSession(t)

	res := mustExec(t, s, "ls /etc/hosts")
	if res.Output != "hosts\n" {
		t.Errorf("ls on file = %q", res.Output)
	}

	res = s.Execute("ls /nope")
	if res.OK || res.Output != "ls: /nope: No such file or directory\n" {
		t.Errorf("ls missing: %+v", res)
	}
}

func TestLsExecutablePerm(t *testing.T) {
	s := newTestSession(t)

	res := mustExec(t, s, "ls -l scripts")
	if !strings.Contains(res.Output, "-rwxr-xr-x") {
		t.Errorf("scripts listing lost the exec bits: %q", res.Output)
	}
}
