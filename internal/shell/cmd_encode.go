package shell

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

func init() {
	register(
		&handler{
			name:     "base64",
			category: catEncoding,
			usage:    "base64 [-d] [file or text]",
			desc:     "base64 encode or decode",
			options:  []string{"-d, --decode   decode instead of encode"},
			examples: []string{"echo secret | base64", "base64 -d .secrets/flag.txt"},
			run:      runBase64,
		},
		&handler{
			name:     "xxd",
			category: catEncoding,
			usage:    "xxd [-r] [file or text]",
			desc:     "hex dump, or reverse a hex dump",
			options:  []string{"-r   convert hex back to raw bytes"},
			examples: []string{"cat downloads/random.bin | xxd", "echo 68690a | xxd -r"},
			run:      runXxd,
		},
		&handler{
			name:     "strings",
			category: catEncoding,
			usage:    "strings [-n N] [file]",
			desc:     "extract printable character runs",
			options:  []string{"-n N   minimum run length (default 4)"},
			examples: []string{"strings downloads/random.bin"},
			run:      runStrings,
		},
		&handler{
			name:     "md5sum",
			category: catEncoding,
			usage:    "md5sum [file or text]",
			desc:     "compute an MD5 digest",
			examples: []string{"md5sum readme.txt", "echo hi | md5sum"},
			run:      runMd5sum,
		},
		&handler{
			name:     "sha256sum",
			category: catEncoding,
			usage:    "sha256sum [file or text]",
			desc:     "compute a SHA-256 digest",
			examples: []string{"sha256sum readme.txt"},
			run:      runSha256sum,
		},
		&handler{
			name:     "rot13",
			category: catEncoding,
			usage:    "rot13 [text]",
			desc:     "rotate letters by 13 places",
			examples: []string{"echo uryyb | rot13"},
			run:      runRot13,
		},
		&handler{
			name:     "rev",
			category: catEncoding,
			usage:    "rev [file or text]",
			desc:     "reverse each line",
			examples: []string{"echo hello | rev"},
			run:      runRev,
		},
	)
}

func runBase64(s *Session, args []string, piped string) Result {
	opts, operands := splitOpts(args)
	decode := hasOpt(opts, 'd') || hasLongOpt(opts, "--decode")

	text, _, res, ok := literalInput(s, "base64", operands, piped)
	if !ok {
		return res
	}
	if decode {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return Errorf("base64: invalid input")
		}
		return Success(string(raw) + "\n")
	}
	return Success(base64.StdEncoding.EncodeToString([]byte(text)) + "\n")
}

func runXxd(s *Session, args []string, piped string) Result {
	opts, operands := splitOpts(args)
	text, _, res, ok := literalInput(s, "xxd", operands, piped)
	if !ok {
		return res
	}
	if hasOpt(opts, 'r') {
		cleaned := strings.Map(func(c rune) rune {
			switch c {
			case ' ', '\t', '\n', '\r', ':':
				return -1
			}
			return c
		}, text)
		raw, err := hex.DecodeString(cleaned)
		if err != nil {
			return Errorf("xxd: invalid hex input")
		}
		return Success(string(raw) + "\n")
	}
	return Success(hexDump([]byte(text)))
}

// hexDump renders 16 bytes per line: offset, pair-grouped hex and an
// ascii gutter with "." for non-printable bytes.
func hexDump(data []byte) string {
	var b strings.Builder
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		chunk := data[off:end]

		var hexPart strings.Builder
		for i, c := range chunk {
			fmt.Fprintf(&hexPart, "%02x", c)
			if i%2 == 1 {
				hexPart.WriteString(" ")
			}
		}
		var ascii strings.Builder
		for _, c := range chunk {
			if c >= 32 && c <= 126 {
				ascii.WriteByte(c)
			} else {
				ascii.WriteString(".")
			}
		}
		fmt.Fprintf(&b, "%08x: %-40s %s\n", off, hexPart.String(), ascii.String())
	}
	return b.String()
}

func runStrings(s *Session, args []string, piped string) Result {
	minLen := 4
	var operands []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-n" && i+1 < len(args) {
			v, err := strconv.Atoi(args[i+1])
			if err != nil || v < 1 {
				return Errorf("strings: invalid minimum length: '%s'", args[i+1])
			}
			minLen = v
			i++
			continue
		}
		operands = append(operands, args[i])
	}
	text, _, res, ok := literalInput(s, "strings", operands, piped)
	if !ok {
		return res
	}
	var b strings.Builder
	var run strings.Builder
	flush := func() {
		if run.Len() >= minLen {
			b.WriteString(run.String())
			b.WriteString("\n")
		}
		run.Reset()
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= 32 && c <= 126 {
			run.WriteByte(c)
		} else {
			flush()
		}
	}
	flush()
	return Success(b.String())
}

func runMd5sum(s *Session, args []string, piped string) Result {
	_, operands := splitOpts(args)
	text, name, res, ok := literalInput(s, "md5sum", operands, piped)
	if !ok {
		return res
	}
	return Success(fmt.Sprintf("%x  %s\n", md5.Sum([]byte(text)), name))
}

// runSha256sum is the one deferred command: the digest runs off the
// executing goroutine and the executor resolves the pending result.
func runSha256sum(s *Session, args []string, piped string) Result {
	_, operands := splitOpts(args)
	text, name, res, ok := literalInput(s, "sha256sum", operands, piped)
	if !ok {
		return res
	}
	ch := make(chan Result, 1)
	go func() {
		ch <- Success(fmt.Sprintf("%x  %s\n", sha256.Sum256([]byte(text)), name))
	}()
	return Deferred(ch)
}

func runRot13(s *Session, args []string, piped string) Result {
	text, _, res, ok := literalInput(s, "rot13", args, piped)
	if !ok {
		return res
	}
	rotated := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z':
			return 'a' + (c-'a'+13)%26
		case c >= 'A' && c <= 'Z':
			return 'A' + (c-'A'+13)%26
		}
		return c
	}, text)
	if !strings.HasSuffix(rotated, "\n") {
		rotated += "\n"
	}
	return Success(rotated)
}

func runRev(s *Session, args []string, piped string) Result {
	text, _, res, ok := literalInput(s, "rev", args, piped)
	if !ok {
		return res
	}
	lines := splitLines(text)
	var b strings.Builder
	for _, line := range lines {
		runes := []rune(line)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		b.WriteString(string(runes))
		b.WriteString("\n")
	}
	return Success(b.String())
}
