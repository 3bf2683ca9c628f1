// Package shell implements the command interpreter: tokenizer,
// session state, executor and the builtin command set.
package shell

import (
	"errors"
	"strings"
)

// Token is one unit of a command line: either a literal word or a
// control token ("|", ">" or ">>"). Quoted text never produces control
// tokens, so a quoted ">" stays an ordinary word.
type Token struct {
	Text string
	Ctl  bool
}

// charClass is what the quote scanner decided about one character.
type charClass int

const (
	// classLiteral: part of the current word verbatim (quoted or escaped)
	classLiteral charClass = iota
	// classQuote: a quote delimiter, consumed and dropped
	classQuote
	// classEscape: a backslash, consumed and dropped
	classEscape
	// classActive: unquoted, unescaped; may split words or act as control
	classActive
)

// scanState is the quote/escape state machine shared by the tokenizer
// and the detection helpers, so "does this line contain an unquoted
// pipe" always agrees with how Tokenize would read the line.
type scanState struct {
	inSingle bool
	inDouble bool
	escaped  bool
}

// step consumes one character and classifies it.
func (s *scanState) step(c rune) charClass {
	if s.escaped {
		s.escaped = false
		return classLiteral
	}
	if c == '\\' {
		s.escaped = true
		return classEscape
	}
	if s.inSingle {
		if c == '\'' {
			s.inSingle = false
			return classQuote
		}
		return classLiteral
	}
	if s.inDouble {
		if c == '"' {
			s.inDouble = false
			return classQuote
		}
		return classLiteral
	}
	switch c {
	case '\'':
		s.inSingle = true
		return classQuote
	case '"':
		s.inDouble = true
		return classQuote
	}
	return classActive
}

// Tokenize splits a raw line into word and control tokens. Quote
// characters are stripped, backslash escapes keep the next character
// verbatim, and unquoted whitespace collapses. An unquoted ">" fuses
// with an immediately following ">" into a single ">>" token.
func Tokenize(line string) []Token {
	var (
		st     scanState
		tokens []Token
		word   strings.Builder
		have   bool
	)
	flush := func() {
		if have {
			tokens = append(tokens, Token{Text: word.String()})
			word.Reset()
			have = false
		}
	}
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch st.step(c) {
		case classLiteral:
			word.WriteRune(c)
			have = true
		case classQuote:
			// an empty quoted span still yields a word
			have = true
		case classEscape:
			// consumed; next char is literal
		case classActive:
			switch {
			case c == ' ' || c == '\t':
				flush()
			case c == '|':
				flush()
				tokens = append(tokens, Token{Text: "|", Ctl: true})
			case c == '>':
				flush()
				if i+1 < len(runes) && runes[i+1] == '>' {
					st.step(runes[i+1])
					i++
					tokens = append(tokens, Token{Text: ">>", Ctl: true})
				} else {
					tokens = append(tokens, Token{Text: ">", Ctl: true})
				}
			default:
				word.WriteRune(c)
				have = true
			}
		}
	}
	flush()
	return tokens
}

// tokenTexts flattens tokens back to plain strings.
func tokenTexts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

// ContainsUnquotedPipe reports whether the line has a "|" outside any
// quoted span. It scans incrementally rather than tokenizing.
func ContainsUnquotedPipe(line string) bool {
	var st scanState
	for _, c := range line {
		if st.step(c) == classActive && c == '|' {
			return true
		}
	}
	return false
}

// ContainsUnquotedRedirect reports whether the line has a ">" or ">>"
// outside any quoted span.
func ContainsUnquotedRedirect(line string) bool {
	var st scanState
	for _, c := range line {
		if st.step(c) == classActive && c == '>' {
			return true
		}
	}
	return false
}

// SplitPipeline splits a line at each unquoted "|", trimming the
// surrounding whitespace of every segment. Empty segments are kept;
// they fail downstream as malformed commands.
func SplitPipeline(line string) []string {
	var (
		st   scanState
		segs []string
		cur  strings.Builder
	)
	for _, c := range line {
		if st.step(c) == classActive && c == '|' {
			segs = append(segs, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(c)
	}
	segs = append(segs, strings.TrimSpace(cur.String()))
	return segs
}

var (
	errRedirectMissingCommand = errors.New("syntax error: missing command before redirect")
	errRedirectMissingTarget  = errors.New("syntax error: missing redirect target")
)

// ParseRedirect splits a line known to contain an unquoted redirect
// into the command tokens, the destination path (tokens after the
// redirect rejoined with single spaces) and the append flag.
func ParseRedirect(line string) (cmd []Token, dest string, appendMode bool, err error) {
	tokens := Tokenize(line)
	idx := -1
	for i, t := range tokens {
		if t.Ctl && (t.Text == ">" || t.Text == ">>") {
			idx = i
			break
		}
	}
	if idx < 0 || idx == 0 {
		return nil, "", false, errRedirectMissingCommand
	}
	if idx == len(tokens)-1 {
		return nil, "", false, errRedirectMissingTarget
	}
	appendMode = tokens[idx].Text == ">>"
	dest = strings.Join(tokenTexts(tokens[idx+1:]), " ")
	return tokens[:idx], dest, appendMode, nil
}
