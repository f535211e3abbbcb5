package foam

import (
	"fmt"
	"strconv"
	"strings"
)

// OpenFOAM output files share one dictionary syntax: C-style comments, a
// FoamFile header block, and whitespace-separated tokens with (), {}, []
// and ; punctuation. tokenize splits a file into that token stream;
// parser walks it.

func tokenize(data []byte) []string {
	s := string(data)
	var toks []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			flush()
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			flush()
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++
		case c == '(' || c == ')' || c == '{' || c == '}' || c == '[' || c == ']' || c == ';':
			flush()
			toks = append(toks, string(c))
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return toks
}

type parser struct {
	path string
	toks []string
	pos  int
}

func newParser(path string, data []byte) *parser {
	p := &parser{path: path, toks: tokenize(data)}
	p.skipHeader()
	return p
}

func (p *parser) errf(format string, args ...any) error {
	return &OutputParseError{Path: p.path, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() string {
	if p.done() {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) expect(tok string) error {
	if got := p.next(); got != tok {
		return p.errf("expected %q, got %q", tok, got)
	}
	return nil
}

// skipHeader drops the FoamFile { ... } preamble if present.
func (p *parser) skipHeader() {
	if p.peek() != "FoamFile" {
		return
	}
	p.next()
	if p.peek() != "{" {
		return
	}
	p.skipBlock()
}

// skipBlock consumes a balanced { ... } block starting at the current
// position.
func (p *parser) skipBlock() {
	if p.peek() != "{" {
		return
	}
	depth := 0
	for !p.done() {
		switch p.next() {
		case "{":
			depth++
		case "}":
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// seek advances to the next occurrence of tok at any depth and consumes it.
func (p *parser) seek(tok string) bool {
	for !p.done() {
		if p.next() == tok {
			return true
		}
	}
	return false
}

func (p *parser) float() (float64, error) {
	tok := p.next()
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, p.errf("expected number, got %q", tok)
	}
	return v, nil
}

func (p *parser) int() (int, error) {
	tok := p.next()
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, p.errf("expected integer, got %q", tok)
	}
	return v, nil
}
