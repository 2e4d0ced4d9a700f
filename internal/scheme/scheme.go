// Package scheme matches source lines against declarative statement shapes.
//
// A scheme is a literal text with typed placeholders:
//
//	$v  identifier      [A-Za-z_][A-Za-z0-9_]*
//	$i  integer         -?\d+
//	$f  float literal   -?\d+\.?\d*F
//	$d  double literal  -?\d+\.?\d*
//	$b  boolean         true|false
//
// Matching is anchored and strictly sequential: each placeholder consumes its longest
// lexeme at the current position and the literal text after it must follow
// immediately. There is no backtracking. Text after the last segment is ignored.
package scheme

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the type of a placeholder.
type Kind byte

const (
	Var    Kind = 'v'
	Int    Kind = 'i'
	Float  Kind = 'f'
	Double Kind = 'd'
	Bool   Kind = 'b'
)

func (k Kind) String() string {
	return "$" + string(k)
}

// Scheme is a compiled statement shape.
type Scheme struct {
	pattern string
	prefix  string
	parts   []part
}

type part struct {
	kind    Kind
	literal string
}

// Compile parses a scheme pattern.
func Compile(pattern string) (*Scheme, error) {
	chunks := strings.Split(pattern, "$")
	s := &Scheme{pattern: pattern, prefix: chunks[0]}
	for _, c := range chunks[1:] {
		if c == "" {
			return nil, fmt.Errorf("scheme: %q: dangling $", pattern)
		}
		k := Kind(c[0])
		switch k {
		case Var, Int, Float, Double, Bool:
		default:
			return nil, fmt.Errorf("scheme: %q: unknown placeholder $%c", pattern, c[0])
		}
		s.parts = append(s.parts, part{kind: k, literal: c[1:]})
	}
	return s, nil
}

// MustCompile is like Compile but panics if the pattern is invalid.
func MustCompile(pattern string) *Scheme {
	s, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Scheme) String() string {
	return s.pattern
}

// Kinds returns the placeholder kinds in order.
func (s *Scheme) Kinds() []Kind {
	kinds := make([]Kind, len(s.parts))
	for i, p := range s.parts {
		kinds[i] = p.kind
	}
	return kinds
}

// Match matches input against the scheme and returns the typed captures.
func (s *Scheme) Match(input string) (Match, bool) {
	if !strings.HasPrefix(input, s.prefix) {
		return nil, false
	}
	pos := len(s.prefix)
	m := make(Match, 0, len(s.parts))
	for _, p := range s.parts {
		n := lex(p.kind, input[pos:])
		if n == 0 {
			return nil, false
		}
		c, ok := capture(p.kind, input[pos:pos+n])
		if !ok {
			return nil, false
		}
		m = append(m, c)
		pos += n
		if !strings.HasPrefix(input[pos:], p.literal) {
			return nil, false
		}
		pos += len(p.literal)
	}
	return m, true
}

// lex returns the length of the lexeme of kind k at the start of s, or 0.
func lex(k Kind, s string) int {
	switch k {
	case Var:
		if len(s) == 0 || !isIdentStart(s[0]) {
			return 0
		}
		n := 1
		for n < len(s) && isIdentPart(s[n]) {
			n++
		}
		return n
	case Int:
		return number(s, false)
	case Double:
		return number(s, true)
	case Float:
		n := number(s, true)
		if n == 0 || n >= len(s) || s[n] != 'F' {
			return 0
		}
		return n + 1
	case Bool:
		switch {
		case strings.HasPrefix(s, "true"):
			return 4
		case strings.HasPrefix(s, "false"):
			return 5
		}
	}
	return 0
}

// number matches -?\d+ and, when fraction is set, an optional .\d* after it.
func number(s string, fraction bool) int {
	n := 0
	if n < len(s) && s[n] == '-' {
		n++
	}
	start := n
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	if n == start {
		return 0
	}
	if fraction && n < len(s) && s[n] == '.' {
		n++
		for n < len(s) && isDigit(s[n]) {
			n++
		}
	}
	return n
}

func capture(k Kind, text string) (Capture, bool) {
	c := Capture{Kind: k, Text: text}
	switch k {
	case Int:
		v, err := strconv.Atoi(text)
		if err != nil {
			return c, false
		}
		c.Int = v
		c.Float = float64(v)
	case Float, Double:
		v, err := strconv.ParseFloat(strings.TrimSuffix(text, "F"), 64)
		if err != nil {
			return c, false
		}
		c.Float = v
	case Bool:
		c.Bool = text == "true"
	}
	return c, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
