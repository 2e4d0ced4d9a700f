// Package tmpl is a small line-oriented template engine for generated source files.
//
// Templates use two markers:
//
//	%(name)  replaced by the value bound to name
//	?(name)  at the start of a line: the line is only emitted when name is kept
//
// Templates are compiled once into lines of literal and placeholder segments.
package tmpl

import (
	"fmt"
	"strings"
)

// indentUnit is the authoring indentation stripped from every template line.
const indentUnit = "\t\t\t"

// Template is a compiled template.
type Template struct {
	lines []line
}

type line struct {
	cond string // empty for unconditional lines
	segs []segment
}

type segment struct {
	text string
	name string // placeholder name; empty for literal text
}

// Data holds the values for one render.
type Data struct {
	// Vars maps placeholder names to values. Values are formatted with fmt.Sprint.
	// Placeholders without a value are emitted verbatim.
	Vars map[string]any

	// Keep lists the conditional lines to emit. Lines whose condition is not kept
	// are dropped together with their line break.
	Keep map[string]bool
}

// Compile parses src after stripping one authoring indent unit from each line.
func Compile(src string) *Template {
	src = StripIndent(src)
	raw := strings.Split(src, "\n")
	t := &Template{lines: make([]line, 0, len(raw))}
	for _, s := range raw {
		var l line
		if name, rest, ok := conditional(s); ok {
			l.cond = name
			s = rest
		}
		l.segs = segments(s)
		t.lines = append(t.lines, l)
	}
	return t
}

// Render executes the template.
func (t *Template) Render(d Data) string {
	var b strings.Builder
	first := true
	for _, l := range t.lines {
		if l.cond != "" && !d.Keep[l.cond] {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false
		for _, seg := range l.segs {
			if seg.name == "" {
				b.WriteString(seg.text)
				continue
			}
			v, ok := d.Vars[seg.name]
			if !ok {
				b.WriteString(seg.text)
				continue
			}
			b.WriteString(fmt.Sprint(v))
		}
	}
	return b.String()
}

// Placeholders returns the distinct placeholder names in order of first use.
func (t *Template) Placeholders() []string {
	var names []string
	seen := make(map[string]bool)
	for _, l := range t.lines {
		for _, seg := range l.segs {
			if seg.name != "" && !seen[seg.name] {
				seen[seg.name] = true
				names = append(names, seg.name)
			}
		}
	}
	return names
}

// StripIndent removes one leading indent unit from every line of s.
func StripIndent(s string) string {
	if !strings.Contains(s, indentUnit) {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, indentUnit)
	}
	return strings.Join(lines, "\n")
}

// KeepLine removes the conditional marker from a raw template line.
func KeepLine(s string) string {
	if _, rest, ok := conditional(s); ok {
		return rest
	}
	return s
}

// DropLines removes every line of s carrying the conditional marker for name.
func DropLines(s, name string) string {
	marker := "?(" + name + ")"
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(l, marker) {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}

func conditional(s string) (name, rest string, ok bool) {
	if !strings.HasPrefix(s, "?(") {
		return "", s, false
	}
	n := wordLen(s[2:])
	if n == 0 || len(s) <= 2+n || s[2+n] != ')' {
		return "", s, false
	}
	return s[2 : 2+n], s[3+n:], true
}

func segments(s string) []segment {
	var segs []segment
	for {
		i := strings.Index(s, "%(")
		if i < 0 {
			break
		}
		n := wordLen(s[i+2:])
		if n == 0 || len(s) <= i+2+n || s[i+2+n] != ')' {
			// not a placeholder; keep "%(" as text and continue after it
			segs = appendText(segs, s[:i+2])
			s = s[i+2:]
			continue
		}
		segs = appendText(segs, s[:i])
		segs = append(segs, segment{text: s[i : i+3+n], name: s[i+2 : i+2+n]})
		s = s[i+3+n:]
	}
	return appendText(segs, s)
}

func appendText(segs []segment, text string) []segment {
	if text == "" {
		return segs
	}
	if k := len(segs) - 1; k >= 0 && segs[k].name == "" {
		segs[k].text += text
		return segs
	}
	return append(segs, segment{text: text})
}

func wordLen(s string) int {
	n := 0
	for n < len(s) {
		c := s[n]
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			n++
			continue
		}
		break
	}
	return n
}
