package codec

import (
	"math"
	"regexp"
	"strings"

	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/model"
)

// Report summarizes what Parse reconstructed.
type Report struct {
	ClassName string
	Bones     int
	Cubes     int
	Matched   int // constructor statements recognized
	Skipped   int // constructor statements ignored
}

// parse scopes
const (
	scopeFile = iota
	scopeClass
	scopeConstructor
)

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//.*`)
	modifiers    = regexp.MustCompile(`public |static |final |private |void `)
)

// Parse reads a Java entity model class and adds the bones and cubes it declares to p.
// Statements that are not recognized, or that name undeclared bones, are skipped.
func Parse(src string, p *model.Project) Report {
	st := &parser{project: p, bones: map[string]*model.Bone{}}
	for _, l := range sourceLines(src) {
		st.line(l)
	}
	return st.report
}

// sourceLines strips comments, surrounding whitespace and a trailing semicolon
// from every line and drops the empty ones.
func sourceLines(src string) []string {
	src = blockComment.ReplaceAllString(src, "")
	var lines []string
	for _, l := range strings.Split(src, "\n") {
		l = lineComment.ReplaceAllString(l, "")
		l = strings.TrimSpace(l)
		l = strings.TrimSuffix(l, ";")
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

type parser struct {
	project *model.Project
	bones   map[string]*model.Bone
	scope   int
	class   string
	lastUV  [2]float64
	report  Report
}

func (st *parser) line(l string) {
	switch st.scope {
	case scopeFile:
		if strings.HasPrefix(l, "public class") {
			st.scope = scopeClass
			if parts := strings.FieldsFunc(l, isClassSeparator); len(parts) > 2 {
				st.class = parts[2]
				st.report.ClassName = st.class
				if st.project.GeometryName == "" {
					st.project.GeometryName = st.class
				}
			}
		}
	case scopeClass:
		l = strings.TrimSpace(modifiers.ReplaceAllString(l, ""))
		if strings.HasPrefix(l, "AnimatedModelRenderer") || strings.HasPrefix(l, "RendererModel") {
			if parts := strings.Fields(l); len(parts) > 1 {
				st.declare(parts[1], mathutil.Vec3{0, groundOffset, 0})
			}
		} else if st.class != "" && strings.HasPrefix(l, st.class+"(") {
			st.scope = scopeConstructor
		}
	case scopeConstructor:
		l = strings.TrimPrefix(l, "this.")
		if l == "}" {
			st.scope--
			return
		}
		for _, s := range statements {
			in := l
			if s.rewrite != nil {
				in = s.rewrite(in)
			}
			for _, sc := range s.schemes {
				if m, ok := sc.Match(in); ok {
					s.apply(st, m)
					st.report.Matched++
					return
				}
			}
		}
		st.report.Skipped++
	}
}

func isClassSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '<', '>', '(', ')', '.':
		return true
	}
	return false
}

// declare creates bone name at the project root unless it exists.
func (st *parser) declare(name string, origin mathutil.Vec3) *model.Bone {
	if b, ok := st.bones[name]; ok {
		return b
	}
	b := model.NewBone(name, origin)
	st.project.AddRoot(b)
	st.bones[name] = b
	st.report.Bones++
	return b
}

func (st *parser) bone(name string) (*model.Bone, bool) {
	b, ok := st.bones[name]
	return b, ok
}

// addCube attaches a cube rebuilt from a box offset and size relative to the bone origin.
// Box dimensions are integers in the target format, so the size is floored.
func (st *parser) addCube(b *model.Bone, uv [2]float64, off, size mathutil.Vec3, inflate float64, mirror bool) {
	from := mathutil.Vec3{
		b.Origin[0] - off[0] - size[0],
		b.Origin[1] - off[1] - size[1],
		b.Origin[2] + off[2],
	}
	to := from.Add(floor(size))
	c := model.NewCube(b.Name, from, to)
	c.UVOffset = uv
	c.Inflate = inflate
	c.Mirror = mirror
	b.AddCube(c)
	st.report.Cubes++
}

func floor(v mathutil.Vec3) mathutil.Vec3 {
	for i := range v {
		v[i] = math.Floor(v[i])
	}
	return v
}

// offsetCubes moves the cubes of b from parent-relative into absolute space.
func offsetCubes(b *model.Bone, by mathutil.Vec3) {
	d := mathutil.Vec3{by[0], by[1] - groundOffset, by[2]}
	for _, c := range b.Cubes {
		c.Translate(d)
	}
}
