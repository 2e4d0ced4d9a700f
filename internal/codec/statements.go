package codec

import (
	"strings"

	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/scheme"
)

// statement is a constructor statement shape. The first scheme that matches wins.
type statement struct {
	schemes []*scheme.Scheme
	rewrite func(string) string // applied to the line before matching
	apply   func(st *parser, m scheme.Match)
}

func schemes(patterns ...string) []*scheme.Scheme {
	out := make([]*scheme.Scheme, len(patterns))
	for i, p := range patterns {
		out[i] = scheme.MustCompile(p)
	}
	return out
}

// statements are tried in order.
var statements = []statement{
	{
		schemes: schemes("textureWidth = $i"),
		apply: func(st *parser, m scheme.Match) {
			st.project.TextureWidth = m.Int(0)
		},
	},
	{
		schemes: schemes("textureHeight = $i"),
		apply: func(st *parser, m scheme.Match) {
			st.project.TextureHeight = m.Int(0)
		},
	},
	{
		schemes: schemes("super($v, $i, $i)"),
		apply: func(st *parser, m scheme.Match) {
			st.project.TextureWidth = m.Int(1)
			st.project.TextureHeight = m.Int(2)
		},
	},
	{
		// legacy renderers carry the texture offset of the boxes that follow
		schemes: schemes(
			"AnimatedModelRenderer $v = new AnimatedModelRenderer(this, $i, $i)",
			"RendererModel $v = new RendererModel(this, $i, $i)",
			"$v = new AnimatedModelRenderer(this, $i, $i)",
			"$v = new RendererModel(this, $i, $i)",
		),
		apply: func(st *parser, m scheme.Match) {
			st.declare(m.Var(0), mathutil.Vec3{0, groundOffset, 0})
			st.lastUV = [2]float64{m.Float(1), m.Float(2)}
		},
	},
	{
		schemes: schemes("$v = new AnimatedModelRenderer(this)"),
		apply: func(st *parser, m scheme.Match) {
			st.declare(m.Var(0), mathutil.Vec3{})
		},
	},
	{
		schemes: schemes("$v.setRotationPoint($f, $f, $f)"),
		apply: func(st *parser, m scheme.Match) {
			b, ok := st.bone(m.Var(0))
			if !ok {
				return
			}
			b.Origin = mathutil.Vec3{-m.Float(1), groundOffset - m.Float(2), m.Float(3)}
			offsetCubes(b, b.Origin)
		},
	},
	{
		schemes: schemes("$v.addChild($v)"),
		rewrite: func(l string) string { return strings.ReplaceAll(l, "(this.", "(") },
		apply: func(st *parser, m scheme.Match) {
			parent, ok := st.bone(m.Var(0))
			if !ok {
				return
			}
			child, ok := st.bone(m.Var(1))
			if !ok {
				return
			}
			st.project.Attach(child, parent)
			child.Origin = child.Origin.Add(parent.Origin)
			child.Origin[1] -= groundOffset
			offsetCubes(child, parent.Origin)
		},
	},
	{
		schemes: schemes("$v.cubeList.add(new ModelBox($v, $i, $i, $f, $f, $f, $i, $i, $i, $f, $b))"),
		apply: func(st *parser, m scheme.Match) {
			b, ok := st.bone(m.Var(0))
			if !ok {
				return
			}
			st.addCube(b,
				[2]float64{m.Float(2), m.Float(3)},
				vec(m, 4), vec(m, 7),
				m.Float(10), m.Bool(11))
		},
	},
	{
		schemes: schemes(
			"$v.addBox($f, $f, $f, $i, $i, $i)",
			"$v.addBox($f, $f, $f, $i, $i, $i, $v)",
			"$v.addBox($f, $f, $f, $i, $i, $i, $f)",
		),
		apply: func(st *parser, m scheme.Match) {
			b, ok := st.bone(m.Var(0))
			if !ok {
				return
			}
			var inflate float64
			if len(m) > 7 && m[7].Kind == scheme.Float {
				inflate = m.Float(7)
			}
			st.addCube(b, st.lastUV, vec(m, 1), vec(m, 4), inflate, b.Mirror)
		},
	},
	{
		schemes: schemes("$v.setTextureOffset($i, $i).addBox($f, $f, $f, $f, $f, $f, $f, $b)"),
		apply: func(st *parser, m scheme.Match) {
			b, ok := st.bone(m.Var(0))
			if !ok {
				return
			}
			st.addCube(b,
				[2]float64{m.Float(1), m.Float(2)},
				vec(m, 3), vec(m, 6),
				m.Float(9), m.Bool(10))
		},
	},
	{
		// editor, Cubik and Tabula helpers
		schemes: schemes(
			"setRotationAngle($v, $f, $f, $f)",
			"setRotation($v, $f, $f, $f)",
			"setRotateAngle($v, $f, $f, $f)",
		),
		apply: func(st *parser, m scheme.Match) {
			b, ok := st.bone(m.Var(0))
			if !ok {
				return
			}
			b.Rotation = mathutil.Vec3{
				-mathutil.Rad2Deg(m.Float(1)),
				-mathutil.Rad2Deg(m.Float(2)),
				mathutil.Rad2Deg(m.Float(3)),
			}
		},
	},
	{
		schemes: schemes("$v.rotateAngleX = $f"),
		apply: func(st *parser, m scheme.Match) {
			if b, ok := st.bone(m.Var(0)); ok {
				b.Rotation[0] = -mathutil.Rad2Deg(m.Float(1))
			}
		},
	},
	{
		schemes: schemes("$v.rotateAngleY = $f"),
		apply: func(st *parser, m scheme.Match) {
			if b, ok := st.bone(m.Var(0)); ok {
				b.Rotation[1] = -mathutil.Rad2Deg(m.Float(1))
			}
		},
	},
	{
		schemes: schemes("$v.rotateAngleZ = $f"),
		apply: func(st *parser, m scheme.Match) {
			if b, ok := st.bone(m.Var(0)); ok {
				b.Rotation[2] = mathutil.Rad2Deg(m.Float(1))
			}
		},
	},
	{
		schemes: schemes("$v.mirror = $b"),
		apply: func(st *parser, m scheme.Match) {
			b, ok := st.bone(m.Var(0))
			if !ok {
				return
			}
			b.Mirror = m.Bool(1)
			for _, c := range b.Cubes {
				c.Mirror = b.Mirror
			}
		},
	},
}

// vec reads three consecutive numeric captures starting at i.
func vec(m scheme.Match, i int) mathutil.Vec3 {
	return mathutil.Vec3{m.Float(i), m.Float(i + 1), m.Float(i + 2)}
}
