package codec

import (
	"fmt"
	"strings"

	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/model"
	"gecko-animutils/internal/settings"
	"gecko-animutils/internal/tmpl"
)

// groundOffset is the height of the ground plane in the target coordinate system.
const groundOffset = 24

// mainBone is the synthetic bone holding cubes at the project root.
const mainBone = "bb_main"

// EditorVersion is written into the header of generated classes.
const EditorVersion = "3.6.6"

// Options tune a compile.
type Options struct {
	EditorVersion string // defaults to EditorVersion
}

// Compile renders p as a GeckoLib animated entity model class.
// The template set is selected by p.ModdedEntityVersion.
func Compile(p *model.Project, s settings.ExportSettings, opts Options) (string, error) {
	set, err := Templates.Resolve(p.ModdedEntityVersion)
	if err != nil {
		return "", fmt.Errorf("codec: compile %s: %w", p.Name, err)
	}
	imports, err := s.Imports()
	if err != nil {
		return "", fmt.Errorf("codec: compile %s: %w", p.Name, err)
	}
	if opts.EditorVersion == "" {
		opts.EditorVersion = EditorVersion
	}
	c := compiler{set: set}
	bones := exportedBones(p)

	fields, err := c.fields(bones)
	if err != nil {
		return "", err
	}
	content, err := c.content(bones)
	if err != nil {
		return "", err
	}
	renderers, err := c.renderers(bones)
	if err != nil {
		return "", err
	}
	file, err := c.template(slotFile)
	if err != nil {
		return "", err
	}
	return file.Render(tmpl.Data{Vars: map[string]any{
		"bb_version":        opts.EditorVersion,
		"javaPackage":       s.JavaPackage,
		"imports":           imports,
		"identifier":        Identifier(p),
		"entityType":        s.EntityType,
		"texture_width":     p.TextureWidth,
		"texture_height":    p.TextureHeight,
		"animFileNamespace": s.AnimFileNamespace,
		"animFilePath":      s.AnimFilePath,
		"fields":            fields,
		"content":           content,
		"renderers":         renderers,
	}}), nil
}

// exportedBones returns the exported bones in pre-order, followed by a synthetic
// root bone owning the loose cubes if there are any.
func exportedBones(p *model.Project) []*model.Bone {
	var bones []*model.Bone
	for _, b := range p.AllBones() {
		if b.Export {
			bones = append(bones, b)
		}
	}
	if len(p.LooseCubes) > 0 {
		bones = append(bones, &model.Bone{Name: mainBone, Export: true, Cubes: p.LooseCubes})
	}
	return bones
}

type compiler struct {
	set *tmpl.Set
}

func (c compiler) template(slot string) (*tmpl.Template, error) {
	t, ok := c.set.Template(slot)
	if !ok {
		return nil, fmt.Errorf("codec: template set %s has no %s template", c.set.Name(), slot)
	}
	return t, nil
}

func (c compiler) fields(bones []*model.Bone) (string, error) {
	t, err := c.template(slotField)
	if err != nil {
		return "", err
	}
	snippets := make([]string, 0, len(bones))
	for _, b := range bones {
		snippets = append(snippets, t.Render(tmpl.Data{Vars: map[string]any{"bone": b.Name}}))
	}
	return strings.Join(snippets, "\n\t"), nil
}

func (c compiler) renderers(bones []*model.Bone) (string, error) {
	t, err := c.template(slotRenderer)
	if err != nil {
		return "", err
	}
	rootOnly := c.set.Flag(flagRootRenderersOnly)
	var snippets []string
	for _, b := range bones {
		if rootOnly && b.Parent != nil {
			continue
		}
		snippets = append(snippets, t.Render(tmpl.Data{Vars: map[string]any{"bone": b.Name}}))
	}
	return strings.Join(snippets, "\n\t\t"), nil
}

func (c compiler) content(bones []*model.Bone) (string, error) {
	t, err := c.template(slotBone)
	if err != nil {
		return "", err
	}
	snippets := make([]string, 0, len(bones))
	for _, b := range bones {
		cubes, err := c.cubes(b)
		if err != nil {
			return "", err
		}
		origin := c.pivot(b)
		vars := map[string]any{
			"bone":  b.Name,
			"x":     F(origin[0]),
			"y":     F(origin[1]),
			"z":     F(origin[2]),
			"rx":    F(mathutil.Deg2Rad(-b.Rotation[0])),
			"ry":    F(mathutil.Deg2Rad(-b.Rotation[1])),
			"rz":    F(mathutil.Deg2Rad(b.Rotation[2])),
			"cubes": cubes,
		}
		if b.Parent != nil {
			vars["parent"] = b.Parent.Name
		}
		snippet := t.Render(tmpl.Data{
			Vars: vars,
			Keep: map[string]bool{
				"has_parent":   b.Parent != nil,
				"has_rotation": b.HasRotation(),
				"has_cubes":    cubes != "",
			},
		})
		snippets = append(snippets, strings.ReplaceAll(snippet, "\n", "\n\t\t"))
	}
	return strings.Join(snippets, "\n\n\t\t"), nil
}

// pivot returns the rotation point of b relative to its parent in target space.
func (c compiler) pivot(b *model.Bone) mathutil.Vec3 {
	origin := b.Origin
	if b.Parent != nil {
		origin = origin.Sub(b.Parent.Origin)
	}
	origin[0] = -origin[0]
	if c.set.Flag(flagFlipY) {
		origin[1] = -origin[1]
		if b.Parent == nil {
			origin[1] += groundOffset
		}
	}
	return origin
}

func (c compiler) cubes(b *model.Bone) (string, error) {
	t, err := c.template(slotCube)
	if err != nil {
		return "", err
	}
	flipY := c.set.Flag(flagFlipY)
	size := F
	if c.set.Flag(flagIntegerSize) {
		size = I
	}
	var snippets []string
	for _, cube := range b.Cubes {
		if !cube.Export {
			continue
		}
		dim := cube.Size()
		y := cube.From[1] - b.Origin[1]
		if flipY {
			y = -cube.From[1] - dim[1] + b.Origin[1]
		}
		snippets = append(snippets, t.Render(tmpl.Data{Vars: map[string]any{
			"bone":    b.Name,
			"uv_x":    I(cube.UVOffset[0]),
			"uv_y":    I(cube.UVOffset[1]),
			"x":       F(b.Origin[0] - cube.To[0]),
			"y":       F(y),
			"z":       F(cube.From[2] - b.Origin[2]),
			"dx":      size(dim[0]),
			"dy":      size(dim[1]),
			"dz":      size(dim[2]),
			"inflate": F(cube.Inflate),
			"mirror":  cube.Mirror,
		}}))
	}
	return strings.Join(snippets, "\n"), nil
}
