package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/keyframe"
	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/settings"
)

// FormatID is the model format of animated entity projects.
const FormatID = "animated_entity_model"

const bbFormatVersion = "3.6"

type bbFile struct {
	Meta                bbMeta          `json:"meta"`
	Name                string          `json:"name"`
	GeometryName        string          `json:"geometry_name"`
	ModdedEntityVersion string          `json:"modded_entity_version,omitempty"`
	Resolution          bbResolution    `json:"resolution"`
	Elements            []bbElement     `json:"elements"`
	Outliner            []bbNode        `json:"outliner"`
	Textures            []bbTexture     `json:"textures,omitempty"`
	Animations          []bbAnimation   `json:"animations,omitempty"`
	GeckoSettings       json.RawMessage `json:"geckoSettings,omitempty"`
}

type bbMeta struct {
	FormatVersion string `json:"format_version"`
	ModelFormat   string `json:"model_format"`
	BoxUV         bool   `json:"box_uv"`
}

type bbResolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type bbElement struct {
	Name     string    `json:"name"`
	From     [3]number `json:"from"`
	To       [3]number `json:"to"`
	UVOffset [2]number `json:"uv_offset"`
	Inflate  number    `json:"inflate,omitempty"`
	Mirror   bool      `json:"mirror_uv,omitempty"`
	Export   *bool     `json:"export,omitempty"`
	UUID     string    `json:"uuid"`
}

type bbGroup struct {
	Name     string    `json:"name"`
	Origin   [3]number `json:"origin"`
	Rotation [3]number `json:"rotation,omitempty"`
	Mirror   bool      `json:"mirror_uv,omitempty"`
	Export   *bool     `json:"export,omitempty"`
	UUID     string    `json:"uuid"`
	Children []bbNode  `json:"children"`
}

// bbNode is an outliner entry: either a cube UUID or a nested group.
type bbNode struct {
	CubeUUID string
	Group    *bbGroup
}

func (n bbNode) MarshalJSON() ([]byte, error) {
	if n.Group != nil {
		return json.Marshal(n.Group)
	}
	return json.Marshal(n.CubeUUID)
}

func (n *bbNode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &n.CubeUUID)
	}
	n.Group = &bbGroup{}
	return json.Unmarshal(b, n.Group)
}

type bbTexture struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type bbAnimation struct {
	Name      string                `json:"name"`
	Loop      string                `json:"loop"`
	Length    number                `json:"length"`
	Animators map[string]bbAnimator `json:"animators,omitempty"`
}

type bbAnimator struct {
	Name      string       `json:"name"`
	Type      string       `json:"type"`
	Keyframes []bbKeyframe `json:"keyframes"`
}

type bbKeyframe struct {
	Channel    keyframe.Channel `json:"channel"`
	Time       number           `json:"time"`
	DataPoints []bbDataPoint    `json:"data_points"`
	Easing     string           `json:"easing,omitempty"`
	EasingArgs []float64        `json:"easingArgs,omitempty"`
}

type bbDataPoint struct {
	X number `json:"x"`
	Y number `json:"y"`
	Z number `json:"z"`
}

// number is a float that also reads from numeric strings, as the editor writes keyframe values.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("number %q: %w", s, err)
	}
	*n = number(f)
	return nil
}

func vec(a [3]number) mathutil.Vec3 {
	return mathutil.Vec3{float64(a[0]), float64(a[1]), float64(a[2])}
}

func nums(v mathutil.Vec3) [3]number {
	return [3]number{number(v[0]), number(v[1]), number(v[2])}
}

func exported(b *bool) bool {
	return b == nil || *b
}

// Load reads a .bbmodel file.
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}
	defer f.Close()
	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("model: load %s: %w", path, err)
	}
	return p, nil
}

// Decode reads a project in .bbmodel JSON form. Export settings are restored from
// geckoSettings and fall back to defaults when absent or malformed.
func Decode(r io.Reader) (*Project, error) {
	var f bbFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("model: decode: %w", err)
	}
	p := &Project{
		Name:                f.Name,
		GeometryName:        f.GeometryName,
		ModdedEntityVersion: f.ModdedEntityVersion,
		TextureWidth:        f.Resolution.Width,
		TextureHeight:       f.Resolution.Height,
		Settings:            settings.Load(f.GeckoSettings),
	}
	if p.ModdedEntityVersion == "" {
		p.ModdedEntityVersion = DefaultVersion
	}
	for _, t := range f.Textures {
		p.Textures = append(p.Textures, Texture(t))
	}

	cubes := make(map[string]*Cube, len(f.Elements))
	ordered := make([]*Cube, 0, len(f.Elements))
	for _, e := range f.Elements {
		c := &Cube{
			UUID:     e.UUID,
			Name:     e.Name,
			From:     vec(e.From),
			To:       vec(e.To),
			UVOffset: [2]float64{float64(e.UVOffset[0]), float64(e.UVOffset[1])},
			Inflate:  float64(e.Inflate),
			Mirror:   e.Mirror,
			Export:   exported(e.Export),
		}
		if c.UUID == "" {
			c.UUID = newUUID()
		}
		cubes[c.UUID] = c
		ordered = append(ordered, c)
	}

	var build func(g *bbGroup, parent *Bone) *Bone
	build = func(g *bbGroup, parent *Bone) *Bone {
		b := &Bone{
			UUID:     g.UUID,
			Name:     g.Name,
			Origin:   vec(g.Origin),
			Rotation: vec(g.Rotation),
			Mirror:   g.Mirror,
			Export:   exported(g.Export),
			Parent:   parent,
		}
		if b.UUID == "" {
			b.UUID = newUUID()
		}
		for _, n := range g.Children {
			if n.Group != nil {
				b.Bones = append(b.Bones, build(n.Group, b))
			} else if c, ok := cubes[n.CubeUUID]; ok {
				c.Parent = b
				b.Cubes = append(b.Cubes, c)
			}
		}
		return b
	}
	for _, n := range f.Outliner {
		if n.Group != nil {
			p.Roots = append(p.Roots, build(n.Group, nil))
		} else if c, ok := cubes[n.CubeUUID]; ok {
			p.LooseCubes = append(p.LooseCubes, c)
		}
	}
	// elements missing from the outliner sit at the root
	for _, c := range ordered {
		if c.Parent == nil && !slices.Contains(p.LooseCubes, c) {
			p.LooseCubes = append(p.LooseCubes, c)
		}
	}

	ser := keyframe.Eased{}
	for _, ba := range f.Animations {
		a := animation.New(ba.Name, float64(ba.Length), ba.Loop == "loop")
		for _, key := range slices.Sorted(maps.Keys(ba.Animators)) {
			an := ba.Animators[key]
			if an.Type != "" && an.Type != "bone" {
				continue
			}
			dst := a.Animator(an.Name)
			for _, bk := range an.Keyframes {
				s := keyframe.Snapshot{
					Channel:    bk.Channel,
					Time:       float64(bk.Time),
					Easing:     bk.Easing,
					EasingArgs: bk.EasingArgs,
				}
				if len(bk.DataPoints) > 0 {
					d := bk.DataPoints[0]
					s.Vector = [3]float64{float64(d.X), float64(d.Y), float64(d.Z)}
				}
				k := &keyframe.Keyframe{}
				ser.Extend(k, s.Update())
				dst.Add(k)
			}
		}
		p.Animations = append(p.Animations, a)
	}
	return p, nil
}

// Save writes p as a .bbmodel file.
func Save(path string, p *Project) error {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("model: save %s: %w", path, err)
	}
	return nil
}

// Encode writes p in .bbmodel JSON form with its export settings attached under geckoSettings.
func Encode(w io.Writer, p *Project) error {
	gecko, err := p.Settings.Attach()
	if err != nil {
		return fmt.Errorf("model: encode: %w", err)
	}
	f := bbFile{
		Meta:                bbMeta{FormatVersion: bbFormatVersion, ModelFormat: FormatID, BoxUV: true},
		Name:                p.Name,
		GeometryName:        p.GeometryName,
		ModdedEntityVersion: p.ModdedEntityVersion,
		Resolution:          bbResolution{Width: p.TextureWidth, Height: p.TextureHeight},
		Elements:            []bbElement{},
		Outliner:            []bbNode{},
		GeckoSettings:       gecko,
	}
	for _, t := range p.Textures {
		f.Textures = append(f.Textures, bbTexture(t))
	}
	for _, c := range p.AllCubes() {
		f.Elements = append(f.Elements, element(c))
	}

	var group func(b *Bone) *bbGroup
	group = func(b *Bone) *bbGroup {
		exp := b.Export
		g := &bbGroup{
			Name:     b.Name,
			Origin:   nums(b.Origin),
			Rotation: nums(b.Rotation),
			Mirror:   b.Mirror,
			Export:   &exp,
			UUID:     b.UUID,
			Children: []bbNode{},
		}
		for _, c := range b.Cubes {
			g.Children = append(g.Children, bbNode{CubeUUID: c.UUID})
		}
		for _, c := range b.Bones {
			g.Children = append(g.Children, bbNode{Group: group(c)})
		}
		return g
	}
	for _, c := range p.LooseCubes {
		f.Outliner = append(f.Outliner, bbNode{CubeUUID: c.UUID})
	}
	for _, r := range p.Roots {
		f.Outliner = append(f.Outliner, bbNode{Group: group(r)})
	}

	ser := keyframe.Eased{}
	for _, a := range p.Animations {
		ba := bbAnimation{Name: a.Name, Loop: "once", Length: number(a.Length), Animators: map[string]bbAnimator{}}
		if a.Loop {
			ba.Loop = "loop"
		}
		for _, an := range a.Animators() {
			key := an.Bone
			if b, ok := p.Bone(an.Bone); ok {
				key = b.UUID
			}
			dst := bbAnimator{Name: an.Bone, Type: "bone"}
			for _, k := range an.Keyframes {
				s := ser.UndoCopy(k)
				dst.Keyframes = append(dst.Keyframes, bbKeyframe{
					Channel:    s.Channel,
					Time:       number(s.Time),
					DataPoints: []bbDataPoint{{X: number(s.Vector[0]), Y: number(s.Vector[1]), Z: number(s.Vector[2])}},
					Easing:     s.Easing,
					EasingArgs: s.EasingArgs,
				})
			}
			ba.Animators[key] = dst
		}
		f.Animations = append(f.Animations, ba)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("model: encode: %w", err)
	}
	return nil
}

func element(c *Cube) bbElement {
	exp := c.Export
	return bbElement{
		Name:     c.Name,
		From:     nums(c.From),
		To:       nums(c.To),
		UVOffset: [2]number{number(c.UVOffset[0]), number(c.UVOffset[1])},
		Inflate:  number(c.Inflate),
		Mirror:   c.Mirror,
		Export:   &exp,
		UUID:     c.UUID,
	}
}
