// Package model is the bone and cube hierarchy of an animated entity project.
package model

import (
	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/settings"
)

// Bone is a named pivot in the rig. Origin and Rotation are absolute in model space;
// Rotation is in Euler degrees applied Z, then Y, then X.
type Bone struct {
	UUID     string
	Name     string
	Origin   mathutil.Vec3
	Rotation mathutil.Vec3
	Mirror   bool
	Export   bool
	Parent   *Bone // nil for root bones
	Bones    []*Bone
	Cubes    []*Cube
}

// NewBone returns an exportable bone.
func NewBone(name string, origin mathutil.Vec3) *Bone {
	return &Bone{UUID: newUUID(), Name: name, Origin: origin, Export: true}
}

// AddBone reparents b under bone.
func (bone *Bone) AddBone(b *Bone) {
	b.detach()
	b.Parent = bone
	bone.Bones = append(bone.Bones, b)
}

// AddCube reparents c under bone.
func (bone *Bone) AddCube(c *Cube) {
	c.detach()
	c.Parent = bone
	bone.Cubes = append(bone.Cubes, c)
}

func (bone *Bone) detach() {
	if p := bone.Parent; p != nil {
		p.Bones = remove(p.Bones, bone)
		bone.Parent = nil
	}
}

// HasRotation reports whether any rotation axis is non-zero.
func (bone *Bone) HasRotation() bool {
	return !bone.Rotation.IsZero()
}

// Walk visits bone and its descendants in pre-order.
func (bone *Bone) Walk(fn func(*Bone)) {
	fn(bone)
	for _, c := range bone.Bones {
		c.Walk(fn)
	}
}

// Cube is an axis-aligned box owned by a bone. From and To are absolute in model space.
type Cube struct {
	UUID     string
	Name     string
	From     mathutil.Vec3
	To       mathutil.Vec3
	UVOffset [2]float64
	Inflate  float64
	Mirror   bool
	Export   bool
	Parent   *Bone // nil for cubes at the project root
}

// NewCube returns an exportable cube.
func NewCube(name string, from, to mathutil.Vec3) *Cube {
	return &Cube{UUID: newUUID(), Name: name, From: from, To: to, Export: true}
}

// Size returns To - From per axis.
func (c *Cube) Size() mathutil.Vec3 {
	return c.To.Sub(c.From)
}

// Translate moves the cube by d.
func (c *Cube) Translate(d mathutil.Vec3) {
	c.From = c.From.Add(d)
	c.To = c.To.Add(d)
}

func (c *Cube) detach() {
	if p := c.Parent; p != nil {
		p.Cubes = remove(p.Cubes, c)
		c.Parent = nil
	}
}

// Project is an animated entity model with its animations and export settings.
type Project struct {
	Name                string
	GeometryName        string
	ModdedEntityVersion string // template set key
	TextureWidth        int
	TextureHeight       int
	Textures            []Texture
	Roots               []*Bone
	LooseCubes          []*Cube // cubes without a bone
	Animations          []*animation.Animation
	Settings            settings.ExportSettings
}

// Texture references an image used by the project.
type Texture struct {
	Name string
	Path string
}

// DefaultVersion is the template set used by new projects.
const DefaultVersion = "1.15"

// New returns an empty project with a 64x32 texture.
func New(name string) *Project {
	return &Project{
		Name:                name,
		GeometryName:        name,
		ModdedEntityVersion: DefaultVersion,
		TextureWidth:        64,
		TextureHeight:       32,
		Settings:            settings.Default(),
	}
}

// AddRoot adds b at the top level of the hierarchy.
func (p *Project) AddRoot(b *Bone) {
	b.detach()
	p.Roots = remove(p.Roots, b)
	p.Roots = append(p.Roots, b)
}

// AddLooseCube adds c at the top level of the hierarchy.
func (p *Project) AddLooseCube(c *Cube) {
	c.detach()
	p.LooseCubes = append(p.LooseCubes, c)
}

// Attach moves child under parent, removing it from the roots if needed.
func (p *Project) Attach(child, parent *Bone) {
	p.Roots = remove(p.Roots, child)
	parent.AddBone(child)
}

// AllBones returns every bone in pre-order.
func (p *Project) AllBones() []*Bone {
	var out []*Bone
	for _, r := range p.Roots {
		r.Walk(func(b *Bone) { out = append(out, b) })
	}
	return out
}

// AllCubes returns the loose cubes followed by every bone's cubes in pre-order.
func (p *Project) AllCubes() []*Cube {
	out := append([]*Cube(nil), p.LooseCubes...)
	for _, b := range p.AllBones() {
		out = append(out, b.Cubes...)
	}
	return out
}

// Bone returns the first bone called name.
func (p *Project) Bone(name string) (*Bone, bool) {
	for _, b := range p.AllBones() {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Animation returns the animation called name.
func (p *Project) Animation(name string) (*animation.Animation, bool) {
	for _, a := range p.Animations {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

func remove[T comparable](s []T, v T) []T {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
