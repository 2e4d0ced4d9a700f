package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"gecko-animutils/internal/codec"
	"gecko-animutils/internal/keyframe"
	"gecko-animutils/internal/model"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <project.bbmodel | Model.java>\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)
	p, err := load(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	info, _ := os.Stat(path)
	fmt.Printf("%s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	describe(os.Stdout, p)
}

func load(path string) (*model.Project, error) {
	if strings.EqualFold(filepath.Ext(path), ".java") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src, err := codec.ReadSource(f)
		if err != nil {
			return nil, err
		}
		p := model.New("")
		p.GeometryName = ""
		r := codec.Parse(src, p)
		fmt.Printf("Parsed class %s: %d statements matched, %d skipped\n", r.ClassName, r.Matched, r.Skipped)
		return p, nil
	}
	return model.Load(path)
}

func describe(w io.Writer, p *model.Project) {
	fmt.Fprintf(w, "Geometry: %s, Version: %s, Texture: %dx%d\n", p.GeometryName, p.ModdedEntityVersion, p.TextureWidth, p.TextureHeight)
	fmt.Fprintf(w, "Bones: %d, Cubes: %d, Animations: %d\n", len(p.AllBones()), len(p.AllCubes()), len(p.Animations))
	for _, c := range p.LooseCubes {
		printCube(w, c, "  ")
	}
	for _, b := range p.Roots {
		printBone(w, b, "  ")
	}
	for _, a := range p.Animations {
		n := 0
		for _, an := range a.Animators() {
			n += len(an.Keyframes)
		}
		loop := ""
		if a.Loop {
			loop = ", loop"
		}
		fmt.Fprintf(w, "  anim %s: %.2fs%s, %d bones, %d keyframes\n", a.Name, a.Duration(), loop, len(a.Animators()), n)
		for _, an := range a.Animators() {
			for _, ch := range keyframe.Channels {
				if kfs := an.Channel(ch); len(kfs) > 0 {
					fmt.Fprintf(w, "    %s.%s: %d keys\n", an.Bone, ch, len(kfs))
				}
			}
		}
	}
}

func printBone(w io.Writer, b *model.Bone, indent string) {
	flags := ""
	if !b.Export {
		flags += " [not exported]"
	}
	if b.Mirror {
		flags += " [mirror]"
	}
	fmt.Fprintf(w, "%sbone %s pivot=%v", indent, b.Name, b.Origin)
	if b.HasRotation() {
		fmt.Fprintf(w, " rot=%v", b.Rotation)
	}
	fmt.Fprintln(w, flags)
	for _, c := range b.Cubes {
		printCube(w, c, indent+"  ")
	}
	for _, child := range b.Bones {
		printBone(w, child, indent+"  ")
	}
}

func printCube(w io.Writer, c *model.Cube, indent string) {
	fmt.Fprintf(w, "%scube %s from=%v size=%v uv=%v", indent, c.Name, c.From, c.Size(), c.UVOffset)
	if c.Inflate != 0 {
		fmt.Fprintf(w, " inflate=%g", c.Inflate)
	}
	if c.Mirror {
		fmt.Fprint(w, " [mirror]")
	}
	fmt.Fprintln(w)
}
