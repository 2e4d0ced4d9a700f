package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/codec"
	"gecko-animutils/internal/keyframe"
	"gecko-animutils/internal/logging"
	"gecko-animutils/internal/model"
)

func main() {
	output := flag.String("o", "", "Output .bbmodel path (default: next to the input)")
	anims := flag.String("animations", "", "GeckoLib animation file to attach")
	width := flag.Int("width", 0, "Texture width when the class does not set one")
	height := flag.Int("height", 0, "Texture height when the class does not set one")
	var logFlags logging.Flags
	logFlags.Register(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <Model.java>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	closer, err := logging.Setup(logFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	in := flag.Arg(0)
	src, err := readSource(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", in, err)
		os.Exit(1)
	}

	name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	p := model.New(name)
	p.GeometryName = ""
	if *width > 0 {
		p.TextureWidth = *width
	}
	if *height > 0 {
		p.TextureHeight = *height
	}
	report := codec.Parse(src, p)
	if report.Bones == 0 {
		fmt.Fprintf(os.Stderr, "Error: no bones found in %s\n", in)
		os.Exit(1)
	}

	if *anims != "" {
		f, err := os.Open(*anims)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening animations: %v\n", err)
			os.Exit(1)
		}
		p.Animations, err = animation.Decode(f, keyframe.Eased{})
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading animations: %v\n", err)
			os.Exit(1)
		}
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + ".bbmodel"
	}
	if err := model.Save(out, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving %s: %v\n", out, err)
		os.Exit(1)
	}

	fmt.Printf("Class: %s\n", report.ClassName)
	fmt.Printf("Bones: %d, Cubes: %d, Texture: %dx%d, Animations: %d\n",
		report.Bones, report.Cubes, p.TextureWidth, p.TextureHeight, len(p.Animations))
	fmt.Printf("Statements: %d matched, %d skipped\n", report.Matched, report.Skipped)
	fmt.Printf("Saved: %s\n", out)
}

func readSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return codec.ReadSource(f)
}
