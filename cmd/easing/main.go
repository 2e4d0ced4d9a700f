package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"gecko-animutils/internal/batch"
	"gecko-animutils/internal/easing"
)

func main() {
	names := flag.String("name", "", "Comma separated easings (default: all)")
	argFlag := flag.String("arg", "", "Easing argument (default: per easing)")
	samples := flag.Int("samples", 5, "Samples per easing between 0 and 1")
	plot := flag.String("plot", "", "Also plot the curves to this WebP file")
	size := flag.Int("size", 256, "Plot size in pixels")
	flag.Parse()

	selected := easing.Names
	if *names != "" {
		selected = strings.Split(*names, ",")
	}
	for _, n := range selected {
		if !easing.IsValid(n) {
			fmt.Fprintf(os.Stderr, "Error: unknown easing %q\n", n)
			os.Exit(1)
		}
	}
	if *samples < 2 {
		*samples = 2
	}

	curves := make([]curve, 0, len(selected))
	for _, n := range selected {
		c, err := sample(n, *argFlag, *samples)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		curves = append(curves, c)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "easing\targ")
	for i := range *samples {
		fmt.Fprintf(tw, "\tt=%.2f", float64(i)/float64(*samples-1))
	}
	fmt.Fprintln(tw)
	for _, c := range curves {
		fmt.Fprintf(tw, "%s\t%s", c.name, c.argText())
		for _, v := range c.values {
			fmt.Fprintf(tw, "\t%.4f", v)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()

	if *plot != "" {
		img, err := plotCurves(selected, *argFlag, *size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := batch.WriteWebP(*plot, img); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Plot: %s\n", *plot)
	}
}

type curve struct {
	name   string
	arg    float64
	hasArg bool
	values []float64
}

func (c curve) argText() string {
	if !c.hasArg {
		return "-"
	}
	return fmt.Sprintf("%s=%g", easing.ArgLabel(c.name), c.arg)
}

// resolveArg picks the user argument when it parses for name, else the default.
func resolveArg(name, input string) (float64, bool) {
	if v, ok := easing.ParseArg(name, input); ok {
		return v, true
	}
	return easing.DefaultArg(name)
}

func sample(name, input string, n int) (curve, error) {
	arg, ok := resolveArg(name, input)
	c := curve{name: name, arg: arg, hasArg: ok, values: make([]float64, n)}
	for i := range n {
		v, err := easing.Evaluate(name, float64(i)/float64(n-1), arg)
		if err != nil {
			return curve{}, err
		}
		c.values[i] = v
	}
	return c, nil
}
