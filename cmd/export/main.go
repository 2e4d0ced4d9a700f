package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"gecko-animutils/internal/batch"
	"gecko-animutils/internal/config"
	"gecko-animutils/internal/logging"
	"gecko-animutils/internal/texture"
	"gecko-animutils/internal/viewmatrix"
	"gecko-animutils/internal/watch"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a config file (.yaml, .yml or .json)")
	inputDir := flag.String("input", "", "Directory with .bbmodel projects (default: current directory)")
	outputDir := flag.String("output", "", "Output directory (default: <input>/export)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	preview := flag.Bool("preview", false, "Also render a WebP preview of each model")
	size := flag.Int("size", 0, "Preview size in pixels (default: 256)")
	watchFlag := flag.Bool("watch", false, "Keep running and re-export projects when they change")
	var logFlags logging.Flags
	logFlags.Register(flag.CommandLine)
	flag.Parse()

	closer, err := logging.Setup(logFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Workers:   *workers,
		Preview:   *preview,
		Size:      *size,
	})

	inputs, err := collectInputs(cfg.InputDir, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing projects: %v\n", err)
		os.Exit(1)
	}

	texIndex := texture.BuildIndex(append([]string{cfg.InputDir}, cfg.TextureDirs...)...)
	bcfg := batch.Config{
		OutputDir:     cfg.OutputDir,
		Version:       cfg.Version,
		EditorVersion: cfg.EditorVersion,
		Overrides:     cfg.Settings,
		Animations:    cfg.WriteAnimations(),
		Preview:       cfg.Preview,
		PreviewSize:   cfg.PreviewSize,
		Supersample:   cfg.Supersample,
		Camera:        viewmatrix.Camera{Yaw: cfg.Yaw, Pitch: cfg.Pitch},
		Textures:      texture.NewCache(texIndex),
		Workers:       cfg.Workers,
	}

	fmt.Printf("GeckoLib model export\n")
	fmt.Printf("Projects: %d, Workers: %d, Textures: %d indexed\n", len(inputs), cfg.Workers, texIndex.Len())
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	failed := 0
	if len(inputs) > 0 {
		failed = exportAll(bcfg, inputs)
	} else {
		fmt.Println("No projects to export.")
	}

	if *watchFlag {
		if err := watchLoop(bcfg, cfg.InputDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", cfg.InputDir, err)
			os.Exit(1)
		}
		return
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// collectInputs returns the explicit args, or every project in dir when there are none.
func collectInputs(dir string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	return filepath.Glob(filepath.Join(dir, "*.bbmodel"))
}

func exportAll(cfg batch.Config, inputs []string) int {
	start := time.Now()
	results := batch.Run(cfg, inputs)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs, %s\n", time.Since(start).Seconds(), batch.Summary(results))

	var failed []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		for _, r := range failed[:min(len(failed), 20)] {
			fmt.Printf("  %s: %s\n", r.Input, r.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: create output dir: %v\n", err)
	} else if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}
	return len(failed)
}

func watchLoop(cfg batch.Config, dir string) error {
	w, err := watch.New([]string{".bbmodel"}, dir)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			r := batch.Process(cfg, path)
			if r.Success {
				files := slices.DeleteFunc([]string{r.Java, r.Animation, r.Image}, func(s string) bool { return s == "" })
				fmt.Printf("Re-exported %s: %s\n", filepath.Base(path), strings.Join(files, ", "))
			} else {
				fmt.Printf("Failed %s: %s\n", filepath.Base(path), r.Error)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch", "err", err)
		}
	}
}
