package batch

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ErikKalkoken/go-set"

	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/codec"
	"gecko-animutils/internal/keyframe"
	"gecko-animutils/internal/model"
	"gecko-animutils/internal/texture"
	"gecko-animutils/internal/viewmatrix"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir     string
	Version       string            // template set for projects without one
	EditorVersion string            // stamped into generated classes
	Overrides     map[string]string // export settings applied over each project's own
	Animations    bool
	Preview       bool
	PreviewSize   int
	Supersample   int
	Camera        viewmatrix.Camera
	Textures      texture.Resolver
	Workers       int
}

// Result holds the outcome of exporting one project.
type Result struct {
	Input string
	Class string

	// Output file names relative to the output dir, empty when not written.
	Java       string
	Animation  string
	Image      string
	Bones      int
	Cubes      int
	Animations int
	Bytes      int64
	Success    bool
	Error      string
}

// ErrOutputClash reports a project whose class name is already taken by an
// earlier input of the same run.
var ErrOutputClash = errors.New("output name already used")

// Run exports all inputs using a worker pool. Duplicate inputs are exported once.
// When two projects compile to the same class name only the earlier input is
// exported. Results are in input order.
func Run(cfg Config, inputs []string) []Result {
	var seen set.Set[string]
	var paths []string
	for _, in := range inputs {
		key := filepath.Clean(in)
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		paths = append(paths, in)
	}

	total := len(paths)
	results := make([]Result, total)
	projects := make([]*model.Project, total)
	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					slog.Info("export progress", "done", p, "total", total, "perSecond", fmt.Sprintf("%.1f", rate))
				}
			}
		}
	}()

	parallel(cfg.Workers, total, func(idx int) {
		results[idx], projects[idx] = load(cfg, paths[idx])
		if projects[idx] == nil {
			processed.Add(1)
		}
	})

	// Output files are named after the class, so the first input claims it.
	// Names are compared case-insensitively for case-folding filesystems.
	owners := make(map[string]string)
	for idx, p := range projects {
		if p == nil {
			continue
		}
		key := strings.ToLower(results[idx].Class)
		if owner, ok := owners[key]; ok {
			results[idx] = failed(results[idx], fmt.Errorf("batch: class %s of %s: %w by %s", results[idx].Class, paths[idx], ErrOutputClash, owner))
			projects[idx] = nil
			processed.Add(1)
			continue
		}
		owners[key] = paths[idx]
	}

	parallel(cfg.Workers, total, func(idx int) {
		if projects[idx] == nil {
			return
		}
		results[idx] = export(cfg, projects[idx], results[idx])
		processed.Add(1)
	})

	close(done)
	return results
}

// parallel calls fn for every index below n on a pool of workers.
func parallel(workers, n int, fn func(idx int)) {
	workers = max(workers, 1)
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				fn(idx)
			}
		}()
	}

	for i := range n {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// Process exports one project file.
func Process(cfg Config, path string) Result {
	r, p := load(cfg, path)
	if p == nil {
		return r
	}
	return export(cfg, p, r)
}

func failed(r Result, err error) Result {
	r.Error = err.Error()
	slog.Warn("export failed", "file", r.Input, "err", err)
	return r
}

// load reads the project at path. The project is nil when loading failed.
func load(cfg Config, path string) (Result, *model.Project) {
	r := Result{Input: path}
	p, err := model.Load(path)
	if err != nil {
		return failed(r, err), nil
	}
	if p.ModdedEntityVersion == "" {
		p.ModdedEntityVersion = cfg.Version
	}
	r.Class = codec.Identifier(p)
	r.Bones = len(p.AllBones())
	r.Cubes = len(p.AllCubes())
	r.Animations = len(p.Animations)
	return r, p
}

func export(cfg Config, p *model.Project, r Result) Result {
	path := r.Input
	s := p.Settings
	s.Apply(cfg.Overrides)
	src, err := codec.Compile(p, s, codec.Options{EditorVersion: cfg.EditorVersion})
	if err != nil {
		return failed(r, fmt.Errorf("batch: compile %s: %w", path, err))
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return failed(r, fmt.Errorf("batch: create %s: %w", cfg.OutputDir, err))
	}

	r.Java = codec.FileName(p)
	if err := r.write(cfg.OutputDir, r.Java, []byte(src)); err != nil {
		return failed(r, err)
	}

	if cfg.Animations && len(p.Animations) > 0 {
		var buf bytes.Buffer
		if err := animation.Encode(&buf, p.Animations, keyframe.Eased{}); err != nil {
			return failed(r, fmt.Errorf("batch: encode animations of %s: %w", path, err))
		}
		r.Animation = r.Class + ".animation.json"
		if err := r.write(cfg.OutputDir, r.Animation, buf.Bytes()); err != nil {
			return failed(r, err)
		}
	}

	if cfg.Preview {
		img := Preview(p, nil, PreviewOptions{
			Size:        cfg.PreviewSize,
			Supersample: cfg.Supersample,
			Camera:      cfg.Camera,
			Texture:     texture.Skin(cfg.Textures, p),
		})
		var buf bytes.Buffer
		if err := EncodeWebP(&buf, img); err != nil {
			return failed(r, fmt.Errorf("batch: preview of %s: %w", path, err))
		}
		r.Image = r.Class + ".webp"
		if err := r.write(cfg.OutputDir, r.Image, buf.Bytes()); err != nil {
			return failed(r, err)
		}
	}

	r.Success = true
	slog.Debug("exported model", "file", path, "class", r.Class, "bones", r.Bones, "cubes", r.Cubes)
	return r
}

func (r *Result) write(dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	r.Bytes += int64(len(data))
	return nil
}
