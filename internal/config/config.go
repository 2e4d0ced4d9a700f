package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"gecko-animutils/internal/codec"
	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/model"
)

// Config holds the paths and export options of the command line tools.
type Config struct {
	// Paths
	InputDir    string   `json:"input_dir" yaml:"input_dir"`
	OutputDir   string   `json:"output_dir" yaml:"output_dir"`
	TextureDirs []string `json:"texture_dirs" yaml:"texture_dirs"`

	// Export
	Version       string            `json:"version" yaml:"version"`               // template set for projects without one
	EditorVersion string            `json:"editor_version" yaml:"editor_version"` // stamped into generated classes
	Animations    *bool             `json:"animations" yaml:"animations"`         // write animation files, default true
	Settings      map[string]string `json:"settings" yaml:"settings"`             // export setting overrides by persisted key

	// Preview
	Preview     bool    `json:"preview" yaml:"preview"`
	PreviewSize int     `json:"preview_size" yaml:"preview_size"`
	Supersample int     `json:"supersample" yaml:"supersample"`
	Yaw         float64 `json:"yaw" yaml:"yaw"`
	Pitch       float64 `json:"pitch" yaml:"pitch"`

	Workers int `json:"workers" yaml:"workers"`
}

// Load reads a YAML (.yaml, .yml) or JSON config file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir  string
	OutputDir string
	Workers   int
	Preview   bool
	Size      int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Preview {
		c.Preview = true
	}
	if flags.Size > 0 {
		c.PreviewSize = flags.Size
	}

	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "export")
	} else if !filepath.IsAbs(c.OutputDir) && flags.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, c.OutputDir)
	}
	for i, d := range c.TextureDirs {
		if !filepath.IsAbs(d) {
			c.TextureDirs[i] = filepath.Join(c.InputDir, d)
		}
	}

	if c.Version == "" {
		c.Version = model.DefaultVersion
	}
	if c.EditorVersion == "" {
		c.EditorVersion = codec.EditorVersion
	}
	if c.Animations == nil {
		on := true
		c.Animations = &on
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Yaw == 0 && c.Pitch == 0 {
		c.Yaw, c.Pitch = mathutil.DefaultYaw, mathutil.DefaultPitch
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// WriteAnimations reports whether animation files are exported.
func (c Config) WriteAnimations() bool {
	return c.Animations == nil || *c.Animations
}
