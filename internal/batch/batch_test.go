package batch_test

import (
	"bytes"
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"gecko-animutils/internal/animation"
	"gecko-animutils/internal/batch"
	"gecko-animutils/internal/keyframe"
	"gecko-animutils/internal/mathutil"
	"gecko-animutils/internal/model"
	"gecko-animutils/internal/settings"
	"gecko-animutils/internal/viewmatrix"
)

func saveProject(t *testing.T, dir, name string) string {
	t.Helper()
	p := model.New(name)
	body := model.NewBone("body", mathutil.Vec3{0, 0, 0})
	p.AddRoot(body)
	body.AddCube(model.NewCube("torso", mathutil.Vec3{-4, 0, -2}, mathutil.Vec3{4, 12, 2}))
	a := animation.New("animation."+name+".walk", 1, true)
	a.Animator("body").Add(
		&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 0},
		&keyframe.Keyframe{Channel: keyframe.Rotation, Time: 1, Value: mathutil.Vec3{0, 90, 0}},
	)
	p.Animations = append(p.Animations, a)
	path := filepath.Join(dir, name+".bbmodel")
	require.NoError(t, model.Save(path, p))
	return path
}

func baseConfig(out string) batch.Config {
	return batch.Config{
		OutputDir:   out,
		Version:     model.DefaultVersion,
		Animations:  true,
		PreviewSize: 32,
		Supersample: 2,
		Camera:      viewmatrix.DefaultCamera(),
		Workers:     2,
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	zombie := saveProject(t, dir, "zombie")
	pig := saveProject(t, dir, "pig")
	cfg := baseConfig(out)
	cfg.Preview = true
	cfg.Overrides = map[string]string{"javaPackage": "com.example.zoo"}

	results := batch.Run(cfg, []string{zombie, pig, zombie, filepath.Join(dir, "missing.bbmodel")})
	require.Len(t, results, 3)

	t.Run("should export each project once in input order", func(t *testing.T) {
		assert.Equal(t, zombie, results[0].Input)
		assert.Equal(t, pig, results[1].Input)
		assert.True(t, results[0].Success, results[0].Error)
		assert.True(t, results[1].Success, results[1].Error)
		assert.False(t, results[2].Success)
		assert.NotEmpty(t, results[2].Error)
	})
	t.Run("should write the java class with overridden settings", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(out, "zombie.java"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "\npackage com.example.zoo;\n")
		assert.Contains(t, string(data), "public class zombie extends AnimatedEntityModel")
	})
	t.Run("should write the animation file", func(t *testing.T) {
		f, err := os.Open(filepath.Join(out, results[0].Animation))
		require.NoError(t, err)
		defer f.Close()
		anims, err := animation.Decode(f, keyframe.Eased{})
		require.NoError(t, err)
		require.Len(t, anims, 1)
		assert.Equal(t, "animation.zombie.walk", anims[0].Name)
	})
	t.Run("should write a decodable preview", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(out, "zombie.webp"))
		require.NoError(t, err)
		img, err := webp.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	})
	t.Run("should count written bytes", func(t *testing.T) {
		assert.Positive(t, results[0].Bytes)
		assert.Equal(t, 3, results[0].Bones+results[0].Cubes+results[0].Animations)
	})
	t.Run("should write a manifest of successful exports", func(t *testing.T) {
		p := filepath.Join(out, "manifest.json")
		require.NoError(t, batch.WriteManifest(p, results))
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		var entries []batch.ManifestEntry
		require.NoError(t, json.Unmarshal(data, &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "pig.java", entries[1].Java)
		assert.Equal(t, "pig.webp", entries[1].Image)
	})
	t.Run("should summarize", func(t *testing.T) {
		assert.Contains(t, batch.Summary(results), "exported 2/3 projects, 6 files, ")
	})
}

func TestProcessUnknownSDK(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig(filepath.Join(dir, "out"))
	cfg.Overrides = map[string]string{"modSDK": "Quilt"}
	r := batch.Process(cfg, saveProject(t, dir, "cow"))
	assert.False(t, r.Success)
	assert.Contains(t, r.Error, settings.ErrUnknownSDK.Error())
}

func TestProcessWithoutAnimations(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig(filepath.Join(dir, "out"))
	cfg.Animations = false
	r := batch.Process(cfg, saveProject(t, dir, "cow"))
	require.True(t, r.Success, r.Error)
	assert.Empty(t, r.Animation)
	assert.Empty(t, r.Image)
	assert.NoFileExists(t, filepath.Join(dir, "out", "cow.animation.json"))
}

func TestRunClassNameClash(t *testing.T) {
	dir := t.TempDir()
	first := saveProject(t, dir, "big cat")
	second := saveProject(t, dir, "big-cat")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "pack"), 0o755))
	third := saveProject(t, filepath.Join(dir, "pack"), "Big_Cat")
	cfg := baseConfig(filepath.Join(dir, "out"))

	results := batch.Run(cfg, []string{first, second, third})
	require.Len(t, results, 3)
	assert.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, "big_cat.java", results[0].Java)
	for _, r := range results[1:] {
		assert.False(t, r.Success)
		assert.Empty(t, r.Java)
		assert.Contains(t, r.Error, batch.ErrOutputClash.Error())
		assert.Contains(t, r.Error, first)
	}
	assert.Contains(t, batch.Summary(results), "exported 1/3 projects, 2 files, ")
}
