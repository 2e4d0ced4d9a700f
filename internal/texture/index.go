package texture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths.
type Index struct {
	entries map[string]string // stem → full path
}

// BuildIndex walks dirs for decodable skins. When two files share a stem the
// extension earlier in Extensions wins.
func BuildIndex(dirs ...string) *Index {
	idx := &Index{entries: make(map[string]string)}
	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			idx.Add(path)
			return nil
		})
	}
	return idx
}

// Add indexes path unless it is not a skin or a better format is already known.
func (idx *Index) Add(path string) {
	ext := strings.ToLower(filepath.Ext(path))
	p := priority(ext)
	if p < 0 {
		return
	}
	s := stem(path)
	if existing, ok := idx.entries[s]; ok && priority(strings.ToLower(filepath.Ext(existing))) <= p {
		return
	}
	idx.entries[s] = path
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
// Names may carry a directory and an extension, with either slash style.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	path, ok := idx.entries[stem(texName)]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}

func stem(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
