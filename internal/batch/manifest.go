package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
)

// ManifestEntry represents one exported project in the output manifest.
type ManifestEntry struct {
	Input      string `json:"input"`
	Class      string `json:"class"`
	Java       string `json:"java"`
	Animation  string `json:"animation,omitempty"`
	Image      string `json:"image,omitempty"`
	Bones      int    `json:"bones"`
	Cubes      int    `json:"cubes"`
	Animations int    `json:"animations"`
}

// WriteManifest writes the successful results to path as JSON.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Input:      r.Input,
			Class:      r.Class,
			Java:       r.Java,
			Animation:  r.Animation,
			Image:      r.Image,
			Bones:      r.Bones,
			Cubes:      r.Cubes,
			Animations: r.Animations,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}

// Summary describes a finished run in one line, e.g. "exported 3/4 projects, 9 files, 12 kB".
func Summary(results []Result) string {
	var ok, files int
	var size int64
	for _, r := range results {
		if !r.Success {
			continue
		}
		ok++
		for _, f := range []string{r.Java, r.Animation, r.Image} {
			if f != "" {
				files++
			}
		}
		size += r.Bytes
	}
	return fmt.Sprintf("exported %s/%s projects, %s files, %s",
		humanize.Comma(int64(ok)), humanize.Comma(int64(len(results))), humanize.Comma(int64(files)), humanize.Bytes(uint64(size)))
}
