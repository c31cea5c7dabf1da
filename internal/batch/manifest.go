package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one converted file in the output manifest.
type ManifestEntry struct {
	Input    string `json:"input"`
	OBJ      string `json:"obj,omitempty"`
	MTL      string `json:"mtl,omitempty"`
	Preview  string `json:"preview,omitempty"`
	Meshes   int    `json:"meshes"`
	Subsets  int    `json:"subsets"`
	Vertices int    `json:"vertices"`
	Faces    int    `json:"faces"`
	Errors   int    `json:"errors"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json with output paths relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	rel := func(p string) string {
		if p == "" {
			return ""
		}
		if r, err := filepath.Rel(dir, p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}

	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Input:    filepath.ToSlash(r.Rel),
			Preview:  rel(r.Preview),
			Meshes:   r.Summary.Meshes,
			Subsets:  r.Summary.Subsets,
			Vertices: r.Summary.Stats.Vertices,
			Faces:    r.Summary.Stats.Faces,
			Errors:   r.Summary.Errors,
			Success:  r.Success,
			Error:    r.Error,
		}
		if r.Summary.Output != "" {
			e.OBJ = rel(r.OBJ)
			e.MTL = rel(r.MTL)
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Summarize counts successes and failures.
func Summarize(results []Result) (ok, failed int) {
	for _, r := range results {
		if r.Success {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}
