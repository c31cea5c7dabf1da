package texture

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// extPriority ranks formats when several files share a stem. Lower wins.
var extPriority = map[string]int{
	".dds":  0,
	".png":  1,
	".tga":  2,
	".webp": 3,
	".bmp":  4,
	".jpg":  5,
	".jpeg": 5,
}

// Index maps texture names found under a directory to filesystem paths.
type Index struct {
	names map[string]string // lowercase base name -> path
	stems map[string]string // lowercase stem -> best path by extPriority
}

// BuildIndex walks dir and its subdirectories for decodable textures.
// A missing or empty dir yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{
		names: make(map[string]string),
		stems: make(map[string]string),
	}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := extPriority[ext]
		if !ok {
			return nil
		}
		base := strings.ToLower(filepath.Base(path))
		if _, exists := idx.names[base]; !exists {
			idx.names[base] = path
		}

		stem := strings.TrimSuffix(base, ext)
		existing, exists := idx.stems[stem]
		if !exists || rank < extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.stems[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the file for a material texture name. An exact file
// name match wins; otherwise any indexed format with the same stem is used.
func (idx *Index) ResolvePath(texName string) (string, bool) {
	if idx == nil || texName == "" {
		return "", false
	}
	// Material paths are usually Windows-style ("Textures\\foo.dds").
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := strings.ToLower(filepath.Base(texName))

	if path, ok := idx.names[base]; ok {
		return path, true
	}
	path, ok := idx.stems[strings.TrimSuffix(base, filepath.Ext(base))]
	return path, ok
}

// Len returns the number of indexed texture files.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.names)
}
