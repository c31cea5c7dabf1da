package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Config holds output paths, texture lookup and preview settings.
type Config struct {
	// Paths
	OutputDir  string `json:"output_dir"`
	TextureDir string `json:"texture_dir"`

	// Preview settings
	PreviewSize  int  `json:"preview_size"`
	Supersample  int  `json:"supersample"`
	ExtendedWebP bool `json:"webp_extended"` // VP8X container instead of plain VP8L

	Workers  int    `json:"workers"`
	LogLevel string `json:"log_level"`
	ColorLog bool   `json:"color_log"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir    string // directory of the input mesh; relative paths resolve against it
	OutputDir   string
	TextureDir  string
	PreviewSize int
	Workers     int
	Verbose     bool
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Verbose {
		c.LogLevel = "debug"
	}

	if c.TextureDir == "" {
		c.TextureDir = detectTextureDir(flags.InputDir)
	} else if !filepath.IsAbs(c.TextureDir) && flags.InputDir != "" {
		c.TextureDir = filepath.Join(flags.InputDir, c.TextureDir)
	}

	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Supersample > 4 {
		c.Supersample = 4
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = "info"
	}
}

// detectTextureDir prefers a textures/ folder next to the mesh, then the
// mesh's own directory.
func detectTextureDir(inputDir string) string {
	if inputDir == "" {
		return ""
	}
	for _, name := range []string{"textures", "Textures", "Media"} {
		dir := filepath.Join(inputDir, name)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
	}
	return inputDir
}
