package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sdkmesh2obj/internal/batch"
	"sdkmesh2obj/internal/config"
	"sdkmesh2obj/internal/logx"
	"sdkmesh2obj/internal/preview"
	"sdkmesh2obj/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory to scan for .sdkmesh files")
	outputDir := flag.String("output", "", "Output directory (default: <input>/obj)")
	textureDir := flag.String("textures", "", "Texture directory for previews (default: auto-detect)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	withPreview := flag.Bool("preview", false, "Render a WebP preview next to each OBJ")
	size := flag.Int("size", 0, "Preview size in pixels (default: 256)")
	testN := flag.Int("test", 0, "Convert only first N files for testing")
	verbose := flag.Bool("v", false, "Verbose diagnostics")

	flag.Parse()

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required.")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:    *inputDir,
		OutputDir:   *outputDir,
		TextureDir:  *textureDir,
		PreviewSize: *size,
		Workers:     *workers,
		Verbose:     *verbose,
	})
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(*inputDir, "obj")
	}

	log := logx.New(os.Stderr, logx.ParseLevel(cfg.LogLevel), cfg.ColorLog)

	jobs, err := batch.Find(*inputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", *inputDir, err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(jobs) {
		jobs = jobs[:*testN]
	}

	if len(jobs) == 0 {
		fmt.Println("No meshes to convert.")
		os.Exit(0)
	}

	batchCfg := batch.Config{
		InputDir:     *inputDir,
		OutputDir:    cfg.OutputDir,
		Preview:      *withPreview,
		ExtendedWebP: cfg.ExtendedWebP,
		Workers:      cfg.Workers,
		Progress:     os.Stdout,
		Log:          log,
	}

	if *withPreview {
		texIndex := texture.BuildIndex(cfg.TextureDir)
		batchCfg.TexResolver = texture.NewCache(texIndex, log)
		opts := preview.DefaultOptions()
		opts.Size = cfg.PreviewSize
		opts.Supersample = cfg.Supersample
		batchCfg.PreviewOpts = opts
		fmt.Printf("Textures: %d indexed\n", texIndex.Len())
	}

	fmt.Println("SDKMesh → OBJ batch converter")
	fmt.Printf("Meshes: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batchCfg, jobs)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := batch.Summarize(results)
	fmt.Printf("Converted: %d/%d\n", success, len(jobs))

	if failed > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		shown := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			if shown == 20 {
				fmt.Printf("  ... and %d more\n", failed-shown)
				break
			}
			fmt.Printf("  %s: %s\n", r.Rel, r.Error)
			shown++
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
