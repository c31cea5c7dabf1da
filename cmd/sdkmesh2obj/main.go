package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sdkmesh2obj/internal/config"
	"sdkmesh2obj/internal/convert"
	"sdkmesh2obj/internal/logx"
	"sdkmesh2obj/internal/preview"
	"sdkmesh2obj/internal/sdkmesh"
	"sdkmesh2obj/internal/texture"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns 0 on a clean pass, 1 on a fatal error and 2 when some subsets
// could not be exported.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sdkmesh2obj", flag.ContinueOnError)
	fs.SetOutput(stderr)

	input := fs.String("i", "", "Input .sdkmesh (or .sdkmesh.lz4) file")
	output := fs.String("o", "", "Output .obj file; the .mtl is written next to it")
	configFile := fs.String("config", "", "Path to config.json file")
	previewPath := fs.String("preview", "", "Also render a WebP preview to this path")
	textureDir := fs.String("textures", "", "Texture directory for the preview (default: next to the input)")
	previewSize := fs.Int("size", 0, "Preview size in pixels (default: 256)")
	yaw := fs.Float64("yaw", 35, "Preview camera yaw in degrees")
	pitch := fs.Float64("pitch", 20, "Preview camera pitch in degrees")
	reportPath := fs.String("report", "", "Write a JSON run report to this path")
	verbose := fs.Bool("v", false, "Verbose diagnostics")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *input == "" || *output == "" {
		fmt.Fprintln(stderr, "Missing command: sdkmesh2obj -i INPUT.sdkmesh -o OUTPUT.obj")
		fs.PrintDefaults()
		return 1
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return 1
		}
	}
	cfg.Resolve(config.Flags{
		InputDir:    filepath.Dir(*input),
		TextureDir:  *textureDir,
		PreviewSize: *previewSize,
		Verbose:     *verbose,
	})

	log := logx.New(stderr, logx.ParseLevel(cfg.LogLevel), cfg.ColorLog)

	out := *output
	if cfg.OutputDir != "" && !filepath.IsAbs(out) {
		out = filepath.Join(cfg.OutputDir, out)
	}

	c, res, err := convert.Run(convert.Options{
		Input:  *input,
		Output: out,
		Status: stdout,
		Log:    log,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *reportPath != "" {
		if err := convert.WriteReport(*reportPath, res); err != nil {
			fmt.Fprintf(stderr, "Error writing report: %v\n", err)
			return 1
		}
	}

	if *previewPath != "" {
		if err := writePreview(c, *previewPath, cfg, float32(*yaw), float32(*pitch), log); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Preview: %s\n", *previewPath)
	}

	if res.Errors > 0 {
		fmt.Fprintf(stderr, "Error: %d subset(s) not exported\n", res.Errors)
		return 2
	}
	return 0
}

func writePreview(c *sdkmesh.Container, path string, cfg config.Config, yaw, pitch float32, log *logx.Logger) error {
	index := texture.BuildIndex(cfg.TextureDir)
	log.Debugf("textures: %d indexed in %s", index.Len(), cfg.TextureDir)

	img := preview.Render(c, texture.NewCache(index, log), preview.Options{
		Size:        cfg.PreviewSize,
		Supersample: cfg.Supersample,
		Yaw:         yaw,
		Pitch:       pitch,
	}, log)
	return preview.WriteWebP(path, img, cfg.ExtendedWebP)
}
