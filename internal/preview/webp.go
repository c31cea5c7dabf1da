package preview

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// WriteWebP encodes img as lossless WebP at path, creating parent directories.
// extended wraps the bitstream in a VP8X container.
func WriteWebP(path string, img image.Image, extended bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	if err := nativewebp.Encode(f, img, &nativewebp.Options{UseExtendedFormat: extended}); err != nil {
		f.Close()
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	return f.Close()
}
