package carver

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// decodeImg decodes the source into an *image.NRGBA with the min-point at (0, 0).
// JPEG images are rotated according to their EXIF orientation tag.
func decodeImg(r io.Reader) (*image.NRGBA, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return imaging.Clone(src), nil
}

// encodeImg encodes an image to a destination of type io.Writer.
// Files are encoded in the format given by their extension, anything else as JPEG.
func encodeImg(w io.Writer, img image.Image) error {
	format := imaging.JPEG

	if f, ok := w.(*os.File); ok {
		if ext := filepath.Ext(f.Name()); ext != "" {
			var err error
			if format, err = imaging.FormatFromExtension(ext); err != nil {
				return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
			}
		}
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(100))
}
