package carver

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/esimov/carver/utils"
)

// Processor options
type Processor struct {
	// NewWidth and NewHeight are the target dimensions. Zero keeps the dimension unchanged.
	// With Percentage set they are the percentage of the width and height to remove.
	NewWidth   int
	NewHeight  int
	Percentage bool
	// Square shrinks the image to a square based on its shortest edge
	// (or on NewWidth and NewHeight, when smaller). It cannot be combined with Percentage.
	Square bool
	// Scale first scales the image down proportionally and carves only the remaining pixels.
	Scale  bool
	Logger *log.Logger
}

// Resize shrinks the image to the requested size by removing the lowest energy seams one by one.
// When both dimensions are reduced the vertical and horizontal seams are removed alternately,
// so the two directions are merged together seamlessly.
func (p *Processor) Resize(ctx context.Context, img image.Image) (*image.NRGBA, error) {
	if isNil(img) {
		return nil, ErrNilPicture
	}
	src := imaging.Clone(img)
	width, height := src.Bounds().Dx(), src.Bounds().Dy()

	newWidth, newHeight, err := p.targetSize(width, height)
	if err != nil {
		return nil, err
	}
	if p.Scale && newWidth < width && newHeight < height {
		src = p.calculateFitness(src, newWidth, newHeight)
	}

	c, err := NewCarver(src)
	if err != nil {
		return nil, err
	}
	logger := p.logger()
	logger.Debug("resizing image",
		"from", fmt.Sprintf("%dx%d", width, height),
		"carve", fmt.Sprintf("%dx%d", c.Width(), c.Height()),
		"to", fmt.Sprintf("%dx%d", newWidth, newHeight),
	)

	var seams int
	for c.Width() > newWidth || c.Height() > newHeight {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if c.Width() > newWidth {
			if err := c.RemoveVerticalSeam(c.FindVerticalSeam()); err != nil {
				return nil, err
			}
			seams++
		}
		if c.Height() > newHeight {
			if err := c.RemoveHorizontalSeam(c.FindHorizontalSeam()); err != nil {
				return nil, err
			}
			seams++
		}
	}
	logger.Debug("seam carving done", "seams", seams, "size", fmt.Sprintf("%dx%d", c.Width(), c.Height()))

	return c.Picture(), nil
}

// Process decodes the source image, resizes it and encodes the result into w.
// We are using the io package, since we can provide different input and output types,
// as long as they implement the io.Reader and io.Writer interface.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) error {
	src, err := decodeImg(r)
	if err != nil {
		return err
	}
	res, err := p.Resize(ctx, src)
	if err != nil {
		return err
	}
	return encodeImg(w, res)
}

// targetSize computes the final image size out of the processor options.
func (p *Processor) targetSize(width, height int) (int, int, error) {
	newWidth, newHeight := p.NewWidth, p.NewHeight
	if newWidth < 0 || newHeight < 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, newWidth, newHeight)
	}
	if p.Percentage && p.Square {
		return 0, 0, fmt.Errorf("%w: percentage and square cannot be combined", ErrInvalidSize)
	}

	switch {
	case p.Percentage:
		if newWidth >= 100 || newHeight >= 100 {
			return 0, 0, fmt.Errorf("%w: percentage must be below 100", ErrInvalidSize)
		}
		newWidth = utils.Max(width-int(float64(width)*float64(p.NewWidth)/100), 1)
		newHeight = utils.Max(height-int(float64(height)*float64(p.NewHeight)/100), 1)
	case p.Square:
		side := utils.Min(width, height)
		if newWidth > 0 {
			side = utils.Min(side, newWidth)
		}
		if newHeight > 0 {
			side = utils.Min(side, newHeight)
		}
		newWidth, newHeight = side, side
	}

	if newWidth == 0 {
		newWidth = width
	}
	if newHeight == 0 {
		newHeight = height
	}
	if newWidth > width || newHeight > height {
		return 0, 0, fmt.Errorf("%w: %dx%d is larger than %dx%d", ErrEnlarge, newWidth, newHeight, width, height)
	}
	return newWidth, newHeight, nil
}

// calculateFitness scales the image down by the smaller of the two scale factors,
// so the result still covers the target size and only the difference needs carving.
// Example: input: 5000x2500, target: 1920x1080, scaled: 2160x1080.
func (p *Processor) calculateFitness(img *image.NRGBA, newWidth, newHeight int) *image.NRGBA {
	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	ratio := math.Max(float64(newWidth)/w, float64(newHeight)/h)

	sw := utils.Max(int(math.Round(w*ratio)), newWidth)
	sh := utils.Max(int(math.Round(h*ratio)), newHeight)

	return imaging.Resize(img, sw, sh, imaging.Lanczos)
}

func (p *Processor) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}
