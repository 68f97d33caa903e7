package carver

import (
	"fmt"
	"image"
	"reflect"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/mat"
)

// Carver holds the image being resized together with the energy of each of its pixels.
//
// The seam search and the seam removal are written once, for vertical seams.
// Horizontal seams are handled by storing the image and its energy map transposed,
// which is an internal detail: every exported method works with the natural
// image coordinates. A Carver is not safe for concurrent use.
type Carver struct {
	img    *image.NRGBA
	energy *mat.Dense

	// transposed is set when both img and energy are stored with the axes swapped.
	transposed bool
}

// NewCarver creates a new carver over a copy of the source image.
func NewCarver(src image.Image) (*Carver, error) {
	if isNil(src) {
		return nil, ErrNilPicture
	}
	b := src.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEmptyPicture, b.Dx(), b.Dy())
	}
	img := imaging.Clone(src)

	return &Carver{
		img:    img,
		energy: energyMap(img),
	}, nil
}

// Picture returns a copy of the current image.
func (c *Carver) Picture() *image.NRGBA {
	if c.transposed {
		return imaging.Transpose(c.img)
	}
	return imaging.Clone(c.img)
}

// Width returns the current image width.
func (c *Carver) Width() int {
	if c.transposed {
		return c.img.Bounds().Dy()
	}
	return c.img.Bounds().Dx()
}

// Height returns the current image height.
func (c *Carver) Height() int {
	if c.transposed {
		return c.img.Bounds().Dx()
	}
	return c.img.Bounds().Dy()
}

// Energy returns the energy of the pixel at column x and row y.
// Border pixels have a fixed BorderEnergy.
func (c *Carver) Energy(x, y int) (float64, error) {
	width, height := c.Width(), c.Height()
	if x < 0 || x >= width || y < 0 || y >= height {
		return 0, fmt.Errorf("%w: pixel (%d,%d) outside of %dx%d", ErrOutOfRange, x, y, width, height)
	}
	if c.transposed {
		x, y = y, x
	}
	return c.energy.At(y, x), nil
}

// Transposed reports whether the image is currently stored with its axes swapped.
func (c *Carver) Transposed() bool {
	return c.transposed
}

// orient switches the internal storage to the requested orientation.
// The image and the energy map are swapped in the same step so they
// always agree on which axis runs down.
func (c *Carver) orient(transposed bool) {
	if c.transposed == transposed {
		return
	}
	var energy mat.Dense
	energy.CloneFrom(c.energy.T())

	c.img = imaging.Transpose(c.img)
	c.energy = &energy
	c.transposed = transposed
}

// isNil reports whether the image is nil, including typed nil pointers.
func isNil(img image.Image) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
