package carver

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"
)

// RemoveVerticalSeam removes one pixel from every row, narrowing the image by one column.
// The seam is validated first; on error the image is left untouched.
func (c *Carver) RemoveVerticalSeam(seam Seam) error {
	if err := checkRemoval(seam, c.Height(), c.Width()); err != nil {
		return err
	}
	c.orient(false)
	c.removeSeam(seam)

	return nil
}

// RemoveHorizontalSeam removes one pixel from every column, shortening the image by one row.
// The seam is validated first; on error the image is left untouched.
func (c *Carver) RemoveHorizontalSeam(seam Seam) error {
	if err := checkRemoval(seam, c.Width(), c.Height()); err != nil {
		return err
	}
	c.orient(true)
	c.removeSeam(seam)

	return nil
}

// checkRemoval validates a seam of the given length crossing a dimension of the given size.
func checkRemoval(seam Seam, length, size int) error {
	if seam == nil {
		return ErrNilSeam
	}
	if len(seam) != length {
		return fmt.Errorf("%w: got %d, want %d", ErrSeamLength, len(seam), length)
	}
	if size <= 1 {
		return fmt.Errorf("%w: size is %d", ErrDegenerateSize, size)
	}
	return seam.Valid(length, size)
}

// removeSeam deletes the seam pixel of every stored row, shifting the remaining
// pixels to the left, and updates the energy map accordingly.
func (c *Carver) removeSeam(seam Seam) {
	width, height := c.img.Bounds().Dx(), c.img.Bounds().Dy()
	img := image.NewNRGBA(image.Rect(0, 0, width-1, height))
	energy := mat.NewDense(height, width-1, nil)

	for y, sx := range seam {
		src := c.img.Pix[y*c.img.Stride : y*c.img.Stride+width*4]
		dst := img.Pix[y*img.Stride : y*img.Stride+(width-1)*4]
		copy(dst[:sx*4], src[:sx*4])
		copy(dst[sx*4:], src[(sx+1)*4:])

		old, row := c.energy.RawRowView(y), energy.RawRowView(y)
		copy(row[:sx], old[:sx])
		copy(row[sx:], old[sx+1:])
	}

	// The two pixels which were next to the seam got a new neighbour.
	// Their vertical neighbours may have moved as well, which is covered by the
	// same two columns since consecutive seam entries are at most one pixel apart.
	for y, sx := range seam {
		for x := sx - 1; x <= sx; x++ {
			if x >= 0 && x < width-1 {
				energy.Set(y, x, pixelEnergy(img, x, y))
			}
		}
	}
	c.img, c.energy = img, energy
}
