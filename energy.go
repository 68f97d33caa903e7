package carver

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BorderEnergy is the energy of the pixels lying on the image edges.
const BorderEnergy = 1000.0

// pixelEnergy computes the dual gradient energy of the pixel at (x, y):
// the square root of the summed squared RGB differences between its
// left and right, respectively top and bottom neighbours.
func pixelEnergy(img *image.NRGBA, x, y int) float64 {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	if x == 0 || y == 0 || x == dx-1 || y == dy-1 {
		return BorderEnergy
	}
	gx := colorDistance(img, x-1, y, x+1, y)
	gy := colorDistance(img, x, y-1, x, y+1)

	return math.Sqrt(gx + gy)
}

// colorDistance returns the squared euclidean distance between the RGB components of two pixels.
func colorDistance(img *image.NRGBA, x0, y0, x1, y1 int) float64 {
	i0, i1 := img.PixOffset(x0, y0), img.PixOffset(x1, y1)

	var sum float64
	for c := 0; c < 3; c++ {
		d := float64(img.Pix[i0+c]) - float64(img.Pix[i1+c])
		sum += d * d
	}
	return sum
}

// energyMap computes the energy of every pixel. The matrix rows are the image rows.
func energyMap(img *image.NRGBA) *mat.Dense {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	energy := mat.NewDense(dy, dx, nil)

	for y := 0; y < dy; y++ {
		row := energy.RawRowView(y)
		for x := 0; x < dx; x++ {
			row[x] = pixelEnergy(img, x, y)
		}
	}
	return energy
}
