package carver

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertFreshEnergy checks the cached energies against a carver built from scratch.
func assertFreshEnergy(t *testing.T, c *Carver) {
	t.Helper()
	fresh, err := NewCarver(c.Picture())
	require.NoError(t, err)

	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			got, err := c.Energy(x, y)
			require.NoError(t, err)
			want, _ := fresh.Energy(x, y)
			require.Equal(t, want, got, "energy at (%d,%d) of %dx%d", x, y, c.Width(), c.Height())
		}
	}
}

func TestRemove_InvalidSeams(t *testing.T) {
	testCases := []struct {
		name     string
		img      *image.NRGBA
		vertical bool
		seam     Seam
		want     error
	}{
		{"vertical nil", randomPicture(4, 3, 1), true, nil, ErrNilSeam},
		{"vertical short", randomPicture(4, 3, 1), true, Seam{0, 0}, ErrSeamLength},
		{"vertical long", randomPicture(4, 3, 1), true, Seam{0, 0, 0, 0}, ErrSeamLength},
		{"vertical first out of range", randomPicture(4, 3, 1), true, Seam{4, 3, 3}, ErrOutOfRange},
		{"vertical negative", randomPicture(4, 3, 1), true, Seam{0, -1, 0}, ErrOutOfRange},
		{"vertical broken", randomPicture(4, 3, 1), true, Seam{0, 2, 2}, ErrSeamBroken},
		{"vertical degenerate", randomPicture(1, 3, 1), true, Seam{0, 0, 0}, ErrDegenerateSize},
		{"horizontal nil", randomPicture(4, 3, 1), false, nil, ErrNilSeam},
		{"horizontal short", randomPicture(4, 3, 1), false, Seam{0, 0, 0}, ErrSeamLength},
		{"horizontal out of range", randomPicture(4, 3, 1), false, Seam{0, 1, 2, 3}, ErrOutOfRange},
		{"horizontal broken", randomPicture(4, 3, 1), false, Seam{2, 0, 0, 0}, ErrSeamBroken},
		{"horizontal degenerate", randomPicture(4, 1, 1), false, Seam{0, 0, 0, 0}, ErrDegenerateSize},
		{"degenerate before range", randomPicture(1, 3, 1), true, Seam{5, 5, 5}, ErrDegenerateSize},
		{"length before degenerate", randomPicture(1, 3, 1), true, Seam{0}, ErrSeamLength},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCarver(tc.img)
			require.NoError(t, err)
			// Move to the opposite orientation to make sure a failed call does not flip it.
			if tc.vertical {
				c.FindHorizontalSeam()
			} else {
				c.FindVerticalSeam()
			}
			transposed := c.Transposed()
			pic := c.Picture()
			w, h := c.Width(), c.Height()

			if tc.vertical {
				err = c.RemoveVerticalSeam(tc.seam)
			} else {
				err = c.RemoveHorizontalSeam(tc.seam)
			}
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, w, c.Width())
			assert.Equal(t, h, c.Height())
			assert.Equal(t, pic, c.Picture())
			assert.Equal(t, transposed, c.Transposed())
		})
	}
}

func TestRemove_VerticalSeam(t *testing.T) {
	src := randomPicture(6, 5, 11)
	c, err := NewCarver(src)
	require.NoError(t, err)

	seam := Seam{0, 1, 2, 3, 3}
	require.NoError(t, c.RemoveVerticalSeam(seam))
	assert.Equal(t, 5, c.Width())
	assert.Equal(t, 5, c.Height())

	res := c.Picture()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			sx := x
			if x >= seam[y] {
				sx++
			}
			assert.Equal(t, src.NRGBAAt(sx, y), res.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
	assertFreshEnergy(t, c)
}

func TestRemove_HorizontalSeam(t *testing.T) {
	src := randomPicture(5, 6, 12)
	c, err := NewCarver(src)
	require.NoError(t, err)

	seam := Seam{5, 4, 4, 3, 2}
	require.NoError(t, c.RemoveHorizontalSeam(seam))
	assert.Equal(t, 5, c.Width())
	assert.Equal(t, 5, c.Height())

	res := c.Picture()
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			sy := y
			if y >= seam[x] {
				sy++
			}
			assert.Equal(t, src.NRGBAAt(x, sy), res.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
	assertFreshEnergy(t, c)
}

func TestRemove_EdgeSeams(t *testing.T) {
	testCases := []struct {
		name string
		seam Seam
	}{
		{"first column", Seam{0, 0, 0, 0, 0, 0}},
		{"last column", Seam{6, 6, 6, 6, 6, 6}},
		{"zigzag", Seam{3, 2, 3, 4, 5, 6}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCarver(randomPicture(7, 6, 5))
			require.NoError(t, err)
			require.NoError(t, c.RemoveVerticalSeam(tc.seam))
			assertFreshEnergy(t, c)
		})
	}
}

func TestRemove_MixedSequence(t *testing.T) {
	c, err := NewCarver(randomPicture(12, 10, 21))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.RemoveVerticalSeam(c.FindVerticalSeam()))
		assertFreshEnergy(t, c)
		require.NoError(t, c.RemoveHorizontalSeam(c.FindHorizontalSeam()))
		assertFreshEnergy(t, c)
	}
	assert.Equal(t, 7, c.Width())
	assert.Equal(t, 5, c.Height())
}

func TestRemove_ShrinkToSinglePixel(t *testing.T) {
	c, err := NewCarver(randomPicture(5, 4, 8))
	require.NoError(t, err)

	for c.Width() > 1 {
		require.NoError(t, c.RemoveVerticalSeam(c.FindVerticalSeam()))
	}
	for c.Height() > 1 {
		require.NoError(t, c.RemoveHorizontalSeam(c.FindHorizontalSeam()))
	}
	assert.Equal(t, image.Rect(0, 0, 1, 1), c.Picture().Bounds())

	e, err := c.Energy(0, 0)
	require.NoError(t, err)
	assert.Equal(t, BorderEnergy, e)

	assert.ErrorIs(t, c.RemoveVerticalSeam(c.FindVerticalSeam()), ErrDegenerateSize)
	assert.ErrorIs(t, c.RemoveHorizontalSeam(c.FindHorizontalSeam()), ErrDegenerateSize)
}
