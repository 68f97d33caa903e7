package carver

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_EncodeByExtension(t *testing.T) {
	testCases := []struct {
		ext    string
		format string
	}{
		{".png", "png"},
		{".jpg", "jpeg"},
		{".JPEG", "jpeg"},
		{".gif", "gif"},
		{".bmp", "bmp"},
		{".tiff", "tiff"},
	}
	img := randomPicture(8, 6, 1)

	for _, tc := range testCases {
		t.Run(tc.ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+tc.ext)
			f, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, encodeImg(f, img))
			require.NoError(t, f.Close())

			f, err = os.Open(path)
			require.NoError(t, err)
			defer f.Close()

			cfg, format, err := image.DecodeConfig(f)
			require.NoError(t, err)
			assert.Equal(t, tc.format, format)
			assert.Equal(t, 8, cfg.Width)
			assert.Equal(t, 6, cfg.Height)
		})
	}
}

func TestImage_EncodeUnsupportedExtension(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.xyz"))
	require.NoError(t, err)
	defer f.Close()

	err = encodeImg(f, randomPicture(4, 4, 1))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImage_Decode(t *testing.T) {
	src := randomPicture(7, 5, 2)

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, src, imaging.PNG))

	img, err := decodeImg(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, img.Pix)
	assert.Equal(t, image.Rect(0, 0, 7, 5), img.Bounds())

	_, err = decodeImg(bytes.NewBufferString("garbage"))
	assert.Error(t, err)
}
