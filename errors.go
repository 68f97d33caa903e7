package carver

import "errors"

var (
	// ErrNilPicture is returned when the carver is created without a source image.
	ErrNilPicture = errors.New("carver: picture is nil")
	// ErrEmptyPicture is returned when the source image has no pixels.
	ErrEmptyPicture = errors.New("carver: picture must be at least 1x1")
	// ErrOutOfRange indicates a coordinate or a seam entry outside of the current image.
	ErrOutOfRange = errors.New("carver: index out of range")
	// ErrNilSeam is returned when a nil seam is passed for removal.
	ErrNilSeam = errors.New("carver: seam is nil")
	// ErrSeamLength indicates a seam which does not span the whole image.
	ErrSeamLength = errors.New("carver: seam length does not match the image size")
	// ErrDegenerateSize is returned when shrinking a dimension which is already 1px.
	ErrDegenerateSize = errors.New("carver: image cannot be shrunk below 1px")
	// ErrSeamBroken indicates two consecutive seam entries more than one pixel apart.
	ErrSeamBroken = errors.New("carver: seam is not connected")
	// ErrEnlarge is returned by the processor when the target size exceeds the image size.
	ErrEnlarge = errors.New("carver: image enlargement is not supported")
	// ErrInvalidSize is returned by the processor for negative sizes or out of range percentages.
	ErrInvalidSize = errors.New("carver: invalid target size")
	// ErrDestinationConflict is returned when a batch run would write two results to the same file.
	ErrDestinationConflict = errors.New("carver: destination conflict")
	// ErrUnsupportedFormat is returned when the output file extension has no known encoder.
	ErrUnsupportedFormat = errors.New("carver: unsupported image format")
)
