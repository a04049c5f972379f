package yuv

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is returned when the frame dimensions or strides
	// cannot describe a 4:2:0 frame.
	ErrInvalidGeometry = errors.New("yuv: invalid geometry")
	// ErrBufferTooSmall is returned when an input plane or the output buffer
	// is shorter than the frame geometry requires.
	ErrBufferTooSmall = errors.New("yuv: buffer too small")

	errUnknownOrientation = errors.New("yuv: unknown orientation")
)

// BufferError tells the caller which buffer is too small and by how much.
// It matches ErrBufferTooSmall with errors.Is.
type BufferError struct {
	Plane    string
	Required int
	Actual   int
}

func (e *BufferError) Error() string {
	return fmt.Sprintf("yuv: %s buffer length (%d) less than expected (%d)", e.Plane, e.Actual, e.Required)
}

func (e *BufferError) Unwrap() error {
	return ErrBufferTooSmall
}

func geometryError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidGeometry, fmt.Sprintf(format, args...))
}
