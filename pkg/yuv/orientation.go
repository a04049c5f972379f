package yuv

import (
	"fmt"
	"strconv"
	"strings"
)

// Orientation selects the rotation applied while converting a frame.
// Rotations are clockwise.
type Orientation int

const (
	Identity Orientation = iota
	Rotate90
	Rotate180
	Rotate270
)

// ParseOrientation maps an angle in degrees to an Orientation. Angles are
// normalized modulo 360, so -90 and 270 are the same orientation.
func ParseOrientation(degrees int) (Orientation, error) {
	switch ((degrees % 360) + 360) % 360 {
	case 0:
		return Identity, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	}
	return Identity, fmt.Errorf("yuv: rotation must be a multiple of 90 degrees, got %d", degrees)
}

// Degrees returns the clockwise rotation angle.
func (o Orientation) Degrees() int {
	return int(o) * 90
}

// SwapsAxes reports whether the output frame has width and height exchanged.
func (o Orientation) SwapsAxes() bool {
	return o == Rotate90 || o == Rotate270
}

func (o Orientation) valid() bool {
	return o >= Identity && o <= Rotate270
}

func (o Orientation) String() string {
	return strconv.Itoa(o.Degrees())
}

// Set implements pflag.Value.
func (o *Orientation) Set(s string) error {
	degrees, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "deg"))
	if err != nil {
		return fmt.Errorf("yuv: invalid rotation %q: %w", s, err)
	}

	parsed, err := ParseOrientation(degrees)
	if err != nil {
		return err
	}

	*o = parsed
	return nil
}

// Type implements pflag.Value.
func (o *Orientation) Type() string {
	return "rotation"
}

// OutputSize returns the dimensions of a width x height frame after it has
// been converted with o.
func OutputSize(o Orientation, width, height int) (int, int) {
	if o.SwapsAxes() {
		return height, width
	}
	return width, height
}

// SourceCoord returns the source pixel sampled for output pixel (x, y) when a
// width x height frame is converted with o.
func SourceCoord(o Orientation, x, y, width, height int) (sx, sy int) {
	w, h := OutputSize(o, width, height)
	return sourceCoord(o, x, y, w, h)
}

// sourceCoord works on the output grid: w and h are the dimensions the kernel
// is dispatched over, which for Rotate90 and Rotate270 are the source
// dimensions swapped.
func sourceCoord(o Orientation, x, y, w, h int) (int, int) {
	switch o {
	case Rotate90:
		return y, w - x - 1
	case Rotate180:
		return w - 1 - x, h - 1 - y
	case Rotate270:
		return h - 1 - y, x
	default:
		return x, y
	}
}
