package prop

import (
	"math"

	"github.com/camframe/yuvrgba/pkg/frame"
)

// IntConstraint scores an integer property. The score is 0 for a perfect
// match and grows with the distance; ok is false when a is unacceptable.
type IntConstraint interface {
	Compare(a int) (score float64, ok bool)
}

// FloatConstraint is IntConstraint for float properties.
type FloatConstraint interface {
	Compare(a float32) (score float64, ok bool)
}

// FrameFormatConstraint scores a frame format.
type FrameFormatConstraint interface {
	Compare(a frame.Format) (score float64, ok bool)
}

// Int prefers values close to it but accepts any value.
type Int int

func (i Int) Compare(a int) (float64, bool) {
	return relativeDistance(float64(a), float64(i)), true
}

// Float prefers values close to it but accepts any value.
type Float float32

func (f Float) Compare(a float32) (float64, bool) {
	return relativeDistance(float64(a), float64(f)), true
}

// FrameFormatExact only accepts its own format.
type FrameFormatExact frame.Format

func (f FrameFormatExact) Compare(a frame.Format) (float64, bool) {
	if frame.Format(f) == a {
		return 0, true
	}
	return 1, false
}

// relativeDistance is |a-ideal| scaled into [0, 1].
func relativeDistance(a, ideal float64) float64 {
	if a == ideal {
		return 0
	}
	return math.Abs(a-ideal) / math.Max(math.Abs(a), math.Abs(ideal))
}
