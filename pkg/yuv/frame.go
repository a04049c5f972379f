package yuv

// Frame is a 4:2:0 frame stored in three planes. U and V share UVStride and
// are addressed at even offsets within a chroma row, which is how Android
// exposes the interleaved chroma plane of NV21/NV12 buffers.
//
// A frame with an odd height has a last luma row that shares the chroma row
// (Height-1)/2 with the row above it.
type Frame struct {
	Y, U, V  []byte
	Width    int
	Height   int
	YStride  int
	UVStride int
}

// ChromaRows is the number of chroma rows the frame needs.
func (f *Frame) ChromaRows() int {
	return (f.Height + 1) / 2
}

// Validate checks that the frame geometry is sound and that every plane is
// large enough to be sampled at every pixel.
func (f *Frame) Validate() error {
	if f.Width <= 0 || f.Height <= 0 {
		return geometryError("frame size %dx%d", f.Width, f.Height)
	}

	if f.YStride < f.Width {
		return geometryError("luma stride %d shorter than width %d", f.YStride, f.Width)
	}

	// The right most chroma sample of a row sits at (Width-1)&^1.
	if minStride := (f.Width-1)&^1 + 1; f.UVStride < minStride {
		return geometryError("chroma stride %d shorter than %d", f.UVStride, minStride)
	}

	if required := f.Height * f.YStride; len(f.Y) < required {
		return &BufferError{Plane: "Y", Required: required, Actual: len(f.Y)}
	}

	required := f.ChromaRows() * f.UVStride
	if len(f.U) < required {
		return &BufferError{Plane: "U", Required: required, Actual: len(f.U)}
	}
	if len(f.V) < required {
		return &BufferError{Plane: "V", Required: required, Actual: len(f.V)}
	}

	return nil
}
