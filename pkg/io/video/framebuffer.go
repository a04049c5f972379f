package video

import (
	"image"

	"golang.org/x/image/draw"
)

// FrameBuffer is a buffer that keeps a deep copy of the last stored frame.
type FrameBuffer struct {
	buffer []uint8
	tmp    image.Image
}

// NewFrameBuffer creates a new FrameBuffer instance and initialize internal buffer
// with initialSize
func NewFrameBuffer(initialSize int) *FrameBuffer {
	return &FrameBuffer{
		buffer: make([]uint8, initialSize),
	}
}

func (buff *FrameBuffer) storeInOrder(srcs ...[]uint8) {
	var neededSize int
	for _, src := range srcs {
		neededSize += len(src)
	}

	if cap(buff.buffer) < neededSize {
		buff.buffer = make([]uint8, neededSize)
	}
	buff.buffer = buff.buffer[:neededSize]

	var currentLen int
	for _, src := range srcs {
		copy(buff.buffer[currentLen:], src)
		currentLen += len(src)
	}
}

// Load loads the current owned image
func (buff *FrameBuffer) Load() image.Image {
	return buff.tmp
}

// StoreCopy makes a copy of src and store its copy. StoreCopy reuses the
// memory of the previous copy whenever it is large enough. RGBA and YCbCr
// frames keep their layout; anything else is stored as RGBA.
func (buff *FrameBuffer) StoreCopy(src image.Image) {
	switch src := src.(type) {
	case *image.RGBA:
		clone, ok := buff.tmp.(*image.RGBA)
		if !ok {
			clone = &image.RGBA{}
		}
		*clone = *src

		buff.storeInOrder(src.Pix)
		clone.Pix = buff.buffer[:len(src.Pix):len(src.Pix)]

		buff.tmp = clone
	case *image.YCbCr:
		clone, ok := buff.tmp.(*image.YCbCr)
		if !ok {
			clone = &image.YCbCr{}
		}
		*clone = *src

		var currentLen int
		buff.storeInOrder(src.Y, src.Cb, src.Cr)
		clone.Y = buff.buffer[currentLen : currentLen+len(src.Y) : currentLen+len(src.Y)]
		currentLen += len(src.Y)
		clone.Cb = buff.buffer[currentLen : currentLen+len(src.Cb) : currentLen+len(src.Cb)]
		currentLen += len(src.Cb)
		clone.Cr = buff.buffer[currentLen : currentLen+len(src.Cr) : currentLen+len(src.Cr)]

		buff.tmp = clone
	default:
		converted := image.NewRGBA(src.Bounds())
		draw.Draw(converted, converted.Rect, src, src.Bounds().Min, draw.Src)
		buff.StoreCopy(converted)
	}
}
