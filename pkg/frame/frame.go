package frame

import "image"

// Decoder turns a raw frame into an image. The returned func releases the
// image back to the decoder and must be called once the image is not used.
type Decoder interface {
	Decode(frame []byte, width, height int) (image.Image, func(), error)
}

// decoderFunc is a proxy type for Decoder
type decoderFunc func(frame []byte, width, height int) (image.Image, func(), error)

func (f decoderFunc) Decode(frame []byte, width, height int) (image.Image, func(), error) {
	return f(frame, width, height)
}
