package frame

import (
	"bytes"
	"image"
	"image/jpeg"
)

// decodeMJPEG decodes a single JPEG picture of a motion JPEG stream. width and
// height are taken from the picture itself.
func decodeMJPEG(frame []byte, width, height int) (image.Image, func(), error) {
	img, err := jpeg.Decode(bytes.NewReader(frame))
	return img, func() {}, err
}
