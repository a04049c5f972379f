package frame

import (
	"fmt"
	"image"
)

func decodeI420(frame []byte, width, height int) (image.Image, func(), error) {
	yi := width * height
	cbi := yi + width*height/4
	cri := cbi + width*height/4

	if cri > len(frame) {
		return nil, func() {}, fmt.Errorf("frame length (%d) less than expected (%d)", len(frame), cri)
	}

	return &image.YCbCr{
		Y:              frame[:yi],
		YStride:        width,
		Cb:             frame[yi:cbi],
		Cr:             frame[cbi:cri],
		CStride:        width / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, width, height),
	}, func() {}, nil
}

func decodeNV21(frame []byte, width, height int) (image.Image, func(), error) {
	return decodeSemiPlanar(frame, width, height, true)
}

func decodeNV12(frame []byte, width, height int) (image.Image, func(), error) {
	return decodeSemiPlanar(frame, width, height, false)
}

// decodeSemiPlanar splits the interleaved chroma plane of an NV21 (vFirst)
// or NV12 frame into separate Cb and Cr planes.
func decodeSemiPlanar(frame []byte, width, height int, vFirst bool) (image.Image, func(), error) {
	yi := width * height
	ci := yi + width*height/2

	if ci > len(frame) {
		return nil, func() {}, fmt.Errorf("frame length (%d) less than expected (%d)", len(frame), ci)
	}

	cb := make([]byte, (ci-yi)/2)
	cr := make([]byte, (ci-yi)/2)
	first, second := cb, cr
	if vFirst {
		first, second = cr, cb
	}
	for i, j := yi, 0; i+1 < ci; i, j = i+2, j+1 {
		first[j] = frame[i]
		second[j] = frame[i+1]
	}

	return &image.YCbCr{
		Y:              frame[:yi],
		YStride:        width,
		Cb:             cb,
		Cr:             cr,
		CStride:        width / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, width, height),
	}, func() {}, nil
}
