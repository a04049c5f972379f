package video

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

// Scaler represents scaling algorithm
type Scaler draw.Scaler

// List of scaling algorithms
var (
	ScalerNearestNeighbor = Scaler(draw.NearestNeighbor)
	ScalerApproxBiLinear  = Scaler(draw.ApproxBiLinear)
	ScalerBiLinear        = Scaler(draw.BiLinear)
	ScalerCatmullRom      = Scaler(draw.CatmullRom)
)

var (
	errUnsupportedImageType = errors.New("scaling: unsupported image type")
	errScaleSize            = errors.New("scaling: width or height has to be positive")
)

// Scale returns video scaling transform for RGBA frames, so it is meant to
// run after ToRGBA.
// Setting scaler=nil to use default scaler. (ScalerNearestNeighbor)
// A width or height <= 0 keeps the aspect ratio of incoming image.
func Scale(width, height int, scaler Scaler) TransformFunc {
	return func(r Reader) Reader {
		if scaler == nil {
			scaler = ScalerNearestNeighbor
		}

		var dst *image.RGBA
		return ReaderFunc(func() (image.Image, func(), error) {
			if width <= 0 && height <= 0 {
				return nil, func() {}, errScaleSize
			}

			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}
			defer release()

			src, ok := img.(*image.RGBA)
			if !ok {
				return nil, func() {}, errUnsupportedImageType
			}

			rect := scaledRect(src.Bounds(), width, height)
			if dst == nil || dst.Rect != rect {
				dst = image.NewRGBA(rect)
			}
			scaler.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
			return dst, func() {}, nil
		})
	}
}

func scaledRect(src image.Rectangle, width, height int) image.Rectangle {
	switch {
	case height <= 0:
		height = src.Dy() * width / src.Dx()
	case width <= 0:
		width = src.Dx() * height / src.Dy()
	}
	return image.Rect(0, 0, width, height)
}
