package video

import (
	"errors"
	"fmt"
	"image"

	"github.com/camframe/yuvrgba/pkg/frame"
	"github.com/camframe/yuvrgba/pkg/yuv"
)

var errRotateRGBA = errors.New("ToRGBA: RGBA frames can only pass through unrotated")

// ToRGBA returns a transform that converts 4:2:0 frames to RGBA, rotated by o.
// The frame is repacked as NV21 and converted with a yuv.Converter built from
// opts. RGBA frames pass through when o is yuv.Identity.
//
// The returned image is reused by the next Read.
func ToRGBA(o yuv.Orientation, opts ...yuv.Option) TransformFunc {
	return func(r Reader) Reader {
		converter := yuv.NewConverter(opts...)
		var nv21 []byte
		var dst image.RGBA

		return ReaderFunc(func() (image.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}

			var planes frame.Planes
			switch src := img.(type) {
			case *image.RGBA:
				if o != yuv.Identity {
					release()
					return nil, func() {}, errRotateRGBA
				}
				return src, release, nil
			case *image.YCbCr:
				planes, err = frame.PlanesFromYCbCr(src)
			default:
				err = fmt.Errorf("ToRGBA: unsupported image type %T", img)
			}
			if err != nil {
				release()
				return nil, func() {}, err
			}

			size, err := frame.Size(frame.FormatNV21, planes.Width, planes.Height)
			if err != nil {
				release()
				return nil, func() {}, err
			}
			if cap(nv21) < size+1 {
				nv21 = frame.NewNV21Buffer(planes.Width, planes.Height)
			}
			nv21 = nv21[:size]

			_, err = frame.PackNV21(nv21, planes)
			release()
			if err != nil {
				return nil, func() {}, err
			}

			f, err := frame.NV21(nv21, planes.Width, planes.Height)
			if err != nil {
				return nil, func() {}, err
			}

			w, h := yuv.OutputSize(o, f.Width, f.Height)
			if cap(dst.Pix) < 4*w*h {
				dst.Pix = make([]uint8, 4*w*h)
			}
			dst.Pix = dst.Pix[:4*w*h]
			dst.Stride = 4 * w
			dst.Rect = image.Rect(0, 0, w, h)

			if err := converter.Convert(dst.Pix, f, o); err != nil {
				return nil, func() {}, err
			}
			return &dst, func() {}, nil
		})
	}
}
