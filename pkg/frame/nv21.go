package frame

import (
	"fmt"
	"image"

	"github.com/camframe/yuvrgba/pkg/io"
	"github.com/camframe/yuvrgba/pkg/yuv"
)

// NewNV21Buffer allocates a buffer for a width x height NV21 or NV12 frame.
// The buffer has one spare byte of capacity so NV21 and NV12 can view it
// without copying.
func NewNV21Buffer(width, height int) []byte {
	size := frameSizeNV21(width, height)
	return make([]byte, size, size+1)
}

// NV21 returns a frame viewing buf, which holds a full luma plane followed by
// interleaved V and U samples. Width and height must be even.
//
// The U view starts one byte into the chroma plane and ends one byte past it,
// so buf is copied once when it has no spare capacity.
func NV21(buf []byte, width, height int) (yuv.Frame, error) {
	return semiPlanar(buf, width, height, true)
}

// NV12 is like NV21 with the U samples first.
func NV12(buf []byte, width, height int) (yuv.Frame, error) {
	return semiPlanar(buf, width, height, false)
}

func semiPlanar(buf []byte, width, height int, vFirst bool) (yuv.Frame, error) {
	if err := checkEven(width, height); err != nil {
		return yuv.Frame{}, err
	}

	size := frameSizeNV21(width, height)
	if len(buf) < size {
		return yuv.Frame{}, &yuv.BufferError{Plane: "NV21", Required: size, Actual: len(buf)}
	}

	if cap(buf) < size+1 {
		padded := make([]byte, size, size+1)
		copy(padded, buf)
		buf = padded
	}

	yi := width * height
	chroma := size - yi
	first := buf[yi : yi+chroma]
	second := buf[yi+1 : yi+1+chroma]

	f := yuv.Frame{
		Y:        buf[:yi],
		Width:    width,
		Height:   height,
		YStride:  width,
		UVStride: width,
	}
	if vFirst {
		f.V, f.U = first, second
	} else {
		f.U, f.V = first, second
	}
	return f, nil
}

// Planes is a 4:2:0 frame whose planes have their own row strides and whose
// chroma samples are UVPixelStride bytes apart: 1 for fully planar chroma, 2
// when U and V are views into one interleaved plane.
type Planes struct {
	Y, U, V       []byte
	Width, Height int
	YStride       int
	UVStride      int
	UVPixelStride int
}

// PlanesFromYCbCr describes a 4:2:0 image as Planes.
func PlanesFromYCbCr(img *image.YCbCr) (Planes, error) {
	if img.SubsampleRatio != image.YCbCrSubsampleRatio420 {
		return Planes{}, fmt.Errorf("unsupported subsample ratio: %s", img.SubsampleRatio)
	}

	r := img.Rect
	yi := img.YOffset(r.Min.X, r.Min.Y)
	ci := img.COffset(r.Min.X, r.Min.Y)
	return Planes{
		Y:             img.Y[yi:],
		U:             img.Cb[ci:],
		V:             img.Cr[ci:],
		Width:         r.Dx(),
		Height:        r.Dy(),
		YStride:       img.YStride,
		UVStride:      img.CStride,
		UVPixelStride: 1,
	}, nil
}

// PackNV21 copies p into dst as an NV21 frame and returns the number of
// bytes written. Width and height must be even.
func PackNV21(dst []byte, p Planes) (int, error) {
	if err := checkEven(p.Width, p.Height); err != nil {
		return 0, err
	}
	if p.YStride < p.Width || p.UVPixelStride <= 0 || p.UVStride < (p.Width/2-1)*p.UVPixelStride+1 {
		return 0, fmt.Errorf("%w: strides y=%d uv=%d uv pixel=%d for width %d",
			yuv.ErrInvalidGeometry, p.YStride, p.UVStride, p.UVPixelStride, p.Width)
	}

	size := frameSizeNV21(p.Width, p.Height)
	if len(dst) < size {
		return 0, &io.InsufficientBufferError{RequiredSize: size}
	}

	uvWidth, uvHeight := p.Width/2, p.Height/2
	if required := (p.Height-1)*p.YStride + p.Width; len(p.Y) < required {
		return 0, &yuv.BufferError{Plane: "Y", Required: required, Actual: len(p.Y)}
	}
	required := (uvHeight-1)*p.UVStride + (uvWidth-1)*p.UVPixelStride + 1
	if len(p.U) < required {
		return 0, &yuv.BufferError{Plane: "U", Required: required, Actual: len(p.U)}
	}
	if len(p.V) < required {
		return 0, &yuv.BufferError{Plane: "V", Required: required, Actual: len(p.V)}
	}

	for y := 0; y < p.Height; y++ {
		row := p.Y[y*p.YStride : y*p.YStride+p.Width]
		if _, err := io.Copy(dst[y*p.Width:(y+1)*p.Width], row); err != nil {
			return 0, err
		}
	}

	i := p.Width * p.Height
	for y := 0; y < uvHeight; y++ {
		offset := y * p.UVStride
		for x := 0; x < uvWidth; x++ {
			j := offset + x*p.UVPixelStride
			dst[i] = p.V[j]
			dst[i+1] = p.U[j]
			i += 2
		}
	}

	return size, nil
}

func checkEven(width, height int) error {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return fmt.Errorf("%w: semi-planar frames need even dimensions, got %dx%d",
			yuv.ErrInvalidGeometry, width, height)
	}
	return nil
}
