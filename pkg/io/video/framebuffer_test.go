package video

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomize(arr []uint8) {
	for i := range arr {
		arr[i] = uint8(rand.Uint32())
	}
}

func BenchmarkFrameBufferCopyOptimized(b *testing.B) {
	frameBuffer := NewFrameBuffer(0)
	resolution := image.Rect(0, 0, 1920, 1080)
	src := image.NewYCbCr(resolution, image.YCbCrSubsampleRatio420)

	for i := 0; i < b.N; i++ {
		frameBuffer.StoreCopy(src)
	}
}

func TestFrameBufferStoreCopyAndLoad(t *testing.T) {
	resolution := image.Rect(0, 0, 16, 8)
	testCases := map[string]struct {
		New    func() image.Image
		Update func(image.Image)
	}{
		"RGBA": {
			New: func() image.Image {
				img := image.NewRGBA(resolution)
				randomize(img.Pix)
				return img
			},
			Update: func(src image.Image) {
				randomize(src.(*image.RGBA).Pix)
			},
		},
		"I420": {
			New: func() image.Image {
				img := image.NewYCbCr(resolution, image.YCbCrSubsampleRatio420)
				randomize(img.Y)
				randomize(img.Cb)
				randomize(img.Cr)
				return img
			},
			Update: func(src image.Image) {
				img := src.(*image.YCbCr)
				randomize(img.Y)
				randomize(img.Cb)
				randomize(img.Cr)
			},
		},
	}

	frameBuffer := NewFrameBuffer(0)

	for name, testCase := range testCases {
		testCase := testCase
		// Decide how many times we want to repeat to update frameBuffer
		for i := 0; i < 10; i++ {
			t.Run(name, func(t *testing.T) {
				src := testCase.New()
				frameBuffer.StoreCopy(src)
				assert.Equal(t, src, frameBuffer.Load())

				stored := frameBuffer.Load()
				testCase.Update(src)
				assert.NotEqual(t, src, stored, "stored frame has to be independent from the source")

				frameBuffer.StoreCopy(src)
				assert.Equal(t, src, frameBuffer.Load())
			})
		}
	}
}

func TestFrameBufferConvertsOtherImages(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	src.SetGray(1, 1, color.Gray{Y: 200})

	frameBuffer := NewFrameBuffer(0)
	frameBuffer.StoreCopy(src)

	rgba, ok := frameBuffer.Load().(*image.RGBA)
	require.True(t, ok)
	assert.Equal(t, src.Bounds(), rgba.Bounds())
	assert.Equal(t, color.RGBA{200, 200, 200, 255}, rgba.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgba.RGBAAt(0, 0))
}

func TestFrameBufferReusesMemory(t *testing.T) {
	frameBuffer := NewFrameBuffer(4 * 16 * 16)
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))

	frameBuffer.StoreCopy(src)
	first := frameBuffer.Load().(*image.RGBA)
	frameBuffer.StoreCopy(src)
	second := frameBuffer.Load().(*image.RGBA)

	assert.Same(t, &first.Pix[0], &second.Pix[0])
}
