package video

import (
	"image"
	"math"
	"time"

	"github.com/camframe/yuvrgba/pkg/frame"
	"github.com/camframe/yuvrgba/pkg/prop"
)

// DetectChanges will detect frame and video property changes. For video property detection,
// since it's time related, interval will be used to determine the sample rate.
// Frame rate changes within fpsDiffTolerance are not reported.
func DetectChanges(interval time.Duration, fpsDiffTolerance float64, onChange func(prop.Video)) TransformFunc {
	return func(r Reader) Reader {
		var currentProp prop.Video
		var lastTaken time.Time
		var frames uint
		return ReaderFunc(func() (image.Image, func(), error) {
			var dirty bool

			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}

			bounds := img.Bounds()
			if currentProp.Width != bounds.Dx() {
				currentProp.Width = bounds.Dx()
				dirty = true
			}

			if currentProp.Height != bounds.Dy() {
				currentProp.Height = bounds.Dy()
				dirty = true
			}

			if format := imageFormat(img); currentProp.FrameFormat != format {
				currentProp.FrameFormat = format
				dirty = true
			}

			now := time.Now()
			elapsed := now.Sub(lastTaken)
			if elapsed >= interval {
				fps := float32(float64(frames) / elapsed.Seconds())
				if math.Abs(float64(currentProp.FrameRate-fps)) > fpsDiffTolerance || lastTaken.IsZero() {
					currentProp.FrameRate = fps
					dirty = true
				}
				frames = 0
				lastTaken = now
			}

			if dirty {
				onChange(currentProp)
			}

			frames++
			return img, release, nil
		})
	}
}

// imageFormat reports the in-memory layout of a decoded frame. Semi-planar
// sources are indistinguishable from I420 once decoded.
func imageFormat(img image.Image) frame.Format {
	switch img := img.(type) {
	case *image.RGBA:
		return frame.FormatRGBA
	case *image.YCbCr:
		if img.SubsampleRatio == image.YCbCrSubsampleRatio420 {
			return frame.FormatI420
		}
	}
	return ""
}
