// Package videotest provides dummy video driver for testing.
package videotest

import (
	"context"
	"fmt"
	"image"
	"io"
	"math/rand"
	"time"

	"github.com/camframe/yuvrgba/internal/logging"
	"github.com/camframe/yuvrgba/pkg/driver"
	"github.com/camframe/yuvrgba/pkg/frame"
	"github.com/camframe/yuvrgba/pkg/io/video"
	"github.com/camframe/yuvrgba/pkg/prop"
)

// Label is the label the dummy driver registers with.
const Label = "VideoTest"

var logger = logging.NewLogger("videotest")

func init() {
	if err := driver.GetManager().Register(
		NewVideoTest(),
		driver.Info{Label: Label, DeviceType: driver.Camera, Name: "color bars"},
	); err != nil {
		panic(err)
	}
}

// Dummy renders SMPTE like color bars with a noise patch in one of the raw
// 4:2:0 layouts a camera delivers.
type Dummy struct {
	closed <-chan struct{}
	cancel func()
	tick   *time.Ticker
}

// NewVideoTest creates an unregistered dummy driver.
func NewVideoTest() *Dummy {
	return &Dummy{}
}

func (d *Dummy) Open() error {
	ctx, cancel := context.WithCancel(context.Background())
	d.closed = ctx.Done()
	d.cancel = cancel
	return nil
}

func (d *Dummy) Close() error {
	if d.cancel != nil {
		d.cancel()
	}
	if d.tick != nil {
		d.tick.Stop()
	}
	return nil
}

// VideoRecord starts producing frames with the size, rate and format of p.
// Zero values default to 640x480 NV21 at 30 frames per second.
func (d *Dummy) VideoRecord(p prop.Video) (video.Reader, error) {
	defaults := prop.Video{Width: 640, Height: 480, FrameRate: 30, FrameFormat: frame.FormatNV21}
	defaults.Merge(p)
	p = defaults

	if p.Width%2 != 0 || p.Height%2 != 0 || p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("videotest: frame size has to be even and positive, got %dx%d", p.Width, p.Height)
	}
	interval := time.Duration(float64(time.Second) / float64(p.FrameRate))
	if p.FrameRate < 0 || interval <= 0 {
		return nil, fmt.Errorf("videotest: unsupported frame rate %.2f", p.FrameRate)
	}

	decoder, err := frame.NewDecoder(p.FrameFormat)
	if err != nil {
		return nil, err
	}
	size, err := frame.Size(p.FrameFormat, p.Width, p.Height)
	if err != nil {
		return nil, err
	}

	base := colorBars(p.Width, p.Height)
	current := image.NewYCbCr(base.Rect, image.YCbCrSubsampleRatio420)
	raw := make([]byte, size)

	hNoiseStart := p.Height * 3 / 4
	wNoiseStart := p.Width * 5 / 7
	random := rand.New(rand.NewSource(0))

	tick := time.NewTicker(interval)
	d.tick = tick
	closed := d.closed

	logger.Infof("recording %s", p)

	r := video.ReaderFunc(func() (image.Image, func(), error) {
		select {
		case <-closed:
			return nil, func() {}, io.EOF
		default:
		}

		select {
		case <-closed:
			return nil, func() {}, io.EOF
		case <-tick.C:
		}

		copy(current.Y, base.Y)
		copy(current.Cb, base.Cb)
		copy(current.Cr, base.Cr)
		for y := hNoiseStart; y < p.Height; y++ {
			yi := p.Width * y
			for x := wNoiseStart; x < p.Width; x++ {
				current.Y[yi+x] = uint8(random.Int31n(2) * 255)
			}
		}

		if err := pack(raw, current, p.FrameFormat); err != nil {
			return nil, func() {}, err
		}
		return decoder.Decode(raw, p.Width, p.Height)
	})

	return r, nil
}

func (d *Dummy) Properties() []prop.Video {
	formats := []frame.Format{frame.FormatNV21, frame.FormatNV12, frame.FormatI420}
	props := make([]prop.Video, 0, len(formats))
	for _, f := range formats {
		props = append(props, prop.Video{
			Width:       640,
			Height:      480,
			FrameRate:   30,
			FrameFormat: f,
		})
	}
	return props
}

var colors = [][3]byte{
	{235, 128, 128},
	{210, 16, 146},
	{170, 166, 16},
	{145, 54, 34},
	{107, 202, 222},
	{82, 90, 240},
	{41, 240, 110},
}

// colorBars draws seven bars over the top three quarters and a gray ramp
// below them. The bottom right corner is left for noise.
func colorBars(width, height int) *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio420)

	hColorBarEnd := height * 3 / 4
	wGradationEnd := width * 5 / 7
	for y := 0; y < height; y++ {
		yi := img.YOffset(0, y)
		for x := 0; x < width; x++ {
			ci := img.COffset(x, y)
			switch {
			case y < hColorBarEnd:
				c := colors[x*7/width]
				img.Y[yi+x] = uint8(uint16(c[0]) * 75 / 100)
				img.Cb[ci] = c[1]
				img.Cr[ci] = c[2]
			case x < wGradationEnd:
				img.Y[yi+x] = uint8(x * 255 / wGradationEnd)
				img.Cb[ci] = 128
				img.Cr[ci] = 128
			default:
				img.Cb[ci] = 128
				img.Cr[ci] = 128
			}
		}
	}
	return img
}

// pack lays img out in dst as a raw frame of format f.
func pack(dst []byte, img *image.YCbCr, f frame.Format) error {
	planes, err := frame.PlanesFromYCbCr(img)
	if err != nil {
		return err
	}

	switch f {
	case frame.FormatNV21:
		_, err = frame.PackNV21(dst, planes)
	case frame.FormatNV12:
		planes.U, planes.V = planes.V, planes.U
		_, err = frame.PackNV21(dst, planes)
	case frame.FormatI420:
		n := copy(dst, img.Y)
		n += copy(dst[n:], img.Cb)
		copy(dst[n:], img.Cr)
	default:
		err = fmt.Errorf("videotest: %s is not supported", f)
	}
	return err
}
