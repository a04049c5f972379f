package videotest

import (
	"image"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camframe/yuvrgba/pkg/driver"
	"github.com/camframe/yuvrgba/pkg/frame"
	"github.com/camframe/yuvrgba/pkg/prop"
)

func TestRegistered(t *testing.T) {
	drivers := driver.GetManager().Query(driver.FilterLabel(Label))
	require.Len(t, drivers, 1)

	d := drivers[0]
	assert.Equal(t, driver.Camera, d.Info().DeviceType)
	_, ok := d.(driver.VideoRecorder)
	assert.True(t, ok)
}

func TestVideoRecordFormats(t *testing.T) {
	for _, f := range []frame.Format{frame.FormatNV21, frame.FormatNV12, frame.FormatI420} {
		f := f
		t.Run(string(f), func(t *testing.T) {
			d := NewVideoTest()
			require.NoError(t, d.Open())
			defer d.Close()

			r, err := d.VideoRecord(prop.Video{Width: 70, Height: 40, FrameRate: 1000, FrameFormat: f})
			require.NoError(t, err)

			img, release, err := r.Read()
			require.NoError(t, err)
			defer release()

			ycbcr, ok := img.(*image.YCbCr)
			require.True(t, ok)
			assert.Equal(t, image.Rect(0, 0, 70, 40), ycbcr.Rect)
			assert.Equal(t, image.YCbCrSubsampleRatio420, ycbcr.SubsampleRatio)

			// Every format decodes to the same first bar.
			c := colors[0]
			assert.Equal(t, uint8(uint16(c[0])*75/100), ycbcr.Y[0])
			assert.Equal(t, c[1], ycbcr.Cb[0])
			assert.Equal(t, c[2], ycbcr.Cr[0])

			// Second bar starts at x = 10.
			ci := ycbcr.COffset(10, 0)
			assert.Equal(t, colors[1][1], ycbcr.Cb[ci])
			assert.Equal(t, colors[1][2], ycbcr.Cr[ci])
		})
	}
}

func TestVideoRecordEOFAfterClose(t *testing.T) {
	d := NewVideoTest()
	require.NoError(t, d.Open())

	r, err := d.VideoRecord(prop.Video{Width: 16, Height: 16, FrameRate: 1000})
	require.NoError(t, err)

	_, _, err = r.Read()
	require.NoError(t, err)

	require.NoError(t, d.Close())
	_, _, err = r.Read()
	assert.Equal(t, io.EOF, err)
}

func TestVideoRecordInvalid(t *testing.T) {
	d := NewVideoTest()
	require.NoError(t, d.Open())
	defer d.Close()

	cases := map[string]prop.Video{
		"OddWidth":     {Width: 15, Height: 16},
		"NegativeRate": {Width: 16, Height: 16, FrameRate: -1},
		"RateTooHigh":  {Width: 16, Height: 16, FrameRate: 2e9},
		"Compressed":   {Width: 16, Height: 16, FrameFormat: frame.FormatMJPEG},
		"Unknown":      {Width: 16, Height: 16, FrameFormat: frame.Format("YUYV")},
	}
	for name, p := range cases {
		p := p
		t.Run(name, func(t *testing.T) {
			_, err := d.VideoRecord(p)
			assert.Error(t, err)
		})
	}
}

func TestProperties(t *testing.T) {
	props := NewVideoTest().Properties()
	require.Len(t, props, 3)
	for _, p := range props {
		assert.Equal(t, 640, p.Width)
		assert.Equal(t, 480, p.Height)
	}
}
