package main

import (
	"image"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camframe/yuvrgba/internal/logging"
	"github.com/camframe/yuvrgba/pkg/driver/videotest"
	"github.com/camframe/yuvrgba/pkg/frame"
	"github.com/camframe/yuvrgba/pkg/prop"
	"github.com/camframe/yuvrgba/pkg/yuv"
)

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, config{
		Listen:    ":8080",
		Source:    videotest.Label,
		Width:     640,
		Height:    480,
		Format:    "NV21",
		FrameRate: 30,
		Rotation:  yuv.Identity,
		Workers:   runtime.GOMAXPROCS(0),
		Quality:   80,
	}, cfg)

	cfg, err = parseFlags([]string{
		"--listen", "127.0.0.1:9000",
		"--rotation", "270",
		"--width", "320", "--height", "240",
		"--format", "I420",
		"--fps", "15",
		"--scale-width", "160",
		"--workers", "2",
		"--quality", "60",
		"--log-level", "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, yuv.Rotate270, cfg.Rotation)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 240, cfg.Height)
	assert.Equal(t, "I420", cfg.Format)
	assert.Equal(t, float32(15), cfg.FrameRate)
	assert.Equal(t, 160, cfg.ScaleWidth)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 60, cfg.Quality)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseFlagsErrors(t *testing.T) {
	cases := map[string][]string{
		"Rotation":  {"--rotation", "45"},
		"Width":     {"--width", "0"},
		"Arguments": {"extra"},
		"Unknown":   {"--bogus"},
	}

	for name, args := range cases {
		args := args
		t.Run(name, func(t *testing.T) {
			_, err := parseFlags(args)
			assert.Error(t, err)
		})
	}

	_, err := parseFlags([]string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestPipeline(t *testing.T) {
	log := logging.NewLogger("test")

	cases := map[string]struct {
		cfg      config
		expected image.Rectangle
	}{
		"Rotate90": {
			cfg:      config{Width: 8, Height: 6, Format: "NV21", Rotation: yuv.Rotate90},
			expected: image.Rect(0, 0, 6, 8),
		},
		"Rotate180I420": {
			cfg:      config{Width: 8, Height: 6, Format: "I420", Rotation: yuv.Rotate180},
			expected: image.Rect(0, 0, 8, 6),
		},
		"Scaled": {
			cfg:      config{Width: 8, Height: 6, Format: "NV12", Rotation: yuv.Rotate270, ScaleWidth: 3},
			expected: image.Rect(0, 0, 3, 4),
		},
	}

	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			c.cfg.Source = videotest.Label
			c.cfg.Workers = 2

			p, err := openPipeline(c.cfg, log)
			require.NoError(t, err)
			defer p.Close()

			img, release, err := p.NewReader().Read()
			require.NoError(t, err)
			defer release()

			rgba, ok := img.(*image.RGBA)
			require.True(t, ok)
			assert.Equal(t, c.expected, rgba.Bounds())
			for i := 3; i < len(rgba.Pix); i += 4 {
				if rgba.Pix[i] != 255 {
					t.Fatalf("pixel %d is not opaque", i/4)
				}
			}
		})
	}
}

func TestPipelineErrors(t *testing.T) {
	log := logging.NewLogger("test")

	_, err := openPipeline(config{Source: "missing", Width: 8, Height: 6, Format: "NV21"}, log)
	assert.Error(t, err)

	_, err = openPipeline(config{Source: videotest.Label, Width: 8, Height: 6, Format: "MJPEG"}, log)
	assert.Error(t, err)

	// The failed attempt left the source closed, so it can be opened again.
	p, err := openPipeline(config{Source: videotest.Label, Width: 8, Height: 6, Format: "NV21"}, log)
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestConfigConstraints(t *testing.T) {
	cfg := config{Width: 640, Height: 480, Format: "NV21", FrameRate: 15}

	c := cfg.constraints()
	assert.Equal(t, prop.Int(640), c.Width)
	assert.Equal(t, prop.Int(480), c.Height)
	assert.Equal(t, prop.FrameFormatExact(frame.FormatNV21), c.FrameFormat)
	assert.Equal(t, prop.Float(15), c.FrameRate)

	best, ok := c.Select([]prop.Video{
		{Width: 640, Height: 480, FrameRate: 60, FrameFormat: frame.FormatNV21},
		{Width: 640, Height: 480, FrameRate: 15, FrameFormat: frame.FormatNV21},
	})
	require.True(t, ok)
	assert.Equal(t, float32(15), best.FrameRate)

	cfg.FrameRate = 0
	assert.Nil(t, cfg.constraints().FrameRate)
}
