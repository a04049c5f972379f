package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pion/logging"

	"github.com/camframe/yuvrgba/pkg/driver"
	"github.com/camframe/yuvrgba/pkg/frame"
	"github.com/camframe/yuvrgba/pkg/io/video"
	"github.com/camframe/yuvrgba/pkg/prop"
	"github.com/camframe/yuvrgba/pkg/yuv"
)

type config struct {
	Listen      string
	Source      string
	Width       int
	Height      int
	Format      string
	FrameRate   float32
	Rotation    yuv.Orientation
	ScaleWidth  int
	ScaleHeight int
	Workers     int
	Quality     int
	LogLevel    string
}

// constraints describes the source mode cfg asks for. The frame rate is an
// ideal only, as Throttle brings faster sources down to it.
func (cfg config) constraints() prop.VideoConstraints {
	c := prop.VideoConstraints{
		Width:       prop.Int(cfg.Width),
		Height:      prop.Int(cfg.Height),
		FrameFormat: prop.FrameFormatExact(cfg.Format),
	}
	if cfg.FrameRate > 0 {
		c.FrameRate = prop.Float(cfg.FrameRate)
	}
	return c
}

// pipeline is an opened source whose frames are converted, rotated and
// optionally scaled before they are broadcast to the HTTP clients.
type pipeline struct {
	driver      driver.Driver
	broadcaster *video.Broadcaster
}

func openPipeline(cfg config, log logging.LeveledLogger) (*pipeline, error) {
	drivers := driver.GetManager().Query(driver.FilterAnd(
		driver.FilterVideoRecorder(),
		driver.FilterLabel(cfg.Source),
	))
	if len(drivers) == 0 {
		return nil, fmt.Errorf("no video source labeled %q", cfg.Source)
	}
	d := drivers[0]

	if err := d.Open(); err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.Source, err)
	}

	constraints := cfg.constraints()
	selected, ok := constraints.Select(d.Properties())
	if !ok {
		d.Close()
		return nil, fmt.Errorf("%s can't record %s frames", cfg.Source, cfg.Format)
	}
	selected.Merge(prop.Video{Width: cfg.Width, Height: cfg.Height, FrameRate: cfg.FrameRate})

	r, err := d.(driver.VideoRecorder).VideoRecord(selected)
	if err != nil {
		return nil, fmt.Errorf("recording from %s: %w", cfg.Source, err)
	}

	if size, err := frame.Size(selected.FrameFormat, selected.Width, selected.Height); err == nil {
		log.Infof("recording %s from %s, %s per frame", selected, d.Info().Label, humanize.Bytes(uint64(size)))
	}

	transforms := []video.TransformFunc{
		video.Throttle(cfg.FrameRate),
		video.DetectChanges(5*time.Second, 1, func(p prop.Video) {
			log.Debugf("source frames: %s", p)
		}),
		video.ToRGBA(cfg.Rotation, yuv.WithWorkers(cfg.Workers)),
	}
	if cfg.ScaleWidth > 0 || cfg.ScaleHeight > 0 {
		transforms = append(transforms, video.Scale(cfg.ScaleWidth, cfg.ScaleHeight, video.ScalerBiLinear))
	}

	w, h := yuv.OutputSize(cfg.Rotation, selected.Width, selected.Height)
	log.Infof("serving %dx%d frames rotated by %s degrees", w, h, cfg.Rotation)

	return &pipeline{
		driver:      d,
		broadcaster: video.NewBroadcaster(video.Merge(transforms...)(r), nil),
	}, nil
}

// NewReader returns a reader whose frames stay valid until its next Read.
func (p *pipeline) NewReader() video.Reader {
	return p.broadcaster.NewReader(true)
}

func (p *pipeline) Close() error {
	return p.driver.Close()
}
