// Command yuvstream converts frames from a video source to RGBA, rotating
// them on the way, and serves them as JPEG snapshots and an MJPEG stream.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/camframe/yuvrgba/internal/logging"
	"github.com/camframe/yuvrgba/pkg/driver/videotest"
	"github.com/camframe/yuvrgba/pkg/frame"
	"github.com/camframe/yuvrgba/pkg/mjpeg"
)

func parseFlags(args []string) (config, error) {
	cfg := config{
		Source:    videotest.Label,
		Format:    string(frame.FormatNV21),
		FrameRate: 30,
		Workers:   runtime.GOMAXPROCS(0),
		Quality:   mjpeg.DefaultQuality,
	}

	flags := pflag.NewFlagSet("yuvstream", pflag.ContinueOnError)
	flags.StringVar(&cfg.Listen, "listen", ":8080", "address to serve HTTP on")
	flags.StringVar(&cfg.Source, "source", cfg.Source, "label of the video source")
	flags.IntVar(&cfg.Width, "width", 640, "source frame width")
	flags.IntVar(&cfg.Height, "height", 480, "source frame height")
	flags.StringVar(&cfg.Format, "format", cfg.Format, "source frame format (NV21, NV12 or I420)")
	flags.Float32Var(&cfg.FrameRate, "fps", cfg.FrameRate, "frame rate limit, 0 disables it")
	flags.Var(&cfg.Rotation, "rotation", "clockwise rotation in degrees: 0, 90, 180 or 270")
	flags.IntVar(&cfg.ScaleWidth, "scale-width", 0, "scale output to this width, 0 keeps the aspect ratio")
	flags.IntVar(&cfg.ScaleHeight, "scale-height", 0, "scale output to this height, 0 keeps the aspect ratio")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines converting each frame")
	flags.IntVar(&cfg.Quality, "quality", cfg.Quality, "JPEG quality, 1 to 100")
	flags.StringVar(&cfg.LogLevel, "log-level", "", "log level (error, warn, info, debug, trace); PION_LOG_* by default")

	if err := flags.Parse(args); err != nil {
		return config{}, err
	}
	if flags.NArg() != 0 {
		return config{}, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return config{}, fmt.Errorf("frame size has to be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cfg.LogLevel != "" {
		if err := logging.SetLevel(cfg.LogLevel); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	log := logging.NewLogger("yuvstream")

	p, err := openPipeline(cfg, log)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	server, err := mjpeg.NewServer(p.NewReader, mjpeg.WithQuality(cfg.Quality))
	if err != nil {
		p.Close()
		log.Errorf("%v", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infof("listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("ListenAndServe: %v", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	// Closing the source ends the streams, so the server can drain.
	if err := p.Close(); err != nil {
		log.Warnf("closing source: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
}
