// Package mjpeg serves frames from a video reader as JPEG snapshots and as a
// motion JPEG stream over HTTP.
package mjpeg

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/pion/logging"

	mlogging "github.com/camframe/yuvrgba/internal/logging"
	"github.com/camframe/yuvrgba/pkg/io/video"
)

// DefaultQuality is the JPEG quality used unless WithQuality says otherwise.
const DefaultQuality = 80

const indexHTML = `<html><body>` +
	`<h1>GET /snapshot</h1><p>GET a current JPEG image.</p>` +
	`<h1>GET /mjpeg</h1><p>GET MJPEG frames.</p>` +
	`</body></html>`

// ReaderFactory returns a new reader for every client. Readers returned by a
// video.Broadcaster fit here.
type ReaderFactory func() video.Reader

// Option configures a Server.
type Option func(*Server)

// WithQuality sets the JPEG quality, from 1 to 100.
func WithQuality(quality int) Option {
	return func(s *Server) {
		s.quality = quality
	}
}

// WithLogger replaces the package logger.
func WithLogger(log logging.LeveledLogger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// Server encodes frames for HTTP clients. Every client reads from its own
// reader, so slow clients only drop their own frames.
type Server struct {
	newReader ReaderFactory
	quality   int
	log       logging.LeveledLogger
	clients   int32
}

// NewServer creates a Server reading frames from readers made by newReader.
func NewServer(newReader ReaderFactory, opts ...Option) (*Server, error) {
	if newReader == nil {
		return nil, errors.New("mjpeg: reader factory can't be nil")
	}

	s := &Server{
		newReader: newReader,
		quality:   DefaultQuality,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.quality < 1 || s.quality > 100 {
		return nil, fmt.Errorf("mjpeg: quality has to be within 1 and 100, got %d", s.quality)
	}
	if s.log == nil {
		s.log = mlogging.NewLogger("mjpeg")
	}
	return s, nil
}

// RegisterRoutes adds the snapshot, stream and index endpoints to mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/mjpeg", s.handleStream)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, indexHTML)
	})
}

// Handler returns a handler serving the routes of RegisterRoutes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

// Clients returns the number of connected stream clients.
func (s *Server) Clients() int {
	return int(atomic.LoadInt32(&s.clients))
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var buf bytes.Buffer
	if err := s.encodeNext(&buf, s.newReader()); err != nil {
		s.log.Warnf("snapshot: %v", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	setNoCache(w.Header())
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if r.Method == http.MethodHead {
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Debugf("snapshot: %v", err)
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	clients := atomic.AddInt32(&s.clients, 1)
	defer atomic.AddInt32(&s.clients, -1)

	reader := s.newReader()
	mw := multipart.NewWriter(w)

	setNoCache(w.Header())
	w.Header().Set("Connection", "close")
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+mw.Boundary())
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	s.log.Infof("stream client %s connected, %d connected", r.RemoteAddr, clients)

	var frames, sent uint64
	var buf bytes.Buffer
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			s.log.Infof("stream client %s left after %s frames (%s)",
				r.RemoteAddr, humanize.Comma(int64(frames)), humanize.Bytes(sent))
			return
		default:
		}

		buf.Reset()
		if err := s.encodeNext(&buf, reader); err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Warnf("stream: %v", err)
			}
			mw.Close()
			return
		}

		part, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":   {"image/jpeg"},
			"Content-Length": {strconv.Itoa(buf.Len())},
		})
		if err != nil {
			s.log.Debugf("stream: %v", err)
			return
		}
		n, err := buf.WriteTo(part)
		if err != nil {
			s.log.Debugf("stream: %v", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}

		frames++
		sent += uint64(n)
	}
}

// encodeNext reads a frame from r and writes it to w as a JPEG picture.
func (s *Server) encodeNext(w io.Writer, r video.Reader) error {
	img, release, err := r.Read()
	if err != nil {
		return err
	}
	defer release()

	return s.encode(w, img)
}

func (s *Server) encode(w io.Writer, img image.Image) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return fmt.Errorf("mjpeg: encoding frame: %w", err)
	}
	return nil
}

func setNoCache(h http.Header) {
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, pre-check=0, post-check=0, max-age=0")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}
