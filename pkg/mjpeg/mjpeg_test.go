package mjpeg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camframe/yuvrgba/pkg/io/video"
)

// finiteSource returns n solid frames and io.EOF afterwards.
func finiteSource(n int) ReaderFactory {
	return func() video.Reader {
		var i int
		return video.ReaderFunc(func() (image.Image, func(), error) {
			if i >= n {
				return nil, func() {}, io.EOF
			}
			i++
			img := image.NewRGBA(image.Rect(0, 0, 16, 8))
			for p := 0; p < len(img.Pix); p += 4 {
				img.Pix[p] = 200
				img.Pix[p+3] = 255
			}
			return img, func() {}, nil
		})
	}
}

func newTestServer(t *testing.T, newReader ReaderFactory, opts ...Option) *httptest.Server {
	s, err := NewServer(newReader, opts...)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestSnapshot(t *testing.T) {
	ts := newTestServer(t, finiteSource(1))

	resp, err := http.Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-cache")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(len(body)), resp.Header.Get("Content-Length"))

	img, err := jpeg.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())

	c := color.RGBAModel.Convert(img.At(4, 4)).(color.RGBA)
	assert.InDelta(t, 200, c.R, 8)
	assert.InDelta(t, 0, c.G, 8)
	assert.InDelta(t, 0, c.B, 8)
}

func TestSnapshotSourceError(t *testing.T) {
	ts := newTestServer(t, finiteSource(0))

	resp, err := http.Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestStream(t *testing.T) {
	const frames = 3
	ts := newTestServer(t, finiteSource(frames), WithQuality(50))

	resp, err := http.Get(ts.URL + "/mjpeg")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("Expires"))

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/x-mixed-replace", mediaType)

	mr := multipart.NewReader(resp.Body, params["boundary"])
	var parts int
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)

		assert.Equal(t, "image/jpeg", part.Header.Get("Content-Type"))
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(len(data)), part.Header.Get("Content-Length"))

		_, err = jpeg.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		parts++
	}
	assert.Equal(t, frames, parts)
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t, finiteSource(0))

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/snapshot")
	assert.Contains(t, string(body), "/mjpeg")

	resp, err = http.Get(ts.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, finiteSource(1))

	for _, path := range []string{"/snapshot", "/mjpeg"} {
		resp, err := http.Post(ts.URL+path, "text/plain", nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, path)
	}
}

func TestNewServerErrors(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)

	for _, q := range []int{0, 101} {
		_, err := NewServer(finiteSource(1), WithQuality(q))
		assert.Error(t, err, "quality %d", q)
	}

	s, err := NewServer(finiteSource(1))
	require.NoError(t, err)
	assert.Equal(t, DefaultQuality, s.quality)
	assert.Zero(t, s.Clients())
}
