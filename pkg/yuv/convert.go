package yuv

import (
	"image"
	"runtime"
	"sync"
)

// Frames with fewer output rows than this are converted on the calling
// goroutine.
const minParallelRows = 64

// Converter converts 4:2:0 frames to RGBA. A Converter holds no per-frame
// state and is safe for concurrent use.
type Converter struct {
	workers int
}

// Option configures a Converter.
type Option func(*Converter)

// WithWorkers sets how many goroutines share the output rows of a frame.
// n <= 1 converts sequentially.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.workers = n
	}
}

// NewConverter creates a Converter. By default it uses GOMAXPROCS workers.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = NewConverter()

// Convert converts f into dst with the default Converter.
func Convert(dst []byte, f Frame, o Orientation) error {
	return defaultConverter.Convert(dst, f, o)
}

// ToImage converts f into a newly allocated image with the default Converter.
func ToImage(f Frame, o Orientation) (*image.RGBA, error) {
	return defaultConverter.ToImage(f, o)
}

// Convert writes the RGBA rendition of f, rotated by o, into dst. dst must
// hold 4*w*h bytes where w, h are given by OutputSize. Nothing is written to
// dst when an error is returned.
func (c *Converter) Convert(dst []byte, f Frame, o Orientation) error {
	if !o.valid() {
		return errUnknownOrientation
	}

	if err := f.Validate(); err != nil {
		return err
	}

	w, h := OutputSize(o, f.Width, f.Height)
	if required := 4 * w * h; len(dst) < required {
		return &BufferError{Plane: "RGBA", Required: required, Actual: len(dst)}
	}

	c.parallel(h, func(ys <-chan int) {
		for y := range ys {
			convertRow(dst[4*y*w:4*(y+1)*w], &f, o, y, w, h)
		}
	})
	return nil
}

// ToImage converts f into a newly allocated *image.RGBA.
func (c *Converter) ToImage(f Frame, o Orientation) (*image.RGBA, error) {
	if !o.valid() {
		return nil, errUnknownOrientation
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	w, h := OutputSize(o, f.Width, f.Height)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := c.Convert(img.Pix, f, o); err != nil {
		return nil, err
	}
	return img, nil
}

// parallel feeds row indices [0, rows) to the workers and waits for all of
// them to finish.
func (c *Converter) parallel(rows int, fn func(ys <-chan int)) {
	procs := c.workers
	if procs > rows {
		procs = rows
	}

	ys := make(chan int, rows)
	for y := 0; y < rows; y++ {
		ys <- y
	}
	close(ys)

	if procs <= 1 || rows < minParallelRows {
		fn(ys)
		return
	}

	var wg sync.WaitGroup
	wg.Add(procs)
	for i := 0; i < procs; i++ {
		go func() {
			defer wg.Done()
			fn(ys)
		}()
	}
	wg.Wait()
}

// convertRow fills row y of a w x h output grid.
func convertRow(row []byte, f *Frame, o Orientation, y, w, h int) {
	i := 0
	for x := 0; x < w; x++ {
		sx, sy := sourceCoord(o, x, y, w, h)
		r, g, b := sample(f, sx, sy)
		row[i+0] = r
		row[i+1] = g
		row[i+2] = b
		row[i+3] = 255
		i += 4
	}
}

func sample(f *Frame, x, y int) (uint8, uint8, uint8) {
	ci := (x &^ 1) + y/2*f.UVStride
	yy := int32(f.Y[x+y*f.YStride])
	v := int32(f.V[ci]) - 128
	u := int32(f.U[ci]) - 128
	return ycbcrToRGB(yy, u, v)
}

// ycbcrToRGB is the JPEG YCbCr to RGB conversion in 1024 scaled fixed point.
// u and v are already centered on zero.
//
//	R = Y + 1.402 V
//	G = Y - 0.344136 U - 0.714136 V
//	B = Y + 1.772 U
func ycbcrToRGB(y, u, v int32) (uint8, uint8, uint8) {
	r := y + (512+1436*v)/1024
	g := y + (512-352*u-731*v)/1024
	b := y + (512+1815*u)/1024
	return clamp(r), clamp(g), clamp(b)
}

func clamp(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
