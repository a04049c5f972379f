package video

import (
	"errors"
	"image"

	"github.com/camframe/yuvrgba/pkg/io"
)

var errEmptySource = errors.New("source can't be nil")

// Broadcaster is a specialized video broadcaster. Every frame read from the
// source is copied into a slot that stays untouched while the frame is in
// the broadcaster's ring, so sources are free to reuse their frames.
type Broadcaster struct {
	ioBroadcaster *io.Broadcaster
	slots         int
}

// NewBroadcaster creates a new broadcaster.
func NewBroadcaster(source Reader, config *io.BroadcasterConfig) *Broadcaster {
	bufferSize := io.DefaultBroadcasterBufferSize
	if config != nil && config.BufferSize != 0 {
		bufferSize = int(config.BufferSize)
	}

	broadcaster := &Broadcaster{slots: bufferSize + 1}
	broadcaster.ioBroadcaster = io.NewBroadcaster(broadcaster.wrap(source), config)
	return broadcaster
}

func (broadcaster *Broadcaster) wrap(source Reader) io.Reader {
	slots := make([]*FrameBuffer, broadcaster.slots)
	for i := range slots {
		slots[i] = NewFrameBuffer(0)
	}

	var next int
	return io.ReaderFunc(func() (interface{}, func(), error) {
		img, release, err := source.Read()
		if err != nil {
			return nil, func() {}, err
		}

		slot := slots[next]
		next = (next + 1) % len(slots)
		slot.StoreCopy(img)
		release()
		return slot.Load(), func() {}, nil
	})
}

// NewReader creates a new reader. Each reader will retrieve the same frames
// from the source. Without copyFrame the returned frames are shared between
// readers and are recycled once they drop out of the broadcaster's ring;
// with copyFrame each reader gets its own copy, valid until its next Read.
func (broadcaster *Broadcaster) NewReader(copyFrame bool) Reader {
	copyFn := func(src interface{}) interface{} { return src }

	if copyFrame {
		buffer := NewFrameBuffer(0)
		copyFn = func(src interface{}) interface{} {
			img, ok := src.(image.Image)
			if !ok {
				return src
			}
			buffer.StoreCopy(img)
			return buffer.Load()
		}
	}

	reader := broadcaster.ioBroadcaster.NewReader(copyFn)
	return ReaderFunc(func() (image.Image, func(), error) {
		data, _, err := reader.Read()
		img, _ := data.(image.Image)
		return img, func() {}, err
	})
}

// ReplaceSource replaces the underlying source. This operation is thread safe.
func (broadcaster *Broadcaster) ReplaceSource(source Reader) error {
	if source == nil {
		return errEmptySource
	}
	return broadcaster.ioBroadcaster.ReplaceSource(broadcaster.wrap(source))
}
