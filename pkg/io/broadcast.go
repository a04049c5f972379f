package io

import (
	"errors"
	"sync"
)

// DefaultBroadcasterBufferSize is the ring size used when BroadcasterConfig
// leaves BufferSize unset.
const DefaultBroadcasterBufferSize = 32

var errEmptySource = errors.New("source can't be nil")

type broadcasterData struct {
	data interface{}
	err  error
	seq  uint64
}

// Broadcaster is a generic pull-based broadcaster. Readers can come and go at
// any time and don't need to close or notify the broadcaster. Whichever
// reader first asks for data that hasn't been read yet pulls it from the
// source; the others wait for it.
type Broadcaster struct {
	mu      sync.Mutex
	cond    *sync.Cond
	source  Reader
	ring    []broadcasterData
	next    uint64
	reading bool
}

// BroadcasterConfig is a config to control broadcaster behaviour
type BroadcasterConfig struct {
	// BufferSize is the number of past reads kept for late readers. Readers
	// that fall further behind skip to the oldest kept read. The default value
	// is 32.
	BufferSize uint
}

// NewBroadcaster creates a new broadcaster. Source is expected to drop frames
// when any of the readers is slower than the source.
func NewBroadcaster(source Reader, config *BroadcasterConfig) *Broadcaster {
	var bufferSize uint = DefaultBroadcasterBufferSize
	if config != nil && config.BufferSize != 0 {
		bufferSize = config.BufferSize
	}

	broadcaster := &Broadcaster{
		ring: make([]broadcasterData, bufferSize),
	}
	broadcaster.cond = sync.NewCond(&broadcaster.mu)
	broadcaster.source = source
	return broadcaster
}

// NewReader creates a new reader that starts with the next read of the source.
// Each reader will retrieve the same data from the source. copyFn runs with
// the broadcaster locked.
func (broadcaster *Broadcaster) NewReader(copyFn func(interface{}) interface{}) Reader {
	broadcaster.mu.Lock()
	seq := broadcaster.next
	broadcaster.mu.Unlock()

	return ReaderFunc(func() (interface{}, func(), error) {
		data, last, err := broadcaster.get(seq, copyFn)
		seq = last + 1
		return data, func() {}, err
	})
}

func (broadcaster *Broadcaster) get(seq uint64, copyFn func(interface{}) interface{}) (interface{}, uint64, error) {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()

	size := uint64(len(broadcaster.ring))
	for {
		if seq < broadcaster.next {
			if oldest := broadcaster.oldest(); seq < oldest {
				seq = oldest
			}
			d := broadcaster.ring[seq%size]
			return copyFn(d.data), d.seq, d.err
		}

		if broadcaster.reading {
			broadcaster.cond.Wait()
			continue
		}

		broadcaster.reading = true
		source := broadcaster.source
		broadcaster.mu.Unlock()
		data, _, err := source.Read()
		broadcaster.mu.Lock()

		d := broadcasterData{data: data, err: err, seq: broadcaster.next}
		broadcaster.ring[d.seq%size] = d
		broadcaster.next++
		broadcaster.reading = false
		broadcaster.cond.Broadcast()
		return copyFn(d.data), d.seq, d.err
	}
}

func (broadcaster *Broadcaster) oldest() uint64 {
	size := uint64(len(broadcaster.ring))
	if broadcaster.next <= size {
		return 0
	}
	return broadcaster.next - size
}

// ReplaceSource replaces the underlying source. This operation is thread safe.
func (broadcaster *Broadcaster) ReplaceSource(source Reader) error {
	if source == nil {
		return errEmptySource
	}

	broadcaster.mu.Lock()
	broadcaster.source = source
	broadcaster.mu.Unlock()
	return nil
}

// Source retrieves the underlying source. This operation is thread safe.
func (broadcaster *Broadcaster) Source() Reader {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	return broadcaster.source
}
