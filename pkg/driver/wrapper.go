package driver

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/camframe/yuvrgba/pkg/io/video"
	"github.com/camframe/yuvrgba/pkg/prop"
)

func wrapAdapter(a Adapter, info Info) Driver {
	generator, err := uuid.NewRandom()
	if err != nil {
		panic(err)
	}

	d := &adapterWrapper{
		Adapter: a,
		id:      generator.String(),
		info:    info,
		state:   StateClosed,
	}

	if _, ok := a.(VideoRecorder); ok {
		return &videoAdapterWrapper{adapterWrapper: d}
	}
	return d
}

type adapterWrapper struct {
	Adapter
	id    string
	info  Info
	mu    sync.Mutex
	state State
}

func (w *adapterWrapper) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateOpened, w.Adapter.Open)
}

func (w *adapterWrapper) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateClosed, w.Adapter.Close)
}

// Properties returns nil while the driver is closed.
func (w *adapterWrapper) Properties() []prop.Video {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		return nil
	}

	return w.Adapter.Properties()
}

func (w *adapterWrapper) ID() string {
	return w.id
}

func (w *adapterWrapper) Info() Info {
	return w.info
}

func (w *adapterWrapper) Status() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

type videoAdapterWrapper struct {
	*adapterWrapper
}

// VideoRecord starts recording. The driver is closed when the adapter fails
// to start.
func (w *videoAdapterWrapper) VideoRecord(p prop.Video) (video.Reader, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var r video.Reader
	err := w.state.Update(StateRunning, func() error {
		var err error
		r, err = w.Adapter.(VideoRecorder).VideoRecord(p)
		return err
	})
	if err != nil && w.state != StateClosed {
		if closeErr := w.state.Update(StateClosed, w.Adapter.Close); closeErr != nil {
			return nil, fmt.Errorf("%w (close: %v)", err, closeErr)
		}
	}
	return r, err
}
