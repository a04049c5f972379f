// Package driver holds the video sources a pipeline can read frames from.
// Drivers register an Adapter with the Manager, which tracks their state.
package driver

import (
	"github.com/camframe/yuvrgba/pkg/io/video"
	"github.com/camframe/yuvrgba/pkg/prop"
)

// OpenCloser is an interface with Open and Close methods
type OpenCloser interface {
	Open() error
	Close() error
}

// Adapter is an interface that exposes the properties a device can record
// with. Properties is only meaningful after Open.
type Adapter interface {
	OpenCloser
	Properties() []prop.Video
}

// Info represents driver information
type Info struct {
	Label      string
	DeviceType DeviceType
	Name       string
}

// VideoRecorder is an interface to encapsulate the recording process
type VideoRecorder interface {
	VideoRecord(p prop.Video) (r video.Reader, err error)
}

// Driver is an adapter that has been registered with the Manager.
type Driver interface {
	Adapter
	ID() string
	Info() Info
	Status() State
}
