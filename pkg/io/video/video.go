// Package video chains frame readers: a source such as a driver is wrapped by
// transforms that convert, rotate, scale or throttle its frames.
package video

import (
	"image"
)

// Reader produces frames. release hands the frame back to the producer, which
// may reuse its memory afterwards.
type Reader interface {
	Read() (img image.Image, release func(), err error)
}

type ReaderFunc func() (img image.Image, release func(), err error)

func (rf ReaderFunc) Read() (image.Image, func(), error) {
	return rf()
}

// TransformFunc produces a new Reader that will produces a transformed video
type TransformFunc func(r Reader) Reader

// Merge merges transforms and produces a new TransformFunc that will execute
// transforms in order
func Merge(transforms ...TransformFunc) TransformFunc {
	return func(r Reader) Reader {
		for _, transform := range transforms {
			if transform == nil {
				continue
			}

			r = transform(r)
		}

		return r
	}
}
