package io

// Reader is a generic pull based reader. release hands the data back to the
// reader once the caller is done with it.
type Reader interface {
	Read() (data interface{}, release func(), err error)
}

// ReaderFunc is a proxy type to make easier for users to implement Reader
type ReaderFunc func() (data interface{}, release func(), err error)

func (f ReaderFunc) Read() (interface{}, func(), error) {
	return f()
}
