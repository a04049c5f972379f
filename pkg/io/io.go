// Package io holds the generic reader plumbing frames flow through.
package io

// Copy copies src into dst. If dst is shorter than src nothing is copied and
// an InsufficientBufferError is returned.
func Copy(dst, src []byte) (n int, err error) {
	if len(dst) < len(src) {
		return 0, &InsufficientBufferError{len(src)}
	}

	return copy(dst, src), nil
}
