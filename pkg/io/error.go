package io

import (
	"fmt"

	"github.com/camframe/yuvrgba/pkg/yuv"
)

// InsufficientBufferError tells the caller that the buffer provided is not big
// enough to hold a whole frame. It matches yuv.ErrBufferTooSmall.
type InsufficientBufferError struct {
	RequiredSize int
}

func (e *InsufficientBufferError) Error() string {
	return fmt.Sprintf("provided buffer doesn't meet the size requirement of length, %d", e.RequiredSize)
}

func (e *InsufficientBufferError) Unwrap() error {
	return yuv.ErrBufferTooSmall
}
