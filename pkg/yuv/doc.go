// Package yuv converts planar 4:2:0 camera frames to RGBA, optionally rotating
// them by a multiple of 90 degrees on the way.
//
// The conversion uses the JPEG YCbCr equations in fixed point arithmetic
// scaled by 1024. Chroma is sampled at the even aligned column of the pixel
// and at half the row, so the U and V planes are expected to carry their
// samples at even offsets, as the chroma views of an NV21 buffer do.
//
// Every output pixel depends only on the input planes, so a Converter splits
// the output rows across goroutines and returns once all rows are written.
package yuv
