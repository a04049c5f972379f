package frame

type Format string

const (
	// YUV Formats

	// FormatI420 https://www.fourcc.org/pixel-format/yuv-i420/
	FormatI420 Format = "I420"
	// FormatNV21 https://www.fourcc.org/pixel-format/yuv-nv21/
	FormatNV21 Format = "NV21"
	// FormatNV12 https://www.fourcc.org/pixel-format/yuv-nv12/
	FormatNV12 Format = "NV12"
	// FormatYUV420 is a 4:2:0 frame delivered as three planes with their own
	// row and pixel strides, like Android's YUV_420_888.
	FormatYUV420 Format = "YUV420"

	// RGB Formats

	// FormatRGBA is packed 8 bit R, G, B, A
	FormatRGBA Format = "RGBA"

	// Compressed Formats

	// FormatMJPEG https://www.fourcc.org/mjpg/
	FormatMJPEG Format = "MJPEG"
)
