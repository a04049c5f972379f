package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	cases := map[Format]int{
		FormatI420: 640*480 + 2*(320*240),
		FormatNV21: 640*480 + 640*480/2,
		FormatNV12: 640*480 + 640*480/2,
		FormatRGBA: 4 * 640 * 480,
	}

	for f, expected := range cases {
		size, err := Size(f, 640, 480)
		assert.NoError(t, err, f)
		assert.Equal(t, expected, size, f)
	}

	_, err := Size(FormatMJPEG, 640, 480)
	assert.Error(t, err)
}
