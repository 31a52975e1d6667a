package install

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMiB(t *testing.T) {
	tests := []struct {
		size string
		want int
	}{
		{"512M", 512},
		{"1G", 1024},
		{"50G", 51200},
		{"1T", 1024 * 1024},
		{"junk", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToMiB(tt.size), "size %q", tt.size)
	}
}

func TestIsValidSize(t *testing.T) {
	for _, ok := range []string{"512M", "1G", "50G", "2T"} {
		assert.True(t, IsValidSize(ok), "size %q", ok)
	}
	for _, bad := range []string{"", "50", "G", "50g", "1P", "1.5G", "50 G"} {
		assert.False(t, IsValidSize(bad), "size %q", bad)
	}
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "500B", humanSize(500))
	assert.Equal(t, "512.1GB", humanSize(512110190592))
	assert.Equal(t, "1.0TB", humanSize(1000*1000*1000*1000))
}
