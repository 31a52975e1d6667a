package install

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMainEntry(t *testing.T) {
	entry := RenderMainEntry("d7a47cfa-5c5f-4be1-9d37-5b77e96d63cc")
	lines := strings.Split(strings.TrimRight(entry, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "title Arch Linux", lines[0])
	assert.Equal(t, "linux /vmlinuz-linux", lines[1])
	assert.Equal(t, "initrd /initramfs-linux.img", lines[2])
	assert.Equal(t, "options root=UUID=d7a47cfa-5c5f-4be1-9d37-5b77e96d63cc rw", lines[3])
}

func TestRenderRecoveryEntry(t *testing.T) {
	entry := RenderRecoveryEntry("51f2f37b-4bdf-4f65-82c7-3641815b9708")
	lines := strings.Split(strings.TrimRight(entry, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "title Arch Linux (recovery)", lines[0])
	assert.Equal(t, "linux /vmlinuz-linux-recovery", lines[1])
	assert.Equal(t, "initrd /initramfs-linux-recovery.img", lines[2])
	assert.Equal(t, "options root=PARTUUID=51f2f37b-4bdf-4f65-82c7-3641815b9708 rootfstype=squashfs ro", lines[3])
}

func TestLoaderConf(t *testing.T) {
	assert.Contains(t, loaderConf, "default arch.conf\n")
	assert.Contains(t, loaderConf, "timeout 5\n")
}
