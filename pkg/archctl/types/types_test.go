package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTemplate(t *testing.T) {
	path := writeTemplate(t, `
mainDisk: /dev/nvme0n1
homeDisk: /dev/sda
rootSize: 50G
hostname: workstation
timezone: Europe/Berlin
locale: de_DE.UTF-8
packages:
- base
- linux
- linux-firmware
- networkmanager
recoveryPackages:
- base
- linux
`)
	tpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/nvme0n1", tpl.MainDisk)
	assert.Equal(t, "/dev/sda", tpl.HomeDisk)
	assert.Equal(t, "50G", tpl.RootSize)
	assert.Equal(t, "workstation", tpl.Hostname)
	assert.Equal(t, "Europe/Berlin", tpl.Timezone)
	assert.Equal(t, "de_DE.UTF-8", tpl.Locale)
	assert.Len(t, tpl.Packages, 4)
	assert.Equal(t, []string{"base", "linux"}, tpl.RecoveryPackages)
}

func TestLoadTemplateUnknownKey(t *testing.T) {
	path := writeTemplate(t, "mainDsik: /dev/sda\n")
	_, err := LoadTemplate(path)
	assert.Error(t, err)
}

func TestLoadTemplateMissingFile(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
