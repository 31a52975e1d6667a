package install

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archmetal/archctl/pkg/archctl/types"
)

func newTestOptions(input string) *InstallOptions {
	o := NewInstallOptions()
	o.in = bufio.NewReader(strings.NewReader(input))
	return o
}

func TestValidateFlagSyntax(t *testing.T) {
	o := NewInstallOptions()
	require.NoError(t, o.Validate(), "unset root size is prompted for later")

	o.RootSize = "50G"
	require.NoError(t, o.Validate())

	for _, bad := range []string{"fifty", "50", "G", "50g", "-50G", "50GB"} {
		o.RootSize = bad
		assert.Error(t, o.Validate(), "size %q should be rejected", bad)
	}
}

func TestValidateSelection(t *testing.T) {
	tests := []struct {
		name     string
		mainDisk string
		homeDisk string
		rootSize string
		wantErr  bool
	}{
		{"valid", "/dev/nvme0n1", "/dev/sda", "50G", false},
		{"empty main disk", "", "/dev/sda", "50G", true},
		{"empty home disk", "/dev/nvme0n1", "", "50G", true},
		{"same disk", "/dev/sda", "/dev/sda", "50G", true},
		{"empty size", "/dev/nvme0n1", "/dev/sda", "", true},
		{"bad size", "/dev/nvme0n1", "/dev/sda", "lots", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewInstallOptions()
			o.MainDisk = tt.mainDisk
			o.HomeDisk = tt.homeDisk
			o.RootSize = tt.rootSize
			err := o.validateSelection()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfirmDestruction(t *testing.T) {
	o := newTestOptions("DESTROY\n")
	o.MainDisk = "/dev/nvme0n1"
	o.HomeDisk = "/dev/sda"
	require.NoError(t, o.confirmDestruction())

	for _, bad := range []string{"destroy\n", " DESTROY\n", "DESTROY \n", "yes\n", "\n", ""} {
		o := newTestOptions(bad)
		o.MainDisk = "/dev/nvme0n1"
		o.HomeDisk = "/dev/sda"
		assert.Error(t, o.confirmDestruction(), "input %q should be rejected", bad)
	}
}

func TestConfirmDestructionAcceptsCRLF(t *testing.T) {
	o := newTestOptions("DESTROY\r\n")
	o.MainDisk = "/dev/nvme0n1"
	o.HomeDisk = "/dev/sda"
	require.NoError(t, o.confirmDestruction())
}

func TestApplyTemplate(t *testing.T) {
	o := NewInstallOptions()
	o.MainDisk = "/dev/nvme1n1" // set by flag, template must not win
	o.applyTemplate(&types.InstallTemplate{
		MainDisk: "/dev/nvme0n1",
		HomeDisk: "/dev/sda",
		RootSize: "80G",
		Hostname: "workstation",
		Packages: []string{"base", "linux"},
	})

	assert.Equal(t, "/dev/nvme1n1", o.MainDisk)
	assert.Equal(t, "/dev/sda", o.HomeDisk)
	assert.Equal(t, "80G", o.RootSize)
	assert.Equal(t, "workstation", o.Hostname)
	assert.Equal(t, []string{"base", "linux"}, o.Packages)
}
