package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/archmetal/archctl/pkg/util"
)

const loaderConf = `default arch.conf
timeout 5
console-mode max
`

// configureBootloader installs systemd-boot and writes the two boot
// entries. It must run after partitioning and formatting because both
// UUIDs are queried from the finished devices.
func (o *InstallOptions) configureBootloader() error {
	espDir := filepath.Join(mountRoot, "boot")
	if _, err := util.RunCommand(fmt.Sprintf("bootctl --esp-path=%s install", espDir)); err != nil {
		return errors.Wrap(err, "failed to install systemd-boot")
	}

	rootUUID, err := FilesystemUUID(PartitionPath(o.MainDisk, rootPartNum))
	if err != nil {
		return err
	}
	recoveryUUID, err := PartitionUUID(PartitionPath(o.MainDisk, recoveryPartNum))
	if err != nil {
		return err
	}

	entriesDir := filepath.Join(espDir, "loader", "entries")
	if err := os.MkdirAll(entriesDir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create %s", entriesDir)
	}
	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(espDir, "loader", "loader.conf"), loaderConf},
		{filepath.Join(entriesDir, "arch.conf"), RenderMainEntry(rootUUID)},
		{filepath.Join(entriesDir, "recovery.conf"), RenderRecoveryEntry(recoveryUUID)},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", f.path)
		}
	}
	return nil
}

// RenderMainEntry renders the default boot entry. The root is
// addressed by filesystem UUID and mounted read-write.
func RenderMainEntry(rootUUID string) string {
	return fmt.Sprintf(`title Arch Linux
linux /vmlinuz-linux
initrd /initramfs-linux.img
options root=UUID=%s rw
`, rootUUID)
}

// RenderRecoveryEntry renders the recovery boot entry. The squashfs
// partition holds no filesystem UUID, so the root is addressed by
// partition UUID, with the filesystem type declared and mounted
// read-only.
func RenderRecoveryEntry(partUUID string) string {
	return fmt.Sprintf(`title Arch Linux (recovery)
linux /%s
initrd /%s
options root=PARTUUID=%s rootfstype=squashfs ro
`, RecoveryKernel, RecoveryInitramfs, partUUID)
}
