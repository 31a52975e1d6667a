package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/archmetal/archctl/pkg/util"
)

const (
	// RecoveryKernel and RecoveryInitramfs are the names the recovery
	// kernel artifacts get on the EFI system partition. They are copied
	// out of the squashfs tree because the boot loader cannot read the
	// compressed image.
	RecoveryKernel    = "vmlinuz-linux-recovery"
	RecoveryInitramfs = "initramfs-linux-recovery.img"
)

// DefaultRecoveryPackages is the minimal set pacstrapped into the
// recovery tree.
var DefaultRecoveryPackages = []string{"base", "linux", "linux-firmware"}

// The recovery root mounts read-only, so the fstab inside the tree only
// provides a writable /tmp.
const recoveryFstab = `tmpfs /tmp tmpfs nosuid,nodev 0 0
`

func (o *InstallOptions) buildRecoveryImage() error {
	packages := o.RecoveryPackages
	if len(packages) == 0 {
		packages = DefaultRecoveryPackages
	}
	device := PartitionPath(o.MainDisk, recoveryPartNum)
	espDir := filepath.Join(mountRoot, "boot")
	scratch := filepath.Join(mountRoot, "recoveryfs")
	return BuildRecoveryImage(device, espDir, scratch, packages)
}

// BuildRecoveryImage bootstraps a minimal system into scratch,
// extracts its kernel and initramfs to espDir under the recovery
// names, compresses the tree straight onto the raw partition device
// and removes the scratch tree. The partition capacity is not checked
// up front; if the tree outgrows it, mksquashfs fails and the failure
// propagates.
func BuildRecoveryImage(device, espDir, scratch string, packages []string) error {
	klog.V(4).Infof("build recovery image on [%s]", device)

	if err := os.MkdirAll(scratch, 0755); err != nil {
		return errors.Wrapf(err, "failed to create scratch tree %s", scratch)
	}
	if _, err := util.RunCommand(fmt.Sprintf("pacstrap -c %s %s", scratch, strings.Join(packages, " "))); err != nil {
		return errors.Wrap(err, "failed to bootstrap the recovery tree")
	}
	if err := os.WriteFile(filepath.Join(scratch, "etc", "fstab"), []byte(recoveryFstab), 0644); err != nil {
		return errors.Wrap(err, "failed to write recovery fstab")
	}

	artifacts := []struct {
		src string
		dst string
	}{
		{"boot/vmlinuz-linux", RecoveryKernel},
		{"boot/initramfs-linux.img", RecoveryInitramfs},
	}
	for _, a := range artifacts {
		src := filepath.Join(scratch, a.src)
		dst := filepath.Join(espDir, a.dst)
		if _, err := util.RunCommand(fmt.Sprintf("cp %s %s", src, dst)); err != nil {
			return errors.Wrapf(err, "failed to copy %s to %s", src, dst)
		}
	}

	if _, err := util.RunCommand(fmt.Sprintf("mksquashfs %s %s -noappend -comp zstd", scratch, device)); err != nil {
		return errors.Wrap(err, "failed to compress the recovery tree")
	}

	if err := os.RemoveAll(scratch); err != nil {
		return errors.Wrapf(err, "failed to remove scratch tree %s", scratch)
	}
	klog.V(4).Info("build recovery image end")
	return nil
}
