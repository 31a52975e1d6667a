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

// Fixed partition numbering on the two disks.
const (
	espPartNum      = 1
	recoveryPartNum = 2
	varPartNum      = 3
	rootPartNum     = 4

	homePartNum = 1
)

type PartitionSpec struct {
	Num   int
	Size  string // sgdisk size, empty means rest of disk
	Type  string // GPT type code
	Label string
}

func mainDiskPlan(rootSize string) []PartitionSpec {
	return []PartitionSpec{
		{Num: espPartNum, Size: "1G", Type: "ef00", Label: "EFI"},
		{Num: recoveryPartNum, Size: "10G", Type: "8300", Label: "RECOVERY"},
		{Num: varPartNum, Size: "1G", Type: "8300", Label: "VAR"},
		{Num: rootPartNum, Size: rootSize, Type: "8300", Label: "ROOT"},
	}
}

func homeDiskPlan() []PartitionSpec {
	return []PartitionSpec{
		{Num: homePartNum, Size: "", Type: "8300", Label: "HOME"},
	}
}

// sgdiskArgs renders a single sgdisk invocation creating the whole plan.
func sgdiskArgs(disk string, plan []PartitionSpec) string {
	args := make([]string, 0, len(plan)*3+2)
	args = append(args, "sgdisk")
	for _, p := range plan {
		end := "0"
		if p.Size != "" {
			end = "+" + p.Size
		}
		args = append(args,
			fmt.Sprintf("--new=%d:0:%s", p.Num, end),
			fmt.Sprintf("--typecode=%d:%s", p.Num, p.Type),
			fmt.Sprintf("--change-name=%d:%s", p.Num, p.Label))
	}
	args = append(args, disk)
	return strings.Join(args, " ")
}

func (o *InstallOptions) partitionDisks() error {
	plans := []struct {
		disk string
		plan []PartitionSpec
	}{
		{o.MainDisk, mainDiskPlan(o.RootSize)},
		{o.HomeDisk, homeDiskPlan()},
	}
	klog.V(4).Infof("root partition size: %d MiB", ToMiB(o.RootSize))
	for _, p := range plans {
		klog.V(4).Infof("partition disk [%s]", p.disk)
		if _, err := util.RunCommand(fmt.Sprintf("sgdisk --zap-all %s", p.disk)); err != nil {
			return errors.Wrapf(err, "failed to wipe partition table on %s", p.disk)
		}
		if _, err := util.RunCommand(sgdiskArgs(p.disk, p.plan)); err != nil {
			return errors.Wrapf(err, "failed to partition %s", p.disk)
		}
		if _, err := util.RunCommand(fmt.Sprintf("partprobe %s", p.disk)); err != nil {
			return errors.Wrapf(err, "failed to rescan %s", p.disk)
		}
	}
	return nil
}

// formatFilesystems formats every partition except the recovery one,
// which stays raw until mksquashfs writes the image onto it.
func (o *InstallOptions) formatFilesystems() error {
	esp := PartitionPath(o.MainDisk, espPartNum)
	if _, err := util.RunCommand(fmt.Sprintf("mkfs.fat -F32 -n EFI %s", esp)); err != nil {
		return errors.Wrapf(err, "failed to format %s", esp)
	}
	ext4 := []struct {
		dev   string
		label string
	}{
		{PartitionPath(o.MainDisk, varPartNum), "VAR"},
		{PartitionPath(o.MainDisk, rootPartNum), "ROOT"},
		{PartitionPath(o.HomeDisk, homePartNum), "HOME"},
	}
	for _, fs := range ext4 {
		if _, err := util.RunCommand(fmt.Sprintf("mkfs.ext4 -F -L %s %s", fs.label, fs.dev)); err != nil {
			return errors.Wrapf(err, "failed to format %s", fs.dev)
		}
	}
	return nil
}

func (o *InstallOptions) mountTarget() error {
	root := PartitionPath(o.MainDisk, rootPartNum)
	if _, err := util.RunCommand(fmt.Sprintf("mount %s %s", root, mountRoot)); err != nil {
		return errors.Wrapf(err, "failed to mount %s", root)
	}
	mounts := []struct {
		dev string
		dir string
	}{
		{PartitionPath(o.MainDisk, espPartNum), "boot"},
		{PartitionPath(o.MainDisk, varPartNum), "var"},
		{PartitionPath(o.HomeDisk, homePartNum), "home"},
	}
	for _, m := range mounts {
		target := filepath.Join(mountRoot, m.dir)
		if err := os.MkdirAll(target, 0755); err != nil {
			return errors.Wrapf(err, "failed to create %s", target)
		}
		if _, err := util.RunCommand(fmt.Sprintf("mount %s %s", m.dev, target)); err != nil {
			return errors.Wrapf(err, "failed to mount %s", m.dev)
		}
	}
	return nil
}
