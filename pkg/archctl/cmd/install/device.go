package install

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/archmetal/archctl/pkg/util"
)

type BlockDevices struct {
	BlockDevices []BlockDevice `json:"blockdevices"`
}

type BlockDevice struct {
	Device
	Children []Device `json:"children,omitempty"`
}

type Device struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Size       int64  `json:"size"` // unit: byte
	FStype     string `json:"fstype"`
	UUID       string `json:"uuid"`
	Type       string `json:"type"` // type: disk
	MountPoint string `json:"mountpoint"`
	Rota       bool   `json:"rota"` // rotational, true: HDD, false: SSD
}

// listDiskDevices execute command lsblk to get disk device
func listDiskDevices() ([]BlockDevice, error) {
	var block BlockDevices
	output, err := util.RunCommand("lsblk -J -b -o NAME,LABEL,SIZE,FSTYPE,UUID,TYPE,MOUNTPOINT,ROTA")
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal([]byte(output), &block)
	if err != nil {
		return nil, err
	}

	disks := make([]BlockDevice, 0)
	for _, device := range block.BlockDevices {
		if device.Type == "disk" {
			disks = append(disks, device)
		}
	}

	if len(disks) == 0 {
		return nil, errors.New("no disk devices found")
	}
	return disks, nil
}

func printDiskListing() error {
	disks, err := listDiskDevices()
	if err != nil {
		return err
	}
	fmt.Println("Available disks:")
	for _, d := range disks {
		kind := "SSD"
		if d.Rota {
			kind = "HDD"
		}
		fmt.Printf("  /dev/%-12s %10s  %s\n", d.Name, humanSize(d.Size), kind)
	}
	return nil
}

// pPrefixes are disk name families whose partitions carry a "p"
// separator between the disk name and the partition number.
var pPrefixes = []string{"nvme", "mmcblk", "nbd", "loop"}

// PartitionPath derives the device path of partition num on disk.
// /dev/nvme0n1 + 2 => /dev/nvme0n1p2; /dev/sda + 1 => /dev/sda1
func PartitionPath(disk string, num int) string {
	name := path.Base(disk)
	for _, prefix := range pPrefixes {
		if strings.HasPrefix(name, prefix) {
			return fmt.Sprintf("%sp%d", disk, num)
		}
	}
	return fmt.Sprintf("%s%d", disk, num)
}

// FilesystemUUID returns the filesystem UUID of a formatted device.
func FilesystemUUID(device string) (string, error) {
	uuid, err := util.RunCommand(fmt.Sprintf("blkid -s UUID -o value %s", device))
	if err != nil {
		return "", errors.Wrapf(err, "failed to query filesystem UUID of %s", device)
	}
	return uuid, nil
}

// PartitionUUID returns the GPT partition UUID of a device. Unlike the
// filesystem UUID it exists even when the partition holds no
// filesystem, which is the case for the raw squashfs partition.
func PartitionUUID(device string) (string, error) {
	uuid, err := util.RunCommand(fmt.Sprintf("blkid -s PARTUUID -o value %s", device))
	if err != nil {
		return "", errors.Wrapf(err, "failed to query partition UUID of %s", device)
	}
	return uuid, nil
}
