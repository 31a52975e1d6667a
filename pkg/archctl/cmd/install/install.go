package install

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/archmetal/archctl/pkg/util"
)

const mountRoot = "/mnt"

var efiVarsDir = "/sys/firmware/efi/efivars"

var installerDependencies = []string{
	"gptfdisk",
	"dosfstools",
	"e2fsprogs",
	"squashfs-tools",
	"arch-install-scripts",
}

var InstallCmd = &cobra.Command{
	Use:   "install",
	Short: "install the two-disk system",
}

func init() {
	InstallCmd.AddCommand(NewRunCmd())
}

func NewRunCmd() *cobra.Command {
	option := NewInstallOptions()
	cmd := &cobra.Command{
		Use:          "run",
		Short:        "run the full installation pipeline",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := option.Validate(); err != nil {
				return errors.Wrap(err, "install options are invalid")
			}
			if err := option.Complete(); err != nil {
				return err
			}
			return option.RunInstall()
		},
	}

	fs := cmd.Flags()
	option.AddFlags(fs)
	return cmd
}

type installStep struct {
	name string
	run  func() error
}

// RunInstall executes the pipeline in order and halts on the first
// failure. There is no rollback; a mid-run failure leaves the disks
// partially provisioned.
func (o *InstallOptions) RunInstall() error {
	steps := []installStep{
		{"install dependencies", o.installDependencies},
		{"partition disks", o.partitionDisks},
		{"format filesystems", o.formatFilesystems},
		{"mount target hierarchy", o.mountTarget},
		{"build recovery image", o.buildRecoveryImage},
		{"install base system", o.installSystem},
		{"configure bootloader", o.configureBootloader},
		{"configure system", o.configureSystem},
	}
	for i, step := range steps {
		klog.Infof("[%d/%d] %s", i+1, len(steps), step.name)
		if err := step.run(); err != nil {
			return errors.Wrapf(err, "failed to %s", step.name)
		}
	}
	klog.Info("installation finished, reboot into the new system")
	return nil
}

func checkUEFI() error {
	if _, err := os.Stat(efiVarsDir); err != nil {
		return errors.Errorf("system is not booted in UEFI mode (%s missing)", efiVarsDir)
	}
	return nil
}

func (o *InstallOptions) installDependencies() error {
	_, err := util.RunCommand(fmt.Sprintf("pacman -Sy --noconfirm --needed %s",
		strings.Join(installerDependencies, " ")))
	return err
}
