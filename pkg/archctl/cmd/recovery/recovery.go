package recovery

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/archmetal/archctl/pkg/archctl/cmd/install"
)

var RecoveryCmd = &cobra.Command{
	Use:   "recovery",
	Short: "manage the on-disk recovery image",
}

func init() {
	RecoveryCmd.AddCommand(NewInitCmd())
}

func NewInitCmd() *cobra.Command {
	option := NewRecoveryOptions()
	cmd := &cobra.Command{
		Use:          "init",
		Short:        "rebuild the recovery image and its boot entry",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := option.Validate(); err != nil {
				return errors.Wrap(err, "recovery options are invalid")
			}
			if err := option.Complete(); err != nil {
				return err
			}
			return option.RunInit()
		},
	}

	fs := cmd.Flags()
	option.AddFlags(fs)
	return cmd
}

// RunInit rebuilds the recovery image on an already-partitioned
// system and rewrites the recovery boot entry.
func (o *RecoveryOptions) RunInit() error {
	klog.V(4).Info("rebuild recovery image begin")

	scratch, err := os.MkdirTemp("/var/tmp", "archctl-recoveryfs-")
	if err != nil {
		return errors.Wrap(err, "failed to create scratch tree")
	}

	packages := o.Packages
	if len(packages) == 0 {
		packages = install.DefaultRecoveryPackages
	}
	if err := install.BuildRecoveryImage(o.Device, o.ESPPath, scratch, packages); err != nil {
		return err
	}

	partUUID, err := install.PartitionUUID(o.Device)
	if err != nil {
		return err
	}
	entry := filepath.Join(o.ESPPath, "loader", "entries", "recovery.conf")
	if err := os.WriteFile(entry, []byte(install.RenderRecoveryEntry(partUUID)), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", entry)
	}

	klog.V(4).Info("rebuild recovery image end")
	return nil
}
