package recovery

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/archmetal/archctl/pkg/archctl/types"
)

type RecoveryOptions struct {
	Device     string
	ESPPath    string
	Packages   []string
	ConfigFile string
}

func NewRecoveryOptions() *RecoveryOptions {
	return &RecoveryOptions{}
}

func (o *RecoveryOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Device, "device", "", "recovery partition device, e.g. /dev/nvme0n1p2")
	fs.StringVar(&o.ESPPath, "esp-path", "/boot", "mount point of the EFI system partition")
	fs.StringSliceVar(&o.Packages, "packages", nil, "package set for the recovery image")
	fs.StringVar(&o.ConfigFile, "config", "", "YAML answers file with recoveryPackages")
}

func (o *RecoveryOptions) Validate() error {
	allErrs := field.ErrorList{}
	if o.Device == "" {
		allErrs = append(allErrs, field.Required(field.NewPath("device"), "recovery partition device is required"))
	}
	if o.ESPPath == "" {
		allErrs = append(allErrs, field.Required(field.NewPath("esp-path"), "EFI system partition path is required"))
	}
	return allErrs.ToAggregate()
}

func (o *RecoveryOptions) Complete() (err error) {
	if o.ConfigFile != "" {
		tpl, err := types.LoadTemplate(o.ConfigFile)
		if err != nil {
			return err
		}
		if len(o.Packages) == 0 {
			o.Packages = tpl.RecoveryPackages
		}
	}
	if _, err := os.Stat(o.Device); err != nil {
		return errors.Wrapf(err, "recovery device %s is not accessible", o.Device)
	}
	return nil
}
