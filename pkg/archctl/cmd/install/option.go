package install

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/archmetal/archctl/pkg/archctl/types"
)

const (
	// confirmPhrase must be typed verbatim before any disk is touched.
	confirmPhrase = "DESTROY"

	defaultHostname = "archlinux"
	defaultTimezone = "UTC"
	defaultLocale   = "en_US.UTF-8"
)

type InstallOptions struct {
	MainDisk         string
	HomeDisk         string
	RootSize         string
	Hostname         string
	Timezone         string
	Locale           string
	Packages         []string
	RecoveryPackages []string
	ConfigFile       string

	in *bufio.Reader
}

func NewInstallOptions() *InstallOptions {
	return &InstallOptions{}
}

func (o *InstallOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.MainDisk, "main-disk", "", "disk holding boot, recovery, var and root, e.g. /dev/nvme0n1 (prompted if unset)")
	fs.StringVar(&o.HomeDisk, "home-disk", "", "disk holding /home, e.g. /dev/sda (prompted if unset)")
	fs.StringVar(&o.RootSize, "root-size", "", "root partition size, e.g. 50G (prompted if unset)")
	fs.StringVar(&o.Hostname, "hostname", "", "hostname for the installed system (default "+defaultHostname+")")
	fs.StringVar(&o.Timezone, "timezone", "", "timezone for the installed system (default "+defaultTimezone+")")
	fs.StringVar(&o.Locale, "locale", "", "locale for the installed system (default "+defaultLocale+")")
	fs.StringSliceVar(&o.Packages, "packages", nil, "package set for the main system")
	fs.StringSliceVar(&o.RecoveryPackages, "recovery-packages", nil, "package set for the recovery image")
	fs.StringVar(&o.ConfigFile, "config", "", "YAML answers file pre-seeding the prompts")
}

// Validate checks flag syntax; the disk selection itself is validated
// after the prompts in Complete.
func (o *InstallOptions) Validate() error {
	allErrs := field.ErrorList{}
	if o.RootSize != "" && !IsValidSize(o.RootSize) {
		allErrs = append(allErrs, field.Invalid(field.NewPath("root-size"), o.RootSize,
			"must be a number followed by M, G or T"))
	}
	return allErrs.ToAggregate()
}

// Complete fills in the remaining answers. Everything here is
// read-only: template load, firmware check, prompts, validation and
// the confirmation gate all run before the first destructive command.
func (o *InstallOptions) Complete() error {
	if o.in == nil {
		o.in = bufio.NewReader(os.Stdin)
	}
	if err := checkUEFI(); err != nil {
		return err
	}
	if o.ConfigFile != "" {
		tpl, err := types.LoadTemplate(o.ConfigFile)
		if err != nil {
			return err
		}
		o.applyTemplate(tpl)
	}
	if o.Hostname == "" {
		o.Hostname = defaultHostname
	}
	if o.Timezone == "" {
		o.Timezone = defaultTimezone
	}
	if o.Locale == "" {
		o.Locale = defaultLocale
	}
	if err := o.promptSelection(); err != nil {
		return err
	}
	if err := o.validateSelection(); err != nil {
		return err
	}
	return o.confirmDestruction()
}

// applyTemplate fills fields the flags left empty; flags win.
func (o *InstallOptions) applyTemplate(tpl *types.InstallTemplate) {
	if o.MainDisk == "" {
		o.MainDisk = tpl.MainDisk
	}
	if o.HomeDisk == "" {
		o.HomeDisk = tpl.HomeDisk
	}
	if o.RootSize == "" {
		o.RootSize = tpl.RootSize
	}
	if o.Hostname == "" {
		o.Hostname = tpl.Hostname
	}
	if o.Timezone == "" {
		o.Timezone = tpl.Timezone
	}
	if o.Locale == "" {
		o.Locale = tpl.Locale
	}
	if len(o.Packages) == 0 {
		o.Packages = tpl.Packages
	}
	if len(o.RecoveryPackages) == 0 {
		o.RecoveryPackages = tpl.RecoveryPackages
	}
}

func (o *InstallOptions) promptSelection() error {
	if o.MainDisk != "" && o.HomeDisk != "" && o.RootSize != "" {
		return nil
	}
	if err := printDiskListing(); err != nil {
		return err
	}
	var err error
	if o.MainDisk == "" {
		if o.MainDisk, err = o.prompt("Main disk (boot/recovery/var/root), e.g. /dev/nvme0n1"); err != nil {
			return err
		}
	}
	if o.HomeDisk == "" {
		if o.HomeDisk, err = o.prompt("Home disk, e.g. /dev/sda"); err != nil {
			return err
		}
	}
	if o.RootSize == "" {
		if o.RootSize, err = o.prompt("Root partition size, e.g. 50G"); err != nil {
			return err
		}
	}
	return nil
}

func (o *InstallOptions) prompt(label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := o.in.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}

func (o *InstallOptions) validateSelection() error {
	allErrs := field.ErrorList{}
	if o.MainDisk == "" {
		allErrs = append(allErrs, field.Required(field.NewPath("main-disk"), "main disk must be selected"))
	}
	if o.HomeDisk == "" {
		allErrs = append(allErrs, field.Required(field.NewPath("home-disk"), "home disk must be selected"))
	}
	if o.MainDisk != "" && o.MainDisk == o.HomeDisk {
		allErrs = append(allErrs, field.Invalid(field.NewPath("home-disk"), o.HomeDisk,
			"home disk must differ from the main disk"))
	}
	if o.RootSize == "" {
		allErrs = append(allErrs, field.Required(field.NewPath("root-size"), "root partition size must be selected"))
	} else if !IsValidSize(o.RootSize) {
		allErrs = append(allErrs, field.Invalid(field.NewPath("root-size"), o.RootSize,
			"must be a number followed by M, G or T"))
	}
	return allErrs.ToAggregate()
}

// confirmDestruction requires the exact phrase, case-sensitive. There
// is deliberately no flag override for this.
func (o *InstallOptions) confirmDestruction() error {
	fmt.Printf("About to wipe %s and %s. ALL DATA ON BOTH DISKS WILL BE LOST.\n", o.MainDisk, o.HomeDisk)
	fmt.Printf("Type %q to continue: ", confirmPhrase)
	line, err := o.in.ReadString('\n')
	if err != nil && line == "" {
		return errors.Wrap(err, "failed to read confirmation")
	}
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	if line != confirmPhrase {
		return errors.Errorf("confirmation %q does not match %q, aborting", line, confirmPhrase)
	}
	return nil
}
