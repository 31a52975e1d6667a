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

var defaultPackages = []string{"base", "linux", "linux-firmware", "networkmanager"}

func (o *InstallOptions) installSystem() error {
	packages := o.Packages
	if len(packages) == 0 {
		packages = defaultPackages
	}
	if _, err := util.RunCommand(fmt.Sprintf("pacstrap %s %s", mountRoot, strings.Join(packages, " "))); err != nil {
		return errors.Wrap(err, "failed to bootstrap the base system")
	}
	if _, err := util.RunCommand(fmt.Sprintf("genfstab -U %s >> %s/etc/fstab", mountRoot, mountRoot)); err != nil {
		return errors.Wrap(err, "failed to generate fstab")
	}
	return nil
}

func (o *InstallOptions) configureSystem() error {
	if err := os.WriteFile(filepath.Join(mountRoot, "etc", "hostname"), []byte(o.Hostname+"\n"), 0644); err != nil {
		return errors.Wrap(err, "failed to write hostname")
	}
	if err := chroot(fmt.Sprintf("ln -sf /usr/share/zoneinfo/%s /etc/localtime", o.Timezone)); err != nil {
		return err
	}
	if err := chroot("hwclock --systohc"); err != nil {
		return err
	}

	localeGen := filepath.Join(mountRoot, "etc", "locale.gen")
	f, err := os.OpenFile(localeGen, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", localeGen)
	}
	_, err = f.WriteString(o.Locale + " UTF-8\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "failed to append to %s", localeGen)
	}
	if err := chroot("locale-gen"); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(mountRoot, "etc", "locale.conf"), []byte("LANG="+o.Locale+"\n"), 0644); err != nil {
		return errors.Wrap(err, "failed to write locale.conf")
	}

	if err := chroot("systemctl enable NetworkManager"); err != nil {
		return err
	}

	klog.Info("set the root password for the installed system")
	if err := util.RunInteractive("arch-chroot", mountRoot, "passwd"); err != nil {
		return errors.Wrap(err, "failed to set the root password")
	}
	return nil
}

func chroot(cmd string) error {
	if _, err := util.RunCommand(fmt.Sprintf("arch-chroot %s %s", mountRoot, cmd)); err != nil {
		return errors.Wrapf(err, "failed to run [%s] in the target", cmd)
	}
	return nil
}
