package types

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// InstallTemplate
//
//	mainDisk: /dev/nvme0n1
//	homeDisk: /dev/sda
//	rootSize: 50G
//	hostname: workstation
//	timezone: Europe/Berlin
//	locale: en_US.UTF-8
//	packages:
//	- base
//	- linux
//	- linux-firmware
//	- networkmanager
//	recoveryPackages:
//	- base
//	- linux
//	- linux-firmware
type InstallTemplate struct {
	MainDisk         string   `yaml:"mainDisk,omitempty"`
	HomeDisk         string   `yaml:"homeDisk,omitempty"`
	RootSize         string   `yaml:"rootSize,omitempty"`
	Hostname         string   `yaml:"hostname,omitempty"`
	Timezone         string   `yaml:"timezone,omitempty"`
	Locale           string   `yaml:"locale,omitempty"`
	Packages         []string `yaml:"packages,omitempty"`
	RecoveryPackages []string `yaml:"recoveryPackages,omitempty"`
}

// LoadTemplate reads an answers file used to pre-seed the interactive
// prompts. Unknown keys are rejected so a typo does not silently fall
// through to a prompt.
func LoadTemplate(path string) (*InstallTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read template %s", path)
	}
	tpl := &InstallTemplate{}
	if err := yaml.UnmarshalStrict(data, tpl); err != nil {
		return nil, errors.Wrapf(err, "failed to parse template %s", path)
	}
	return tpl, nil
}
