package app

import (
	"flag"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/component-base/version/verflag"

	"github.com/archmetal/archctl/pkg/archctl/cmd/install"
	"github.com/archmetal/archctl/pkg/archctl/cmd/recovery"
)

func NewArchCtlCommand() *cobra.Command {
	cmds := &cobra.Command{
		Use:   "archctl",
		Short: "archctl provisions a two-disk Arch Linux system",
		Run: func(cmd *cobra.Command, _ []string) {
			verflag.PrintAndExitIfRequested()
			cliflag.PrintFlags(cmd.Flags())
			cmd.Help()
		},
	}

	// install, recovery
	cmds.AddCommand(install.InstallCmd)
	cmds.AddCommand(recovery.RecoveryCmd)

	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Set("logtostderr", "false")
	pflag.Set("alsologtostderr", "true")
	pflag.Set("log_file", fmt.Sprintf("%s/archctl.log", "/tmp"))

	return cmds
}
