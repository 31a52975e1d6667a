package main

import (
	"os"

	"k8s.io/component-base/logs"

	"github.com/archmetal/archctl/cmd/archctl/app"
)

const (
	bashCompleteFile = "/etc/bash_completion.d/archctl.bash_complete"
)

func main() {
	logs.InitLogs()
	defer logs.FlushLogs()

	command := app.NewArchCtlCommand()
	command.GenBashCompletionFile(bashCompleteFile)
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
