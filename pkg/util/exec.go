package util

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"k8s.io/klog/v2"
)

func RunCommand(cmd string) (string, error) {
	klog.V(4).Infof("Exec command [%s]", cmd)
	output, err := exec.Command("/bin/sh", "-c", cmd).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("exec [%s], output: %s, err: %v", cmd, string(output), err)
	}
	result := strings.TrimSuffix(string(output), "\n")
	return result, nil
}

// RunInteractive attaches the controlling terminal to the command, for
// tools that do their own prompting (passwd inside the chroot).
func RunInteractive(name string, args ...string) error {
	klog.V(4).Infof("Exec interactive command [%s %s]", name, strings.Join(args, " "))
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
