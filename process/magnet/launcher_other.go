//go:build !windows && !darwin

package magnet

import "os/exec"

func command(uri string) *exec.Cmd {
	return exec.Command("xdg-open", uri)
}
