//go:build darwin

package magnet

import "os/exec"

func command(uri string) *exec.Cmd {
	return exec.Command("open", uri)
}
