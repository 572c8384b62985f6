//go:build windows

package magnet

import "os/exec"

func command(uri string) *exec.Cmd {
	return exec.Command("powershell", "-NoProfile", "-c", "start "+uri)
}
