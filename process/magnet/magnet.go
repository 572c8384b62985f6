// Package magnet hands magnet URIs over to the system's default torrent client.
package magnet

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
)

const scheme = "magnet:"

// IsApplicable reports whether text is a magnet URI.
func IsApplicable(text string) bool {
	return strings.HasPrefix(text, scheme)
}

// Run starts the platform handler for uri without waiting for it.
// Only a failure to spawn the handler is reported.
func Run(uri string) error {
	return start(command(uri))
}

func start(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("magnet: start %s: %w", cmd.Path, err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("magnet: handler exited: %v", err)
		}
	}()
	return nil
}
