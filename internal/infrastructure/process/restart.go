// Package process exposes the operator-invoked full-process replacement.
package process

import (
	"os"
	"syscall"
)

// ReExec replaces the current process image with a fresh copy of itself,
// preserving arguments and environment. In-flight work is sacrificed, not
// drained; the supervisor (systemd, docker) sees an uninterrupted process.
// It only returns on failure.
func ReExec() error {
	bin, err := os.Executable()
	if err != nil {
		return err
	}
	return syscall.Exec(bin, os.Args, os.Environ())
}
