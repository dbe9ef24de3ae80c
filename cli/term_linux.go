//go:build linux

package cli

import "golang.org/x/sys/unix"

// isTerminal reports whether fd is an interactive terminal, probed with
// the TCGETS ioctl: it succeeds only on a real tty.
func isTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	return err == nil
}
