//go:build linux

package render

import "golang.org/x/sys/unix"

// termios requests differ between Linux and the BSDs.
const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETSF
)
