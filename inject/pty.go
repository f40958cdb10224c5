// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// AllocatePTY allocates a pty master/slave pair using the Linux devpts
// interface and returns the master plus the filesystem path of the
// slave. The caller closes the master; closing it hangs up the slave.
//
// The selftest and the package tests inject into the slave of a
// freshly allocated pair and read the bytes back, observing exactly
// what a process on that terminal would have received as input.
func AllocatePTY() (master *os.File, slavePath string, err error) {
	master, err = os.OpenFile("/dev/ptmx", os.O_RDWR|syscall.O_NOCTTY, 0)
	if err != nil {
		return nil, "", fmt.Errorf("open /dev/ptmx: %w", err)
	}

	fd := int(master.Fd())

	ptyNumber, err := unix.IoctlGetInt(fd, unix.TIOCGPTN)
	if err != nil {
		master.Close()
		return nil, "", fmt.Errorf("get pty number (TIOCGPTN): %w", err)
	}

	if err := unix.IoctlSetPointerInt(fd, unix.TIOCSPTLCK, 0); err != nil {
		master.Close()
		return nil, "", fmt.Errorf("unlock pty slave (TIOCSPTLCK): %w", err)
	}

	return master, fmt.Sprintf("/dev/pts/%d", ptyNumber), nil
}
