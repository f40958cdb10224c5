// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"errors"

	"golang.org/x/sys/unix"
)

var (
	// ErrDeviceOpen is returned when the terminal device cannot be
	// opened for injection: permission denied, the device vanished,
	// or the path does not refer to a terminal.
	ErrDeviceOpen = errors.New("inject: cannot open terminal device")

	// ErrInjection is returned when a TIOCSTI push fails partway
	// through a line. Characters already delivered stay delivered;
	// there is no rollback of another terminal's input queue.
	ErrInjection = errors.New("inject: injection failed")

	// ErrUnsupported is returned by SelfTest when TIOCSTI does not
	// work for this process on this host, as opposed to failing on a
	// particular device.
	ErrUnsupported = errors.New("inject: TIOCSTI not available on this host")
)

// IsUnsupported reports whether err is an injection failure caused by
// the host refusing TIOCSTI outright rather than by the specific
// device:
//
//   - EPERM: the device is not the caller's controlling terminal and
//     the caller lacks CAP_SYS_ADMIN
//   - EIO: the kernel was built or configured without legacy TIOCSTI
//     (dev.tty.legacy_tiocsti=0 on Linux ≥ 6.2)
//   - ENOTTY/EINVAL: the driver does not implement the ioctl
//
// Tests use this to skip on hosts where injection cannot be exercised.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported) ||
		errors.Is(err, unix.EPERM) ||
		errors.Is(err, unix.EIO) ||
		errors.Is(err, unix.ENOTTY) ||
		errors.Is(err, unix.EINVAL)
}
