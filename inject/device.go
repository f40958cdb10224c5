// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Device is an open read/write handle to a terminal device. The handle
// is owned exclusively by the invocation that opened it and must be
// closed on every exit path — terminal devices are shared system
// resources, and a leaked descriptor can pin a pty slave open long
// after its session ended.
type Device struct {
	file *os.File
	path string
}

// OpenDevice opens the terminal device at path for injection.
//
// The device is opened read/write with O_NOCTTY so that a session
// leader without a controlling terminal does not accidentally acquire
// the target as its own. Paths that cannot be opened, or that do not
// refer to a terminal (regular files, pipes, sockets), return an error
// matching ErrDeviceOpen.
func OpenDevice(path string) (*Device, error) {
	file, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceOpen, err)
	}

	if !term.IsTerminal(int(file.Fd())) {
		file.Close()
		return nil, fmt.Errorf("%w: %s is not a terminal", ErrDeviceOpen, path)
	}

	return &Device{file: file, path: path}, nil
}

// Path returns the device path this handle was opened from.
func (d *Device) Path() string { return d.path }

// Fd returns the raw file descriptor for ioctl use.
func (d *Device) Fd() int { return int(d.file.Fd()) }

// File returns the underlying file. The selftest and the test harness
// read injected bytes back off the slave side of a pty through it.
func (d *Device) File() *os.File { return d.file }

// Close releases the device handle.
func (d *Device) Close() error { return d.file.Close() }

// canonical reports whether the device's line discipline is in
// canonical (line-edited) mode. Used by the auto Enter encoding: a
// canonical terminal gets LF in addition to CR, matching what the
// driver expects to terminate a line.
func (d *Device) canonical() (bool, error) {
	tio, err := unix.IoctlGetTermios(d.Fd(), unix.TCGETS)
	if err != nil {
		return false, fmt.Errorf("reading termios of %s: %w", d.path, err)
	}
	return tio.Lflag&unix.ICANON != 0, nil
}
