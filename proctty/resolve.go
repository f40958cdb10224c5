// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

// Package proctty resolves a process ID to the device path of its
// controlling terminal.
//
// The resolution reads /proc/<pid>/stat and decodes the tty_nr field
// (the controlling terminal's device number in the kernel's old dev_t
// encoding), then maps the major/minor pair to a /dev path and
// verifies that the path actually carries that device number. There is
// no dependency on ps or any other external binary.
package proctty

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// ErrNoControllingTerminal is returned when a process has no
// controlling terminal, does not exist, or its terminal device cannot
// be mapped to a /dev path. Callers that only need the single
// "no terminal found" outcome match this with errors.Is; the wrapped
// detail distinguishes the causes.
var ErrNoControllingTerminal = errors.New("proctty: no controlling terminal")

// Resolve returns the device path of the controlling terminal of the
// process with the given ID, e.g. "/dev/pts/4".
//
// The returned path is verified: it must exist, be a character device,
// and carry the same device number that /proc reported. This guards
// against the terminal vanishing between the /proc read and the
// caller's open, and against mapping bugs on unusual tty drivers.
func Resolve(pid int) (string, error) {
	if pid <= 0 {
		return "", fmt.Errorf("proctty: invalid pid %d", pid)
	}

	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		// A missing stat file means the process does not exist; both
		// that and a detached process surface the same way to callers.
		return "", fmt.Errorf("%w: reading process %d: %v", ErrNoControllingTerminal, pid, err)
	}

	ttyNr, err := ParseStat(data)
	if err != nil {
		return "", fmt.Errorf("proctty: process %d: %w", pid, err)
	}
	if ttyNr == 0 {
		return "", fmt.Errorf("%w: process %d is not attached to a terminal", ErrNoControllingTerminal, pid)
	}

	path, err := TTYPath(ttyNr)
	if err != nil {
		return "", fmt.Errorf("%w: process %d: %v", ErrNoControllingTerminal, pid, err)
	}

	if err := verifyDevice(path, ttyNr); err != nil {
		return "", fmt.Errorf("%w: process %d: %v", ErrNoControllingTerminal, pid, err)
	}
	return path, nil
}

// ParseStat extracts the tty_nr field from the contents of a
// /proc/<pid>/stat file.
//
// The comm field (second field, in parentheses) may contain spaces and
// parentheses, so fields are counted from the last ')' rather than
// from the start of the line. After comm the fields are: state, ppid,
// pgrp, session, tty_nr.
func ParseStat(data []byte) (ttyNr uint64, err error) {
	closing := bytes.LastIndexByte(data, ')')
	if closing < 0 {
		return 0, errors.New("malformed stat: no comm field")
	}

	fields := bytes.Fields(data[closing+1:])
	if len(fields) < 5 {
		return 0, fmt.Errorf("malformed stat: %d fields after comm, want at least 5", len(fields))
	}

	ttyNr, err = strconv.ParseUint(string(fields[4]), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed tty_nr %q: %w", fields[4], err)
	}
	return ttyNr, nil
}

// TTYPath maps a tty_nr device number to its conventional /dev path.
//
// Handled drivers:
//   - Unix98 pty slaves (major 136–143) → /dev/pts/N
//   - virtual consoles (major 4, minor < 64) → /dev/ttyN
//   - serial ports (major 4, minor ≥ 64) → /dev/ttySN
//
// Anything else (USB serial adapters, vendor consoles) is reported as
// unmapped rather than guessed at.
func TTYPath(ttyNr uint64) (string, error) {
	major, minor := decodeDev(ttyNr)

	switch {
	case major >= 136 && major <= 143:
		// Modern kernels put all pts slaves on major 136 with the pts
		// index as the minor. The 137–143 range is the legacy layout
		// of 256 minors per major.
		return fmt.Sprintf("/dev/pts/%d", (major-136)*256+minor), nil
	case major == 4 && minor < 64:
		return fmt.Sprintf("/dev/tty%d", minor), nil
	case major == 4:
		return fmt.Sprintf("/dev/ttyS%d", minor-64), nil
	default:
		return "", fmt.Errorf("unmapped terminal device %d:%d", major, minor)
	}
}

// decodeDev splits the old-style dev_t encoding used by the tty_nr
// field: minor in bits 0–7 and 20–31, major in bits 8–19.
func decodeDev(n uint64) (major, minor uint32) {
	major = uint32((n >> 8) & 0xfff)
	minor = uint32(n&0xff) | uint32((n>>12)&^uint64(0xff))
	return major, minor
}

// verifyDevice checks that path is a character device carrying the
// same major/minor pair that /proc reported.
func verifyDevice(path string, ttyNr uint64) error {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return fmt.Errorf("terminal device %s: %v", path, err)
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFCHR {
		return fmt.Errorf("%s is not a character device", path)
	}

	major, minor := decodeDev(ttyNr)
	rdev := uint64(stat.Rdev)
	if unix.Major(rdev) != major || unix.Minor(rdev) != minor {
		return fmt.Errorf("%s carries device %d:%d, stat reported %d:%d",
			path, unix.Major(rdev), unix.Minor(rdev), major, minor)
	}
	return nil
}
