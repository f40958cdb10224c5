// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

package proctty_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ttystuff/ttystuff/proctty"
)

func TestParseStat(t *testing.T) {
	// Field layout after comm: state ppid pgrp session tty_nr ...
	stat := []byte("1234 (bash) S 1 1234 1234 34820 1234 4194304")

	ttyNr, err := proctty.ParseStat(stat)
	if err != nil {
		t.Fatalf("ParseStat: %v", err)
	}
	if ttyNr != 34820 {
		t.Fatalf("tty_nr = %d, want 34820", ttyNr)
	}
}

func TestParseStatCommWithSpacesAndParens(t *testing.T) {
	// comm is not escaped in /proc; a name like "tmux: server (1)"
	// must not shift the field count.
	stat := []byte("99 (tmux: server (1)) S 1 99 99 34817 99 0")

	ttyNr, err := proctty.ParseStat(stat)
	if err != nil {
		t.Fatalf("ParseStat: %v", err)
	}
	if ttyNr != 34817 {
		t.Fatalf("tty_nr = %d, want 34817", ttyNr)
	}
}

func TestParseStatDetachedProcess(t *testing.T) {
	stat := []byte("7 (kworker) S 2 0 0 0 -1 69238880")

	ttyNr, err := proctty.ParseStat(stat)
	if err != nil {
		t.Fatalf("ParseStat: %v", err)
	}
	if ttyNr != 0 {
		t.Fatalf("tty_nr = %d, want 0 for a detached process", ttyNr)
	}
}

func TestParseStatMalformed(t *testing.T) {
	for _, stat := range []string{"", "1234 bash S 1", "1234 (bash) S"} {
		if _, err := proctty.ParseStat([]byte(stat)); err == nil {
			t.Errorf("ParseStat(%q) accepted malformed input", stat)
		}
	}
}

func TestTTYPath(t *testing.T) {
	cases := []struct {
		ttyNr uint64
		want  string
	}{
		// pts major 136: minor is the pts index, low bits plus the
		// extended field above bit 20.
		{34816, "/dev/pts/0"},
		{34820, "/dev/pts/4"},
		{34816 | 300&0xff | (300&^0xff)<<12, "/dev/pts/300"},
		// legacy pts range: major 137 carries indices 256-511
		{35072, "/dev/pts/256"},
		// virtual consoles and serial ports on major 4
		{1025, "/dev/tty1"},
		{1088, "/dev/ttyS0"},
	}

	for _, tc := range cases {
		got, err := proctty.TTYPath(tc.ttyNr)
		if err != nil {
			t.Errorf("TTYPath(%d): %v", tc.ttyNr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("TTYPath(%d) = %q, want %q", tc.ttyNr, got, tc.want)
		}
	}
}

func TestTTYPathUnmappedMajor(t *testing.T) {
	// major 188 is a USB serial adapter; not a driver this maps.
	if _, err := proctty.TTYPath(188 << 8); err == nil {
		t.Fatal("TTYPath accepted an unmapped major")
	}
}

func TestResolveNonexistentProcess(t *testing.T) {
	// Kernel pid_max caps real pids well below this.
	_, err := proctty.Resolve(1 << 22)
	if !errors.Is(err, proctty.ErrNoControllingTerminal) {
		t.Fatalf("error = %v, want ErrNoControllingTerminal", err)
	}
}

func TestResolveInvalidPID(t *testing.T) {
	for _, pid := range []int{0, -1} {
		if _, err := proctty.Resolve(pid); err == nil {
			t.Errorf("Resolve(%d) accepted an invalid pid", pid)
		}
	}
}

func TestResolveSelf(t *testing.T) {
	// The test process may or may not have a controlling terminal
	// depending on how the suite is run. Either outcome is valid;
	// what must hold is that a successful resolution names an
	// existing pts or tty device.
	path, err := proctty.Resolve(os.Getpid())
	if err != nil {
		if !errors.Is(err, proctty.ErrNoControllingTerminal) {
			t.Fatalf("unexpected error class: %v", err)
		}
		t.Skipf("test process has no controlling terminal: %v", err)
	}

	if !strings.HasPrefix(path, "/dev/") {
		t.Fatalf("resolved path %q is not under /dev", path)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Fatalf("resolved path %q does not exist: %v", path, statErr)
	}
}
