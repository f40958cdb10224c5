// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

package inject_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"golang.org/x/term"

	"github.com/ttystuff/ttystuff/inject"
)

// readTimeout bounds every read-back in this file. Injected bytes are
// in the slave's queue before the ioctl returns, so a timeout means
// the test is broken, not slow.
const readTimeout = 5 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTerminal is a private pty pair with the slave opened as an
// injection Device and switched to raw mode, so injected carriage
// returns read back verbatim and nothing echoes to the master.
type testTerminal struct {
	master *os.File
	device *inject.Device
}

func openTestTerminal(t *testing.T) *testTerminal {
	t.Helper()

	master, slavePath, err := inject.AllocatePTY()
	if err != nil {
		t.Fatalf("AllocatePTY: %v", err)
	}
	t.Cleanup(func() { master.Close() })

	device, err := inject.OpenDevice(slavePath)
	if err != nil {
		t.Fatalf("OpenDevice(%s): %v", slavePath, err)
	}
	t.Cleanup(func() { device.Close() })

	if _, err := term.MakeRaw(device.Fd()); err != nil {
		t.Fatalf("MakeRaw(%s): %v", slavePath, err)
	}

	return &testTerminal{master: master, device: device}
}

// requireSupport probes TIOCSTI on this terminal with a bare Enter
// press and drains it. Skips the test on hosts that refuse the ioctl
// (no CAP_SYS_ADMIN on a non-controlling tty, or a kernel with legacy
// TIOCSTI disabled).
func (tt *testTerminal) requireSupport(t *testing.T) {
	t.Helper()

	injector := inject.NewInjector(tt.device, inject.Options{Logger: discardLogger()})
	if err := injector.InjectLine(context.Background(), ""); err != nil {
		if inject.IsUnsupported(err) {
			t.Skipf("TIOCSTI not available on this host: %v", err)
		}
		t.Fatalf("probe injection: %v", err)
	}
	if got := tt.read(t, 1); got[0] != '\r' {
		t.Fatalf("probe read back %q, want carriage return", got)
	}
}

// inject pushes text with the given options and fails the test on any
// error.
func (tt *testTerminal) inject(t *testing.T, text string, options inject.Options) {
	t.Helper()
	if options.Logger == nil {
		options.Logger = discardLogger()
	}
	injector := inject.NewInjector(tt.device, options)
	if err := injector.InjectLine(context.Background(), text); err != nil {
		t.Fatalf("InjectLine(%q): %v", text, err)
	}
}

// read returns exactly n bytes from the slave side within readTimeout.
func (tt *testTerminal) read(t *testing.T, n int) []byte {
	t.Helper()

	if err := tt.device.File().SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	buffer := make([]byte, n)
	if _, err := io.ReadFull(tt.device.File(), buffer); err != nil {
		t.Fatalf("reading %d bytes back: %v", n, err)
	}
	return buffer
}
