// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/term"
)

// selfTestProbe is the line injected during the self test. Chosen to
// be unambiguous in a captured byte stream.
const selfTestProbe = "ttystuff-selftest-probe"

// selfTestReadTimeout bounds the read-back of the probe line. The
// bytes land in the slave's input queue synchronously with the ioctl,
// so this only fires when something is seriously wrong.
const selfTestReadTimeout = 5 * time.Second

// SelfTest verifies end to end that TIOCSTI injection works on this
// host: it allocates a private pty pair, puts the slave in raw mode,
// injects a probe line, and reads it back off the slave, checking
// byte-exact order of probe text plus carriage return.
//
// Returns nil on success, an error matching ErrUnsupported when the
// host refuses TIOCSTI (missing capability or kernel support), and a
// descriptive error for anything else.
func SelfTest(ctx context.Context, logger *slog.Logger) error {
	master, slavePath, err := AllocatePTY()
	if err != nil {
		return fmt.Errorf("allocate pty: %w", err)
	}
	defer master.Close()

	device, err := OpenDevice(slavePath)
	if err != nil {
		return err
	}
	defer device.Close()

	// Raw mode, so the injected carriage return comes back verbatim
	// instead of being translated to a newline by ICRNL, and nothing
	// is echoed to the master side.
	previousState, err := term.MakeRaw(device.Fd())
	if err != nil {
		return fmt.Errorf("raw mode on %s: %w", slavePath, err)
	}
	defer term.Restore(device.Fd(), previousState)

	injector := NewInjector(device, Options{Logger: logger})
	if err := injector.InjectLine(ctx, selfTestProbe); err != nil {
		if IsUnsupported(err) {
			return fmt.Errorf("%w: %w", ErrUnsupported, err)
		}
		return err
	}

	want := []byte(selfTestProbe + "\r")
	got := make([]byte, len(want))

	if err := device.File().SetReadDeadline(time.Now().Add(selfTestReadTimeout)); err != nil {
		return fmt.Errorf("read deadline on %s: %w", slavePath, err)
	}
	if _, err := io.ReadFull(device.File(), got); err != nil {
		return fmt.Errorf("reading probe back from %s: %w", slavePath, err)
	}

	if !bytes.Equal(got, want) {
		return fmt.Errorf("probe round trip mismatch: injected %q, observed %q", want, got)
	}

	logger.Info("selftest passed",
		"device", slavePath,
		"bytes", len(want))
	return nil
}
