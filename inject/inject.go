// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

package inject

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ttystuff/ttystuff/lib/clock"
)

// Options configures an Injector. The zero value is usable: no
// inter-character delay, carriage-return Enter, real clock, default
// logger.
type Options struct {
	// Delay is the pause between consecutive TIOCSTI pushes. The
	// terminal driver's input queue is finite; a millisecond of
	// pacing keeps a long line from flooding it. Zero disables
	// pacing. This is a throughput knob, not a correctness
	// requirement.
	Delay time.Duration

	// Enter is the line terminator encoding. Empty means EnterCR.
	Enter Enter

	// Clock drives the inter-character pacing. Nil means the real
	// clock; tests inject a fake.
	Clock clock.Clock

	// Logger receives debug-level progress records. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// Injector pushes lines of text into one terminal device. It holds no
// state beyond its configuration; injecting the same line twice
// produces two lines on the target, by design — this models keystroke
// simulation, not a state update.
type Injector struct {
	device *Device
	delay  time.Duration
	enter  Enter
	clock  clock.Clock
	logger *slog.Logger
}

// NewInjector returns an Injector that targets the given open device.
// The caller retains ownership of the device and closes it.
func NewInjector(device *Device, options Options) *Injector {
	enter := options.Enter
	if enter == "" {
		enter = EnterCR
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Injector{
		device: device,
		delay:  options.Delay,
		enter:  enter,
		clock:  clk,
		logger: logger,
	}
}

// InjectLine delivers text into the device's input queue byte by byte,
// in order, followed by the configured Enter encoding. Empty text is
// allowed and injects only the terminator — a bare simulated Enter
// press.
//
// The context bounds the whole operation; cancellation or deadline
// expiry between pushes aborts with an error matching ErrInjection.
// A push that fails partway also returns ErrInjection. Characters
// already delivered before the failure stay in the target's queue;
// an external, irreversible side effect cannot be rolled back.
func (in *Injector) InjectLine(ctx context.Context, text string) error {
	terminator, err := in.terminator()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInjection, err)
	}

	payload := append([]byte(text), terminator...)
	fd := in.device.Fd()

	for i, b := range payload {
		if i > 0 {
			if err := in.pause(ctx); err != nil {
				return fmt.Errorf("%w: after %d of %d bytes: %w", ErrInjection, i, len(payload), err)
			}
		}
		if err := push(fd, b); err != nil {
			return fmt.Errorf("%w: byte %d of %d on %s: %w", ErrInjection, i+1, len(payload), in.device.Path(), err)
		}
	}

	in.logger.Debug("injected line",
		"device", in.device.Path(),
		"text_bytes", len(text),
		"enter", string(in.enter),
		"total_bytes", len(payload))
	return nil
}

// terminator resolves the Enter encoding to bytes, consulting the
// device's termios only when the encoding is auto.
func (in *Injector) terminator() ([]byte, error) {
	canonical := false
	if in.enter == EnterAuto {
		var err error
		canonical, err = in.device.canonical()
		if err != nil {
			return nil, err
		}
	}
	return in.enter.Sequence(canonical), nil
}

// pause waits the configured delay or until the context ends,
// whichever comes first.
func (in *Injector) pause(ctx context.Context) error {
	if in.delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-in.clock.After(in.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// push stuffs a single byte into the terminal's input queue. TIOCSTI
// takes a pointer to the byte; IoctlSetPointerInt passes a pointer to
// an int-sized buffer holding the value, which the driver reads one
// byte through. EINTR is retried — a signal between two pushed
// characters must not abort the line.
func push(fd int, b byte) error {
	for {
		err := unix.IoctlSetPointerInt(fd, unix.TIOCSTI, int(b))
		if err == nil {
			return nil
		}
		if err == unix.EINTR {
			continue
		}
		return err
	}
}
