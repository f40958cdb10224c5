// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

package inject_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ttystuff/ttystuff/inject"
)

func TestSelfTest(t *testing.T) {
	err := inject.SelfTest(context.Background(), discardLogger())
	if errors.Is(err, inject.ErrUnsupported) {
		t.Skipf("TIOCSTI not available on this host: %v", err)
	}
	if err != nil {
		t.Fatalf("SelfTest: %v", err)
	}
}

func TestAllocatePTY(t *testing.T) {
	master, slavePath, err := inject.AllocatePTY()
	if err != nil {
		t.Fatalf("AllocatePTY: %v", err)
	}
	defer master.Close()

	// The slave must be openable as an injection device, which also
	// verifies it is a real terminal.
	device, err := inject.OpenDevice(slavePath)
	if err != nil {
		t.Fatalf("OpenDevice(%s): %v", slavePath, err)
	}
	device.Close()
}
