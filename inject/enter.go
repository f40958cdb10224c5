// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

package inject

import "fmt"

// Enter selects the line terminator injected after the text. The
// carriage return alone is the baseline contract — it is what a
// keyboard's Enter key produces — but some line disciplines and
// full-screen programs want other encodings.
type Enter string

const (
	// EnterCR injects a single carriage return. The default.
	EnterCR Enter = "cr"

	// EnterLF injects a single line feed.
	EnterLF Enter = "lf"

	// EnterCRLF injects carriage return then line feed.
	EnterCRLF Enter = "crlf"

	// EnterNone injects no terminator; the text is left pending in
	// the input queue, as if typed but not yet submitted.
	EnterNone Enter = "none"

	// EnterAuto injects a carriage return, plus a line feed when the
	// device is in canonical mode.
	EnterAuto Enter = "auto"
)

// ParseEnter validates and normalizes an Enter encoding name.
func ParseEnter(s string) (Enter, error) {
	switch Enter(s) {
	case EnterCR, EnterLF, EnterCRLF, EnterNone, EnterAuto:
		return Enter(s), nil
	case "":
		return EnterCR, nil
	default:
		return "", fmt.Errorf("inject: unknown enter encoding %q (want cr, lf, crlf, none, or auto)", s)
	}
}

// Sequence returns the terminator bytes for this encoding. canonical
// is only consulted by EnterAuto.
func (e Enter) Sequence(canonical bool) []byte {
	switch e {
	case EnterLF:
		return []byte{'\n'}
	case EnterCRLF:
		return []byte{'\r', '\n'}
	case EnterNone:
		return nil
	case EnterAuto:
		if canonical {
			return []byte{'\r', '\n'}
		}
		return []byte{'\r'}
	default:
		return []byte{'\r'}
	}
}
