// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

package inject_test

import (
	"bytes"
	"testing"

	"github.com/ttystuff/ttystuff/inject"
)

func TestParseEnter(t *testing.T) {
	for _, name := range []string{"cr", "lf", "crlf", "none", "auto"} {
		enter, err := inject.ParseEnter(name)
		if err != nil {
			t.Errorf("ParseEnter(%q): %v", name, err)
		}
		if string(enter) != name {
			t.Errorf("ParseEnter(%q) = %q", name, enter)
		}
	}
}

func TestParseEnterEmptyDefaultsToCR(t *testing.T) {
	enter, err := inject.ParseEnter("")
	if err != nil {
		t.Fatalf("ParseEnter(\"\"): %v", err)
	}
	if enter != inject.EnterCR {
		t.Fatalf("ParseEnter(\"\") = %q, want cr", enter)
	}
}

func TestParseEnterRejectsUnknown(t *testing.T) {
	if _, err := inject.ParseEnter("return"); err == nil {
		t.Fatal("ParseEnter accepted an unknown encoding")
	}
}

func TestEnterSequences(t *testing.T) {
	cases := []struct {
		enter     inject.Enter
		canonical bool
		want      []byte
	}{
		{inject.EnterCR, false, []byte("\r")},
		{inject.EnterCR, true, []byte("\r")},
		{inject.EnterLF, false, []byte("\n")},
		{inject.EnterCRLF, false, []byte("\r\n")},
		{inject.EnterNone, true, nil},
		// auto: CR always, LF added only for a canonical line
		// discipline.
		{inject.EnterAuto, false, []byte("\r")},
		{inject.EnterAuto, true, []byte("\r\n")},
	}

	for _, tc := range cases {
		got := tc.enter.Sequence(tc.canonical)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("%q.Sequence(%v) = %q, want %q", tc.enter, tc.canonical, got, tc.want)
		}
	}
}
