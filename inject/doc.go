// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

// Package inject delivers text into a terminal's input queue via the
// Linux TIOCSTI ioctl, as if the characters had been typed on the
// keyboard. Injection happens at the device-driver level, ahead of the
// line discipline's editing and echo processing — it is not a write to
// the terminal's display, and not a pipe to the target's stdin.
//
// The package is deliberately linear: open the device, push bytes in
// order, push the Enter encoding, close. Characters are delivered
// strictly in input order. Nothing here serializes concurrent
// injectors against the same device; interleaved pushes from two
// processes would corrupt the resulting line, and avoiding that is the
// operator's job.
//
// TIOCSTI is a privileged operation: it requires the target terminal
// to be the caller's controlling terminal, or CAP_SYS_ADMIN. Kernels
// 6.2 and later additionally gate it behind the dev.tty.legacy_tiocsti
// sysctl. [IsUnsupported] classifies the resulting errors so tests and
// the selftest command can report "this host can't do that" distinctly
// from a genuine failure.
package inject
