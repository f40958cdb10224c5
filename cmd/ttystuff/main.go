// Copyright 2026 The TTYStuff Authors
// SPDX-License-Identifier: Apache-2.0

// ttystuff injects keystrokes into another process's terminal.
//
// Usage:
//
//	ttystuff send [flags] <device-path|pid> <text>
//	ttystuff resolve <pid>
//	ttystuff selftest
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/ttystuff/ttystuff/inject"
	"github.com/ttystuff/ttystuff/lib/config"
	"github.com/ttystuff/ttystuff/lib/version"
	"github.com/ttystuff/ttystuff/proctty"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Set up logging.
	logLevel := slog.LevelInfo
	if os.Getenv("TTYSTUFF_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "send":
		err = sendCmd(args, logger)
	case "resolve":
		err = resolveCmd(args)
	case "selftest":
		err = selftestCmd(args, logger)
	case "version", "--version", "-v":
		version.Print("ttystuff")
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		var silent silentExitError
		if errors.As(err, &silent) {
			os.Exit(silent.code)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// silentExitError carries an exit code for failure paths that have
// already printed their own message (usage lines, the "No terminal
// found" report).
type silentExitError struct {
	code int
}

func (e silentExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func printUsage() {
	fmt.Print(`ttystuff - Inject keystrokes into another process's terminal

USAGE
    ttystuff <command> [flags] [args...]

COMMANDS
    send      Inject a line of text into a terminal
    resolve   Print the controlling terminal of a process
    selftest  Verify TIOCSTI injection works on this host
    version   Show version

EXAMPLES
    # Type "ls -la" plus Enter on a specific terminal device
    ttystuff send /dev/pts/4 "ls -la"

    # Same, targeting the controlling terminal of process 12345
    ttystuff send 12345 "ls -la"

    # Leave the text pending without pressing Enter
    ttystuff send --enter=none /dev/pts/4 "rm -rf "

ENVIRONMENT
    TTYSTUFF_CONFIG  Path to a YAML config with delay/enter/timeout defaults
    TTYSTUFF_DEBUG   Set to enable debug logging
`)
}

func printSendUsage() {
	fmt.Println("Usage: ttystuff send [--delay=1ms] [--enter=cr|lf|crlf|none|auto] [--timeout=0] <device-path|pid> <text>")
}

// sendCmd implements the injection operation. The target is a device
// path, or a process ID when it is all digits — a /dev path can never
// be mistaken for one.
func sendCmd(args []string, logger *slog.Logger) error {
	flagSet := pflag.NewFlagSet("ttystuff send", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "path to config file (overrides TTYSTUFF_CONFIG)")
	delayFlag := flagSet.Duration("delay", 0, "pause between injected characters")
	enterFlag := flagSet.String("enter", "", "line terminator encoding: cr, lf, crlf, none, auto")
	timeoutFlag := flagSet.Duration("timeout", 0, "bound for the whole injection, 0 disables")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printSendUsage()
			return nil
		}
		return err
	}

	positional := flagSet.Args()
	if len(positional) != 2 {
		printSendUsage()
		return silentExitError{code: 1}
	}
	target, text := positional[0], positional[1]

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	delay := cfg.DelayDuration()
	if flagSet.Changed("delay") {
		delay = *delayFlag
	}
	timeout := cfg.TimeoutDuration()
	if flagSet.Changed("timeout") {
		timeout = *timeoutFlag
	}
	enterName := cfg.Enter
	if flagSet.Changed("enter") {
		enterName = *enterFlag
	}
	enter, err := inject.ParseEnter(enterName)
	if err != nil {
		return err
	}

	devicePath := target
	if pid, isPID := parsePID(target); isPID {
		devicePath, err = proctty.Resolve(pid)
		if err != nil {
			if errors.Is(err, proctty.ErrNoControllingTerminal) {
				fmt.Printf("No terminal found for PID %d\n", pid)
				return silentExitError{code: 1}
			}
			return err
		}
		logger.Debug("resolved controlling terminal", "pid", pid, "device", devicePath)
	}

	device, err := inject.OpenDevice(devicePath)
	if err != nil {
		return err
	}
	defer device.Close()

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	injector := inject.NewInjector(device, inject.Options{
		Delay:  delay,
		Enter:  enter,
		Logger: logger,
	})
	if err := injector.InjectLine(ctx, text); err != nil {
		return err
	}

	fmt.Printf("Sent '%s' to %s\n", text, devicePath)
	return nil
}

// resolveCmd prints the controlling terminal of a process without
// injecting anything.
func resolveCmd(args []string) error {
	if len(args) != 1 {
		fmt.Println("Usage: ttystuff resolve <pid>")
		return silentExitError{code: 1}
	}

	pid, isPID := parsePID(args[0])
	if !isPID {
		return fmt.Errorf("invalid pid %q", args[0])
	}

	path, err := proctty.Resolve(pid)
	if err != nil {
		if errors.Is(err, proctty.ErrNoControllingTerminal) {
			fmt.Printf("No terminal found for PID %d\n", pid)
			return silentExitError{code: 1}
		}
		return err
	}

	fmt.Println(path)
	return nil
}

// selftestCmd runs the pty round-trip diagnostic.
func selftestCmd(args []string, logger *slog.Logger) error {
	if len(args) != 0 {
		fmt.Println("Usage: ttystuff selftest")
		return silentExitError{code: 1}
	}

	if err := inject.SelfTest(context.Background(), logger); err != nil {
		return err
	}
	fmt.Println("selftest passed")
	return nil
}

// loadConfig loads the config file named by the --config flag, the
// TTYSTUFF_CONFIG environment variable, or the built-in defaults, in
// that order of preference.
func loadConfig(flagPath string) (*config.Config, error) {
	if flagPath != "" {
		return config.LoadFile(flagPath)
	}
	return config.Load()
}

// parsePID reports whether target names a process: a non-empty,
// all-digit string with a positive value. Device paths always contain
// a slash, so the two target forms cannot collide.
func parsePID(target string) (int, bool) {
	if target == "" {
		return 0, false
	}
	for _, c := range target {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	pid, err := strconv.Atoi(target)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
