package main

import (
	"os"
	"strings"
)

// init runs before Bubble Tea acquires the terminal.
//
// Lipgloss background detection can emit OSC/DSR control sequences to
// stdout. They are harmless in a real terminal but corrupt the JSON written
// by the robot commands, so non-interactive invocations set CI=1 early and
// termenv skips the probe.
func init() {
	if os.Getenv("CI") != "" {
		return
	}

	if !shouldSuppressTTYQueries(os.Args, os.Getenv("LUNGMAP_ROBOT") == "1", os.Getenv("LUNGMAP_TEST_MODE") != "") {
		return
	}

	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envRobot, envTest bool) bool {
	if envRobot || envTest {
		return true
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "--robot-") || strings.HasPrefix(arg, "-robot-") {
			return true
		}
		if strings.HasPrefix(arg, "--export") || strings.HasPrefix(arg, "-export") {
			return true
		}
		switch arg {
		case "--version", "--help", "-version", "-help", "-h":
			return true
		}
	}

	return false
}
