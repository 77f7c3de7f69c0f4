package main

import (
	"os"
	"strings"
)

// init runs before lipgloss and termenv look at the terminal.
//
// Outside the interactive preview, output is HTML or plain text that is often
// piped into files or other programs. Termenv's background-color probing can
// write OSC/DSR control sequences to the terminal at that point, so every
// non-preview invocation sets CI=1, which termenv treats as "do not probe".
func init() {
	if os.Getenv("CI") != "" {
		return
	}
	if !shouldSuppressTTYQueries(os.Args[1:], os.Getenv("TREEVIEW_TEST_MODE") != "") {
		return
	}
	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}
	for _, arg := range args {
		if arg == "--" {
			break
		}
		switch strings.TrimLeft(arg, "-") {
		case "preview", "preview=true", "preview=1":
			return false
		}
	}
	return true
}
