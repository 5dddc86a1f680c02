// Package cli provides shared formatting helpers for the netsurvey CLI.
package cli

import (
	"os"
	"strings"
)

// colorEnabled is false when NO_COLOR env var is set (per no-color.org).
var colorEnabled = os.Getenv("NO_COLOR") == ""

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + "\033[0m"
}

// Green wraps s in ANSI green. Returns s unchanged when NO_COLOR is set.
func Green(s string) string { return paint("\033[32m", s) }

// Yellow wraps s in ANSI yellow.
func Yellow(s string) string { return paint("\033[33m", s) }

// Red wraps s in ANSI red.
func Red(s string) string { return paint("\033[31m", s) }

// Bold wraps s in ANSI bold.
func Bold(s string) string { return paint("\033[1m", s) }

// Outcome labels a device result for run and journal listings: FAILED in
// red, DEGRADED in yellow when some sections fell back to empty, OK in green.
func Outcome(success bool, degraded int) string {
	switch {
	case !success:
		return Red("FAILED")
	case degraded > 0:
		return Yellow("DEGRADED")
	default:
		return Green("OK")
	}
}

// DotPad pads name with dots to the given width.
// Example: DotPad("PE1", 12) → "PE1 ........"
func DotPad(name string, width int) string {
	if width <= 0 || len(name) >= width-1 {
		return name
	}
	dots := width - len(name) - 1
	return name + " " + strings.Repeat(".", dots)
}
