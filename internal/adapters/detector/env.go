// Package detector selects how reports are written for the current terminal.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode of reports.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeStyled renders coloured text for interactive terminals.
	ModeStyled
	// ModePlain renders text without escape sequences.
	ModePlain
	// ModeJSON renders machine readable JSON.
	ModeJSON
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeStyled:
		return "styled"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended mode for stdout.
func DetectEnvironment() OutputMode {
	return Detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv)
}

// Detect picks styled output for terminals unless CI or NO_COLOR is set.
func Detect(isTTY bool, getenv func(string) string) OutputMode {
	ci := getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI || getenv("NO_COLOR") != "" {
		return ModePlain
	}
	return ModeStyled
}

// ResolveMode applies the user's --output flag to auto-detection.
// userFlag should be one of: "auto", "styled", "plain", "text", "json", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "styled":
		return ModeStyled
	case "plain", "text":
		return ModePlain
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
