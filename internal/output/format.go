// Package output provides terminal output formatting utilities for the
// loglady CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintDivider prints a dim horizontal rule, used to frame the rendered
// changelog when stdout is a terminal.
func PrintDivider(out io.Writer) {
	width := GetTerminalWidth()
	if width > 80 {
		width = 80
	}
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(out, dim(strings.Repeat("─", width)))
}

// PrintStepHeader prints a colored step header (e.g., "[1/4] Fetching closed issues...").
// Uses cyan for the step indicator and white for the step name.
func PrintStepHeader(out io.Writer, stepNum, totalSteps int, stepName string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("[%d/%d]", stepNum, totalSteps)), white(stepName+"..."))
}

// PrintStepSuccess prints a colored success message for a completed step.
// Uses green checkmark and cyan for the detail text.
func PrintStepSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintWarning prints a non-fatal warning. Uses yellow for the prefix so
// warnings stand out without looking like failures.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("Warning:"), message)
}

// PrintNotice prints a dim informational line for skipped or optional steps.
func PrintNotice(out io.Writer, message string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s\n", dim(message))
}
