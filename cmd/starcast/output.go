package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/starcast-app/starcast/internal/workflow"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorGreen, "✓ "+msg))
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorRed, "✗ "+msg))
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorYellow, "⚠ "+msg))
}

func printStatus(label string, format string, args ...any) {
	val := fmt.Sprintf(format, args...)
	l := colorize(colorBold, label+":")
	fmt.Fprintf(os.Stderr, "  %s %s\n", l, val)
}

func printStep(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorCyan, "→ "+msg))
}

// termIndicator shows the loading state of in-flight backend calls.
type termIndicator struct{}

func (termIndicator) Start(label string) {
	printStep("%s...", label)
}

func (termIndicator) Stop() {}

// termTarget is where the request envelope renders failure messages.
type termTarget struct{}

func (termTarget) RenderError(msg string) {
	printError("%s", msg)
}

// promptConfirmer asks on the terminal before a batch launches. The
// --yes flag answers for the user.
type promptConfirmer struct {
	assumeYes bool
}

func (p promptConfirmer) Confirm(prompt string) bool {
	if p.assumeYes {
		return true
	}
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", colorize(colorBold, prompt))
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return parseConfirmReply(line)
}

func parseConfirmReply(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func printReport(report *workflow.Report) {
	for _, it := range report.Items {
		if it.Outcome.OK() {
			printSuccess("%s", it.ID)
			continue
		}
		printError("%s: %s", it.ID, it.Outcome.Err().Message)
	}
	if _, failed := report.Counts(); failed == 0 {
		printSuccess("%s", report.Summary())
	} else {
		printWarning("%s", report.Summary())
	}
}
