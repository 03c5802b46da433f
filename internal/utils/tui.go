package utils

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Theme - exported colors for consistent CLI output
var Theme = struct {
	Success text.Colors
	Info    text.Colors
	Warning text.Colors
	Error   text.Colors
	Heading text.Colors
	Subtle  text.Colors
}{
	Success: text.Colors{text.FgGreen},
	Info:    text.Colors{text.FgBlue},
	Warning: text.Colors{text.FgYellow},
	Error:   text.Colors{text.FgRed},
	Heading: text.Colors{text.FgHiCyan, text.Bold},
	Subtle:  text.Colors{text.FgHiBlack},
}

// PrintSuccess prints a success message to stdout
func PrintSuccess(msg string) {
	fmt.Println(Theme.Success.Sprintf("✓ %s", msg))
}

// PrintInfo prints an informational message to stdout
func PrintInfo(msg string) {
	fmt.Println(Theme.Info.Sprintf("• %s", msg))
}

// PrintWarning prints a warning message to stdout
func PrintWarning(msg string) {
	fmt.Println(Theme.Warning.Sprintf("! %s", msg))
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, Theme.Error.Sprintf("✗ %s", msg))
}

// NewTable creates a table writer with the application's default style
func NewTable(headers ...interface{}) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatTitle
	if len(headers) > 0 {
		t.AppendHeader(headers)
	}
	return t
}
