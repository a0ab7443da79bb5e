package cli

import "github.com/fatih/color"

var (
	// Observed dates: bold cyan
	colorDate = color.New(color.FgCyan, color.Bold)

	// Federal holidays
	colorFederal = color.New(color.FgRed)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Relative phrasing: yellow to make it pop
	colorRelative = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatDate(s string) string {
	return colorDate.Sprint(s)
}

func formatFederal(s string) string {
	return colorFederal.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatRelative(s string) string {
	return colorRelative.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
