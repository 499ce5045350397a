package tui

import (
	"fmt"
	"strings"
)

const (
	uiDivider = "──────────────────────────────────────────────────────"
	barWidth  = 40
)

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		b.WriteString(data)
		b.WriteString("\n")
	} else {
		b.WriteString("-\n")
	}

	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")
	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString(helpStyle.Render(hotKeys))
	}

	return appStyle.Render(b.String())
}

// renderBar draws a progress bar for fraction in [0, 1]. A negative fraction
// means unknown and renders an empty bar.
func renderBar(fraction float64) string {
	if fraction < 0 {
		return barEmptyStyle.Render(strings.Repeat("░", barWidth)) + "    ?"
	}
	fraction = min(fraction, 1)
	full := int(fraction * barWidth)
	return barFullStyle.Render(strings.Repeat("█", full)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-full)) +
		fmt.Sprintf(" %3.0f%%", fraction*100)
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
