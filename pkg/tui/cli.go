// Package tui provides console styling and number formatting for disparo.
// Simple, streaming output: no full-screen TUI, just styled lines.
package tui

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
)

// Colors
var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	AccentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(muted)
	SuccessStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

// Rule returns a horizontal rule of n copies of ch.
func Rule(ch string, n int) string {
	return strings.Repeat(ch, n)
}

// PrintBanner writes a title framed by rules of the given width.
func PrintBanner(w io.Writer, title string, width int) {
	fmt.Fprintln(w, TitleStyle.Render(title))
	fmt.Fprintln(w, MutedStyle.Render(Rule("=", width)))
}

// FormatThousands formats n with comma thousands separators (1234567 -> "1,234,567").
func FormatThousands(n int64) string {
	return groupDigits(strconv.FormatInt(n, 10))
}

// FormatRate formats a per-second rate rounded to a whole number with
// thousands separators. Infinite rates print as "inf".
func FormatRate(rate float64) string {
	switch {
	case math.IsInf(rate, 1):
		return "inf"
	case math.IsInf(rate, -1):
		return "-inf"
	case math.IsNaN(rate):
		return "nan"
	case math.Abs(rate) >= math.MaxInt64:
		// Outside int64; float64 can still print it exactly.
		return groupDigits(strconv.FormatFloat(rate, 'f', 0, 64))
	}
	return FormatThousands(int64(math.Round(rate)))
}

// groupDigits inserts commas into a plain decimal integer string.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var sb strings.Builder
	sb.WriteString(sign)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// FormatSeconds formats d as seconds with two decimals ("0.10s").
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// ShowProgress creates a progress bar writing to w.
func ShowProgress(w io.Writer, total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(false),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
