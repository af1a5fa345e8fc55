package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBar    = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"

	barWidth = 20
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Result Display
// =============================================================================

// printStats prints run statistics on a single line.
func printStats(w io.Writer, s tagcloud.Stats, kept int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d rows", s.Rows),
		fmt.Sprintf("%d entries", kept),
	}
	if s.MissingCount > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", s.MissingCount))
	}
	if s.TermMode {
		parts = append(parts, "terms")
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	fmt.Fprintln(w, line+StyleDim.Render(" · ")+statusStyle.Render(status))
}

// printNotices prints the omission and truncation notices of a run.
func printNotices(w io.Writer, s tagcloud.Stats, kept int) {
	if s.MissingCount > 0 {
		printWarning(w, "%d rows omitted: missing label or weight", s.MissingCount)
	}
	if s.Clipped {
		printWarning(w, "showing %d of %d entries", kept, s.Distinct)
	}
}

// renderEntries renders entries as a table with a bar scaled to the
// heaviest entry.
func renderEntries(entries []tagcloud.Entry) string {
	maxSize := 0.0
	for _, e := range entries {
		if e.Size > maxSize {
			maxSize = e.Size
		}
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			entryLabel(e),
			formatSize(e.Size),
			bar(e.Size, maxSize),
			strconv.Itoa(len(e.RowIDs)),
			swatch(e.Color),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Label", "Size", "", "Rows", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 2:
				return StyleNumber
			case col == 3:
				return styleBar
			case col == 0 || col == 4:
				return StyleDim
			}
			return StyleValue
		})
	return t.Render()
}

// entryLabel renders the entry text with its tags, e.g. "run [VB]".
func entryLabel(e tagcloud.Entry) string {
	if len(e.Tags) == 0 {
		return e.Text
	}
	return e.Text + " " + StyleDim.Render("["+strings.Join(e.Tags, " ")+"]")
}

func formatSize(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func bar(v, maxSize float64) string {
	if maxSize <= 0 || v <= 0 || math.IsNaN(v) {
		return ""
	}
	n := int(math.Round(v / maxSize * barWidth))
	return strings.Repeat("█", max(n, 1))
}

func swatch(c *tagcloud.Color) string {
	if c == nil {
		return ""
	}
	hex := c.Hex()
	return lipgloss.NewStyle().Background(lipgloss.Color(hex[:7])).Render("  ") + " " + StyleDim.Render(hex)
}
