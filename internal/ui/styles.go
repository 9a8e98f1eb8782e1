package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	ColorDir    = lipgloss.Color("#22D3EE") // neon cyan
	ColorFile   = lipgloss.Color("#E4E4E7")
	ColorSize   = lipgloss.Color("#7D56F4")
	ColorBranch = lipgloss.Color("#6B7280")
)

// treeStyles holds the styles for one output
type treeStyles struct {
	dir    lipgloss.Style
	file   lipgloss.Style
	size   lipgloss.Style
	branch lipgloss.Style
}

// newTreeStyles builds styles bound to r, so color follows the destination
// writer rather than stdout
func newTreeStyles(r *lipgloss.Renderer) treeStyles {
	return treeStyles{
		dir:    r.NewStyle().Foreground(ColorDir).Bold(true),
		file:   r.NewStyle().Foreground(ColorFile),
		size:   r.NewStyle().Foreground(ColorSize),
		branch: r.NewStyle().Foreground(ColorBranch),
	}
}

// FormatSize formats bytes to a human readable string with binary units,
// e.g. "308.00 B" or "1.50 KiB"
func FormatSize(bytes uint64) string {
	const unit = 1024
	units := []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

	value := float64(bytes)
	i := 0
	for value >= unit && i < len(units)-1 {
		value /= unit
		i++
	}
	return fmt.Sprintf("%.2f %s", value, units[i])
}
