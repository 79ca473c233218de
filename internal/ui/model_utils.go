package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func truncateToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(text, maxWidth, "…")
}

// clampPane fits content into a fixed rectangle: lines are truncated,
// padded and the block is topped up to exactly height rows.
func clampPane(content string, width, height int) string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	lines := strings.Split(content, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	for i, line := range lines {
		line = ansi.Truncate(line, width, "")
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		lines[i] = line
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// wrapToWidth breaks plain text on grapheme boundaries; words longer
// than the width split mid-word.
func wrapToWidth(content string, width int) string {
	if width <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		wrapped = append(wrapped, wrapLine(line, width)...)
	}
	return strings.Join(wrapped, "\n")
}

func wrapLine(line string, width int) []string {
	if line == "" || runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var (
		out     []string
		current strings.Builder
		used    int
	)
	graphemes := uniseg.NewGraphemes(line)
	for graphemes.Next() {
		cluster := graphemes.Str()
		w := runewidth.StringWidth(cluster)
		if used+w > width && used > 0 {
			out = append(out, strings.TrimRight(current.String(), " "))
			current.Reset()
			used = 0
			if cluster == " " {
				continue
			}
		}
		current.WriteString(cluster)
		used += w
	}
	if current.Len() > 0 {
		out = append(out, strings.TrimRight(current.String(), " "))
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}
