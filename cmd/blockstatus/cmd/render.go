package cmd

import (
	"strings"

	"github.com/GoCodeAlone/blockstatus"
	"github.com/charmbracelet/lipgloss"
)

// Legacy § color codes and their in-game RGB values.
var formattingColors = map[rune]lipgloss.Color{
	'0': "#000000",
	'1': "#0000AA",
	'2': "#00AA00",
	'3': "#00AAAA",
	'4': "#AA0000",
	'5': "#AA00AA",
	'6': "#FFAA00",
	'7': "#AAAAAA",
	'8': "#555555",
	'9': "#5555FF",
	'a': "#55FF55",
	'b': "#55FFFF",
	'c': "#FF5555",
	'd': "#FF55FF",
	'e': "#FFFF55",
	'f': "#FFFFFF",
}

type segment struct {
	text      string
	color     lipgloss.Color
	bold      bool
	italic    bool
	underline bool
	strike    bool
}

func (s segment) style() lipgloss.Style {
	style := lipgloss.NewStyle().
		Bold(s.bold).
		Italic(s.italic).
		Underline(s.underline).
		Strikethrough(s.strike)
	if s.color != "" {
		style = style.Foreground(s.color)
	}
	return style
}

// parseFormatted splits text at § codes. A color code clears the format
// codes before it, as it does in game; §r clears everything.
func parseFormatted(text string) []segment {
	var (
		out     []segment
		current segment
		b       strings.Builder
		code    bool
	)
	flush := func() {
		if b.Len() > 0 {
			current.text = b.String()
			out = append(out, current)
			b.Reset()
		}
	}

	for _, r := range text {
		if !code {
			if r == blockstatus.FormattingCode {
				code = true
				continue
			}
			b.WriteRune(r)
			continue
		}

		code = false
		flush()
		lower := r | 0x20
		if color, ok := formattingColors[lower]; ok {
			current = segment{color: color}
			continue
		}
		switch lower {
		case 'l':
			current.bold = true
		case 'o':
			current.italic = true
		case 'n':
			current.underline = true
		case 'm':
			current.strike = true
		case 'r':
			current = segment{}
		}
	}
	flush()
	return out
}

// RenderLabel renders a § formatted label for the terminal. With plain set,
// or when the terminal has no color support, the codes are just stripped.
func RenderLabel(text string, plain bool) string {
	if plain {
		return blockstatus.StripFormatting(text)
	}
	var b strings.Builder
	for _, seg := range parseFormatted(text) {
		b.WriteString(seg.style().Render(seg.text))
	}
	return b.String()
}
