package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to exactly width columns (ANSI-aware) and height
// lines. Split-pane rendering through lipgloss.JoinHorizontal is only
// stable when every pane is a perfect rectangle.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			ln = truncateText(ln, width)
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// truncateText cuts s to at most width columns, ANSI-aware, with a
// trailing ellipsis when something was dropped.
func truncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

// wrapText word-wraps plain text to maxW columns. Words wider than the
// line are hard-cut rather than overflowing.
func wrapText(s string, maxW int) []string {
	if maxW <= 0 {
		return []string{""}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{""}
	}

	var lines []string
	cur := ""
	curW := 0
	flush := func() {
		lines = append(lines, cur)
		cur = ""
		curW = 0
	}

	for _, word := range strings.Fields(s) {
		wordW := xansi.StringWidth(word)
		for wordW > maxW {
			if cur != "" {
				flush()
			}
			lines = append(lines, xansi.Cut(word, 0, maxW))
			word = xansi.Cut(word, maxW, wordW)
			wordW = xansi.StringWidth(word)
		}
		if word == "" {
			continue
		}
		switch {
		case cur == "":
			cur = word
			curW = wordW
		case curW+1+wordW <= maxW:
			cur += " " + word
			curW += 1 + wordW
		default:
			flush()
			cur = word
			curW = wordW
		}
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}
