package tui

import (
	"fmt"
	"strings"

	"kanbo/internal/model"

	"github.com/charmbracelet/lipgloss"
)

const detailTimeFormat = "Jan 2 2006 15:04"

// renderProjectDetail renders the full-screen card view: description,
// links, comments, and the activity tail, newest first.
func renderProjectDetail(c *model.Column, p *model.Project, width, height, scroll int) string {
	innerW := width - 2
	if innerW < 20 {
		innerW = 20
	}

	title := lipgloss.NewStyle().Bold(true)
	section := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	muted := styleMuted()

	name := strings.TrimSpace(p.ProjectName)
	if name == "" {
		name = "(untitled)"
	}

	var lines []string
	push := func(s string) {
		lines = append(lines, strings.Split(s, "\n")...)
	}

	for _, ln := range wrapText(name, innerW) {
		push(title.Render(ln))
	}
	push(muted.Render(fmt.Sprintf("%s · %s", p.ProjectID, c.Title)))
	push("")

	if desc := strings.TrimSpace(p.Description); desc != "" {
		push(renderMarkdown(desc, innerW))
	} else {
		push(muted.Render("(no description)"))
	}
	push("")

	push(section.Render(fmt.Sprintf("Links (%d)", len(p.Links))))
	if len(p.Links) == 0 {
		push(muted.Render("  none"))
	}
	for i := range p.Links {
		l := &p.Links[i]
		push(truncateText("  • "+l.Title, innerW))
		push(muted.Render(truncateText("    "+l.URL, innerW)))
	}
	push("")

	push(section.Render(fmt.Sprintf("Comments (%d)", len(p.Comments))))
	if len(p.Comments) == 0 {
		push(muted.Render("  none"))
	}
	for i := range p.Comments {
		cm := &p.Comments[i]
		push(muted.Render("  " + cm.Timestamp.Format(detailTimeFormat)))
		body := renderMarkdownCompact(cm.Text, innerW-2)
		for _, ln := range strings.Split(body, "\n") {
			push("  " + ln)
		}
		if i < len(p.Comments)-1 {
			push("")
		}
	}
	push("")

	push(section.Render(fmt.Sprintf("Activity (%d)", len(p.ActivityLog))))
	shown := p.ActivityLog
	const activityTail = 10
	if len(shown) > activityTail {
		shown = shown[:activityTail]
	}
	for i := range shown {
		a := &shown[i]
		stamp := muted.Render(a.Timestamp.Format(detailTimeFormat))
		push(truncateText("  "+stamp+"  "+a.Description, innerW))
	}
	if len(p.ActivityLog) > activityTail {
		push(muted.Render(fmt.Sprintf("  … %d older entries", len(p.ActivityLog)-activityTail)))
	}

	if scroll < 0 {
		scroll = 0
	}
	if height > 0 {
		if limit := len(lines) - height; scroll > limit {
			scroll = limit
		}
		if scroll < 0 {
			scroll = 0
		}
	}
	visible := lines[scroll:]
	if height > 0 && len(visible) > height {
		visible = visible[:height]
	}

	return normalizePane(strings.Join(visible, "\n"), width, height)
}

// detailMaxScroll keeps scrolling bounded without re-rendering.
func detailMaxScroll(c *model.Column, p *model.Project, width, height int) int {
	full := renderProjectDetail(c, p, width, 0, 0)
	n := len(strings.Split(full, "\n"))
	if n <= height {
		return 0
	}
	return n - height
}
