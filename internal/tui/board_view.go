package tui

import (
	"fmt"
	"strings"

	"kanbo/internal/drag"
	"kanbo/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// boardSelection addresses the focused card on the board view.
type boardSelection struct {
	Col  int
	Card int
	// ProjectID is the stable selected card id, preferred over the
	// indices so focus survives moves and reloads.
	ProjectID string
}

func clampSelection(b *model.Board, sel boardSelection) boardSelection {
	if b == nil || len(b.Columns) == 0 {
		return boardSelection{Col: 0, Card: -1}
	}

	if ci, pi, ok := cardIndexByID(b, sel.ProjectID); ok {
		sel.Col = ci
		sel.Card = pi
	} else {
		sel.ProjectID = ""
	}

	if sel.Col < 0 {
		sel.Col = 0
	}
	if sel.Col >= len(b.Columns) {
		sel.Col = len(b.Columns) - 1
	}

	n := len(b.Columns[sel.Col].Projects)
	if n == 0 {
		sel.Card = -1
		sel.ProjectID = ""
		return sel
	}
	if sel.Card < 0 {
		sel.Card = 0
	}
	if sel.Card >= n {
		sel.Card = n - 1
	}
	sel.ProjectID = b.Columns[sel.Col].Projects[sel.Card].ID
	return sel
}

func cardIndexByID(b *model.Board, projectID string) (col, card int, ok bool) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return 0, 0, false
	}
	for ci := range b.Columns {
		for pi := range b.Columns[ci].Projects {
			if b.Columns[ci].Projects[pi].ID == projectID {
				return ci, pi, true
			}
		}
	}
	return 0, 0, false
}

func columnIndexByID(b *model.Board, columnID string) int {
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			return i
		}
	}
	return -1
}

func findCard(b *model.Board, projectID string) (*model.Column, *model.Project, bool) {
	ci, pi, ok := cardIndexByID(b, projectID)
	if !ok {
		return nil, nil, false
	}
	return &b.Columns[ci], &b.Columns[ci].Projects[pi], true
}

// dragView is the slice of drag state the renderer needs for
// affordances: the grabbed card, the hovered drop column, or the
// pending column position.
type dragView struct {
	phase     drag.Phase
	projectID string
	hoverCol  string
	fromCol   int
	dropCol   int
}

func renderBoard(b *model.Board, sel boardSelection, d dragView, width, height int) string {
	n := len(b.Columns)
	if n == 0 {
		return normalizePane(styleMuted().Render("No columns yet. Press c to add one."), width, height)
	}
	sel = clampSelection(b, sel)

	gap := 2
	avail := width - gap*(n-1)
	if avail < n {
		avail = n
	}
	colW := avail / n
	if colW < 12 {
		colW = 12
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg)
	headerSelectedStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	headerDropStyle := lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	muted := styleMuted()

	// Whitespace defines the cards, not borders; stacked borders read
	// like one continuous list.
	itemStyle := lipgloss.NewStyle().Width(colW).Padding(0, 1)
	itemSelectedStyle := itemStyle.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	itemGrabbedStyle := itemStyle.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(colorCardMetaFg)
	innerW := colW - 2
	if innerW < 1 {
		innerW = 1
	}

	renderCard := func(p *model.Project, selected, grabbed bool) string {
		name := strings.TrimSpace(p.ProjectName)
		if name == "" {
			name = "(untitled)"
		}
		prefix := "  "
		if grabbed {
			prefix = "◆ "
		}

		var content []string
		idLine := prefix + p.ProjectID
		st := metaStyle
		if grabbed || selected {
			st = lipgloss.NewStyle()
		}
		content = append(content, st.Render(truncateText(idLine, innerW)))

		titleStyle := lipgloss.NewStyle().Bold(true)
		for _, ln := range wrapText(name, innerW-2) {
			content = append(content, titleStyle.Render("  "+ln))
		}

		var counts []string
		if len(p.Links) > 0 {
			counts = append(counts, fmt.Sprintf("%d links", len(p.Links)))
		}
		if len(p.Comments) > 0 {
			counts = append(counts, fmt.Sprintf("%d comments", len(p.Comments)))
		}
		if len(counts) > 0 {
			line := "  " + strings.Join(counts, " · ")
			if grabbed || selected {
				content = append(content, truncateText(line, innerW))
			} else {
				content = append(content, muted.Render(truncateText(line, innerW)))
			}
		}

		inner := normalizePane(strings.Join(content, "\n"), innerW, 0)
		switch {
		case grabbed:
			return itemGrabbedStyle.Render(inner)
		case selected:
			return itemSelectedStyle.Render(inner)
		default:
			return itemStyle.Render(inner)
		}
	}

	renderCol := func(ci int, c *model.Column) string {
		head := fmt.Sprintf("%s (%d)", c.Title, len(c.Projects))
		hs := headerStyle
		switch {
		case d.phase == drag.DraggingProject && c.ID == d.hoverCol:
			head = "→ " + head
			hs = headerDropStyle
		case d.phase == drag.DraggingColumn && ci == d.dropCol:
			head = "↳ " + head
			hs = headerDropStyle
		case d.phase == drag.DraggingColumn && ci == d.fromCol:
			head = "◆ " + head
			hs = headerSelectedStyle
		case ci == sel.Col:
			hs = headerSelectedStyle
		}
		lines := []string{hs.Width(colW).Render(truncateText(head, colW))}

		if len(c.Projects) == 0 {
			lines = append(lines, muted.Render(" (empty)"))
			return normalizePane(strings.Join(lines, "\n"), colW, height)
		}

		lines = append(lines, "")
		for pi := range c.Projects {
			p := &c.Projects[pi]
			grabbed := d.phase == drag.DraggingProject && p.ID == d.projectID
			selected := d.phase == drag.Idle && ci == sel.Col && pi == sel.Card
			card := renderCard(p, selected, grabbed)
			lines = append(lines, strings.Split(card, "\n")...)

			if pi < len(c.Projects)-1 {
				sepW := colW - 2
				if sepW < 0 {
					sepW = 0
				}
				lines = append(lines, muted.Render(" "+strings.Repeat("─", sepW)+" "))
			}
		}
		return normalizePane(strings.Join(lines, "\n"), colW, height)
	}

	rendered := make([]string, 0, n)
	for i := range b.Columns {
		rendered = append(rendered, renderCol(i, &b.Columns[i]))
	}

	out := rendered[0]
	sep := strings.Repeat(" ", gap)
	for i := 1; i < len(rendered); i++ {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, sep, rendered[i])
	}
	return normalizePane(out, width, height)
}
