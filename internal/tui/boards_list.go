package tui

import (
	"fmt"
	"io"
	"strings"

	"kanbo/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type boardItem struct {
	board   model.Board
	current bool
}

func (it boardItem) Title() string {
	projects := 0
	for i := range it.board.Columns {
		projects += len(it.board.Columns[i].Projects)
	}
	marker := "  "
	if it.current {
		marker = "* "
	}
	return fmt.Sprintf("%s%s  [%s]  %d columns · %d projects",
		marker, it.board.Name, it.board.ProjectIDPrefix, len(it.board.Columns), projects)
}

func (it boardItem) FilterValue() string { return it.board.Name }

type boardRowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newBoardRowDelegate() boardRowDelegate {
	return boardRowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d boardRowDelegate) Height() int                             { return 1 }
func (d boardRowDelegate) Spacing() int                            { return 0 }
func (d boardRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d boardRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if it, ok := item.(boardItem); ok {
		txt = it.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	line := txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}

func newBoardsList() list.Model {
	l := list.New([]list.Item{}, newBoardRowDelegate(), 0, 0)
	l.Title = "Boards"
	// The app renders its own header and footer; keep list chrome off.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Filtering would swallow the single-letter command keys.
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	// ESC means "back" here, and q is handled by the app itself.
	l.KeyMap.Quit.SetKeys("ctrl+c")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)

	return l
}

func selectBoardByID(l *list.Model, id string) {
	for i, item := range l.Items() {
		if it, ok := item.(boardItem); ok && it.board.ID == id {
			l.Select(i)
			return
		}
	}
}
