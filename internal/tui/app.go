package tui

import (
	"fmt"
	"strings"
	"time"

	"kanbo/internal/board"
	"kanbo/internal/config"
	"kanbo/internal/drag"
	"kanbo/internal/model"
	"kanbo/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewBoards view = iota
	viewBoard
	viewDetail
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewBoard
	modalNewBoardPrefix
	modalRenameBoard
	modalNewColumn
	modalRenameColumn
	modalNewProject
	modalEditProjectName
	modalEditDescription
	modalAddLink
	modalAddLinkTitle
	modalAddComment
	modalConfirmDeleteBoard
	modalConfirmDeleteColumn
	modalConfirmDeleteProject
)

type autosaveTickMsg struct{}

type noticeExpireMsg struct{ seq int }

// noticeSink collects engine notices raised during an Update pass so
// the model can surface the latest one in the notice bar.
type noticeSink struct {
	msgs []string
}

type appModel struct {
	eng   *board.Engine
	store store.Store
	cfg   *config.Config

	width  int
	height int

	view view

	boardsList list.Model

	sel     boardSelection
	dragCtl *drag.Controller
	// colDrop is the pending target position while a column drag is
	// active; the controller itself only tracks the source.
	colDrop int

	openProjectID string
	detailScroll  int

	modal        modalKind
	modalForID   string
	modalForKey  string
	pendingInput string
	input        textinput.Model
	textarea     textarea.Model
	confirmFocus confirmModalFocus

	notices   *noticeSink
	notice    string
	noticeSeq int
}

func newAppModel(eng *board.Engine, s store.Store, cfg *config.Config) appModel {
	sink := &noticeSink{}
	eng.SetNotifier(board.NotifierFunc(func(msg string) {
		sink.msgs = append(sink.msgs, msg)
	}))
	// Destructive actions go through the TUI's own confirm modal before
	// the engine is called, so the engine-side gate always passes.
	eng.SetConfirm(func(string) bool { return true })

	m := appModel{
		eng:     eng,
		store:   s,
		cfg:     cfg,
		view:    viewBoards,
		dragCtl: drag.New(engineDragOps{eng: eng}),
		notices: sink,
	}

	m.boardsList = newBoardsList()

	m.input = textinput.New()
	m.input.CharLimit = 200
	m.input.Width = 40

	m.textarea = textarea.New()
	m.textarea.Placeholder = "Write…"
	m.textarea.CharLimit = 0
	m.textarea.SetWidth(56)
	m.textarea.SetHeight(8)
	m.textarea.ShowLineNumbers = false

	if _, ok := eng.DB().CurrentBoard(); ok {
		m.view = viewBoard
	}
	m.refreshBoards()
	return m
}

func (m appModel) Init() tea.Cmd { return m.tickAutosave() }

func (m appModel) tickAutosave() tea.Cmd {
	every := m.cfg.AutosaveInterval
	if every <= 0 {
		every = 30 * time.Second
	}
	return tea.Tick(every, func(time.Time) tea.Msg { return autosaveTickMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case autosaveTickMsg:
		m.eng.Persist()
		return m, tea.Batch(m.tickAutosave(), m.drainNotices())

	case noticeExpireMsg:
		// A newer notice may have replaced this one already.
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewBoards:
			return m.updateBoards(msg)
		case viewBoard:
			return m.updateBoard(msg)
		case viewDetail:
			return m.updateDetail(msg)
		}
		return m, nil
	}

	// Everything else (cursor blinks and friends) flows to whichever
	// component is active.
	var cmd tea.Cmd
	switch {
	case m.modal != modalNone && m.modalWantsTextarea():
		m.textarea, cmd = m.textarea.Update(msg)
	case m.modal != modalNone && !m.modalIsConfirm():
		m.input, cmd = m.input.Update(msg)
	case m.view == viewBoards:
		m.boardsList, cmd = m.boardsList.Update(msg)
	}
	return m, cmd
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.dragCtl.DragEnd()
	m.eng.Persist()
	return m, tea.Quit
}

func (m *appModel) board() *model.Board {
	b, ok := m.eng.DB().CurrentBoard()
	if !ok {
		return nil
	}
	return b
}

func (m *appModel) refreshBoards() {
	db := m.eng.DB()
	selID := ""
	if it, ok := m.boardsList.SelectedItem().(boardItem); ok {
		selID = it.board.ID
	}
	items := make([]list.Item, 0, len(db.Boards))
	for _, b := range db.Boards {
		items = append(items, boardItem{board: b, current: b.ID == db.CurrentBoardID})
	}
	m.boardsList.SetItems(items)
	if selID != "" {
		selectBoardByID(&m.boardsList, selID)
	}
}

func (m *appModel) resize() {
	w, bodyH := m.bodySize()
	m.boardsList.SetSize(w, bodyH)

	innerW := modalBodyWidth(w) - 4
	if innerW < 20 {
		innerW = 20
	}
	m.input.Width = innerW
	m.textarea.SetWidth(innerW + 2)
	taH := bodyH - 8
	if taH > 10 {
		taH = 10
	}
	if taH < 3 {
		taH = 3
	}
	m.textarea.SetHeight(taH)
}

func (m appModel) bodySize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = 30
	}
	bodyH := h - 3
	if bodyH < 5 {
		bodyH = 5
	}
	return w, bodyH
}

// drainNotices promotes the newest engine notice to the notice bar and
// schedules its expiry.
func (m *appModel) drainNotices() tea.Cmd {
	if len(m.notices.msgs) == 0 {
		return nil
	}
	m.notice = m.notices.msgs[len(m.notices.msgs)-1]
	m.notices.msgs = m.notices.msgs[:0]
	m.noticeSeq++
	seq := m.noticeSeq

	d := m.cfg.NoticeDuration
	if d <= 0 {
		d = 4 * time.Second
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return noticeExpireMsg{seq: seq} })
}

func (m *appModel) flash(msg string) tea.Cmd {
	m.notices.msgs = append(m.notices.msgs, msg)
	return m.drainNotices()
}

// Board picker.

func (m appModel) updateBoards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()
	case "esc":
		if m.board() != nil {
			m.view = viewBoard
		}
		return m, nil
	case "enter":
		if it, ok := m.boardsList.SelectedItem().(boardItem); ok {
			m.eng.UseBoard(it.board.ID)
			m.view = viewBoard
			m.sel = boardSelection{}
			m.refreshBoards()
		}
		return m, m.drainNotices()
	case "n":
		return m.openInput(modalNewBoard, "Board name", "", "", "")
	case "e":
		if it, ok := m.boardsList.SelectedItem().(boardItem); ok {
			return m.openInput(modalRenameBoard, "Name", it.board.Name, it.board.ID, "")
		}
		return m, nil
	case "d":
		if it, ok := m.boardsList.SelectedItem().(boardItem); ok {
			m.openConfirm(modalConfirmDeleteBoard, it.board.ID, "")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.boardsList, cmd = m.boardsList.Update(msg)
	return m, cmd
}

// Board view.

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.board()
	if b == nil {
		m.view = viewBoards
		m.refreshBoards()
		return m, nil
	}
	m.sel = clampSelection(b, m.sel)

	if m.dragCtl.Phase() != drag.Idle {
		return m.updateDrag(msg, b)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()
	case "b", "tab":
		m.view = viewBoards
		m.refreshBoards()
		return m, nil
	case "left", "h":
		m.moveSelection(b, -1, 0)
		return m, nil
	case "right", "l":
		m.moveSelection(b, 1, 0)
		return m, nil
	case "up", "k":
		m.moveSelection(b, 0, -1)
		return m, nil
	case "down", "j":
		m.moveSelection(b, 0, 1)
		return m, nil
	case "enter":
		if m.sel.ProjectID != "" {
			m.openProjectID = m.sel.ProjectID
			m.detailScroll = 0
			m.view = viewDetail
		}
		return m, nil
	case "g", " ":
		if m.sel.ProjectID != "" {
			col := &b.Columns[m.sel.Col]
			m.dragCtl.DragStart(drag.Start{
				Kind:      drag.SourceProject,
				ProjectID: m.sel.ProjectID,
				ColumnID:  col.ID,
			})
			m.dragCtl.DragOver(col.ID)
		}
		return m, nil
	case "G":
		if len(b.Columns) > 0 {
			m.dragCtl.DragStart(drag.Start{Kind: drag.SourceColumn, ColumnIndex: m.sel.Col})
			m.colDrop = m.sel.Col
		}
		return m, nil
	case "n":
		if len(b.Columns) == 0 {
			return m, nil
		}
		col := &b.Columns[m.sel.Col]
		return m.openInput(modalNewProject, "Name", "", col.ID, "")
	case "c":
		return m.openInput(modalNewColumn, "Title", "", "", "")
	case "r":
		if len(b.Columns) == 0 {
			return m, nil
		}
		col := &b.Columns[m.sel.Col]
		return m.openInput(modalRenameColumn, "Title", col.Title, col.ID, "")
	case "e":
		if c, p, ok := findCard(b, m.sel.ProjectID); ok {
			return m.openInput(modalEditProjectName, "Name", p.ProjectName, p.ID, c.ID)
		}
		return m, nil
	case "E":
		if c, p, ok := findCard(b, m.sel.ProjectID); ok {
			return m.openTextarea(modalEditDescription, p.Description, p.ID, c.ID)
		}
		return m, nil
	case "d":
		if c, p, ok := findCard(b, m.sel.ProjectID); ok {
			m.openConfirm(modalConfirmDeleteProject, p.ID, c.ID)
		}
		return m, nil
	case "D":
		if len(b.Columns) == 0 {
			return m, nil
		}
		col := &b.Columns[m.sel.Col]
		m.openConfirm(modalConfirmDeleteColumn, col.ID, "")
		return m, nil
	case "s":
		m.eng.Persist()
		if m.eng.Available() {
			return m, m.flash("Saved.")
		}
		return m, m.drainNotices()
	}
	return m, nil
}

func (m *appModel) moveSelection(b *model.Board, dc, dcard int) {
	sel := m.sel
	sel.ProjectID = "" // navigation moves by position
	sel.Col += dc
	sel.Card += dcard
	m.sel = clampSelection(b, sel)
}

func (m appModel) updateDrag(msg tea.KeyMsg, b *model.Board) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "ctrl+g", "q":
		m.dragCtl.DragEnd()
		return m, nil
	case "left", "h":
		m.moveDragTarget(b, -1)
		return m, nil
	case "right", "l":
		m.moveDragTarget(b, 1)
		return m, nil
	case "enter", " ":
		switch m.dragCtl.Phase() {
		case drag.DraggingProject:
			dropped, _ := m.dragCtl.DraggingProject()
			m.dragCtl.Drop(drag.Target{ColumnID: m.dragCtl.HoverColumnID()})
			m.sel.ProjectID = dropped
		case drag.DraggingColumn:
			m.dragCtl.Drop(drag.Target{ColumnIndex: m.colDrop})
			m.sel = boardSelection{Col: m.colDrop, Card: -1}
		}
		m.sel = clampSelection(m.board(), m.sel)
		return m, m.drainNotices()
	}
	return m, nil
}

func (m *appModel) moveDragTarget(b *model.Board, delta int) {
	switch m.dragCtl.Phase() {
	case drag.DraggingProject:
		cur := m.dragCtl.HoverColumnID()
		idx := columnIndexByID(b, cur)
		if idx < 0 {
			idx = m.sel.Col
		}
		next := idx + delta
		if next < 0 || next >= len(b.Columns) {
			return
		}
		m.dragCtl.DragLeave(cur)
		m.dragCtl.DragOver(b.Columns[next].ID)
	case drag.DraggingColumn:
		next := m.colDrop + delta
		if next < 0 || next >= len(b.Columns) {
			return
		}
		m.colDrop = next
	}
}

// Detail view.

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.board()
	if b == nil {
		m.view = viewBoards
		m.refreshBoards()
		return m, nil
	}
	c, p, ok := findCard(b, m.openProjectID)
	if !ok {
		m.view = viewBoard
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()
	case "esc", "backspace":
		m.view = viewBoard
		m.sel.ProjectID = p.ID
		m.sel = clampSelection(b, m.sel)
		return m, nil
	case "down", "j":
		w, bodyH := m.bodySize()
		if m.detailScroll < detailMaxScroll(c, p, w, bodyH) {
			m.detailScroll++
		}
		return m, nil
	case "up", "k":
		if m.detailScroll > 0 {
			m.detailScroll--
		}
		return m, nil
	case "e":
		return m.openInput(modalEditProjectName, "Name", p.ProjectName, p.ID, c.ID)
	case "E":
		return m.openTextarea(modalEditDescription, p.Description, p.ID, c.ID)
	case "L":
		return m.openInput(modalAddLink, "https://…", "", p.ID, c.ID)
	case "C":
		return m.openTextarea(modalAddComment, "", p.ID, c.ID)
	case "d":
		m.openConfirm(modalConfirmDeleteProject, p.ID, c.ID)
		return m, nil
	}
	return m, nil
}

// Modals.

func (m appModel) modalWantsTextarea() bool {
	return m.modal == modalEditDescription || m.modal == modalAddComment
}

func (m appModel) modalIsConfirm() bool {
	switch m.modal {
	case modalConfirmDeleteBoard, modalConfirmDeleteColumn, modalConfirmDeleteProject:
		return true
	}
	return false
}

func (m appModel) openInput(kind modalKind, placeholder, prefill, forID, forKey string) (tea.Model, tea.Cmd) {
	m.modal = kind
	m.modalForID = forID
	m.modalForKey = forKey
	m.input.Placeholder = placeholder
	m.input.SetValue(prefill)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m appModel) openTextarea(kind modalKind, prefill, forID, forKey string) (tea.Model, tea.Cmd) {
	m.modal = kind
	m.modalForID = forID
	m.modalForKey = forKey
	m.textarea.SetValue(prefill)
	return m, m.textarea.Focus()
}

func (m *appModel) openConfirm(kind modalKind, forID, forKey string) {
	m.modal = kind
	m.modalForID = forID
	m.modalForKey = forKey
	m.confirmFocus = confirmFocusCancel
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalForID = ""
	m.modalForKey = ""
	m.pendingInput = ""
	m.confirmFocus = confirmFocusCancel
	m.input.Placeholder = ""
	m.input.SetValue("")
	m.input.Blur()
	m.textarea.SetValue("")
	m.textarea.Blur()
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modalIsConfirm() {
		return m.updateConfirmModal(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "ctrl+g":
		m.closeModal()
		return m, nil
	case "enter":
		if !m.modalWantsTextarea() {
			return m.applyModal()
		}
		// In a textarea enter inserts a newline; ctrl+s saves.
	case "ctrl+s":
		if m.modalWantsTextarea() {
			return m.applyModal()
		}
	}

	var cmd tea.Cmd
	if m.modalWantsTextarea() {
		m.textarea, cmd = m.textarea.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m appModel) applyModal() (tea.Model, tea.Cmd) {
	val := strings.TrimSpace(m.input.Value())

	switch m.modal {
	case modalNewBoard:
		if val == "" {
			m.closeModal()
			return m, nil
		}
		m.pendingInput = val
		m.modal = modalNewBoardPrefix
		m.input.SetValue("")
		m.input.Placeholder = "Prefix (default PROJ)"
		return m, nil

	case modalNewBoardPrefix:
		prefix := val
		if prefix == "" {
			prefix = "PROJ"
		}
		m.eng.CreateBoard(m.pendingInput, prefix, "")
		m.closeModal()
		m.view = viewBoard
		m.sel = boardSelection{}
		m.refreshBoards()
		return m, m.drainNotices()

	case modalRenameBoard:
		if val != "" {
			m.eng.UpdateBoard(m.modalForID, board.BoardUpdate{Name: &val})
		}
		m.closeModal()
		m.refreshBoards()
		return m, m.drainNotices()

	case modalNewColumn:
		if val != "" {
			if b := m.board(); b != nil {
				m.eng.CreateColumn(b.ID, val)
				m.sel = clampSelection(b, boardSelection{Col: len(b.Columns) - 1, Card: -1})
			}
		}
		m.closeModal()
		return m, m.drainNotices()

	case modalRenameColumn:
		if val != "" {
			if b := m.board(); b != nil {
				m.eng.RenameColumn(b.ID, m.modalForID, val)
			}
		}
		m.closeModal()
		return m, m.drainNotices()

	case modalNewProject:
		if b := m.board(); b != nil {
			if p := m.eng.CreateProject(b.ID, m.modalForID); p != nil {
				if val != "" {
					m.eng.UpdateProject(b.ID, m.modalForID, p.ID, board.ProjectUpdate{ProjectName: &val})
				}
				m.sel.ProjectID = p.ID
				m.sel = clampSelection(b, m.sel)
			}
		}
		m.closeModal()
		return m, m.drainNotices()

	case modalEditProjectName:
		if val != "" {
			if b := m.board(); b != nil {
				m.eng.UpdateProject(b.ID, m.modalForKey, m.modalForID, board.ProjectUpdate{ProjectName: &val})
			}
		}
		m.closeModal()
		return m, m.drainNotices()

	case modalEditDescription:
		desc := m.textarea.Value()
		if b := m.board(); b != nil {
			m.eng.UpdateProject(b.ID, m.modalForKey, m.modalForID, board.ProjectUpdate{Description: &desc})
		}
		m.closeModal()
		return m, m.drainNotices()

	case modalAddLink:
		if val == "" {
			m.closeModal()
			return m, nil
		}
		m.pendingInput = val
		m.modal = modalAddLinkTitle
		m.input.SetValue("")
		m.input.Placeholder = "Title (optional)"
		return m, nil

	case modalAddLinkTitle:
		if b := m.board(); b != nil {
			m.eng.AddLink(b.ID, m.modalForKey, m.modalForID, val, m.pendingInput)
		}
		m.closeModal()
		return m, m.drainNotices()

	case modalAddComment:
		text := m.textarea.Value()
		if b := m.board(); b != nil {
			m.eng.AddComment(b.ID, m.modalForKey, m.modalForID, text)
		}
		m.closeModal()
		return m, m.drainNotices()
	}

	m.closeModal()
	return m, nil
}

func (m appModel) updateConfirmModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "ctrl+g", "n":
		m.closeModal()
		return m, nil
	case "tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.applyConfirm()
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.applyConfirm()
		}
		m.closeModal()
		return m, nil
	}
	return m, nil
}

func (m appModel) applyConfirm() (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDeleteBoard:
		m.eng.DeleteBoard(m.modalForID)
		m.closeModal()
		m.refreshBoards()
		m.sel = boardSelection{}
		if m.board() == nil {
			m.view = viewBoards
		}
		return m, m.drainNotices()

	case modalConfirmDeleteColumn:
		if b := m.board(); b != nil {
			m.eng.DeleteColumn(b.ID, m.modalForID)
			m.sel.ProjectID = ""
			m.sel = clampSelection(b, m.sel)
		}
		m.closeModal()
		return m, m.drainNotices()

	case modalConfirmDeleteProject:
		if b := m.board(); b != nil {
			m.eng.DeleteProject(b.ID, m.modalForKey, m.modalForID)
			if m.view == viewDetail {
				m.view = viewBoard
			}
			m.sel.ProjectID = ""
			m.sel = clampSelection(b, m.sel)
		}
		m.closeModal()
		return m, m.drainNotices()
	}
	m.closeModal()
	return m, nil
}

// Rendering.

func (m appModel) View() string {
	w, bodyH := m.bodySize()

	var body string
	switch m.view {
	case viewBoards:
		if len(m.eng.DB().Boards) == 0 {
			body = styleMuted().Render("No boards yet. Press n to create one.")
		} else {
			body = m.boardsList.View()
		}
	case viewBoard:
		if b := m.board(); b != nil {
			body = renderBoard(b, m.sel, m.dragState(), w, bodyH)
		}
	case viewDetail:
		if b := m.board(); b != nil {
			if c, p, ok := findCard(b, m.openProjectID); ok {
				body = renderProjectDetail(c, p, w, bodyH, m.detailScroll)
			}
		}
	}
	if m.modal != modalNone {
		body = lipgloss.Place(w, bodyH, lipgloss.Center, lipgloss.Center, m.viewModal(w))
	}
	body = normalizePane(body, w, bodyH)

	return strings.Join([]string{m.viewHeader(w), body, m.viewNotice(w), m.viewFooter(w)}, "\n")
}

func (m appModel) dragState() dragView {
	d := dragView{
		phase:    m.dragCtl.Phase(),
		hoverCol: m.dragCtl.HoverColumnID(),
		dropCol:  m.colDrop,
		fromCol:  -1,
	}
	if id, ok := m.dragCtl.DraggingProject(); ok {
		d.projectID = id
	}
	if from, ok := m.dragCtl.DraggingColumn(); ok {
		d.fromCol = from
	}
	return d
}

func (m appModel) viewHeader(w int) string {
	db := m.eng.DB()
	bold := lipgloss.NewStyle().Bold(true)

	line := bold.Foreground(colorAccent).Render("kanbo")
	if b, ok := db.CurrentBoard(); ok && m.view != viewBoards {
		line += bold.Render(truncateText(fmt.Sprintf(" · %s [%s]", b.Name, b.ProjectIDPrefix), w-24))
	} else {
		line += bold.Render(fmt.Sprintf(" · %d boards", len(db.Boards)))
	}
	if !m.eng.Available() {
		line += lipgloss.NewStyle().Foreground(colorDanger).Bold(true).Render("  · memory only")
	}
	return normalizePane(line, w, 1)
}

func (m appModel) viewNotice(w int) string {
	if m.notice == "" {
		return normalizePane("", w, 1)
	}
	st := lipgloss.NewStyle().Foreground(colorSurfaceFg).Background(colorControlBg).Bold(true)
	return normalizePane(st.Render(truncateText(" "+m.notice+" ", w)), w, 1)
}

func (m appModel) viewFooter(w int) string {
	var help string
	switch {
	case m.modal != modalNone:
		// The modal carries its own help line.
	case m.view == viewBoards:
		help = "enter: open  n: new  e: rename  d: delete  esc: back  q: quit"
	case m.view == viewDetail:
		help = "j/k: scroll  e: name  E: description  L: link  C: comment  d: delete  esc: back  q: quit"
	case m.dragCtl.Phase() == drag.DraggingProject:
		help = "h/l: pick column  enter: drop  esc: cancel"
	case m.dragCtl.Phase() == drag.DraggingColumn:
		help = "h/l: pick position  enter: drop  esc: cancel"
	default:
		help = "hjkl: move  enter: open  g: grab card  G: grab column  n: new card  c: new column  e/E: edit  d/D: delete  b: boards  s: save  q: quit"
	}
	return normalizePane(styleMuted().Render(truncateText(help, w)), w, 1)
}

func (m appModel) viewModal(w int) string {
	db := m.eng.DB()

	switch m.modal {
	case modalNewBoard:
		return renderInputModal(w, "New board", "Name your board.", m.input.View())
	case modalNewBoardPrefix:
		return renderInputModal(w, "New board", "Short prefix for card ids (WRK makes WRK-001).", m.input.View())
	case modalRenameBoard:
		return renderInputModal(w, "Rename board", "", m.input.View())
	case modalNewColumn:
		return renderInputModal(w, "New column", "", m.input.View())
	case modalRenameColumn:
		return renderInputModal(w, "Rename column", "", m.input.View())
	case modalNewProject:
		return renderInputModal(w, "New card", "Leave empty for \"New Project\".", m.input.View())
	case modalEditProjectName:
		return renderInputModal(w, "Rename card", "", m.input.View())
	case modalAddLink:
		return renderInputModal(w, "Add link", "http and https URLs only.", m.input.View())
	case modalAddLinkTitle:
		return renderInputModal(w, "Add link", "Optional title; defaults to the URL.", m.input.View())
	case modalEditDescription:
		return renderTextareaModal(w, "Edit description", m.textarea.View())
	case modalAddComment:
		return renderTextareaModal(w, "Add comment", m.textarea.View())

	case modalConfirmDeleteBoard:
		name := m.modalForID
		if b, ok := db.FindBoard(m.modalForID); ok {
			name = b.Name
		}
		return renderConfirmModal(w, "Delete board",
			fmt.Sprintf("Delete board %q and all its projects?", name),
			"Delete", "Cancel", m.confirmFocus)

	case modalConfirmDeleteColumn:
		title := m.modalForID
		if b := m.board(); b != nil {
			if idx := columnIndexByID(b, m.modalForID); idx >= 0 {
				title = b.Columns[idx].Title
			}
		}
		return renderConfirmModal(w, "Delete column",
			fmt.Sprintf("Delete column %q and the cards in it?", title),
			"Delete", "Cancel", m.confirmFocus)

	case modalConfirmDeleteProject:
		label := m.modalForID
		if b := m.board(); b != nil {
			if _, p, ok := findCard(b, m.modalForID); ok {
				label = p.ProjectID
			}
		}
		return renderConfirmModal(w, "Delete card",
			fmt.Sprintf("Delete %s?", label),
			"Delete", "Cancel", m.confirmFocus)
	}
	return ""
}
