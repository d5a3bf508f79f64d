package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func modalBodyWidth(width int) int {
	w := width - 10
	if w > 60 {
		w = 60
	}
	if w < 24 {
		w = 24
	}
	return w
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(bodyW).
		Padding(0, 1).
		Render(truncateText(title, bodyW-2))

	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(0, 1).
		Render(content)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(header + "\n" + body)
}

func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// Text inputs must stay a single visual line inside modals. Stray
	// newlines (or ANSI overflow) read like newline insertion while
	// typing.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the modal body width; terminate ANSI styling so
		// colors cannot bleed into the surrounding box.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

func renderInputModal(width int, title, prompt, inputView string) string {
	bodyW := modalBodyWidth(width) - 2
	var parts []string
	if prompt != "" {
		parts = append(parts, styleMuted().Width(bodyW).Render(prompt))
	}
	parts = append(parts,
		renderInputLine(bodyW, inputView),
		"",
		styleMuted().Width(bodyW).Render("enter: save   esc: cancel"),
	)
	return renderModalBox(width, title, strings.Join(parts, "\n"))
}

func renderTextareaModal(width int, title, textareaView string) string {
	bodyW := modalBodyWidth(width) - 2
	content := strings.Join([]string{
		textareaView,
		"",
		styleMuted().Width(bodyW).Render("ctrl+s: save   esc: cancel"),
	}, "\n")
	return renderModalBox(width, title, content)
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	// No borders on the buttons: nesting bordered components inside a
	// modal with a background color shows artifacts on some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorAccentFg).
		Background(colorDanger).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	} else {
		cancel = btnActive.Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width) - 2
	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		styleMuted().Width(bodyW).Render("tab: focus   enter: select   y/n   esc: cancel"),
	}, "\n")
	return renderModalBox(width, title, content)
}
