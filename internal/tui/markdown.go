package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style + wrap width. Creating a renderer with
	// WithAutoStyle can trigger terminal capability queries that block on
	// some terminals, so we pick the style ourselves and keep it fixed.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders a project description for the detail pane.
func renderMarkdown(md string, width int) string {
	return renderMarkdownCached(md, width, "", func(cfg *ansi.StyleConfig) {})
}

// renderMarkdownCompact renders without block margins, for dense inline
// listings such as comment bodies.
func renderMarkdownCompact(md string, width int) string {
	return renderMarkdownCached(md, width, "compact", func(cfg *ansi.StyleConfig) {
		zero := uint(0)
		cfg.Document.Margin = &zero
		cfg.Paragraph.Margin = &zero
		cfg.BlockQuote.Margin = &zero
		cfg.List.Margin = &zero
		cfg.Heading.Margin = &zero
		cfg.CodeBlock.Margin = &zero
	})
}

func renderMarkdownCached(md string, width int, variant string, tweak func(*ansi.StyleConfig)) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	styleName := markdownStyle()
	key := styleName + ":" + variant + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		cfg := markdownStyleConfig(styleName)
		tweak(&cfg)
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		// A concurrent goroutine may have filled the slot meanwhile.
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	if styleName == "light" {
		return styles.LightStyleConfig
	}
	return styles.DarkStyleConfig
}

// markdownStyle keeps markdown styling aligned with the TUI theme.
// Without this, descriptions can render with a dark palette even when
// the TUI is forced to light mode.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("KANBO_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
