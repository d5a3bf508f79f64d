package export

import (
	"strings"
	"testing"
	"time"

	"kanbo/internal/model"
	"kanbo/internal/store"
)

func TestWriteMarkdownRendersBoardSections(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
	db := &store.DB{
		Version:        store.StateVersion,
		CurrentBoardID: "board-1",
		Boards: []model.Board{{
			ID:              "board-1",
			Name:            "Work",
			ProjectIDPrefix: "WRK",
			Description:     "Release planning.",
			Columns: []model.Column{
				{ID: "col-a", Title: "To Do", Order: 0, Projects: []model.Project{{
					ID:          "proj-1",
					ProjectID:   "WRK-001",
					ProjectName: "Ship it",
					Description: "Needs a *rollout* plan.",
					Links:       []model.Link{{ID: "link-1", Title: "Spec doc", URL: "https://example.com"}},
					Comments:    []model.Comment{{ID: "cmt-1", Text: "On it.", Timestamp: ts}},
				}}},
				{ID: "col-b", Title: "Done", Order: 1, Projects: []model.Project{}},
			},
		}},
	}

	var sb strings.Builder
	if err := WriteMarkdown(&sb, db, ts); err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"# Work [WRK]",
		"Release planning.",
		"## To Do (1)",
		"### WRK-001 · Ship it",
		"Needs a *rollout* plan.",
		"- [Spec doc](https://example.com)",
		"- Mar 14, 2026 9:26 AM · On it.",
		"## Done (0)",
		"_empty_",
		"_Exported Mar 14, 2026 9:26 AM._",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestWriteMarkdownSeparatesBoards(t *testing.T) {
	db := &store.DB{
		Version: store.StateVersion,
		Boards: []model.Board{
			{ID: "board-1", Name: "Work", ProjectIDPrefix: "WRK"},
			{ID: "board-2", Name: "Home", ProjectIDPrefix: "HM"},
		},
	}

	var sb strings.Builder
	if err := WriteMarkdown(&sb, db, time.Now().UTC()); err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "# Work [WRK]") || !strings.Contains(out, "# Home [HM]") {
		t.Fatalf("missing board headings:\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Fatalf("missing board separator:\n%s", out)
	}
	if strings.Index(out, "# Work") > strings.Index(out, "# Home") {
		t.Fatalf("boards out of order:\n%s", out)
	}
}

func TestWriteMarkdownEmptyStore(t *testing.T) {
	if err := WriteMarkdown(&strings.Builder{}, store.NewDB(), time.Now()); err != ErrNoBoards {
		t.Fatalf("expected ErrNoBoards, got %v", err)
	}
}

func TestMarkdownFilename(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	if got := MarkdownFilename(now); got != "kanbo-export-2026-03-14.md" {
		t.Fatalf("filename = %q", got)
	}
}
