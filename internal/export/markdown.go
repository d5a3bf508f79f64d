package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"kanbo/internal/model"
	"kanbo/internal/store"
)

// WriteMarkdown renders every board as a shareable Markdown document:
// a heading per board, a section per column, a subsection per card with
// its description, links, and comments. Activity history stays out; the
// JSON snapshot is the lossless format.
func WriteMarkdown(w io.Writer, db *store.DB, now time.Time) error {
	if len(db.Boards) == 0 {
		return ErrNoBoards
	}
	var sb strings.Builder
	writeLn := func(s string) {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	for bi := range db.Boards {
		b := &db.Boards[bi]
		if bi > 0 {
			writeLn("---")
			writeLn("")
		}
		head := "# " + strings.TrimSpace(b.Name)
		if b.ProjectIDPrefix != "" {
			head += " [" + b.ProjectIDPrefix + "]"
		}
		writeLn(head)
		writeLn("")
		if d := strings.TrimSpace(b.Description); d != "" {
			writeLn(d)
			writeLn("")
		}

		for ci := range b.Columns {
			c := &b.Columns[ci]
			writeLn(fmt.Sprintf("## %s (%d)", c.Title, len(c.Projects)))
			writeLn("")
			if len(c.Projects) == 0 {
				writeLn("_empty_")
				writeLn("")
				continue
			}

			for pi := range c.Projects {
				p := &c.Projects[pi]
				name := strings.TrimSpace(p.ProjectName)
				if name == "" {
					name = "(untitled)"
				}
				writeLn(fmt.Sprintf("### %s · %s", p.ProjectID, name))
				writeLn("")
				if d := strings.TrimSpace(p.Description); d != "" {
					writeLn(d)
					writeLn("")
				}
				if len(p.Links) > 0 {
					for _, l := range p.Links {
						writeLn(fmt.Sprintf("- [%s](%s)", l.Title, l.URL))
					}
					writeLn("")
				}
				for _, cm := range p.Comments {
					writeLn(markdownComment(cm))
				}
				if len(p.Comments) > 0 {
					writeLn("")
				}
			}
		}
	}

	writeLn(fmt.Sprintf("_Exported %s._", now.Format("Jan 2, 2006 3:04 PM")))

	_, err := io.WriteString(w, sb.String())
	return err
}

// markdownComment renders one comment as a list item; continuation
// lines are indented so multi-line comments stay inside the item.
func markdownComment(cm model.Comment) string {
	lines := strings.Split(strings.TrimSpace(cm.Text), "\n")
	body := strings.Join(lines, "\n  ")
	return fmt.Sprintf("- %s · %s", cm.Timestamp.Format("Jan 2, 2006 3:04 PM"), body)
}

// MarkdownFilename is the default export name, dated like the JSON and
// CSV variants.
func MarkdownFilename(now time.Time) string {
	return fmt.Sprintf("kanbo-export-%s.md", now.Format("2006-01-02"))
}
