package export

import (
	"io"
	"strings"

	"kanbo/internal/model"
	"kanbo/internal/store"
)

var csvColumns = []string{
	"Board Name",
	"Column Name",
	"Project ID",
	"Project Name",
	"Description",
	"Links",
	"Comments",
	"Created Date",
}

// WriteCSV writes one row per project under the fixed header, in board,
// then column, then card order. The projection is lossy: links and
// comments collapse to joined cells and the activity log contributes
// only the creation date.
func WriteCSV(w io.Writer, db *store.DB) error {
	if len(db.Boards) == 0 {
		return ErrNoBoards
	}
	var sb strings.Builder
	writeCSVRow(&sb, csvColumns)
	for bi := range db.Boards {
		b := &db.Boards[bi]
		for ci := range b.Columns {
			c := &b.Columns[ci]
			for pi := range c.Projects {
				p := &c.Projects[pi]
				writeCSVRow(&sb, []string{
					b.Name,
					c.Title,
					p.ProjectID,
					p.ProjectName,
					p.Description,
					joinLinks(p.Links),
					joinComments(p.Comments),
					createdDate(p),
				})
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// csvField quotes a value only when it contains a comma, a double
// quote, or a newline, doubling embedded quotes. encoding/csv would
// additionally quote fields with leading spaces, which changes the
// output for indented descriptions, so the rule is applied directly.
func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func writeCSVRow(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(csvField(f))
	}
	sb.WriteByte('\n')
}

func joinLinks(links []model.Link) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, l.Title+": "+l.URL)
	}
	return strings.Join(parts, " | ")
}

func joinComments(comments []model.Comment) string {
	parts := make([]string, 0, len(comments))
	for _, c := range comments {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, " | ")
}

// createdDate reads the card's creation date off its activity log.
func createdDate(p *model.Project) string {
	for _, a := range p.ActivityLog {
		if a.Action == model.ActionCreated {
			return a.Timestamp.Format("2006-01-02")
		}
	}
	return "Unknown"
}
