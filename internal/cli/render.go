package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gravity-note/gravity-note/internal/highlight"
	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/preview"
	"github.com/gravity-note/gravity-note/internal/store"
)

var (
	colorSubtext  = lipgloss.Color("#908caa")
	colorLavender = lipgloss.Color("#c4a7e7")
	colorPeach    = lipgloss.Color("#f6c177")
	colorGreen    = lipgloss.Color("#9ccfd8")

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorLavender).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorSubtext)
	titleStyle = lipgloss.NewStyle().Bold(true)
	matchStyle = lipgloss.NewStyle().Foreground(colorPeach).Bold(true).Underline(true)
	metaStyle  = lipgloss.NewStyle().Foreground(colorSubtext)
	badgeStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// styled renders text with every occurrence of query in matchStyle.
func styled(text, query string, base lipgloss.Style) string {
	var sb strings.Builder
	for _, seg := range highlight.Segments(text, query) {
		if seg.Match {
			sb.WriteString(matchStyle.Render(seg.Text))
		} else {
			sb.WriteString(base.Render(seg.Text))
		}
	}
	return sb.String()
}

// renderResponse prints sections with matches styled. Unless full is set,
// long notes are shown as an excerpt.
func renderResponse(w io.Writer, resp *model.UnifiedNotesResponse, full bool) {
	query := resp.Metadata.Query
	if resp.TotalNotes == 0 && len(resp.Sections) == 0 {
		if query != "" {
			fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("No notes match %q.", query)))
		} else {
			fmt.Fprintln(w, metaStyle.Render("No notes yet."))
		}
		return
	}
	for i, sec := range resp.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("%s (%d)", sec.DisplayName, sec.TotalCount)))
		for _, n := range sec.Notes {
			renderNote(w, n.Note, query, full)
		}
	}
	fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("%d notes · %s · %dms", resp.TotalNotes, resp.Metadata.Mode, resp.Metadata.SearchTime)))
}

func renderNote(w io.Writer, n model.Note, query string, full bool) {
	header := metaStyle.Render(n.ID + "  " + n.UpdatedAt.Local().Format(time.DateTime))
	if n.IsRescued {
		header += " " + badgeStyle.Render("rescued")
	}
	content := n.Content
	if !full {
		ex := preview.For(content, query, preview.DefaultMaxLen)
		content = ex.Text
		if ex.Clipped {
			header += metaStyle.Render(fmt.Sprintf(" (lines %d-%d)", ex.StartLine, ex.EndLine))
		}
	}
	fmt.Fprintln(w, header)
	if n.Title != "" {
		fmt.Fprintln(w, "  "+styled(n.Title, query, titleStyle))
	}
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintln(w, "  "+styled(line, query, lipgloss.NewStyle()))
	}
}

func renderStats(w io.Writer, st *store.Stats) {
	fmt.Fprintln(w, sectionStyle.Render("Notes for "+st.UserID))
	fmt.Fprintf(w, "  total    %d\n", st.TotalNotes)
	fmt.Fprintf(w, "  rescued  %d\n", st.RescuedNotes)
	for _, g := range model.TemporalGroups {
		fmt.Fprintf(w, "  %-13s %d\n", g.DisplayName(), st.TimeGroups[g])
	}
	if st.LastUpdatedAt != nil {
		fmt.Fprintln(w, metaStyle.Render("last updated "+st.LastUpdatedAt.Local().Format(time.DateTime)))
	}
	if st.DBPath != "" {
		fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("%s (%d bytes)", st.DBPath, st.DBSizeBytes)))
	}
}

func printNote(w io.Writer, n *model.Note) {
	if textFormat() {
		renderNote(w, *n, "", true)
		return
	}
	writeJSON(w, n)
}

func renderLineage(w io.Writer, l *store.Lineage) {
	renderNote(w, l.Note, "", true)
	if len(l.Ancestors) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("Rescued from"))
		for _, a := range l.Ancestors {
			renderNote(w, a, "", false)
		}
	}
	if len(l.Rescues) > 0 {
		fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("Rescued copies (%d)", len(l.Rescues))))
		for _, r := range l.Rescues {
			renderNote(w, r, "", false)
		}
	}
}
