package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/domain/models"
	"github.com/VasupriyaPatnaik/AI-Redliner/internal/workspace"
)

var (
	colorConflict   = lipgloss.Color("#EF4444")
	colorGap        = lipgloss.Color("#F59E0B")
	colorIrrelevant = lipgloss.Color("#9CA3AF")
	colorSuccess    = lipgloss.Color("#8BC34A")
)

// printer writes command output. Styles are bound to the output writer so
// colors are dropped when it is not a terminal.
type printer struct {
	w io.Writer

	title lipgloss.Style
	muted lipgloss.Style
	ok    lipgloss.Style
	kinds map[models.RedlineType]lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:     w,
		title: r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(colorIrrelevant),
		ok:    r.NewStyle().Foreground(colorSuccess),
		kinds: map[models.RedlineType]lipgloss.Style{
			models.RedlineConflict:   r.NewStyle().Bold(true).Foreground(colorConflict),
			models.RedlineGap:        r.NewStyle().Bold(true).Foreground(colorGap),
			models.RedlineIrrelevant: r.NewStyle().Foreground(colorIrrelevant),
		},
	}
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) heading(text string) {
	fmt.Fprintln(p.w, p.title.Render(text))
}

func (p *printer) success(text string) {
	fmt.Fprintln(p.w, p.ok.Render(text))
}

func (p *printer) table(headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// pager prints the "page x of y" footer under a list.
func (p *printer) pager(page, totalPages, totalItems int) {
	if totalItems == 0 {
		p.line("%s", p.muted.Render("No results."))
		return
	}
	p.line("%s", p.muted.Render(fmt.Sprintf("Page %d of %d (%d total)", page, max(totalPages, 1), totalItems)))
}

func (p *printer) redlines(redlines []models.Redline) {
	if len(redlines) == 0 {
		p.line("%s", p.muted.Render("No findings."))
		return
	}
	for _, rl := range redlines {
		label := p.kinds[rl.Type].Render(fmt.Sprintf("%-10s", strings.ToUpper(string(rl.Type))))
		p.line("%s %s", label, rl.Text)
	}
}

func (p *printer) counts(counts map[models.RedlineType]int) {
	parts := make([]string, 0, len(models.RedlineTypes))
	for _, typ := range models.RedlineTypes {
		parts = append(parts, p.kinds[typ].Render(fmt.Sprintf("%s: %d", typ, counts[typ])))
	}
	p.line("%s", strings.Join(parts, "  "))
}

func stateLabel(state workspace.RecordState) string {
	if state == workspace.Confirmed {
		return ""
	}
	return " (" + state.String() + ")"
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
