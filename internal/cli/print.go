package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/JonMunkholm/reportviewer/internal/report"
	"github.com/JonMunkholm/reportviewer/internal/view"
)

// Print writes parsed to w as "table" (default) or "json".
func Print(w io.Writer, parsed *report.ParsedReport, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return printJSON(w, parsed)
	case "", "table", "text":
		return printTables(w, view.Build(parsed))
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}

func printJSON(w io.Writer, parsed *report.ParsedReport) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(parsed)
}

type styles struct {
	title   lipgloss.Style
	err     lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

// newStyles picks colors for w; non-terminals get plain text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func printTables(w io.Writer, p view.Page) error {
	st := newStyles(w)

	if p.Empty() {
		_, err := fmt.Fprintln(w, st.muted.Render("(reporte vacío)"))
		return err
	}

	if p.ShowLexical() {
		section(w, st.err, view.TitleLexical)
		t := newTable(w)
		t.AppendHeader(table.Row{"Token", "Sugerencia"})
		for _, le := range p.LexicalErrors {
			t.AppendRow(table.Row{"'" + le.Token + "'", le.Suggestion})
		}
		t.Render()
	}

	printLines(w, st.err, view.TitleSyntax, p.SyntaxErrors)
	printLines(w, st.err, view.TitleSemantic, p.SemanticErrors)
	printLines(w, st.success, view.TitleSuccess, p.SuccessMessages)

	if len(p.Categories) > 0 {
		section(w, st.title, view.TitleTokens)
		t := newTable(w)
		t.AppendHeader(table.Row{"Categoría", "#", "Tokens"})
		for _, c := range p.Categories {
			t.AppendRow(table.Row{c.Name, c.Count, strings.Join(c.Tokens, " ")})
		}
		t.Render()
	}

	if p.ShowSummary() {
		section(w, st.title, view.TitleSummary)
		t := newTable(w)
		t.AppendHeader(table.Row{"Categoría", "Cantidad"})
		for _, item := range p.Summary {
			t.AppendRow(table.Row{item.Label, item.Count})
		}
		t.Render()
	}

	return nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func section(w io.Writer, style lipgloss.Style, title string) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, style.Render(title))
}

func printLines(w io.Writer, style lipgloss.Style, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	section(w, style, title)
	for _, line := range lines {
		_, _ = fmt.Fprintf(w, "  %s\n", line)
	}
}
