// Package view turns a parsed report into the sections a renderer shows.
//
// Both the HTML templates and the terminal renderer consume [Page], so the
// display rules live here once: empty sections are hidden, and comment
// tokens get their marker back for display.
package view

import (
	"github.com/JonMunkholm/reportviewer/internal/report"
)

// Section titles.
const (
	TitleLexical  = "⚠️ Errores Léxicos"
	TitleSyntax   = "🧱 Errores de Sintaxis"
	TitleSemantic = "🧠 Errores Semánticos"
	TitleSuccess  = "✅ Análisis Exitoso"
	TitleTokens   = "Tokens Encontrados"
	TitleSummary  = "📊 Resumen de Tokens"
)

// CategoryBlock is one visible token category.
type CategoryBlock struct {
	Name   string
	Count  int
	Tokens []string
}

// SummaryItem is one label/count pair from the summary block.
type SummaryItem struct {
	Label string
	Count int
}

// Page is everything a renderer needs, already filtered and ordered.
type Page struct {
	LexicalErrors   []report.LexicalError
	SyntaxErrors    []string
	SemanticErrors  []string
	SuccessMessages []string
	Categories      []CategoryBlock
	Summary         []SummaryItem
}

// Build derives the page for r. A nil report yields an empty page.
func Build(r *report.ParsedReport) Page {
	var p Page
	if r == nil {
		return p
	}

	p.LexicalErrors = r.LexicalErrors
	p.SyntaxErrors = r.SyntaxErrors
	p.SemanticErrors = r.SemanticErrors
	p.SuccessMessages = r.SuccessMessages

	for _, c := range r.Categories {
		if report.IsErrorKey(c.Name) || c.Len() == 0 {
			continue
		}
		block := CategoryBlock{
			Name:   c.Name,
			Count:  c.Len(),
			Tokens: make([]string, len(c.Tokens)),
		}
		for i, tok := range c.Tokens {
			block.Tokens[i] = DisplayToken(c.Name, tok)
		}
		p.Categories = append(p.Categories, block)
	}

	for _, label := range r.SummaryLabels {
		count, ok := r.Summary[label]
		if !ok {
			continue
		}
		p.Summary = append(p.Summary, SummaryItem{Label: label, Count: count})
	}

	return p
}

// DisplayToken returns tok as it should be shown under category.
func DisplayToken(category, tok string) string {
	if category == report.CategoryComments {
		return report.CommentPrefix + tok
	}
	return tok
}

// ShowLexical reports whether the lexical error section is visible.
func (p Page) ShowLexical() bool { return len(p.LexicalErrors) > 0 }

// ShowSyntax reports whether the syntax error section is visible.
func (p Page) ShowSyntax() bool { return len(p.SyntaxErrors) > 0 }

// ShowSemantic reports whether the semantic error section is visible.
func (p Page) ShowSemantic() bool { return len(p.SemanticErrors) > 0 }

// ShowSuccess reports whether the success section is visible.
func (p Page) ShowSuccess() bool { return len(p.SuccessMessages) > 0 }

// ShowSummary reports whether the summary section is visible.
func (p Page) ShowSummary() bool { return len(p.Summary) > 0 }

// Empty reports whether no section would be shown.
func (p Page) Empty() bool {
	return !p.ShowLexical() && !p.ShowSyntax() && !p.ShowSemantic() &&
		!p.ShowSuccess() && !p.ShowSummary() && len(p.Categories) == 0
}
