package report

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Markers the analyzer writes into its report.
const (
	SummaryMarker = "===RESUMEN==="
	SuccessGlyph  = "✅"
	ErrorGlyph    = "❌"
	CommentPrefix = ";"
	LinePrefix    = "- Línea"
	FieldArrow    = "→"
	ErrorLabel    = "Error:"

	LexicalHeader  = "⚠ Errores Léxicos:"
	SyntaxHeader   = "🧱 Errores de Sintaxis:"
	SemanticHeader = "🧠 Errores Semánticos:"
)

// variationSelector is appended to some glyphs (⚠️) depending on the
// emitter; headers are compared with it removed.
const variationSelector = "\uFE0F"

var (
	categoryHeaderRe = regexp.MustCompile(`^([\p{L}\s]+) \(\d+\):`)
	summaryLineRe    = regexp.MustCompile(`^([\p{L}\s]+):\s*(\d+)`)
)

type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionCategory
	sectionLexical
	sectionSyntax
	sectionSemantic
	sectionSummary
)

func (k sectionKind) String() string {
	switch k {
	case sectionNone:
		return "none"
	case sectionCategory:
		return "category"
	case sectionLexical:
		return "lexical"
	case sectionSyntax:
		return "syntax"
	case sectionSemantic:
		return "semantic"
	case sectionSummary:
		return "summary"
	default:
		return fmt.Sprintf("section(%d)", int(k))
	}
}

// section is the classifier state. label is only set for sectionCategory.
type section struct {
	kind  sectionKind
	label string
}

// errorHeaders is checked in order; the first matching prefix wins.
var errorHeaders = []struct {
	prefix string
	kind   sectionKind
}{
	{LexicalHeader, sectionLexical},
	{SyntaxHeader, sectionSyntax},
	{SemanticHeader, sectionSemantic},
}

// reservedSections maps the error-section keys to their sections so that a
// category header using one of them switches to the error section instead
// of creating a token category.
var reservedSections = map[string]sectionKind{
	KeyLexicalErrors:  sectionLexical,
	KeySyntaxErrors:   sectionSyntax,
	KeySemanticErrors: sectionSemantic,
}

// Parse classifies every line of an analyzer report. It never fails; lines
// it cannot attribute to a section are ignored.
func Parse(text string) *ParsedReport {
	p := &parser{out: newParsedReport()}
	for _, line := range strings.Split(text, "\n") {
		p.line(line)
	}
	return p.out
}

// ParseReader reads r to EOF and parses the result.
func ParseReader(r io.Reader) (*ParsedReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return Parse(string(data)), nil
}

type parser struct {
	cur section
	out *ParsedReport
}

// line applies the classification rules in precedence order. Later rules
// rely on earlier ones having claimed their lines.
func (p *parser) line(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	if line == SummaryMarker {
		p.cur = section{kind: sectionSummary}
		return
	}

	if strings.HasPrefix(line, SuccessGlyph) {
		p.out.SuccessMessages = append(p.out.SuccessMessages, line)
		return
	}

	if p.cur.kind == sectionSummary {
		// The summary block is trailing; nothing leaves it.
		if label, count, ok := parseSummaryLine(line); ok {
			p.out.setSummary(label, count)
		}
		return
	}

	if kind, ok := matchErrorHeader(line); ok {
		p.cur = section{kind: kind}
		return
	}

	switch p.cur.kind {
	case sectionSyntax:
		if strings.HasPrefix(line, LinePrefix) {
			p.out.SyntaxErrors = append(p.out.SyntaxErrors, line)
			return
		}
	case sectionSemantic:
		if strings.HasPrefix(line, LinePrefix) {
			p.out.SemanticErrors = append(p.out.SemanticErrors, line)
			return
		}
	case sectionLexical:
		if strings.Contains(line, FieldArrow) {
			if le, ok := parseLexicalError(line); ok {
				p.out.LexicalErrors = append(p.out.LexicalErrors, le)
			}
			return
		}
	}

	if label, ok := matchCategoryHeader(line); ok {
		if kind, reserved := reservedSections[label]; reserved {
			p.cur = section{kind: kind}
			return
		}
		p.out.category(label)
		p.cur = section{kind: sectionCategory, label: label}
		return
	}

	if p.cur.kind == sectionCategory {
		p.out.category(p.cur.label).add(stripTokenGlyph(line))
	}
}

func matchErrorHeader(line string) (sectionKind, bool) {
	bare := strings.ReplaceAll(line, variationSelector, "")
	for _, h := range errorHeaders {
		if strings.HasPrefix(bare, h.prefix) {
			return h.kind, true
		}
	}
	return sectionNone, false
}

func matchCategoryHeader(line string) (string, bool) {
	m := categoryHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	label := strings.TrimSpace(m[1])
	return label, label != ""
}

func parseSummaryLine(line string) (string, int, bool) {
	m := summaryLineRe.FindStringSubmatch(line)
	if m == nil {
		return "", 0, false
	}
	label := strings.TrimSpace(m[1])
	if label == "" {
		return "", 0, false
	}
	count, err := strconv.Atoi(m[2])
	if err != nil {
		// Only overflow gets here.
		return "", 0, false
	}
	return label, count, true
}

// parseLexicalError splits "❌ 'tok' → Error: message" at the first arrow.
func parseLexicalError(line string) (LexicalError, bool) {
	left, right, _ := strings.Cut(line, FieldArrow)

	token := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(left), ErrorGlyph))
	token = strings.TrimSuffix(strings.TrimPrefix(token, "'"), "'")

	suggestion := strings.TrimSpace(right)
	suggestion = strings.TrimSpace(strings.TrimPrefix(suggestion, ErrorLabel))

	if token == "" || suggestion == "" {
		return LexicalError{}, false
	}
	return LexicalError{Token: token, Suggestion: suggestion}, true
}

// stripTokenGlyph removes one leading comment or error marker.
func stripTokenGlyph(line string) string {
	switch {
	case strings.HasPrefix(line, CommentPrefix):
		line = strings.TrimPrefix(line, CommentPrefix)
	case strings.HasPrefix(line, ErrorGlyph):
		line = strings.TrimPrefix(line, ErrorGlyph)
	}
	return strings.TrimSpace(line)
}
