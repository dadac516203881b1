package report

// Category labels emitted by the analyzer for token groups.
const (
	CategoryReserved    = "Palabras reservadas"
	CategoryIdentifiers = "Identificadores"
	CategoryOperators   = "Operadores"
	CategoryNumbers     = "Números"
	CategorySymbols     = "Símbolos"
	CategoryStrings     = "Cadenas"
	CategoryComments    = "Comentarios"
)

// Keys reserved for the error sections. A token category never uses one
// of these names.
const (
	KeyLexicalErrors  = "Errores"
	KeySyntaxErrors   = "ErroresSintacticos"
	KeySemanticErrors = "ErroresSemanticos"
)

// KnownCategories lists the token categories the analyzer is known to emit,
// in the order it emits them.
var KnownCategories = []string{
	CategoryReserved,
	CategoryIdentifiers,
	CategoryOperators,
	CategoryNumbers,
	CategorySymbols,
	CategoryStrings,
	CategoryComments,
}

// IsErrorKey reports whether name is one of the error-section keys.
func IsErrorKey(name string) bool {
	switch name {
	case KeyLexicalErrors, KeySyntaxErrors, KeySemanticErrors:
		return true
	}
	return false
}

// LexicalError pairs a malformed token with the analyzer's diagnostic.
type LexicalError struct {
	Token      string `json:"token"`
	Suggestion string `json:"suggestion"`
}

// Category is a named set of token texts. Tokens keeps first-insertion order
// so output is stable, but callers should treat it as a set.
type Category struct {
	Name   string   `json:"name"`
	Tokens []string `json:"tokens"`

	seen map[string]struct{}
}

func newCategory(name string) *Category {
	return &Category{
		Name:   name,
		Tokens: []string{},
		seen:   make(map[string]struct{}),
	}
}

// add inserts token unless it is already present.
func (c *Category) add(token string) {
	if _, dup := c.seen[token]; dup {
		return
	}
	c.seen[token] = struct{}{}
	c.Tokens = append(c.Tokens, token)
}

// Contains reports whether token is a member of the category.
func (c *Category) Contains(token string) bool {
	_, ok := c.seen[token]
	return ok
}

// Len returns the number of distinct tokens.
func (c *Category) Len() int {
	return len(c.Tokens)
}

// ParsedReport is the structured form of one analyzer report.
type ParsedReport struct {
	// Categories in first-seen order.
	Categories []*Category `json:"categories"`

	LexicalErrors   []LexicalError `json:"lexicalErrors"`
	SyntaxErrors    []string       `json:"syntaxErrors"`
	SemanticErrors  []string       `json:"semanticErrors"`
	SuccessMessages []string       `json:"successMessages"`

	// Summary counts are taken as reported; they are not reconciled with
	// the category sizes.
	Summary map[string]int `json:"summary"`

	// SummaryLabels holds Summary keys in first-seen order.
	SummaryLabels []string `json:"summaryLabels"`
}

func newParsedReport() *ParsedReport {
	return &ParsedReport{
		Categories:      []*Category{},
		LexicalErrors:   []LexicalError{},
		SyntaxErrors:    []string{},
		SemanticErrors:  []string{},
		SuccessMessages: []string{},
		Summary:         make(map[string]int),
		SummaryLabels:   []string{},
	}
}

// Category returns the category with the given name.
func (r *ParsedReport) Category(name string) (*Category, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// HasErrors reports whether any error section has entries.
func (r *ParsedReport) HasErrors() bool {
	return len(r.LexicalErrors) > 0 || len(r.SyntaxErrors) > 0 || len(r.SemanticErrors) > 0
}

// IsEmpty reports whether nothing at all was classified.
func (r *ParsedReport) IsEmpty() bool {
	return len(r.Categories) == 0 &&
		!r.HasErrors() &&
		len(r.SuccessMessages) == 0 &&
		len(r.Summary) == 0
}

func (r *ParsedReport) category(name string) *Category {
	if c, ok := r.Category(name); ok {
		return c
	}
	c := newCategory(name)
	r.Categories = append(r.Categories, c)
	return c
}

func (r *ParsedReport) setSummary(label string, count int) {
	if _, exists := r.Summary[label]; !exists {
		r.SummaryLabels = append(r.SummaryLabels, label)
	}
	r.Summary[label] = count
}
