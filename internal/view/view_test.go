package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/reportviewer/internal/report"
)

func TestBuild_Nil(t *testing.T) {
	p := Build(nil)
	assert.True(t, p.Empty())
}

func TestBuild_EmptyReport(t *testing.T) {
	p := Build(report.Parse(""))
	assert.True(t, p.Empty())
	assert.False(t, p.ShowLexical())
	assert.False(t, p.ShowSummary())
}

func TestBuild_HidesEmptyCategories(t *testing.T) {
	p := Build(report.Parse("Cadenas (0):\nNúmeros (2):\n1\n2\n"))

	require.Len(t, p.Categories, 1)
	assert.Equal(t, CategoryBlock{Name: "Números", Count: 2, Tokens: []string{"1", "2"}}, p.Categories[0])
}

func TestBuild_CommentPrefix(t *testing.T) {
	r := report.Parse("Comentarios (1):\n; nota\n")

	c, ok := r.Category(report.CategoryComments)
	require.True(t, ok)
	assert.Equal(t, []string{"nota"}, c.Tokens, "parser stores bare token")

	p := Build(r)
	require.Len(t, p.Categories, 1)
	assert.Equal(t, []string{";nota"}, p.Categories[0].Tokens)
}

func TestBuild_SummaryOrder(t *testing.T) {
	p := Build(report.Parse("===RESUMEN===\nOperadores: 4\nCadenas: 1\nIdentificadores: 9\n"))

	assert.Equal(t, []SummaryItem{
		{Label: "Operadores", Count: 4},
		{Label: "Cadenas", Count: 1},
		{Label: "Identificadores", Count: 9},
	}, p.Summary)
	assert.True(t, p.ShowSummary())
}

func TestBuild_Sections(t *testing.T) {
	p := Build(report.Parse(`🧱 Errores de Sintaxis:
- Línea 1: a
✅ listo
`))

	assert.True(t, p.ShowSyntax())
	assert.True(t, p.ShowSuccess())
	assert.False(t, p.ShowSemantic())
	assert.False(t, p.ShowLexical())
	assert.False(t, p.Empty())
}

func TestDisplayToken(t *testing.T) {
	assert.Equal(t, ";x", DisplayToken(report.CategoryComments, "x"))
	assert.Equal(t, "x", DisplayToken(report.CategoryIdentifiers, "x"))
	assert.Equal(t, ";", DisplayToken(report.CategoryComments, ""))
}
