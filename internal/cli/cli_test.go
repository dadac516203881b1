package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/reportviewer/internal/report"
	"github.com/JonMunkholm/reportviewer/internal/textio"
)

const fullReport = `Palabras reservadas (2):
def
if
Comentarios (1):
; hola
⚠️ Errores Léxicos:
❌ '@' → Error: símbolo desconocido
🧠 Errores Semánticos:
- Línea 3: variable 'x' no definida
===RESUMEN===
Palabras reservadas: 2
Comentarios: 1
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPrint_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, report.Parse(fullReport), "table"))

	out := buf.String()
	assert.Contains(t, out, "Errores Léxicos")
	assert.Contains(t, out, "'@'")
	assert.Contains(t, out, "símbolo desconocido")
	assert.Contains(t, out, "variable 'x' no definida")
	assert.Contains(t, out, "Palabras reservadas")
	assert.Contains(t, out, "def if")
	assert.Contains(t, out, ";hola")
	assert.Contains(t, out, "Resumen de Tokens")
	assert.NotContains(t, out, "Errores de Sintaxis")
	assert.NotContains(t, out, "\x1b[", "non-terminal output should be plain")
}

func TestPrint_SummaryAsReported(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, report.Parse("===RESUMEN===\nIdentificadores: 2\nTotal: 7\n"), "table"))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "Total"))
	assert.Contains(t, out, "7")
	assert.NotContains(t, out, "9")
}

func TestPrint_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, report.Parse(""), ""))
	assert.Contains(t, buf.String(), "(reporte vacío)")
}

func TestPrint_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, report.Parse(fullReport), "json"))

	var got struct {
		TokenCategories map[string][]string `json:"tokenCategories"`
		LexicalErrors   []report.LexicalError
		SemanticErrors  []string `json:"semanticErrors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []string{"hola"}, got.TokenCategories["Comentarios"])
	assert.Equal(t, []report.LexicalError{{Token: "@", Suggestion: "símbolo desconocido"}}, got.LexicalErrors)
	assert.Len(t, got.SemanticErrors, 1)
}

func TestPrint_UnknownFormat(t *testing.T) {
	err := Print(io.Discard, report.Parse(""), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")
}

func TestRender_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reporte.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBF"+strings.ReplaceAll(fullReport, "\n", "\r\n")), 0o600))

	out, err := run(t, "", "render", path, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"Palabras reservadas": [`)
	assert.Contains(t, out, `"def"`)
}

func TestRender_Stdin(t *testing.T) {
	out, err := run(t, fullReport, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "símbolo desconocido")

	out, err = run(t, fullReport, "render", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "símbolo desconocido")
}

func TestRender_EmptyInput(t *testing.T) {
	out, err := run(t, "  \n", "render")
	require.NoError(t, err)
	assert.Contains(t, out, "(reporte vacío)")
}

func TestRender_Strict(t *testing.T) {
	_, err := run(t, fullReport, "render", "--strict")
	assert.ErrorIs(t, err, ErrReportHasErrors)

	_, err = run(t, "Operadores (1):\n=\n", "render", "--strict")
	assert.NoError(t, err)
}

func TestRender_MissingFile(t *testing.T) {
	_, err := run(t, "", "render", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyze(t *testing.T) {
	var gotCode, gotKey string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Code string `json:"code"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotCode = req.Code
		gotKey = r.Header.Get("X-API-Key")
		_, _ = io.WriteString(w, fullReport)
	}))
	defer upstream.Close()

	src := filepath.Join(t.TempDir(), "main.py")
	require.NoError(t, os.WriteFile(src, []byte("edad = 22\n"), 0o600))

	out, err := run(t, "", "analyze", src, "--analyzer-url", upstream.URL, "--api-key", "k1")
	require.NoError(t, err)
	assert.Equal(t, "edad = 22\n", gotCode)
	assert.Equal(t, "k1", gotKey)
	assert.Contains(t, out, "símbolo desconocido")

	out, err = run(t, "", "analyze", src, "--analyzer-url", upstream.URL, "--raw")
	require.NoError(t, err)
	assert.Equal(t, fullReport, out)
}

func TestAnalyze_Errors(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	_, err := run(t, "", "analyze", "-", "--analyzer-url", upstream.URL)
	assert.True(t, errors.Is(err, textio.ErrEmpty), "blank stdin: %v", err)

	_, err = run(t, "x = 1", "analyze", "-", "--analyzer-url", upstream.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")

	_, err = run(t, "x = 1", "analyze", "-", "--analyzer-url", "ftp://nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "reportview v"+Version)
}

func TestVersionCommand_Commit(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "abc123")
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "reportview v1.2.3")
	assert.Contains(t, buf.String(), "commit abc123")
}

func TestRootCommands(t *testing.T) {
	cmd := NewRootCmd()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"render", "analyze", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
