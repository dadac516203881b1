// Package report parses the plain-text output of the code analyzer into a
// structured, render-ready value.
//
// The analyzer report has no declared grammar. Sections are recognized by
// leading markers (emoji-prefixed headers, fixed literal lines) and every
// other line is attributed to the most recently seen header:
//
//	Palabras reservadas (2):
//	def
//	if
//	⚠️ Errores Léxicos:
//	❌ '@' → Error: símbolo no reconocido
//	🧱 Errores de Sintaxis:
//	- Línea 3: falta ':' al final
//	✅ Análisis semántico sin errores
//	===RESUMEN===
//	Identificadores: 5
//
// # Error Handling
//
// Parsing never fails. Malformed, truncated or unknown lines are dropped and
// the result degrades to whatever could be classified. Only [ParseReader]
// returns an error, and only when the underlying reader does.
//
// # Concurrency
//
// [Parse] holds no shared state and may be called from any number of
// goroutines. A [ParsedReport] is not modified after Parse returns.
package report
