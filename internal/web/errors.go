package web

// errors.go maps technical errors to user-facing messages with support codes.
//
// # Error Codes Reference
//
// Analyzer (ANZ001-ANZ099):
//
//	ANZ001 - No code: the submitted source is blank
//	ANZ002 - Busy: every analyzer slot is taken
//	ANZ003 - Unavailable: the analyzer could not be reached
//	ANZ004 - Upstream failure: the analyzer answered with a non-2xx status
//	ANZ005 - Timeout: the analysis did not finish in time
//
// Source input (SRC001-SRC099):
//
//	SRC001 - File too large
//	SRC002 - Empty file
//	SRC003 - Invalid JSON body
//	SRC004 - No source provided
//
// Auth (AUTH001-AUTH002) is answered directly by the API key middleware.
//
// Rate limiting (RATE001) and the ERR000 fallback complete the table.
// Patterns are matched case-insensitively with strings.Contains; first match
// wins, so specific patterns come before general ones.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/reportviewer/internal/analyzer"
	"github.com/JonMunkholm/reportviewer/internal/logging"
	"github.com/JonMunkholm/reportviewer/internal/textio"
	"github.com/JonMunkholm/reportviewer/internal/web/templates"
)

// Input errors raised by the handlers themselves.
var (
	ErrInvalidJSON = errors.New("invalid json body")
	ErrNoSource    = errors.New("no source provided")
)

// UserMessage is what the client sees for a failed request.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "no code to analyze",
		msg: UserMessage{
			Message: "No hay código para analizar",
			Action:  "Escribe o sube un archivo con código fuente",
			Code:    "ANZ001",
		},
	},
	{
		pattern: "too many analyses",
		msg: UserMessage{
			Message: "El analizador está ocupado",
			Action:  "Espera un momento e inténtalo de nuevo",
			Code:    "ANZ002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "El análisis tardó demasiado",
			Action:  "Intenta con un archivo más pequeño o vuelve a intentarlo",
			Code:    "ANZ005",
		},
	},
	{
		pattern: "analyzer unavailable",
		msg: UserMessage{
			Message: "No se pudo conectar con el analizador",
			Action:  "Verifica que el servicio de análisis esté en ejecución",
			Code:    "ANZ003",
		},
	},
	{
		pattern: "analyzer returned",
		msg: UserMessage{
			Message: "El analizador respondió con un error",
			Action:  "Inténtalo de nuevo más tarde",
			Code:    "ANZ004",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "El archivo supera el tamaño máximo permitido",
			Action:  "Divide el código en archivos más pequeños",
			Code:    "SRC001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "El archivo supera el tamaño máximo permitido",
			Action:  "Divide el código en archivos más pequeños",
			Code:    "SRC001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "El archivo está vacío",
			Action:  "Sube un archivo con contenido",
			Code:    "SRC002",
		},
	},
	{
		pattern: "invalid json",
		msg: UserMessage{
			Message: "La solicitud no es JSON válido",
			Action:  `Envía un objeto {"code": "..."}`,
			Code:    "SRC003",
		},
	},
	{
		pattern: "no source provided",
		msg: UserMessage{
			Message: "No se recibió código ni archivo",
			Action:  "Escribe código en el editor o selecciona un archivo",
			Code:    "SRC004",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Demasiadas solicitudes",
			Action:  "Espera un momento antes de volver a intentarlo",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "Ocurrió un error inesperado",
	Action:  "Inténtalo de nuevo",
	Code:    "ERR000",
}

// MapError converts err to a user-facing message. nil maps to the zero value.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	var upstream *analyzer.UpstreamError

	switch {
	case errors.Is(err, analyzer.ErrEmptyCode),
		errors.Is(err, textio.ErrEmpty),
		errors.Is(err, ErrInvalidJSON),
		errors.Is(err, ErrNoSource):
		return http.StatusBadRequest
	case errors.Is(err, textio.ErrTooLarge), errors.As(err, &maxBytes),
		strings.Contains(err.Error(), "request body too large"):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, analyzer.ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &upstream), strings.Contains(err.Error(), "analyzer unavailable"):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body of a failed API request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err with the request ID and answers in the format the
// client expects: an alert fragment for HTMX, JSON for the API, or the
// home page with an alert for plain form posts.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, code string) {
	status := statusFor(err)
	userMsg := MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if errors.Is(err, analyzer.ErrBusy) {
		w.Header().Set("Retry-After", "5")
	}

	switch {
	case isHTMX(r):
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_ = templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code).Render(r.Context(), w)
	case wantsJSON(r):
		respondErrorJSON(w, userMsg, status)
	default:
		alert := templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code)
		s.renderPage(w, r, status, templates.Home(code, nil, alert))
	}
}

func respondErrorJSON(w http.ResponseWriter, msg UserMessage, status int) {
	writeJSON(w, status, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// writeJSON encodes v with status. Encoding errors are logged since the
// header is already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logging.FromContext(context.Background()).Error("json encode error", "error", err)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON reports whether the client prefers JSON. /api routes always do.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
