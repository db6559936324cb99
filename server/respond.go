package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"yomi/api"
	"yomi/errs"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		if rec, ok := w.(*statusRecorder); ok {
			rec.writeErr = err
			return
		}
		slog.Default().Warn("failed to write response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}

// writeErr maps a coded error to its HTTP status.
func writeErr(w http.ResponseWriter, err error) {
	code := errs.CodeOf(err)
	msg := err.Error()
	var e *errs.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	writeJSON(w, StatusFor(err), api.ErrorResponse{Error: msg, Code: string(code)})
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	switch errs.CodeOf(err) {
	case errs.EmptyInput, errs.MalformedInput, errs.UnsupportedFormat:
		return http.StatusBadRequest
	case errs.OCRFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
