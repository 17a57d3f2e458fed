package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	textvaryerrors "github.com/matzehuels/textvary/pkg/errors"
	"github.com/matzehuels/textvary/pkg/store"
)

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, message)
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, message)
}

// writeErr maps err to a status code and writes it. Internal errors are
// logged and reported without detail.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, status, http.StatusText(status))
		return
	}
	writeJSON(w, status, errorBody{
		Error: textvaryerrors.UserMessage(err),
		Code:  string(textvaryerrors.GetCode(err)),
	})
}

func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}

	switch textvaryerrors.GetCode(err) {
	case textvaryerrors.ErrCodeNoContent:
		return http.StatusUnprocessableEntity
	case textvaryerrors.ErrCodeInvalidInput,
		textvaryerrors.ErrCodeInvalidRole,
		textvaryerrors.ErrCodeInvalidFormat,
		textvaryerrors.ErrCodeInvalidRunID,
		textvaryerrors.ErrCodeInputTooLarge:
		return http.StatusBadRequest
	case textvaryerrors.ErrCodeNotFound, textvaryerrors.ErrCodeRunNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
