package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gestor/pkg/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"detail": message})
}

// writeDomainError maps domain errors to the wire envelope. Store internals
// never reach the client; unexpected failures collapse to a fixed message.
func (a *API) writeDomainError(w http.ResponseWriter, r *http.Request, err error, write bool) {
	var verr domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case domain.IsConflict(err):
		writeError(w, http.StatusConflict, err.Error())
	case write:
		a.logger.Warn("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusBadRequest, "request could not be processed")
	default:
		a.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
