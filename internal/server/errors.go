package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
)

// handlerFunc is an http.HandlerFunc that returns its error instead of
// writing it.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts h into an http.HandlerFunc. Errors are logged (client errors
// as warnings) and written as JSON unless the response has started.
func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		status := lverrors.HTTPStatus(err)
		id := RequestIDFromContext(r.Context())
		if status >= http.StatusInternalServerError {
			s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "request_id", id, "err", err)
		} else {
			s.logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "request_id", id, "err", err)
		}

		if ww, ok := w.(middleware.WrapResponseWriter); ok && ww.Status() != 0 {
			return
		}

		code := lverrors.GetCode(err)
		if code == "" {
			code = lverrors.ErrCodeInternal
		}
		writeJSON(w, status, errorResponse{
			Error:     errorBody{Code: string(code), Message: lverrors.UserMessage(err)},
			RequestID: id,
		})
	}
}

type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func notFound(w http.ResponseWriter, r *http.Request) error {
	return lverrors.New(lverrors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

// methodNotAllowed answers 405, which no error code maps to.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Error: errorBody{
			Code:    string(lverrors.ErrCodeInvalidInput),
			Message: "method " + r.Method + " not allowed on " + r.URL.Path,
		},
		RequestID: RequestIDFromContext(r.Context()),
	})
}
