package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/motionjam/shakedown/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeAppError maps an *apperr.Error to its wire {code,message} body and
// HTTPStatus.
func writeAppError(w http.ResponseWriter, err *apperr.Error) {
	writeJSON(w, err.HTTPStatus(), struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{Code: err.Code, Message: err.Message})
}

func writeInternalError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{Code: "internal", Message: message})
}

func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil && err.Error() != "EOF" {
		return err
	}
	return nil
}

// requireDevMode wraps a debug handler so it 404s outside dev mode,
// rather than exposing that the route exists at all.
func (s *Server) requireDevMode(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		if !s.devMode {
			http.NotFound(w, r)
			return
		}
		next(w, r, p)
	}
}

// askEngine is the shared Ask-then-translate path every mutating route
// uses. actor.Engine.Ask treats any reply satisfying the error interface
// as its error return rather than its value return, and *apperr.Error
// does satisfy it (its {code,message} pair needs an Error() string), so
// a rejection surfaces as err here, not as reply. ok=true means the
// caller should write its own success body from reply.
func (s *Server) askEngine(w http.ResponseWriter, message interface{}) (reply interface{}, ok bool) {
	reply, err := s.host.Ask(s.enginePID, message, askTimeout)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			writeAppError(w, appErr)
			return nil, false
		}
		writeInternalError(w, "engine did not respond in time")
		return nil, false
	}
	return reply, true
}
