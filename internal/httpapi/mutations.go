package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/motionjam/shakedown/internal/config"
	"github.com/motionjam/shakedown/internal/engine"
)

func (s *Server) handlePostSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var patch config.SettingsPatch
	if err := decodeBody(r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}{Code: "invalid_body", Message: "malformed JSON body"})
		return
	}

	next, err := s.settings.Update(patch)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}{Code: "invalid_settings", Message: err.Error()})
		return
	}

	s.host.Send(s.enginePID, engine.SettingsUpdateMessage{Settings: next}, nil)
	writeJSON(w, http.StatusOK, next)
}

type launchRequest struct {
	Mode             string `json:"mode"`
	Theme            string `json:"theme"`
	CountdownSeconds *int   `json:"countdownDuration"`
}

func (s *Server) handleLaunch(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body launchRequest
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}{Code: "invalid_body", Message: "malformed JSON body"})
		return
	}

	if _, ok := s.askEngine(w, engine.LaunchMessage{
		Mode: body.Mode, Theme: body.Theme, CountdownSeconds: body.CountdownSeconds,
	}); !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Launched bool `json:"launched"`
	}{Launched: true})
}

func (s *Server) handleNextRound(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, ok := s.askEngine(w, engine.NextRoundMessage{}); !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Advanced bool `json:"advanced"`
	}{Advanced: true})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, ok := s.askEngine(w, engine.StopMessage{}); !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Stopped bool `json:"stopped"`
	}{Stopped: true})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reply, ok := s.askEngine(w, engine.StateQueryMessage{})
	if !ok {
		return
	}
	snapshot, ok := reply.(engine.StateSnapshot)
	if !ok {
		writeInternalError(w, "unexpected engine response")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
