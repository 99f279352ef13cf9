package httpapi

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/motionjam/shakedown/internal/engine"
)

const defaultBotCount = 4

type botGameRequest struct {
	PlayerCount int    `json:"playerCount"`
	Mode        string `json:"mode"`
	Theme       string `json:"theme"`
}

// handleDebugBotGame registers playerCount synthetic players and launches
// immediately in test mode, skipping the pre-game ready wait entirely so
// a harness gets straight to a running round.
func (s *Server) handleDebugBotGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body botGameRequest
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}{Code: "invalid_body", Message: "malformed JSON body"})
		return
	}
	count := body.PlayerCount
	if count <= 0 {
		count = defaultBotCount
	}

	for i := 0; i < count; i++ {
		id := "bot-" + strconv.Itoa(i+1)
		if _, ok := s.askEngine(w, engine.JoinMessage{
			PlayerID: id, SocketID: "bot-socket-" + strconv.Itoa(i+1), Name: id,
		}); !ok {
			return
		}
	}

	if _, ok := s.askEngine(w, engine.LaunchMessage{
		Mode: body.Mode, Theme: body.Theme, SkipPreGame: true, TestMode: true,
	}); !ok {
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Created int  `json:"created"`
		Started bool `json:"started"`
	}{Created: count, Started: true})
}

type fastForwardRequest struct {
	Ticks int `json:"ticks"`
}

func (s *Server) handleDebugFastForward(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body fastForwardRequest
	if err := decodeBody(r, &body); err != nil || body.Ticks <= 0 {
		writeJSON(w, http.StatusBadRequest, struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}{Code: "invalid_body", Message: "ticks must be a positive integer"})
		return
	}
	if _, ok := s.askEngine(w, engine.DebugFastForwardMessage{Ticks: body.Ticks}); !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Ticks int `json:"ticks"`
	}{Ticks: body.Ticks})
}

func (s *Server) handleDebugReset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, ok := s.askEngine(w, engine.DebugResetMessage{}); !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Reset bool `json:"reset"`
	}{Reset: true})
}

func (s *Server) handleDebugLogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	n := 100
	if raw := r.URL.Query().Get("n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			n = parsed
		}
	}
	writeJSON(w, http.StatusOK, s.log.RecentEntries(n))
}
