// Package httpapi implements the HTTP control plane: a thin httprouter
// layer that Asks the GameEngine actor for every mutation and translates
// an *apperr.Error reply into the matching HTTP status.
package httpapi

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/motionjam/shakedown/internal/actor"
	"github.com/motionjam/shakedown/internal/base"
	"github.com/motionjam/shakedown/internal/config"
	"github.com/motionjam/shakedown/internal/logging"
	"github.com/motionjam/shakedown/internal/session"
)

// askTimeout bounds how long an HTTP handler waits on the engine's
// single-threaded mailbox before giving up.
const askTimeout = 2 * time.Second

// Server owns the control-plane routes and the collaborators every
// handler needs to build its response.
type Server struct {
	host      *actor.Engine
	enginePID *actor.PID
	settings  *config.Store
	conn      *session.Manager
	bases     *base.Manager
	log       *logging.Logger
	devMode   bool
	startedAt time.Time
}

// New constructs a Server and returns its httprouter.Router, ready to
// mount under http.Server.Handler.
func New(host *actor.Engine, enginePID *actor.PID, settings *config.Store, conn *session.Manager, bases *base.Manager, log *logging.Logger, devMode bool) *httprouter.Router {
	s := &Server{
		host:      host,
		enginePID: enginePID,
		settings:  settings,
		conn:      conn,
		bases:     bases,
		log:       log,
		devMode:   devMode,
		startedAt: time.Now(),
	}

	r := httprouter.New()
	r.GET("/health", s.handleHealth)
	r.GET("/api/game/config", s.handleConfig)
	r.GET("/api/game/modes", s.handleModes)
	r.GET("/api/game/lobby", s.handleLobby)
	r.GET("/api/game/settings", s.handleGetSettings)
	r.POST("/api/game/settings", s.handlePostSettings)
	r.POST("/api/game/launch", s.handleLaunch)
	r.POST("/api/game/next-round", s.handleNextRound)
	r.POST("/api/game/stop", s.handleStop)
	r.GET("/api/game/state", s.handleState)

	r.POST("/api/debug/bot-game", s.requireDevMode(s.handleDebugBotGame))
	r.POST("/api/debug/fast-forward", s.requireDevMode(s.handleDebugFastForward))
	r.POST("/api/debug/reset", s.requireDevMode(s.handleDebugReset))
	r.GET("/api/debug/logs", s.requireDevMode(s.handleDebugLogs))

	return r
}

func (s *Server) logError(format string, args ...interface{}) {
	if s.log != nil {
		s.log.Error("httpapi", format, args...)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, struct {
		Status string  `json:"status"`
		Uptime float64 `json:"uptime"`
	}{Status: "ok", Uptime: time.Since(s.startedAt).Seconds()})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, struct {
		DevMode bool `json:"devMode"`
	}{DevMode: s.devMode})
}

// installedMode describes one buildable GameMode for GET /api/game/modes.
// The key here must match engine.buildMode's switch.
type installedMode struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var installedModes = []installedMode{
	{Key: "classic", Name: "Classic", Description: "Standard survival: keep your device still, last player standing wins the round."},
	{Key: "death-count", Name: "Death Count", Description: "Deaths respawn after a short cooldown; fewest deaths when the clock runs out wins."},
	{Key: "role-based", Name: "Role Based", Description: "Each player is secretly assigned an asymmetric role with its own win condition."},
	{Key: "domination", Name: "Domination", Description: "Teams hold physical base devices to accumulate points; first to the target score wins."},
}

func (s *Server) handleModes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, installedModes)
}

func (s *Server) handleLobby(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.conn.Lobby())
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, s.settings.Snapshot())
}
