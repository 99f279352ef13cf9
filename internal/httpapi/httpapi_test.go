package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motionjam/shakedown/internal/actor"
	"github.com/motionjam/shakedown/internal/base"
	"github.com/motionjam/shakedown/internal/config"
	"github.com/motionjam/shakedown/internal/effect"
	"github.com/motionjam/shakedown/internal/engine"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/httpapi"
	"github.com/motionjam/shakedown/internal/logging"
	"github.com/motionjam/shakedown/internal/role"
	"github.com/motionjam/shakedown/internal/session"
	"github.com/motionjam/shakedown/internal/team"
)

func newTestRouter(t *testing.T, devMode bool) (http.Handler, *actor.Engine, *actor.PID) {
	t.Helper()

	store, err := config.NewStore(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	conn := session.NewManager()
	bases := base.NewManager()
	log := logging.New(logging.LevelError)

	host := actor.NewEngine()
	deps := engine.Deps{
		Bus: eventbus.New(), Log: log, Conn: conn, Teams: team.NewManager(2),
		Bases: bases, Roles: role.NewRegistry(), Effects: effect.NewRegistry(),
		Settings: store, TickRate: time.Hour,
	}
	pid := host.Spawn(actor.NewProps(engine.NewProducer(deps)))
	require.NotNil(t, pid)

	router := httpapi.New(host, pid, store, conn, bases, log, devMode)
	t.Cleanup(func() { host.Shutdown(time.Second) })
	return router, host, pid
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthReportsOK(t *testing.T) {
	router, _, _ := newTestRouter(t, false)
	rec := doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
	}
	decodeJSON(t, rec, &body)
	assert.Equal(t, "ok", body.Status)
}

func TestDebugRoutesAreHiddenOutsideDevMode(t *testing.T) {
	router, _, _ := newTestRouter(t, false)
	rec := doRequest(t, router, http.MethodPost, "/api/debug/reset", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDebugRoutesWorkInDevMode(t *testing.T) {
	router, _, _ := newTestRouter(t, true)
	rec := doRequest(t, router, http.MethodPost, "/api/debug/reset", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLaunchRejectedWithFewerThanTwoPlayersReturns400(t *testing.T) {
	router, _, _ := newTestRouter(t, false)
	rec := doRequest(t, router, http.MethodPost, "/api/game/launch", map[string]string{"mode": "classic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Code string `json:"code"`
	}
	decodeJSON(t, rec, &body)
	assert.Equal(t, "launch_rejected", body.Code)
}

func TestDebugBotGameLaunchesAGame(t *testing.T) {
	router, _, _ := newTestRouter(t, true)
	rec := doRequest(t, router, http.MethodPost, "/api/debug/bot-game",
		map[string]interface{}{"playerCount": 2, "mode": "classic"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Created int  `json:"created"`
		Started bool `json:"started"`
	}
	decodeJSON(t, rec, &body)
	assert.Equal(t, 2, body.Created)
	assert.True(t, body.Started)

	// bot-game uses the default 3-second countdown (it has no field to
	// override it), so driving two synthetic ticks is needed to cross
	// the countdown's elapsed-time threshold into the active round.
	ffRec := doRequest(t, router, http.MethodPost, "/api/debug/fast-forward", map[string]int{"ticks": 2})
	require.Equal(t, http.StatusOK, ffRec.Code)

	stateRec := doRequest(t, router, http.MethodGet, "/api/game/state", nil)
	require.Equal(t, http.StatusOK, stateRec.Code)
	var snap struct {
		State string `json:"state"`
	}
	decodeJSON(t, stateRec, &snap)
	assert.Equal(t, "active", snap.State)
}

func TestLobbyListsRegisteredPlayers(t *testing.T) {
	router, _, _ := newTestRouter(t, true)
	doRequest(t, router, http.MethodPost, "/api/debug/bot-game", map[string]interface{}{"playerCount": 3})

	rec := doRequest(t, router, http.MethodGet, "/api/game/lobby", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lobby []struct {
		PlayerID string `json:"id"`
	}
	decodeJSON(t, rec, &lobby)
	assert.Len(t, lobby, 3)
}

func TestPostSettingsRejectsOutOfRangeValues(t *testing.T) {
	router, _, _ := newTestRouter(t, false)
	rec := doRequest(t, router, http.MethodPost, "/api/game/settings", map[string]interface{}{"teamCount": 99})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostSettingsAppliesValidPatch(t *testing.T) {
	router, _, _ := newTestRouter(t, false)
	rec := doRequest(t, router, http.MethodPost, "/api/game/settings", map[string]interface{}{"teamCount": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	var settings struct {
		TeamCount int `json:"teamCount"`
	}
	decodeJSON(t, rec, &settings)
	assert.Equal(t, 3, settings.TeamCount)
}

func TestNextRoundRejectedOutsideRoundEndedReturns400(t *testing.T) {
	router, _, _ := newTestRouter(t, false)
	rec := doRequest(t, router, http.MethodPost, "/api/game/next-round", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStopAlwaysSucceeds(t *testing.T) {
	router, _, _ := newTestRouter(t, false)
	rec := doRequest(t, router, http.MethodPost, "/api/game/stop", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestModesListsInstalledModes(t *testing.T) {
	router, _, _ := newTestRouter(t, false)
	rec := doRequest(t, router, http.MethodGet, "/api/game/modes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var modes []struct {
		Key string `json:"key"`
	}
	decodeJSON(t, rec, &modes)
	assert.NotEmpty(t, modes)
}
