package gateway

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/gorilla/websocket"

	"github.com/motionjam/shakedown/internal/apperr"
	"github.com/motionjam/shakedown/internal/engine"
)

// envelope is the common shape every inbound wire frame carries: a type
// tag plus whatever fields that type needs, all in one flat JSON object,
// one event per frame.
type envelope struct {
	Type string `json:"type"`
}

func randomToken(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func (g *Gateway) readLoop(sc *socketConn) {
	defer g.handleSocketClosed(sc)

	for {
		select {
		case <-sc.stopCh:
			return
		default:
		}

		_ = sc.ws.SetReadDeadline(time.Now().Add(readTimeout))
		_, raw, err := sc.ws.ReadMessage()
		if err != nil {
			return
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			g.sendError(sc, "bad_frame", "malformed JSON frame")
			continue
		}

		if sc.isBase {
			g.dispatchBase(sc, env.Type, raw)
		} else {
			g.dispatchPlayer(sc, env.Type, raw)
		}
	}
}

func (g *Gateway) handleSocketClosed(sc *socketConn) {
	g.removeSocket(sc.id)
	if sc.isBase {
		g.host.Send(g.enginePID, engine.BaseDisconnectMessage{BaseID: sc.id}, nil)
		return
	}
	g.host.Send(g.enginePID, engine.DisconnectMessage{SocketID: sc.id}, nil)
}

func (g *Gateway) dispatchPlayer(sc *socketConn, msgType string, raw []byte) {
	switch msgType {
	case "ping":
		g.sendRaw(sc, []byte(`{"type":"pong"}`))

	case "player:join":
		var payload struct {
			PlayerID string `json:"playerId"`
			Name     string `json:"name"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil || payload.PlayerID == "" {
			g.sendError(sc, "invalid_join", "playerId and name are required")
			return
		}
		g.handleJoin(sc, payload.PlayerID, payload.Name)

	case "player:reconnect":
		var payload struct {
			Token    string `json:"token"`
			SocketID string `json:"socketId"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil || payload.Token == "" {
			g.sendError(sc, "invalid_reconnect", "token is required")
			return
		}
		g.handleReconnect(sc, payload.Token)

	case "player:move":
		var payload struct {
			PlayerID string  `json:"playerId"`
			X        float64 `json:"x"`
			Y        float64 `json:"y"`
			Z        float64 `json:"z"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil || payload.PlayerID == "" {
			g.sendError(sc, "invalid_move", "playerId is required")
			return
		}
		intensity := movementIntensity(payload.X, payload.Y, payload.Z)
		g.host.Send(g.enginePID, engine.MoveMessage{PlayerID: payload.PlayerID, Intensity: intensity}, nil)

	case "player:ready":
		var payload struct {
			PlayerID string `json:"playerId"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil || payload.PlayerID == "" {
			g.sendError(sc, "invalid_ready", "playerId is required")
			return
		}
		g.host.Send(g.enginePID, engine.ReadyMessage{PlayerID: payload.PlayerID}, nil)

	case "player:team-switch":
		var payload struct {
			PlayerID string `json:"playerId"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil || payload.PlayerID == "" {
			g.sendError(sc, "invalid_team_switch", "playerId is required")
			return
		}
		g.host.Send(g.enginePID, engine.TeamSwitchMessage{PlayerID: payload.PlayerID}, nil)

	default:
		g.sendError(sc, "unknown_type", "unrecognized message type: "+msgType)
	}
}

func (g *Gateway) dispatchBase(sc *socketConn, msgType string, raw []byte) {
	switch msgType {
	case "base:join":
		g.host.Send(g.enginePID, engine.BaseJoinMessage{BaseID: sc.id, SocketID: sc.id}, nil)

	case "base:tap":
		var payload struct {
			BaseID string `json:"baseId"`
		}
		if err := json.Unmarshal(raw, &payload); err != nil || payload.BaseID == "" {
			g.sendError(sc, "invalid_tap", "baseId is required")
			return
		}
		g.host.Send(g.enginePID, engine.BaseTapMessage{BaseID: payload.BaseID}, nil)

	default:
		g.sendError(sc, "unknown_type", "unrecognized base message type: "+msgType)
	}
}

// movementIntensity collapses a raw accelerometer sample into the
// normalized [0,1] scalar GameEngine expects. Real per-device
// normalization lives client-side; this is a minimal stand-in so the
// wire contract's x/y/z fields have somewhere to go.
func movementIntensity(x, y, z float64) float64 {
	magnitude := math.Sqrt(x*x + y*y + z*z)
	normalized := magnitude / 20
	if normalized > 1 {
		return 1
	}
	if normalized < 0 {
		return 0
	}
	return normalized
}

func (g *Gateway) handleJoin(sc *socketConn, playerID, name string) {
	reply, err := g.host.Ask(g.enginePID, engine.JoinMessage{PlayerID: playerID, SocketID: sc.id, Name: name}, askTimeout)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			g.sendError(sc, appErr.Code, appErr.Message)
			return
		}
		g.sendError(sc, "join_failed", "join request timed out")
		return
	}
	result, ok := reply.(engine.JoinResult)
	if !ok {
		g.sendError(sc, "join_failed", "unexpected join response")
		return
	}
	g.sendRaw(sc, mustMarshal(struct {
		Type         string `json:"type"`
		Success      bool   `json:"success"`
		SessionToken string `json:"sessionToken"`
		PlayerID     string `json:"playerId"`
		PlayerNumber int    `json:"playerNumber"`
		Name         string `json:"name"`
	}{
		Type: "player:joined", Success: true, SessionToken: result.Token,
		PlayerID: playerID, PlayerNumber: result.Number, Name: name,
	}))
}

func (g *Gateway) handleReconnect(sc *socketConn, token string) {
	playerID, ok := g.conn.Reconnect(token, sc.id)
	if !ok {
		g.sendRaw(sc, mustMarshal(struct {
			Type    string `json:"type"`
			Success bool   `json:"success"`
		}{Type: "player:reconnected", Success: false}))
		return
	}
	g.host.Send(g.enginePID, engine.ReconnectMessage{PlayerID: playerID, SocketID: sc.id}, nil)
	g.sendRaw(sc, mustMarshal(struct {
		Type     string `json:"type"`
		Success  bool   `json:"success"`
		PlayerID string `json:"playerId"`
	}{Type: "player:reconnected", Success: true, PlayerID: playerID}))
}

func (g *Gateway) sendError(sc *socketConn, code, message string) {
	g.sendRaw(sc, mustMarshal(struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}{Type: "error", Code: code, Message: message}))
}

func (g *Gateway) sendRaw(sc *socketConn, data []byte) {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	_ = sc.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
	_ = sc.ws.WriteMessage(websocket.TextMessage, data)
}

func mustMarshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"type":"error","code":"internal","message":"encoding failure"}`)
	}
	return data
}
