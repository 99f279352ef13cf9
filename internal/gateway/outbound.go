package gateway

import (
	"encoding/json"

	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/roundctl"
)

// broadcastEvents lists every EventBus topic that is forwarded verbatim
// to every connected player socket. base:* events go to base sockets
// instead, via broadcastBaseEvents.
var broadcastEvents = []string{
	events.GameTick,
	events.PlayerDeath,
	events.RoundStart,
	events.RoundEnd,
	events.GameStart,
	events.GameEnd,
	events.GameCountdown,
	events.GameStopped,
	events.LobbyUpdate,
	events.PlayerReady,
	events.ReadyUpdate,
	events.ReadyEnabled,
	events.ModeEvent,
	events.DominationWin,
}

// baseEvents lists every topic forwarded to base-device sockets rather
// than player sockets: bases are a distinct client kind.
var baseEvents = []string{
	events.BaseRegistered,
	events.BaseCaptured,
	events.BasePoint,
	events.BaseStatus,
}

// subscribeOutbound wires every EventBus topic the gateway forwards to
// sockets. role:assigned is unicast to the player it names; everything
// else is broadcast to its client kind. player:joined and
// player:reconnected are answered synchronously (handleJoin/
// handleReconnect reply directly on the socket that sent the request),
// so they are not re-broadcast here.
func (g *Gateway) subscribeOutbound() {
	for _, topic := range broadcastEvents {
		topic := topic
		g.bus.On(topic, func(payload interface{}) {
			g.broadcastPlayers(topic, payload)
		})
	}
	for _, topic := range baseEvents {
		topic := topic
		g.bus.On(topic, func(payload interface{}) {
			g.broadcastBases(topic, payload)
		})
	}
	g.bus.On(events.RoleAssigned, func(payload interface{}) {
		ra, ok := payload.(roundctl.RoleAssignment)
		if !ok {
			return
		}
		if ra.SocketID == "" {
			return
		}
		g.unicast(ra.SocketID, events.RoleAssigned, ra.Payload)
	})
}

func (g *Gateway) broadcastPlayers(topic string, payload interface{}) {
	g.broadcast(topic, payload, false)
}

func (g *Gateway) broadcastBases(topic string, payload interface{}) {
	g.broadcast(topic, payload, true)
}

func (g *Gateway) broadcast(topic string, payload interface{}, toBases bool) {
	frame := wireFrame(topic, payload)

	g.mu.RLock()
	targets := make([]*socketConn, 0, len(g.sockets))
	for _, sc := range g.sockets {
		if sc.isBase == toBases {
			targets = append(targets, sc)
		}
	}
	g.mu.RUnlock()

	for _, sc := range targets {
		g.sendRaw(sc, frame)
	}
}

func (g *Gateway) unicast(socketID, topic string, payload interface{}) {
	g.mu.RLock()
	sc, ok := g.sockets[socketID]
	g.mu.RUnlock()
	if !ok {
		return
	}
	g.sendRaw(sc, wireFrame(topic, payload))
}

// wireFrame merges a "type" tag into payload's JSON object, matching the
// flat envelope shape every other frame on this connection uses: one
// JSON object per event, type and payload fields sitting side by side.
func wireFrame(topic string, payload interface{}) []byte {
	body, err := json.Marshal(payload)
	if err != nil || len(body) < 2 || body[0] != '{' {
		return mustMarshal(struct {
			Type string `json:"type"`
		}{Type: topic})
	}
	tagged, err := json.Marshal(struct {
		Type string `json:"type"`
	}{Type: topic})
	if err != nil {
		return body
	}
	if len(body) == 2 { // "{}" — nothing to splice in
		return tagged
	}
	// Splice {"type":"..."} and the payload object together: drop the
	// payload's opening brace, keep everything after it.
	out := make([]byte, 0, len(tagged)+len(body))
	out = append(out, tagged[:len(tagged)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out
}
