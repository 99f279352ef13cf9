// Package gateway implements the bidirectional websocket translator
// between the wire protocol and the engine's actor mailbox. It is the
// only component that knows the wire format — every
// inbound frame is validated and converted to an engine message, and
// every outbound EventBus event is serialized and routed (broadcast or
// unicast) to the right sockets.
package gateway

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/motionjam/shakedown/internal/actor"
	"github.com/motionjam/shakedown/internal/engine"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/logging"
	"github.com/motionjam/shakedown/internal/session"
)

// readTimeout bounds a single frame read so a dead socket is reclaimed
// instead of blocking its connection goroutine forever.
const readTimeout = 90 * time.Second

const askTimeout = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Gateway owns the live socket registry and wires the EventBus to it.
type Gateway struct {
	host     *actor.Engine
	enginePID *actor.PID
	bus      *eventbus.Bus
	conn     *session.Manager
	log      *logging.Logger

	mu      sync.RWMutex
	sockets map[string]*socketConn // socketID -> conn
}

type socketConn struct {
	id       string
	ws       *websocket.Conn
	writeMu  sync.Mutex
	isBase   bool
	stopOnce sync.Once
	stopCh   chan struct{}
}

// New constructs a Gateway and subscribes it to every outbound bus
// event it forwards to sockets.
func New(host *actor.Engine, enginePID *actor.PID, bus *eventbus.Bus, conn *session.Manager, log *logging.Logger) *Gateway {
	g := &Gateway{
		host:      host,
		enginePID: enginePID,
		bus:       bus,
		conn:      conn,
		log:       log,
		sockets:   make(map[string]*socketConn),
	}
	g.subscribeOutbound()
	return g
}

// ServeHTTP upgrades the request and serves one player socket for the
// lifetime of the connection.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.serve(w, r, false)
}

// ServeBaseHTTP upgrades the request as a base-device socket.
func (g *Gateway) ServeBaseHTTP(w http.ResponseWriter, r *http.Request) {
	g.serve(w, r, true)
}

func (g *Gateway) serve(w http.ResponseWriter, r *http.Request, isBase bool) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logError("upgrade failed: %v", err)
		return
	}

	socketID := newSocketID()
	sc := &socketConn{id: socketID, ws: ws, isBase: isBase, stopCh: make(chan struct{})}

	g.mu.Lock()
	g.sockets[socketID] = sc
	g.mu.Unlock()

	g.readLoop(sc)
}

func (g *Gateway) removeSocket(socketID string) {
	g.mu.Lock()
	sc, ok := g.sockets[socketID]
	delete(g.sockets, socketID)
	g.mu.Unlock()
	if ok {
		sc.stopOnce.Do(func() { close(sc.stopCh) })
		_ = sc.ws.Close()
	}
}

func (g *Gateway) logError(format string, args ...interface{}) {
	if g.log != nil {
		g.log.Error("gateway", format, args...)
	}
}

func newSocketID() string {
	return "sock-" + randomToken(12)
}
