// Package engine implements GameEngine: the central orchestrator owning
// the tick loop, the game-state machine, the player roster, and
// delegation to GameMode and the supporting managers. It is built as an
// actor.Actor (internal/actor) so every state mutation is serialized
// through one mailbox — the gateway and HTTP API never touch engine
// state directly, only via actor.Send/Ask.
package engine

import (
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	"github.com/motionjam/shakedown/internal/actor"
	"github.com/motionjam/shakedown/internal/base"
	"github.com/motionjam/shakedown/internal/config"
	"github.com/motionjam/shakedown/internal/effect"
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/eventbus"
	"github.com/motionjam/shakedown/internal/logging"
	"github.com/motionjam/shakedown/internal/mode"
	"github.com/motionjam/shakedown/internal/player"
	"github.com/motionjam/shakedown/internal/role"
	"github.com/motionjam/shakedown/internal/roundctl"
	"github.com/motionjam/shakedown/internal/session"
	"github.com/motionjam/shakedown/internal/team"
)

// State is the game-level state machine.
type State string

const (
	StateWaiting    State = "waiting"
	StatePreGame    State = "pre-game"
	StateCountdown  State = "countdown"
	StateActive     State = "active"
	StateRoundEnded State = "round-ended"
	StateFinished   State = "finished"
)

// DefaultTickRate is the engine's fixed tick period.
const DefaultTickRate = 100 * time.Millisecond

// DefaultReadyDelayMs mirrors roundctl.DefaultReadyDelayMs for callers
// that only import engine.
const DefaultReadyDelayMs = roundctl.DefaultReadyDelayMs

// Engine is the GameEngine actor.
type Engine struct {
	bus      *eventbus.Bus
	log      *logging.Logger
	conn     *session.Manager
	teams    *team.Manager
	bases    *base.Manager
	roles    *role.Registry
	effects  *effect.Registry
	settings *config.Store

	tickRate     time.Duration
	ticker       *time.Ticker
	stopTickerCh chan struct{}
	selfPID      *actor.PID
	host         *actor.Engine

	state        State
	currentRound int
	roundCount   int
	gameTime     int64
	lastTickAt   time.Time

	players   map[string]*player.Player
	order     []string // join order, stable across rounds
	gameMode  mode.Mode
	lastMode  string
	lastTheme role.Theme
	lastCountdownSeconds int
	lastTestMode         bool

	lastFinalScores []events.ScoreEntry

	ready          *roundctl.ReadyState
	countdown      *roundctl.Countdown
	gameEvents     *mode.GameEventManager

	testMode bool
}

// Deps bundles the shared collaborators the engine is constructed with;
// all are created once at process start (cmd/server/main.go) and shared
// with the gateway/HTTP API.
type Deps struct {
	Bus      *eventbus.Bus
	Log      *logging.Logger
	Conn     *session.Manager
	Teams    *team.Manager
	Bases    *base.Manager
	Roles    *role.Registry
	Effects  *effect.Registry
	Settings *config.Store
	TickRate time.Duration
}

// NewProducer returns an actor.Producer that constructs a fresh Engine,
// for actor.NewProps(engine.NewProducer(deps)).
func NewProducer(deps Deps) actor.Producer {
	return func() actor.Actor {
		tickRate := deps.TickRate
		if tickRate <= 0 {
			tickRate = DefaultTickRate
		}
		e := &Engine{
			bus:      deps.Bus,
			log:      deps.Log,
			conn:     deps.Conn,
			teams:    deps.Teams,
			bases:    deps.Bases,
			roles:    deps.Roles,
			effects:  deps.Effects,
			settings: deps.Settings,
			tickRate: tickRate,
			state:    StateWaiting,
			players:  make(map[string]*player.Player),
		}
		e.ready = roundctl.NewReadyState(roundctl.DefaultReadyDelayMs, e.onReadyEnabled, e.onAllReady)
		e.gameEvents = mode.NewGameEventManager(func(payload events.ModeEventPayload) {
			e.bus.Emit(events.ModeEvent, payload)
		})
		registerDefaultGameEvents(e.gameEvents)
		return e
	}
}

// Receive is the actor.Actor entrypoint; every branch runs on the
// engine's single goroutine.
func (e *Engine) Receive(ctx actor.Context) {
	defer func() {
		if r := recover(); r != nil {
			e.logError("engine panic recovered: %v\n%s", r, debug.Stack())
		}
	}()

	switch m := ctx.Message().(type) {
	case actor.Started:
		e.selfPID = ctx.Self()
		e.host = ctx.Engine()
		e.startTicker()

	case actor.Stopping:
		e.stopTicker()

	case actor.Stopped:
		// nothing further to release

	case tickMsg:
		e.handleTick()

	case JoinMessage:
		e.handleJoin(ctx, m)
	case ReadyMessage:
		e.handleReady(m)
	case MoveMessage:
		e.handlePlayerMovement(m.PlayerID, m.Intensity)
	case TeamSwitchMessage:
		e.handleTeamSwitch(m)
	case DisconnectMessage:
		e.handlePlayerDisconnect(m)
	case ReconnectMessage:
		e.handlePlayerReconnect(m)
	case LaunchMessage:
		e.handleLaunch(ctx, m)
	case NextRoundMessage:
		e.handleNextRound(ctx)
	case StopMessage:
		e.handleStop(ctx)
	case StateQueryMessage:
		ctx.Reply(e.Snapshot())
	case SettingsUpdateMessage:
		// settings are read fresh from the store at launch time; nothing
		// to apply to a running game.
	case BaseJoinMessage:
		e.handleBaseJoin(m)
	case BaseTapMessage:
		e.handleBaseTap(m)
	case BaseDisconnectMessage:
		e.handleBaseDisconnect(m)
	case removePlayerMsg:
		e.removePlayer(m.PlayerID)
	case DebugFastForwardMessage:
		e.handleDebugFastForward(ctx, m)
	case DebugResetMessage:
		e.handleDebugReset(ctx)

	default:
		e.logError("unhandled message type %T", m)
	}
}

func (e *Engine) startTicker() {
	e.stopTickerCh = make(chan struct{})
	e.ticker = time.NewTicker(e.tickRate)
	pid := e.selfPID
	host := e.host
	ticker := e.ticker
	stopCh := e.stopTickerCh
	go func() {
		for {
			select {
			case <-ticker.C:
				host.Send(pid, tickMsg{}, nil)
			case <-stopCh:
				return
			}
		}
	}()
}

func (e *Engine) stopTicker() {
	if e.ticker != nil {
		e.ticker.Stop()
	}
	if e.stopTickerCh != nil {
		closeOnce(e.stopTickerCh)
	}
}

func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

func (e *Engine) logError(format string, args ...interface{}) {
	if e.log != nil {
		e.log.Error("engine", "%s", fmt.Sprintf(format, args...))
		return
	}
	fmt.Printf(format+"\n", args...)
}

// engineRoster adapts Engine to mode.Roster without exposing engine
// internals to mode implementations.
type engineRoster struct {
	e *Engine
}

func (r engineRoster) Players() []*player.Player {
	out := make([]*player.Player, 0, len(r.e.players))
	for _, id := range r.e.order {
		if p, ok := r.e.players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (r engineRoster) ByID(id string) (*player.Player, bool) {
	p, ok := r.e.players[id]
	return p, ok
}

func (r engineRoster) TeamOf(playerID string) (int, bool) {
	return r.e.teams.TeamOf(playerID)
}

// playersByPriority returns alive players ordered priority desc, then
// stable tie-break by number.
func (e *Engine) playersByPriority() []*player.Player {
	out := make([]*player.Player, 0, len(e.players))
	for _, id := range e.order {
		p, ok := e.players[id]
		if !ok || !p.IsAlive() {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority() != out[j].Priority() {
			return out[i].Priority() > out[j].Priority()
		}
		return out[i].Number < out[j].Number
	})
	return out
}
