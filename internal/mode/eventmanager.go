package mode

import "github.com/motionjam/shakedown/internal/events"

// GameEvent is one in-round dynamic effect, e.g. a speed-shift window
// that globally alters movement sensitivity. ShouldActivate is polled
// every tick while inactive; once active, OnTick runs every tick until
// ShouldDeactivate fires OnEnd.
type GameEvent struct {
	Type            string
	ShouldActivate  func(gameTime int64) bool
	OnStart         func(gameTime int64)
	OnTick          func(gameTime int64, deltaTimeMs int64)
	ShouldDeactivate func(gameTime int64) bool
	OnEnd           func(gameTime int64)

	active bool
}

// GameEventManager owns a mode's GameEvents and ticks each one every
// engine tick, emitting mode:event on activation/deactivation.
type GameEventManager struct {
	events []*GameEvent
	emit   func(payload events.ModeEventPayload)
}

// NewGameEventManager constructs a manager with emit used to publish
// mode:event notifications (typically bus.Emit(events.ModeEvent, ...)).
func NewGameEventManager(emit func(payload events.ModeEventPayload)) *GameEventManager {
	return &GameEventManager{emit: emit}
}

// Register adds a GameEvent definition, inactive until its
// ShouldActivate first returns true.
func (m *GameEventManager) Register(ev *GameEvent) {
	m.events = append(m.events, ev)
}

// Tick advances every registered GameEvent by one engine tick.
func (m *GameEventManager) Tick(gameTime int64, deltaTimeMs int64) {
	for _, ev := range m.events {
		if !ev.active {
			if ev.ShouldActivate != nil && ev.ShouldActivate(gameTime) {
				ev.active = true
				if ev.OnStart != nil {
					ev.OnStart(gameTime)
				}
				m.notify(ev.Type, "start", gameTime)
			}
			continue
		}

		if ev.OnTick != nil {
			ev.OnTick(gameTime, deltaTimeMs)
		}

		if ev.ShouldDeactivate != nil && ev.ShouldDeactivate(gameTime) {
			ev.active = false
			if ev.OnEnd != nil {
				ev.OnEnd(gameTime)
			}
			m.notify(ev.Type, "end", gameTime)
		}
	}
}

func (m *GameEventManager) notify(eventType, phase string, gameTime int64) {
	if m.emit == nil {
		return
	}
	m.emit(events.ModeEventPayload{
		EventType: eventType,
		Data: map[string]interface{}{
			"phase":    phase,
			"gameTime": gameTime,
		},
	})
}

// ActiveTypes returns the Type of every currently-active GameEvent, for
// diagnostics/tests.
func (m *GameEventManager) ActiveTypes() []string {
	var out []string
	for _, ev := range m.events {
		if ev.active {
			out = append(out, ev.Type)
		}
	}
	return out
}
