// Package roundctl implements between-round ready tracking with a
// debounced re-enable delay, and the pre-round reset/countdown sequence.
// Both are ticked by GameEngine on its own loop rather than owning real
// timers, so every state transition stays serialized behind the single
// tick.
package roundctl

// DefaultReadyDelayMs is the window after round end during which ready
// input is rejected.
const DefaultReadyDelayMs int64 = 2_000

// ReadyState tracks per-player ready flags and the post-round ready-delay
// window.
type ReadyState struct {
	ready          map[string]bool
	delayMs        int64
	delayUntil     int64
	delayActive    bool
	onReadyEnabled func(enabled bool)
	onAllReady     func()
}

// NewReadyState constructs a manager with the given delay window.
// onReadyEnabled/onAllReady may be nil.
func NewReadyState(delayMs int64, onReadyEnabled func(enabled bool), onAllReady func()) *ReadyState {
	return &ReadyState{
		ready:          make(map[string]bool),
		delayMs:        delayMs,
		onReadyEnabled: onReadyEnabled,
		onAllReady:     onAllReady,
	}
}

// StartReadyDelay opens the post-round-end rejection window. testMode
// skips the delay entirely (engines running scripted/automated games
// should not stall on it).
func (r *ReadyState) StartReadyDelay(gameTime int64, testMode bool) {
	r.ready = make(map[string]bool)
	if testMode || r.delayMs <= 0 {
		r.delayActive = false
		r.notifyEnabled(true)
		return
	}
	r.delayActive = true
	r.delayUntil = gameTime + r.delayMs
	r.notifyEnabled(false)
}

// Tick re-enables ready input once the delay window elapses. Call once
// per engine tick while the delay is active.
func (r *ReadyState) Tick(gameTime int64) {
	if !r.delayActive {
		return
	}
	if gameTime >= r.delayUntil {
		r.delayActive = false
		r.notifyEnabled(true)
	}
}

func (r *ReadyState) notifyEnabled(enabled bool) {
	if r.onReadyEnabled != nil {
		r.onReadyEnabled(enabled)
	}
}

// SetReady marks playerID ready, rejecting the call while the delay
// window is active. Returns false if rejected.
func (r *ReadyState) SetReady(activePlayerIDs []string, playerID string) bool {
	if r.delayActive {
		return false
	}
	r.ready[playerID] = true
	if r.allReady(activePlayerIDs) && r.onAllReady != nil {
		r.onAllReady()
	}
	return true
}

// Reset clears every ready flag without touching the delay window.
func (r *ReadyState) Reset() {
	r.ready = make(map[string]bool)
}

// GetReadyCount returns (ready, total) among activePlayerIDs.
func (r *ReadyState) GetReadyCount(activePlayerIDs []string) (ready int, total int) {
	for _, id := range activePlayerIDs {
		total++
		if r.ready[id] {
			ready++
		}
	}
	return ready, total
}

func (r *ReadyState) allReady(activePlayerIDs []string) bool {
	if len(activePlayerIDs) == 0 {
		return false
	}
	for _, id := range activePlayerIDs {
		if !r.ready[id] {
			return false
		}
	}
	return true
}

// IsDelayActive reports whether ready input is currently rejected.
func (r *ReadyState) IsDelayActive() bool {
	return r.delayActive
}
