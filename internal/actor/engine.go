package actor

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ErrTimeout is returned by Ask when no reply arrives within the deadline.
var ErrTimeout = errors.New("actor: ask timed out")

// ErrEngineStopping names the shutting-down condition. Spawn does not
// return it: once Shutdown has begun, Spawn returns a nil PID instead.
var ErrEngineStopping = errors.New("actor: engine is shutting down")

// PanicLogger receives a best-effort notification whenever an actor's
// Receive panics, so the caller can route it through a real logger
// instead of the package's fmt.Printf fallback.
type PanicLogger func(pid *PID, msg interface{}, r interface{})

// Engine owns the lifecycle and message dispatch for every actor spawned
// from it. One Engine per process backs the single-game server.
type Engine struct {
	pidCounter uint64
	actors     map[string]*process
	mu         sync.RWMutex
	stopping   atomic.Bool

	pending   map[string]chan interface{}
	pendingMu sync.Mutex

	OnPanic PanicLogger
}

func NewEngine() *Engine {
	return &Engine{
		actors:  make(map[string]*process),
		pending: make(map[string]chan interface{}),
	}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

// Spawn creates and starts a new actor, returning its PID. Returns nil if
// the engine is shutting down.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		return nil
	}

	pid := e.nextPID()
	proc := newProcess(e, pid, props)
	proc.onPanic = e.OnPanic

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()
	e.Send(pid, Started{}, nil)

	return pid
}

// Send delivers a fire-and-forget message. sender may be nil for messages
// originating outside the actor system (HTTP handlers, timers).
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if pid == nil {
		return
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if !ok {
		e.logDrop(pid, message)
		return
	}
	proc.sendMessage(message, sender, "")
}

// Ask sends a message and blocks until the actor calls ctx.Reply or the
// timeout elapses.
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if pid == nil {
		return nil, fmt.Errorf("actor: ask target is nil")
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("actor: %s not found", pid.ID)
	}

	requestID := fmt.Sprintf("%s-%d", pid.ID, atomic.AddUint64(&e.pidCounter, 1))
	reply := make(chan interface{}, 1)

	e.pendingMu.Lock()
	e.pending[requestID] = reply
	e.pendingMu.Unlock()

	defer func() {
		e.pendingMu.Lock()
		delete(e.pending, requestID)
		e.pendingMu.Unlock()
	}()

	proc.sendMessage(message, nil, requestID)

	select {
	case v := <-reply:
		if err, ok := v.(error); ok {
			return nil, err
		}
		return v, nil
	case <-time.After(timeout):
		return nil, ErrTimeout
	}
}

func (e *Engine) deliverReply(requestID string, payload interface{}) {
	e.pendingMu.Lock()
	ch, ok := e.pending[requestID]
	e.pendingMu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- payload:
	default:
	}
}

// Stop requests an actor shut down; Stopping then Stopped are delivered
// to it before it is removed from the engine.
func (e *Engine) Stop(pid *PID) {
	if pid == nil {
		return
	}
	e.mu.RLock()
	_, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if ok {
		e.Send(pid, Stopping{}, nil)
	}
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops every actor and waits up to timeout for them to finish.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}

	e.mu.RLock()
	pids := make([]*PID, 0, len(e.actors))
	for _, proc := range e.actors {
		pids = append(pids, proc.pid)
	}
	e.mu.RUnlock()

	for _, pid := range pids {
		e.Stop(pid)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			return
		}
		time.Sleep(25 * time.Millisecond)
	}

	e.mu.Lock()
	e.actors = make(map[string]*process)
	e.mu.Unlock()
}

func (e *Engine) logDrop(pid *PID, message interface{}) {
	if e.OnPanic != nil {
		return
	}
	fmt.Printf("actor: %s not found, dropping message %T\n", pid.ID, message)
}
