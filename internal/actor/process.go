package actor

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"
)

// process is the running instance of an actor: its mailbox, its state,
// and the goroutine driving Receive calls one at a time.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	mailbox chan *messageEnvelope
	props   *Props
	stopCh  chan struct{}
	stopped atomic.Bool
	onPanic func(pid *PID, msg interface{}, r interface{})
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		mailbox: make(chan *messageEnvelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

// sendMessage enqueues a message; it is dropped (not blocked on) once the
// actor has stopped, except for the Stopping/Stopped system messages.
func (p *process) sendMessage(message interface{}, sender *PID, requestID string) {
	_, isStopping := message.(Stopping)
	_, isStopped := message.(Stopped)
	if p.stopped.Load() && !isStopping && !isStopped {
		return
	}

	envelope := &messageEnvelope{sender: sender, message: message, requestID: requestID}

	select {
	case p.mailbox <- envelope:
	default:
		p.engine.logDrop(p.pid, message)
	}
}

func (p *process) run() {
	var stoppingInvoked bool

	defer func() {
		p.stopped.Store(true)
		defer func() {
			if r := recover(); r != nil {
				p.reportPanic(Stopped{}, r)
			}
			p.engine.remove(p.pid)
		}()
		if p.actor != nil {
			p.invokeReceive(Stopped{}, nil, "")
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			p.reportPanic(nil, r)
			if p.stopped.CompareAndSwap(false, true) {
				closeOnce(p.stopCh)
				if p.actor != nil && !stoppingInvoked {
					p.invokeReceive(Stopping{}, nil, "")
					stoppingInvoked = true
				}
			}
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic(fmt.Sprintf("actor: producer for %s returned nil actor", p.pid.ID))
	}
	p.invokeReceive(Started{}, nil, "")

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) && !stoppingInvoked {
				p.invokeReceive(Stopping{}, nil, "")
				stoppingInvoked = true
			}
			return

		case envelope, ok := <-p.mailbox:
			if !ok {
				return
			}
			_, isStopping := envelope.message.(Stopping)
			if p.stopped.Load() && !isStopping {
				continue
			}
			if isStopping {
				if p.stopped.CompareAndSwap(false, true) {
					if !stoppingInvoked {
						p.invokeReceive(envelope.message, envelope.sender, envelope.requestID)
						stoppingInvoked = true
					}
					closeOnce(p.stopCh)
				}
				continue
			}
			p.invokeReceive(envelope.message, envelope.sender, envelope.requestID)
		}
	}
}

func (p *process) invokeReceive(msg interface{}, sender *PID, requestID string) {
	ctx := &context{engine: p.engine, self: p.pid, sender: sender, message: msg, requestID: requestID}
	defer func() {
		if r := recover(); r != nil {
			p.reportPanic(msg, r)
			if requestID != "" {
				p.engine.deliverReply(requestID, fmt.Errorf("actor %s panicked: %v", p.pid.ID, r))
			}
		}
	}()
	p.actor.Receive(ctx)
}

func (p *process) reportPanic(msg interface{}, r interface{}) {
	if p.onPanic != nil {
		p.onPanic(p.pid, msg, r)
		return
	}
	fmt.Printf("actor %s panicked on %T: %v\n%s\n", p.pid.ID, msg, r, string(debug.Stack()))
}

func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}
