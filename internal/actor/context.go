package actor

// Context is passed to Actor.Receive for every message. It exposes the
// actor's own identity, the sender (if any), the message payload, and the
// means to reply when the message was delivered via Ask.
type Context interface {
	Engine() *Engine
	Self() *PID
	Sender() *PID
	Message() interface{}

	// RequestID is non-empty when the message was sent via Engine.Ask;
	// Reply must be called exactly once in that case.
	RequestID() string
	Reply(payload interface{})
}

type context struct {
	engine    *Engine
	self      *PID
	sender    *PID
	message   interface{}
	requestID string
}

func (c *context) Engine() *Engine      { return c.engine }
func (c *context) Self() *PID           { return c.self }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Message() interface{} { return c.message }
func (c *context) RequestID() string    { return c.requestID }

func (c *context) Reply(payload interface{}) {
	if c.requestID == "" {
		return
	}
	c.engine.deliverReply(c.requestID, payload)
}
