package actor

// Producer builds a new Actor instance. Engine.Spawn calls it exactly
// once per spawned actor.
type Producer func() Actor

// Props configures how an actor is constructed. Kept as its own type,
// rather than passing Producer directly, so supervisor/mailbox options
// can be added later without changing Spawn's signature.
type Props struct {
	producer Producer
}

func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("actor: producer cannot be nil")
	}
	return &Props{producer: producer}
}

func (p *Props) Produce() Actor {
	return p.producer()
}
