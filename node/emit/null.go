package emit

// NullEmitter discards every event. Use it when assembly observability is
// not wanted without changing calling code.
type NullEmitter struct{}

// NewNullEmitter returns an emitter that discards all events.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event.
func (n *NullEmitter) Emit(Event) {}
