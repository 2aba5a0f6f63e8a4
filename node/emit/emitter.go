package emit

// Emitter receives events from assembly tooling.
//
// Implementations should be safe for concurrent use and resilient: an
// emitter failure must never abort an assembly. Emit should not panic;
// backend errors are handled internally (logged, buffered or dropped).
type Emitter interface {
	// Emit records one event. Implementations should not block the
	// caller; slow backends should buffer or drop.
	Emit(event Event)
}
