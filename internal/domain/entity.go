package domain

// Entity is the embeddable base for domain entities. It carries the integer
// identity (0 until a persistence adapter assigns one) and the buffer of
// domain events raised since the last ClearDomainEvents call.
type Entity struct {
	id     int64
	events []Event
}

// ID returns the persistent identity, or 0 for a transient entity.
func (e *Entity) ID() int64 { return e.id }

// SetID assigns the persistent identity. Called by persistence adapters
// after insert.
func (e *Entity) SetID(id int64) { e.id = id }

// AddDomainEvent appends ev to the pending buffer. Order of addition is
// preserved and duplicates are not filtered.
func (e *Entity) AddDomainEvent(ev Event) {
	e.events = append(e.events, ev)
}

// DomainEvents returns the pending events in the order they were raised.
func (e *Entity) DomainEvents() []Event { return e.events }

// ClearDomainEvents empties the buffer. Consumers call this after processing
// so events are not delivered twice. Idempotent.
func (e *Entity) ClearDomainEvents() { e.events = nil }
