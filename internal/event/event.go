package event

// EventType names a kind of event
type EventType string

const (
	PartHit             EventType = "PartHit"             // a part took damage
	PartDestroyed       EventType = "PartDestroyed"       // a part reached zero health
	EnemyDestroyed      EventType = "EnemyDestroyed"      // every part of an enemy is gone
	ProjectileDiscarded EventType = "ProjectileDiscarded" // the environment should remove a projectile
)

// Event is a single notification. Data carries a typed payload from this
// package (PartEvent, EnemyEvent, DiscardEvent).
type Event struct {
	Type EventType
	Data interface{}
}

// Listener receives dispatched events
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Dispatcher fans events out to subscribers synchronously, in subscription
// order. It is not safe for concurrent use.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher creates a dispatcher with no subscribers
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers listener for eventType
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe removes the first registration of listener for eventType.
// Listeners must be comparable (pointer types); ListenerFunc values cannot be
// unsubscribed.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers event to every subscriber of its type
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}
