package smartnurse

// Event is a sealed interface representing a session event delivered to the
// presentation layer. Events are purely semantic; failures the user should
// see arrive as chat turns, not as events.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventTurnAppended signals that a new turn was added to the log.
type EventTurnAppended struct {
	Turn Turn
}

func (EventTurnAppended) event() {}

// EventRevealTick carries the current visible prefix of the revealing
// turn's responder text. Prefixes are strictly length-increasing.
type EventRevealTick struct {
	TurnID string
	Text   string
}

func (EventRevealTick) event() {}

// EventRevealDone signals that the turn's responder text is complete.
type EventRevealDone struct {
	TurnID string
	Text   string
}

func (EventRevealDone) event() {}

// EventSessionCleared signals that the log was reset to the greeting turn.
type EventSessionCleared struct {
	Greeting Turn
}

func (EventSessionCleared) event() {}

// Interface compliance checks.
var (
	_ Event = EventTurnAppended{}
	_ Event = EventRevealTick{}
	_ Event = EventRevealDone{}
	_ Event = EventSessionCleared{}
)
