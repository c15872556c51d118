package smartnurse

import (
	"fmt"

	"github.com/google/uuid"
)

// Turn is one exchange unit in the conversation: a user utterance and the
// responder text shown for it. UserText is empty for system-initiated turns
// such as the greeting. ResponderText mutates progressively while the turn
// is revealing and is immutable once the reveal completes.
type Turn struct {
	ID            string
	UserText      string
	ResponderText string

	final bool
}

// Final reports whether the responder text is finalized.
func (t Turn) Final() bool { return t.final }

// TurnLog is the ordered log of conversation turns. It is append-only except
// for in-place mutation of the single currently-revealing turn, which is
// tracked by direct reference rather than by last-element indexing.
// At most one turn is revealing at any instant.
type TurnLog struct {
	turns     []*Turn
	revealing *Turn
}

// NewTurnLog creates an empty TurnLog.
func NewTurnLog() *TurnLog {
	return &TurnLog{}
}

// Append adds a turn to the end of the log and returns a reference to it.
func (l *TurnLog) Append(userText, responderText string) *Turn {
	t := &Turn{
		ID:            uuid.NewString(),
		UserText:      userText,
		ResponderText: responderText,
	}
	l.turns = append(l.turns, t)
	return t
}

// AppendFinal adds a turn whose responder text is already complete, such as
// an instantly-shown error line.
func (l *TurnLog) AppendFinal(userText, responderText string) *Turn {
	t := l.Append(userText, responderText)
	t.final = true
	return t
}

// BeginReveal marks t as the turn currently being revealed. It fails with
// ErrInvariant if t is not the last turn in the log, if its text is already
// finalized, or if another turn is still revealing.
func (l *TurnLog) BeginReveal(t *Turn) error {
	if l.revealing != nil {
		return fmt.Errorf("begin reveal: another turn is revealing: %w", ErrInvariant)
	}
	if len(l.turns) == 0 || l.turns[len(l.turns)-1] != t {
		return fmt.Errorf("begin reveal: turn is not the last in the log: %w", ErrInvariant)
	}
	if t.final {
		return fmt.Errorf("begin reveal: turn already finalized: %w", ErrInvariant)
	}
	l.revealing = t
	return nil
}

// SetRevealingText replaces the responder text of the revealing turn. It is
// valid only while a reveal is in progress.
func (l *TurnLog) SetRevealingText(text string) error {
	if l.revealing == nil {
		return fmt.Errorf("set revealing text: no reveal in progress: %w", ErrInvariant)
	}
	l.revealing.ResponderText = text
	return nil
}

// FinishReveal finalizes the revealing turn's responder text and closes the
// reveal window.
func (l *TurnLog) FinishReveal() error {
	if l.revealing == nil {
		return fmt.Errorf("finish reveal: no reveal in progress: %w", ErrInvariant)
	}
	l.revealing.final = true
	l.revealing = nil
	return nil
}

// Revealing returns the turn currently being revealed, or nil.
func (l *TurnLog) Revealing() *Turn { return l.revealing }

// Len returns the number of turns in the log.
func (l *TurnLog) Len() int { return len(l.turns) }

// Turns returns a snapshot copy of the log.
func (l *TurnLog) Turns() []Turn {
	out := make([]Turn, len(l.turns))
	for i, t := range l.turns {
		out[i] = *t
	}
	return out
}

// Clear empties the log. Turns are never removed individually; the log is
// either appended-to or wholesale cleared.
func (l *TurnLog) Clear() {
	l.turns = nil
	l.revealing = nil
}
