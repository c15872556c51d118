package smartnurse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// TriageRequest carries one symptom description to the triage service.
// The client applies the "Não informado" / zero-age defaults when History
// or Age are unset.
type TriageRequest struct {
	Symptoms string
	History  string
	Age      int
}

// TriageClient is a strategy pattern interface for the remote triage service.
type TriageClient interface {
	// Triage sends one request and returns the structured result or a
	// typed failure (ErrServiceUnavailable, *APIError, ErrMalformedResponse).
	Triage(ctx context.Context, req TriageRequest) (TriageResult, error)

	// TestConnection probes the service's connectivity endpoint.
	TestConnection(ctx context.Context) (bool, error)
}

// APIError is an application-level failure from the triage service: a
// non-success status with a server-supplied detail message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("triage API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("triage API error (status %d): %s", e.StatusCode, e.Detail)
}

// ResponseMode selects the responder path for a session.
type ResponseMode string

const (
	// ModeDirect always reveals one fixed canned sentence.
	ModeDirect ResponseMode = "direct"
	// ModeTriage delegates the turn to the remote triage service.
	ModeTriage ResponseMode = "triage"
)

// Default locale strings, taken from the Portuguese UI.
const (
	DefaultGreeting = "Olá! Sou o assistente do Smart Diagnosis. Descreva seus sintomas principais (ex: 'dor de cabeça intensa com náuseas') e eu farei uma triagem médica."

	DefaultCannedResponse = "Desculpa, mas não percebi. Podes reformular a tua pergunta?"

	DefaultAnalyzingText = "Analisando seus sintomas..."

	DefaultOfflineWarning = "⚠️ Sistema offline: Não foi possível conectar à base de dados médicos. Contate o suporte."

	DefaultCriticalWarning = "🚨 Erro crítico: O serviço médico está indisponível no momento."

	// transportMessage is shown when the service is unreachable mid-session.
	transportMessage = "O serviço médico está indisponível no momento."

	// triageFallbackMessage is shown when the service fails without a detail.
	triageFallbackMessage = "Erro na triagem"
)

// Default reveal cadences.
const (
	DefaultDirectInterval = 50 * time.Millisecond
	DefaultTriageInterval = 30 * time.Millisecond
)

// SessionConfig parameterizes one Controller: response mode, locale strings
// and reveal cadences. Zero-value string fields fall back to the defaults
// above; zero intervals fall back to the default cadences.
type SessionConfig struct {
	Mode            ResponseMode
	Greeting        string
	CannedResponse  string
	AnalyzingText   string
	OfflineWarning  string
	CriticalWarning string
	DirectInterval  time.Duration
	TriageInterval  time.Duration
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.Mode == "" {
		c.Mode = ModeDirect
	}
	if c.Greeting == "" {
		c.Greeting = DefaultGreeting
	}
	if c.CannedResponse == "" {
		c.CannedResponse = DefaultCannedResponse
	}
	if c.AnalyzingText == "" {
		c.AnalyzingText = DefaultAnalyzingText
	}
	if c.OfflineWarning == "" {
		c.OfflineWarning = DefaultOfflineWarning
	}
	if c.CriticalWarning == "" {
		c.CriticalWarning = DefaultCriticalWarning
	}
	if c.DirectInterval <= 0 {
		c.DirectInterval = DefaultDirectInterval
	}
	if c.TriageInterval <= 0 {
		c.TriageInterval = DefaultTriageInterval
	}
	return c
}

// Controller owns one conversation session: the ordered turn log, the
// submission lock, the reveal animator and the optional triage delegation.
// It serializes input so only one exchange is in flight at a time.
//
// All session state is mutated under the controller's lock; the animator and
// the triage client get exclusive, temporary access to one turn's responder
// text for the duration of their operation, enforced by the locked guard.
type Controller struct {
	mu         sync.Mutex
	cfg        SessionConfig
	client     TriageClient
	log        *TurnLog
	animator   *Animator
	locked     bool
	lastTriage *TriageResult
}

// NewController creates a Controller with the greeting turn appended and
// submission unlocked. client may be nil for direct-mode sessions.
func NewController(cfg SessionConfig, client TriageClient) *Controller {
	c := &Controller{
		cfg:      cfg.withDefaults(),
		client:   client,
		log:      NewTurnLog(),
		animator: NewAnimator(),
	}
	c.log.AppendFinal("", c.cfg.Greeting)
	return c
}

// Locked reports whether a reveal or remote call is outstanding.
func (c *Controller) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// Turns returns a snapshot of the turn log.
func (c *Controller) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Turns()
}

// LastTriage returns the most recent successful triage result, or nil.
func (c *Controller) LastTriage() *TriageResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastTriage == nil {
		return nil
	}
	r := *c.lastTriage
	return &r
}

// Probe runs the connectivity check once at session start. When the service
// reports disconnected, the greeting turn is replaced with the offline
// warning; when the probe itself fails, with the critical warning. The
// session state machine is unaffected either way.
func (c *Controller) Probe(ctx context.Context) {
	if c.client == nil {
		return
	}
	connected, err := c.client.TestConnection(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err != nil:
		c.log.Clear()
		c.log.AppendFinal("", c.cfg.CriticalWarning)
	case !connected:
		c.log.Clear()
		c.log.AppendFinal("", c.cfg.OfflineWarning)
	}
}

// Submit runs one exchange: it appends the user's turn, locks further
// submission, drives the responder path for the configured mode, and unlocks
// on completion. It blocks until the exchange finishes; the presentation
// layer runs it off its event loop and consumes events via onEvent (nil =
// discard).
//
// Empty text, or a submission while locked, is a benign drop: no state
// change, no error.
func (c *Controller) Submit(ctx context.Context, text string, onEvent func(Event)) error {
	c.mu.Lock()
	if text == "" || c.locked {
		c.mu.Unlock()
		return nil
	}
	c.locked = true
	turn := c.log.Append(text, "")
	snapshot := *turn
	c.mu.Unlock()

	emit(onEvent, EventTurnAppended{Turn: snapshot})

	var err error
	switch c.cfg.Mode {
	case ModeTriage:
		err = c.triageTurn(ctx, text, turn, onEvent)
	default:
		err = c.directTurn(turn, onEvent)
	}

	c.mu.Lock()
	c.locked = false
	c.mu.Unlock()
	return err
}

// directTurn reveals the fixed canned response into the submitted turn.
func (c *Controller) directTurn(turn *Turn, onEvent func(Event)) error {
	return c.reveal(turn, c.cfg.CannedResponse, c.cfg.DirectInterval, onEvent)
}

// triageTurn reveals the analyzing line, performs the remote call, and
// reveals the formatted result into a fresh turn. Failures render instantly
// as an error turn, never animated.
func (c *Controller) triageTurn(ctx context.Context, symptoms string, turn *Turn, onEvent func(Event)) error {
	if err := c.reveal(turn, c.cfg.AnalyzingText, c.cfg.TriageInterval, onEvent); err != nil {
		return err
	}

	result, err := c.client.Triage(ctx, TriageRequest{Symptoms: symptoms})
	if err != nil {
		c.mu.Lock()
		errTurn := c.log.AppendFinal("", "❌ Erro: "+userMessage(err))
		snapshot := *errTurn
		c.mu.Unlock()
		emit(onEvent, EventTurnAppended{Turn: snapshot})
		return nil
	}

	c.mu.Lock()
	c.lastTriage = &result
	botTurn := c.log.Append("", "")
	snapshot := *botTurn
	c.mu.Unlock()
	emit(onEvent, EventTurnAppended{Turn: snapshot})

	return c.reveal(botTurn, result.Format(), c.cfg.TriageInterval, onEvent)
}

// reveal drives the animator over one turn's responder text, applying each
// prefix to the log and forwarding it to the presentation layer.
func (c *Controller) reveal(turn *Turn, target string, interval time.Duration, onEvent func(Event)) error {
	c.mu.Lock()
	err := c.log.BeginReveal(turn)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	err = c.animator.Start(target, interval, func(prefix string) {
		c.mu.Lock()
		applyErr := c.log.SetRevealingText(prefix)
		c.mu.Unlock()
		if applyErr == nil {
			emit(onEvent, EventRevealTick{TurnID: turn.ID, Text: prefix})
		}
	}, nil)

	c.mu.Lock()
	finishErr := c.log.FinishReveal()
	c.mu.Unlock()

	if err != nil {
		// Cancelled reveals keep the prefix applied so far; the turn is
		// finalized as-is during teardown.
		return err
	}
	if finishErr != nil {
		return finishErr
	}
	emit(onEvent, EventRevealDone{TurnID: turn.ID, Text: target})
	return nil
}

// Clear resets the session to its initial state: the log holds only the
// greeting turn and the last triage result is dropped. Clearing while locked
// is a no-op. It reports whether the clear was applied.
func (c *Controller) Clear(onEvent func(Event)) bool {
	c.mu.Lock()
	if c.locked {
		c.mu.Unlock()
		return false
	}
	c.log.Clear()
	greeting := c.log.AppendFinal("", c.cfg.Greeting)
	snapshot := *greeting
	c.lastTriage = nil
	c.mu.Unlock()

	emit(onEvent, EventSessionCleared{Greeting: snapshot})
	return true
}

// Close cancels any running animation. Teardown only.
func (c *Controller) Close() {
	c.animator.Cancel()
}

// userMessage maps a triage failure to the locale string shown in the chat.
func userMessage(err error) string {
	var apiErr *APIError
	switch {
	case errors.Is(err, ErrServiceUnavailable):
		return transportMessage
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return triageFallbackMessage
	default:
		return triageFallbackMessage
	}
}

func emit(onEvent func(Event), e Event) {
	if onEvent != nil {
		onEvent(e)
	}
}
