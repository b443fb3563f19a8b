package voice

import (
	"context"
	"errors"
	"sync"

	"github.com/rimtoken/go-dashboard/components/dashboard"
	"github.com/rimtoken/go-dashboard/pkg/speech"
)

// State is the session lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateListening
	StateDispatching
)

// SessionOptions configures a voice Session.
type SessionOptions struct {
	Engine      speech.Engine
	Interpreter *Interpreter
	// Language is the BCP 47 recognition tag. Defaults to "ar-SA".
	Language  string
	Telemetry dashboard.Telemetry
	// OnResult receives the outcome of every dispatched transcript, e.g. to
	// surface toast notifications.
	OnResult func(Result)
	// OnError receives recognition failures.
	OnError func(error)
}

// Session owns one microphone's command loop: Idle until Start, Listening
// until the engine produces a final transcript, Dispatching while the
// interpreter runs, then Idle again. Interim results never dispatch.
type Session struct {
	opts SessionOptions

	mu       sync.Mutex
	state    State
	language string
	ctx      context.Context
}

// NewSession builds a session. A nil engine is allowed; the session then
// reports Supported()==false and Start returns speech.ErrUnavailable.
func NewSession(opts SessionOptions) (*Session, error) {
	if opts.Interpreter == nil {
		return nil, errors.New("dashboard: voice session requires an interpreter")
	}
	if opts.Language == "" {
		opts.Language = "ar-SA"
	}
	opts.Telemetry = dashboard.TelemetryOrNoop(opts.Telemetry)
	return &Session{opts: opts, state: StateIdle, language: opts.Language}, nil
}

// Supported reports whether a speech engine is wired in.
func (s *Session) Supported() bool {
	return s.opts.Engine != nil
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetLanguage changes the recognition language for subsequent Starts. An
// utterance already in flight keeps its language.
func (s *Session) SetLanguage(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = tag
}

// Language returns the recognition tag the next Start will use.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Start begins listening. Starting while already listening is a no-op.
func (s *Session) Start(ctx context.Context) error {
	if s.opts.Engine == nil {
		return speech.ErrUnavailable
	}
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil
	}
	s.state = StateListening
	s.ctx = ctx
	language := s.language
	s.mu.Unlock()

	if err := s.opts.Engine.Start(language, sessionListener{session: s}); err != nil {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		return err
	}
	s.opts.Telemetry.Record(ctx, "dashboard.voice.listening", map[string]any{"language": language})
	return nil
}

// Stop ends listening. Stopping while idle is a no-op.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.state == StateIdle {
		s.mu.Unlock()
		return nil
	}
	s.state = StateIdle
	s.mu.Unlock()
	if s.opts.Engine == nil {
		return nil
	}
	return s.opts.Engine.Stop()
}

func (s *Session) dispatch(transcript string) {
	s.mu.Lock()
	if s.state != StateListening {
		s.mu.Unlock()
		return
	}
	s.state = StateDispatching
	ctx := s.ctx
	language := s.language
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	result, err := s.opts.Interpreter.Handle(ctx, transcript, ParseLanguage(language))
	if err != nil {
		s.opts.Telemetry.Record(ctx, "dashboard.voice.dispatch_error", map[string]any{"error": err.Error()})
		if s.opts.OnError != nil {
			s.opts.OnError(err)
		}
	}
	if s.opts.OnResult != nil {
		s.opts.OnResult(result)
	}

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

func (s *Session) recognitionError(err error) {
	s.mu.Lock()
	ctx := s.ctx
	s.state = StateIdle
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	s.opts.Telemetry.Record(ctx, "dashboard.voice.recognition_error", map[string]any{"error": err.Error()})
	if s.opts.OnError != nil {
		s.opts.OnError(err)
	}
}

func (s *Session) ended() {
	s.mu.Lock()
	if s.state == StateListening {
		s.state = StateIdle
	}
	s.mu.Unlock()
}

// sessionListener adapts speech callbacks onto the session state machine.
type sessionListener struct {
	session *Session
}

func (l sessionListener) InterimResult(string) {}

func (l sessionListener) FinalResult(transcript string) {
	l.session.dispatch(transcript)
}

func (l sessionListener) RecognitionError(err error) {
	l.session.recognitionError(err)
}

func (l sessionListener) End() {
	l.session.ended()
}

var (
	_ speech.Listener        = sessionListener{}
	_ dashboard.VoiceControl = (*Session)(nil)
)
