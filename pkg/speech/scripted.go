package speech

import (
	"errors"
	"sync"
)

// ScriptedEngine is an Engine fed by explicit Say calls instead of a
// microphone. It backs tests, demos, and the dashctl transcript simulator.
type ScriptedEngine struct {
	mu       sync.Mutex
	listener Listener
	language string
}

// NewScriptedEngine builds an engine with no active listener.
func NewScriptedEngine() *ScriptedEngine {
	return &ScriptedEngine{}
}

// Start attaches the listener. A second Start while listening is an error,
// matching how native recognizers behave.
func (e *ScriptedEngine) Start(languageTag string, listener Listener) error {
	if listener == nil {
		return errors.New("speech: listener is required")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listener != nil {
		return errors.New("speech: engine already listening")
	}
	e.listener = listener
	e.language = languageTag
	return nil
}

// Stop detaches the listener and signals End.
func (e *ScriptedEngine) Stop() error {
	e.mu.Lock()
	listener := e.listener
	e.listener = nil
	e.mu.Unlock()
	if listener != nil {
		listener.End()
	}
	return nil
}

// Language returns the tag passed to the most recent Start.
func (e *ScriptedEngine) Language() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.language
}

// Listening reports whether a listener is attached.
func (e *ScriptedEngine) Listening() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listener != nil
}

// SayInterim delivers a partial transcript to the active listener.
func (e *ScriptedEngine) SayInterim(transcript string) {
	e.mu.Lock()
	listener := e.listener
	e.mu.Unlock()
	if listener != nil {
		listener.InterimResult(transcript)
	}
}

// Say delivers a final transcript and ends the utterance, mirroring a
// non-continuous recognizer that stops after one result.
func (e *ScriptedEngine) Say(transcript string) {
	e.mu.Lock()
	listener := e.listener
	e.listener = nil
	e.mu.Unlock()
	if listener != nil {
		listener.FinalResult(transcript)
		listener.End()
	}
}

// Fail delivers a recognition error and ends the utterance.
func (e *ScriptedEngine) Fail(err error) {
	e.mu.Lock()
	listener := e.listener
	e.listener = nil
	e.mu.Unlock()
	if listener != nil {
		listener.RecognitionError(err)
		listener.End()
	}
}

var _ Engine = (*ScriptedEngine)(nil)
