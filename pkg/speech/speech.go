// Package speech abstracts speech-to-text engines behind a small interface so
// the dashboard's voice layer can run against native recognizers, cloud APIs,
// or scripted transcripts in tests.
package speech

import "errors"

// ErrUnavailable is returned by engines that have no recognition backend on
// the current platform.
var ErrUnavailable = errors.New("speech: recognition engine unavailable")

// Listener receives recognition callbacks from an Engine. Implementations
// must tolerate callbacks after Stop; engines stop delivering as soon as they
// reasonably can but do not guarantee a cut-off.
type Listener interface {
	// InterimResult delivers a partial transcript while the utterance is
	// still in progress.
	InterimResult(transcript string)
	// FinalResult delivers the finished utterance transcript.
	FinalResult(transcript string)
	// RecognitionError reports a recognition failure.
	RecognitionError(err error)
	// End signals that the engine stopped listening.
	End()
}

// Engine is a single-utterance speech recognizer. Start begins listening with
// the given BCP 47 language tag ("ar-SA", "en-US") and reports results to the
// listener until the utterance finishes or Stop is called.
type Engine interface {
	Start(languageTag string, listener Listener) error
	Stop() error
}
