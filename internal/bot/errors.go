package bot

import "fmt"

// FailKind classifies why a dispatched operation did not succeed. The user
// always gets a plain answer string either way; the kind exists so callers
// and tests can tell an extraction miss from a backend refusal from a dead
// socket.
type FailKind int

const (
	// FailExtraction: no usable date(s) found in the utterance. A
	// clarification request, not an error.
	FailExtraction FailKind = iota
	// FailValidation: required fields missing or malformed before any
	// backend call was made.
	FailValidation
	// FailBackend: the calendar backend answered with a non-success status.
	FailBackend
	// FailTransport: the calendar backend could not be reached at all.
	FailTransport
)

func (k FailKind) String() string {
	switch k {
	case FailExtraction:
		return "extraction"
	case FailValidation:
		return "validation"
	case FailBackend:
		return "backend"
	case FailTransport:
		return "transport"
	}
	return "unknown"
}

// OpError records a failed operation. It never crosses the HTTP boundary;
// the answer string carried alongside it does.
type OpError struct {
	Kind   FailKind
	Detail string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s failure: %s", e.Kind, e.Detail)
}

// outcome is the result of dispatching one turn: the user-facing answer,
// plus the typed error when the operation behind it failed.
type outcome struct {
	answer string
	err    *OpError
}

func ok(answer string) outcome {
	return outcome{answer: answer}
}

func failed(kind FailKind, detail, answer string) outcome {
	return outcome{answer: answer, err: &OpError{Kind: kind, Detail: detail}}
}
