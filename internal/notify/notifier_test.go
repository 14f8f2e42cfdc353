package notify

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestPublishTurnCompleted(t *testing.T) {
	var gotSubject string
	var gotPayload []byte
	publish := func(subject string, data []byte) error {
		gotSubject = subject
		gotPayload = data
		return nil
	}

	at := time.Date(2024, 12, 18, 10, 0, 0, 0, time.UTC)
	PublishTurnCompleted(publish, TurnCompletedEvent{
		UserKey:    "user-1",
		Question:   "what's on?",
		Answer:     "No events found.",
		AnsweredAt: at,
	})

	if gotSubject != SubjectTurnCompleted {
		t.Errorf("unexpected subject: %s", gotSubject)
	}

	var evt TurnCompletedEvent
	if err := json.Unmarshal(gotPayload, &evt); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if evt.UserKey != "user-1" || evt.Answer != "No events found." {
		t.Errorf("unexpected event: %+v", evt)
	}
	if !evt.AnsweredAt.Equal(at) {
		t.Errorf("unexpected timestamp: %s", evt.AnsweredAt)
	}
}

func TestPublishTurnCompleted_NilPublisher(t *testing.T) {
	// Publishing is optional; a nil func is a no-op, not a panic.
	PublishTurnCompleted(nil, TurnCompletedEvent{UserKey: "u"})
}

func TestPublishTurnCompleted_PublishErrorIsSwallowed(t *testing.T) {
	publish := func(subject string, data []byte) error {
		return errors.New("broker down")
	}
	// Must not panic or propagate; the turn already succeeded.
	PublishTurnCompleted(publish, TurnCompletedEvent{UserKey: "u"})
}
