package bot

import (
	"context"
	"errors"
	"sync"

	"github.com/MikeSquared-Agency/datebook/internal/calendar"
	"github.com/MikeSquared-Agency/datebook/internal/llm"
	"github.com/MikeSquared-Agency/datebook/internal/transcript"
)

// mockCalendar is an in-memory CalendarAPI for testing.
type mockCalendar struct {
	events    []calendar.Event
	listErr   error
	createErr error

	listCalls   int
	createCalls int
	lastDraft   calendar.EventDraft
}

func (m *mockCalendar) ListEvents(_ context.Context) ([]calendar.Event, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.events, nil
}

func (m *mockCalendar) CreateEvent(_ context.Context, draft calendar.EventDraft) error {
	m.createCalls++
	m.lastDraft = draft
	return m.createErr
}

// mockCompleter returns a canned completion or error.
type mockCompleter struct {
	completion *llm.Completion
	err        error

	lastHistory string
	lastMessage string
	lastTools   []llm.Tool
}

func (m *mockCompleter) Complete(_ context.Context, _, history, userMessage string, tools []llm.Tool) (*llm.Completion, error) {
	m.lastHistory = history
	m.lastMessage = userMessage
	m.lastTools = tools
	if m.err != nil {
		return nil, m.err
	}
	return m.completion, nil
}

// memStore is an in-memory transcript.Store.
type memStore struct {
	mu    sync.Mutex
	turns map[string][]transcript.Turn

	appendErr   error
	completeErr error
}

func newMemStore() *memStore {
	return &memStore{turns: make(map[string][]transcript.Turn)}
}

func (m *memStore) History(_ context.Context, userKey string) ([]transcript.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]transcript.Turn(nil), m.turns[userKey]...), nil
}

func (m *memStore) Append(_ context.Context, userKey, userMessage string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[userKey] = append(m.turns[userKey], transcript.Turn{UserMessage: userMessage})
	return nil
}

func (m *memStore) Complete(_ context.Context, userKey, botMessage string) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	turns := m.turns[userKey]
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].BotMessage == "" {
			turns[i].BotMessage = botMessage
			return nil
		}
	}
	return errors.New("no unanswered turn")
}

func (m *memStore) Exists(_ context.Context, userKey string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns[userKey]) > 0, nil
}
