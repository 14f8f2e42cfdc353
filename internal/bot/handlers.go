package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/datebook/internal/calendar"
)

// CalendarAPI is the slice of the calendar backend the handlers need.
// Uses calendar package types directly; the concrete client lives there.
type CalendarAPI interface {
	ListEvents(ctx context.Context) ([]calendar.Event, error)
	CreateEvent(ctx context.Context, draft calendar.EventDraft) error
}

// Accepted layouts for the range bounds handed to the filter. Naive values
// are treated as UTC.
var boundLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseBound(s string) (time.Time, bool) {
	for _, layout := range boundLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseEventStart(s string) (time.Time, bool) {
	return parseBound(s)
}

// listAllEvents fetches every event and renders the summary lines. Backend
// and transport failures come back as answer text, never as a propagated
// error.
func (o *Orchestrator) listAllEvents(ctx context.Context) outcome {
	events, err := o.calendar.ListEvents(ctx)
	if err != nil {
		return listFailure(err)
	}
	return ok(formatEvents(events))
}

// listEventsByRange fetches every event and filters client-side: an event is
// included iff its start falls within [start, end] inclusive, compared in
// UTC. An inverted range simply matches nothing; see DESIGN.md.
func (o *Orchestrator) listEventsByRange(ctx context.Context, startISO, endISO string) outcome {
	start, okStart := parseBound(startISO)
	end, okEnd := parseBound(endISO)
	if !okStart || !okEnd {
		return failed(FailExtraction, fmt.Sprintf("unparseable range bounds %q..%q", startISO, endISO),
			"Please provide a valid date range or a specific date.")
	}

	events, err := o.calendar.ListEvents(ctx)
	if err != nil {
		return listFailure(err)
	}

	var within []calendar.Event
	for _, e := range events {
		t, parsed := parseEventStart(e.Start.DateTime)
		if !parsed {
			continue
		}
		if !t.Before(start) && !t.After(end) {
			within = append(within, e)
		}
	}
	return ok(formatEvents(within))
}

// listEventsOn is the single-day fallback: events whose start falls on the
// given UTC calendar day.
func (o *Orchestrator) listEventsOn(ctx context.Context, dateISO string) outcome {
	day, parsed := parseBound(dateISO)
	if !parsed {
		return failed(FailExtraction, fmt.Sprintf("unparseable date %q", dateISO),
			"Please provide a valid date range or a specific date.")
	}

	events, err := o.calendar.ListEvents(ctx)
	if err != nil {
		return listFailure(err)
	}

	var sameDay []calendar.Event
	for _, e := range events {
		t, eventParsed := parseEventStart(e.Start.DateTime)
		if !eventParsed {
			continue
		}
		y1, m1, d1 := t.Date()
		y2, m2, d2 := day.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			sameDay = append(sameDay, e)
		}
	}
	return ok(formatEvents(sameDay))
}

// createEvent submits a validated draft. 201 yields the fixed confirmation;
// anything else yields an error answer embedding the backend's report.
func (o *Orchestrator) createEvent(ctx context.Context, draft calendar.EventDraft) outcome {
	err := o.calendar.CreateEvent(ctx, draft)
	if err == nil {
		return ok("Event created successfully!")
	}

	var statusErr *calendar.StatusError
	if errors.As(err, &statusErr) {
		return failed(FailBackend, statusErr.Error(),
			fmt.Sprintf("Failed to create event. Status code: %d, Error: %s", statusErr.Code, statusErr.Message))
	}
	return failed(FailTransport, err.Error(),
		fmt.Sprintf("Error creating event: %s", err))
}

func listFailure(err error) outcome {
	var statusErr *calendar.StatusError
	if errors.As(err, &statusErr) {
		return failed(FailBackend, statusErr.Error(),
			fmt.Sprintf("Failed to fetch events. Status code: %d", statusErr.Code))
	}
	return failed(FailTransport, err.Error(),
		fmt.Sprintf("Error fetching events: %s", err))
}

// formatEvents renders events as "<summary> on <human date>" display lines.
func formatEvents(events []calendar.Event) string {
	if len(events) == 0 {
		return "No events found."
	}

	lines := make([]string, len(events))
	for i, e := range events {
		summary := e.Summary
		if summary == "" {
			summary = "No Title"
		}
		lines[i] = fmt.Sprintf("%s on %s", summary, formatDate(e.Start.DateTime))
	}
	return "You have the following events: " + strings.Join(lines, ", ")
}

// formatDate converts an ISO timestamp into "January 2, 2006" form, falling
// back to the raw string when it does not parse.
func formatDate(dateTime string) string {
	if dateTime == "" {
		return "No Date"
	}
	t, parsed := parseEventStart(dateTime)
	if !parsed {
		return dateTime
	}
	return t.Format("January 2, 2006")
}
