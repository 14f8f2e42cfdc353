package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/datebook/internal/calendar"
	"github.com/MikeSquared-Agency/datebook/internal/llm"
)

// operation is the closed set of calendar operations the provider may name.
type operation int

const (
	opListAll operation = iota
	opListByRange
	opCreate
)

// parseOperation maps a provider-supplied name onto the closed enum. Unknown
// names are rejected, not ignored.
func parseOperation(name string) (operation, bool) {
	switch name {
	case "list_all":
		return opListAll, true
	case "list_by_range":
		return opListByRange, true
	case "create":
		return opCreate, true
	}
	return 0, false
}

// Layouts accepted for EventDraft start/end before the backend is called.
var draftTimeLayouts = []string{
	"2006-01-02 03:04 PM",
	"2006-01-02 3:04 PM",
}

func validDraftTime(s string) bool {
	for _, layout := range draftTimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// dispatch turns a completion into the final answer for the turn. When the
// provider names no operation its free text is the answer verbatim. When it
// names several, the first wins; the rest are logged and dropped — the
// implemented policy, not an aspiration.
func (o *Orchestrator) dispatch(ctx context.Context, completion *llm.Completion, question string) outcome {
	if len(completion.ToolCalls) == 0 {
		return ok(completion.Content)
	}
	if len(completion.ToolCalls) > 1 {
		slog.Warn("bot: provider named multiple operations, using first",
			"count", len(completion.ToolCalls),
			"first", completion.ToolCalls[0].Name,
		)
	}

	call := completion.ToolCalls[0]
	op, known := parseOperation(call.Name)
	if !known {
		slog.Warn("bot: provider named unknown operation", "name", call.Name)
		return failed(FailValidation, fmt.Sprintf("unknown operation %q", call.Name),
			fmt.Sprintf("Sorry, %q is not something I can do.", call.Name))
	}

	switch op {
	case opListAll:
		return o.listAllEvents(ctx)

	case opListByRange:
		// The range is read from the user's own words, not the provider's
		// arguments: the model is only trusted to pick the operation.
		if start, end, found := extractRange(question); found {
			return o.listEventsByRange(ctx, start, end)
		}
		if date, found := extractDate(question); found {
			return o.listEventsOn(ctx, date)
		}
		return failed(FailExtraction, "no usable dates in utterance",
			"Please provide a valid date range or a specific date.")

	case opCreate:
		return o.dispatchCreate(ctx, call.Arguments)
	}

	// Unreachable with a closed enum; kept so a new operation cannot fall
	// through silently.
	return failed(FailValidation, fmt.Sprintf("unhandled operation %q", call.Name),
		fmt.Sprintf("Sorry, %q is not something I can do.", call.Name))
}

// dispatchCreate validates provider-supplied arguments into an EventDraft.
// Consumes the raw argument blob exactly once; nothing reaches the backend
// until summary, start and end are present and the times parse in the
// documented format.
func (o *Orchestrator) dispatchCreate(ctx context.Context, rawArguments string) outcome {
	var args createArguments
	if err := json.Unmarshal([]byte(rawArguments), &args); err != nil {
		return failed(FailValidation, fmt.Sprintf("bad create arguments: %v", err),
			"Error reading event details: "+err.Error())
	}

	if args.Summary == "" {
		return failed(FailValidation, "missing summary",
			"Event summary is required.")
	}
	if args.Start == "" || args.End == "" {
		return failed(FailValidation, "missing start or end",
			"Summary, start, and end times are required to create an event.")
	}
	if !validDraftTime(args.Start) || !validDraftTime(args.End) {
		return failed(FailValidation, fmt.Sprintf("unparseable times %q / %q", args.Start, args.End),
			"Start and end must be in 'YYYY-MM-DD hh:mm AM/PM' format.")
	}

	return o.createEvent(ctx, calendar.EventDraft{
		Summary:     args.Summary,
		Description: args.Description,
		Start:       args.Start,
		End:         args.End,
	})
}
