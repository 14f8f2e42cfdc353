package bot

import "github.com/MikeSquared-Agency/datebook/internal/llm"

const systemPrompt = `You are a helpful assistant for appointment booking. When the user asks for events, try to understand the specific request.
If the user asks for upcoming events, fetch events that are scheduled for the future.
If the user asks for events tomorrow, fetch events scheduled for the next day.
If the user asks for events next week, fetch events scheduled within the next 7 days.

Additionally, if a user wants to create an event, ask for the necessary details such as:
- Summary
- Description
- Start time (in 'YYYY-MM-DD hh:mm AM/PM' format)
- End time (in 'YYYY-MM-DD hh:mm AM/PM' format)
Save times exactly as the user provides them; do not convert between time zones.
Respond in a conversational format, for example:
- "You have the following upcoming events: Event 1, Event 2, Event 3"
- "Here are the events scheduled for tomorrow: Event 1 at 3:00 PM"
- "Creating an event titled 'Meeting' starting on '2024-12-18 10:00 AM' and ending at '2024-12-18 11:00 AM'."

Avoid showing raw JSON data. Format the events clearly.`

// rangeArguments is the declared parameter shape for list_by_range. The
// dispatcher extracts the range from the user's own words regardless, but the
// schema steers the provider toward picking the operation.
type rangeArguments struct {
	StartDate string `json:"start_date" jsonschema:"description=The start date in ISO 8601 format (e.g. '2024-12-18T00:00:00Z')."`
	EndDate   string `json:"end_date" jsonschema:"description=The end date in ISO 8601 format (e.g. '2024-12-25T23:59:59Z')."`
}

// createArguments is the declared parameter shape for create. Description is
// the only optional field.
type createArguments struct {
	Summary     string `json:"summary" jsonschema:"description=The event summary."`
	Description string `json:"description,omitempty" jsonschema:"description=The event description."`
	Start       string `json:"start" jsonschema:"description=The start time in 'YYYY-MM-DD hh:mm AM/PM' format."`
	End         string `json:"end" jsonschema:"description=The end time in 'YYYY-MM-DD hh:mm AM/PM' format."`
}

// declaredTools is the closed set of operations exposed to the completion
// provider. The dispatcher matches these names exhaustively.
func declaredTools() []llm.Tool {
	return []llm.Tool{
		{
			Name:        "list_all",
			Description: "Fetch the list of all calendar events",
		},
		{
			Name:        "list_by_range",
			Description: "Fetch the calendar events within a specified date range",
			Parameters:  llm.ReflectSchema(rangeArguments{}),
		},
		{
			Name:        "create",
			Description: "Create an event in the calendar",
			Parameters:  llm.ReflectSchema(createArguments{}),
		},
	}
}
