package calendar

// Event is the shape the calendar backend returns. Read-only to this service.
type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end,omitempty"`
}

// EventTime wraps the backend's nested dateTime field.
type EventTime struct {
	DateTime string `json:"dateTime"`
}

// EventDraft holds locally assembled, not-yet-submitted event parameters.
// Start and End use the backend's documented "YYYY-MM-DD hh:mm AM/PM" format.
type EventDraft struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

type listResponse struct {
	Data []Event `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}
