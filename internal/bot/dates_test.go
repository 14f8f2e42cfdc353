package bot

import "testing"

func TestExtractRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart string
		wantEnd   string
		wantFound bool
	}{
		{
			name:      "two abbreviated dates",
			text:      "show me events between Dec 18, 2024 and Dec 25, 2024 please",
			wantStart: "2024-12-18",
			wantEnd:   "2024-12-25",
			wantFound: true,
		},
		{
			name:      "two full month names",
			text:      "from December 18, 2024 to December 25, 2024",
			wantStart: "2024-12-18",
			wantEnd:   "2024-12-25",
			wantFound: true,
		},
		{
			name:      "no dates",
			text:      "no dates here",
			wantFound: false,
		},
		{
			name:      "only one date",
			text:      "what is on Dec 18, 2024?",
			wantFound: false,
		},
		{
			name:      "unparseable month word",
			text:      "between Barbecue 18, 2024 and Sandwich 25, 2024",
			wantFound: false,
		},
		{
			name:      "extra dates ignored",
			text:      "Dec 18, 2024 then Dec 25, 2024 then Dec 31, 2024",
			wantStart: "2024-12-18",
			wantEnd:   "2024-12-25",
			wantFound: true,
		},
		{
			name:      "inverted order preserved as given",
			text:      "Dec 25, 2024 back to Dec 18, 2024",
			wantStart: "2024-12-25",
			wantEnd:   "2024-12-18",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, found := extractRange(tt.text)
			if found != tt.wantFound {
				t.Fatalf("found: got %v, want %v", found, tt.wantFound)
			}
			if start != tt.wantStart {
				t.Errorf("start: got %q, want %q", start, tt.wantStart)
			}
			if end != tt.wantEnd {
				t.Errorf("end: got %q, want %q", end, tt.wantEnd)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	date, found := extractDate("what do I have on Jan 5, 2025?")
	if !found {
		t.Fatal("expected a date")
	}
	if date != "2025-01-05" {
		t.Errorf("got %q, want 2025-01-05", date)
	}

	if _, found := extractDate("nothing datelike"); found {
		t.Error("expected no date")
	}
}
