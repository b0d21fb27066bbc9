package league

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewResultEntry(t *testing.T) {
	tests := []struct {
		name    string
		prize   float64
		status  Status
		wantErr bool
	}{
		{"scored with prize", 1800000, StatusScored, false},
		{"scored outside the money", 0, StatusScored, false},
		{"cut", 0, StatusCut, false},
		{"withdrawn", 0, StatusWithdrawn, false},
		{"not entered", 0, StatusNotEntered, false},
		{"needs review", 0, StatusNeedsReview, false},
		{"cut with prize", 5000, StatusCut, true},
		{"withdrawn with prize", 1, StatusWithdrawn, true},
		{"needs review with prize", 100, StatusNeedsReview, true},
		{"negative prize", -10, StatusScored, true},
		{"unknown status", 0, Status("bogus"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := NewResultEntry(tt.prize, tt.status)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got entry %+v", entry)
				}
				if !errors.Is(err, ErrInvalidEntry) {
					t.Errorf("expected ErrInvalidEntry, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.Prize != tt.prize || entry.Status != tt.status {
				t.Errorf("got %+v", entry)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		wantErr  bool
	}{
		{"scored", StatusScored, false},
		{"", StatusScored, false},
		{"cut", StatusCut, false},
		{"MC", StatusCut, false},
		{"withdrawn", StatusWithdrawn, false},
		{"wd", StatusWithdrawn, false},
		{"WD", StatusWithdrawn, false},
		{"dq", StatusWithdrawn, false},
		{"not_entered", StatusNotEntered, false},
		{"needs_review", StatusNeedsReview, false},
		{"maybe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseStatus(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseStatus(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResultEntryUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ResultEntry
		wantErr  bool
	}{
		{"structured", `{"prize": 250000, "status": "scored"}`, ResultEntry{Prize: 250000, Status: StatusScored}, false},
		{"structured cut", `{"prize": 0, "status": "cut"}`, ResultEntry{Status: StatusCut}, false},
		{"missing status", `{"prize": 1200}`, ResultEntry{Prize: 1200, Status: StatusScored}, false},
		{"legacy wd", `{"prize": 0, "status": "wd"}`, ResultEntry{Status: StatusWithdrawn}, false},
		{"legacy bare number", `540000`, ResultEntry{Prize: 540000, Status: StatusScored}, false},
		{"legacy bare zero", `0`, ResultEntry{Status: StatusScored}, false},
		{"legacy float", `12345.5`, ResultEntry{Prize: 12345.5, Status: StatusScored}, false},
		{"null", `null`, ResultEntry{Status: StatusNotEntered}, false},
		{"unknown status", `{"prize": 0, "status": "lost"}`, ResultEntry{}, true},
		{"string", `"lots"`, ResultEntry{}, true},
		{"cut with prize", `{"prize": 500, "status": "cut"}`, ResultEntry{}, true},
		{"negative structured", `{"prize": -5, "status": "scored"}`, ResultEntry{}, true},
		{"negative legacy", `-250`, ResultEntry{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ResultEntry
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestLegacyDocumentDecode(t *testing.T) {
	doc := `{
		"teams": {"Eagles": ["Scottie Scheffler", "Rory McIlroy"]},
		"tournaments": {
			"Masters": {"results": {"Scottie Scheffler": 3600000, "Rory McIlroy": {"prize": 0, "status": "wd"}}}
		},
		"tournament_order": ["Masters"]
	}`

	var l League
	if err := json.Unmarshal([]byte(doc), &l); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	results := l.Tournaments["Masters"].Results
	if got := results["Scottie Scheffler"]; got.Prize != 3600000 || got.Status != StatusScored {
		t.Errorf("legacy number decoded as %+v", got)
	}
	if got := results["Rory McIlroy"]; got.Status != StatusWithdrawn {
		t.Errorf("legacy wd decoded as %+v", got)
	}
}

func TestPlayerObservationPlaced(t *testing.T) {
	tests := []struct {
		position int
		expected bool
	}{
		{1, true},
		{65, true},
		{0, false},
		{Unplaced, false},
	}

	for _, tt := range tests {
		p := PlayerObservation{Position: tt.position}
		if got := p.Placed(); got != tt.expected {
			t.Errorf("Placed() with position %d = %v, expected %v", tt.position, got, tt.expected)
		}
	}
}

func TestPayoutFromObservations(t *testing.T) {
	players := []PlayerObservation{
		{Name: "A", Position: 1, Prize: 1000},
		{Name: "B", Position: 2, Prize: 500},
		{Name: "C", Position: 2, Prize: 450},
		{Name: "D", Position: Unplaced, Prize: 20},
		{Name: "E", Position: 5, Prize: 0},
	}

	payout := PayoutFromObservations(players)
	if len(payout) != 2 {
		t.Fatalf("expected 2 positions, got %v", payout)
	}
	if payout.Lookup(1) != 1000 || payout.Lookup(2) != 500 {
		t.Errorf("unexpected payout %v", payout)
	}
	if payout.Lookup(5) != 0 {
		t.Errorf("expected position 5 to pay nothing")
	}
	if payout.Total() != 1500 {
		t.Errorf("Total() = %v, expected 1500", payout.Total())
	}

	var empty PayoutTable
	if empty.Lookup(1) != 0 {
		t.Error("nil payout should look up to 0")
	}
}

func TestSourceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSourceError(ErrNetworkFailure, "https://example.com", "fetching article", cause)

	if !errors.Is(err, ErrNetworkFailure) {
		t.Error("expected errors.Is(err, ErrNetworkFailure)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is(err, cause)")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("did not expect ErrNotFound")
	}

	expected := "https://example.com: fetching article: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}

	var srcErr *SourceError
	if !errors.As(error(err), &srcErr) || srcErr.Source != "https://example.com" {
		t.Error("expected errors.As to find the SourceError")
	}
}
