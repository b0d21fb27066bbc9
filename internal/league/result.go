package league

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the league classification of a golfer's outcome in one tournament
type Status string

const (
	StatusScored      Status = "scored"
	StatusCut         Status = "cut"
	StatusWithdrawn   Status = "withdrawn"
	StatusNotEntered  Status = "not_entered"
	StatusNeedsReview Status = "needs_review"
)

// ParseStatus converts operator or stored text into a Status.
// The legacy spelling "wd" and a few common variants are accepted.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scored", "":
		return StatusScored, nil
	case "cut", "mc":
		return StatusCut, nil
	case "withdrawn", "wd", "dq", "wd/dq":
		return StatusWithdrawn, nil
	case "not_entered", "not-entered", "ne":
		return StatusNotEntered, nil
	case "needs_review", "needs-review", "review":
		return StatusNeedsReview, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidEntry, s)
	}
}

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusScored, StatusCut, StatusWithdrawn, StatusNotEntered, StatusNeedsReview:
		return true
	}
	return false
}

// Label returns a short display label
func (s Status) Label() string {
	switch s {
	case StatusScored:
		return "Scored"
	case StatusCut:
		return "CUT"
	case StatusWithdrawn:
		return "WD/DQ"
	case StatusNotEntered:
		return "Not in field"
	case StatusNeedsReview:
		return "Needs review"
	default:
		return string(s)
	}
}

// ResultEntry is one golfer's outcome in one tournament.
//
// A positive prize implies StatusScored. Every other status carries a zero prize;
// a scored golfer may still have a zero prize (made the cut, finished outside the money).
type ResultEntry struct {
	Prize  float64 `json:"prize"`
	Status Status  `json:"status"`
}

// NewResultEntry creates a ResultEntry, rejecting combinations that break the
// prize/status invariant.
func NewResultEntry(prize float64, status Status) (ResultEntry, error) {
	e := ResultEntry{Prize: prize, Status: status}
	if err := e.Validate(); err != nil {
		return ResultEntry{}, err
	}
	return e, nil
}

// Validate checks the prize/status invariant
func (e ResultEntry) Validate() error {
	if !e.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidEntry, e.Status)
	}
	if e.Prize < 0 {
		return fmt.Errorf("%w: negative prize %.0f", ErrInvalidEntry, e.Prize)
	}
	if e.Prize > 0 && e.Status != StatusScored {
		return fmt.Errorf("%w: status %s cannot carry a prize", ErrInvalidEntry, e.Status)
	}
	return nil
}

// UnmarshalJSON accepts the structured {"prize","status"} form and the legacy bare
// number form, which is read as a scored prize.
func (e *ResultEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = ResultEntry{Status: StatusNotEntered}
		return nil
	}

	if data[0] != '{' {
		var prize float64
		if err := json.Unmarshal(data, &prize); err != nil {
			return fmt.Errorf("decoding legacy result: %w", err)
		}
		entry := ResultEntry{Prize: prize, Status: StatusScored}
		if err := entry.Validate(); err != nil {
			return err
		}
		*e = entry
		return nil
	}

	var raw struct {
		Prize  float64 `json:"prize"`
		Status string  `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding result: %w", err)
	}
	status, err := ParseStatus(raw.Status)
	if err != nil {
		return err
	}
	entry := ResultEntry{Prize: raw.Prize, Status: status}
	if err := entry.Validate(); err != nil {
		return err
	}
	*e = entry
	return nil
}

// FieldStatus is a golfer's standing in a tournament field as reported by a source
type FieldStatus string

const (
	FieldActive    FieldStatus = "active"
	FieldCut       FieldStatus = "cut"
	FieldWithdrawn FieldStatus = "withdrawn"
)

// Unplaced is the position of a golfer with no usable finishing position
const Unplaced = 999

// PlayerObservation is one golfer as seen by a single source, before reconciliation
type PlayerObservation struct {
	Name            string      `json:"name"`
	Position        int         `json:"position"`
	PositionDisplay string      `json:"position_display"`
	Score           string      `json:"score,omitempty"`
	ScoreValue      int         `json:"score_value,omitempty"`
	Thru            string      `json:"thru,omitempty"`
	Prize           float64     `json:"prize,omitempty"`
	FieldStatus     FieldStatus `json:"field_status"`
}

// Placed reports whether the observation has a real finishing position
func (p PlayerObservation) Placed() bool {
	return p.Position > 0 && p.Position < Unplaced
}

// InField reports whether the golfer is still active in the field
func (p PlayerObservation) InField() bool {
	return p.FieldStatus == FieldActive
}
