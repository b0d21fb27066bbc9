package league

import (
	"errors"
	"fmt"
)

// Source error kinds. Match with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrMalformedSource = errors.New("malformed source")
	ErrNetworkFailure  = errors.New("network failure")
)

// Model validation errors
var (
	ErrTeamExists         = errors.New("team already exists")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentExists   = errors.New("tournament already exists")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrInvalidEntry       = errors.New("invalid result entry")
	ErrInvalidOrder       = errors.New("invalid tournament order")
	ErrEmptyName          = errors.New("name is required")
)

// SourceError describes a failure to obtain usable data from an upstream source.
// Msg is written for the operator and hints at the likely cause.
type SourceError struct {
	Kind   error
	Source string
	Msg    string
	Err    error
}

// NewSourceError creates a SourceError of the given kind
func NewSourceError(kind error, source, msg string, err error) *SourceError {
	return &SourceError{Kind: kind, Source: source, Msg: msg, Err: err}
}

func (e *SourceError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
