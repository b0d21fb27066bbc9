package league

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Tournament holds one event's results, keyed by exact golfer name
type Tournament struct {
	Results map[string]ResultEntry `json:"results"`
}

// LiveState is the live-tracking context kept between sessions
type LiveState struct {
	Payout      PayoutTable `json:"payout"`
	TourneyName string      `json:"tourney_name"`
}

// League is the persisted league document
type League struct {
	Teams           map[string][]string    `json:"teams"`
	Tournaments     map[string]*Tournament `json:"tournaments"`
	TournamentOrder []string               `json:"tournament_order"`
	LiveState       *LiveState             `json:"live_state,omitempty"`
	UpdatedAt       string                 `json:"updated_at,omitempty"` // RFC3339 timestamp
}

// New creates an empty league
func New() *League {
	return &League{
		Teams:           make(map[string][]string),
		Tournaments:     make(map[string]*Tournament),
		TournamentOrder: make([]string, 0),
	}
}

// Normalize repairs a freshly loaded document: nil collections are initialised,
// tournaments missing from the season order are appended, and order entries that no
// longer name a tournament are dropped.
func (l *League) Normalize() {
	if l.Teams == nil {
		l.Teams = make(map[string][]string)
	}
	if l.Tournaments == nil {
		l.Tournaments = make(map[string]*Tournament)
	}

	seen := make(map[string]bool, len(l.TournamentOrder))
	order := make([]string, 0, len(l.Tournaments))
	for _, name := range l.TournamentOrder {
		if _, exists := l.Tournaments[name]; !exists || seen[name] {
			continue
		}
		seen[name] = true
		order = append(order, name)
	}

	// Unordered leftovers go last, sorted so the repair is deterministic
	missing := make([]string, 0)
	for name, t := range l.Tournaments {
		if t == nil {
			l.Tournaments[name] = &Tournament{Results: make(map[string]ResultEntry)}
		} else if t.Results == nil {
			t.Results = make(map[string]ResultEntry)
		}
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	l.TournamentOrder = append(order, missing...)
}

// Touch records the modification time
func (l *League) Touch() {
	l.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// TeamNames returns all team names sorted alphabetically
func (l *League) TeamNames() []string {
	names := make([]string, 0, len(l.Teams))
	for name := range l.Teams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Golfers returns every rostered golfer, sorted and de-duplicated
func (l *League) Golfers() []string {
	seen := make(map[string]bool)
	golfers := make([]string, 0)
	for _, roster := range l.Teams {
		for _, g := range roster {
			if !seen[g] {
				seen[g] = true
				golfers = append(golfers, g)
			}
		}
	}
	sort.Strings(golfers)
	return golfers
}

// TeamOf returns the team a golfer is rostered on. When a golfer is (incorrectly) on
// more than one roster the alphabetically first team wins.
func (l *League) TeamOf(golfer string) (string, bool) {
	for _, name := range l.TeamNames() {
		for _, g := range l.Teams[name] {
			if g == golfer {
				return name, true
			}
		}
	}
	return "", false
}

// AddTeam creates a team with the given roster
func (l *League) AddTeam(name string, golfers []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := l.Teams[name]; exists {
		return fmt.Errorf("%w: %s", ErrTeamExists, name)
	}
	l.Teams[name] = cleanRoster(golfers)
	return nil
}

// SetRoster replaces a team's roster
func (l *League) SetRoster(name string, golfers []string) error {
	if _, exists := l.Teams[name]; !exists {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	l.Teams[name] = cleanRoster(golfers)
	return nil
}

// DeleteTeam removes a team
func (l *League) DeleteTeam(name string) error {
	if _, exists := l.Teams[name]; !exists {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, name)
	}
	delete(l.Teams, name)
	return nil
}

// cleanRoster trims blank lines and drops duplicates while keeping entry order.
// Names are otherwise left exactly as typed.
func cleanRoster(golfers []string) []string {
	seen := make(map[string]bool, len(golfers))
	roster := make([]string, 0, len(golfers))
	for _, g := range golfers {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		roster = append(roster, g)
	}
	return roster
}

// Tournament returns a tournament by name
func (l *League) Tournament(name string) (*Tournament, error) {
	t, exists := l.Tournaments[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTournamentNotFound, name)
	}
	return t, nil
}

// CreateTournament adds an empty tournament at the end of the season order
func (l *League) CreateTournament(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := l.Tournaments[name]; exists {
		return fmt.Errorf("%w: %s", ErrTournamentExists, name)
	}
	l.Tournaments[name] = &Tournament{Results: make(map[string]ResultEntry)}
	l.TournamentOrder = append(l.TournamentOrder, name)
	return nil
}

// SetResults replaces a tournament's results as a unit, creating the tournament
// (appended to the season order) when it does not exist yet.
func (l *League) SetResults(name string, results map[string]ResultEntry) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	for golfer, entry := range results {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("%s: %w", golfer, err)
		}
	}

	copied := make(map[string]ResultEntry, len(results))
	for golfer, entry := range results {
		copied[golfer] = entry
	}

	if t, exists := l.Tournaments[name]; exists {
		t.Results = copied
		return nil
	}
	l.Tournaments[name] = &Tournament{Results: copied}
	l.TournamentOrder = append(l.TournamentOrder, name)
	return nil
}

// DeleteTournament removes a tournament and its results
func (l *League) DeleteTournament(name string) error {
	if _, exists := l.Tournaments[name]; !exists {
		return fmt.Errorf("%w: %s", ErrTournamentNotFound, name)
	}
	delete(l.Tournaments, name)
	for i, n := range l.TournamentOrder {
		if n == name {
			l.TournamentOrder = append(l.TournamentOrder[:i], l.TournamentOrder[i+1:]...)
			break
		}
	}
	return nil
}

// OrderedTournaments returns tournament names in season order. Tournaments that are
// somehow missing from the order are appended so none are ever skipped.
func (l *League) OrderedTournaments() []string {
	seen := make(map[string]bool, len(l.TournamentOrder))
	ordered := make([]string, 0, len(l.Tournaments))
	for _, name := range l.TournamentOrder {
		if _, exists := l.Tournaments[name]; exists && !seen[name] {
			seen[name] = true
			ordered = append(ordered, name)
		}
	}
	rest := make([]string, 0)
	for name := range l.Tournaments {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// MoveTournament moves a tournament to a zero-based index in the season order
func (l *League) MoveTournament(name string, index int) error {
	order := l.OrderedTournaments()
	from := -1
	for i, n := range order {
		if n == name {
			from = i
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrTournamentNotFound, name)
	}
	if index < 0 || index >= len(order) {
		return fmt.Errorf("%w: index %d out of range 0-%d", ErrInvalidOrder, index, len(order)-1)
	}

	order = append(order[:from], order[from+1:]...)
	order = append(order[:index], append([]string{name}, order[index:]...)...)
	l.TournamentOrder = order
	return nil
}

// SetOrder replaces the season order. names must be a permutation of the tournaments.
func (l *League) SetOrder(names []string) error {
	if len(names) != len(l.Tournaments) {
		return fmt.Errorf("%w: got %d names for %d tournaments", ErrInvalidOrder, len(names), len(l.Tournaments))
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if _, exists := l.Tournaments[n]; !exists {
			return fmt.Errorf("%w: %s", ErrTournamentNotFound, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: %s listed twice", ErrInvalidOrder, n)
		}
		seen[n] = true
	}
	l.TournamentOrder = append([]string(nil), names...)
	return nil
}

// Classify sets one golfer's entry in a tournament, typically to resolve a
// needs_review entry by hand.
func (l *League) Classify(tournament, golfer string, status Status, prize float64) error {
	t, err := l.Tournament(tournament)
	if err != nil {
		return err
	}
	entry, err := NewResultEntry(prize, status)
	if err != nil {
		return fmt.Errorf("%s: %w", golfer, err)
	}
	t.Results[golfer] = entry
	return nil
}

// AddMissingGolfers marks rostered golfers absent from a stored tournament as
// needs_review, for rosters that changed after the tournament was imported.
// It returns the golfers that were added.
func (l *League) AddMissingGolfers(tournament string) ([]string, error) {
	t, err := l.Tournament(tournament)
	if err != nil {
		return nil, err
	}
	added := make([]string, 0)
	for _, g := range l.Golfers() {
		if _, exists := t.Results[g]; !exists {
			t.Results[g] = ResultEntry{Status: StatusNeedsReview}
			added = append(added, g)
		}
	}
	return added, nil
}

// NeedsReview lists golfers in a tournament still waiting for classification
func (t *Tournament) NeedsReview() []string {
	golfers := make([]string, 0)
	for g, entry := range t.Results {
		if entry.Status == StatusNeedsReview {
			golfers = append(golfers, g)
		}
	}
	sort.Strings(golfers)
	return golfers
}

// Entry returns a golfer's result; golfers with no entry are reported as not entered
func (t *Tournament) Entry(golfer string) ResultEntry {
	if entry, exists := t.Results[golfer]; exists {
		return entry
	}
	return ResultEntry{Status: StatusNotEntered}
}
