package session

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/pfrederiksen/golf-league/internal/livefeed"
	"github.com/pfrederiksen/golf-league/internal/logger"
	"github.com/pfrederiksen/golf-league/internal/metrics"
	"github.com/pfrederiksen/golf-league/internal/notifier"
	"github.com/pfrederiksen/golf-league/internal/reconcile"
	"github.com/pfrederiksen/golf-league/internal/scoring"
	"github.com/pfrederiksen/golf-league/internal/storage"
)

// ArticleSource fetches HTML articles and listings
type ArticleSource interface {
	FetchPayoutTable(url string) (league.PayoutTable, string, error)
	FetchResultsArticle(url string) ([]league.PlayerObservation, string, error)
	FetchFieldStatus(url string) (map[string]league.FieldStatus, error)
}

// FeedSource fetches the live leaderboard
type FeedSource interface {
	Fetch() (*livefeed.Leaderboard, error)
}

// LiveSnapshot is the last live leaderboard fetched and its projection
type LiveSnapshot struct {
	TournamentName string                     `json:"tournament_name"`
	StatusMessage  string                     `json:"status_message"`
	Players        []league.PlayerObservation `json:"players"`
	Payout         league.PayoutTable         `json:"payout"`
	Projection     scoring.LiveProjection     `json:"projection"`
	FetchedAt      time.Time                  `json:"fetched_at"`
}

// PreviewRow is one rostered golfer's entry in an import preview
type PreviewRow struct {
	Golfer string             `json:"golfer"`
	Team   string             `json:"team"`
	Entry  league.ResultEntry `json:"entry"`
}

// Preview is a reconciled results import that has not been saved
type Preview struct {
	TournamentName string                        `json:"tournament_name"`
	PlayerCount    int                           `json:"player_count"`
	Results        map[string]league.ResultEntry `json:"-"`
	Rows           []PreviewRow                  `json:"rows"`
	Summary        reconcile.Summary             `json:"summary"`
}

// Session is one operator session against a stored league
type Session struct {
	League *league.League

	store    storage.Storage
	articles ArticleSource
	feed     FeedSource
	live     *LiveSnapshot
}

// Open loads the league from store
func Open(store storage.Storage, articles ArticleSource, feed FeedSource) (*Session, error) {
	l, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading league: %w", err)
	}
	return &Session{
		League:   l,
		store:    store,
		articles: articles,
		feed:     feed,
	}, nil
}

// Live returns the current live snapshot, or nil
func (s *Session) Live() *LiveSnapshot {
	return s.live
}

// save writes the whole league back to the store
func (s *Session) save() error {
	if err := s.store.Save(s.League); err != nil {
		return fmt.Errorf("saving league: %w", err)
	}
	pending := 0
	for _, t := range s.League.Tournaments {
		pending += len(t.NeedsReview())
	}
	metrics.SetNeedsReview(pending)
	return nil
}

// mutate applies fn and saves when it succeeds
func (s *Session) mutate(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	return s.save()
}

// LoadPayout fetches a purse breakdown and keeps it as the live payout table
func (s *Session) LoadPayout(url string) (*league.LiveState, error) {
	payout, name, err := s.articles.FetchPayoutTable(url)
	if err != nil {
		return nil, err
	}

	state := &league.LiveState{Payout: payout, TourneyName: name}
	if err := s.mutate(func() error {
		s.League.LiveState = state
		return nil
	}); err != nil {
		return nil, err
	}

	logger.Info("Payout table loaded", logger.Fields{
		"tournament": name,
		"positions":  len(payout),
		"winner":     payout.Winner(),
	})
	return state, nil
}

// PreviewResults fetches a final results article and reconciles it with the league
// without saving anything. The payout table is inferred from the article's own prizes.
func (s *Session) PreviewResults(url string) (*Preview, error) {
	players, name, err := s.articles.FetchResultsArticle(url)
	if err != nil {
		return nil, err
	}
	results := reconcile.Reconcile(players, league.PayoutFromObservations(players), s.League.Golfers())
	return s.preview(name, len(players), results), nil
}

func (s *Session) preview(name string, playerCount int, results map[string]league.ResultEntry) *Preview {
	golfers := s.League.Golfers()
	rows := make([]PreviewRow, 0, len(golfers))
	for _, g := range golfers {
		team, _ := s.League.TeamOf(g)
		rows = append(rows, PreviewRow{Golfer: g, Team: team, Entry: results[g]})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Entry.Prize != rows[j].Entry.Prize {
			return rows[i].Entry.Prize > rows[j].Entry.Prize
		}
		return rows[i].Golfer < rows[j].Golfer
	})

	return &Preview{
		TournamentName: name,
		PlayerCount:    playerCount,
		Results:        results,
		Rows:           rows,
		Summary:        reconcile.Summarize(reconcile.Filter(results, golfers)),
	}
}

// ImportResults fetches, reconciles and saves a results article as tournament name.
// An empty name uses the article's title. Existing results for the tournament are
// replaced.
func (s *Session) ImportResults(url, name string) (*Preview, error) {
	p, err := s.PreviewResults(url)
	if err != nil {
		return nil, err
	}
	name = pickName(name, p.TournamentName)
	if err := s.mutate(func() error { return s.League.SetResults(name, p.Results) }); err != nil {
		return nil, err
	}

	metrics.IncImport("article")
	logger.Info("Results imported", logger.Fields{
		"tournament":   name,
		"players":      p.PlayerCount,
		"needs_review": p.Summary.NeedsReview,
	})
	p.TournamentName = name
	return p, nil
}

func pickName(name, fallback string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return fallback
}

// RefreshLive fetches the live leaderboard and projects it against the stored payout
// table. Conditions that zero every projected prize are logged and returned as
// diagnostics on the projection.
func (s *Session) RefreshLive() (*LiveSnapshot, error) {
	board, err := s.feed.Fetch()
	if err != nil {
		return nil, err
	}

	var payout league.PayoutTable
	if s.League.LiveState != nil {
		payout = s.League.LiveState.Payout
	}
	projection := scoring.Project(s.League, board.Players, payout)
	for _, d := range projection.Diagnostics {
		metrics.IncDiagnostic(d.Code)
		logger.Warn("Live projection diagnostic", logger.Fields{
			"code":    d.Code,
			"message": d.Message,
			"hint":    d.Hint,
		})
	}

	s.live = &LiveSnapshot{
		TournamentName: board.TournamentName,
		StatusMessage:  board.StatusMessage,
		Players:        board.Players,
		Payout:         payout,
		Projection:     projection,
		FetchedAt:      time.Now().UTC(),
	}
	logger.Info("Live leaderboard refreshed", logger.Fields{
		"tournament": board.TournamentName,
		"players":    len(board.Players),
		"status":     board.StatusMessage,
	})
	return s.live, nil
}

// SaveLive stores the current live snapshot as tournament name, fetching one first if
// needed. The feed lists the whole field, so rostered golfers it does not list are
// saved as not entered.
func (s *Session) SaveLive(name string) (*Preview, error) {
	if s.live == nil {
		if _, err := s.RefreshLive(); err != nil {
			return nil, err
		}
	}
	live := s.live

	results := reconcile.Reconcile(live.Players, live.Payout, s.League.Golfers())
	reconcile.ApplyFieldStatus(results, livefeed.FieldStatusMap(live.Players))

	name = pickName(name, live.TournamentName)
	if err := s.mutate(func() error { return s.League.SetResults(name, results) }); err != nil {
		return nil, err
	}

	metrics.IncImport("live")
	logger.Info("Live leaderboard saved", logger.Fields{"tournament": name, "players": len(live.Players)})
	return s.preview(name, len(live.Players), results), nil
}

// ResolveFieldStatus settles a tournament's needs_review entries from a field listing
func (s *Session) ResolveFieldStatus(tournament, url string) ([]reconcile.Change, error) {
	if _, err := s.League.Tournament(tournament); err != nil {
		return nil, err
	}
	fieldStatus, err := s.articles.FetchFieldStatus(url)
	if err != nil {
		return nil, err
	}
	return s.applyFieldStatus(tournament, fieldStatus, "listing")
}

// ResolveFromLive settles a tournament's needs_review entries from the live leaderboard,
// fetching it first if this session has none
func (s *Session) ResolveFromLive(tournament string) ([]reconcile.Change, error) {
	if _, err := s.League.Tournament(tournament); err != nil {
		return nil, err
	}
	if s.live == nil {
		if _, err := s.RefreshLive(); err != nil {
			return nil, err
		}
	}
	return s.applyFieldStatus(tournament, livefeed.FieldStatusMap(s.live.Players), "live")
}

func (s *Session) applyFieldStatus(tournament string, fieldStatus map[string]league.FieldStatus, source string) ([]reconcile.Change, error) {
	t, err := s.League.Tournament(tournament)
	if err != nil {
		return nil, err
	}
	changes := reconcile.ApplyFieldStatus(t.Results, fieldStatus)
	if len(changes) > 0 {
		if err := s.save(); err != nil {
			return nil, err
		}
	}

	logger.Info("Field status applied", logger.Fields{
		"tournament": tournament,
		"source":     source,
		"listed":     len(fieldStatus),
		"changed":    len(changes),
	})
	return changes, nil
}

// CreateTournament adds an empty tournament at the end of the season
func (s *Session) CreateTournament(name string) error {
	return s.mutate(func() error { return s.League.CreateTournament(name) })
}

// SetResult sets one golfer's entry by hand
func (s *Session) SetResult(tournament, golfer string, status league.Status, prize float64) error {
	return s.mutate(func() error { return s.League.Classify(tournament, golfer, status, prize) })
}

// DeleteTournament removes a tournament and its results
func (s *Session) DeleteTournament(name string) error {
	return s.mutate(func() error { return s.League.DeleteTournament(name) })
}

// RecalculateRoster adds current roster golfers missing from a tournament as
// needs_review and returns them
func (s *Session) RecalculateRoster(tournament string) ([]string, error) {
	var added []string
	err := s.mutate(func() error {
		var err error
		added, err = s.League.AddMissingGolfers(tournament)
		return err
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// MoveTournament moves a tournament to a zero-based position in the season
func (s *Session) MoveTournament(name string, index int) error {
	return s.mutate(func() error { return s.League.MoveTournament(name, index) })
}

// SetOrder replaces the season order
func (s *Session) SetOrder(names []string) error {
	return s.mutate(func() error { return s.League.SetOrder(names) })
}

// AddTeam creates a team
func (s *Session) AddTeam(name string, golfers []string) error {
	return s.mutate(func() error { return s.League.AddTeam(name, golfers) })
}

// SetRoster replaces a team's roster
func (s *Session) SetRoster(name string, golfers []string) error {
	return s.mutate(func() error { return s.League.SetRoster(name, golfers) })
}

// DeleteTeam removes a team
func (s *Session) DeleteTeam(name string) error {
	return s.mutate(func() error { return s.League.DeleteTeam(name) })
}

// Replace swaps in a whole league document, as restored from an export
func (s *Session) Replace(l *league.League) error {
	l.Normalize()
	return s.mutate(func() error {
		s.League = l
		return nil
	})
}

// Notify posts the standings digest after tournament
func (s *Session) Notify(n notifier.Notifier, tournament string) error {
	d, err := notifier.NewDigest(s.League, tournament)
	if err != nil {
		return err
	}
	if err := n.Notify(d); err != nil {
		return fmt.Errorf("sending digest: %w", err)
	}
	logger.Info("Standings digest sent", logger.Fields{"tournament": tournament, "teams": len(d.Standings)})
	return nil
}
