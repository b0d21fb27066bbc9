package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/pfrederiksen/golf-league/internal/reconcile"
	"github.com/pfrederiksen/golf-league/internal/scoring"
	"github.com/pfrederiksen/golf-league/internal/session"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// render writes v as JSON, or calls text for the text format
func (a *app) render(v interface{}, text func(w io.Writer)) error {
	switch a.format {
	case FormatJSON:
		return writeJSON(a.out, v)
	case FormatText:
		text(a.out)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", a.format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writePayout(w io.Writer, state *league.LiveState) {
	fmt.Fprintf(w, "Payout table for %s: %d positions, winner %s, total %s\n",
		state.TourneyName, len(state.Payout), league.FormatMoney(state.Payout.Winner()), league.FormatMoney(state.Payout.Total()))
	for _, pos := range state.Payout.Positions() {
		fmt.Fprintf(w, "  %3d  %s\n", pos, league.FormatMoney(state.Payout[pos]))
	}
}

func writePreview(w io.Writer, p *session.Preview, saved bool) {
	verb := "Preview of"
	if saved {
		verb = "Saved"
	}
	fmt.Fprintf(w, "%s %s (%d players in source)\n\n", verb, p.TournamentName, p.PlayerCount)
	if len(p.Rows) == 0 {
		fmt.Fprintln(w, "No rostered golfers.")
	}
	for _, r := range p.Rows {
		fmt.Fprintf(w, "  %-28s %-16s %-13s %s\n", r.Golfer, r.Team, r.Entry.Status.Label(), league.FormatMoney(r.Entry.Prize))
	}
	fmt.Fprintf(w, "\n%s\n", p.Summary)
	if p.Summary.NeedsReview > 0 {
		fmt.Fprintf(w, "Resolve with: golf-league field-status %q --live\n", p.TournamentName)
	}
}

func writeLive(w io.Writer, snap *session.LiveSnapshot) {
	fmt.Fprintf(w, "%s - %s\n", snap.TournamentName, snap.StatusMessage)
	for _, d := range snap.Projection.Diagnostics {
		fmt.Fprintf(w, "\nWARNING: %s\n  %s\n", d.Message, d.Hint)
	}
	fmt.Fprintln(w)

	for _, tp := range snap.Projection.Teams {
		fmt.Fprintf(w, "%d. %-20s %12s   season %s (rank %d)\n",
			tp.Rank, tp.Team, league.FormatMoney(tp.Projected.Total), league.FormatMoney(tp.SeasonIfEnded), tp.SeasonRank)
		for _, gp := range tp.Projected.Counted {
			fmt.Fprintf(w, "     %-28s %s\n", gp.Golfer, league.FormatMoney(gp.Prize))
		}
	}
}

func writeChanges(w io.Writer, tournament string, changes []reconcile.Change) {
	if len(changes) == 0 {
		fmt.Fprintf(w, "No golfers in %s needed review.\n", tournament)
		return
	}
	for _, c := range changes {
		fmt.Fprintf(w, "%s: %s -> %s\n", c.Golfer, c.From.Label(), c.To.Label())
	}
	fmt.Fprintf(w, "\nResolved %d golfers in %s\n", len(changes), tournament)
}

// standingsView is the JSON shape of the standings command
type standingsView struct {
	Tournaments []string               `json:"tournaments"`
	Standings   []scoring.TeamStanding `json:"standings"`
	Gaps        map[string]float64     `json:"gaps"`
}

func writeStandings(w io.Writer, v standingsView) {
	if len(v.Standings) == 0 {
		fmt.Fprintln(w, "No teams in the league yet.")
		return
	}
	for _, s := range v.Standings {
		gap := "leader"
		if g := v.Gaps[s.Team]; g > 0 {
			gap = league.FormatMoney(g) + " back"
		}
		fmt.Fprintf(w, "%2d. %-20s %14s   %s\n", s.Rank, s.Team, league.FormatMoney(s.Total), gap)
	}
	fmt.Fprintf(w, "\nTotal: %d teams across %d tournaments\n", len(v.Standings), len(v.Tournaments))
}

func writeHistory(w io.Writer, teams, tournaments []string, history map[string][]scoring.HistoryPoint) {
	if len(tournaments) == 0 {
		fmt.Fprintln(w, "No tournaments yet.")
		return
	}
	for i, name := range tournaments {
		fmt.Fprintf(w, "After %s:\n", name)
		for _, team := range teams {
			points := history[team]
			if i >= len(points) {
				continue
			}
			fmt.Fprintf(w, "  %2d. %-20s %s\n", points[i].Rank, team, league.FormatMoney(points[i].Cumulative))
		}
	}
}

func writeStats(w io.Writer, stats []scoring.GolferStats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No rostered golfers.")
		return
	}
	fmt.Fprintf(w, "%-28s %-16s %6s %5s %4s %12s %12s\n", "Golfer", "Team", "Cashes", "Cuts", "WD", "Prize", "Counted")
	for _, s := range stats {
		fmt.Fprintf(w, "%-28s %-16s %6d %5d %4d %12s %12s\n",
			s.Golfer, s.Team, s.Cashes, s.Cuts, s.Withdrawals, league.FormatMoney(s.TotalPrize), league.FormatMoney(s.Counted))
	}
}

// tournamentView is the JSON shape of tournament show
type tournamentView struct {
	Name        string                        `json:"name"`
	Results     map[string]league.ResultEntry `json:"results"`
	NeedsReview []string                      `json:"needs_review"`
	Summary     reconcile.Summary             `json:"summary"`
}

func writeTournament(w io.Writer, l *league.League, t *league.Tournament, v tournamentView) {
	fmt.Fprintf(w, "%s\n\n", v.Name)
	for _, team := range l.TeamNames() {
		e := scoring.TeamEarnings(l.Teams[team], v.Results)
		fmt.Fprintf(w, "%s: %s\n", team, league.FormatMoney(e.Total))
		for _, golfer := range l.Teams[team] {
			entry := t.Entry(golfer)
			mark := " "
			if e.Counts(golfer) {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %-28s %-13s %s\n", mark, golfer, entry.Status.Label(), league.FormatMoney(entry.Prize))
		}
	}
	fmt.Fprintf(w, "\n%s\n", v.Summary)
	if len(v.NeedsReview) > 0 {
		fmt.Fprintf(w, "Needs review: %s\n", strings.Join(v.NeedsReview, ", "))
	}
}

func writeTeams(w io.Writer, l *league.League) {
	names := l.TeamNames()
	if len(names) == 0 {
		fmt.Fprintln(w, "No teams in the league yet.")
		return
	}
	for _, name := range names {
		fmt.Fprintf(w, "%s (%d): %s\n", name, len(l.Teams[name]), strings.Join(l.Teams[name], ", "))
	}
}
