package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/golf-league/internal/league"
)

// GolferStats is one rostered golfer's season record
type GolferStats struct {
	Golfer      string  `json:"golfer"`
	Team        string  `json:"team"`
	Cashes      int     `json:"cashes"`
	Cuts        int     `json:"cuts"`
	Withdrawals int     `json:"withdrawals"`
	NotEntered  int     `json:"not_entered"`
	NeedsReview int     `json:"needs_review"`
	TotalPrize  float64 `json:"total_prize"`
	Counted     float64 `json:"counted"`
}

// PlayerStats summarises every rostered golfer across all tournaments. Counted is the
// prize money that made the golfer's team top 3. The result is ordered by Counted.
func PlayerStats(l *league.League) []GolferStats {
	golfers := l.Golfers()
	stats := make([]GolferStats, 0, len(golfers))

	for _, golfer := range golfers {
		team, _ := l.TeamOf(golfer)
		gs := GolferStats{Golfer: golfer, Team: team}

		for _, name := range l.OrderedTournaments() {
			t := l.Tournaments[name]
			entry := t.Entry(golfer)
			switch entry.Status {
			case league.StatusCut:
				gs.Cuts++
			case league.StatusWithdrawn:
				gs.Withdrawals++
			case league.StatusNotEntered:
				gs.NotEntered++
			case league.StatusNeedsReview:
				gs.NeedsReview++
			case league.StatusScored:
				if entry.Prize > 0 {
					gs.Cashes++
					gs.TotalPrize += entry.Prize
				}
			}

			if entry.Prize > 0 && TeamEarnings(l.Teams[team], t.Results).Counts(golfer) {
				gs.Counted += entry.Prize
			}
		}
		stats = append(stats, gs)
	}

	sortStats(stats, byCounted)
	return stats
}

// Sort keys for SortStats
const (
	SortCounted = "counted"
	SortPrize   = "prize"
	SortCashes  = "cashes"
	SortCuts    = "cuts"
	SortName    = "name"
)

// SortStats orders stats in place by the given key, high to low for numeric keys.
// Equal values are ordered by golfer name.
func SortStats(stats []GolferStats, by string) error {
	var less statsOrder
	switch strings.ToLower(by) {
	case SortCounted, "":
		less = byCounted
	case SortPrize:
		less = func(a, b GolferStats) (bool, bool) { return a.TotalPrize > b.TotalPrize, a.TotalPrize == b.TotalPrize }
	case SortCashes:
		less = func(a, b GolferStats) (bool, bool) { return a.Cashes > b.Cashes, a.Cashes == b.Cashes }
	case SortCuts:
		less = func(a, b GolferStats) (bool, bool) { return a.Cuts > b.Cuts, a.Cuts == b.Cuts }
	case SortName:
		less = func(a, b GolferStats) (bool, bool) { return false, true }
	default:
		return fmt.Errorf("invalid sort key: %s (valid options: counted, prize, cashes, cuts, name)", by)
	}

	sortStats(stats, less)
	return nil
}

// statsOrder reports whether a sorts before b and whether the two are tied
type statsOrder func(a, b GolferStats) (before, equal bool)

func byCounted(a, b GolferStats) (bool, bool) { return a.Counted > b.Counted, a.Counted == b.Counted }

func sortStats(stats []GolferStats, less statsOrder) {
	sort.SliceStable(stats, func(i, j int) bool {
		before, equal := less(stats[i], stats[j])
		if !equal {
			return before
		}
		return stats[i].Golfer < stats[j].Golfer
	})
}

// FilterStats keeps the stats of golfers on the given teams
func FilterStats(stats []GolferStats, teams []string) []GolferStats {
	if len(teams) == 0 {
		return stats
	}
	keep := make(map[string]bool, len(teams))
	for _, t := range teams {
		keep[t] = true
	}
	filtered := make([]GolferStats, 0, len(stats))
	for _, gs := range stats {
		if keep[gs.Team] {
			filtered = append(filtered, gs)
		}
	}
	return filtered
}
