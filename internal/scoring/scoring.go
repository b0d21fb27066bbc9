package scoring

import (
	"sort"

	"github.com/pfrederiksen/golf-league/internal/league"
)

// TopN is how many golfers count toward a team's tournament score
const TopN = 3

// GolferPrize is one golfer's contribution to a team score
type GolferPrize struct {
	Golfer string  `json:"golfer"`
	Prize  float64 `json:"prize"`
}

// Earnings is a team's result for one tournament
type Earnings struct {
	Total   float64       `json:"total"`
	Counted []GolferPrize `json:"counted"`
}

// TeamEarnings applies the top-3 rule to one tournament. Only golfers with a positive
// prize qualify. Prizes are ordered high to low with equal prizes ordered by golfer
// name, so the roster's own order never changes the outcome. A golfer listed twice on a
// roster counts once.
func TeamEarnings(roster []string, results map[string]league.ResultEntry) Earnings {
	seen := make(map[string]bool, len(roster))
	eligible := make([]GolferPrize, 0, len(roster))
	for _, g := range roster {
		if seen[g] {
			continue
		}
		seen[g] = true
		if entry, ok := results[g]; ok && entry.Prize > 0 {
			eligible = append(eligible, GolferPrize{Golfer: g, Prize: entry.Prize})
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Prize != eligible[j].Prize {
			return eligible[i].Prize > eligible[j].Prize
		}
		return eligible[i].Golfer < eligible[j].Golfer
	})
	if len(eligible) > TopN {
		eligible = eligible[:TopN]
	}

	e := Earnings{Counted: eligible}
	for _, gp := range eligible {
		e.Total += gp.Prize
	}
	return e
}

// Counts reports whether golfer is one of the counted golfers
func (e Earnings) Counts(golfer string) bool {
	for _, gp := range e.Counted {
		if gp.Golfer == golfer {
			return true
		}
	}
	return false
}

// TeamStanding is one team's season position
type TeamStanding struct {
	Team         string              `json:"team"`
	Rank         int                 `json:"rank"`
	Total        float64             `json:"total"`
	ByTournament map[string]Earnings `json:"by_tournament"`
}

// Standings totals every team over every tournament. Teams are ordered by total, high
// to low, with equal totals ordered by team name; ranks follow that order.
func Standings(l *league.League) []TeamStanding {
	standings := make([]TeamStanding, 0, len(l.Teams))
	for _, team := range l.TeamNames() {
		s := TeamStanding{Team: team, ByTournament: make(map[string]Earnings)}
		for _, name := range l.OrderedTournaments() {
			e := TeamEarnings(l.Teams[team], l.Tournaments[name].Results)
			s.ByTournament[name] = e
			s.Total += e.Total
		}
		standings = append(standings, s)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Total != standings[j].Total {
			return standings[i].Total > standings[j].Total
		}
		return standings[i].Team < standings[j].Team
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// GapToLeader returns how far each team trails the leader. The leader's gap is 0.
func GapToLeader(standings []TeamStanding) map[string]float64 {
	gaps := make(map[string]float64, len(standings))
	if len(standings) == 0 {
		return gaps
	}
	lead := standings[0].Total
	for _, s := range standings {
		if s.Total > lead {
			lead = s.Total
		}
	}
	for _, s := range standings {
		gaps[s.Team] = lead - s.Total
	}
	return gaps
}

// HistoryPoint is a team's cumulative position after one tournament
type HistoryPoint struct {
	Tournament string  `json:"tournament"`
	Cumulative float64 `json:"cumulative"`
	Rank       int     `json:"rank"`
}

// RankHistory replays the season in order and records every team's cumulative total
// and rank after each tournament. Equal totals are ranked by team name.
func RankHistory(l *league.League) map[string][]HistoryPoint {
	teams := l.TeamNames()
	history := make(map[string][]HistoryPoint, len(teams))
	cumulative := make(map[string]float64, len(teams))

	for _, name := range l.OrderedTournaments() {
		results := l.Tournaments[name].Results
		for _, team := range teams {
			cumulative[team] += TeamEarnings(l.Teams[team], results).Total
		}

		ranked := append([]string(nil), teams...)
		sort.SliceStable(ranked, func(i, j int) bool {
			if cumulative[ranked[i]] != cumulative[ranked[j]] {
				return cumulative[ranked[i]] > cumulative[ranked[j]]
			}
			return ranked[i] < ranked[j]
		})
		for i, team := range ranked {
			history[team] = append(history[team], HistoryPoint{
				Tournament: name,
				Cumulative: cumulative[team],
				Rank:       i + 1,
			})
		}
	}
	return history
}
