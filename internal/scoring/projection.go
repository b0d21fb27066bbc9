package scoring

import (
	"sort"

	"github.com/pfrederiksen/golf-league/internal/league"
)

// Diagnostic codes raised by Project
const (
	DiagNoPayout         = "no_payout"
	DiagNoActivePlayers  = "no_active_players"
	DiagPositionMismatch = "position_mismatch"
)

// Diagnostic explains why a projection may be misleading
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

// TeamProjection is one team's standing if the live event ended now
type TeamProjection struct {
	Team          string   `json:"team"`
	Rank          int      `json:"rank"`
	Projected     Earnings `json:"projected"`
	SeasonTotal   float64  `json:"season_total"`
	SeasonIfEnded float64  `json:"season_if_ended"`
	SeasonRank    int      `json:"season_rank"`
}

// LiveProjection is the result of projecting a live leaderboard onto the league
type LiveProjection struct {
	Teams       []TeamProjection   `json:"teams"`
	Prizes      map[string]float64 `json:"prizes"`
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`
}

// ProjectPrizes assigns each player the payout for their current position. Cut,
// withdrawn and unplaced players project to zero.
func ProjectPrizes(players []league.PlayerObservation, payout league.PayoutTable) map[string]float64 {
	prizes := make(map[string]float64, len(players))
	for _, p := range players {
		if _, exists := prizes[p.Name]; exists {
			continue
		}
		if !p.InField() || !p.Placed() {
			prizes[p.Name] = 0
			continue
		}
		prizes[p.Name] = payout.Lookup(p.Position)
	}
	return prizes
}

// Project applies the top-3 rule to projected prizes and adds each team's season total
// so far. Conditions that would make every projected prize zero are reported as
// diagnostics rather than errors.
func Project(l *league.League, players []league.PlayerObservation, payout league.PayoutTable) LiveProjection {
	prizes := ProjectPrizes(players, payout)

	results := make(map[string]league.ResultEntry, len(prizes))
	for name, prize := range prizes {
		results[name] = league.ResultEntry{Prize: prize, Status: league.StatusScored}
	}

	season := make(map[string]float64)
	for _, s := range Standings(l) {
		season[s.Team] = s.Total
	}

	teams := make([]TeamProjection, 0, len(l.Teams))
	for _, team := range l.TeamNames() {
		e := TeamEarnings(l.Teams[team], results)
		teams = append(teams, TeamProjection{
			Team:          team,
			Projected:     e,
			SeasonTotal:   season[team],
			SeasonIfEnded: season[team] + e.Total,
		})
	}

	bySeason := append([]TeamProjection(nil), teams...)
	sort.SliceStable(bySeason, func(i, j int) bool {
		if bySeason[i].SeasonIfEnded != bySeason[j].SeasonIfEnded {
			return bySeason[i].SeasonIfEnded > bySeason[j].SeasonIfEnded
		}
		return bySeason[i].Team < bySeason[j].Team
	})
	seasonRank := make(map[string]int, len(bySeason))
	for i, tp := range bySeason {
		seasonRank[tp.Team] = i + 1
	}

	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Projected.Total != teams[j].Projected.Total {
			return teams[i].Projected.Total > teams[j].Projected.Total
		}
		return teams[i].Team < teams[j].Team
	})
	for i := range teams {
		teams[i].Rank = i + 1
		teams[i].SeasonRank = seasonRank[teams[i].Team]
	}

	return LiveProjection{
		Teams:       teams,
		Prizes:      prizes,
		Diagnostics: diagnose(players, payout, prizes),
	}
}

func diagnose(players []league.PlayerObservation, payout league.PayoutTable, prizes map[string]float64) []Diagnostic {
	var diags []Diagnostic

	if len(payout) == 0 {
		diags = append(diags, Diagnostic{
			Code:    DiagNoPayout,
			Message: "no payout table is loaded, so every projected prize is $0",
			Hint:    "load this week's purse breakdown article before projecting",
		})
	}

	activeCount := 0
	for _, p := range players {
		if p.InField() {
			activeCount++
		}
	}
	if activeCount == 0 {
		diags = append(diags, Diagnostic{
			Code:    DiagNoActivePlayers,
			Message: "the live feed lists no active players, so every projected prize is $0",
			Hint:    "the event may not have started yet, or every player is marked cut or withdrawn; check the feed status",
		})
	}

	if len(payout) > 0 && activeCount > 0 {
		total := 0.0
		for _, prize := range prizes {
			total += prize
		}
		if total == 0 {
			diags = append(diags, Diagnostic{
				Code:    DiagPositionMismatch,
				Message: "active players exist and a payout table is loaded, but no position matches a paying position",
				Hint:    "the payout table may belong to a different event; reload the purse breakdown for this tournament",
			})
		}
	}
	return diags
}
