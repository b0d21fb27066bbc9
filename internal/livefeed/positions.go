package livefeed

import (
	"sort"
	"strconv"

	"github.com/pfrederiksen/golf-league/internal/league"
)

// DerivePositions recomputes positions from scores and returns the players in
// leaderboard order.
//
// Active players with numeric scores are ranked ascending with standard competition
// ranking, so two players at -5 behind a leader at -7 are both 2nd and the next player
// is 4th. A "T" marks every player who shares a score with a neighbour. Active players
// with non-numeric scores follow unplaced. Cut and withdrawn players share one bottom
// position after every active player.
func DerivePositions(players []league.PlayerObservation) []league.PlayerObservation {
	numeric := make([]league.PlayerObservation, 0, len(players))
	symbolic := make([]league.PlayerObservation, 0)
	out := make([]league.PlayerObservation, 0)

	for _, p := range players {
		switch {
		case !p.InField():
			out = append(out, p)
		case p.ScoreValue == NonNumericScore:
			symbolic = append(symbolic, p)
		default:
			numeric = append(numeric, p)
		}
	}

	sort.SliceStable(numeric, func(i, j int) bool {
		return numeric[i].ScoreValue < numeric[j].ScoreValue
	})

	for i := range numeric {
		if i > 0 && numeric[i].ScoreValue == numeric[i-1].ScoreValue {
			numeric[i].Position = numeric[i-1].Position
		} else {
			numeric[i].Position = i + 1
		}

		tied := (i > 0 && numeric[i-1].ScoreValue == numeric[i].ScoreValue) ||
			(i < len(numeric)-1 && numeric[i+1].ScoreValue == numeric[i].ScoreValue)
		label := strconv.Itoa(numeric[i].Position)
		if tied {
			label = "T" + label
		}
		numeric[i].PositionDisplay = label
	}

	for i := range symbolic {
		symbolic[i].Position = league.Unplaced
		symbolic[i].PositionDisplay = "-"
	}

	bottom := len(numeric) + len(symbolic) + 1
	for i := range out {
		out[i].Position = bottom
		if !hasLabel(out[i].PositionDisplay) {
			if out[i].FieldStatus == league.FieldWithdrawn {
				out[i].PositionDisplay = "WD"
			} else {
				out[i].PositionDisplay = "CUT"
			}
		}
	}

	result := make([]league.PlayerObservation, 0, len(players))
	result = append(result, numeric...)
	result = append(result, symbolic...)
	return append(result, out...)
}

// hasLabel reports whether the feed already gave a non-numeric position label such
// as "MDF" or "DQ"
func hasLabel(display string) bool {
	if display == "" || display == "-" {
		return false
	}
	_, numeric := positionNumber(display)
	return !numeric
}

// FieldStatusMap returns each player's field status, so a live snapshot can settle
// golfers an article import left unresolved
func FieldStatusMap(players []league.PlayerObservation) map[string]league.FieldStatus {
	status := make(map[string]league.FieldStatus, len(players))
	for _, p := range players {
		if _, exists := status[p.Name]; !exists {
			status[p.Name] = p.FieldStatus
		}
	}
	return status
}
