// Package reconcile turns source observations into canonical tournament results.
//
// Reconcile is the primary pass: every golfer a source lists gets an entry, and every
// rostered golfer the source does not list is marked needs_review. ApplyFieldStatus is
// the secondary pass that settles those review cases from an independent field listing.
package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/golf-league/internal/league"
)

// Reconcile builds a result map covering every source golfer plus every roster golfer.
//
// A golfer's prize is the explicit prize from the source when positive, else the payout
// for their position. Cut and withdrawn golfers always carry a zero prize. A golfer who
// is still in the field is scored even when the prize is zero. When a name appears more
// than once in players the first occurrence wins.
func Reconcile(players []league.PlayerObservation, payout league.PayoutTable, roster []string) map[string]league.ResultEntry {
	results := make(map[string]league.ResultEntry, len(players)+len(roster))

	for _, p := range players {
		if _, exists := results[p.Name]; exists {
			continue
		}
		results[p.Name] = entryFor(p, payout)
	}

	for _, golfer := range roster {
		if _, exists := results[golfer]; !exists {
			results[golfer] = league.ResultEntry{Status: league.StatusNeedsReview}
		}
	}
	return results
}

func entryFor(p league.PlayerObservation, payout league.PayoutTable) league.ResultEntry {
	switch p.FieldStatus {
	case league.FieldWithdrawn:
		return league.ResultEntry{Status: league.StatusWithdrawn}
	case league.FieldCut:
		return league.ResultEntry{Status: league.StatusCut}
	}

	prize := p.Prize
	if prize <= 0 {
		prize = 0
		if p.Placed() {
			prize = payout.Lookup(p.Position)
		}
	}
	return league.ResultEntry{Prize: prize, Status: league.StatusScored}
}

// Change records one entry rewritten by ApplyFieldStatus
type Change struct {
	Golfer string
	From   league.Status
	To     league.Status
}

// ApplyFieldStatus settles needs_review entries in place from a field-status map.
//
// A golfer listed as cut is cut and a withdrawn golfer is withdrawn. A golfer still
// listed as active never cashed, so they are treated as having missed the cut. A golfer
// absent from the map was never in the field. Entries with any other status are left
// alone, which makes a second application a no-op.
func ApplyFieldStatus(results map[string]league.ResultEntry, fieldStatus map[string]league.FieldStatus) []Change {
	changes := make([]Change, 0)
	for golfer, entry := range results {
		if entry.Status != league.StatusNeedsReview {
			continue
		}

		to := league.StatusNotEntered
		if fs, ok := fieldStatus[golfer]; ok {
			switch fs {
			case league.FieldWithdrawn:
				to = league.StatusWithdrawn
			default:
				to = league.StatusCut
			}
		}

		results[golfer] = league.ResultEntry{Status: to}
		changes = append(changes, Change{Golfer: golfer, From: entry.Status, To: to})
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Golfer < changes[j].Golfer
	})
	return changes
}

// Summary counts the entries of a result map by status
type Summary struct {
	Scored      int `json:"scored"`
	Cashed      int `json:"cashed"`
	Cut         int `json:"cut"`
	Withdrawn   int `json:"withdrawn"`
	NotEntered  int `json:"not_entered"`
	NeedsReview int `json:"needs_review"`
}

// Summarize counts results by status. Cashed counts scored golfers with a prize.
func Summarize(results map[string]league.ResultEntry) Summary {
	var s Summary
	for _, entry := range results {
		switch entry.Status {
		case league.StatusScored:
			s.Scored++
			if entry.Prize > 0 {
				s.Cashed++
			}
		case league.StatusCut:
			s.Cut++
		case league.StatusWithdrawn:
			s.Withdrawn++
		case league.StatusNotEntered:
			s.NotEntered++
		case league.StatusNeedsReview:
			s.NeedsReview++
		}
	}
	return s
}

func (s Summary) String() string {
	parts := []string{
		fmt.Sprintf("%d scored", s.Scored),
		fmt.Sprintf("%d cut", s.Cut),
		fmt.Sprintf("%d WD/DQ", s.Withdrawn),
		fmt.Sprintf("%d not in field", s.NotEntered),
	}
	if s.NeedsReview > 0 {
		parts = append(parts, fmt.Sprintf("%d need review", s.NeedsReview))
	}
	return strings.Join(parts, " · ")
}

// Filter returns the entries for the given golfers only. Golfers with no entry are
// left out.
func Filter(results map[string]league.ResultEntry, golfers []string) map[string]league.ResultEntry {
	filtered := make(map[string]league.ResultEntry, len(golfers))
	for _, g := range golfers {
		if entry, ok := results[g]; ok {
			filtered[g] = entry
		}
	}
	return filtered
}
