// Package export writes the league as an Excel workbook.
//
// The workbook has three sheets: Standings (season totals with one column per
// tournament), History (cumulative total and rank after each tournament) and Players
// (each rostered golfer's season record).
package export

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/pfrederiksen/golf-league/internal/scoring"
	"github.com/xuri/excelize/v2"
)

// Sheet names
const (
	SheetStandings = "Standings"
	SheetHistory   = "History"
	SheetPlayers   = "Players"
)

const moneyFormat = "$#,##0"

type workbook struct {
	f     *excelize.File
	bold  int
	money int
}

// Workbook writes the league workbook to w
func Workbook(w io.Writer, l *league.League) error {
	f := excelize.NewFile()
	defer f.Close()

	wb, err := newWorkbook(f)
	if err != nil {
		return err
	}
	if err := wb.standings(l); err != nil {
		return err
	}
	if err := wb.history(l); err != nil {
		return err
	}
	if err := wb.players(l); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func newWorkbook(f *excelize.File) (*workbook, error) {
	if err := f.SetSheetName(f.GetSheetName(0), SheetStandings); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	for _, name := range []string{SheetHistory, SheetPlayers} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	format := moneyFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return nil, fmt.Errorf("creating money style: %w", err)
	}
	return &workbook{f: f, bold: bold, money: money}, nil
}

// row writes values starting at column A of the given 1-based row
func (wb *workbook) row(sheet string, n int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := wb.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, n, err)
	}
	return nil
}

func (wb *workbook) header(sheet string, titles []interface{}) error {
	if err := wb.row(sheet, 1, titles); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(titles), 1)
	if err != nil {
		return err
	}
	return wb.f.SetCellStyle(sheet, "A1", last, wb.bold)
}

// moneyColumns applies the currency format to columns first..last (1-based) below the header
func (wb *workbook) moneyColumns(sheet string, first, last, rows int) error {
	if rows == 0 {
		return nil
	}
	top, err := excelize.CoordinatesToCellName(first, 2)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(last, rows+1)
	if err != nil {
		return err
	}
	return wb.f.SetCellStyle(sheet, top, bottom, wb.money)
}

func (wb *workbook) standings(l *league.League) error {
	tournaments := l.OrderedTournaments()
	titles := []interface{}{"Rank", "Team", "Total"}
	for _, t := range tournaments {
		titles = append(titles, t)
	}
	titles = append(titles, "Gap")
	if err := wb.header(SheetStandings, titles); err != nil {
		return err
	}

	standings := scoring.Standings(l)
	gaps := scoring.GapToLeader(standings)
	for i, s := range standings {
		values := []interface{}{s.Rank, s.Team, s.Total}
		for _, t := range tournaments {
			values = append(values, s.ByTournament[t].Total)
		}
		values = append(values, gaps[s.Team])
		if err := wb.row(SheetStandings, i+2, values); err != nil {
			return err
		}
	}
	return wb.moneyColumns(SheetStandings, 3, len(titles), len(standings))
}

func (wb *workbook) history(l *league.League) error {
	if err := wb.header(SheetHistory, []interface{}{"Tournament", "Team", "Cumulative", "Rank"}); err != nil {
		return err
	}

	history := scoring.RankHistory(l)
	n := 0
	for i, tournament := range l.OrderedTournaments() {
		for _, team := range l.TeamNames() {
			p := history[team][i]
			n++
			if err := wb.row(SheetHistory, n+1, []interface{}{tournament, team, p.Cumulative, p.Rank}); err != nil {
				return err
			}
		}
	}
	return wb.moneyColumns(SheetHistory, 3, 3, n)
}

func (wb *workbook) players(l *league.League) error {
	titles := []interface{}{"Golfer", "Team", "Cashes", "Cuts", "WD/DQ", "Not in field", "Needs review", "Total prize", "Counted"}
	if err := wb.header(SheetPlayers, titles); err != nil {
		return err
	}

	stats := scoring.PlayerStats(l)
	for i, s := range stats {
		values := []interface{}{s.Golfer, s.Team, s.Cashes, s.Cuts, s.Withdrawals, s.NotEntered, s.NeedsReview, s.TotalPrize, s.Counted}
		if err := wb.row(SheetPlayers, i+2, values); err != nil {
			return err
		}
	}
	return wb.moneyColumns(SheetPlayers, 8, 9, len(stats))
}
