package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/pfrederiksen/golf-league/internal/logger"
)

const (
	resultsSampleRows = 5
	minResultsRows    = 3
)

// FetchResultsArticle downloads a "points and payouts" article and extracts one
// observation per golfer
func (s *Scraper) FetchResultsArticle(url string) ([]league.PlayerObservation, string, error) {
	doc, err := s.FetchDocument(url)
	if err != nil {
		return nil, "", err
	}
	players, name, err := resultsFromDocument(doc, url)
	if err != nil {
		return nil, "", err
	}
	logger.Info("Results article parsed", logger.Fields{
		"url":        url,
		"tournament": name,
		"players":    len(players),
	})
	return players, name, nil
}

// ParseResultsArticle extracts golfer observations from a results article
func ParseResultsArticle(r io.Reader) ([]league.PlayerObservation, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, "", league.NewSourceError(league.ErrMalformedSource, "", "parsing HTML", err)
	}
	return resultsFromDocument(doc, "")
}

func resultsFromDocument(doc *goquery.Document, source string) ([]league.PlayerObservation, string, error) {
	name := TournamentName(doc)

	var players []league.PlayerObservation
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		players = resultsFromTable(tableRows(table))
		return len(players) == 0
	})

	if len(players) == 0 {
		return nil, name, league.NewSourceError(league.ErrNotFound, source,
			"could not find a player results table; use a \"points and payouts\" article, not the purse breakdown", nil)
	}
	return players, name, nil
}

func resultsFromTable(rows [][]string) []league.PlayerObservation {
	if len(rows) < minResultsRows {
		return nil
	}

	header, data := rows[0], rows[1:]
	sample := data
	if len(sample) > resultsSampleRows {
		sample = sample[:resultsSampleRows]
	}

	if !HasHeaderKeywords(header) && !sampleHasCurrency(sample) {
		return nil
	}

	cols := ResolveColumns(header, sample)
	if cols.Name == NoColumn || cols.Money == NoColumn {
		return nil
	}
	width := max(cols.Name, cols.Money, cols.Position)

	players := make([]league.PlayerObservation, 0, len(data))
	for _, row := range data {
		if len(row) <= width {
			continue
		}

		name := row[cols.Name]
		if name == "" || isHeaderToken(name) {
			continue
		}

		prize, ok := ParseMoney(row[cols.Money])
		if !ok {
			prize = 0
		}

		display := ""
		pos, placed := league.Unplaced, false
		if cols.Position != NoColumn {
			display = row[cols.Position]
			pos, placed = parsePosition(display)
		}

		players = append(players, league.PlayerObservation{
			Name:            name,
			Position:        pos,
			PositionDisplay: display,
			Prize:           prize,
			FieldStatus:     classifyResultRow(display, prize, placed),
		})
	}
	return players
}

// classifyResultRow infers a golfer's field status from the position label. A golfer
// with neither a prize nor a usable position is assumed to have missed the cut; the
// article cannot tell that apart from not having played.
func classifyResultRow(display string, prize float64, placed bool) league.FieldStatus {
	lower := strings.ToLower(display)
	switch {
	case strings.Contains(lower, "cut") || strings.Contains(lower, "mc"):
		return league.FieldCut
	case strings.Contains(lower, "wd") || strings.Contains(lower, "dq") ||
		strings.Contains(lower, "w/d") || strings.Contains(lower, "disq"):
		return league.FieldWithdrawn
	case prize > 0 || placed:
		return league.FieldActive
	default:
		return league.FieldCut
	}
}
