package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/pfrederiksen/golf-league/internal/logger"
)

const payoutSampleRows = 6

// FetchPayoutTable downloads a purse-breakdown article and extracts its payout table
func (s *Scraper) FetchPayoutTable(url string) (league.PayoutTable, string, error) {
	doc, err := s.FetchDocument(url)
	if err != nil {
		return nil, "", err
	}
	payout, name, err := payoutFromDocument(doc, url)
	if err != nil {
		return nil, "", err
	}
	logger.Info("Payout table loaded", logger.Fields{
		"url":        url,
		"tournament": name,
		"positions":  len(payout),
	})
	return payout, name, nil
}

// ParsePayoutTable extracts position to prize pairs from a purse-breakdown article
func ParsePayoutTable(r io.Reader) (league.PayoutTable, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, "", league.NewSourceError(league.ErrMalformedSource, "", "parsing HTML", err)
	}
	return payoutFromDocument(doc, "")
}

func payoutFromDocument(doc *goquery.Document, source string) (league.PayoutTable, string, error) {
	name := TournamentName(doc)

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, name, league.NewSourceError(league.ErrNotFound, source,
			"no payout table found; make sure this is a purse breakdown article", nil)
	}

	var payout league.PayoutTable
	tables.EachWithBreak(func(i int, table *goquery.Selection) bool {
		payout = payoutFromTable(tableRows(table))
		return len(payout) == 0
	})

	if len(payout) == 0 {
		return nil, name, league.NewSourceError(league.ErrMalformedSource, source,
			"no parseable payout data", nil)
	}
	return payout, name, nil
}

// payoutFromTable reads one table. Rows whose first cell is not a position are treated
// as headers and skipped.
func payoutFromTable(rows [][]string) league.PayoutTable {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 || isPositionHeader(row[0]) {
			continue
		}
		if _, ok := parsePosition(row[0]); ok {
			data = append(data, row)
		}
	}

	sample := data
	if len(sample) > payoutSampleRows {
		sample = sample[:payoutSampleRows]
	}

	candidates := []int{1, 2}
	if money := MoneyColumnFromSample(sample); money != NoColumn {
		candidates = []int{money}
	}

	for _, col := range candidates {
		payout := make(league.PayoutTable)
		for _, row := range data {
			if col >= len(row) {
				continue
			}
			pos, _ := parsePosition(row[0])
			amount, ok := ParseMoney(row[col])
			if !ok || amount <= 0 {
				continue
			}
			if _, exists := payout[pos]; !exists {
				payout[pos] = amount
			}
		}
		if len(payout) > 0 {
			return payout
		}
	}
	return nil
}

func isPositionHeader(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range positionKeywords {
		if s == k {
			return true
		}
	}
	return false
}
