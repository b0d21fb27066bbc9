package scraper

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/pfrederiksen/golf-league/internal/logger"
)

const structuredDataSelector = `script#__NEXT_DATA__, script[type="application/json"], script[type="application/ld+json"]`

var (
	playerNameKeys   = []string{"playerName", "displayName", "fullName", "athleteName", "name"}
	playerStatusKeys = []string{"status", "playerState", "positionDisplay", "position", "pos"}
	nestedPlayerKeys = []string{"player", "athlete"}
)

// FetchFieldStatus downloads a leaderboard or field page and extracts who is still
// in the field
func (s *Scraper) FetchFieldStatus(url string) (map[string]league.FieldStatus, error) {
	doc, err := s.FetchDocument(url)
	if err != nil {
		return nil, err
	}
	return fieldStatusFromDocument(doc, url)
}

// ParseFieldStatus builds a golfer name to field status map from a leaderboard page.
// Embedded JSON data is preferred; table rows are read only when it yields nothing.
func ParseFieldStatus(r io.Reader) (map[string]league.FieldStatus, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, league.NewSourceError(league.ErrMalformedSource, "", "parsing HTML", err)
	}
	return fieldStatusFromDocument(doc, "")
}

func fieldStatusFromDocument(doc *goquery.Document, source string) (map[string]league.FieldStatus, error) {
	status := make(map[string]league.FieldStatus)

	doc.Find(structuredDataSelector).Each(func(i int, script *goquery.Selection) {
		var data interface{}
		if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
			logger.Debug("Skipping unparseable embedded data", logger.Fields{"index": i, "error": err.Error()})
			return
		}
		walkStructured(data, status)
	})

	origin := "structured"
	if len(status) == 0 {
		origin = "table"
		doc.Find("table").Each(func(i int, table *goquery.Selection) {
			fieldStatusFromTable(tableRows(table), status)
		})
	}

	if len(status) == 0 {
		return nil, league.NewSourceError(league.ErrNotFound, source, "no field status data found", nil)
	}

	logger.Debug("Field status extracted", logger.Fields{"players": len(status), "origin": origin})
	return status, nil
}

// walkStructured visits every object in a decoded JSON tree and records the ones that
// describe a player. The first record for a name wins.
func walkStructured(node interface{}, out map[string]league.FieldStatus) {
	switch v := node.(type) {
	case map[string]interface{}:
		if name, text, ok := playerRecord(v); ok {
			if _, exists := out[name]; !exists {
				out[name] = ClassifyFieldText(text)
			}
		}
		for _, child := range v {
			walkStructured(child, out)
		}
	case []interface{}:
		for _, child := range v {
			walkStructured(child, out)
		}
	}
}

func playerRecord(obj map[string]interface{}) (string, string, bool) {
	name := firstString(obj, playerNameKeys)
	if name == "" {
		for _, key := range nestedPlayerKeys {
			if nested, ok := obj[key].(map[string]interface{}); ok {
				if name = firstString(nested, playerNameKeys); name != "" {
					break
				}
			}
		}
	}
	if name == "" {
		return "", "", false
	}

	for _, key := range playerStatusKeys {
		if text, ok := textValue(obj[key]); ok {
			return name, text, true
		}
	}
	return "", "", false
}

func firstString(obj map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// textValue reads a status-like value that may be a plain string or an object
// carrying a display field
func textValue(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, strings.TrimSpace(t) != ""
	case map[string]interface{}:
		for _, key := range []string{"displayValue", "displayName", "name", "description", "state"} {
			if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return "", false
}

// ClassifyFieldText maps free status text from a leaderboard to a field status.
// Withdrawal and disqualification markers win over cut markers; anything else is active.
func ClassifyFieldText(text string) league.FieldStatus {
	lower := strings.ToLower(text)
	for _, token := range words(lower) {
		switch token {
		case "wd", "dq", "withdrawn", "withdrew", "disqualified", "disq":
			return league.FieldWithdrawn
		}
	}
	if strings.Contains(lower, "w/d") || strings.Contains(lower, "withdr") || strings.Contains(lower, "disqual") {
		return league.FieldWithdrawn
	}
	for _, token := range words(lower) {
		switch token {
		case "cut", "mc", "mdf", "missed":
			return league.FieldCut
		}
	}
	return league.FieldActive
}

func fieldStatusFromTable(rows [][]string, out map[string]league.FieldStatus) {
	if len(rows) < 2 {
		return
	}
	header, data := rows[0], rows[1:]
	sample := data
	if len(sample) > resultsSampleRows {
		sample = sample[:resultsSampleRows]
	}

	cols := ResolveColumns(header, sample)
	nameCol := cols.Name
	if nameCol == NoColumn {
		if cols.Position == NoColumn || len(header) < 2 {
			return
		}
		nameCol = 1
	}

	for _, row := range data {
		if nameCol >= len(row) {
			continue
		}
		name := row[nameCol]
		if name == "" || isHeaderToken(name) {
			continue
		}
		if _, exists := out[name]; exists {
			continue
		}

		rest := make([]string, 0, len(row)-1)
		for i, cell := range row {
			if i != nameCol {
				rest = append(rest, cell)
			}
		}
		out[name] = ClassifyFieldText(strings.Join(rest, " "))
	}
}
