package scraper

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/pfrederiksen/golf-league/internal/logger"
	"github.com/pfrederiksen/golf-league/internal/metrics"
	"github.com/shopspring/decimal"
)

const (
	// UserAgent mimics a desktop browser; the article pages reject bare clients
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	Timeout   = 15 * time.Second

	maxNameLength = 80
)

// Scraper fetches and parses tournament articles
type Scraper struct {
	client *http.Client
}

// New creates a new Scraper with the default timeout
func New() *Scraper {
	return NewWithTimeout(Timeout)
}

// NewWithTimeout creates a Scraper whose requests are bounded by timeout
func NewWithTimeout(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchDocument performs a single GET and parses the response as HTML.
// Transport failures, timeouts and non-2xx responses are reported as network failures.
func (s *Scraper) FetchDocument(url string) (doc *goquery.Document, err error) {
	start := time.Now()
	defer func() { metrics.ObserveFetch("article", start, err) }()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, league.NewSourceError(league.ErrNetworkFailure, url, "creating request", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	logger.Debug("Fetching article", logger.Fields{"url": url})

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, league.NewSourceError(league.ErrNetworkFailure, url, "fetching page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, league.NewSourceError(league.ErrNetworkFailure, url,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	doc, err = goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, league.NewSourceError(league.ErrMalformedSource, url, "parsing HTML", err)
	}
	return doc, nil
}

// TournamentName derives a display name from the page heading, falling back to the
// title. Text after the first "|" is dropped and the result is capped at 80 characters.
func TournamentName(doc *goquery.Document) string {
	raw := strings.TrimSpace(doc.Find("h1").First().Text())
	if raw == "" {
		raw = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if i := strings.Index(raw, "|"); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.Join(strings.Fields(raw), " ")

	runes := []rune(raw)
	if len(runes) > maxNameLength {
		raw = strings.TrimSpace(string(runes[:maxNameLength]))
	}
	return raw
}

var nonMoneyChars = regexp.MustCompile(`[^\d.]`)

// ParseMoney extracts an amount from text such as "$1,800,000.00".
// The boolean is false when no number can be read.
func ParseMoney(text string) (float64, bool) {
	clean := nonMoneyChars.ReplaceAllString(text, "")
	if clean == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

var nonDigits = regexp.MustCompile(`\D`)

// parsePosition reads the digits out of a position label ("T5" is 5).
// Labels without digits, such as "CUT", yield Unplaced.
func parsePosition(text string) (int, bool) {
	digits := nonDigits.ReplaceAllString(text, "")
	if digits == "" || len(digits) > 4 {
		return league.Unplaced, false
	}
	var pos int
	for _, r := range digits {
		pos = pos*10 + int(r-'0')
	}
	if pos <= 0 {
		return league.Unplaced, false
	}
	return pos, true
}

// cellTexts returns the trimmed text of a row's th and td cells
func cellTexts(row *goquery.Selection) []string {
	cells := row.Find("th, td")
	texts := make([]string, 0, cells.Length())
	cells.Each(func(i int, cell *goquery.Selection) {
		texts = append(texts, strings.Join(strings.Fields(cell.Text()), " "))
	})
	return texts
}

// tableRows returns every row of a table as cell text, skipping rows with no cells
func tableRows(table *goquery.Selection) [][]string {
	rows := make([][]string, 0)
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if cells := cellTexts(row); len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows
}
