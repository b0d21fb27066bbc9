package livefeed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/pfrederiksen/golf-league/internal/logger"
	"github.com/pfrederiksen/golf-league/internal/metrics"
)

const (
	ScoreboardURL  = "https://site.api.espn.com/apis/site/v2/sports/golf/pga/scoreboard"
	LeaderboardURL = "https://site.api.espn.com/apis/site/v2/sports/golf/pga/leaderboard"
	UserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	Timeout        = 10 * time.Second

	// NonNumericScore is the sort key of scores such as "WD" or "--"
	NonNumericScore = 9999

	defaultTournamentName = "Current Tournament"
	defaultPlayerName     = "Unknown"
	defaultScore          = "E"
	holesPerRound         = "18"
)

// Leaderboard is one snapshot of the live feed
type Leaderboard struct {
	TournamentName string                     `json:"tournament_name"`
	StatusMessage  string                     `json:"status_message"`
	Players        []league.PlayerObservation `json:"players"`
}

// Client fetches the live feed, trying each endpoint in order
type Client struct {
	client    *http.Client
	endpoints []string
}

// New creates a Client for the given endpoints, defaulting to the scoreboard then the
// leaderboard endpoint
func New(endpoints ...string) *Client {
	return NewWithTimeout(Timeout, endpoints...)
}

// NewWithTimeout creates a Client whose requests are bounded by timeout
func NewWithTimeout(timeout time.Duration, endpoints ...string) *Client {
	if timeout <= 0 {
		timeout = Timeout
	}
	eps := make([]string, 0, len(endpoints))
	for _, e := range endpoints {
		if strings.TrimSpace(e) != "" {
			eps = append(eps, e)
		}
	}
	if len(eps) == 0 {
		eps = []string{ScoreboardURL, LeaderboardURL}
	}
	return &Client{
		client:    &http.Client{Timeout: timeout},
		endpoints: eps,
	}
}

// Fetch downloads the feed from the first endpoint that answers with decodable JSON
// and returns the leaderboard with positions re-derived. Endpoints are tried once each.
func (c *Client) Fetch() (*Leaderboard, error) {
	var lastErr error
	for _, url := range c.endpoints {
		feed, err := c.get(url)
		if err != nil {
			logger.Warn("Live feed endpoint failed", logger.Fields{"url": url, "error": err.Error()})
			lastErr = err
			continue
		}
		return build(feed, url)
	}
	return nil, league.NewSourceError(league.ErrNetworkFailure, "live feed",
		"could not reach the live scoreboard; check your internet connection", lastErr)
}

func (c *Client) get(url string) (feed *feedResponse, err error) {
	start := time.Now()
	defer func() { metrics.ObserveFetch("feed", start, err) }()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	feed = &feedResponse{}
	if err := json.NewDecoder(resp.Body).Decode(feed); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}
	return feed, nil
}

// Parse decodes a feed document and returns the leaderboard with positions re-derived
func Parse(r io.Reader) (*Leaderboard, error) {
	var feed feedResponse
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return nil, league.NewSourceError(league.ErrMalformedSource, "live feed", "decoding feed", err)
	}
	return build(&feed, "live feed")
}

func build(feed *feedResponse, source string) (*Leaderboard, error) {
	if len(feed.Events) == 0 {
		return nil, league.NewSourceError(league.ErrNotFound, source, "no active PGA Tour event right now", nil)
	}

	var event feedEvent
	if err := json.Unmarshal(feed.Events[0], &event); err != nil {
		return nil, league.NewSourceError(league.ErrMalformedSource, source, "unexpected event format", err)
	}
	if len(event.Competitions) == 0 {
		return nil, league.NewSourceError(league.ErrMalformedSource, source, "no competition data in feed", nil)
	}

	var comp feedCompetition
	if err := json.Unmarshal(event.Competitions[0], &comp); err != nil {
		return nil, league.NewSourceError(league.ErrMalformedSource, source, "unexpected competition format", err)
	}

	lb := &Leaderboard{
		TournamentName: event.Name.String(),
		StatusMessage:  statusMessage(comp.Status),
	}
	if lb.TournamentName == "" {
		lb.TournamentName = defaultTournamentName
	}

	players := make([]league.PlayerObservation, 0, len(comp.Competitors))
	skipped := 0
	for _, raw := range comp.Competitors {
		var c feedCompetitor
		if err := json.Unmarshal(raw, &c); err != nil {
			skipped++
			continue
		}
		players = append(players, observe(c))
	}
	if skipped > 0 {
		logger.Debug("Skipped malformed competitors", logger.Fields{"count": skipped})
	}

	lb.Players = DerivePositions(players)
	return lb, nil
}

func statusMessage(s feedStatus) string {
	detail := s.Type.Detail.String()
	if detail == "" {
		detail = s.Detail.String()
	}
	if period := s.Period.String(); period != "" && period != "0" {
		return fmt.Sprintf("Round %s - %s", period, detail)
	}
	return detail
}

func observe(c feedCompetitor) league.PlayerObservation {
	name := c.Athlete.String()
	if name == "" {
		name = defaultPlayerName
	}

	score := c.Score.String()
	if score == "" {
		score = defaultScore
	}

	display := c.Status.Position.String()
	if display == "" {
		display = c.Position.String()
	}
	pos, ok := positionNumber(display)
	if !ok {
		pos = league.Unplaced
	}

	return league.PlayerObservation{
		Name:            name,
		Position:        pos,
		PositionDisplay: display,
		Score:           score,
		ScoreValue:      ScoreValue(score),
		Thru:            thruLabel(c),
		FieldStatus:     classify(c, display),
	}
}

// ScoreValue converts a to-par score into a sortable number: "E" is 0, "+3" is 3 and
// anything non-numeric is NonNumericScore.
func ScoreValue(score string) int {
	s := strings.TrimSpace(score)
	switch strings.ToUpper(s) {
	case "E", "EVEN":
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	if err != nil {
		return NonNumericScore
	}
	return n
}

func thruLabel(c feedCompetitor) string {
	if thru := c.Status.Thru.String(); thru != "" && thru != "0" {
		if thru == holesPerRound {
			return "F"
		}
		return thru
	}
	if n := len(c.Linescores); n > 0 {
		if period := c.Linescores[n-1].Period.String(); period != "" {
			return "Thru " + period
		}
	}
	return ""
}

var digitsOnly = regexp.MustCompile(`\D`)

func positionNumber(display string) (int, bool) {
	n, err := strconv.Atoi(digitsOnly.ReplaceAllString(display, ""))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// classify scans every status text the feed offers. Withdrawal wins over cut, and a
// competitor marked inactive without a reason is treated as cut.
func classify(c feedCompetitor, positionLabel string) league.FieldStatus {
	texts := []string{
		c.Status.Type.Name.String(),
		c.Status.Type.ShortDetail.String(),
		c.Status.Type.Description.String(),
		c.Status.Type.Detail.String(),
		c.Status.Type.State.String(),
		c.Status.DisplayValue.String(),
		c.Status.Detail.String(),
		positionLabel,
	}
	joined := strings.ToLower(strings.Join(texts, " "))

	for _, marker := range []string{"wd", "withdr", "dq", "disq"} {
		if strings.Contains(joined, marker) {
			return league.FieldWithdrawn
		}
	}
	for _, marker := range []string{"cut", "missed", "mdf"} {
		if strings.Contains(joined, marker) {
			return league.FieldCut
		}
	}
	if c.Active.set && !c.Active.value {
		return league.FieldCut
	}
	return league.FieldActive
}
