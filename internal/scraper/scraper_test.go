package scraper

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/golf-league/internal/league"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestParsePayoutTable(t *testing.T) {
	payout, name, err := ParsePayoutTable(strings.NewReader(loadFixture(t, "purse_breakdown.html")))
	if err != nil {
		t.Fatalf("ParsePayoutTable failed: %v", err)
	}

	if name != "Purse breakdown: The Genesis Invitational" {
		t.Errorf("unexpected tournament name %q", name)
	}

	expected := league.PayoutTable{
		1: 4000000,
		2: 2200000,
		3: 1400000,
		4: 980000,
		5: 800000, // the T5 row repeats position 5 and is discarded
	}
	if diff := cmp.Diff(expected, payout); diff != "" {
		t.Errorf("payout mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePayoutTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		wantErr error
	}{
		{
			name:    "no table",
			html:    `<html><body><h1>Nothing here</h1></body></html>`,
			wantErr: league.ErrNotFound,
		},
		{
			name:    "table without amounts",
			html:    `<table><tr><th>Pos.</th><th>Player</th></tr><tr><td>1</td><td>Somebody</td></tr></table>`,
			wantErr: league.ErrMalformedSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParsePayoutTable(strings.NewReader(tt.html))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParsePayoutTable_FallbackColumns(t *testing.T) {
	// No currency symbols and short amounts: column 1 is tried before column 2
	html := `<table>
		<tr><td>Pos</td><td>Share</td></tr>
		<tr><td>1</td><td>900</td></tr>
		<tr><td>2</td><td>540</td></tr>
	</table>`

	payout, _, err := ParsePayoutTable(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParsePayoutTable failed: %v", err)
	}
	if diff := cmp.Diff(league.PayoutTable{1: 900, 2: 540}, payout); diff != "" {
		t.Errorf("payout mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResultsArticle(t *testing.T) {
	players, name, err := ParseResultsArticle(strings.NewReader(loadFixture(t, "results_article.html")))
	if err != nil {
		t.Fatalf("ParseResultsArticle failed: %v", err)
	}

	if name != "Points and payouts: Scottie Scheffler wins the Masters" {
		t.Errorf("unexpected tournament name %q", name)
	}
	if len(players) != 9 {
		t.Fatalf("expected 9 players, got %d: %+v", len(players), players)
	}

	byName := make(map[string]league.PlayerObservation)
	for _, p := range players {
		byName[p.Name] = p
	}

	tests := []struct {
		name     string
		position int
		display  string
		prize    float64
		status   league.FieldStatus
	}{
		{"Scottie Scheffler", 1, "1", 3600000, league.FieldActive},
		{"Collin Morikawa", 3, "T3", 1040000, league.FieldActive},
		{"Tiger Woods", 60, "60", 0, league.FieldActive},
		{"Rory McIlroy", league.Unplaced, "CUT", 0, league.FieldCut},
		{"Jason Day", league.Unplaced, "WD", 0, league.FieldWithdrawn},
		{"Brooks Koepka", league.Unplaced, "", 0, league.FieldCut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := byName[tt.name]
			if !ok {
				t.Fatalf("player %q not parsed", tt.name)
			}
			if p.Position != tt.position || p.PositionDisplay != tt.display {
				t.Errorf("position = %d %q, expected %d %q", p.Position, p.PositionDisplay, tt.position, tt.display)
			}
			if p.Prize != tt.prize {
				t.Errorf("prize = %v, expected %v", p.Prize, tt.prize)
			}
			if p.FieldStatus != tt.status {
				t.Errorf("status = %q, expected %q", p.FieldStatus, tt.status)
			}
		})
	}

	if _, ok := byName["Player"]; ok {
		t.Error("repeated header row should be skipped")
	}
}

func TestParseResultsArticle_PayoutScenario(t *testing.T) {
	html := `<html><head><title>Results</title></head><body><table>
		<tr><th>Pos</th><th>Player</th><th>Money</th></tr>
		<tr><td>1</td><td>Player A</td><td>$1,800,000</td></tr>
		<tr><td>T2</td><td>Player B</td><td>$1,080,000</td></tr>
		<tr><td>CUT</td><td>Player C</td><td>$0</td></tr>
	</table></body></html>`

	players, _, err := ParseResultsArticle(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseResultsArticle failed: %v", err)
	}

	expected := []league.PlayerObservation{
		{Name: "Player A", Position: 1, PositionDisplay: "1", Prize: 1800000, FieldStatus: league.FieldActive},
		{Name: "Player B", Position: 2, PositionDisplay: "T2", Prize: 1080000, FieldStatus: league.FieldActive},
		{Name: "Player C", Position: league.Unplaced, PositionDisplay: "CUT", Prize: 0, FieldStatus: league.FieldCut},
	}
	if diff := cmp.Diff(expected, players); diff != "" {
		t.Errorf("players mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResultsArticle_PositionalHeuristic(t *testing.T) {
	html := `<table>
		<tr><td>Final results</td><td></td><td></td><td></td></tr>
		<tr><td>1</td><td>Hideki Matsuyama</td><td>-17</td><td>$3,600,000</td></tr>
		<tr><td>T2</td><td>Will Zalatoris</td><td>-15</td><td>$1,760,000</td></tr>
		<tr><td>T2</td><td>Xander Schauffele</td><td>-15</td><td>$1,760,000</td></tr>
	</table>`

	players, _, err := ParseResultsArticle(strings.NewReader(html))
	if err != nil {
		t.Fatalf("ParseResultsArticle failed: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(players))
	}
	if players[2].Name != "Xander Schauffele" || players[2].Position != 2 || players[2].Prize != 1760000 {
		t.Errorf("unexpected player %+v", players[2])
	}
}

func TestParseResultsArticle_NotFound(t *testing.T) {
	// A purse breakdown has no player column
	_, _, err := ParseResultsArticle(strings.NewReader(loadFixture(t, "purse_breakdown.html")))
	if !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "points and payouts") {
		t.Errorf("expected a hint in %q", err.Error())
	}
}

func TestTournamentName(t *testing.T) {
	long := strings.Repeat("a", 100)
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{"heading", `<html><head><title>Ignored</title></head><body><h1>The Players | PGA TOUR</h1></body></html>`, "The Players"},
		{"title fallback", `<html><head><title>RBC Heritage | PGA TOUR</title></head><body></body></html>`, "RBC Heritage"},
		{"whitespace", `<h1>  The   Memorial
			Tournament </h1>`, "The Memorial Tournament"},
		{"truncated", `<h1>` + long + `</h1>`, long[:80]},
		{"empty", `<html></html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("parsing HTML: %v", err)
			}
			if got := TournamentName(doc); got != tt.expected {
				t.Errorf("TournamentName() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"$1,800,000.00", 1800000, true},
		{"$3,600,000", 3600000, true},
		{"1080000", 1080000, true},
		{"$12,345.67", 12345.67, true},
		{"-", 0, false},
		{"", 0, false},
		{"n/a", 0, false},
		{"1.2.3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseMoney(tt.input)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("ParseMoney(%q) = %v, %v; expected %v, %v", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		ok       bool
	}{
		{"1", 1, true},
		{"T5", 5, true},
		{"t12", 12, true},
		{"CUT", league.Unplaced, false},
		{"", league.Unplaced, false},
		{"0", league.Unplaced, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parsePosition(tt.input)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("parsePosition(%q) = %d, %v; expected %d, %v", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}
