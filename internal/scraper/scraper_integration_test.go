package scraper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pfrederiksen/golf-league/internal/league"
)

func TestFetchPayoutTable(t *testing.T) {
	tests := []struct {
		name          string
		htmlContent   string
		statusCode    int
		wantErr       error
		wantPositions int
	}{
		{
			name: "successful fetch",
			htmlContent: `<html><body><h1>Purse breakdown</h1><table>
				<tr><th>Pos.</th><th>Pct.</th><th>Amount</th></tr>
				<tr><td>1</td><td>18.0</td><td>$1,800,000</td></tr>
				<tr><td>2</td><td>10.9</td><td>$1,090,000</td></tr>
			</table></body></html>`,
			statusCode:    http.StatusOK,
			wantPositions: 2,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantErr:    league.ErrNetworkFailure,
		},
		{
			name:        "page without table",
			htmlContent: `<html><body><p>Moved</p></body></html>`,
			statusCode:  http.StatusOK,
			wantErr:     league.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ua := r.Header.Get("User-Agent"); ua != UserAgent {
					t.Errorf("unexpected User-Agent %q", ua)
				}
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			payout, _, err := New().FetchPayoutTable(server.URL)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchPayoutTable failed: %v", err)
			}
			if len(payout) != tt.wantPositions {
				t.Errorf("expected %d positions, got %d", tt.wantPositions, len(payout))
			}
		})
	}
}

func TestFetchResultsArticle(t *testing.T) {
	fixture := loadFixture(t, "results_article.html")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fixture))
	}))
	defer server.Close()

	players, name, err := New().FetchResultsArticle(server.URL)
	if err != nil {
		t.Fatalf("FetchResultsArticle failed: %v", err)
	}
	if name == "" {
		t.Error("expected a tournament name")
	}
	if len(players) != 9 {
		t.Errorf("expected 9 players, got %d", len(players))
	}
}

func TestFetchDocument_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	_, err := NewWithTimeout(20 * time.Millisecond).FetchDocument(server.URL)
	if !errors.Is(err, league.ErrNetworkFailure) {
		t.Fatalf("expected ErrNetworkFailure, got %v", err)
	}
}

func TestFetchDocument_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New().FetchDocument(url)
	if !errors.Is(err, league.ErrNetworkFailure) {
		t.Fatalf("expected ErrNetworkFailure, got %v", err)
	}
}
