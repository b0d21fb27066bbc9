package notifier

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pfrederiksen/golf-league/internal/config"
	"github.com/pfrederiksen/golf-league/internal/league"
)

func sampleDigest(t *testing.T) *Digest {
	t.Helper()
	l := league.New()
	_ = l.AddTeam("Eagles", []string{"Scottie Scheffler", "Rory McIlroy"})
	_ = l.AddTeam("Birdies & Bogeys", []string{"Xander Schauffele"})
	_ = l.SetResults("Sentry", map[string]league.ResultEntry{
		"Scottie Scheffler": {Prize: 3600000, Status: league.StatusScored},
		"Xander Schauffele": {Prize: 500000, Status: league.StatusScored},
	})
	_ = l.SetResults("Masters", map[string]league.ResultEntry{
		"Xander Schauffele": {Prize: 250000, Status: league.StatusScored},
		"Rory McIlroy":      {Status: league.StatusCut},
	})

	d, err := NewDigest(l, "Masters")
	if err != nil {
		t.Fatalf("NewDigest failed: %v", err)
	}
	return d
}

func TestNewDigest(t *testing.T) {
	d := sampleDigest(t)
	if len(d.Standings) != 2 || d.Standings[0].Team != "Eagles" {
		t.Fatalf("unexpected standings %+v", d.Standings)
	}
	if d.Gaps["Birdies & Bogeys"] != 2850000 {
		t.Errorf("gap = %v, want 2850000", d.Gaps["Birdies & Bogeys"])
	}
	if !strings.Contains(d.Summary, "1 cut") {
		t.Errorf("summary = %q", d.Summary)
	}

	if _, err := NewDigest(league.New(), "Open"); !errors.Is(err, league.ErrTournamentNotFound) {
		t.Errorf("expected ErrTournamentNotFound, got %v", err)
	}
}

func TestFormatDigest(t *testing.T) {
	msg := FormatDigest(sampleDigest(t))

	for _, want := range []string{
		"<b>Standings after Masters</b>",
		"1. <b>Eagles</b> $3,600,000",
		"2. <b>Birdies &amp; Bogeys</b> $750,000 (+$250,000) • $2,850,000 back",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("digest missing %q:\n%s", want, msg)
		}
	}

	if got := FormatDigest(&Digest{Tournament: "Masters"}); got != "No teams in the league yet." {
		t.Errorf("empty digest = %q", got)
	}
}

func TestFormatTweet(t *testing.T) {
	tweet := FormatTweet(sampleDigest(t))
	if !strings.Contains(tweet, "2. Birdies & Bogeys $750,000 (+$250,000)") {
		t.Errorf("tweet missing standings line:\n%s", tweet)
	}
	if !strings.HasSuffix(tweet, "#FantasyGolf") {
		t.Errorf("tweet missing hashtag:\n%s", tweet)
	}

	long := sampleDigest(t)
	for i := 0; i < 30; i++ {
		long.Standings = append(long.Standings, long.Standings[1])
	}
	tweet = FormatTweet(long)
	if n := utf8.RuneCountInString(tweet); n > tweetLimit {
		t.Errorf("tweet length %d exceeds %d", n, tweetLimit)
	}
	if !strings.HasSuffix(tweet, "#FantasyGolf") {
		t.Errorf("long tweet should drop teams, not the hashtag:\n%s", tweet)
	}
}

func TestDryRunNotifier(t *testing.T) {
	var buf bytes.Buffer
	if err := NewDryRunNotifier(&buf).Notify(sampleDigest(t)); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "--- Telegram ---") || !strings.Contains(out, "--- Tweet ---") {
		t.Errorf("unexpected dry-run output:\n%s", out)
	}
}

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(*Digest) error { return f.err }

func TestMulti(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	m := Multi{failingNotifier{boom}, NewDryRunNotifier(&buf)}

	err := m.Notify(sampleDigest(t))
	if !errors.Is(err, boom) {
		t.Errorf("expected joined error, got %v", err)
	}
	if buf.Len() == 0 {
		t.Error("later notifiers should still run after a failure")
	}
	if err := (Multi{}).Notify(sampleDigest(t)); err != nil {
		t.Errorf("empty Multi returned %v", err)
	}
}

func TestNewTwitterNotifier_Validation(t *testing.T) {
	if _, err := NewTwitterNotifier(config.TwitterConfig{APIKey: "k"}); err == nil {
		t.Error("expected error for incomplete credentials")
	}
	n, err := NewTwitterNotifier(config.TwitterConfig{APIKey: "k", APISecret: "s", AccessToken: "t", AccessSecret: "a"})
	if err != nil || n == nil {
		t.Errorf("NewTwitterNotifier() = %v, %v", n, err)
	}
}
