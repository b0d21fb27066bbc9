package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/pfrederiksen/golf-league/internal/reconcile"
	"github.com/pfrederiksen/golf-league/internal/scoring"
)

const tweetLimit = 280

// Notifier defines the interface for posting standings digests
type Notifier interface {
	// Notify posts the digest
	Notify(d *Digest) error
}

// Multi posts to every notifier, continuing past failures
type Multi []Notifier

// Notify posts the digest to each notifier and joins their errors
func (m Multi) Notify(d *Digest) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Digest is the season table after one tournament
type Digest struct {
	Tournament string
	Summary    string
	Standings  []scoring.TeamStanding
	Gaps       map[string]float64
}

// NewDigest builds the digest for a stored tournament
func NewDigest(l *league.League, tournament string) (*Digest, error) {
	t, err := l.Tournament(tournament)
	if err != nil {
		return nil, err
	}
	standings := scoring.Standings(l)
	return &Digest{
		Tournament: tournament,
		Summary:    reconcile.Summarize(reconcile.Filter(t.Results, l.Golfers())).String(),
		Standings:  standings,
		Gaps:       scoring.GapToLeader(standings),
	}, nil
}

// week returns the team's earnings in the digest's tournament
func (d *Digest) week(s scoring.TeamStanding) float64 {
	return s.ByTournament[d.Tournament].Total
}

// FormatDigest formats the digest as a Telegram HTML message
func FormatDigest(d *Digest) string {
	if len(d.Standings) == 0 {
		return "No teams in the league yet."
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("⛳ <b>Standings after %s</b>\n", html.EscapeString(d.Tournament)))
	if d.Summary != "" {
		msg.WriteString(fmt.Sprintf("<i>%s</i>\n", html.EscapeString(d.Summary)))
	}
	msg.WriteString("\n")

	for _, s := range d.Standings {
		msg.WriteString(fmt.Sprintf("%d. <b>%s</b> %s", s.Rank, html.EscapeString(s.Team), league.FormatMoney(s.Total)))
		if week := d.week(s); week > 0 {
			msg.WriteString(fmt.Sprintf(" (+%s)", league.FormatMoney(week)))
		}
		if gap := d.Gaps[s.Team]; gap > 0 {
			msg.WriteString(fmt.Sprintf(" • %s back", league.FormatMoney(gap)))
		}
		msg.WriteString("\n")
	}
	return msg.String()
}

// FormatTweet formats the digest as plain text of at most 280 characters.
// Teams that do not fit are left off the bottom of the table.
func FormatTweet(d *Digest) string {
	header := fmt.Sprintf("⛳ Standings after %s\n\n", d.Tournament)
	footer := "\n#FantasyGolf"

	tweet := header
	for _, s := range d.Standings {
		line := fmt.Sprintf("%d. %s %s", s.Rank, s.Team, league.FormatMoney(s.Total))
		if week := d.week(s); week > 0 {
			line += fmt.Sprintf(" (+%s)", league.FormatMoney(week))
		}
		line += "\n"
		if utf8.RuneCountInString(tweet+line+footer) > tweetLimit {
			break
		}
		tweet += line
	}
	tweet += footer

	if utf8.RuneCountInString(tweet) > tweetLimit {
		runes := []rune(tweet)
		tweet = string(runes[:tweetLimit-3]) + "..."
	}
	return tweet
}
