package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pfrederiksen/golf-league/internal/chart"
	"github.com/pfrederiksen/golf-league/internal/league"
	"github.com/pfrederiksen/golf-league/internal/reconcile"
	"github.com/pfrederiksen/golf-league/internal/scoring"
	"github.com/pfrederiksen/golf-league/internal/scraper"
	"github.com/pfrederiksen/golf-league/internal/session"
	"github.com/spf13/cobra"
)

func newStandingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show season standings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			standings := scoring.Standings(s.League)
			v := standingsView{
				Tournaments: s.League.OrderedTournaments(),
				Standings:   standings,
				Gaps:        scoring.GapToLeader(standings),
			}
			return a.render(v, func(w io.Writer) { writeStandings(w, v) })
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	var chartFile string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show each team's rank after every tournament",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			history := scoring.RankHistory(s.League)
			teams := s.League.TeamNames()
			tournaments := s.League.OrderedTournaments()

			if chartFile != "" {
				png, err := chart.RankHistory(history, teams, tournaments)
				if err != nil {
					return err
				}
				if err := os.WriteFile(chartFile, png, 0644); err != nil {
					return fmt.Errorf("writing chart: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Wrote rank chart to %s\n", chartFile)
			}
			return a.render(history, func(w io.Writer) { writeHistory(w, teams, tournaments, history) })
		},
	}
	cmd.Flags().StringVar(&chartFile, "chart", "", "Also write a PNG rank chart to this file")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var (
		teams  []string
		sortBy string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show season statistics for rostered golfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			stats := scoring.FilterStats(scoring.PlayerStats(s.League), teams)
			if err := scoring.SortStats(stats, sortBy); err != nil {
				return err
			}
			return a.render(stats, func(w io.Writer) { writeStats(w, stats) })
		},
	}
	cmd.Flags().StringSliceVar(&teams, "team", nil, "Only show golfers on these teams")
	cmd.Flags().StringVar(&sortBy, "sort", scoring.SortCounted, "Sort by: counted, prize, cashes, cuts or name")
	return cmd
}

func newTournamentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Manage tournaments and their results",
	}
	cmd.AddCommand(
		a.mutation("create NAME", "Add an empty tournament at the end of the season", cobra.ExactArgs(1),
			func(s *session.Session, args []string) (string, error) {
				return fmt.Sprintf("Created %s", args[0]), s.CreateTournament(args[0])
			}),
		a.mutation("delete NAME", "Delete a tournament and its results", cobra.ExactArgs(1),
			func(s *session.Session, args []string) (string, error) {
				return fmt.Sprintf("Deleted %s", args[0]), s.DeleteTournament(args[0])
			}),
		a.mutation("classify TOURNAMENT GOLFER STATUS [PRIZE]", "Set one golfer's result by hand", cobra.RangeArgs(3, 4),
			func(s *session.Session, args []string) (string, error) {
				status, err := league.ParseStatus(args[2])
				if err != nil {
					return "", err
				}
				var prize float64
				if len(args) == 4 {
					var ok bool
					if prize, ok = scraper.ParseMoney(args[3]); !ok {
						return "", fmt.Errorf("invalid prize: %s", args[3])
					}
				}
				msg := fmt.Sprintf("%s in %s: %s %s", args[1], args[0], status.Label(), league.FormatMoney(prize))
				return msg, s.SetResult(args[0], args[1], status, prize)
			}),
		a.mutation("recalc TOURNAMENT", "Mark current roster golfers missing from a tournament as needing review", cobra.ExactArgs(1),
			func(s *session.Session, args []string) (string, error) {
				added, err := s.RecalculateRoster(args[0])
				if err != nil {
					return "", err
				}
				if len(added) == 0 {
					return fmt.Sprintf("Every rostered golfer already has a result in %s", args[0]), nil
				}
				return fmt.Sprintf("Marked for review in %s: %s", args[0], strings.Join(added, ", ")), nil
			}),
		a.mutation("move TOURNAMENT POSITION", "Move a tournament to a position in the season (1 is first)", cobra.ExactArgs(2),
			func(s *session.Session, args []string) (string, error) {
				pos, err := strconv.Atoi(args[1])
				if err != nil {
					return "", fmt.Errorf("invalid position: %s", args[1])
				}
				return fmt.Sprintf("Moved %s to position %d", args[0], pos), s.MoveTournament(args[0], pos-1)
			}),
		a.mutation("order TOURNAMENT...", "Set the season order; every tournament must be named once", cobra.MinimumNArgs(1),
			func(s *session.Session, args []string) (string, error) {
				return "Season order: " + strings.Join(args, ", "), s.SetOrder(args)
			}),
		newTournamentShowCmd(a),
		newTournamentListCmd(a),
	)
	return cmd
}

func newTournamentShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a tournament's results by team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			t, err := s.League.Tournament(args[0])
			if err != nil {
				return err
			}
			v := tournamentView{
				Name:        args[0],
				Results:     t.Results,
				NeedsReview: t.NeedsReview(),
				Summary:     reconcile.Summarize(reconcile.Filter(t.Results, s.League.Golfers())),
			}
			return a.render(v, func(w io.Writer) { writeTournament(w, s.League, t, v) })
		},
	}
}

func newTournamentListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tournaments in season order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			names := s.League.OrderedTournaments()
			return a.render(names, func(w io.Writer) {
				if len(names) == 0 {
					fmt.Fprintln(w, "No tournaments yet.")
				}
				for i, name := range names {
					pending := ""
					if n := len(s.League.Tournaments[name].NeedsReview()); n > 0 {
						pending = fmt.Sprintf(" (%d need review)", n)
					}
					fmt.Fprintf(w, "%2d. %s%s\n", i+1, name, pending)
				}
			})
		},
	}
}

func newTeamCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams and rosters",
	}
	cmd.AddCommand(
		a.mutation("add NAME [GOLFER...]", "Create a team", cobra.MinimumNArgs(1),
			func(s *session.Session, args []string) (string, error) {
				return fmt.Sprintf("Added %s", args[0]), s.AddTeam(args[0], args[1:])
			}),
		a.mutation("set NAME GOLFER...", "Replace a team's roster", cobra.MinimumNArgs(2),
			func(s *session.Session, args []string) (string, error) {
				return fmt.Sprintf("Set roster of %s", args[0]), s.SetRoster(args[0], args[1:])
			}),
		a.mutation("delete NAME", "Delete a team", cobra.ExactArgs(1),
			func(s *session.Session, args []string) (string, error) {
				return fmt.Sprintf("Deleted %s", args[0]), s.DeleteTeam(args[0])
			}),
		&cobra.Command{
			Use:   "list",
			Short: "List teams and rosters",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := a.session()
				if err != nil {
					return err
				}
				return a.render(s.League.Teams, func(w io.Writer) { writeTeams(w, s.League) })
			},
		},
	)
	return cmd
}

// mutation builds a subcommand that changes the league and prints one confirmation line
func (a *app) mutation(use, short string, args cobra.PositionalArgs, fn func(s *session.Session, args []string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			msg, err := fn(s, args)
			if err != nil {
				return err
			}
			return a.render(map[string]string{"result": msg}, func(w io.Writer) { fmt.Fprintln(w, msg) })
		},
	}
}
