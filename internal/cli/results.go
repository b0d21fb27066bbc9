package cli

import (
	"errors"
	"io"

	"github.com/pfrederiksen/golf-league/internal/reconcile"
	"github.com/spf13/cobra"
)

func newPayoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "payout URL",
		Short: "Load this week's purse breakdown for live projections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			state, err := s.LoadPayout(args[0])
			if err != nil {
				return err
			}
			return a.render(state, func(w io.Writer) { writePayout(w, state) })
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	var (
		name    string
		preview bool
	)
	cmd := &cobra.Command{
		Use:   "import URL",
		Short: "Import a final results article",
		Long: `Import a final results article as a tournament.
Rostered golfers the article does not list are saved as needing review;
resolve them with the field-status command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			if preview {
				p, err := s.PreviewResults(args[0])
				if err != nil {
					return err
				}
				if name != "" {
					p.TournamentName = name
				}
				return a.render(p, func(w io.Writer) { writePreview(w, p, false) })
			}

			p, err := s.ImportResults(args[0], name)
			if err != nil {
				return err
			}
			return a.render(p, func(w io.Writer) { writePreview(w, p, true) })
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Tournament name (default: the article's title)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Show the reconciled results without saving")
	return cmd
}

func newLiveCmd(a *app) *cobra.Command {
	var save string
	cmd := &cobra.Command{
		Use:   "live",
		Short: "Project the live leaderboard onto the league",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("save") {
				p, err := s.SaveLive(save)
				if err != nil {
					return err
				}
				return a.render(p, func(w io.Writer) { writePreview(w, p, true) })
			}

			snap, err := s.RefreshLive()
			if err != nil {
				return err
			}
			return a.render(snap, func(w io.Writer) { writeLive(w, snap) })
		},
	}
	cmd.Flags().StringVar(&save, "save", "", "Save the leaderboard as final results under this name (empty: the feed's name)")
	return cmd
}

func newFieldStatusCmd(a *app) *cobra.Command {
	var live bool
	cmd := &cobra.Command{
		Use:   "field-status TOURNAMENT [URL]",
		Short: "Resolve golfers needing review from a field listing",
		Long: `Resolve a tournament's needs-review golfers from a leaderboard page or,
with --live, from the live feed. Golfers listed as cut or withdrawn take that
status, golfers still listed as active are treated as cut, and golfers missing
from the listing were not in the field.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if live == (len(args) == 2) {
				return errors.New("give either a leaderboard URL or --live")
			}
			s, err := a.session()
			if err != nil {
				return err
			}

			tournament := args[0]
			var changes []reconcile.Change
			if live {
				changes, err = s.ResolveFromLive(tournament)
			} else {
				changes, err = s.ResolveFieldStatus(tournament, args[1])
			}
			if err != nil {
				return err
			}
			return a.render(changes, func(w io.Writer) { writeChanges(w, tournament, changes) })
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "Use the live leaderboard as the field listing")
	return cmd
}
