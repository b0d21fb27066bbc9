package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/golf-league/internal/config"
	"github.com/pfrederiksen/golf-league/internal/export"
	"github.com/pfrederiksen/golf-league/internal/notifier"
	"github.com/pfrederiksen/golf-league/internal/storage"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var xlsxFile string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole league as JSON to stdout, or as a spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			if xlsxFile == "" {
				return storage.Export(a.out, s.League)
			}

			f, err := os.Create(xlsxFile)
			if err != nil {
				return fmt.Errorf("creating workbook: %w", err)
			}
			if err := export.Workbook(f, s.League); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing workbook: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote workbook to %s\n", xlsxFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsxFile, "xlsx", "", "Write an Excel workbook to this file instead of JSON")
	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore FILE",
		Short: "Replace the stored league with an exported JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening export: %w", err)
			}
			defer f.Close()

			l, err := storage.Import(f)
			if err != nil {
				return err
			}
			s, err := a.session()
			if err != nil {
				return err
			}
			if err := s.Replace(l); err != nil {
				return err
			}
			msg := fmt.Sprintf("Restored %d teams and %d tournaments", len(l.Teams), len(l.Tournaments))
			return a.render(map[string]string{"result": msg}, func(w io.Writer) { fmt.Fprintln(w, msg) })
		},
	}
}

func newNotifyCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "notify TOURNAMENT",
		Short: "Post the standings digest after a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := buildNotifier(a.cfg, dryRun, a.out)
			if err != nil {
				return err
			}
			s, err := a.session()
			if err != nil {
				return err
			}
			return s.Notify(n, args[0])
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the digest without posting")
	return cmd
}

func newGistInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "gist-init [DESCRIPTION]",
		Short: "Create a private gist holding an empty league for gist storage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.GitHubToken == "" {
				return errors.New("GOLF_GITHUB_TOKEN is required to create a gist")
			}
			description := "Fantasy golf league"
			if len(args) == 1 {
				description = args[0]
			}

			create := a.createGist
			if create == nil {
				create = storage.CreateGist
			}
			id, err := create(a.cfg.GitHubToken, description)
			if err != nil {
				return err
			}
			return a.render(map[string]string{"gist_id": id}, func(w io.Writer) {
				fmt.Fprintf(w, "Created gist %s\n", id)
				fmt.Fprintf(w, "Set GOLF_STORAGE=gist and GOLF_GIST_ID=%s to use it\n", id)
			})
		},
	}
}

// buildNotifier returns every configured notifier, or a dry-run notifier writing to w
func buildNotifier(cfg *config.Config, dryRun bool, w io.Writer) (notifier.Notifier, error) {
	if dryRun {
		return notifier.NewDryRunNotifier(w), nil
	}

	var all notifier.Multi
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		tg, err := notifier.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			return nil, err
		}
		all = append(all, tg)
	}
	if cfg.Twitter.Complete() {
		tw, err := notifier.NewTwitterNotifier(cfg.Twitter)
		if err != nil {
			return nil, err
		}
		all = append(all, tw)
	}
	if len(all) == 0 {
		return nil, errors.New("no notifier configured: set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID or the TWITTER_* credentials, or use --dry-run")
	}
	return all, nil
}
