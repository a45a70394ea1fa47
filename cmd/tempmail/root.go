package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nhle/tempmail/internal/app"
	"github.com/nhle/tempmail/internal/credential"
	"github.com/nhle/tempmail/internal/export"
	"github.com/nhle/tempmail/internal/inbox"
	"github.com/nhle/tempmail/internal/logging"
	"github.com/nhle/tempmail/internal/model"
	"github.com/nhle/tempmail/internal/source/mailtm"
	"github.com/nhle/tempmail/internal/store"
	appsync "github.com/nhle/tempmail/internal/sync"
)

const (
	version = "1.0.0"
	author  = "nhle"
)

func newRootCmd() *cobra.Command {
	var showInfo bool

	cmd := &cobra.Command{
		Use:   "tempmail",
		Short: "Disposable Mail.tm inbox in the terminal",
		Long: `tempmail creates a throwaway Mail.tm address and shows its inbox in a
full-screen terminal UI. New mail appears automatically; messages can be
read, deleted and saved to disk.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showInfo {
				return printInfo(cmd.OutOrStdout())
			}
			return runTUI(cmd.Context(), cmd.OutOrStdout())
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.Flags().BoolVarP(&showInfo, "info", "i", false, "Show version and author information")

	return cmd
}

func printInfo(w io.Writer) error {
	_, err := fmt.Fprintf(w, "tempmail %s\nAuthor: %s\n", version, author)
	return err
}

// runTUI creates the mailbox and runs the poller and the UI until the user
// quits or ctx is canceled.
func runTUI(ctx context.Context, out io.Writer) error {
	cfgPath := model.DefaultConfigPath()
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(out, "Failed to load config: %v\n", err)
		return err
	}

	logger, logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintf(out, "Failed to open log: %v\n", err)
		return err
	}
	defer logCloser.Close()

	fmt.Fprintln(out, "Creating temporary mailbox (Mail.tm)...")
	client := mailtm.NewClient(mailtm.Options{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.Timeout(),
		RequestsPerSec: cfg.API.RequestsPerSec,
		Logger:         logger,
	})
	session, err := client.CreateAccount(ctx)
	if err != nil {
		logger.WithError(err).Error("mailbox creation failed")
		fmt.Fprintf(out, "Failed to create mailbox: %v\n", err)
		return err
	}
	fmt.Fprintf(out, "Your temporary mailbox: %s\n", session.Address)

	if cfg.Account.SaveCredentials {
		stashCredentials(filepath.Dir(cfgPath), session, logger)
	}

	ledger, err := store.NewSQLiteStore(store.MemoryDSN)
	if err != nil {
		logger.WithError(err).Warn("session ledger unavailable; new-mail tracking disabled")
	}

	state := inbox.New()
	opts := appsync.Options{Interval: cfg.PollInterval(), Logger: logger}
	var uiLedger store.Ledger
	if ledger != nil {
		defer ledger.Close()
		opts.Ledger = ledger
		uiLedger = ledger
	}
	poller := appsync.New(client, state, opts)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	root := app.New(app.Config{
		Context: runCtx,
		Address: session.Address,
		Mailbox: client,
		Inbox:   state,
		Poller:  poller,
		Saver:   export.New(cfg.Export.Dir),
		Ledger:  uiLedger,
		Logger:  logger,
	})

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return poller.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		defer poller.Stop()
		_, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(gctx)).Run()
		return err
	})

	// A canceled parent context means the process was signaled.
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.WithError(err).Error("terminal UI failed")
		return err
	}
	logger.Info("session ended")
	return ctx.Err()
}

// stashCredentials keeps the generated login in the keyring. Failures are
// logged; the session works without it.
func stashCredentials(configDir string, session *mailtm.Session, logger logrus.FieldLogger) {
	stash, err := credential.Open(configDir)
	if err != nil {
		logger.WithError(err).Warn("keyring unavailable")
		return
	}
	if err := stash.Save(credential.Account{Address: session.Address, Password: session.Password}); err != nil {
		logger.WithError(err).Warn("saving credentials failed")
	}
}
