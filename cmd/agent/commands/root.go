// Package commands implements the offline-capable CLI for the student
// progress service. Writes attempted while the service is unreachable
// are queued locally and replayed on the next offline-to-online
// transition.
package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dentaltrack/student-progress/internal/client/api"
	"github.com/dentaltrack/student-progress/internal/client/connectivity"
	"github.com/dentaltrack/student-progress/internal/client/pending"
	clientsync "github.com/dentaltrack/student-progress/internal/client/sync"
	"github.com/dentaltrack/student-progress/internal/config"
	"github.com/dentaltrack/student-progress/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// agent holds the wired client-side components shared by all commands.
type agent struct {
	cfg        *config.Config
	client     *api.Client
	queue      *pending.Store
	observer   *connectivity.Observer
	reconciler *clientsync.Reconciler
	logger     zerolog.Logger
}

var a *agent

var rootCmd = &cobra.Command{
	Use:   "agent",
	Short: "Offline-capable client for the student progress service",
	Long: `The agent records clinical cases and research entries against the
student progress service. When the service is unreachable, writes are
saved to a local queue and replayed automatically once connectivity
returns.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func setup() error {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	stateDir := cfg.Client.StateDir
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	queue, err := pending.Open(filepath.Join(stateDir, "queue.json"))
	if err != nil {
		return fmt.Errorf("failed to open pending queue: %w", err)
	}

	// The agent starts offline; the first successful request reports
	// online and triggers the reconciler through the observer.
	observer := connectivity.New(false)
	client := api.New(cfg.Client.ServerURL, cfg.Client.Timeout, cfg.Client.RetryCount, cfg.Client.RetryDelay, observer, log)
	reconciler := clientsync.New(queue, client, cfg.Sync.DropFailed, log)

	a = &agent{
		cfg:        cfg,
		client:     client,
		queue:      queue,
		observer:   observer,
		reconciler: reconciler,
		logger:     log,
	}

	if token, err := os.ReadFile(a.tokenPath()); err == nil {
		client.SetToken(string(token))
	}

	reconciler.OnComplete(func(s clientsync.Summary) {
		fmt.Printf("Offline data synced: %d case(s), %d research entr(ies)", s.CasesSynced, s.ResearchSynced)
		if failed := s.CasesFailed + s.ResearchFailed; failed > 0 {
			fmt.Printf(" (%d failed)", failed)
		}
		fmt.Println()
	})

	observer.OnOnline(func() {
		if _, err := reconciler.SyncOffline(context.Background()); err != nil && err != clientsync.ErrSyncInFlight {
			log.Warn().Err(err).Msg("Automatic sync failed")
		}
	})

	return nil
}

func (a *agent) tokenPath() string {
	return filepath.Join(a.cfg.Client.StateDir, "token")
}
