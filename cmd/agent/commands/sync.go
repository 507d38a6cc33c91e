package commands

import (
	"fmt"

	clientsync "github.com/dentaltrack/student-progress/internal/client/sync"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay queued offline writes",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

// runSync probes the service and drains the queue. The probe already
// triggers an automatic pass through the observer; the explicit pass
// below covers the case where we were online all along and no
// transition fired.
func runSync(cmd *cobra.Command, args []string) error {
	if err := a.client.Ping(cmd.Context()); err != nil {
		return fmt.Errorf("service unreachable, staying offline: %w", err)
	}

	summary, err := a.reconciler.SyncOffline(cmd.Context())
	if err != nil {
		if err == clientsync.ErrSyncInFlight {
			return nil
		}
		return err
	}
	if summary.Attempted() == 0 {
		fmt.Println("Nothing to sync.")
	}
	return nil
}
