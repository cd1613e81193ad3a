package sync

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quizshare/internal/app/client"
)

var fetchOnly bool

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize with the shared server",
	Long: `Push every local quiz to the server and merge the returned public
set back into the local collection.

Public quizzes are shared, private ones are retracted, and duplicates
collapse to a single copy on both sides. With --fetch nothing is pushed;
the server's public set is only merged in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := client.FromContext(cmd.Context())
		if app == nil {
			return fmt.Errorf("application is not initialized")
		}

		fmt.Println("Checking server connection...")
		if err := app.CheckConnection(); err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}

		start := time.Now()

		var result *client.SyncResult
		var err error
		if fetchOnly {
			result, err = app.FetchPublic(cmd.Context())
		} else {
			result, err = app.Sync(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		color.Green("✓ Sync completed in %v", time.Since(start).Round(time.Millisecond))
		if !fetchOnly {
			fmt.Printf("Sent: %d quizzes\n", result.Sent)
		}
		fmt.Printf("Received: %d public quizzes\n", result.Received)
		fmt.Printf("Local collection: %d quizzes\n", result.Merged)
		if result.Removed > 0 {
			fmt.Printf("Duplicates removed: %d\n", result.Removed)
		}
		if result.Rejected > 0 {
			color.Yellow("Rejected as malformed: %d", result.Rejected)
		}

		return nil
	},
}

func init() {
	SyncCmd.Flags().BoolVar(&fetchOnly, "fetch", false, "only fetch the public set, push nothing")
}
