// cmd/client/cmd/quiz/list.go
package quiz

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quizshare/internal/app/client"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quizzes",
	Long:  `List all quizzes in the local collection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := client.FromContext(cmd.Context())
		if app == nil {
			return fmt.Errorf("application is not initialized")
		}

		quizzes, err := app.ListQuizzes()
		if err != nil {
			return fmt.Errorf("failed to list quizzes: %w", err)
		}

		if len(quizzes) == 0 {
			fmt.Println("No quizzes found")
			return nil
		}

		if listFormat == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(quizzes)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tQUESTIONS\tVISIBILITY\tVERSION\tATTEMPTS\tLAST TAKEN")
		for _, q := range quizzes {
			visibility := "private"
			if q.Public {
				visibility = color.GreenString("public")
			}
			lastTaken := "-"
			if q.LastTaken != nil {
				lastTaken = q.LastTaken.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\t%s\n",
				q.LocalID, q.Title, len(q.Questions), visibility,
				q.Version, len(q.History), lastTaken)
		}
		return w.Flush()
	},
}

func init() {
	ListCmd.Flags().StringVar(&listFormat, "format", "table", "output format: table or json")
}
