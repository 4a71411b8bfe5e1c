package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/predtrack/app"
	"github.com/kilianp07/predtrack/core/model"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the overall accuracy figures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			o := svc.Tracker.Overview()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Predictions:        %d\n", o.Total)
			fmt.Fprintf(w, "Evaluated:          %d (%d%%)\n", o.Evaluated, o.EvaluatedPercent)
			fmt.Fprintf(w, "Overall accuracy:   %d%%\n", o.OverallAccuracy)
			if len(o.RecentlyEvaluated) > 0 {
				fmt.Fprintln(w, "\nRecently evaluated:")
				for _, p := range o.RecentlyEvaluated {
					fmt.Fprintf(w, "  %s  %s  %s\n", model.FormatDate(p.LastEvaluated), p.ID, model.EffectiveStatus(p))
				}
			}
			if len(o.LatestPosts) > 0 {
				fmt.Fprintln(w, "\nLatest posts:")
				for _, b := range o.LatestPosts {
					fmt.Fprintf(w, "  %s  %s\n", b.ID, b.Title)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
