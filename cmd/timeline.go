package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kilianp07/predtrack/app"
	"github.com/kilianp07/predtrack/core/model"
)

var segmentStyle = lipgloss.NewStyle().Bold(true).Underline(true)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show predictions grouped by timeline segment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			w := cmd.OutOrStdout()
			for _, g := range svc.Tracker.Timeline() {
				acc := "not yet scored"
				if g.Accuracy != nil {
					acc = fmt.Sprintf("%d%% accuracy", *g.Accuracy)
				}
				fmt.Fprintf(w, "%s  (%s)\n", segmentStyle.Render(g.Segment), acc)
				for _, p := range g.Predictions {
					fmt.Fprintf(w, "  %s  [%s]  %s\n", p.ID, model.EffectiveStatus(p), p.Text)
				}
				fmt.Fprintln(w)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}
