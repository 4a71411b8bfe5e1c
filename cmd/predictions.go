package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/predtrack/app"
	"github.com/kilianp07/predtrack/core/model"
	"github.com/kilianp07/predtrack/core/prediction"
	"github.com/kilianp07/predtrack/pkg/export"
)

var predOpts struct {
	search   string
	status   string
	category string
	sort     string
	format   string
}

var predictionsCmd = &cobra.Command{
	Use:     "predictions",
	Aliases: []string{"pred"},
	Short:   "Browse predictions",
}

var predictionsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List predictions matching the filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := export.ParseFormat(predOpts.format)
		if err != nil {
			return err
		}
		return withService(func(svc *app.Service) error {
			res := svc.Tracker.List(prediction.Query{
				Filter: prediction.Filter{
					Search:   predOpts.search,
					Status:   predOpts.status,
					Category: predOpts.category,
				},
				SortBy: prediction.ParseSortKey(predOpts.sort),
			})
			return export.Write(cmd.OutOrStdout(), f, res)
		})
	},
}

var predictionsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one prediction in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			p, err := svc.Tracker.Prediction(args[0])
			if err != nil {
				return err
			}
			return printPrediction(cmd.OutOrStdout(), p)
		})
	},
}

var predictionsFacetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "List the category and status filter options",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			f := svc.Tracker.Facets()
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Categories:")
			for _, c := range f.Categories {
				fmt.Fprintf(w, "  %s\n", c)
			}
			fmt.Fprintln(w, "Statuses:")
			for _, s := range f.Statuses {
				fmt.Fprintf(w, "  %s\n", s)
			}
			return nil
		})
	},
}

func init() {
	fl := predictionsLsCmd.Flags()
	fl.StringVarP(&predOpts.search, "search", "q", "", "case-insensitive text search")
	fl.StringVar(&predOpts.status, "status", "", "exact status, or Pending for unset")
	fl.StringVar(&predOpts.category, "category", "", "exact category")
	fl.StringVar(&predOpts.sort, "sort", string(prediction.SortByTimeline), "predictedDate, accuracyScore or lastEvaluated")
	fl.StringVarP(&predOpts.format, "format", "o", "table", "table, json or csv")

	predictionsCmd.AddCommand(predictionsLsCmd, predictionsShowCmd, predictionsFacetsCmd)
	rootCmd.AddCommand(predictionsCmd)
}

func printPrediction(w io.Writer, p model.Prediction) error {
	score := "N/A"
	if s, ok := model.EffectiveScore(p); ok {
		score = fmt.Sprintf("%g%%", s)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", p.ID, p.Text)
	fmt.Fprintf(&b, "Segment:         %s\n", p.TimelineSegment)
	fmt.Fprintf(&b, "Predicted:       %s\n", p.PredictedDate)
	fmt.Fprintf(&b, "Status:          %s\n", model.EffectiveStatus(p))
	fmt.Fprintf(&b, "Accuracy:        %s\n", score)
	if p.QualitativeAccuracy != "" {
		fmt.Fprintf(&b, "Assessment:      %s\n", p.QualitativeAccuracy)
	}
	fmt.Fprintf(&b, "Last evaluated:  %s\n", model.FormatDate(p.LastEvaluated))
	if len(p.Categories) > 0 {
		fmt.Fprintf(&b, "Categories:      %s\n", strings.Join(p.Categories, ", "))
	}
	if p.OriginalScenario != "" {
		fmt.Fprintf(&b, "\nScenario:\n  %s\n", p.OriginalScenario)
	}
	if p.ActualOutcome != "" {
		fmt.Fprintf(&b, "\nOutcome:\n  %s\n", p.ActualOutcome)
	}
	if len(p.SupportingEvidence) > 0 {
		b.WriteString("\nEvidence:\n")
		for _, e := range p.SupportingEvidence {
			fmt.Fprintf(&b, "  - %s", e.Text)
			if e.URL != "" {
				fmt.Fprintf(&b, " <%s>", e.URL)
			}
			b.WriteString("\n")
		}
	}
	if len(p.AnalystCommentary) > 0 {
		b.WriteString("\nCommentary:\n")
		for _, c := range p.AnalystCommentary {
			fmt.Fprintf(&b, "  %s: %s\n", model.FormatDate(c.Date), c.Comment)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
