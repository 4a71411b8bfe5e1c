package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/kilianp07/predtrack/core/navigation"
)

var routeCmd = &cobra.Command{
	Use:   "route PAGE [ID]",
	Short: "Print the path of a page",
	Long: "Print the path of a page. PAGE is one of home, timeline, allPredictions,\n" +
		"predictionDetail, blog, blogPost or about; detail pages take an ID.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 2 {
			id = args[1]
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), navigation.Path(navigation.Page(args[0]), id))
		return err
	},
}

var routeResolveCmd = &cobra.Command{
	Use:   "resolve URL",
	Short: "Resolve a ?p= fallback URL to its target path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := url.Parse(args[0])
		if err != nil {
			return err
		}
		target, ok := navigation.ResolveRedirect(u)
		if !ok {
			target = u.Path
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), target)
		return err
	},
}

func init() {
	routeCmd.AddCommand(routeResolveCmd)
	rootCmd.AddCommand(routeCmd)
}
