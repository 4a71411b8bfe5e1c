package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/kilianp07/predtrack/app"
	"github.com/kilianp07/predtrack/core/blog"
	"github.com/kilianp07/predtrack/core/model"
	"github.com/kilianp07/predtrack/core/preferences"
)

var blogTag string

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "Read the tracker blog",
}

var blogLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List posts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			for _, p := range svc.Tracker.Posts(blogTag) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-18s  %s\n", p.ID, model.FormatDate(p.Date), p.Title)
			}
			return nil
		})
	},
}

var blogShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Render a post in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			post, err := svc.Tracker.Post(args[0])
			if err != nil {
				return err
			}
			theme, err := svc.Prefs.Theme(cmd.Context())
			if err != nil {
				theme = preferences.ThemeLight
			}
			out, err := renderPost(post, theme)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		})
	},
}

var blogNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Print a draft post with the next free id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			draft := blog.NewDraft(svc.Tracker.AllPosts(), time.Now())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(draft)
		})
	},
}

func init() {
	blogLsCmd.Flags().StringVar(&blogTag, "tag", "", "only posts carrying this tag")
	blogCmd.AddCommand(blogLsCmd, blogShowCmd, blogNewCmd)
	rootCmd.AddCommand(blogCmd)
}

// renderPost renders the post header and Markdown body with the glamour
// style matching theme.
func renderPost(p model.BlogPost, theme preferences.Theme) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(string(theme)),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	md := fmt.Sprintf("*%s, by %s*\n\n%s\n", model.FormatDate(p.Date), p.Author, p.Content)
	return r.Render(md)
}
