package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/predtrack/app"
	"github.com/kilianp07/predtrack/core/preferences"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Read or change the display theme",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			th, err := svc.Prefs.Theme(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), th)
			return err
		})
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set light|dark",
	Short:     "Store the theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(preferences.ThemeLight), string(preferences.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		th, err := preferences.ParseTheme(args[0])
		if err != nil {
			return err
		}
		return withService(func(svc *app.Service) error {
			if err := svc.Prefs.SetTheme(cmd.Context(), th); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), th)
			return err
		})
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *app.Service) error {
			th, err := svc.Prefs.Toggle(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), th)
			return err
		})
	},
}

func init() {
	themeCmd.AddCommand(themeGetCmd, themeSetCmd, themeToggleCmd)
	rootCmd.AddCommand(themeCmd)
}
