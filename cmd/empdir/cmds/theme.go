package cmds

import (
	"empdir/internal/config"
	"empdir/internal/types"
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or set the remembered color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{types.ThemeLight, types.ThemeDark, "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			prefs, err := config.LoadPrefs(a.PrefsPath)
			if err != nil {
				return a.Fail(cmd.Context(), err)
			}
			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", prefs.Theme)
				return nil
			}
			switch args[0] {
			case "toggle":
				prefs = prefs.Toggled()
			case types.ThemeLight, types.ThemeDark:
				prefs.Theme = args[0]
			default:
				return a.Fail(cmd.Context(), fmt.Errorf("unknown theme %q", args[0]))
			}
			if err := a.SetTheme(prefs.Theme); err != nil {
				return a.Fail(cmd.Context(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", prefs.Theme)
			return nil
		},
	}
}
