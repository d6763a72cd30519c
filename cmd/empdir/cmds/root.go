// Package cmds holds the empdir command line.
package cmds

import (
	"empdir/internal/types"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Every command gets its App from the
// persistent pre-run, so flags, config files and environment are resolved once.
func NewRootCmd() *cobra.Command {
	var (
		o   options
		app *App
	)

	root := &cobra.Command{
		Use:   "empdir",
		Short: "Employee directory client",
		Long: `empdir lists, searches, creates, edits and deletes employee records held by
a REST backend (GET/POST <api-url>, GET/PUT/DELETE <api-url>/<id>).

Every change is followed by a full reload of the list, so what is shown is
always what the backend holds. Run "empdir shell" for an interactive session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = newApp(cmd.Context(), o, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return reportedError{err}
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "YAML config file (default <user config dir>/empdir/config.yml)")
	pf.StringVar(&o.apiURL, "api-url", "", "employee collection endpoint (default "+types.DefaultAPIURL+")")
	pf.StringVar(&o.timeout, "timeout", "", "per-request timeout, e.g. 10s (default none)")
	pf.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&o.theme, "theme", "", "color theme for this run: light or dark")
	pf.StringVar(&o.notify, "notify", "", "extra notification sink: log, sns or redis")
	pf.StringVar(&o.prefsPath, "prefs", "", "preferences file (default <user config dir>/empdir/prefs.yml)")
	pf.BoolVarP(&o.assumeYes, "yes", "y", false, "answer yes to confirmations")
	pf.BoolVarP(&o.quiet, "quiet", "q", false, "log notifications instead of printing them")

	appFn := func() *App { return app }
	root.AddCommand(
		newListCmd(appFn),
		newGetCmd(appFn),
		newAddCmd(appFn),
		newUpdateCmd(appFn),
		newDeleteCmd(appFn),
		newShellCmd(appFn),
		newThemeCmd(appFn),
		newNotificationsCmd(appFn),
	)
	return root
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid employee id %q", s)
	}
	return id, nil
}

// quietCancel turns a declined confirmation into a clean exit.
func quietCancel(cmd *cobra.Command, err error) error {
	if errors.Is(err, types.ErrCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	return err
}
