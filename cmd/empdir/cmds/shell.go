package cmds

import (
	"context"
	"empdir/internal/directory"
	"empdir/internal/types"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  list                 show the table for the current search
  search [TERM]        filter by name, email or id; no term shows everyone
  where EXPR           show rows matching a JMESPath expression
  refresh              reload the list from the backend
  show ID              show one employee
  add                  add an employee
  edit ID              edit an employee
  delete ID            delete an employee
  theme [light|dark]   switch (and remember) the color theme
  notifications [N]    show the last N notifications (redis notify backend)
  help                 this text
  quit                 leave`

func newShellCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session keeping the list and search term between commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), app())
		},
	}
}

// runShell loads the list once, then executes one command per input line until
// quit or end of input. Failures are reported as toasts and do not end the session.
func runShell(ctx context.Context, a *App) error {
	_ = a.Ctrl.FetchAll(ctx)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(a.Out, "empdir> ")
		line, err := a.Prompt.ReadLine()
		if err != nil {
			fmt.Fprintln(a.Out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		switch strings.ToLower(verb) {
		case "":
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintln(a.Out, shellHelp)
		default:
			if err := a.exec(ctx, strings.ToLower(verb), rest); err != nil {
				log.WithError(err).WithField("command", verb).Debug("shell command failed")
			}
		}
	}
}

func (a *App) exec(ctx context.Context, verb, arg string) error {
	switch verb {
	case "list", "ls":
		a.Renderer.Render(a.Ctrl.Store.Snapshot())
		return nil
	case "search", "s":
		a.Ctrl.Search(arg)
		return nil
	case "refresh", "reload":
		return a.Ctrl.FetchAll(ctx)
	case "where":
		if arg == "" {
			return a.Fail(ctx, errors.New("usage: where EXPR"))
		}
		view, stats := a.Ctrl.Store.Snapshot()
		selected, err := directory.Select(view, arg)
		if err != nil {
			return a.Fail(ctx, err)
		}
		a.Renderer.Render(selected, stats)
		return nil
	case "show", "get":
		id, err := parseID(arg)
		if err != nil {
			return a.Fail(ctx, err)
		}
		e, err := a.Ctrl.FetchOne(ctx, id)
		if err != nil {
			return err
		}
		a.Renderer.Card(e)
		return nil
	case "add":
		d, err := a.form(types.Draft{})
		if err != nil {
			return a.Fail(ctx, err)
		}
		_, err = a.Ctrl.Create(ctx, d)
		return err
	case "edit", "update":
		id, err := parseID(arg)
		if err != nil {
			return a.Fail(ctx, err)
		}
		current, err := a.Ctrl.FetchOne(ctx, id)
		if err != nil {
			return err
		}
		d, err := a.form(types.DraftOf(current))
		if err != nil {
			return a.Fail(ctx, err)
		}
		_, err = a.Ctrl.Update(ctx, id, d)
		return err
	case "delete", "rm":
		id, err := parseID(arg)
		if err != nil {
			return a.Fail(ctx, err)
		}
		err = a.Ctrl.Delete(ctx, id)
		if errors.Is(err, types.ErrCancelled) {
			fmt.Fprintln(a.Out, "Cancelled.")
			return nil
		}
		return err
	case "theme":
		name := arg
		if name == "" {
			name = types.ThemeDark
			if a.Cfg.Theme == types.ThemeDark {
				name = types.ThemeLight
			}
		}
		if name != types.ThemeLight && name != types.ThemeDark {
			return a.Fail(ctx, fmt.Errorf("unknown theme %q", name))
		}
		if err := a.SetTheme(name); err != nil {
			return a.Fail(ctx, err)
		}
		fmt.Fprintf(a.Out, "Theme: %s\n", name)
		return nil
	case "notifications", "history":
		limit := defaultHistoryLimit
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return a.Fail(ctx, fmt.Errorf("invalid count %q", arg))
			}
			limit = n
		}
		return a.showRecent(ctx, limit)
	default:
		return a.Fail(ctx, fmt.Errorf("unknown command %q, try help", verb))
	}
}

// form asks for every field with d's values as defaults.
func (a *App) form(d types.Draft) (types.Draft, error) {
	var err error
	if d.FirstName, err = a.Prompt.Ask("First Name", d.FirstName); err != nil {
		return types.Draft{}, err
	}
	if d.LastName, err = a.Prompt.Ask("Last Name", d.LastName); err != nil {
		return types.Draft{}, err
	}
	if d.Email, err = a.Prompt.Ask("Email", d.Email); err != nil {
		return types.Draft{}, err
	}
	return d, nil
}
