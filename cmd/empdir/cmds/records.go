package cmds

import (
	"empdir/internal/directory"
	"empdir/internal/types"

	"github.com/spf13/cobra"
)

func newListCmd(app func() *App) *cobra.Command {
	var search, where string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the employee table",
		Long: `Loads every employee and prints the table with the stats line.

--search keeps rows whose first name, last name or email contains the term
(case-insensitive), or whose id contains it.
--where keeps rows for which a JMESPath expression over the JSON record is true,
e.g. --where "contains(email, '@corp.')" or --where "id > ` + "`10`" + `".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			a.Ctrl.Store.SetTerm(search)
			if where == "" {
				return a.Ctrl.FetchAll(cmd.Context())
			}
			// Render once, after the expression narrowed the view.
			renderer := a.Ctrl.Renderer
			a.Ctrl.Renderer = nil
			defer func() { a.Ctrl.Renderer = renderer }()
			err := a.Ctrl.FetchAll(cmd.Context())
			view, stats := a.Ctrl.Store.Snapshot()
			if err != nil {
				// the store was cleared; show the empty table
				a.Renderer.Render(view, stats)
				return err
			}
			selected, err := directory.Select(view, where)
			if err != nil {
				return a.Fail(cmd.Context(), err)
			}
			a.Renderer.Render(selected, stats)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "free-text filter")
	cmd.Flags().StringVarP(&where, "where", "w", "", "JMESPath filter expression")
	return cmd
}

func newGetCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseID(args[0])
			if err != nil {
				return a.Fail(cmd.Context(), err)
			}
			e, err := a.Ctrl.FetchOne(cmd.Context(), id)
			if err != nil {
				return err
			}
			a.Renderer.Card(e)
			return nil
		},
	}
}

type draftFlags struct {
	first, last, email string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.first, "first", "", "first name")
	cmd.Flags().StringVar(&f.last, "last", "", "last name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
}

type asker interface {
	Ask(label, def string) (string, error)
}

// fill completes d: values given as flags win; with ask the rest are asked for,
// with the current value as default, like an edit form.
func (f *draftFlags) fill(cmd *cobra.Command, p asker, d types.Draft, ask bool) (types.Draft, error) {
	fields := []struct {
		flag, label, given string
		dst                *string
	}{
		{"first", "First Name", f.first, &d.FirstName},
		{"last", "Last Name", f.last, &d.LastName},
		{"email", "Email", f.email, &d.Email},
	}
	for _, fl := range fields {
		if cmd.Flags().Changed(fl.flag) {
			*fl.dst = fl.given
			continue
		}
		if !ask {
			continue
		}
		v, err := p.Ask(fl.label, *fl.dst)
		if err != nil {
			return types.Draft{}, err
		}
		*fl.dst = v
	}
	return d, nil
}

func newAddCmd(app func() *App) *cobra.Command {
	var f draftFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Long:  "Adds an employee. Fields not given as flags are asked for.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			d, err := f.fill(cmd, a.Prompt, types.Draft{}, true)
			if err != nil {
				return a.Fail(cmd.Context(), err)
			}
			_, err = a.Ctrl.Create(cmd.Context(), d)
			return err
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(app func() *App) *cobra.Command {
	var f draftFlags
	var keep bool
	cmd := &cobra.Command{
		Use:     "update ID",
		Aliases: []string{"edit"},
		Short:   "Edit an employee",
		Long: `Loads the employee, then replaces it with the edited record.
Fields not given as flags are asked for, with the current value as default;
with --keep they are left unchanged without asking.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseID(args[0])
			if err != nil {
				return a.Fail(cmd.Context(), err)
			}
			current, err := a.Ctrl.FetchOne(cmd.Context(), id)
			if err != nil {
				return err
			}
			d, err := f.fill(cmd, a.Prompt, types.DraftOf(current), !keep)
			if err != nil {
				return a.Fail(cmd.Context(), err)
			}
			_, err = a.Ctrl.Update(cmd.Context(), id, d)
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&keep, "keep", false, "keep fields not given as flags")
	return cmd
}

func newDeleteCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an employee (asks for confirmation unless --yes)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseID(args[0])
			if err != nil {
				return a.Fail(cmd.Context(), err)
			}
			return quietCancel(cmd, a.Ctrl.Delete(cmd.Context(), id))
		},
	}
}
