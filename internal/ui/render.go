package ui

import (
	"context"
	"empdir/internal/types"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const EmptyState = "No employees found"

// Renderer prints the filtered view as a table, preceded by the stats line.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
}

func NewRenderer(out io.Writer, styles Styles) *Renderer {
	return &Renderer{out: out, styles: styles}
}

// SetStyles switches the theme for subsequent output.
func (r *Renderer) SetStyles(styles Styles) {
	r.mu.Lock()
	r.styles = styles
	r.mu.Unlock()
}

func (r *Renderer) Render(view []types.Employee, stats types.Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, r.styles.Stats.Render(
		fmt.Sprintf("Total employees: %d   Recently added: %d", stats.Total, stats.RecentlyAdded)))
	if len(view) == 0 {
		fmt.Fprintln(r.out, r.styles.Empty.Render(EmptyState))
		return
	}
	fmt.Fprintln(r.out, r.table(view))
}

func (r *Renderer) table(view []types.Employee) string {
	header, cell := r.styles.Header, r.styles.Cell
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.Border).
		Headers("ID", "First Name", "Last Name", "Email").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, e := range view {
		t.Row(e.IDString(), e.FirstName, e.LastName, e.Email)
	}
	return t.Render()
}

// Card prints a single record, as shown in the edit form.
func (r *Renderer) Card(e types.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	label := r.styles.Header
	fmt.Fprintf(r.out, "%s %d\n%s %s\n%s %s\n%s %s\n",
		label.Render("ID:"), e.ID,
		label.Render("First Name:"), e.FirstName,
		label.Render("Last Name:"), e.LastName,
		label.Render("Email:"), e.Email)
}

// Toaster is a notifier printing toasts to the terminal.
type Toaster struct {
	mu     sync.Mutex
	out    io.Writer
	styles Styles
}

func NewToaster(out io.Writer, styles Styles) *Toaster {
	return &Toaster{out: out, styles: styles}
}

func (t *Toaster) SetStyles(styles Styles) {
	t.mu.Lock()
	t.styles = styles
	t.mu.Unlock()
}

func (t *Toaster) Notify(_ context.Context, n types.Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var icon string
	var style lipgloss.Style
	switch n.Severity {
	case types.SeveritySuccess:
		icon, style = "✓", t.styles.ToastSuccess
	case types.SeverityError:
		icon, style = "✗", t.styles.ToastError
	default:
		icon, style = "i", t.styles.ToastInfo
	}
	_, err := fmt.Fprintf(t.out, "%s %s\n", style.Render(icon+" "+n.Title+":"), t.styles.ToastBody.Render(n.Message))
	return err
}
