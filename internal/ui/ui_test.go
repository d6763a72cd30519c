package ui

import (
	"bytes"
	"context"
	"empdir/internal/types"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type UITestSuite struct {
	suite.Suite
}

func TestUITestSuite(t *testing.T) {
	suite.Run(t, new(UITestSuite))
}

func (s *UITestSuite) TestRenderTable() {
	var buf bytes.Buffer
	r := NewRenderer(&buf, NewStyles(LightTheme()))
	r.Render([]types.Employee{
		{ID: 1, FirstName: "Ann", LastName: "Lee", Email: "a@x.com"},
		{ID: 7, FirstName: "Bo", LastName: "Kim", Email: "bo@kim.dev"},
	}, types.Stats{Total: 5, RecentlyAdded: 3})

	out := buf.String()
	s.Contains(out, "Total employees: 5")
	s.Contains(out, "Recently added: 3")
	for _, want := range []string{"ID", "First Name", "Email", "Ann", "Lee", "a@x.com", "Bo", "bo@kim.dev"} {
		s.Contains(out, want)
	}
	s.Less(strings.Index(out, "Ann"), strings.Index(out, "Bo"), "rows keep view order")
	s.NotContains(out, EmptyState)
}

func (s *UITestSuite) TestRenderEmptyState() {
	var buf bytes.Buffer
	r := NewRenderer(&buf, NewStyles(DarkTheme()))
	r.Render(nil, types.Stats{})
	s.Contains(buf.String(), EmptyState)
	s.Contains(buf.String(), "Total employees: 0")
}

func (s *UITestSuite) TestCard() {
	var buf bytes.Buffer
	NewRenderer(&buf, NewStyles(LightTheme())).Card(types.Employee{ID: 7, FirstName: "Bo", LastName: "Kim", Email: "bo@kim.dev"})
	s.Contains(buf.String(), "7")
	s.Contains(buf.String(), "bo@kim.dev")
}

func (s *UITestSuite) TestToaster() {
	var buf bytes.Buffer
	t := NewToaster(&buf, NewStyles(LightTheme()))
	s.NoError(t.Notify(context.Background(), types.Success("Employee added successfully")))
	s.NoError(t.Notify(context.Background(), types.Failure("Failed to delete employee")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	s.Len(lines, 2)
	s.Contains(lines[0], "Success:")
	s.Contains(lines[0], "Employee added successfully")
	s.Contains(lines[1], "Error:")
	s.Contains(lines[1], "Failed to delete employee")
}

func (s *UITestSuite) TestThemeNamed() {
	s.Equal(types.ThemeDark, ThemeNamed("dark").Name)
	s.Equal(types.ThemeLight, ThemeNamed("light").Name)
	s.Equal(types.ThemeLight, ThemeNamed("").Name)
}

func (s *UITestSuite) TestConfirm() {
	ctx := context.Background()
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("y\nno\n YES \n\nmaybe"), &out)

	for _, want := range []bool{true, false, true, false, false} {
		got, err := p.Confirm(ctx, "Delete?")
		s.NoError(err)
		s.Equal(want, got)
	}
	s.Contains(out.String(), "Delete? [y/N]: ")

	got, err := p.Confirm(ctx, "Delete?")
	s.False(got)
	s.True(errors.Is(err, io.EOF))

	p.AssumeYes = true
	got, err = p.Confirm(ctx, "Delete?")
	s.NoError(err)
	s.True(got)
}

func (s *UITestSuite) TestAsk() {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("  Ann \n\n"), &out)

	v, err := p.Ask("First Name", "")
	s.NoError(err)
	s.Equal("Ann", v)

	v, err = p.Ask("Last Name", "Lee")
	s.NoError(err)
	s.Equal("Lee", v)
	s.Contains(out.String(), "Last Name [Lee]: ")

	_, err = p.Ask("Email", "")
	s.True(errors.Is(err, io.EOF))
}
