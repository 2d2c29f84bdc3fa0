package console

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/routes"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F1FAEE")).Background(lipgloss.Color("#1D3557")).Padding(0, 1)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
	profileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Page prints the application to a terminal. It implements view.Page and
// view.Notifier.
type Page struct {
	out io.Writer

	mu      sync.Mutex
	tpl     Template
	sidebar bool
}

// NewPage returns a Page writing to out.
func NewPage(out io.Writer) *Page {
	return &Page{out: out}
}

// Template returns the outline of the mounted template.
func (p *Page) Template() Template {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tpl
}

func (p *Page) Mount(markup string) error {
	tpl, err := ParseTemplate(markup)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tpl = tpl
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, titleStyle.Render(tpl.Title))
	return nil
}

func (p *Page) PushHistory(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, dimStyle.Render(path))
}

func (p *Page) ReplaceHistory(path string) {
	p.PushHistory(path)
}

func (p *Page) SetSidebarVisible(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sidebar = visible
}

func (p *Page) RenderProfile(pr view.Profile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.sidebar {
		return
	}
	if pr.Name != "" {
		fmt.Fprintln(p.out, profileStyle.Render(fmt.Sprintf("%s (%s)", pr.Name, pr.Label)))
	}
	menu := fmt.Sprintf("menu: %s  %s", routes.Root, routes.Events)
	if pr.EnrollmentsNav {
		menu += "  " + routes.Enrollments
	}
	fmt.Fprintln(p.out, dimStyle.Render(menu+"  (logout)"))
}

func (p *Page) Render(s view.Screen) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.tpl.Table {
	case "list-events":
		fmt.Fprintln(p.out, eventsTable(s.Events, s.Controls))
	case "list-enrollments":
		fmt.Fprintln(p.out, enrollmentsTable(s.Enrollments))
	}
	for _, f := range p.tpl.Fields {
		if v, ok := s.Form[f.ID]; ok {
			fmt.Fprintf(p.out, "  %s: %s\n", f.Label, v)
		}
	}
}

// Notify prints a message in the notice color. The duration does not apply
// to a scrolling terminal.
func (p *Page) Notify(message, color string, _ time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	fmt.Fprintln(p.out, style.Render(message))
}

// Errorf prints a host-level error.
func (p *Page) Errorf(format string, args ...any) {
	p.Notify(fmt.Sprintf(format, args...), view.FailureColor, 0)
}

// Println prints a plain line.
func (p *Page) Println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, s)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func eventsTable(events []model.Event, c view.Controls) string {
	headers := []string{"ID", "Name", "Description", "Capacity", "Date"}
	var actions string
	switch {
	case c.AdminActions:
		actions = "edit / delete"
	case c.Enroll:
		actions = "enroll"
	}
	if actions != "" {
		headers = append(headers, "Actions")
	}
	t := newTable(headers...)
	for _, e := range events {
		row := []string{e.ID, e.Name, e.Description, strconv.Itoa(e.Capacity), displayDate(e.Date)}
		if actions != "" {
			row = append(row, actions)
		}
		t.Row(row...)
	}
	out := t.String()
	if c.AddEvent {
		out += "\n" + dimStyle.Render("add: create a new event")
	}
	return out
}

func enrollmentsTable(enrollments []model.Enrollment) string {
	t := newTable("Name", "Description", "Capacity", "Date")
	for _, e := range enrollments {
		t.Row(e.Name, e.Description, strconv.Itoa(e.Capacity), displayDate(e.Date))
	}
	return t.String()
}

func displayDate(s string) string {
	if d, err := model.ToInputFormat(s); err == nil {
		return d
	}
	return s
}
