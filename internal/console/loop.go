package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Shivanand-hulikatti/eventdesk/internal/routes"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// Navigator is what the loop drives.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
	Restore(ctx context.Context, path string) error
	Dispatch(ctx context.Context, action view.Action) error
	Back(ctx context.Context) error
	Logout(ctx context.Context) error
	Current() routes.Route
	Screen() view.Screen
}

// Input reads commands from the user and runs forms on the same stream. It
// also implements view.Confirmer.
type Input struct {
	raw   io.Reader
	r     *bufio.Reader
	lines *lineReader
	out   io.Writer

	// Accessible runs forms as plain line prompts. It is on by default so
	// scripted input works; hosts attached to a terminal turn it off to get
	// the interactive widgets.
	Accessible bool
}

// NewInput wraps r; prompts are written to out.
func NewInput(r io.Reader, out io.Writer) *Input {
	br := bufio.NewReader(r)
	return &Input{raw: r, r: br, lines: &lineReader{r: br}, out: out, Accessible: true}
}

// Line prints prompt and reads one line without its newline.
func (in *Input) Line(prompt string) (string, error) {
	fmt.Fprint(in.out, prompt)
	line, err := in.r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Form runs fields as a single huh form.
func (in *Input) Form(ctx context.Context, fields ...huh.Field) error {
	form := huh.NewForm(huh.NewGroup(fields...)).
		WithAccessible(in.Accessible).
		WithOutput(in.out)
	if in.Accessible {
		form = form.WithInput(in.lines)
	} else {
		form = form.WithInput(in.raw)
	}
	return form.RunWithContext(ctx)
}

// Confirm asks a yes/no question. Errors count as no.
func (in *Input) Confirm(message string) bool {
	ok := false
	confirm := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := in.Form(context.Background(), confirm); err != nil {
		return false
	}
	return ok
}

// lineReader hands out at most one line per Read, so prompts that wrap the
// stream in their own scanner never swallow lines meant for the command loop.
type lineReader struct {
	r    *bufio.Reader
	rest []byte
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.rest) == 0 {
		line, err := l.r.ReadBytes('\n')
		if len(line) == 0 {
			return 0, err
		}
		l.rest = line
	}
	n := copy(p, l.rest)
	l.rest = l.rest[n:]
	return n, nil
}

const help = `commands:
  go <path>        open a view (/, /dashboard/events, /dashboard/enrollments, ...)
  back             previous view
  submit           fill in and submit the form on screen
  cancel           leave the form on screen
  register         create an account (from the login form)
  add              new event (administrators)
  edit <id>        edit an event (administrators)
  delete <id>      delete an event (administrators)
  enroll <id>      enroll in an event
  logout           sign out
  quit             exit`

// Loop reads commands until quit, EOF or ctx is done.
type Loop struct {
	Nav   Navigator
	Page  *Page
	Input *Input
	// Start is the path shown first.
	Start string
}

// Run executes the loop.
func (l *Loop) Run(ctx context.Context) error {
	start := l.Start
	if start == "" {
		start = routes.Root
	}
	l.report(l.Nav.Restore(ctx, start))

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := l.Input.Line("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}
		quit, err := l.exec(ctx, strings.Fields(line))
		l.report(err)
		if quit {
			return nil
		}
	}
}

func (l *Loop) exec(ctx context.Context, args []string) (quit bool, err error) {
	if len(args) == 0 {
		return false, nil
	}
	arg := func() (string, error) {
		if len(args) < 2 {
			return "", fmt.Errorf("%s needs an argument", args[0])
		}
		return args[1], nil
	}

	switch args[0] {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		l.Page.Println(help)
		return false, nil
	case "go", "open":
		path, err := arg()
		if err != nil {
			return false, err
		}
		return false, l.Nav.Navigate(ctx, path)
	case "back":
		return false, l.Nav.Back(ctx)
	case "logout":
		return false, l.Nav.Logout(ctx)
	case "submit":
		form, err := l.fill(ctx)
		if err != nil {
			return false, err
		}
		return false, l.Nav.Dispatch(ctx, view.Action{Kind: view.ActionSubmit, Form: form})
	case "cancel":
		return false, l.Nav.Dispatch(ctx, view.Action{Kind: view.ActionCancel})
	case "register":
		return false, l.Nav.Dispatch(ctx, view.Action{Kind: view.ActionRegister})
	case "add":
		return false, l.Nav.Dispatch(ctx, view.Action{Kind: view.ActionAddEvent})
	case "edit", "delete", "enroll":
		id, err := arg()
		if err != nil {
			return false, err
		}
		kind := map[string]view.ActionKind{
			"edit":   view.ActionEditEvent,
			"delete": view.ActionDeleteEvent,
			"enroll": view.ActionEnroll,
		}[args[0]]
		return false, l.Nav.Dispatch(ctx, view.Action{Kind: kind, ID: id})
	default:
		return false, fmt.Errorf("unknown command %q (try help)", args[0])
	}
}

// fill asks for every field of the mounted form. Prefilled values are kept
// when the answer is empty.
func (l *Loop) fill(ctx context.Context) (view.Form, error) {
	tpl := l.Page.Template()
	if tpl.Form == "" {
		return nil, errors.New("no form on screen")
	}
	current := l.Nav.Screen().Form
	values := make([]string, len(tpl.Fields))
	fields := make([]huh.Field, 0, len(tpl.Fields))
	for i, f := range tpl.Fields {
		title := f.Label
		if v := current[f.ID]; v != "" {
			title += " [" + v + "]"
		}
		input := huh.NewInput().Title(title).Value(&values[i])
		if f.Type == "password" {
			input = input.EchoMode(huh.EchoModePassword)
		}
		fields = append(fields, input)
	}
	if err := l.Input.Form(ctx, fields...); err != nil {
		return nil, fmt.Errorf("%s: %w", tpl.Form, err)
	}

	form := view.Form{}
	for i, f := range tpl.Fields {
		v := values[i]
		if v == "" {
			v = current[f.ID]
		}
		form[f.ID] = v
	}
	return form, nil
}

func (l *Loop) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, view.ErrUnknownAction):
		l.Page.Errorf("that command does not apply to %s", l.Nav.Current().Path)
	default:
		l.Page.Errorf("%v", err)
	}
}
