// Package console renders the application in a terminal: a view.Page that
// prints lipgloss-styled output, and a line-driven loop that turns commands
// into navigator calls.
package console

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Field is a form input found in a template.
type Field struct {
	ID    string
	Label string
	Type  string
}

// Button is a button found in a template.
type Button struct {
	ID   string
	Text string
}

// Template is the terminal-relevant outline of a view template.
type Template struct {
	Title   string
	Form    string // id of the form, "" if none
	Fields  []Field
	Buttons []Button
	Table   string // id of the table body, "" if none
}

// ParseTemplate extracts the outline of a view's markup.
func ParseTemplate(markup string) (Template, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return Template{}, fmt.Errorf("parse template: %w", err)
	}

	var t Template
	labels := map[string]string{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H1, atom.H2:
				if t.Title == "" {
					t.Title = text(n)
				}
			case atom.Form:
				if t.Form == "" {
					t.Form = attr(n, "id")
				}
			case atom.Label:
				if f := attr(n, "for"); f != "" {
					labels[f] = text(n)
				}
			case atom.Input:
				t.Fields = append(t.Fields, Field{ID: attr(n, "id"), Type: attr(n, "type")})
			case atom.Button:
				t.Buttons = append(t.Buttons, Button{ID: attr(n, "id"), Text: text(n)})
			case atom.Tbody:
				if t.Table == "" {
					t.Table = attr(n, "id")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for i, f := range t.Fields {
		t.Fields[i].Label = labels[f.ID]
		if t.Fields[i].Label == "" {
			t.Fields[i].Label = f.ID
		}
	}
	return t, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
