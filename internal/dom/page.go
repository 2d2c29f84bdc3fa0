//go:build js && wasm

// Package dom adapts the navigator to the browser: a view.Page over the
// document, toast notifications, window.confirm, localStorage, and the
// delegated listeners that turn clicks and submits into navigator calls.
package dom

import (
	"errors"
	"strconv"
	"syscall/js"
	"time"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// Page renders into the shell document.
type Page struct {
	win js.Value
	doc js.Value
}

// NewPage binds to the global window and document.
func NewPage() *Page {
	win := js.Global()
	return &Page{win: win, doc: win.Get("document")}
}

func (p *Page) byID(id string) js.Value { return p.doc.Call("getElementById", id) }

func (p *Page) all(selector string) []js.Value {
	list := p.doc.Call("querySelectorAll", selector)
	out := make([]js.Value, list.Length())
	for i := range out {
		out[i] = list.Index(i)
	}
	return out
}

func present(v js.Value) bool { return !v.IsNull() && !v.IsUndefined() }

func display(el js.Value, on bool, shown string) {
	if !present(el) {
		return
	}
	if on {
		el.Get("style").Set("display", shown)
	} else {
		el.Get("style").Set("display", "none")
	}
}

func (p *Page) Mount(markup string) error {
	main := p.byID("main-content")
	if !present(main) {
		return errors.New("#main-content is missing")
	}
	main.Set("innerHTML", markup)
	return nil
}

func (p *Page) PushHistory(path string) {
	p.win.Get("history").Call("pushState", js.ValueOf(map[string]any{}), "", path)
}

func (p *Page) ReplaceHistory(path string) {
	p.win.Get("history").Call("replaceState", js.ValueOf(map[string]any{}), "", path)
}

func (p *Page) SetSidebarVisible(visible bool) {
	display(p.byID("aside-navbar"), visible, "flex")
}

func (p *Page) RenderProfile(pr view.Profile) {
	if el := p.doc.Call("querySelector", ".name-profile"); present(el) {
		el.Set("textContent", pr.Name)
	}
	if el := p.doc.Call("querySelector", ".role-profile"); present(el) {
		el.Set("textContent", pr.Label)
	}
	if el := p.doc.Call("querySelector", ".img-profile-user"); present(el) && pr.Avatar != "" {
		el.Set("src", pr.Avatar)
	}
	display(p.byID("enrollments"), pr.EnrollmentsNav, "list-item")
}

func (p *Page) Render(s view.Screen) {
	if tbody := p.byID("list-events"); present(tbody) {
		p.renderEvents(tbody, s.Events)
		p.applyControls(s.Controls)
	}
	if tbody := p.byID("list-enrollments"); present(tbody) {
		p.renderEnrollments(tbody, s.Enrollments)
	}
	for field, value := range s.Form {
		if el := p.byID(field); present(el) {
			el.Set("value", value)
		}
	}
}

func (p *Page) renderEvents(tbody js.Value, events []model.Event) {
	tbody.Set("innerHTML", "")
	for _, e := range events {
		row := p.doc.Call("createElement", "tr")
		row.Get("dataset").Set("eventId", e.ID)
		row.Call("appendChild", p.imageCell(e.Img))
		for _, text := range []string{e.Name, e.Description, strconv.Itoa(e.Capacity), e.Date} {
			row.Call("appendChild", p.textCell(text))
		}

		actions := p.doc.Call("createElement", "td")
		actions.Set("className", "actions-tbody")
		actions.Call("appendChild", p.button("btn-edit", "Edit", e.ID))
		actions.Call("appendChild", p.button("btn-delete", "Delete", e.ID))
		row.Call("appendChild", actions)

		enroll := p.doc.Call("createElement", "td")
		enroll.Set("className", "btn-enroll")
		enroll.Call("appendChild", p.button("buttons enroll", "Enroll", e.ID))
		row.Call("appendChild", enroll)

		tbody.Call("appendChild", row)
	}
}

func (p *Page) renderEnrollments(tbody js.Value, enrollments []model.Enrollment) {
	tbody.Set("innerHTML", "")
	for _, e := range enrollments {
		row := p.doc.Call("createElement", "tr")
		row.Call("appendChild", p.imageCell(e.Img))
		for _, text := range []string{e.Name, e.Description, strconv.Itoa(e.Capacity), e.Date} {
			row.Call("appendChild", p.textCell(text))
		}
		tbody.Call("appendChild", row)
	}
}

func (p *Page) applyControls(c view.Controls) {
	for _, el := range p.all(".buttons-action") {
		display(el, c.AdminActions, "table-cell")
	}
	for _, el := range p.all(".actions-tbody") {
		display(el, c.AdminActions, "table-cell")
	}
	for _, el := range p.all(".btn-enroll") {
		display(el, c.Enroll, "table-cell")
	}
	display(p.byID("add-new-event"), c.AddEvent, "block")
	display(p.byID("enrollments"), c.EnrollmentsNav, "list-item")
}

func (p *Page) textCell(text string) js.Value {
	td := p.doc.Call("createElement", "td")
	td.Set("textContent", text)
	return td
}

func (p *Page) imageCell(src string) js.Value {
	td := p.doc.Call("createElement", "td")
	img := p.doc.Call("createElement", "img")
	img.Set("className", "img-event")
	img.Set("src", src)
	td.Call("appendChild", img)
	return td
}

func (p *Page) button(class, label, eventID string) js.Value {
	b := p.doc.Call("createElement", "button")
	b.Set("type", "button")
	b.Set("className", class)
	b.Set("textContent", label)
	b.Get("dataset").Set("eventId", eventID)
	return b
}

// Notify shows a toast for d.
func (p *Page) Notify(message, color string, d time.Duration) {
	box := p.byID("notifications")
	if !present(box) {
		box = p.doc.Get("body")
	}
	toast := p.doc.Call("createElement", "div")
	toast.Set("className", "notification")
	toast.Set("textContent", message)
	toast.Get("style").Set("background", color)
	box.Call("appendChild", toast)

	var remove js.Func
	remove = js.FuncOf(func(js.Value, []js.Value) any {
		toast.Call("remove")
		remove.Release()
		return nil
	})
	p.win.Call("setTimeout", remove, d.Milliseconds())
}

// Confirm asks through window.confirm.
func (p *Page) Confirm(message string) bool {
	return p.win.Call("confirm", message).Bool()
}

// Location returns the current path.
func (p *Page) Location() string {
	return p.win.Get("location").Get("pathname").String()
}

// Origin returns the page's origin, which also serves the data store.
func (p *Page) Origin() string {
	return p.win.Get("location").Get("origin").String()
}
