//go:build js && wasm

package dom

import (
	"context"
	"errors"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/navigator"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// rowActions maps row button classes to actions.
var rowActions = []struct {
	selector string
	kind     view.ActionKind
}{
	{".btn-edit", view.ActionEditEvent},
	{".btn-delete", view.ActionDeleteEvent},
	{".enroll", view.ActionEnroll},
}

// controlActions maps control ids to actions.
var controlActions = []struct {
	selector string
	kind     view.ActionKind
}{
	{"#add-new-event", view.ActionAddEvent},
	{"#register", view.ActionRegister},
	{"#btn-cancel", view.ActionCancel},
	{"#cancel-edit", view.ActionCancel},
}

// Bind installs the document-level listeners. Handlers run on goroutines
// since JS callbacks must not block. The returned func removes them.
func Bind(ctx context.Context, nav *navigator.Navigator, page *Page, log *zap.Logger) (release func()) {
	run := func(what string, fn func() error) {
		go func() {
			if err := fn(); err != nil && !errors.Is(err, navigator.ErrSuperseded) {
				log.Warn(what, zap.Error(err))
			}
		}()
	}

	click := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := args[0]
		target := ev.Get("target")
		if !present(target) || target.Get("closest").IsUndefined() {
			return nil
		}
		if link := target.Call("closest", "[data-link]"); present(link) {
			ev.Call("preventDefault")
			path := link.Call("getAttribute", "href").String()
			run("navigate", func() error { return nav.Navigate(ctx, path) })
			return nil
		}
		if present(target.Call("closest", ".logout")) {
			ev.Call("preventDefault")
			run("logout", func() error { return nav.Logout(ctx) })
			return nil
		}
		for _, ra := range rowActions {
			if btn := target.Call("closest", ra.selector); present(btn) {
				ev.Call("preventDefault")
				action := view.Action{Kind: ra.kind, ID: btn.Get("dataset").Get("eventId").String()}
				run("dispatch", func() error { return nav.Dispatch(ctx, action) })
				return nil
			}
		}
		for _, ca := range controlActions {
			if present(target.Call("closest", ca.selector)) {
				ev.Call("preventDefault")
				action := view.Action{Kind: ca.kind}
				run("dispatch", func() error { return nav.Dispatch(ctx, action) })
				return nil
			}
		}
		return nil
	})

	submit := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := args[0]
		ev.Call("preventDefault")
		form := view.Form{}
		inputs := ev.Get("target").Call("querySelectorAll", "input")
		for i := 0; i < inputs.Length(); i++ {
			in := inputs.Index(i)
			if id := in.Get("id").String(); id != "" {
				form[id] = in.Get("value").String()
			}
		}
		run("submit", func() error { return nav.Dispatch(ctx, view.Action{Kind: view.ActionSubmit, Form: form}) })
		return nil
	})

	popstate := js.FuncOf(func(js.Value, []js.Value) any {
		path := page.Location()
		run("restore", func() error { return nav.Restore(ctx, path) })
		return nil
	})

	doc := page.doc
	doc.Call("addEventListener", "click", click)
	doc.Call("addEventListener", "submit", submit)
	page.win.Call("addEventListener", "popstate", popstate)

	return func() {
		doc.Call("removeEventListener", "click", click)
		doc.Call("removeEventListener", "submit", submit)
		page.win.Call("removeEventListener", "popstate", popstate)
		click.Release()
		submit.Release()
		popstate.Release()
	}
}
