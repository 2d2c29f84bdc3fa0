//go:build js && wasm

// cmd/spa is the browser build of the application, compiled to WebAssembly
// and loaded by the shell page the data store serves.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/app"
	"github.com/Shivanand-hulikatti/eventdesk/internal/client"
	"github.com/Shivanand-hulikatti/eventdesk/internal/dom"
	"github.com/Shivanand-hulikatti/eventdesk/internal/logging"
)

func main() {
	// wasm_exec forwards stderr to the browser console.
	log := logging.Must("debug", "console")

	page := dom.NewPage()
	storage, err := dom.NewLocalStorage()
	if err != nil {
		log.Fatal("session storage", zap.Error(err))
	}

	nav, err := app.New(client.New(page.Origin(), 10*time.Second), app.Host{
		Page:     page,
		Notifier: page,
		Confirm:  page,
		Storage:  storage,
	}, log)
	if err != nil {
		log.Fatal("navigator", zap.Error(err))
	}

	ctx := context.Background()
	release := dom.Bind(ctx, nav, page, log)
	defer release()

	go func() {
		if err := nav.Restore(ctx, page.Location()); err != nil {
			log.Warn("initial navigation", zap.Error(err))
		}
	}()
	select {}
}
