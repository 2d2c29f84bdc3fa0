// Package app assembles the navigator from the data access client and a
// host's page, notification, confirmation and storage adapters.
package app

import (
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/client"
	"github.com/Shivanand-hulikatti/eventdesk/internal/controller"
	"github.com/Shivanand-hulikatti/eventdesk/internal/navigator"
	"github.com/Shivanand-hulikatti/eventdesk/internal/routes"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// Host is the set of adapters a host provides.
type Host struct {
	Page     view.Page
	Notifier view.Notifier
	Confirm  view.Confirmer
	Storage  session.KV
}

// Controllers builds one controller per routed view.
func Controllers(api *client.Client, confirm view.Confirmer, log *zap.Logger) map[routes.View]view.Controller {
	return map[routes.View]view.Controller{
		routes.ViewLogin:       &controller.Login{Users: api.Users, Log: log},
		routes.ViewRegister:    &controller.Register{Users: api.Users, Log: log},
		routes.ViewEvents:      &controller.Events{Events: api.Events, Enrollments: api.Enrollments, Confirm: confirm, Log: log},
		routes.ViewCreateEvent: &controller.CreateEvent{Events: api.Events, Log: log},
		routes.ViewEditEvent:   &controller.EditEvent{Events: api.Events, Log: log},
		routes.ViewEnrollments: &controller.Enrollments{Enrollments: api.Enrollments, Log: log},
	}
}

// New wires a navigator for host against api.
func New(api *client.Client, host Host, log *zap.Logger) (*navigator.Navigator, error) {
	return navigator.New(navigator.Config{
		Routes:      routes.Default(),
		Templates:   api.Templates,
		Page:        host.Page,
		Notifier:    host.Notifier,
		Session:     session.NewStore(host.Storage, log),
		Controllers: Controllers(api, host.Confirm, log),
		Log:         log,
	})
}
