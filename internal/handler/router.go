package handler

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/service"
)

// Assets are the file trees the server publishes next to the API.
type Assets struct {
	// Views holds the view templates served under /app/views/.
	Views fs.FS
	// Shell holds index.html plus static files; unknown extensionless paths
	// fall back to index.html so client-side routes survive a reload.
	Shell fs.FS
}

// NewRouter builds the chi router for the data store, the view templates and
// the SPA shell.
func NewRouter(cat *service.Catalog, assets Assets, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(log))             // structured access log
	r.Use(CORS)                    // permissive CORS for the SPA

	// Health
	r.Get("/health", HealthCheck)

	// Data store resources
	r.Mount("/event", NewResourceHandler("event", cat.Events, log).Routes())
	r.Mount("/user", NewResourceHandler("user", cat.Users, log).Routes())
	r.Mount("/enrollments", NewResourceHandler("enrollment", cat.Enrollments, log).Routes())

	// View templates
	if assets.Views != nil {
		r.Handle("/app/views/*", http.StripPrefix("/app/views/", http.FileServer(http.FS(assets.Views))))
	}

	// SPA shell
	if assets.Shell != nil {
		r.Handle("/*", spaHandler(assets.Shell))
	}
	return r
}

func spaHandler(shell fs.FS) http.Handler {
	files := http.FileServer(http.FS(shell))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name != "" {
			if info, err := fs.Stat(shell, name); err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
			if path.Ext(name) != "" {
				http.NotFound(w, r)
				return
			}
		}
		http.ServeFileFS(w, r, shell, "index.html")
	})
}
