// Package client is the data access layer: resty-backed clients for the
// catalog resources and the view templates served by the data store.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
)

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Client bundles the resource clients that share one HTTP client.
type Client struct {
	Events      *Resource[model.Event]
	Users       *Resource[model.User]
	Enrollments *Resource[model.Enrollment]
	Templates   *Templates
}

// New builds a Client against the data store at baseURL. A zero timeout
// disables the per-request deadline.
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{
		Events:      &Resource[model.Event]{http: rc, path: "/event"},
		Users:       &Resource[model.User]{http: rc, path: "/user"},
		Enrollments: &Resource[model.Enrollment]{http: rc, path: "/enrollments"},
		Templates:   &Templates{http: rc},
	}
}

// Resource is the client for one json-server style collection.
type Resource[T any] struct {
	http *resty.Client
	path string
}

// List returns every record of the collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	resp, err := r.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(r.path)
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts v and returns the stored record.
func (r *Resource[T]) Create(ctx context.Context, v T) (T, error) {
	var out T
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(v).
		SetResult(&out).
		Post(r.path)
	if err := check(resp, err); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Update replaces the record with the given id.
func (r *Resource[T]) Update(ctx context.Context, id string, v T) (T, error) {
	var out T
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(v).
		SetResult(&out).
		SetPathParam("id", id).
		Put(r.path + "/{id}")
	if err := check(resp, err); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Delete removes the record with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	resp, err := r.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete(r.path + "/{id}")
	return check(resp, err)
}

// Templates fetches view markup.
type Templates struct {
	http *resty.Client
}

// Fetch returns the markup stored at ref, a path relative to the base URL.
func (t *Templates) Fetch(ctx context.Context, ref string) (string, error) {
	resp, err := t.http.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(ref)
	if err := check(resp, err); err != nil {
		return "", err
	}
	return resp.String(), nil
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	if !resp.IsSuccess() {
		return &StatusError{
			Method:     resp.Request.Method,
			URL:        resp.Request.URL,
			StatusCode: resp.StatusCode(),
		}
	}
	return nil
}
