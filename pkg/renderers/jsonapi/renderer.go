// Package jsonapi renders pages as JSON documents for API clients.
package jsonapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/render"
	"github.com/goliatone/go-admin-shell/pkg/sidebar"
)

// Response is the JSON body written for every page.
type Response struct {
	Kind       string            `json:"kind"`
	Valid      bool              `json:"valid"`
	Submitted  bool              `json:"submitted,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	FormErrors []string          `json:"formErrors,omitempty"`
	Data       map[string]any    `json:"data,omitempty"`
	Form       *model.FormModel  `json:"form,omitempty"`
	Sidebar    *sidebar.View     `json:"sidebar,omitempty"`
	RequestID  string            `json:"requestId,omitempty"`
}

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty prints responses.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer emits Response documents.
type Renderer struct {
	indent string
}

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "jsonapi"
}

func (r *Renderer) ContentType() string {
	return "application/json; charset=utf-8"
}

// Render encodes page as a Response.
func (r *Renderer) Render(ctx context.Context, page render.Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body := NewResponse(page)

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(body, "", r.indent)
	} else {
		out, err = json.Marshal(body)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonapi renderer: encode %s: %w", page.Kind, err)
	}
	return append(out, '\n'), nil
}

// NewResponse projects a page onto the JSON document. Only the first
// message of each field is reported, matching what the HTML form shows.
func NewResponse(page render.Page) Response {
	body := Response{
		Kind:       string(page.Kind),
		Valid:      page.Valid(),
		Submitted:  page.Submitted,
		FormErrors: page.Errors.Form,
		Data:       page.Data,
		Form:       page.Form,
		Sidebar:    page.Sidebar,
		RequestID:  page.RequestID,
	}
	if len(page.Errors.Fields) > 0 {
		body.Errors = make(map[string]string, len(page.Errors.Fields))
		for name := range page.Errors.Fields {
			body.Errors[name] = page.Errors.Field(name)
		}
	}
	return body
}
