package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

// ErrUnboundField is returned when a model field has no schema entry.
var ErrUnboundField = errors.New("forms: model field has no schema entry")

// Submission is the validated data handed to a completion handler. Values
// holds exactly the schema keys that were submitted, unmodified.
type Submission struct {
	FormID string
	Values validation.Values
}

// Data returns the submission as a plain map for logging or encoding.
func (s Submission) Data() map[string]any {
	return s.Values.Data()
}

// Handler is the completion handler invoked with validated data. A returned
// error is surfaced to the caller of Submit as a form-level failure.
type Handler func(ctx context.Context, submission Submission) error

// Option configures a Form.
type Option func(*Form)

// WithHandler sets the completion handler.
func WithHandler(handler Handler) Option {
	return func(f *Form) {
		f.handler = handler
	}
}

// WithMode sets when per-field validation runs on a State.
func WithMode(mode validation.Mode) Option {
	return func(f *Form) {
		f.mode = mode
	}
}

// WithLogger sets the logger used for submission diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithDecorators applies decorators to the form model at construction.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(f *Form) {
		f.decorators = append(f.decorators, decorators...)
	}
}

// Form is an immutable pairing of model, schema and completion handler.
type Form struct {
	model      model.FormModel
	schema     *validation.Schema
	mode       validation.Mode
	handler    Handler
	logger     *zap.Logger
	decorators []model.Decorator
}

// New binds form to schema. Every model field must have a schema entry.
func New(form model.FormModel, schema *validation.Schema, options ...Option) (*Form, error) {
	if strings.TrimSpace(form.ID) == "" {
		return nil, errors.New("forms: form id is required")
	}
	if schema == nil {
		return nil, fmt.Errorf("forms: form %q: schema is required", form.ID)
	}
	for _, field := range form.Fields {
		if _, ok := schema.Field(field.Name); !ok {
			return nil, fmt.Errorf("%w: form %q field %q", ErrUnboundField, form.ID, field.Name)
		}
	}

	f := &Form{
		model:  form.Clone(),
		schema: schema,
		mode:   validation.ModeSubmit,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	for _, decorator := range f.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&f.model); err != nil {
			return nil, fmt.Errorf("forms: decorate %q: %w", form.ID, err)
		}
	}
	return f, nil
}

// ID returns the form identifier.
func (f *Form) ID() string { return f.model.ID }

// Model returns a copy of the presentational model.
func (f *Form) Model() model.FormModel { return f.model.Clone() }

// Schema returns the validation schema.
func (f *Form) Schema() *validation.Schema { return f.schema }

// Mode returns the per-field validation mode.
func (f *Form) Mode() validation.Mode { return f.mode }

// Validate runs a full validation pass without submitting.
func (f *Form) Validate(values validation.Values) validation.Result {
	return validation.Validate(f.schema, values)
}

// Submit validates values wholesale. An invalid result has no side effects;
// a valid one invokes the completion handler exactly once. The returned error
// is non-nil only when the handler fails.
func (f *Form) Submit(ctx context.Context, values validation.Values) (validation.Result, error) {
	if unknown := f.schema.Check(values); len(unknown) > 0 {
		f.logger.Warn("submission carries fields without schema entries",
			zap.String("form", f.model.ID),
			zap.Strings("fields", unknown))
	}

	result := validation.Validate(f.schema, values)
	if !result.Valid() {
		f.logger.Debug("submission rejected",
			zap.String("form", f.model.ID),
			zap.Strings("fields", result.Fields()))
		return result, nil
	}

	if f.handler == nil {
		return result, nil
	}
	submission := Submission{FormID: f.model.ID, Values: f.bound(values)}
	if err := f.handler(ctx, submission); err != nil {
		return result, fmt.Errorf("forms: %s: completion handler: %w", f.model.ID, err)
	}
	return result, nil
}

func (f *Form) bound(values validation.Values) validation.Values {
	out := make(validation.Values, len(values))
	for _, name := range f.schema.Names() {
		if value, ok := values[name]; ok {
			out[name] = value
		}
	}
	return out
}

// LogHandler is the reference completion handler: it logs the validated data
// and does nothing else.
func LogHandler(logger *zap.Logger) Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(_ context.Context, submission Submission) error {
		logger.Info("form submitted",
			zap.String("form", submission.FormID),
			zap.Any("data", submission.Data()))
		return nil
	}
}
