package tui

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

// FileResolver turns a path typed at the prompt into a file reference.
type FileResolver func(path string) (*validation.File, error)

// Session fills forms interactively through a PromptDriver.
type Session struct {
	driver  PromptDriver
	resolve FileResolver
	logger  *zap.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) SessionOption {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithFileResolver overrides how file paths become file references.
func WithFileResolver(resolve FileResolver) SessionOption {
	return func(s *Session) {
		if resolve != nil {
			s.resolve = resolve
		}
	}
}

// WithSessionLogger sets the logger for session diagnostics.
func WithSessionLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession constructs a session with the survey driver and a disk file
// resolver.
func NewSession(options ...SessionOption) *Session {
	s := &Session{
		driver:  NewSurveyDriver(nil),
		resolve: StatFile,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Fill prompts for every field of form, re-asking a field until its answer
// passes validation, then submits. When the submission still fails (for
// example the completion handler rejected it) the user may retry the failing
// fields or decline with ErrDeclined.
func (s *Session) Fill(ctx context.Context, form *forms.Form) (validation.Result, error) {
	fm := form.Model()
	state := form.NewState()

	pending := fm.Fields
	for {
		for _, field := range pending {
			if err := s.prompt(ctx, form.Schema(), field, state); err != nil {
				return validation.Result{}, err
			}
		}

		result, err := state.Submit(ctx)
		if err == nil && result.Valid() {
			s.logger.Debug("terminal submission accepted", zap.String("form", fm.ID))
			return result, nil
		}

		if err != nil {
			if infoErr := s.driver.Info(ctx, fmt.Sprintf("Submission failed: %v", err)); infoErr != nil {
				return result, infoErr
			}
		}
		for _, name := range result.Fields() {
			if infoErr := s.driver.Info(ctx, fmt.Sprintf("%s: %s", name, result.Error(name))); infoErr != nil {
				return result, infoErr
			}
		}

		retry, confirmErr := s.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if confirmErr != nil {
			return result, confirmErr
		}
		if !retry {
			if err != nil {
				return result, err
			}
			return result, ErrDeclined
		}

		pending = failingFields(fm, result, err != nil)
	}
}

// failingFields returns the fields to ask again. A handler failure reopens
// every field since the fault cannot be pinned to one of them.
func failingFields(fm model.FormModel, result validation.Result, all bool) []model.Field {
	if all || result.Valid() {
		return fm.Fields
	}
	var out []model.Field
	for _, field := range fm.Fields {
		if result.Error(field.Name) != "" {
			out = append(out, field)
		}
	}
	return out
}

func (s *Session) prompt(ctx context.Context, schema *validation.Schema, field model.Field, state *forms.State) error {
	label := displayLabel(field)
	current := state.Values()[field.Name]
	check := func(value validation.Value) error {
		if message, ok := validation.ValidateField(schema, field.Name, value); !ok {
			return errors.New(message)
		}
		return nil
	}

	for {
		value, err := s.ask(ctx, field, label, current, check)
		if err != nil {
			return err
		}
		// Drivers that ignore the prompt validator still cannot commit an
		// invalid answer.
		if err := check(value); err != nil {
			if infoErr := s.driver.Info(ctx, fmt.Sprintf("Invalid %s: %v", label, err)); infoErr != nil {
				return infoErr
			}
			continue
		}

		switch {
		case field.Input == model.InputFile:
			state.SetFile(field.Name, value.File())
		case field.Multiple():
			state.SetSelected(field.Name, value.List()...)
		default:
			state.SetText(field.Name, value.Text())
		}
		state.Blur(field.Name)
		return nil
	}
}

func (s *Session) ask(ctx context.Context, field model.Field, label string, current validation.Value, check func(validation.Value) error) (validation.Value, error) {
	options := optionValues(field)
	textCheck := func(answer any) error {
		text, _ := answer.(string)
		return check(validation.Text(text))
	}

	switch field.Input {
	case model.InputPassword:
		answer, err := s.driver.Password(ctx, InputConfig{Message: label, Help: field.Placeholder, Validator: textCheck})
		return validation.Text(answer), err

	case model.InputRadio:
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      optionLabels(field),
			DefaultIndex: indexOf(options, current.Text()),
			Help:         field.Placeholder,
			Validator: func(answer any) error {
				idx, _ := answer.(int)
				return check(optionAt(options, idx))
			},
		})
		if err != nil {
			return validation.Value{}, err
		}
		return optionAt(options, idx), nil

	case model.InputCheckbox:
		indices, err := s.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  optionLabels(field),
			Defaults: indicesOf(options, current.List()),
			Help:     field.Placeholder,
			Validator: func(answer any) error {
				indices, _ := answer.([]int)
				return check(validation.List(valuesAt(options, indices)...))
			},
		})
		if err != nil {
			return validation.Value{}, err
		}
		return validation.List(valuesAt(options, indices)...), nil

	case model.InputFile:
		path, err := s.driver.Input(ctx, InputConfig{
			Message: label + " (path, empty to skip)",
			Help:    field.Accept,
			Validator: func(answer any) error {
				path, _ := answer.(string)
				file, err := s.fileAt(path)
				if err != nil {
					return err
				}
				return check(validation.FileValue(file))
			},
		})
		if err != nil {
			return validation.Value{}, err
		}
		file, err := s.fileAt(path)
		if err != nil {
			if infoErr := s.driver.Info(ctx, err.Error()); infoErr != nil {
				return validation.Value{}, infoErr
			}
			return s.ask(ctx, field, label, current, check)
		}
		return validation.FileValue(file), nil

	default:
		answer, err := s.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   current.Text(),
			Help:      field.Placeholder,
			Validator: textCheck,
		})
		return validation.Text(answer), err
	}
}

// fileAt resolves a typed path; an empty path means no file.
func (s *Session) fileAt(path string) (*validation.File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	file, err := s.resolve(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return file, nil
}

func optionAt(options []string, idx int) validation.Value {
	if idx < 0 || idx >= len(options) {
		return validation.Text("")
	}
	return validation.Text(options[idx])
}

// StatFile resolves a path on disk, deriving the content type from the
// file extension.
func StatFile(path string) (*validation.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &validation.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
	}, nil
}

func displayLabel(field model.Field) string {
	label := field.Label
	if label == "" {
		label = model.Label(field.Name)
	}
	if field.Required {
		label += " *"
	}
	return label
}

func optionValues(field model.Field) []string {
	out := make([]string, 0, len(field.Options))
	for _, option := range field.Options {
		out = append(out, option.Value)
	}
	return out
}

func optionLabels(field model.Field) []string {
	out := make([]string, 0, len(field.Options))
	for _, option := range field.Options {
		if option.Label != "" {
			out = append(out, option.Label)
		} else {
			out = append(out, option.Value)
		}
	}
	return out
}
