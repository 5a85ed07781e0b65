package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/render"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

// stubDriver replays scripted answers. Like survey it re-asks while the
// prompt validator rejects an answer, unless ignoreValidators is set.
type stubDriver struct {
	inputs           []string
	passwords        []string
	selectIdx        []int
	multiIdx         [][]int
	confirm          []bool
	infoMessages     []string
	rejected         []string
	ignoreValidators bool
}

func (s *stubDriver) accept(validate func(any) error, answer any) bool {
	if validate == nil || s.ignoreValidators {
		return true
	}
	if err := validate(answer); err != nil {
		s.rejected = append(s.rejected, err.Error())
		return false
	}
	return true
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	for len(s.inputs) > 0 {
		val := s.inputs[0]
		s.inputs = s.inputs[1:]
		if s.accept(cfg.Validator, val) {
			return val, nil
		}
	}
	return "", errors.New("no input scripted")
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	for len(s.passwords) > 0 {
		val := s.passwords[0]
		s.passwords = s.passwords[1:]
		if s.accept(cfg.Validator, val) {
			return val, nil
		}
	}
	return "", errors.New("no password scripted")
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(s.confirm) == 0 {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[0]
	s.confirm = s.confirm[1:]
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	for len(s.selectIdx) > 0 {
		val := s.selectIdx[0]
		s.selectIdx = s.selectIdx[1:]
		if s.accept(cfg.Validator, val) {
			return val, nil
		}
	}
	return -1, errors.New("no select scripted")
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	for len(s.multiIdx) > 0 {
		val := s.multiIdx[0]
		s.multiIdx = s.multiIdx[1:]
		if s.accept(cfg.Validator, val) {
			return val, nil
		}
	}
	return nil, errors.New("no multiselect scripted")
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newRecordingLogin(t *testing.T, got *forms.Submission) *forms.Form {
	t.Helper()
	form, err := forms.NewLogin(forms.WithHandler(func(_ context.Context, submission forms.Submission) error {
		*got = submission
		return nil
	}))
	if err != nil {
		t.Fatalf("new login: %v", err)
	}
	return form
}

func TestFillLoginRepromptsThroughValidators(t *testing.T) {
	var got forms.Submission
	form := newRecordingLogin(t, &got)

	driver := &stubDriver{
		inputs:    []string{"12345", "12345abcde", "0123456789"},
		passwords: []string{"abc", "secret1"},
	}
	result, err := NewSession(WithPromptDriver(driver)).Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !result.Valid() {
		t.Fatalf("expected valid result, got %v", result.Errors)
	}

	wantRejected := []string{
		"Mobile number must be at least 10 digits",
		"Mobile number must only contain digits",
		"Passcode must be at least 6 characters",
	}
	if diff := cmp.Diff(wantRejected, driver.rejected); diff != "" {
		t.Fatalf("rejected answers mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("validator failures are shown by the prompt, got notices %v", driver.infoMessages)
	}
	if diff := cmp.Diff(forms.LoginData{Mobile: "0123456789", Passcode: "secret1"}, forms.DecodeLogin(got.Values)); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestFillRechecksAnswersFromDriversWithoutValidation(t *testing.T) {
	var got forms.Submission
	form := newRecordingLogin(t, &got)

	driver := &stubDriver{
		inputs:           []string{"12345", "12345abcde", "0123456789"},
		passwords:        []string{"abc", "secret1"},
		ignoreValidators: true,
	}
	if _, err := NewSession(WithPromptDriver(driver)).Fill(context.Background(), form); err != nil {
		t.Fatalf("fill: %v", err)
	}

	wantInfo := []string{
		"Invalid Mobile Number *: Mobile number must be at least 10 digits",
		"Invalid Mobile Number *: Mobile number must only contain digits",
		"Invalid Passcode *: Passcode must be at least 6 characters",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
	if forms.DecodeLogin(got.Values).Mobile != "0123456789" {
		t.Fatalf("unexpected submission %v", got.Values)
	}
}

func TestFillGenericWithFile(t *testing.T) {
	var got forms.Submission
	form, err := forms.NewGeneric(nil, forms.WithHandler(func(_ context.Context, submission forms.Submission) error {
		got = submission
		return nil
	}))
	if err != nil {
		t.Fatalf("new generic: %v", err)
	}

	resolver := func(path string) (*validation.File, error) {
		switch path {
		case "notes.txt":
			return &validation.File{Name: path, ContentType: "text/plain", Size: 10}, nil
		case "avatar.png":
			return &validation.File{Name: path, ContentType: "image/png", Size: 2048}, nil
		default:
			return nil, errors.New("no such file")
		}
	}
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com", "missing.png", "notes.txt", "avatar.png"},
		selectIdx: []int{1},
		multiIdx:  [][]int{{}, {0, 3}},
	}
	_, err = NewSession(WithPromptDriver(driver), WithFileResolver(resolver)).Fill(context.Background(), form)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := forms.GenericData{
		Name:         "Ada",
		Email:        "ada@example.com",
		Image:        &validation.File{Name: "avatar.png", ContentType: "image/png", Size: 2048},
		Gender:       "female",
		Technologies: []string{"HTML", "Python"},
	}
	if diff := cmp.Diff(want, forms.DecodeGeneric(got.Values)); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
	joined := strings.Join(driver.rejected, "\n")
	for _, fragment := range []string{"cannot read missing.png", "File must be an image", "At least one technology must be selected"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected info %q in:\n%s", fragment, joined)
		}
	}
}

func TestFillHandlerFailureCanBeDeclined(t *testing.T) {
	rejected := render.UserError{Message: "Mobile number already registered"}
	form, err := forms.NewLogin(forms.WithHandler(func(context.Context, forms.Submission) error {
		return rejected
	}))
	if err != nil {
		t.Fatalf("new login: %v", err)
	}

	driver := &stubDriver{
		inputs:    []string{"0123456789"},
		passwords: []string{"secret1"},
		confirm:   []bool{false},
	}
	_, err = NewSession(WithPromptDriver(driver)).Fill(context.Background(), form)
	if !errors.Is(err, rejected) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if len(driver.infoMessages) == 0 || !strings.Contains(driver.infoMessages[0], "already registered") {
		t.Fatalf("handler failure must be reported: %v", driver.infoMessages)
	}
}

func TestFillPropagatesAbort(t *testing.T) {
	form, err := forms.NewLogin()
	if err != nil {
		t.Fatalf("new login: %v", err)
	}
	_, err = NewSession(WithPromptDriver(abortDriver{&stubDriver{}})).Fill(context.Background(), form)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortDriver struct{ *stubDriver }

func (abortDriver) Input(context.Context, InputConfig) (string, error) { return "", ErrAborted }

func TestStatFileDetectsContentType(t *testing.T) {
	path := t.TempDir() + "/avatar.png"
	if err := writeFile(path, []byte("png")); err != nil {
		t.Fatalf("write: %v", err)
	}
	file, err := StatFile(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if file.Name != "avatar.png" || file.ContentType != "image/png" || file.Size != 3 {
		t.Fatalf("unexpected file %+v", file)
	}
	if _, err := StatFile(t.TempDir()); err == nil {
		t.Fatalf("directories are rejected")
	}
}
