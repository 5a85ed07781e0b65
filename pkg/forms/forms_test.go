package forms_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-admin-shell/pkg/forms"
	"github.com/goliatone/go-admin-shell/pkg/model"
	"github.com/goliatone/go-admin-shell/pkg/validation"
)

const mib = 1024 * 1024

type recorder struct {
	calls []forms.Submission
	err   error
}

func (r *recorder) handle(_ context.Context, submission forms.Submission) error {
	r.calls = append(r.calls, submission)
	return r.err
}

func newGeneric(t *testing.T, rec *recorder) *forms.Form {
	t.Helper()
	form, err := forms.NewGeneric(nil, forms.WithHandler(rec.handle))
	if err != nil {
		t.Fatalf("new generic form: %v", err)
	}
	return form
}

func genericValues(name, email string, technologies ...string) validation.Values {
	return validation.Values{
		"name":         validation.Text(name),
		"email":        validation.Text(email),
		"gender":       validation.Text("male"),
		"technologies": validation.List(technologies...),
	}
}

func TestGenericFormSingleFieldFailures(t *testing.T) {
	cases := []struct {
		name   string
		values validation.Values
		want   map[string]string
	}{
		{
			name:   "empty name",
			values: genericValues("", "a@b.com", "HTML"),
			want:   map[string]string{"name": "Name is required"},
		},
		{
			name:   "malformed email",
			values: genericValues("Ann", "bad", "HTML"),
			want:   map[string]string{"email": "Invalid email address"},
		},
		{
			name:   "no technologies",
			values: genericValues("Ann", "a@b.com"),
			want:   map[string]string{"technologies": "At least one technology must be selected"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			form := newGeneric(t, rec)

			result, err := form.Submit(context.Background(), tc.values)
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if result.Valid() {
				t.Fatalf("expected invalid result")
			}
			if diff := cmp.Diff(tc.want, result.Errors); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
			if len(rec.calls) != 0 {
				t.Fatalf("handler must not run for invalid input, got %d calls", len(rec.calls))
			}
		})
	}
}

func TestGenericFormImageConstraints(t *testing.T) {
	form := newGeneric(t, &recorder{})

	values := genericValues("Ann", "a@b.com", "HTML")
	values["image"] = validation.FileValue(&validation.File{Name: "big.png", ContentType: "image/png", Size: 6 * mib})
	result := form.Validate(values)
	if diff := cmp.Diff(map[string]string{"image": "Image must be less than 5MB"}, result.Errors); diff != "" {
		t.Fatalf("6MB image (-want +got):\n%s", diff)
	}

	values["image"] = validation.FileValue(&validation.File{Name: "ok.png", ContentType: "image/png", Size: 4 * mib})
	if result := form.Validate(values); !result.Valid() {
		t.Fatalf("4MB image should be valid, got %v", result.Errors)
	}

	values["image"] = validation.FileValue(&validation.File{Name: "doc.pdf", ContentType: "application/pdf", Size: 10})
	if got := form.Validate(values).Error("image"); got != "File must be an image" {
		t.Fatalf("unexpected non-image message %q", got)
	}
}

func TestGenericFormGenderAndUnknownTechnology(t *testing.T) {
	form := newGeneric(t, &recorder{})

	values := genericValues("Ann", "a@b.com", "Rust")
	values["gender"] = validation.Text("unknown")
	want := map[string]string{
		"gender":       "Gender is required",
		"technologies": "Unknown technology selected",
	}
	if diff := cmp.Diff(want, form.Validate(values).Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestGenericFormUsesConfiguredTechnologies(t *testing.T) {
	form, err := forms.NewGeneric([]string{" Go ", "Go", "", "Rust"})
	if err != nil {
		t.Fatalf("new generic: %v", err)
	}
	field, _ := form.Model().Field("technologies")
	want := []model.Option{{Value: "Go", Label: "Go"}, {Value: "Rust", Label: "Rust"}}
	if diff := cmp.Diff(want, field.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if result := form.Validate(genericValues("Ann", "a@b.com", "HTML")); result.Valid() {
		t.Fatalf("HTML is not a configured technology")
	}
}

func TestLoginFormMobileRules(t *testing.T) {
	form, err := forms.NewLogin()
	if err != nil {
		t.Fatalf("new login: %v", err)
	}

	cases := map[string]string{
		"12345":            "Mobile number must be at least 10 digits",
		"12345abcde":       "Mobile number must only contain digits",
		"1234567890123456": "Mobile number can be at most 15 digits",
		"1234567890":       "",
	}
	for mobile, want := range cases {
		result := form.Validate(validation.Values{
			"mobile":   validation.Text(mobile),
			"passcode": validation.Text("secret1"),
		})
		if got := result.Error("mobile"); got != want {
			t.Errorf("mobile %q: want %q, got %q", mobile, want, got)
		}
		if got := result.Error("passcode"); got != "" {
			t.Errorf("passcode unexpectedly failed: %q", got)
		}
	}
}

func TestLoginFormPasscodeLength(t *testing.T) {
	form, _ := forms.NewLogin()

	short := form.Validate(validation.Values{"mobile": validation.Text("1234567890"), "passcode": validation.Text("12345")})
	if got := short.Error("passcode"); got != "Passcode must be at least 6 characters" {
		t.Fatalf("unexpected short message %q", got)
	}
	long := form.Validate(validation.Values{"mobile": validation.Text("1234567890"), "passcode": validation.Text("1234567890abc")})
	if got := long.Error("passcode"); got != "Passcode can be at most 12 characters" {
		t.Fatalf("unexpected long message %q", got)
	}
}

func TestValidSubmissionsInvokeHandlerOnceWithInput(t *testing.T) {
	rec := &recorder{}
	generic := newGeneric(t, rec)
	login, err := forms.NewLogin(forms.WithHandler(rec.handle))
	if err != nil {
		t.Fatalf("new login: %v", err)
	}

	genericInput := genericValues("Ann", "a@b.com", "HTML", "Js")
	genericInput["image"] = validation.FileValue(&validation.File{Name: "me.png", ContentType: "image/png", Size: 1024})
	loginInput := validation.Values{
		"mobile":   validation.Text("1234567890"),
		"passcode": validation.Text("hunter22"),
	}

	for _, step := range []struct {
		form  *forms.Form
		input validation.Values
	}{
		{generic, genericInput},
		{login, loginInput},
	} {
		result, err := step.form.Submit(context.Background(), step.input)
		if err != nil {
			t.Fatalf("submit %s: %v", step.form.ID(), err)
		}
		if len(result.Errors) != 0 {
			t.Fatalf("%s: expected zero errors, got %v", step.form.ID(), result.Errors)
		}
	}

	if len(rec.calls) != 2 {
		t.Fatalf("expected exactly one call per form, got %d", len(rec.calls))
	}
	if diff := cmp.Diff(genericInput, rec.calls[0].Values); diff != "" {
		t.Fatalf("generic data mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(loginInput, rec.calls[1].Values); diff != "" {
		t.Fatalf("login data mismatch (-want +got):\n%s", diff)
	}
	if rec.calls[1].FormID != forms.LoginFormID {
		t.Fatalf("unexpected form id %q", rec.calls[1].FormID)
	}

	data := forms.DecodeGeneric(rec.calls[0].Values)
	if diff := cmp.Diff([]string{"HTML", "Js"}, data.Technologies); diff != "" {
		t.Fatalf("decoded technologies (-want +got):\n%s", diff)
	}
	if data.Image == nil || data.Image.Name != "me.png" {
		t.Fatalf("decoded image missing: %+v", data.Image)
	}
	if got := forms.DecodeLogin(rec.calls[1].Values); got.Mobile != "1234567890" || got.Passcode != "hunter22" {
		t.Fatalf("unexpected login data %+v", got)
	}
}

func TestSubmitDropsUnknownKeysAndWrapsHandlerErrors(t *testing.T) {
	rec := &recorder{err: errors.New("mobile already registered")}
	login, _ := forms.NewLogin(forms.WithHandler(rec.handle))

	_, err := login.Submit(context.Background(), validation.Values{
		"mobile":   validation.Text("1234567890"),
		"passcode": validation.Text("hunter22"),
		"extra":    validation.Text("ignored"),
	})
	if !errors.Is(err, rec.err) {
		t.Fatalf("expected wrapped handler error, got %v", err)
	}
	if _, ok := rec.calls[0].Values["extra"]; ok {
		t.Fatalf("submission must only carry schema keys")
	}
}

func TestNewRejectsUnboundModelFields(t *testing.T) {
	form := forms.LoginModel()
	form.Fields = append(form.Fields, model.Field{Name: "remember", Input: model.InputCheckbox})

	if _, err := forms.New(form, forms.LoginSchema()); !errors.Is(err, forms.ErrUnboundField) {
		t.Fatalf("expected unbound field error, got %v", err)
	}
}

func TestStateInjectsFilesAndReplacesErrorsWholesale(t *testing.T) {
	rec := &recorder{}
	form := newGeneric(t, rec)
	state := form.NewState()

	state.SetText("name", "")
	state.SetText("email", "a@b.com")
	state.SetText("gender", "female")
	state.SetSelected("technologies", "Python")
	state.SetFile("image", &validation.File{Name: "a.gif", ContentType: "image/gif", Size: 6 * mib})

	if len(state.Errors()) != 0 {
		t.Fatalf("submit mode must not validate on change")
	}

	if _, err := state.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := map[string]string{"name": "Name is required", "image": "Image must be less than 5MB"}
	if diff := cmp.Diff(want, state.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	state.SetText("name", "Ann")
	state.SetFile("image", nil)
	if _, err := state.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(state.Errors()) != 0 {
		t.Fatalf("stale errors survived: %v", state.Errors())
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected one handler call, got %d", len(rec.calls))
	}
}

func TestStateValidatesOnChangeAndBlur(t *testing.T) {
	login, _ := forms.NewLogin(forms.WithMode(validation.ModeChange))
	state := login.NewState()

	state.SetText("mobile", "123")
	if got := state.Errors()["mobile"]; got != "Mobile number must be at least 10 digits" {
		t.Fatalf("expected change validation, got %q", got)
	}
	state.SetText("mobile", "1234567890")
	if _, ok := state.Errors()["mobile"]; ok {
		t.Fatalf("fixed field should clear its error")
	}

	blurForm, _ := forms.NewLogin(forms.WithMode(validation.ModeBlur))
	blurState := blurForm.NewState()
	blurState.SetText("passcode", "1")
	if len(blurState.Errors()) != 0 {
		t.Fatalf("blur mode must not validate on change")
	}
	blurState.Blur("passcode")
	if got := blurState.Errors()["passcode"]; got != "Passcode must be at least 6 characters" {
		t.Fatalf("expected blur validation, got %q", got)
	}
}

func TestLogHandlerLogsData(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	login, _ := forms.NewLogin(forms.WithHandler(forms.LogHandler(zap.New(core))))

	if _, err := login.Submit(context.Background(), validation.Values{
		"mobile":   validation.Text("1234567890"),
		"passcode": validation.Text("hunter22"),
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	entries := logs.FilterMessage("form submitted").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["form"]; got != forms.LoginFormID {
		t.Fatalf("unexpected form field %v", got)
	}
}

func TestRegistry(t *testing.T) {
	registry := forms.NewRegistry()
	login, _ := forms.NewLogin()
	registry.MustRegister(login)

	if err := registry.Register(login); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatalf("expected missing form error")
	}
	got, err := registry.Get(forms.LoginFormID)
	if err != nil || got != login {
		t.Fatalf("unexpected lookup result %v %v", got, err)
	}
	if diff := cmp.Diff([]string{forms.LoginFormID}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}
