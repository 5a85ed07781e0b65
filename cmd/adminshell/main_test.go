package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-admin-shell/pkg/renderers/jsonapi"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFormsListsBuiltIns(t *testing.T) {
	out, err := run(t, "forms")
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	for _, fragment := range []string{"generic", "/form", "Form 1: Basic Input", "login", "/login", "Welcome!"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, out)
		}
	}
}

func TestRenderDashboardCollapsed(t *testing.T) {
	out, err := run(t, "render", "dashboard", "--collapsed")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `data-expanded="false"`) {
		t.Fatalf("expected collapsed sidebar:\n%s", out)
	}
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "login.txt")
	if _, err := run(t, "render", "login", "--format", "text", "--output", path); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "Welcome!\n") {
		t.Fatalf("unexpected output:\n%s", data)
	}
}

func TestRenderRejectsUnknownTargets(t *testing.T) {
	if _, err := run(t, "render", "reports"); err == nil {
		t.Fatalf("expected unknown form error")
	}
	if _, err := run(t, "render", "dashboard", "--format", "pdf"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestValidateValidLogin(t *testing.T) {
	out, err := run(t, "validate", "login", "testdata/login-valid.yaml", "--format", "json", "--submit")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	var body jsonapi.Response
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Valid || !body.Submitted {
		t.Fatalf("expected valid submitted response: %+v", body)
	}
	if _, leaked := body.Data["passcode"]; leaked {
		t.Fatalf("passcode must not be echoed")
	}
}

func TestValidateAcceptsNumericYAML(t *testing.T) {
	out, err := run(t, "validate", "login", "testdata/login-numeric.yaml", "--format", "json")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	var body jsonapi.Response
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Valid || len(body.Errors) != 0 {
		t.Fatalf("unquoted digits must validate: %+v", body)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	out, err := run(t, "validate", "generic", "testdata/generic-invalid.yaml", "--format", "json")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	var body jsonapi.Response
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{
		"name":         "Name is required",
		"email":        "Invalid email address",
		"image":        "File must be an image",
		"gender":       "Gender is required",
		"technologies": "Unknown technology selected",
	}
	if diff := cmp.Diff(want, body.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigFlagIsValidated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("forms:\n  mode: eager\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := run(t, "--config", path, "forms"); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestLintDocuments(t *testing.T) {
	if out, err := run(t, "lint", "../../configs/forms.yaml"); err != nil {
		t.Fatalf("lint sample: %v\n%s", err, out)
	}
	out, err := run(t, "lint", "../../internal/openapi/testdata/lint.yaml")
	if !errors.Is(err, errLint) {
		t.Fatalf("expected errLint, got %v", err)
	}
	if !strings.Contains(out, `unsupported extension "x-formgen-theme"`) {
		t.Fatalf("expected violation listing:\n%s", out)
	}
}
