package adminshell_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	adminshell "github.com/goliatone/go-admin-shell"
)

func TestAssetsFSExposesStylesheet(t *testing.T) {
	if _, err := fs.Stat(adminshell.AssetsFS(), "adminshell.css"); err != nil {
		t.Fatalf("expected stylesheet, got %v", err)
	}
	if _, err := fs.Stat(adminshell.EmbeddedTemplates(), "layout.tmpl"); err != nil {
		t.Fatalf("expected layout template, got %v", err)
	}
}

func TestRenderDashboard(t *testing.T) {
	out, err := adminshell.RenderHTML(context.Background(), adminshell.Dashboard(false))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `data-expanded="false"`) {
		t.Fatalf("expected collapsed dashboard:\n%s", out)
	}
}

func TestLoadForms(t *testing.T) {
	loaded, err := adminshell.LoadForms(context.Background(), "configs/forms.yaml")
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID() != "device" {
		t.Fatalf("unexpected forms %v", loaded)
	}
	result := loaded[0].Validate(nil)
	if got := result.Error("serial"); got != "Serial must be at least 8 characters" {
		t.Fatalf("serial message: %q", got)
	}
	if got := result.Error("owners"); got != "Select at least one owning team" {
		t.Fatalf("owners message: %q", got)
	}
	if got := result.Error("kind"); got != "Kind is required" {
		t.Fatalf("kind message: %q", got)
	}
	if result.Error("label") != "" || result.Error("manual") != "" {
		t.Fatalf("optional fields must pass when absent: %v", result.Errors)
	}
}
