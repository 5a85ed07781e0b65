package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-admin-shell/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.SidebarState(false),
		render.RequestToken("token123"),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"expanded": "false",
		"_token":   "token123",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_token", Value: "token123"},
		{Name: "expanded", Value: "false"},
		{Name: "existing", Value: "keep"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExpanded(t *testing.T) {
	cases := map[string]bool{
		"true":  true,
		"false": false,
		" 0 ":   false,
		"":      true,
		"maybe": true,
	}
	for raw, want := range cases {
		if got := render.ParseExpanded(raw); got != want {
			t.Errorf("ParseExpanded(%q) = %v, want %v", raw, got, want)
		}
	}
}
