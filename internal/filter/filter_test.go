package filter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var sample = []string{"A", "a.txt", "b.txt", "README.md", "main.go"}

func visibleFor(query string) []int {
	q := Compile(query)
	return Indices(len(sample), func(i int) bool { return q.Match(sample[i]) })
}

func TestCompileMatching(t *testing.T) {
	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{0, 1, 2, 3, 4}},
		{"   ", []int{0, 1, 2, 3, 4}},
		{"TXT", []int{1, 2}},
		{`\.go$`, []int{4}},
		{"^[ab]\\.", []int{1, 2}},
		{"readme", []int{3}},
		{"(", nil},
		{"a(", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := visibleFor(tt.query)
			if len(tt.want) == 0 && len(got) == 0 {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("query %q mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestInvalidRegexFallsBackToLiteral(t *testing.T) {
	names := []string{"plain", "weird(name", "other"}
	q := Compile("d(n")
	got := Indices(len(names), func(i int) bool { return q.Match(names[i]) })
	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Fatalf("literal fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestClearingFilterRestoresOrder(t *testing.T) {
	filtered := visibleFor("txt")
	if len(filtered) != 2 {
		t.Fatalf("expected filtered subset, got %v", filtered)
	}
	restored := visibleFor("")
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4}, restored); diff != "" {
		t.Fatalf("cleared filter mismatch (-want +got):\n%s", diff)
	}
}

func TestAnchor(t *testing.T) {
	key := func(i int) string { return sample[i] }
	if got := Anchor([]int{1, 2, 4}, key, "main.go"); got != 2 {
		t.Fatalf("Anchor kept = %d, want 2", got)
	}
	if got := Anchor([]int{1, 2}, key, "main.go"); got != 0 {
		t.Fatalf("Anchor missing = %d, want 0", got)
	}
	if got := Anchor(nil, key, "main.go"); got != 0 {
		t.Fatalf("Anchor empty = %d, want 0", got)
	}
}

type named struct{ name, path string }

func TestListFollowsSelection(t *testing.T) {
	l := NewList(func(n named) string { return n.name }, func(n named, q string) bool {
		return strings.Contains(n.name, strings.ToLower(strings.TrimSpace(q)))
	})
	l.SetItems([]named{{"docs", "/d"}, {"home", "/h"}, {"hosts", "/etc"}}, "")
	l.Move(1)
	if got, _ := l.Selected(); got.name != "home" {
		t.Fatalf("selected %q, want home", got.name)
	}

	l.SetQuery("ho")
	if got, _ := l.Selected(); got.name != "home" {
		t.Fatalf("selection lost after filtering: %q", got.name)
	}
	if l.SelectedIndex() != 0 {
		t.Fatalf("selected index %d, want 0", l.SelectedIndex())
	}

	l.SetQuery("zzz")
	if _, ok := l.Selected(); ok || l.SelectedIndex() != 0 {
		t.Fatalf("expected empty selection at 0, got %d", l.SelectedIndex())
	}

	l.SetQuery("")
	if len(l.Visible()) != 3 {
		t.Fatalf("expected all items visible, got %d", len(l.Visible()))
	}
}

func TestListMoveClamps(t *testing.T) {
	l := NewList(func(s string) string { return s }, func(s, q string) bool { return strings.Contains(s, q) })
	l.SetItems([]string{"a", "b"}, "")
	l.Move(-5)
	if l.SelectedIndex() != 0 {
		t.Fatalf("move up clamp = %d", l.SelectedIndex())
	}
	l.Move(10)
	if l.SelectedIndex() != 1 {
		t.Fatalf("move down clamp = %d", l.SelectedIndex())
	}
}
