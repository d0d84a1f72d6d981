//go:build !windows

package fs

import "testing"

func TestHiddenRules(t *testing.T) {
	rules, err := NewHiddenRules([]string{"*.pyc", " ", "node_modules"})
	if err != nil {
		t.Fatalf("NewHiddenRules: %v", err)
	}

	tests := []struct {
		name   string
		hidden bool
	}{
		{".git", true},
		{"main.pyc", true},
		{"node_modules", true},
		{"main.py", false},
	}
	for _, tt := range tests {
		if got := rules.Hidden(Entry{Name: tt.name, FullPath: "/tmp/" + tt.name}); got != tt.hidden {
			t.Fatalf("Hidden(%q) = %v, want %v", tt.name, got, tt.hidden)
		}
	}
}
