package textutil

import "testing"

func TestSanitizeTerminalText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain name", in: "report-2024.pdf", want: "report-2024.pdf"},
		{name: "tab kept", in: "a\tb", want: "a\tb"},
		{name: "escape sequence", in: "bad\x1b[31m\npath", want: "bad?[31m path"},
		{name: "crlf", in: "one\r\ntwo", want: "one  two"},
		{name: "delete and C1 CSI", in: "x\x7fy\u009bz", want: "x?y?z"},
		{name: "bidi override", in: "invoice\u202efdp.exe", want: "invoice⟪RLO⟫fdp.exe"},
		{name: "zero width", in: "a\u200bb\u00adc", want: "a⟪ZWSP⟫b⟪SHY⟫c"},
		{name: "unicode untouched", in: "zażółć gęślą", want: "zażółć gęślą"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTerminalText(tt.in); got != tt.want {
				t.Fatalf("SanitizeTerminalText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
