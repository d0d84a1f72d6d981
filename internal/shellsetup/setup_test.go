package shellsetup

import (
	"bytes"
	"os"
	"runtime"
	"strings"
	"testing"
)

func TestDetectShellInternal(t *testing.T) {
	tests := []struct {
		name          string
		goos          string
		envShell      string
		envComspec    string
		parent        func() string
		expectedShell string
	}{
		{
			name:          "uses SHELL when set",
			goos:          "linux",
			envShell:      "/bin/zsh",
			expectedShell: "zsh",
		},
		{
			name:          "falls back to parent shell",
			goos:          "linux",
			parent:        func() string { return "/usr/bin/bash" },
			expectedShell: "bash",
		},
		{
			name:          "login shell parent",
			goos:          "darwin",
			parent:        func() string { return "-zsh" },
			expectedShell: "zsh",
		},
		{
			name:          "windows prefers COMSPEC",
			goos:          "windows",
			envComspec:    `C:\Windows\System32\cmd.exe`,
			expectedShell: "cmd",
		},
		{
			name:          "windows fallback",
			goos:          "windows",
			expectedShell: "pwsh",
		},
		{
			name:          "unix fallback",
			goos:          "linux",
			parent:        func() string { return "" },
			expectedShell: "bash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := func(key string) string {
				switch key {
				case "SHELL":
					return tt.envShell
				case "COMSPEC":
					return tt.envComspec
				default:
					return ""
				}
			}
			got := detectShellInternal(tt.goos, env, tt.parent)
			if got != tt.expectedShell {
				t.Fatalf("detectShellInternal() = %q, want %q", got, tt.expectedShell)
			}
		})
	}
}

func TestNormalizeShellName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/bin/bash", want: "bash"},
		{in: `"C:\Program Files\PowerShell\pwsh.exe"`, want: "pwsh"},
		{in: "'/usr/local/bin/fish' -l", want: "fish"},
		{in: "zsh --login", want: "zsh"},
		{in: "PowerShell.EXE", want: "powershell"},
	}
	for _, tt := range tests {
		if got := normalizeShellName(tt.in); got != tt.want {
			t.Fatalf("normalizeShellName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintSetupSnippets(t *testing.T) {
	tests := []struct {
		shell    string
		contains []string
	}{
		{shell: "bash", contains: []string{"vfm() {", `command "/opt/vfm" &`, "vfm_result_$vfm_pid.txt"}},
		{shell: "zsh", contains: []string{"vfm() {"}},
		{shell: "fish", contains: []string{"function vfm", "set vfm_pid $last_pid"}},
		{shell: "powershell", contains: []string{"function vfm {", `"vfm_result_$($process.Id).txt"`}},
		{shell: "cmd", contains: []string{"vfm.cmd", `%~1`, `%%d`}},
		{shell: "tcsh", contains: []string{"alias vfm 'cd `\"/opt/vfm\"`'"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			err := PrintSetup(&buf, tt.shell, Config{
				DetectParent: func() string { return "" },
				Executable:   "/opt/vfm",
			})
			if err != nil {
				t.Fatalf("PrintSetup: %v", err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Fatalf("snippet for %s missing %q:\n%s", tt.shell, want, out)
				}
			}
			if strings.Contains(out, "%!") {
				t.Fatalf("snippet for %s has a formatting error:\n%s", tt.shell, out)
			}
		})
	}
}

func TestWriteResult(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	dir := t.TempDir()

	if err := WriteResult(dir); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}
	path := ResultPath(os.Getpid())
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	if string(data) != dir {
		t.Fatalf("expected %q in result file, got %q", dir, data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected mode 0600, got %v", perm)
	}
}

func TestWriteResultSkipsEmptyDir(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	if err := WriteResult(""); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}
	if _, err := os.Stat(ResultPath(os.Getpid())); !os.IsNotExist(err) {
		t.Fatalf("expected no result file, got %v", err)
	}
}

func TestResultPathMatchesSnippet(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("os.TempDir ignores TMPDIR on windows")
	}
	t.Setenv("TMPDIR", "/tmp")
	if got := ResultPath(42); got != "/tmp/"+FunctionName+"_result_42.txt" {
		t.Fatalf("ResultPath(42) = %q", got)
	}

	var buf bytes.Buffer
	if err := PrintSetup(&buf, "bash", Config{Executable: "/opt/vfm"}); err != nil {
		t.Fatalf("PrintSetup: %v", err)
	}
	if want := "/" + FunctionName + "_result_$" + FunctionName + "_pid.txt"; !strings.Contains(buf.String(), want) {
		t.Fatalf("posix snippet does not read %q:\n%s", want, buf.String())
	}
}
