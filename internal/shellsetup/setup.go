// Package shellsetup prints the shell function that changes the calling
// shell's directory to wherever vfm was when it exited, and writes the result
// file that function reads.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// FunctionName names the shell function; the result file shares its prefix.
const FunctionName = "vfm"

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable overrides os.Executable in the printed snippet.
	Executable string
}

// ResultPath is the file the shell function reads after vfm with the given
// pid has exited.
func ResultPath(pid int) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s_result_%d.txt", FunctionName, pid))
}

// WriteResult records dir for the shell function of the current process.
func WriteResult(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.WriteFile(ResultPath(os.Getpid()), []byte(dir), 0o600); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}

// PrintSetup writes the snippet for shellOverride, or for the detected shell
// when shellOverride is empty.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(parent)
	}
	shell = canonicalShellName(shell)

	exe := cfg.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			exe = FunctionName
		}
	}

	_, err := io.WriteString(w, snippet(shell, strconv.Quote(exe)))
	return err
}

func snippet(shell, quoted string) string {
	format := posixSnippet
	switch shell {
	case "fish":
		format = fishSnippet
	case "pwsh":
		format = pwshSnippet
	case "tcsh", "csh":
		format = cshSnippet
	case "cmd":
		format = cmdSnippet
	}
	return fmt.Sprintf(format, FunctionName, quoted)
}

const posixSnippet = `%[1]s() {
    if [ "$#" -gt 0 ]; then
        command %[2]s "$@"
        return $?
    fi

    command %[2]s &
    %[1]s_pid=$!
    wait $%[1]s_pid

    result_file="${TMPDIR:-/tmp}/%[1]s_result_$%[1]s_pid.txt"
    if [ -f "$result_file" ] && [ ! -L "$result_file" ] && [ -O "$result_file" ]; then
        dest=$(cat "$result_file" 2>/dev/null)
        rm -f "$result_file"
        if [ -d "$dest" ] 2>/dev/null; then
            cd "$dest"
        fi
    else
        rm -f "$result_file" 2>/dev/null
    fi
}
`

const cshSnippet = "alias %[1]s 'cd `%[2]s`'\n"

const fishSnippet = `function %[1]s
    if test (count $argv) -gt 0
        command %[2]s $argv
        return $status
    end

    command %[2]s &
    set %[1]s_pid $last_pid
    wait $%[1]s_pid

    set tmp $TMPDIR
    test -z "$tmp"; and set tmp /tmp
    set result_file "$tmp/%[1]s_result_$%[1]s_pid.txt"
    if test -f "$result_file" -a ! -L "$result_file" -a -O "$result_file"
        set dest (cat "$result_file" 2>/dev/null)
        if test -d "$dest" 2>/dev/null
            builtin cd "$dest"
        end
    end
    rm -f "$result_file" 2>/dev/null
end
`

const pwshSnippet = `function %[1]s {
    param([Parameter(ValueFromRemainingArguments=$true)][string[]]$Args)
    if ($Args.Count -gt 0) {
        & %[2]s @Args
        return
    }

    $process = Start-Process -FilePath %[2]s -NoNewWindow -PassThru
    $process.WaitForExit()

    $resultFile = Join-Path $env:TEMP "%[1]s_result_$($process.Id).txt"
    try {
        if (Test-Path $resultFile -PathType Leaf) {
            $dest = Get-Content $resultFile -Raw -ErrorAction SilentlyContinue | ForEach-Object { $_.Trim() }
            if ((Test-Path $dest -PathType Container) -and -not [string]::IsNullOrEmpty($dest)) {
                Set-Location $dest
            }
        }
    } finally {
        Remove-Item $resultFile -ErrorAction SilentlyContinue
    }
}
`

const cmdSnippet = `:: Save as %[1]s.cmd and run "call %[1]s.cmd" from cmd.exe sessions.
@echo off
if "%%~1"==""
(
    for /f "delims=" %%%%d in ('%[2]s') do (
        if not "%%%%d"=="" cd /d "%%%%d"
    )
    exit /b 0
) else (
    %[2]s %%*
    exit /b %%errorlevel%%
)
`

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell != "" {
			switch shell {
			case "pwsh", "cmd":
				return shell
			}
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	case "-bash", "-zsh", "-sh":
		// login shells report a leading dash in their process name
		return strings.TrimPrefix(name, "-")
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = extractExecutable(strings.TrimSpace(value))
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := strings.ToLower(path.Base(value))
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	if value == "" {
		return ""
	}

	for _, quote := range []string{`"`, `'`} {
		if strings.HasPrefix(value, quote) {
			value = value[1:]
			if idx := strings.Index(value, quote); idx >= 0 {
				return value[:idx]
			}
			return value
		}
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}
	return value
}
