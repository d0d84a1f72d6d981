package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/vfm/internal/app"
	"github.com/kk-code-lab/vfm/internal/config"
	"github.com/kk-code-lab/vfm/internal/fs"
	"github.com/kk-code-lab/vfm/internal/keymap"
	"github.com/kk-code-lab/vfm/internal/markers"
	"github.com/kk-code-lab/vfm/internal/shellsetup"
)

// setupAuto is the --setup value when no shell is named.
const setupAuto = "auto"

var parentShellDetector = shellsetup.DetectParentShellName

type rootOptions struct {
	configPath    string
	setup         string
	logFile       string
	checkMismatch bool
}

// NewRootCmd creates the vfm command.
func NewRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "vfm [DIR]",
		Short: "Terminal file manager",
		Long: `vfm browses directories in three panes: parent, current and preview.

With --setup it prints a shell function named vfm that changes the calling
shell to the directory vfm was showing when it exited. Name the shell after
the flag (--setup zsh) to override detection.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("setup") {
				shell := opts.setup
				if shell == setupAuto {
					shell = ""
					if len(args) > 0 {
						shell = args[0]
					}
				}
				return shellsetup.PrintSetup(cmd.OutOrStdout(), shell, shellsetup.Config{DetectParent: parentShellDetector})
			}
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is <config dir>/vfm/config.toml)")
	flags.StringVarP(&opts.setup, "setup", "s", "", "print the shell integration function, optionally for SHELL")
	flags.Lookup("setup").NoOptDefVal = setupAuto
	flags.StringVar(&opts.logFile, "log-file", "", "log file (default is <cache dir>/vfm/vfm.log)")
	flags.BoolVar(&opts.checkMismatch, "check-mismatch", false, "warn when file content disagrees with its extension")

	return cmd
}

func run(cmd *cobra.Command, opts rootOptions, args []string) error {
	// UTF-8 fallback keeps non-ASCII names readable on terminals with an
	// unknown encoding.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	dir, err := startDir(args)
	if err != nil {
		return err
	}

	logPath := opts.logFile
	if logPath == "" {
		logPath = apppkg.DefaultLogPath()
	}
	log, closeLog, logErr := apppkg.NewLogger(logPath, os.Getenv("VFM_DEBUG") == "1")
	defer closeLog()
	if logErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", logErr)
	}

	cfg, keys, hidden := loadSettings(opts, log)

	markersPath := cfg.MarkersFile
	if markersPath == "" {
		markersPath = markers.DefaultPath()
	}
	store := markers.Load(markersPath, log)

	app, err := apppkg.NewApplication(apppkg.Options{
		Dir:     dir,
		Config:  cfg,
		Keys:    keys,
		Markers: store,
		Hidden:  hidden,
		Log:     log,
	})
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	app.Run()
	_ = app.Close()
	store.Wait()

	if err := shellsetup.WriteResult(app.CurrentDir()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	return nil
}

func startDir(args []string) (string, error) {
	if len(args) == 0 {
		return os.Getwd()
	}
	dir, err := filepath.Abs(args[0])
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}
	return dir, nil
}

// loadSettings never fails: every problem is logged and the affected part
// falls back to its defaults.
func loadSettings(opts rootOptions, log logrus.FieldLogger) (*config.Config, *keymap.Map, fs.HiddenRules) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		entry := log.WithError(err)
		if errors.Is(err, config.ErrMissing) {
			entry.Warn("config file missing, using defaults")
		} else {
			entry.Warn("cannot load config, using defaults")
		}
	} else if cfg.Path != "" {
		log.WithField("path", cfg.Path).Debug("config loaded")
	}
	if opts.checkMismatch {
		cfg.CheckMismatch = true
	}

	keys, err := keymap.Build(keyOverrides(cfg.Keys))
	if err != nil {
		log.WithError(err).Warn("ignoring invalid key bindings")
	}

	hidden, err := fs.NewHiddenRules(cfg.HiddenPatterns)
	if err != nil {
		log.WithError(err).Warn("ignoring invalid hidden pattern")
	}
	return cfg, keys, hidden
}

func keyOverrides(keys map[string]map[string]config.Bindings) map[string]map[string][]string {
	if len(keys) == 0 {
		return nil
	}
	out := make(map[string]map[string][]string, len(keys))
	for ctx, actions := range keys {
		m := make(map[string][]string, len(actions))
		for action, bindings := range actions {
			m[action] = []string(bindings)
		}
		out[ctx] = m
	}
	return out
}
