// Package cli implements the sandpad command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ispapp/sandpad/internal/data"
	"github.com/ispapp/sandpad/internal/database"
	"github.com/ispapp/sandpad/internal/logger"
	"github.com/ispapp/sandpad/internal/settings"
	"github.com/ispapp/sandpad/pkg/sfc"
)

// Launcher opens the desktop window for a prepared workspace and blocks
// until it is closed.
type Launcher func(ctx context.Context, ws *data.Workspace, log *logger.Logger) error

type rootFlags struct {
	settingsPath string
	verbose      bool
}

// NewRootCmd builds the sandpad command tree. Running it without a
// subcommand prepares the workspace and hands it to launch.
func NewRootCmd(launch Launcher) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "sandpad",
		Short:         "Themed code editor with a live Vue preview",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if launch == nil {
				return cmd.Help()
			}
			return runGUI(cmd, flags, launch)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.settingsPath, "settings", "", "Settings file (default ~/.sandpad/settings.json)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newThemesCmd())
	cmd.AddCommand(newLanguageCmd())
	cmd.AddCommand(newNormalizeCmd(flags))
	cmd.AddCommand(newProjectCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newHighlightCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runGUI(cmd *cobra.Command, flags *rootFlags, launch Launcher) error {
	if flags.settingsPath != "" {
		settings.SetPath(flags.settingsPath)
	}
	if err := settings.Initialize(); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	s := settings.Current
	if err := s.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cmd.ErrOrStderr(), s, flags)
	if err != nil {
		return err
	}

	db, err := database.New(s.DatabasePath, log)
	if err != nil {
		return err
	}
	defer db.Close()

	ws, err := data.New(s, nil, log)
	if err != nil {
		return err
	}
	ws.Store = db
	if _, err := ws.Load(); err != nil {
		log.Error(err, "failed to restore workspace, starting from defaults")
	}

	if s.NormalizeScriptSetup {
		n, err := newNormalizer(cmd.Context(), s, "", "", log)
		if err != nil {
			log.Warn("script setup components are sent as written: " + err.Error())
		} else {
			ws.Normalizer = n
		}
	}

	return launch(cmd.Context(), ws, log)
}

// readSettings loads the settings file without creating it. A missing file
// yields the defaults.
func readSettings(flags *rootFlags) (*settings.AppSettings, error) {
	path := flags.settingsPath
	if path == "" {
		path = settings.Path()
	}

	s := settings.DefaultSettings()
	if _, err := os.Stat(path); err == nil {
		s, err = settings.Read(path)
		if err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func newLogger(w io.Writer, s *settings.AppSettings, flags *rootFlags) (*logger.Logger, error) {
	level := s.LogLevel
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: w})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// newNormalizer returns a normalizer backed by node. dir is where the
// compiler package is resolved from; node overrides the configured
// executable when set.
func newNormalizer(ctx context.Context, s *settings.AppSettings, node, dir string, log *logger.Logger) (*sfc.Normalizer, error) {
	if node == "" {
		node = s.NodePath
	}
	compiler := &sfc.NodeCompiler{
		NodePath:    node,
		Dir:         dir,
		NodeModules: s.NodeModules,
		Log:         log,
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := compiler.Available(ctx); err != nil {
		return nil, err
	}
	return sfc.New(compiler), nil
}
