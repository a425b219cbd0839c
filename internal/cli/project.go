package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ispapp/sandpad/internal/data"
	"github.com/ispapp/sandpad/internal/logger"
)

type projectOptions struct {
	manifest  string
	normalize bool
	node      string
	setup     bool
}

func newProjectCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &projectOptions{}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print the project descriptor sent to the preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", "", "YAML manifest to build the project from (default: the starter files)")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", false, "Compile <script setup> components with node first")
	cmd.Flags().StringVar(&opts.node, "node", "", "Node executable (overrides the settings)")
	cmd.Flags().BoolVar(&opts.setup, "setup", false, "Include the preview options")

	return cmd
}

func runProject(cmd *cobra.Command, rootFlags *rootFlags, opts *projectOptions) error {
	ws, _, err := openWorkspace(cmd, rootFlags, opts.manifest, opts.normalize, opts.node)
	if err != nil {
		return err
	}

	var payload any = ws.Project(cmd.Context())
	if opts.setup {
		payload = ws.Setup(cmd.Context())
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

// openWorkspace builds an in-memory workspace from a manifest, or from the
// starter files when manifest is empty.
func openWorkspace(cmd *cobra.Command, rootFlags *rootFlags, manifest string, normalize bool, node string) (*data.Workspace, *logger.Logger, error) {
	s, err := readSettings(rootFlags)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cmd.ErrOrStderr(), s, rootFlags)
	if err != nil {
		return nil, nil, err
	}

	ws, err := data.New(s, nil, log)
	if err != nil {
		return nil, nil, err
	}

	dir := ""
	if manifest != "" {
		if err := ws.LoadManifest(manifest); err != nil {
			return nil, nil, err
		}
		dir = filepath.Dir(manifest)
	}

	if normalize {
		n, err := newNormalizer(cmd.Context(), s, node, dir, log)
		if err != nil {
			return nil, nil, err
		}
		ws.Normalizer = n
		s.NormalizeScriptSetup = true
	}
	return ws, log, nil
}
