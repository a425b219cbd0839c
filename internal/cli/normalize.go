package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

type normalizeOptions struct {
	node string
}

func newNormalizeCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &normalizeOptions{}

	cmd := &cobra.Command{
		Use:   "normalize <file.vue>",
		Short: "Rewrite a <script setup> component into a classic one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.node, "node", "", "Node executable (overrides the settings)")

	return cmd
}

func runNormalize(cmd *cobra.Command, rootFlags *rootFlags, opts *normalizeOptions, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read component: %w", err)
	}

	s, err := readSettings(rootFlags)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd.ErrOrStderr(), s, rootFlags)
	if err != nil {
		return err
	}

	n, err := newNormalizer(cmd.Context(), s, opts.node, filepath.Dir(path), log)
	if err != nil {
		return err
	}

	out, err := n.Normalize(cmd.Context(), string(source))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
