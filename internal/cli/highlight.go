package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ispapp/sandpad/pkg/code"
	"github.com/ispapp/sandpad/pkg/files"
)

type highlightOptions struct {
	theme  string
	output string
}

func newHighlightCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &highlightOptions{}

	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Export a source file as highlighted HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, rootFlags, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "Theme name (default: the configured theme)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the HTML to a file instead of stdout")

	return cmd
}

func runHighlight(cmd *cobra.Command, rootFlags *rootFlags, opts *highlightOptions, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	var t code.Theme
	if opts.theme != "" {
		t, err = code.Lookup(code.ThemeName(opts.theme))
		if err != nil {
			return fmt.Errorf("%w: %q", err, opts.theme)
		}
	} else {
		s, err := readSettings(rootFlags)
		if err != nil {
			return err
		}
		if t, err = s.LoadTheme(); err != nil {
			return err
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return code.HighlightHTML(w, string(source), files.TypeFromName(path), t)
}
