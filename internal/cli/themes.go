package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/ispapp/sandpad/internal/dialogs"
	"github.com/ispapp/sandpad/pkg/code"
)

type themesOptions struct {
	css   string
	scope string
}

func newThemesCmd() *cobra.Command {
	opts := &themesOptions{}

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the predefined editor themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.css != "" {
				return runThemeCSS(cmd, opts)
			}
			return runThemes(cmd)
		},
	}

	cmd.Flags().StringVar(&opts.css, "css", "", "Print the editor stylesheet of the named theme")
	cmd.Flags().StringVar(&opts.scope, "scope", ".sandpad-editor", "Selector the stylesheet is scoped to")

	return cmd
}

var themeNameStyle = lipgloss.NewStyle().Bold(true)

func runThemes(cmd *cobra.Command) error {
	for _, name := range code.ThemeNames() {
		t := code.MustLookup(name)

		var swatch strings.Builder
		for _, c := range dialogs.SwatchColors(t) {
			cf, ok := colorful.MakeColor(c)
			if !ok {
				swatch.WriteString("  ")
				continue
			}
			swatch.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(cf.Hex())).Render("  "))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", themeNameStyle.Render(fmt.Sprintf("%-14s", name)), swatch.String(), t.Palette.Accent)
	}
	return nil
}

func runThemeCSS(cmd *cobra.Command, opts *themesOptions) error {
	t, err := code.Lookup(code.ThemeName(opts.css))
	if err != nil {
		return fmt.Errorf("%w: %q", err, opts.css)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), code.EditorChrome(t).CSS(opts.scope))
	return err
}
