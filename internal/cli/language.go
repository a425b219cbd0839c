package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ispapp/sandpad/pkg/code"
)

func newLanguageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "language <type>...",
		Short: "Show the highlighting language used for file types",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, fileType := range args {
				fmt.Fprintf(writer, "%s\t%s\n", fileType, code.ResolveLanguage(fileType))
			}
			return writer.Flush()
		},
	}
}
