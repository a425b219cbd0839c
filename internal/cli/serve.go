package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ispapp/sandpad/pkg/sandbox"
)

type serveOptions struct {
	manifest  string
	addr      string
	normalize bool
	node      string
}

func newServeCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the preview page for a project without opening the editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", "", "YAML manifest to serve (default: the starter files)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (overrides the settings)")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", false, "Compile <script setup> components with node first")
	cmd.Flags().StringVar(&opts.node, "node", "", "Node executable (overrides the settings)")

	return cmd
}

func runServe(cmd *cobra.Command, rootFlags *rootFlags, opts *serveOptions) error {
	ws, log, err := openWorkspace(cmd, rootFlags, opts.manifest, opts.normalize, opts.node)
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = ws.Settings.PreviewAddr
	}

	server := sandbox.NewServer(sandbox.ServerOptions{
		Addr:    addr,
		Console: cmd.OutOrStdout(),
		Log:     log,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Dispatch(ctx, ws.Setup(ctx)); err != nil {
		return err
	}
	if err := server.Listen(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Preview available at %s\n", server.URL())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
