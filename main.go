package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/ispapp/sandpad/internal/cli"
	"github.com/ispapp/sandpad/internal/data"
	"github.com/ispapp/sandpad/internal/logger"
	"github.com/ispapp/sandpad/internal/ui"
)

func main() {
	if err := cli.NewRootCmd(launch).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func launch(_ context.Context, ws *data.Workspace, log *logger.Logger) error {
	a := app.NewWithID("co.ispapp.sandpad")

	mainUI, err := ui.NewMainUI(a, ws, log)
	if err != nil {
		return err
	}

	// Show and run the application
	mainUI.Window.ShowAndRun()
	return nil
}
