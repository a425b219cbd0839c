// Command demo shows the starter project in the editor next to a live
// preview, without settings or a workspace database.
package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"github.com/ispapp/sandpad/internal/logger"
	"github.com/ispapp/sandpad/pkg/code"
	"github.com/ispapp/sandpad/pkg/files"
	"github.com/ispapp/sandpad/pkg/sandbox"
)

func main() {
	log, err := logger.New(logger.Options{Level: "info", HumanReadable: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	list := files.MustList(files.Defaults()...)
	project := func() sandbox.Project {
		return sandbox.FromFiles(list.Snapshot(), "", nil)
	}

	server := sandbox.NewServer(sandbox.ServerOptions{Log: log})
	if err := server.Listen(); err != nil {
		log.Error(err, "failed to start preview server")
		os.Exit(1)
	}

	box := sandbox.New(server, project(), sandbox.Options{Height: "800px"})
	box.SetLogger(log)
	server.SetConsole(box.Console())
	if err := box.SetURL(server.URL()); err != nil {
		log.Error(err, "invalid preview address")
	}

	editor := code.NewEditor(list, code.MustLookup(code.ThemeLight), func(int, string) {
		if err := box.SetProject(context.Background(), project()); err != nil {
			log.Error(err, "project rejected")
		}
	})

	if err := box.Update(context.Background()); err != nil {
		log.Error(err, "project rejected")
	}

	a := app.New()
	w := a.NewWindow("Basic")
	w.Resize(fyne.NewSize(1280, 900))
	w.SetContent(container.NewHSplit(editor, box))
	w.SetOnClosed(func() {
		_ = server.Shutdown(context.Background())
		_ = box.Close()
	})
	w.ShowAndRun()
}
