package sandbox

import (
	"context"
	"io"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/fyne-io/terminal"

	"github.com/ispapp/sandpad/internal/logger"
)

// Sandbox is the preview panel. It forwards its project and options to a
// Client and shows the console output relayed back from the page.
type Sandbox struct {
	widget.BaseWidget

	client  Client
	project Project
	options Options
	log     *logger.Logger

	link    *widget.Hyperlink
	open    *widget.Button
	status  *widget.Label
	console *terminal.Terminal
	out     *io.PipeWriter
}

// New creates a sandbox panel. Nothing is dispatched until Update.
func New(client Client, project Project, options Options) *Sandbox {
	s := &Sandbox{
		client:  client,
		project: project,
		options: options,
		status:  widget.NewLabel("idle"),
		console: terminal.New(),
	}
	s.ExtendBaseWidget(s)

	s.link = widget.NewHyperlink("", nil)
	s.open = widget.NewButtonWithIcon("Open preview", theme.ComputerIcon(), s.OpenPreview)
	s.open.Disable()

	pr, pw := io.Pipe()
	s.out = pw
	go func() {
		if err := s.console.RunWithConnection(nopWriteCloser{}, pr); err != nil {
			s.log.Error(err, "console closed")
		}
	}()
	return s
}

type nopWriteCloser struct{}

func (nopWriteCloser) Write(p []byte) (int, error) { return len(p), nil }
func (nopWriteCloser) Close() error                { return nil }

// SetLogger sets the logger used for dispatch failures.
func (s *Sandbox) SetLogger(l *logger.Logger) {
	s.log = l.With("sandbox")
}

// Console is the writer feeding the console pane.
func (s *Sandbox) Console() io.Writer {
	return s.out
}

// SetURL shows where the preview page is served.
func (s *Sandbox) SetURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	s.link.SetText(raw)
	s.link.SetURL(u)
	if raw == "" {
		s.open.Disable()
	} else {
		s.open.Enable()
	}
	return nil
}

// OpenPreview opens the preview page in the system browser.
func (s *Sandbox) OpenPreview() {
	if s.link.URL == nil || s.link.URL.String() == "" {
		return
	}
	if err := fyne.CurrentApp().OpenURL(s.link.URL); err != nil {
		s.log.Error(err, "failed to open preview")
	}
}

// Project returns the project last handed to the panel.
func (s *Sandbox) Project() Project {
	return s.project
}

// Options returns the preview options.
func (s *Sandbox) Options() Options {
	return s.options
}

// SetProject replaces the project and dispatches it.
func (s *Sandbox) SetProject(ctx context.Context, p Project) error {
	s.project = p
	return s.Update(ctx)
}

// SetOptions replaces the options and dispatches them.
func (s *Sandbox) SetOptions(ctx context.Context, o Options) error {
	s.options = o
	return s.Update(ctx)
}

// Update forwards the current project and options to the client as they are.
func (s *Sandbox) Update(ctx context.Context) error {
	err := s.client.Dispatch(ctx, Setup{Project: s.project, Options: s.options})
	if err != nil {
		s.status.SetText("error: " + err.Error())
		s.log.Error(err, "dispatch failed")
		return err
	}
	s.status.SetText("running")
	return nil
}

// Close stops the console pane.
func (s *Sandbox) Close() error {
	return s.out.Close()
}

// StatusText returns the text of the status line.
func (s *Sandbox) StatusText() string {
	return s.status.Text
}

// CreateRenderer creates the widget renderer.
func (s *Sandbox) CreateRenderer() fyne.WidgetRenderer {
	header := container.NewBorder(nil, nil, s.status, s.open, s.link)
	return widget.NewSimpleRenderer(container.NewBorder(header, nil, nil, nil, s.console))
}
