package sandbox

import (
	"context"
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ispapp/sandpad/pkg/files"
)

type recordingClient struct {
	setups []Setup
	err    error
}

func (c *recordingClient) Dispatch(_ context.Context, setup Setup) error {
	c.setups = append(c.setups, setup)
	return c.err
}

func TestSandboxForwardsVerbatim(t *testing.T) {
	test.NewTempApp(t)

	client := &recordingClient{}
	project := FromFiles(files.Defaults(), DefaultEntry, DefaultDependencies())
	options := Options{Height: "800px"}

	sb := New(client, project, options)
	t.Cleanup(func() { sb.Close() })
	assert.Empty(t, client.setups)

	require.NoError(t, sb.Update(context.Background()))
	require.Len(t, client.setups, 1)
	assert.Equal(t, Setup{Project: project, Options: options}, client.setups[0])
	assert.Equal(t, "running", sb.StatusText())

	next := FromFiles([]files.File{{Name: "main.js", Value: "x"}}, "", nil)
	require.NoError(t, sb.SetProject(context.Background(), next))
	require.Len(t, client.setups, 2)
	assert.Equal(t, next, client.setups[1].Project)
	assert.Equal(t, options, client.setups[1].Options)
}

func TestSandboxReportsDispatchErrors(t *testing.T) {
	test.NewTempApp(t)

	boom := errors.New("boom")
	sb := New(&recordingClient{err: boom}, Project{}, Options{})
	t.Cleanup(func() { sb.Close() })

	require.ErrorIs(t, sb.SetOptions(context.Background(), Options{Height: "1px"}), boom)
	assert.Equal(t, "error: boom", sb.StatusText())
	assert.Equal(t, Options{Height: "1px"}, sb.Options())
}

func TestSandboxURL(t *testing.T) {
	test.NewTempApp(t)

	sb := New(ClientFunc(func(context.Context, Setup) error { return nil }), Project{}, Options{})
	t.Cleanup(func() { sb.Close() })

	assert.True(t, sb.open.Disabled())
	require.NoError(t, sb.SetURL("http://127.0.0.1:8080/"))
	assert.False(t, sb.open.Disabled())
	assert.Equal(t, "http://127.0.0.1:8080/", sb.link.URL.String())
}
