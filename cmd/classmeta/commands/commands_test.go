package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/classmeta/cmd/classmeta/commands"
	"go.trai.ch/classmeta/internal/app"
	"go.trai.ch/classmeta/internal/build"
	"go.trai.ch/classmeta/internal/core/domain"
)

type call struct {
	name    string
	args    []string
	options app.Options
}

type mockApp struct {
	calls []call
	err   error
}

func (m *mockApp) record(name string, args []string, opts app.Options) error {
	m.calls = append(m.calls, call{name: name, args: args, options: opts})
	return m.err
}

func (m *mockApp) Inspect(_ context.Context, class string, opts app.Options) error {
	return m.record("inspect", []string{class}, opts)
}

func (m *mockApp) List(_ context.Context, opts app.Options) error {
	return m.record("list", nil, opts)
}

func (m *mockApp) Warm(_ context.Context, opts app.Options) (domain.WarmStats, error) {
	return domain.WarmStats{}, m.record("warm", nil, opts)
}

func (m *mockApp) Evict(_ context.Context, classes []string, opts app.Options) error {
	return m.record("evict", classes, opts)
}

func (m *mockApp) Clean(_ context.Context, opts app.Options) error {
	return m.record("clean", nil, opts)
}

func (m *mockApp) Watch(_ context.Context, opts app.Options) error {
	return m.record("watch", nil, opts)
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Dispatch(t *testing.T) {
	tests := []struct {
		args []string
		want string
		rest []string
	}{
		{args: []string{"inspect", `App\User`}, want: "inspect", rest: []string{`App\User`}},
		{args: []string{"list"}, want: "list"},
		{args: []string{"warm"}, want: "warm"},
		{args: []string{"evict", "A", "B"}, want: "evict", rest: []string{"A", "B"}},
		{args: []string{"clean"}, want: "clean"},
		{args: []string{"watch"}, want: "watch"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.want, m.calls[0].name)
			assert.Equal(t, tt.rest, m.calls[0].args)
		})
	}
}

func TestCommands_Flags(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m,
			"inspect", "User", "--debug", "--no-cache", "--interfaces=false", "--container", "mergeable", "-o", "plain",
		)
		require.NoError(t, err)

		opts := m.calls[0].options
		assert.True(t, opts.Debug)
		assert.True(t, opts.NoCache)
		require.NotNil(t, opts.IncludeInterfaces)
		assert.False(t, *opts.IncludeInterfaces)
		assert.Equal(t, "mergeable", opts.Container)
		assert.Equal(t, "plain", opts.OutputMode)
	})

	t.Run("defaults leave the configuration alone", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "list")
		require.NoError(t, err)

		opts := m.calls[0].options
		assert.False(t, opts.Debug)
		assert.Nil(t, opts.IncludeInterfaces)
		assert.Empty(t, opts.Container)
		assert.Equal(t, "auto", opts.OutputMode)
	})

	t.Run("json shorthand", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "list", "--json")
		require.NoError(t, err)
		assert.Equal(t, "json", m.calls[0].options.OutputMode)
	})

	t.Run("verbose hook", func(t *testing.T) {
		m := &mockApp{}
		cli := commands.New(m)
		verbose := false
		cli.SetVerboseFunc(func(v bool) { verbose = v })
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"list", "-v"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, verbose)
	})
}

func TestCommands_Errors(t *testing.T) {
	t.Run("returns app error", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "warm")
		require.ErrorContains(t, err, "simulated error")
	})

	t.Run("inspect requires a class", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "inspect")
		require.Error(t, err)
		assert.Empty(t, m.calls)
	})

	t.Run("evict shows usage without classes", func(t *testing.T) {
		m := &mockApp{}
		out, err := execute(t, m, "evict")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
		assert.Empty(t, m.calls)
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "classmeta version "+build.Version)
}
