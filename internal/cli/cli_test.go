package cli

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/nodegraph/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want *app.Config
	}{
		{
			name: "positional path with defaults",
			args: []string{"graph.hcl"},
			want: &app.Config{GraphPath: "graph.hcl", Output: "text", LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "long flag wins over shorthand and positional",
			args: []string{"-graph", "a.hcl", "-g", "b.hcl", "c.hcl"},
			want: &app.Config{GraphPath: "a.hcl", Output: "text", LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "shorthand wins over positional",
			args: []string{"-g", "b.hcl", "c.hcl"},
			want: &app.Config{GraphPath: "b.hcl", Output: "text", LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "repeated and comma separated nodes",
			args: []string{"-node", "m2", "-node", "ci, ce", "graph.hcl"},
			want: &app.Config{GraphPath: "graph.hcl", Nodes: []string{"m2", "ci", "ce"}, Output: "text", LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "values are case insensitive",
			args: []string{"-output", "JSON", "-log-format", "Json", "-log-level", "DEBUG", "graph.hcl"},
			want: &app.Config{GraphPath: "graph.hcl", Output: "json", LogFormat: "json", LogLevel: "debug"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			got, shouldExit, err := Parse(tc.args, out)
			require.NoError(t, err)
			assert.False(t, shouldExit)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_ShouldExit(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {}} {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(args, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown flag", []string{"-nope", "graph.hcl"}, "flag provided but not defined: -nope"},
		{"empty node", []string{"-node", "a,,b", "graph.hcl"}, "empty node name"},
		{"bad output", []string{"-output", "yaml", "graph.hcl"}, "invalid output"},
		{"bad log format", []string{"-log-format", "xml", "graph.hcl"}, "invalid log format"},
		{"bad log level", []string{"-log-level", "loud", "graph.hcl"}, "invalid log level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			assert.False(t, shouldExit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
