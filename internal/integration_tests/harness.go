// Package integration_tests runs whole graph files through the application,
// from loading to printed results. Each subdirectory groups one behaviour.
package integration_tests

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/nodegraph/internal/app"
	"github.com/specialistvlad/nodegraph/internal/hcl_adapter"
	"github.com/specialistvlad/nodegraph/internal/testutil"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, cfg app.Config, opts ...app.Option) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, cfg, opts...)
}

// RunIntegrationTestWithContext writes files under a temporary graph
// directory, runs the full application against it and captures results and
// logs separately. cfg.GraphPath is overwritten; LogLevel defaults to debug.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, opts ...app.Option) *HarnessResult {
	t.Helper()

	// 1. Write all HCL files into a fresh graph directory. Names may contain
	//    subdirectories, which are created as needed.
	graphDir := filepath.Join(t.TempDir(), "graph")
	require.NoError(t, os.Mkdir(graphDir, 0o755))
	for name, content := range files {
		filePath := filepath.Join(graphDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	// 2. Configure the app against that directory.
	cfg.GraphPath = graphDir
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logBuffer := &testutil.SafeBuffer{}
	opts = append([]app.Option{app.WithLogWriter(logBuffer)}, opts...)
	testApp := app.New(out, appConfig, hcl_adapter.NewLoader(), opts...)

	// 3. Run it.
	runErr := testApp.Run(ctx)

	if os.Getenv("NODEGRAPH_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
