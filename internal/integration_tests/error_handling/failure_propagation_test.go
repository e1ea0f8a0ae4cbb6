package error_handling_test

import (
	"strings"
	"testing"

	"github.com/specialistvlad/nodegraph/internal/app"
	"github.com/specialistvlad/nodegraph/internal/integration_tests"
	"github.com/stretchr/testify/require"
)

// TestErrorHandling_FailureCascades checks that a failing node yields no
// value and that its consumer fails in turn without stopping the run.
func TestErrorHandling_FailureCascades(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	graphHCL := `
		constant "cs" {
			value = "short"
		}
		constant "ci" {
			value = 3
		}
		constant "ce" {
			value = 99
		}
		operation "cut" {
			target = string
			call   = "substring"
			inputs = ["cs", "ci", "ce"]
		}
		operation "loud" {
			target = string
			call   = "upper"
			inputs = ["cut"]
		}
		operation "fine" {
			target = string
			call   = "upper"
			inputs = ["cs"]
		}
	`

	// --- Act ---
	result := integration_tests.RunIntegrationTest(t, map[string]string{"main.hcl": graphHCL}, app.Config{})

	// --- Assert ---
	require.ErrorIs(t, result.Err, app.ErrNoValue)
	require.Contains(t, result.Err.Error(), "1 of 2 nodes")
	require.Equal(t, "loud = (no value)\nfine = \"SHORT\"\n", result.Output)
	require.Equal(t, 2, strings.Count(result.LogOutput, `msg="Node evaluation failed."`))
	require.Contains(t, result.LogOutput, "end 99")
	require.Contains(t, result.LogOutput, "has no value")
}

// TestErrorHandling_OperationWithoutInputs checks that a missing receiver is
// an evaluation failure, not a load failure.
func TestErrorHandling_OperationWithoutInputs(t *testing.T) {
	t.Parallel()

	graphHCL := `
		operation "lonely" {
			target = string
			call   = "upper"
		}
	`

	result := integration_tests.RunIntegrationTest(t, map[string]string{"main.hcl": graphHCL}, app.Config{})

	require.ErrorIs(t, result.Err, app.ErrNoValue)
	require.Equal(t, "lonely = (no value)\n", result.Output)
}
