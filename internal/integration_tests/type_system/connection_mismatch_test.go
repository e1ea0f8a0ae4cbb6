package type_system_test

import (
	"testing"

	"github.com/specialistvlad/nodegraph/internal/app"
	"github.com/specialistvlad/nodegraph/internal/integration_tests"
	"github.com/stretchr/testify/require"
)

// TestTypeSystem_MismatchIsOnlyAWarning checks that wiring a bool into an
// operation that takes no bool warns but still builds, and the edge is kept.
func TestTypeSystem_MismatchIsOnlyAWarning(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	graphHCL := `
		constant "flag" {
			value = true
		}
		constant "ci" {
			value = 2
		}
		operation "m2" {
			target = string
			call   = "substring"
			inputs = ["flag", "ci", "ci"]
		}
	`

	// --- Act ---
	result := integration_tests.RunIntegrationTest(t, map[string]string{"main.hcl": graphHCL}, app.Config{})

	// --- Assert ---
	// The receiver slot gets a bool, so the call itself fails.
	require.ErrorIs(t, result.Err, app.ErrNoValue)
	require.Equal(t, "m2 = (no value)\n", result.Output)
	require.Contains(t, result.LogOutput, "Graph construction successful.")
	require.Contains(t, result.LogOutput, "Graph warning.")
	require.Contains(t, result.LogOutput, "invalid connection: flag (bool) => m2")
}

// TestTypeSystem_MatchingTypesAreSilent checks that a well-typed graph
// produces no connection warnings.
func TestTypeSystem_MatchingTypesAreSilent(t *testing.T) {
	t.Parallel()

	graphHCL := `
		constant "s" {
			value = "abc"
		}
		constant "from" {
			value = "b"
		}
		constant "to" {
			value = "B"
		}
		operation "swapped" {
			target = string
			call   = "replace"
			inputs = ["s", "from", "to"]
		}
	`

	result := integration_tests.RunIntegrationTest(t, map[string]string{"main.hcl": graphHCL}, app.Config{})

	require.NoError(t, result.Err)
	require.Equal(t, "swapped = \"aBc\"\n", result.Output)
	require.NotContains(t, result.LogOutput, "Invalid connection.")
}

// TestTypeSystem_StructuredConstants checks that collection and object
// literals keep their structure through to the output.
func TestTypeSystem_StructuredConstants(t *testing.T) {
	t.Parallel()

	graphHCL := `
		constant "user" {
			value = {
				name = "Ada"
				age  = 36
			}
		}
		constant "tags" {
			value = ["x", "y"]
		}
	`

	result := integration_tests.RunIntegrationTest(t, map[string]string{"main.hcl": graphHCL},
		app.Config{Output: app.OutputJSON})

	require.NoError(t, result.Err)
	require.Equal(t,
		`{"name":"user","type":["object",{"age":"number","name":"string"}],"value":{"age":36,"name":"Ada"}}`+"\n"+
			`{"name":"tags","type":["tuple",["string","string"]],"value":["x","y"]}`+"\n",
		result.Output)
}
