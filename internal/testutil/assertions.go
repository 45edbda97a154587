package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertNodeVisited checks the log output within a HarnessResult to confirm
// that the composition node at path was flattened with the given prefix.
func AssertNodeVisited(t *testing.T, result *HarnessResult, path, prefix string) {
	t.Helper()

	line := "path=" + path + " prefix=" + prefix + " "
	require.True(t,
		strings.Contains(result.LogOutput, line),
		"expected log output for node %q with prefix %q was not found in logs", path, prefix,
	)
}

// AssertNoDiagnostics fails when the run reported any diagnostic.
func AssertNoDiagnostics(t *testing.T, result *HarnessResult) {
	t.Helper()

	require.NotNil(t, result.Report, "run failed: %v", result.Err)
	require.Empty(t, result.Report.Diagnostics)
}
