package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Scenarios(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		scenario, err := LoadScenario(file)
		require.NoError(t, err)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestCompareGolden(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/currency_filter.yaml")
	require.NoError(t, err)
	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)

	// Checked-in golden matches.
	require.NoError(t, CompareGolden("testdata/golden", scenario.Name, result, false))

	// Update writes a fresh file that then compares equal.
	dir := t.TempDir()
	require.NoError(t, CompareGolden(dir, scenario.Name, result, true))
	require.NoError(t, CompareGolden(dir, scenario.Name, result, false))

	// A different trace mismatches.
	result.Trace = result.Trace[:1]
	err = CompareGolden(dir, scenario.Name, result, false)
	var mismatch *GoldenMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, filepath.Join(dir, "currency_filter.golden"), mismatch.Path)
}

func TestCompareGolden_MissingFile(t *testing.T) {
	err := CompareGolden(t.TempDir(), "absent", NewResult(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read golden file")
}
