package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Fixtures(t *testing.T) {
	for _, name := range []string{"currency_filter", "validation_and_lookup"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			assert.NotEmpty(t, s.Steps)
		})
	}
}

func TestLoadScenario_ParsesFilterAsOptional(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/currency_filter.yaml")
	require.NoError(t, err)

	require.NotNil(t, s.Steps[2].Filter)
	assert.Equal(t, "eur", *s.Steps[2].Filter)
	assert.Nil(t, s.Steps[3].Filter)
	require.NotNil(t, s.Steps[3].Expect.Count)
	assert.Equal(t, 3, *s.Steps[3].Expect.Count)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing name",
			yaml:    "description: d\nsteps: [{op: list}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: n\nsteps: [{op: list}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: n\ndescription: d\n",
			wantErr: "steps list is required",
		},
		{
			name:    "unknown op",
			yaml:    "name: n\ndescription: d\nsteps: [{op: delete}]\n",
			wantErr: `unknown op "delete"`,
		},
		{
			name:    "get without id",
			yaml:    "name: n\ndescription: d\nsteps: [{op: get}]\n",
			wantErr: "get requires id",
		},
		{
			name:    "validation_error without field",
			yaml:    "name: n\ndescription: d\nsteps: [{op: create, expect: {outcome: validation_error}}]\n",
			wantErr: "requires field",
		},
		{
			name:    "unknown outcome",
			yaml:    "name: n\ndescription: d\nsteps: [{op: list, expect: {outcome: maybe}}]\n",
			wantErr: `unknown outcome "maybe"`,
		},
		{
			name:    "order without names",
			yaml:    "name: n\ndescription: d\nsteps: [{op: list}]\nassertions: [{type: order}]\n",
			wantErr: "order requires names",
		},
		{
			name:    "unknown field",
			yaml:    "name: n\ndescription: d\nsteps: [{op: list}]\nassertion: []\n",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
