package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/itemstore/internal/record"
)

const seedFile = "testdata/items.yaml"

// decodeRecords unmarshals a JSON CLIResponse whose data is a record list.
func decodeRecords(t *testing.T, stdout string) []record.Record {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   []record.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func decodeRecord(t *testing.T, stdout string) record.Record {
	t.Helper()
	var resp struct {
		Status string        `json:"status"`
		Data   record.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestCreateCommand(t *testing.T) {
	stdout, _, code := runCLI(t,
		"--seed", seedFile, "--id-strategy", "sequence", "--format", "json",
		"create", "--name", "Widget", "--category", "GBP",
	)
	require.Equal(t, ExitSuccess, code)

	rec := decodeRecord(t, stdout)
	assert.Equal(t, record.Record{ID: "item-3", Name: "Widget", Category: "GBP", Seq: 4}, rec)
}

func TestCreateCommand_UUID(t *testing.T) {
	stdout, _, code := runCLI(t, "--format", "json", "create", "--name", "Widget", "--category", "GBP")
	require.Equal(t, ExitSuccess, code)

	rec := decodeRecord(t, stdout)
	assert.Len(t, rec.ID, 36)
	assert.Equal(t, int64(1), rec.Seq)
}

func TestCreateCommand_Validation(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"missing name", []string{"create", "--category", "EUR"}, "invalid name"},
		{"blank name", []string{"create", "--name", "   ", "--category", "EUR"}, "invalid name"},
		{"missing category", []string{"create", "--name", "Widget"}, "invalid category"},
		{"tab category", []string{"create", "--name", "Widget", "--category", "\t"}, "invalid category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runCLI(t, tt.args...)
			assert.Equal(t, ExitFailure, code)
			assert.Contains(t, stderr, "Error [E004]")
			assert.Contains(t, stderr, tt.field)
		})
	}
}

func TestCreateCommand_Direct(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{}
	rootOpts.Config.IDStrategy = "sequence"
	cmd := NewCreateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--name", "Widget", "--category", "GBP"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "item-1")
	assert.Contains(t, buf.String(), "Widget")
}

func TestGetCommand(t *testing.T) {
	stdout, _, code := runCLI(t, "--seed", seedFile, "--format", "json", "get", "seed-eur")
	require.Equal(t, ExitSuccess, code)

	rec := decodeRecord(t, stdout)
	assert.Equal(t, record.Record{ID: "seed-eur", Name: "Euro notes", Category: "EUR", Seq: 1}, rec)
}

func TestGetCommand_NotFound(t *testing.T) {
	stdout, _, code := runCLI(t, "--seed", seedFile, "--format", "json", "get", "missing")
	assert.Equal(t, ExitFailure, code)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "record not found: missing", resp.Error.Message)
}

func TestGetCommand_MissingArg(t *testing.T) {
	cmd := NewGetCommand(&RootOptions{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestListCommand_All(t *testing.T) {
	stdout, _, code := runCLI(t, "--seed", seedFile, "--id-strategy", "sequence", "--format", "json", "list")
	require.Equal(t, ExitSuccess, code)

	recs := decodeRecords(t, stdout)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"Euro notes", "Dollar coins", "Regional fund"},
		[]string{recs[0].Name, recs[1].Name, recs[2].Name})
}

func TestListCommand_Filter(t *testing.T) {
	tests := []struct {
		filter string
		want   []string
	}{
		{"eur", []string{"seed-eur", "item-2"}},
		{"EUR", []string{"seed-eur", "item-2"}},
		{"-zone", []string{"item-2"}},
		{"usd", []string{"item-1"}},
		{"gbp", []string{}},
		{"", []string{"seed-eur", "item-1", "item-2"}},
		{"  ", []string{"seed-eur", "item-1", "item-2"}},
	}

	for _, tt := range tests {
		t.Run("filter="+tt.filter, func(t *testing.T) {
			stdout, _, code := runCLI(t,
				"--seed", seedFile, "--id-strategy", "sequence", "--format", "json",
				"list", "--category", tt.filter,
			)
			require.Equal(t, ExitSuccess, code)

			recs := decodeRecords(t, stdout)
			ids := make([]string, 0, len(recs))
			for _, r := range recs {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListCommand_TextGolden(t *testing.T) {
	stdout, _, code := runCLI(t, "--seed", seedFile, "--id-strategy", "sequence", "list", "--category", "eur")
	require.Equal(t, ExitSuccess, code)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "list_eur", []byte(stdout))
}

func TestListCommand_CUESeed(t *testing.T) {
	stdout, _, code := runCLI(t, "--seed", "../seed/testdata/items.cue", "--format", "json", "list", "--category", "usd")
	require.Equal(t, ExitSuccess, code)

	recs := decodeRecords(t, stdout)
	require.Len(t, recs, 1)
	assert.Equal(t, "Dollar coins", recs[0].Name)
}

func TestSeedErrors(t *testing.T) {
	tests := []struct {
		name string
		seed string
		want string
	}{
		{"missing file", "testdata/does-not-exist.yaml", "failed to load seed"},
		{"duplicate ids", "testdata/bad_seed.yaml", "invalid seed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runCLI(t, "--seed", tt.seed, "list")
			assert.Equal(t, ExitCommandError, code)
			assert.Contains(t, stderr, "Error [E003]")
			assert.Contains(t, stderr, tt.want)
		})
	}
}
