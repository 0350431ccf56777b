package cmd

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/relloyd/deltapipe/actions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triggerYaml = `
event:
  sa_component_ids: r_label,r_score
  databricks_columns: label,score
  db_catalog: main
  create_delta_table: true
context:
  items:
    - 101
    - id: 102
      name: b.jpg
  project_id: 7
  team_id: 42
`

func TestBuildTriggerFromFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "trigger.yaml")
	require.NoError(t, ioutil.WriteFile(fileName, []byte(triggerYaml), 0600))

	trg, err := buildTrigger(fileName, map[string]string{"db_catalog": "other", "db_table": "items"}, "", "", "9")
	require.NoError(t, err)
	assert.Equal(t, "other", trg.Event["db_catalog"])
	assert.Equal(t, "items", trg.Event["db_table"])
	assert.Equal(t, true, trg.Event["create_delta_table"])
	assert.Equal(t, []string{"101", "102"}, trg.Context.ItemIDs())
	assert.Equal(t, float64(7), trg.Context.ProjectID)
	assert.Equal(t, "9", trg.Context.TeamID)

	trg, err = buildTrigger(fileName, nil, "a.jpg, b.jpg", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, trg.Context.ItemIDs())
}

func TestBuildTriggerWithoutFile(t *testing.T) {
	trg, err := buildTrigger("", map[string]string{"db_schema": "sales"}, "1", "7", "42")
	require.NoError(t, err)
	assert.Equal(t, "sales", trg.Event["db_schema"])
	assert.Equal(t, []string{"1"}, trg.Context.ItemIDs())

	_, err = buildTrigger(filepath.Join(t.TempDir(), "missing.yaml"), nil, "", "", "")
	assert.Error(t, err)
}

func TestWriteResult(t *testing.T) {
	res := actions.RunResult{RunID: "abc", RowsFetched: 2, RowsWritten: 2, TableCreated: true}
	out := &bytes.Buffer{}
	require.NoError(t, writeResult(out, res, "yaml"))
	assert.Contains(t, out.String(), "runId: abc")
	assert.Contains(t, out.String(), "tableCreated: true")

	out.Reset()
	require.NoError(t, writeResult(out, res, "json"))
	assert.Contains(t, out.String(), `"rowsWritten": 2`)
	assert.NotContains(t, out.String(), "stagedFile")

	assert.Error(t, writeResult(out, res, "xml"))
}
