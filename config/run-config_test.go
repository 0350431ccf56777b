package config

import (
	"errors"
	"testing"

	c "github.com/relloyd/deltapipe/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTrigger() Trigger {
	return Trigger{
		Event: map[string]interface{}{
			c.ArgComponentIDs:     "r_1, r_2",
			c.ArgColumnNames:      "label,score",
			c.ArgServerHostname:   "adb-123.azuredatabricks.net",
			c.ArgHTTPPath:         "/sql/1.0/warehouses/abc",
			c.ArgCatalog:          "main",
			c.ArgSchema:           "annotations",
			c.ArgTable:            "items",
			c.ArgVolume:           "landing",
			c.ArgCreateDeltaTable: "True",
		},
		Context: TriggerContext{
			Items:     []interface{}{float64(101), float64(102)},
			ProjectID: float64(7),
			TeamID:    "42",
		},
	}
}

func validSecrets() Secrets {
	return Secrets{AnnotationToken: "sa-token", WarehouseToken: "db-token"}
}

func requireConfigurationError(t *testing.T, err error) *ConfigurationError {
	t.Helper()
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "expected *ConfigurationError; got %T: %v", err, err)
	return cfgErr
}

func TestParseValid(t *testing.T) {
	cfg, err := Parse(validTrigger(), nil, validSecrets())
	require.NoError(t, err)
	assert.Equal(t, []string{"r_1", "r_2"}, cfg.ComponentIDs)
	assert.Equal(t, []string{"label", "score"}, cfg.ColumnNames)
	assert.Equal(t, []string{"101", "102"}, cfg.ItemIDs)
	assert.Equal(t, "7", cfg.ProjectID)
	assert.Equal(t, "42", cfg.TeamID)
	assert.True(t, cfg.CreateDeltaTable)
	assert.Equal(t, c.LoadModeVolume, cfg.LoadMode)
	assert.Equal(t, c.DriverDatabricks, cfg.Driver)
	assert.Equal(t, c.InsertBatchSizeDefault, cfg.BatchSize)
	assert.NotContains(t, cfg.String(), "sa-token")
	assert.NotContains(t, cfg.String(), "db-token")
}

func TestParseMissingRequiredFields(t *testing.T) {
	required := []string{
		c.ArgComponentIDs, c.ArgColumnNames, c.ArgServerHostname, c.ArgHTTPPath,
		c.ArgCatalog, c.ArgSchema, c.ArgTable, c.ArgVolume,
	}
	for _, arg := range required {
		t.Run(arg, func(t *testing.T) {
			trg := validTrigger()
			delete(trg.Event, arg)
			_, err := Parse(trg, nil, validSecrets())
			cfgErr := requireConfigurationError(t, err)
			assert.Contains(t, cfgErr.Error(), arg)
		})
	}
}

func TestParseMissingSecrets(t *testing.T) {
	_, err := Parse(validTrigger(), nil, Secrets{AnnotationToken: "x"})
	cfgErr := requireConfigurationError(t, err)
	assert.Contains(t, cfgErr.Error(), "DB_ACCESS_TOKEN")
	assert.NotContains(t, cfgErr.Error(), "SA_TEAM_TOKEN")

	_, err = Parse(validTrigger(), nil, Secrets{})
	cfgErr = requireConfigurationError(t, err)
	assert.Contains(t, cfgErr.Error(), "SA_TEAM_TOKEN")
	assert.Contains(t, cfgErr.Error(), "DB_ACCESS_TOKEN")
}

func TestParseMissingContext(t *testing.T) {
	trg := validTrigger()
	trg.Context = TriggerContext{}
	_, err := Parse(trg, nil, validSecrets())
	cfgErr := requireConfigurationError(t, err)
	assert.Contains(t, cfgErr.Error(), "context items")
	assert.Contains(t, cfgErr.Error(), "context project_id")
	assert.Contains(t, cfgErr.Error(), "context team_id")
}

func TestParseCardinalityMismatch(t *testing.T) {
	trg := validTrigger()
	trg.Event[c.ArgColumnNames] = "label,score,extra"
	_, err := Parse(trg, nil, validSecrets())
	cfgErr := requireConfigurationError(t, err)
	assert.Contains(t, cfgErr.Error(), "2 entries")
	assert.Contains(t, cfgErr.Error(), "has 3")
}

func TestParseEmptyTokens(t *testing.T) {
	trg := validTrigger()
	trg.Event[c.ArgComponentIDs] = "r_1,,r_2"
	trg.Event[c.ArgColumnNames] = "a,b,c"
	_, err := Parse(trg, nil, validSecrets())
	cfgErr := requireConfigurationError(t, err)
	assert.Contains(t, cfgErr.Error(), "empty component id")
}

func TestParseDuplicateColumns(t *testing.T) {
	trg := validTrigger()
	trg.Event[c.ArgColumnNames] = "label,label"
	_, err := Parse(trg, nil, validSecrets())
	cfgErr := requireConfigurationError(t, err)
	assert.Contains(t, cfgErr.Error(), "duplicate columns label")
}

func TestParseCreateFlag(t *testing.T) {
	for input, expected := range map[interface{}]bool{"true": true, "TRUE": true, " true ": true, "false": false, "false\n": false, true: true, false: false, "": false} {
		trg := validTrigger()
		trg.Event[c.ArgCreateDeltaTable] = input
		cfg, err := Parse(trg, nil, validSecrets())
		require.NoError(t, err, "input %v", input)
		assert.Equal(t, expected, cfg.CreateDeltaTable, "input %v", input)
	}
	trg := validTrigger()
	delete(trg.Event, c.ArgCreateDeltaTable)
	cfg, err := Parse(trg, nil, validSecrets())
	require.NoError(t, err)
	assert.False(t, cfg.CreateDeltaTable)

	trg.Event[c.ArgCreateDeltaTable] = "maybe"
	_, err = Parse(trg, nil, validSecrets())
	requireConfigurationError(t, err)
}

func TestParseRejectsPathNames(t *testing.T) {
	for _, arg := range []string{c.ArgCatalog, c.ArgSchema, c.ArgVolume} {
		for _, name := range []string{"../../x", "..", ".", "a/b", `a\b`} {
			trg := validTrigger()
			trg.Event[arg] = name
			_, err := Parse(trg, nil, validSecrets())
			cfgErr := requireConfigurationError(t, err)
			assert.Contains(t, cfgErr.Error(), arg, "name %q", name)
		}
	}
}

func TestParseListsAsArrays(t *testing.T) {
	trg := validTrigger()
	trg.Event[c.ArgComponentIDs] = []interface{}{"r_1", "r_2"}
	trg.Event[c.ArgColumnNames] = []interface{}{"label", "score"}
	cfg, err := Parse(trg, nil, validSecrets())
	require.NoError(t, err)
	assert.Equal(t, []string{"r_1", "r_2"}, cfg.ComponentIDs)
	assert.Equal(t, []string{"label", "score"}, cfg.ColumnNames)
}

func TestParseDefaults(t *testing.T) {
	trg := validTrigger()
	delete(trg.Event, c.ArgCatalog)
	trg.Event[c.ArgSchema] = ""
	defaults := map[string]interface{}{
		c.ArgCatalog: "dflt_catalog",
		c.ArgSchema:  "dflt_schema",
		c.ArgTable:   "ignored",
	}
	cfg, err := Parse(trg, defaults, validSecrets())
	require.NoError(t, err)
	assert.Equal(t, "dflt_catalog", cfg.Catalog)
	assert.Equal(t, "dflt_schema", cfg.Schema)
	assert.Equal(t, "items", cfg.Table, "event values must win over defaults")
}

func TestParseItems(t *testing.T) {
	trg := validTrigger()
	trg.Context.Items = []interface{}{
		float64(5),
		"5",
		map[string]interface{}{"id": float64(6), "name": "img6.jpg"},
		map[string]interface{}{"name": "img7.jpg"},
		"",
	}
	cfg, err := Parse(trg, nil, validSecrets())
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "6", "img7.jpg"}, cfg.ItemIDs)
}

func TestParseLoadModes(t *testing.T) {
	trg := validTrigger()
	trg.Event[c.ArgLoadMode] = "S3"
	_, err := Parse(trg, nil, validSecrets())
	cfgErr := requireConfigurationError(t, err)
	assert.Contains(t, cfgErr.Error(), c.ArgS3Url)

	trg.Event[c.ArgS3Url] = "https://bucket/prefix"
	_, err = Parse(trg, nil, validSecrets())
	requireConfigurationError(t, err)

	trg.Event[c.ArgS3Url] = "s3://bucket/some/prefix/"
	cfg, err := Parse(trg, nil, validSecrets())
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/some/prefix/", cfg.S3Url)

	trg.Event[c.ArgLoadMode] = "carrier-pigeon"
	_, err = Parse(trg, nil, validSecrets())
	cfgErr = requireConfigurationError(t, err)
	assert.Contains(t, cfgErr.Error(), "carrier-pigeon")
}

func TestParseBatchSize(t *testing.T) {
	trg := validTrigger()
	trg.Event[c.ArgBatchSize] = "25"
	cfg, err := Parse(trg, nil, validSecrets())
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.BatchSize)

	trg.Event[c.ArgBatchSize] = " 30 "
	cfg, err = Parse(trg, nil, validSecrets())
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.BatchSize)

	trg.Event[c.ArgBatchSize] = "  "
	cfg, err = Parse(trg, nil, validSecrets())
	require.NoError(t, err)
	assert.Equal(t, c.InsertBatchSizeDefault, cfg.BatchSize)

	trg.Event[c.ArgBatchSize] = 0
	_, err = Parse(trg, nil, validSecrets())
	requireConfigurationError(t, err)

	trg.Event[c.ArgBatchSize] = "lots"
	_, err = Parse(trg, nil, validSecrets())
	requireConfigurationError(t, err)
}

func TestParseDriver(t *testing.T) {
	trg := validTrigger()
	trg.Event[c.ArgDriver] = "ODBC"
	cfg, err := Parse(trg, nil, validSecrets())
	require.NoError(t, err)
	assert.Equal(t, c.DriverOdbc, cfg.Driver)

	trg.Event[c.ArgDriver] = "jdbc"
	_, err = Parse(trg, nil, validSecrets())
	requireConfigurationError(t, err)
}
