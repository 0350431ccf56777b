package actions

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/relloyd/deltapipe/annotation"
	"github.com/relloyd/deltapipe/annotation/mocks"
	"github.com/relloyd/deltapipe/components"
	"github.com/relloyd/deltapipe/config"
	c "github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms"
	"github.com/relloyd/deltapipe/rdbms/shared"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var log = logger.NewLogger("deltapipe-test", "error", true)

func validTrigger() config.Trigger {
	return config.Trigger{
		Event: map[string]interface{}{
			c.ArgComponentIDs:     "r_label,r_score",
			c.ArgColumnNames:      "label,score",
			c.ArgServerHostname:   "adb.example.net",
			c.ArgHTTPPath:         "/sql/1.0/warehouses/abc",
			c.ArgCatalog:          "main",
			c.ArgSchema:           "sales",
			c.ArgTable:            "items",
			c.ArgVolume:           "landing",
			c.ArgCreateDeltaTable: "true",
			c.ArgLoadMode:         c.LoadModeInsert,
		},
		Context: config.TriggerContext{
			Items:     []interface{}{float64(1), "b.jpg"},
			ProjectID: float64(7),
			TeamID:    float64(42),
		},
	}
}

func validSecrets() config.Secrets {
	return config.Secrets{AnnotationToken: "sa-token", WarehouseToken: "db-token"}
}

func annotations() []annotation.Annotation {
	return []annotation.Annotation{
		{
			Metadata: annotation.Metadata{ID: float64(1), Name: "a.jpg"},
			Instances: []annotation.Instance{
				{ElementPath: []interface{}{"r_label"}, Attributes: []annotation.Attribute{{Name: "cat"}}},
				{ElementPath: []interface{}{"r_score"}, Attributes: []annotation.Attribute{{Name: float64(3)}}},
			},
		},
		{
			Metadata: annotation.Metadata{ID: float64(2), Name: "b.jpg"},
			Instances: []annotation.Instance{
				{ElementPath: []interface{}{"r_label"}, Attributes: []annotation.Attribute{{Name: "dog"}}},
			},
		},
	}
}

func clientFunc(client annotation.Client) AnnotationClientFunc {
	return func(log logger.Logger, token string) annotation.Client {
		return client
	}
}

func openerFor(t *testing.T, details *shared.ConnectionDetails) (rdbms.Opener, sqlmock.Sqlmock) {
	sqlDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	return func(ctx context.Context, log logger.Logger, d shared.ConnectionDetails) (shared.Connector, error) {
		*details = d
		return &shared.HpConnection{DbSql: sqlDb, Dml: &shared.DmlGeneratorTxtBatch{}, DbType: d.Driver}, nil
	}, mock
}

func TestRunPipelineWritesOneRowPerItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetAnnotations(gomock.Any(), "7", "42", []string{"1", "b.jpg"}).Return(annotations(), nil).Times(1)
	var details shared.ConnectionDetails
	open, mock := openerFor(t, &details)
	mock.ExpectQuery(regexp.QuoteMeta("information_schema.tables")).WithArgs("sales", "items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS `main`.`sales`.`items` (`label` STRING, `score` STRING)")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("insert into `main`.`sales`.`items` (`label`,`score`) values ( ?,? ),( ?,? )")).
		WithArgs("cat", "3", "dog", "").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectClose()

	res, err := RunPipeline(context.Background(), log, validTrigger(), nil, validSecrets(), RunDeps{
		NewAnnotationClient: clientFunc(client),
		Open:                open,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 2, res.RowsFetched)
	assert.Equal(t, 2, res.RowsWritten)
	assert.True(t, res.TableCreated)
	assert.NoError(t, mock.ExpectationsWereMet())
	// Connection details come from the event and the secrets.
	assert.Equal(t, "adb.example.net", details.Hostname)
	assert.Equal(t, "/sql/1.0/warehouses/abc", details.HTTPPath)
	assert.Equal(t, "db-token", details.Token)
	assert.Equal(t, c.DriverDatabricks, details.Driver)
	assert.Equal(t, "main", details.Catalog)
}

func TestRunPipelineConfigErrorBeforeAnyCall(t *testing.T) {
	trg := validTrigger()
	trg.Event[c.ArgColumnNames] = "label"
	deps := RunDeps{
		NewAnnotationClient: func(log logger.Logger, token string) annotation.Client {
			t.Fatal("annotation client must not be created for an invalid configuration")
			return nil
		},
		Open: func(ctx context.Context, log logger.Logger, d shared.ConnectionDetails) (shared.Connector, error) {
			t.Fatal("warehouse must not be contacted for an invalid configuration")
			return nil, nil
		},
	}
	_, err := RunPipeline(context.Background(), log, trg, nil, validSecrets(), deps)
	var cfgErr *config.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "expected *config.ConfigurationError; got %T", err)

	_, err = RunPipeline(context.Background(), log, validTrigger(), nil, config.Secrets{}, deps)
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), c.EnvVarWarehouseToken)
}

func TestRunPipelineFetchErrorSkipsWarehouse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetAnnotations(gomock.Any(), "7", "42", gomock.Any()).Return(annotations()[:1], nil).Times(1)

	_, err := RunPipeline(context.Background(), log, validTrigger(), nil, validSecrets(), RunDeps{
		NewAnnotationClient: clientFunc(client),
		Open: func(ctx context.Context, log logger.Logger, d shared.ConnectionDetails) (shared.Connector, error) {
			t.Fatal("warehouse must not be contacted when the fetch fails")
			return nil, nil
		},
	})
	var fetchErr *annotation.FetchError
	require.True(t, errors.As(err, &fetchErr), "expected *annotation.FetchError; got %T", err)
	assert.Equal(t, "b.jpg", fetchErr.ItemID)
}

func TestRunPipelineLogsFetchOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetAnnotations(gomock.Any(), "7", "42", gomock.Any()).Return(annotations()[:1], nil).Times(1)
	l, hook := logtest.NewNullLogger()

	_, err := RunPipeline(context.Background(), &logger.LoggerImpl{Logger: logrus.NewEntry(l)}, validTrigger(), nil, validSecrets(), RunDeps{
		NewAnnotationClient: clientFunc(client),
	})
	require.Error(t, err)
	n := 0
	for _, e := range hook.AllEntries() {
		if strings.Contains(e.Message, "downloading annotations") {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestRunPipelineConnectionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetAnnotations(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(annotations(), nil)

	res, err := RunPipeline(context.Background(), log, validTrigger(), nil, validSecrets(), RunDeps{
		NewAnnotationClient: clientFunc(client),
		Open: func(ctx context.Context, log logger.Logger, d shared.ConnectionDetails) (shared.Connector, error) {
			return nil, &rdbms.ConnectionError{Host: d.Hostname, Err: errors.New("no route to host")}
		},
	})
	var connErr *rdbms.ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, 2, res.RowsFetched)
	assert.Equal(t, 0, res.RowsWritten)
}

func TestRunPipelineVolumeStagedFileUsesRunID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetAnnotations(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(annotations(), nil)
	var details shared.ConnectionDetails
	open, mock := openerFor(t, &details)
	mock.ExpectExec(`^PUT `).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^COPY INTO `).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`^REMOVE `).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectClose()

	trg := validTrigger()
	trg.Event[c.ArgLoadMode] = ""
	trg.Event[c.ArgCreateDeltaTable] = false
	res, err := RunPipeline(context.Background(), log, trg, nil, validSecrets(), RunDeps{
		NewAnnotationClient: clientFunc(client),
		Open:                open,
		Now:                 func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	require.NoError(t, err)
	expected := "/Volumes/main/sales/landing/superannotate/" + components.StagedFileName("items", res.RunID, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.Equal(t, expected, res.StagedFile)
	assert.NotEmpty(t, details.StagingDir)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type mapDefaults map[string]interface{}

func (m mapDefaults) GetAll() (map[string]interface{}, error) {
	return m, nil
}

type mapSecrets map[string]string

func (m mapSecrets) Get(key string) (string, error) {
	if v, ok := m[key]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func TestRunnerAppliesDefaultsAndSecrets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := mocks.NewMockClient(ctrl)
	var token string
	trg := validTrigger()
	delete(trg.Event, c.ArgVolume)
	trg.Event[c.ArgCreateDeltaTable] = "false"
	r := &Runner{
		Log:      log,
		Defaults: mapDefaults{c.ArgVolume: "from-defaults", c.ArgTable: "ignored"},
		Secrets:  mapSecrets{c.EnvVarAnnotationToken: "sa", c.EnvVarWarehouseToken: "db"},
		Deps: RunDeps{
			NewAnnotationClient: func(log logger.Logger, tk string) annotation.Client {
				token = tk
				return client
			},
			Open: func(ctx context.Context, log logger.Logger, d shared.ConnectionDetails) (shared.Connector, error) {
				return nil, &rdbms.ConnectionError{Host: d.Hostname, Err: errors.New("stop here")}
			},
		},
	}
	client.EXPECT().GetAnnotations(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(annotations(), nil)
	_, err := r.Run(context.Background(), trg)
	var connErr *rdbms.ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "sa", token)
}
