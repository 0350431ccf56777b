package actions

import (
	"context"
	"time"

	"github.com/relloyd/deltapipe/annotation"
	"github.com/relloyd/deltapipe/aws/s3"
	"github.com/relloyd/deltapipe/components"
	"github.com/relloyd/deltapipe/config"
	c "github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms"
	"github.com/relloyd/deltapipe/rdbms/shared"
	"github.com/rs/xid"
)

// RunDeps holds the constructors for external systems used by a run.
// Nil fields fall back to the real implementations.
type RunDeps struct {
	NewAnnotationClient AnnotationClientFunc
	Open                rdbms.Opener
	NewS3               components.S3ClientFunc
	Now                 func() time.Time
}

type RunResult struct {
	RunID        string `json:"runId"`
	RowsFetched  int    `json:"rowsFetched"`
	RowsWritten  int    `json:"rowsWritten"`
	TableCreated bool   `json:"tableCreated"`
	StagedFile   string `json:"stagedFile,omitempty"`
}

// Runner runs triggers using defaults and secrets that are re-read for every run.
type Runner struct {
	Log      logger.Logger
	Defaults DefaultsGetter // optional
	Secrets  config.SecretStore
	Deps     RunDeps
}

func (r *Runner) Run(ctx context.Context, t config.Trigger) (RunResult, error) {
	defaults := make(map[string]interface{})
	if r.Defaults != nil {
		d, err := r.Defaults.GetAll()
		if err != nil {
			return RunResult{}, &config.ConfigurationError{Problems: []string{err.Error()}}
		}
		defaults = d
	}
	return RunPipeline(ctx, r.Log, t, defaults, config.LoadSecrets(r.Secrets), r.Deps)
}

// RunPipeline validates the configuration, fetches one row per selected item and writes the rows to the
// destination table.
// Configuration problems are reported before any external system is contacted.
func RunPipeline(ctx context.Context, log logger.Logger, t config.Trigger, defaults map[string]interface{}, secrets config.Secrets, deps RunDeps) (res RunResult, err error) {
	res.RunID = xid.New().String()
	log = log.WithField("runId", res.RunID)
	// Validate.
	cfg, err := config.Parse(t, defaults, secrets)
	if err != nil {
		log.Error("input parameters are invalid: ", err)
		return res, err
	}
	log.Info("starting run with ", cfg)
	var bucket s3.AwsS3Bucket
	if cfg.LoadMode == c.LoadModeS3 {
		if bucket, err = s3.ParseDSN(cfg.S3Url, cfg.S3Region); err != nil {
			return res, &config.ConfigurationError{Problems: []string{err.Error()}}
		}
	}
	if deps.NewAnnotationClient == nil {
		deps.NewAnnotationClient = func(log logger.Logger, token string) annotation.Client {
			return annotation.NewHTTPClient(log, token)
		}
	}
	// Fetch.
	client := deps.NewAnnotationClient(log, cfg.Secrets.AnnotationToken)
	rows, err := annotation.FetchRows(ctx, log, client, cfg.ProjectID, cfg.TeamID, cfg.ItemIDs, cfg.ComponentIDs)
	if err != nil {
		log.Error(err)
		return res, err
	}
	res.RowsFetched = len(rows)
	// Write.
	sink := components.NewWarehouseSink(&components.WarehouseSinkConfig{
		Log:  log,
		Name: "WarehouseSink",
		Connection: shared.ConnectionDetails{
			Driver:   cfg.Driver,
			Hostname: cfg.ServerHostname,
			HTTPPath: cfg.HTTPPath,
			Token:    cfg.Secrets.WarehouseToken,
			Catalog:  cfg.Catalog,
			Schema:   cfg.Schema,
		},
		Open:      deps.Open,
		LoadMode:  cfg.LoadMode,
		Volume:    cfg.Volume,
		S3Bucket:  bucket,
		NewS3:     deps.NewS3,
		BatchSize: cfg.BatchSize,
		RunID:     res.RunID,
		Now:       deps.Now,
	})
	table := rdbms.NewTableName(cfg.Catalog, cfg.Schema, cfg.Table)
	wr, err := sink.Write(ctx, table, cfg.CreateDeltaTable, cfg.ColumnNames, rows)
	res.RowsWritten = wr.RowsWritten
	res.TableCreated = wr.TableCreated
	res.StagedFile = wr.StagedFile
	if err != nil {
		log.Error(err)
		return res, err
	}
	log.Info("run completed successfully")
	return res, nil
}
