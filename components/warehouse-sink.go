package components

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/relloyd/deltapipe/aws/s3"
	c "github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms"
	"github.com/relloyd/deltapipe/rdbms/shared"
	"github.com/relloyd/deltapipe/stream"
)

// S3ClientFunc returns the client used to stage files for s3 loads.
type S3ClientFunc func(bucket s3.AwsS3Bucket) (s3.BasicClient, error)

type WarehouseSinkConfig struct {
	Log        logger.Logger
	Name       string
	Connection shared.ConnectionDetails // StagingDir is set per write.
	Open       rdbms.Opener             // defaults to rdbms.OpenDbConnection.
	LoadMode   string                   // one of the constants LoadMode*.
	Volume     string                   // volume used by LoadModeVolume.
	S3Bucket   s3.AwsS3Bucket           // bucket used by LoadModeS3.
	NewS3      S3ClientFunc             // defaults to AwsS3Bucket.NewClient.
	BatchSize  int                      // rows per INSERT used by LoadModeInsert.
	RunID      string                   // added to staged file names.
	Now        func() time.Time
}

type WriteResult struct {
	RowsWritten  int
	TableCreated bool
	StagedFile   string
}

// WarehouseSink writes rows into a Delta table.
type WarehouseSink struct {
	cfg *WarehouseSinkConfig
}

func NewWarehouseSink(cfg *WarehouseSinkConfig) *WarehouseSink {
	if cfg.Open == nil {
		cfg.Open = rdbms.OpenDbConnection
	}
	if cfg.NewS3 == nil {
		cfg.NewS3 = func(b s3.AwsS3Bucket) (s3.BasicClient, error) { return b.NewClient() }
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = c.InsertBatchSizeDefault
	}
	if cfg.LoadMode == "" {
		cfg.LoadMode = c.LoadModeVolume
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Name == "" {
		cfg.Name = "WarehouseSink"
	}
	return &WarehouseSink{cfg: cfg}
}

// Write opens a connection, optionally creates table and then writes all rows.
// The connection is closed before Write returns.
// Connection failures are returned as *rdbms.ConnectionError and all later failures as *WriteError.
func (w *WarehouseSink) Write(ctx context.Context, table rdbms.TableName, createTable bool, columns []string, rows []stream.Row) (res WriteResult, err error) {
	log := w.cfg.Log
	// Local staging space for CSV files, also allowed for PUT by the connection.
	stagingDir, err := ioutil.TempDir("", c.ServiceName+"-")
	if err != nil {
		return res, newWriteError(table, "setup", errors.Wrap(err, "unable to create staging directory"))
	}
	defer func() {
		if e := os.RemoveAll(stagingDir); e != nil {
			log.Warn(w.cfg.Name, " unable to remove staging directory ", stagingDir, ": ", e)
		}
	}()
	d := w.cfg.Connection
	d.StagingDir = stagingDir
	// Open the connection.
	log.Info(w.cfg.Name, " connecting to warehouse")
	db, err := w.cfg.Open(ctx, log, d)
	if err != nil {
		return res, err
	}
	defer func() {
		if e := db.Close(); e != nil {
			log.Warn(w.cfg.Name, " error closing warehouse connection: ", e)
		}
		log.Debug(w.cfg.Name, " connection closed")
	}()
	// Create the table before any rows are written.
	if createTable {
		if res.TableCreated, err = CreateTableIfNotExists(ctx, log, db, table, columns); err != nil {
			return res, err
		}
	}
	if len(rows) == 0 {
		log.Info(w.cfg.Name, " no rows to write")
		return res, nil
	}
	loader, err := w.newLoader(table, stagingDir)
	if err != nil {
		return res, newWriteError(table, "setup", err)
	}
	lr, err := loader.Load(ctx, db, table, columns, rows)
	res.StagedFile = lr.StagedFile
	if err != nil {
		return res, err
	}
	res.RowsWritten = lr.RowsWritten
	log.Info(w.cfg.Name, " wrote ", res.RowsWritten, " rows to ", table)
	return res, nil
}

func (w *WarehouseSink) newLoader(table rdbms.TableName, stagingDir string) (RowLoader, error) {
	fileName := StagedFileName(table.Table, w.cfg.RunID, w.cfg.Now())
	switch w.cfg.LoadMode {
	case c.LoadModeVolume:
		return NewVolumeLoader(&VolumeLoaderConfig{
			Log:        w.cfg.Log,
			Name:       "VolumeLoader",
			Volume:     w.cfg.Volume,
			Folder:     c.StagingFolder,
			StagingDir: stagingDir,
			FileName:   fileName,
		}), nil
	case c.LoadModeS3:
		client, err := w.cfg.NewS3(w.cfg.S3Bucket)
		if err != nil {
			return nil, err
		}
		return NewS3Loader(&S3LoaderConfig{
			Log:        w.cfg.Log,
			Name:       "S3Loader",
			Client:     client,
			StagingDir: stagingDir,
			FileName:   fileName,
		}), nil
	case c.LoadModeInsert:
		return NewInsertWriter(&InsertWriterConfig{
			Log:       w.cfg.Log,
			Name:      "InsertWriter",
			BatchSize: w.cfg.BatchSize,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported load mode %q", w.cfg.LoadMode)
	}
}
