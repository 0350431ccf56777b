package components

import (
	"context"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/relloyd/deltapipe/aws/s3"
	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms"
	"github.com/relloyd/deltapipe/rdbms/shared"
	"github.com/relloyd/deltapipe/stream"
)

type S3LoaderConfig struct {
	Log        logger.Logger
	Name       string
	Client     s3.BasicClient // bucket and prefix the warehouse can read from.
	StagingDir string
	FileName   string
}

// S3Loader stages rows as a CSV file in S3 and loads them with COPY INTO.
// The S3 object is deleted whether or not the load succeeds.
type S3Loader struct {
	cfg *S3LoaderConfig
}

func NewS3Loader(cfg *S3LoaderConfig) *S3Loader {
	return &S3Loader{cfg: cfg}
}

func (s *S3Loader) Load(ctx context.Context, db shared.Connector, table rdbms.TableName, columns []string, rows []stream.Row) (res LoadResult, err error) {
	log := s.cfg.Log
	localFile, err := writeRowsToCSV(log, s.cfg.StagingDir, s.cfg.FileName, columns, rows)
	if err != nil {
		return res, newWriteError(table, "write csv", err)
	}
	key := path.Base(localFile)
	if err = s.put(ctx, localFile, key); err != nil {
		return res, newWriteError(table, "stage file", err)
	}
	res.StagedFile = s.cfg.Client.URL(key)
	defer func() {
		log.Info(s.cfg.Name, " deleting staged file ", res.StagedFile)
		if e := s.cfg.Client.Delete(context.WithoutCancel(ctx), key); e != nil { // delete even if the run was cancelled.
			log.Warn(s.cfg.Name, " unable to delete staged file ", res.StagedFile, ": ", e)
		}
	}()
	log.Info(s.cfg.Name, " loading table ", table, " from ", res.StagedFile)
	if err = exec(ctx, log, db, GetSqlCopyInto(table, res.StagedFile)); err != nil {
		return res, newWriteError(table, "copy into", err)
	}
	res.RowsWritten = len(rows)
	return res, nil
}

func (s *S3Loader) put(ctx context.Context, localFile string, key string) error {
	f, err := os.Open(localFile) // File implements io.ReadSeeker
	if err != nil {
		return errors.Wrapf(err, "unable to open file %v", localFile)
	}
	defer f.Close()
	s.cfg.Log.Info(s.cfg.Name, " copying file '", localFile, "' to ", s.cfg.Client.URL(key))
	return s.cfg.Client.BufferPut(ctx, key, f)
}
