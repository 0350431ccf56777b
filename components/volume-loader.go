package components

import (
	"context"
	"path"

	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/rdbms"
	"github.com/relloyd/deltapipe/rdbms/shared"
	"github.com/relloyd/deltapipe/stream"
)

type VolumeLoaderConfig struct {
	Log        logger.Logger
	Name       string
	Volume     string // the volume, in the table's catalog and schema, used to stage files.
	Folder     string // sub-directory of the volume.
	StagingDir string // local directory for the CSV file; must be allowed for staging by the connection.
	FileName   string
}

// VolumeLoader stages rows as a CSV file in a Unity Catalog volume and loads them with COPY INTO.
// The staged file is removed whether or not the load succeeds.
type VolumeLoader struct {
	cfg *VolumeLoaderConfig
}

func NewVolumeLoader(cfg *VolumeLoaderConfig) *VolumeLoader {
	return &VolumeLoader{cfg: cfg}
}

func (v *VolumeLoader) Load(ctx context.Context, db shared.Connector, table rdbms.TableName, columns []string, rows []stream.Row) (res LoadResult, err error) {
	log := v.cfg.Log
	localFile, err := writeRowsToCSV(log, v.cfg.StagingDir, v.cfg.FileName, columns, rows)
	if err != nil {
		return res, newWriteError(table, "write csv", err)
	}
	volumePath := table.VolumePath(v.cfg.Volume, v.cfg.Folder, path.Base(localFile))
	log.Info(v.cfg.Name, " uploading CSV file to volume path ", volumePath)
	if err = exec(ctx, log, db, GetSqlPutFile(localFile, volumePath)); err != nil {
		return res, newWriteError(table, "stage file", err)
	}
	res.StagedFile = volumePath
	defer func() {
		// The staged file is removed even if the run was cancelled during the load.
		log.Info(v.cfg.Name, " deleting CSV file from volume path ", volumePath)
		if e := exec(context.WithoutCancel(ctx), log, db, GetSqlRemoveFile(volumePath)); e != nil {
			log.Warn(v.cfg.Name, " unable to remove staged file ", volumePath, ": ", e)
		}
	}()
	log.Info(v.cfg.Name, " loading table ", table, " from volume")
	if err = exec(ctx, log, db, GetSqlCopyInto(table, volumePath)); err != nil {
		return res, newWriteError(table, "copy into", err)
	}
	res.RowsWritten = len(rows)
	return res, nil
}
