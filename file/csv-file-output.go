package file

import (
	"encoding/csv"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/relloyd/deltapipe/logger"
)

// CSVFileOutput writes records to a single CSV file with a header row.
type CSVFileOutput struct {
	log       logger.Logger
	csvWriter *csv.Writer
	file      *os.File
	FullPath  string
	rowCount  int
	closed    bool
}

// NewCSVFileOutput creates fileName in directory and writes the header.
// Supply an empty directory to use the OS temp space.
func NewCSVFileOutput(log logger.Logger, directory string, fileName string, header []string) (*CSVFileOutput, error) {
	if directory == "" {
		directory = os.TempDir()
	}
	f := &CSVFileOutput{log: log, FullPath: path.Join(directory, fileName)}
	log.Debug("creating new CSV file '", f.FullPath, "'")
	var err error
	f.file, err = os.Create(f.FullPath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create CSV file %v", f.FullPath)
	}
	f.csvWriter = csv.NewWriter(f.file)
	if err = f.csvWriter.Write(header); err != nil {
		_ = f.Remove()
		return nil, errors.Wrapf(err, "unable to write header to CSV file %v", f.FullPath)
	}
	return f, nil
}

// Write adds record to the CSV file.
func (f *CSVFileOutput) Write(record []string) error {
	if f.closed {
		return errors.Errorf("CSV file %v is closed", f.FullPath)
	}
	f.log.Trace("writing record: ", record)
	if err := f.csvWriter.Write(record); err != nil {
		return errors.Wrapf(err, "unable to write to CSV file %v", f.FullPath)
	}
	f.rowCount++
	return nil
}

// RowCount returns the number of records written excluding the header.
func (f *CSVFileOutput) RowCount() int {
	return f.rowCount
}

// Close flushes the CSV writer and closes the OS file.
// It is safe to call more than once.
func (f *CSVFileOutput) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.csvWriter.Flush()
	flushErr := f.csvWriter.Error()
	if err := f.file.Close(); err != nil {
		return errors.Wrapf(err, "unable to close CSV file %v", f.FullPath)
	}
	if flushErr != nil {
		return errors.Wrapf(flushErr, "unable to flush CSV file %v", f.FullPath)
	}
	return nil
}

// Remove closes and deletes the file.
func (f *CSVFileOutput) Remove() error {
	closeErr := f.Close()
	if err := os.Remove(f.FullPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "unable to remove CSV file %v", f.FullPath)
	}
	return closeErr
}
