package config

import (
	"fmt"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/relloyd/deltapipe/constants"
)

var homeDir string

// GetConfigHomeDir returns the full path to the directory that stores the defaults file.
func GetConfigHomeDir() (string, error) {
	if homeDir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", err
		}
		homeDir = path.Join(home, constants.MainDir)
	}
	return homeDir, nil
}

// makeDir will make the given directory if it does not already exist.
// If it exists then return nil.
func makeDir(dir string) error {
	_, err := os.Stat(dir)
	if os.IsNotExist(err) { // if it doesn't exist...
		if err = os.MkdirAll(dir, 0700); err != nil { // if the dir was NOT created...
			return fmt.Errorf("error creating directory %v: %w", dir, err)
		}
	} else if err != nil {
		return err
	}
	return nil
}
