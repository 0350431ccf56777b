package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"reflect"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	MainFileNamePrefix = "config"
	MainFileNameExt    = "yaml"
	MainFileFullName   = MainFileNamePrefix + "." + MainFileNameExt
)

// KeyNotFoundError denotes a missing key in the defaults file.
type KeyNotFoundError struct {
	configFile string
	key        string
}

func (k KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q not found in config file %q", k.key, k.configFile)
}

// File holds default event parameters in YAML.
// Defaults fill any parameter that a trigger does not supply.
type File struct {
	FullPath     string
	data         map[string]interface{}
	dataIsLoaded bool
	mu           sync.Mutex
}

// NewDefaultFile returns the File at ~/.deltapipe/config.yaml.
func NewDefaultFile() (*File, error) {
	dir, err := GetConfigHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "unable to find home directory")
	}
	return NewFile(path.Join(dir, MainFileFullName)), nil
}

func NewFile(fullPath string) *File {
	return &File{FullPath: fullPath, data: make(map[string]interface{})}
}

// Get will fetch the key from the File into out, which must be a pointer.
// Return KeyNotFoundError if we can't find the key.
func (c *File) Get(key string, out interface{}) error {
	if reflect.ValueOf(out).Kind() != reflect.Ptr {
		return errors.New("out must be a pointer")
	}
	if err := c.loadData(); err != nil {
		return err
	}
	d, ok := c.data[key]
	if !ok {
		return KeyNotFoundError{c.FullPath, key}
	}
	return mapstructure.WeakDecode(d, out)
}

// GetAll returns a copy of all defaults.
func (c *File) GetAll() (map[string]interface{}, error) {
	if err := c.loadData(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	retval := make(map[string]interface{}, len(c.data))
	for k, v := range c.data {
		retval[k] = v
	}
	return retval, nil
}

// GetAllKeys returns the sorted keys held in the file.
func (c *File) GetAllKeys() ([]string, error) {
	m, err := c.GetAll()
	if err != nil {
		return nil, err
	}
	retval := make([]string, 0, len(m))
	for k := range m {
		retval = append(retval, k)
	}
	sort.Strings(retval)
	return retval, nil
}

func (c *File) Set(key string, val interface{}) error {
	if err := c.loadData(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = val
	return c.save()
}

func (c *File) Delete(key string) error {
	if err := c.loadData(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, keyExists := c.data[key]; !keyExists {
		return KeyNotFoundError{c.FullPath, key}
	}
	delete(c.data, key)
	return c.save()
}

func (c *File) save() error {
	b, err := yaml.Marshal(c.data)
	if err != nil {
		return errors.Wrapf(err, "error marshalling data for config file %v", c.FullPath)
	}
	if err := makeDir(path.Dir(c.FullPath)); err != nil {
		return err
	}
	return ioutil.WriteFile(c.FullPath, b, 0600)
}

// loadData reads the file once. A missing file is treated as empty.
func (c *File) loadData() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dataIsLoaded {
		return nil
	}
	b, err := ioutil.ReadFile(c.FullPath)
	if os.IsNotExist(err) {
		c.dataIsLoaded = true
		return nil
	} else if err != nil {
		return errors.Wrapf(err, "error reading config file %v", c.FullPath)
	}
	if err = yaml.Unmarshal(b, &c.data); err != nil {
		return errors.Wrapf(err, "error parsing config file %v", c.FullPath)
	}
	if c.data == nil { // an empty file unmarshals to a nil map.
		c.data = make(map[string]interface{})
	}
	c.dataIsLoaded = true
	return nil
}
