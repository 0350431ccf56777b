package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	c "github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/helper"
	"github.com/samber/lo"
)

// ConfigurationError is returned when parameters are missing or inconsistent.
// It is always raised before any call to an external system.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", strings.Join(e.Problems, "; "))
}

func newConfigurationError(problems ...string) *ConfigurationError {
	return &ConfigurationError{Problems: problems}
}

// EventArgs are the raw event parameters decoded from the trigger.
type EventArgs struct {
	ComponentIDs     string `mapstructure:"sa_component_ids"`
	ColumnNames      string `mapstructure:"databricks_columns"`
	ServerHostname   string `mapstructure:"db_server_hostname"`
	HTTPPath         string `mapstructure:"db_http_path"`
	Catalog          string `mapstructure:"db_catalog"`
	Schema           string `mapstructure:"db_schema"`
	Table            string `mapstructure:"db_table"`
	Volume           string `mapstructure:"db_volume"`
	CreateDeltaTable bool   `mapstructure:"create_delta_table"`
	LoadMode         string `mapstructure:"db_load_mode"`
	Driver           string `mapstructure:"db_driver"`
	S3Url            string `mapstructure:"db_s3_url"`
	S3Region         string `mapstructure:"db_s3_region"`
	BatchSize        int    `mapstructure:"db_batch_size"`
}

// RunConfig is the validated configuration of one pipeline run.
// It must not be modified once Parse has returned it.
type RunConfig struct {
	ComponentIDs     []string `errorTxt:"sa_component_ids" mandatory:"yes"`
	ColumnNames      []string `errorTxt:"databricks_columns" mandatory:"yes"`
	ServerHostname   string   `errorTxt:"db_server_hostname" mandatory:"yes"`
	HTTPPath         string   `errorTxt:"db_http_path" mandatory:"yes"`
	Catalog          string   `errorTxt:"db_catalog" mandatory:"yes"`
	Schema           string   `errorTxt:"db_schema" mandatory:"yes"`
	Table            string   `errorTxt:"db_table" mandatory:"yes"`
	Volume           string   `errorTxt:"db_volume" mandatory:"yes"`
	CreateDeltaTable bool
	LoadMode         string
	Driver           string
	S3Url            string
	S3Region         string
	BatchSize        int
	ItemIDs          []string `errorTxt:"context items" mandatory:"yes"`
	ProjectID        string   `errorTxt:"context project_id" mandatory:"yes"`
	TeamID           string   `errorTxt:"context team_id" mandatory:"yes"`
	Secrets          Secrets
}

// Parse builds a RunConfig from the trigger, applying defaults for any event parameter that is not supplied.
// The result is validated and any problem is returned as a *ConfigurationError.
func Parse(t Trigger, defaults map[string]interface{}, secrets Secrets) (*RunConfig, error) {
	args, err := DecodeEventArgs(mergeArgs(defaults, t.Event))
	if err != nil {
		return nil, newConfigurationError(err.Error())
	}
	cfg := &RunConfig{
		ComponentIDs:     helper.CsvToStringSliceTrimSpaces(args.ComponentIDs),
		ColumnNames:      helper.CsvToStringSliceTrimSpaces(args.ColumnNames),
		ServerHostname:   strings.TrimSpace(args.ServerHostname),
		HTTPPath:         strings.TrimSpace(args.HTTPPath),
		Catalog:          strings.TrimSpace(args.Catalog),
		Schema:           strings.TrimSpace(args.Schema),
		Table:            strings.TrimSpace(args.Table),
		Volume:           strings.TrimSpace(args.Volume),
		CreateDeltaTable: args.CreateDeltaTable,
		LoadMode:         strings.ToLower(strings.TrimSpace(args.LoadMode)),
		Driver:           strings.ToLower(strings.TrimSpace(args.Driver)),
		S3Url:            strings.TrimSpace(args.S3Url),
		S3Region:         strings.TrimSpace(args.S3Region),
		BatchSize:        args.BatchSize,
		ItemIDs:          lo.Uniq(lo.Filter(t.Context.ItemIDs(), func(s string, _ int) bool { return s != "" })),
		ProjectID:        helper.GetStringFromInterface(t.Context.ProjectID),
		TeamID:           helper.GetStringFromInterface(t.Context.TeamID),
		Secrets:          secrets,
	}
	if cfg.LoadMode == "" {
		cfg.LoadMode = c.LoadModeVolume
	}
	if cfg.Driver == "" {
		cfg.Driver = c.DriverDatabricks
	}
	if !isSupplied(c.ArgBatchSize, t.Event, defaults) {
		cfg.BatchSize = c.InsertBatchSizeDefault
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isSupplied reports whether key has a non-empty value in any of the sources.
// An explicit zero batch size is therefore rejected rather than replaced by the default.
func isSupplied(key string, sources ...map[string]interface{}) bool {
	for _, m := range sources {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		if str, isStr := v.(string); isStr && strings.TrimSpace(str) == "" {
			continue
		}
		return true
	}
	return false
}

// DecodeEventArgs decodes the loosely typed event parameters.
// Strings are converted to bool and int where needed and lists may be given as arrays or comma separated strings.
func DecodeEventArgs(m map[string]interface{}) (EventArgs, error) {
	args := EventArgs{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(trimStringHook),
			mapstructure.DecodeHookFuncType(joinSliceHook),
		),
		WeaklyTypedInput: true,
		Result:           &args,
	})
	if err != nil {
		return args, err
	}
	if err = dec.Decode(m); err != nil {
		return args, err
	}
	return args, nil
}

// trimStringHook removes surrounding white space from string values before they are converted to bool or int.
func trimStringHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	return strings.TrimSpace(reflect.ValueOf(data).String()), nil
}

// joinSliceHook converts a list of values into the comma separated form used by the event parameters.
func joinSliceHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Slice {
		return data, nil
	}
	v := reflect.ValueOf(data)
	s := make([]interface{}, v.Len())
	for i := 0; i < v.Len(); i++ {
		s[i] = v.Index(i).Interface()
	}
	return strings.Join(helper.InterfaceToString(s), ","), nil
}

// mergeArgs returns a new map holding defaults overlaid with the event values.
// Empty event values do not replace a default.
func mergeArgs(defaults map[string]interface{}, event map[string]interface{}) map[string]interface{} {
	retval := make(map[string]interface{}, len(defaults)+len(event))
	for k, v := range defaults {
		retval[k] = v
	}
	for k, v := range event {
		if v == nil || v == "" {
			if _, ok := retval[k]; ok {
				continue
			}
		}
		retval[k] = v
	}
	return retval
}

// Validate checks that mandatory values are present and consistent.
func (cfg *RunConfig) Validate() error {
	problems := make([]string, 0)
	missing := make([]string, 0)
	helper.GetStructErrorTxt4UnsetFields(cfg, &missing)
	if len(missing) > 0 {
		problems = append(problems, fmt.Sprintf("please supply values for %v", strings.Join(missing, ", ")))
	}
	if lo.Contains(cfg.ComponentIDs, "") {
		problems = append(problems, fmt.Sprintf("%v contains an empty component id", c.ArgComponentIDs))
	}
	if lo.Contains(cfg.ColumnNames, "") {
		problems = append(problems, fmt.Sprintf("%v contains an empty column name", c.ArgColumnNames))
	}
	if len(cfg.ComponentIDs) != len(cfg.ColumnNames) {
		problems = append(problems, fmt.Sprintf("%v has %v entries but %v has %v; they must correspond one to one",
			c.ArgComponentIDs, len(cfg.ComponentIDs), c.ArgColumnNames, len(cfg.ColumnNames)))
	}
	if dupes := lo.FindDuplicates(cfg.ColumnNames); len(dupes) > 0 {
		problems = append(problems, fmt.Sprintf("%v contains duplicate columns %v", c.ArgColumnNames, strings.Join(dupes, ",")))
	}
	// Catalog, schema and volume are path segments of the staging location under /Volumes.
	for _, kv := range [][2]string{{c.ArgCatalog, cfg.Catalog}, {c.ArgSchema, cfg.Schema}, {c.ArgVolume, cfg.Volume}} {
		if strings.ContainsAny(kv[1], `/\`) || kv[1] == "." || kv[1] == ".." {
			problems = append(problems, fmt.Sprintf("%v %q must be a single name without path separators", kv[0], kv[1]))
		}
	}
	switch cfg.LoadMode {
	case c.LoadModeVolume, c.LoadModeInsert:
	case c.LoadModeS3:
		if err := validateS3Url(cfg.S3Url); err != nil {
			problems = append(problems, err.Error())
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported %v %q", c.ArgLoadMode, cfg.LoadMode))
	}
	switch cfg.Driver {
	case c.DriverDatabricks, c.DriverOdbc:
	default:
		problems = append(problems, fmt.Sprintf("unsupported %v %q", c.ArgDriver, cfg.Driver))
	}
	if cfg.BatchSize <= 0 {
		problems = append(problems, fmt.Sprintf("%v must be greater than zero", c.ArgBatchSize))
	}
	if len(problems) > 0 {
		return newConfigurationError(problems...)
	}
	return nil
}

func validateS3Url(s string) error {
	if s == "" {
		return fmt.Errorf("%v is required when %v is %v", c.ArgS3Url, c.ArgLoadMode, c.LoadModeS3)
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme != "s3" || u.Host == "" {
		return fmt.Errorf("%v %q must have the form s3://<bucket>[/<prefix>]", c.ArgS3Url, s)
	}
	return nil
}

// String prints the configuration without secrets.
func (cfg *RunConfig) String() string {
	return fmt.Sprintf("components=%v columns=%v host=%v path=%v table=%v.%v.%v volume=%v create=%v mode=%v driver=%v items=%v project=%v team=%v %v",
		cfg.ComponentIDs, cfg.ColumnNames, cfg.ServerHostname, cfg.HTTPPath, cfg.Catalog, cfg.Schema, cfg.Table,
		cfg.Volume, cfg.CreateDeltaTable, cfg.LoadMode, cfg.Driver, len(cfg.ItemIDs), cfg.ProjectID, cfg.TeamID, cfg.Secrets)
}
