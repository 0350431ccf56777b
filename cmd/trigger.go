package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/relloyd/deltapipe/actions"
	"github.com/relloyd/deltapipe/config"
	"github.com/relloyd/deltapipe/helper"
)

// loadTriggerFile reads a trigger from a YAML or JSON file.
func loadTriggerFile(fileName string) (config.Trigger, error) {
	t := config.Trigger{}
	b, err := ioutil.ReadFile(fileName)
	if err != nil {
		return t, errors.Wrapf(err, "error reading trigger file %v", fileName)
	}
	if err = yaml.Unmarshal(b, &t); err != nil {
		return t, errors.Wrapf(err, "error parsing trigger file %v", fileName)
	}
	return t, nil
}

// buildTrigger loads the optional trigger file and overlays the supplied event parameters and context values.
// Empty context values leave the file's values in place.
func buildTrigger(fileName string, event map[string]string, items string, projectID string, teamID string) (config.Trigger, error) {
	t := config.Trigger{}
	if fileName != "" {
		var err error
		if t, err = loadTriggerFile(fileName); err != nil {
			return t, err
		}
	}
	if t.Event == nil {
		t.Event = make(map[string]interface{}, len(event))
	}
	for k, v := range event {
		t.Event[k] = v
	}
	if items != "" {
		ids := helper.CsvToStringSliceTrimSpaces(items)
		t.Context.Items = make([]interface{}, len(ids))
		for idx, id := range ids {
			t.Context.Items[idx] = id
		}
	}
	if projectID != "" {
		t.Context.ProjectID = projectID
	}
	if teamID != "" {
		t.Context.TeamID = teamID
	}
	return t, nil
}

// writeResult prints the run result to w in the given format.
func writeResult(w io.Writer, res actions.RunResult, format string) error {
	var b []byte
	var err error
	switch format {
	case "yaml":
		b, err = yaml.Marshal(res)
	case "json":
		b, err = json.MarshalIndent(res, "", "  ")
		b = append(b, '\n')
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
