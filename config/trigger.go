package config

import (
	"github.com/relloyd/deltapipe/helper"
)

// Trigger is the payload of an "item fired in Explore" event.
// Event holds the pipeline parameters while Context identifies the selected items.
type Trigger struct {
	Event   map[string]interface{} `json:"event" yaml:"event"`
	Context TriggerContext         `json:"context" yaml:"context"`
}

// TriggerContext identifies the items selected in Explore.
// Ids arrive as JSON numbers or strings so they are held as interface{} until the config is parsed.
type TriggerContext struct {
	Items     []interface{} `json:"items" yaml:"items"`
	ProjectID interface{}   `json:"project_id" yaml:"project_id"`
	TeamID    interface{}   `json:"team_id" yaml:"team_id"`
}

// ItemIDs returns the string form of each selected item.
// Items may be plain ids or objects carrying an "id" (or failing that a "name").
func (c TriggerContext) ItemIDs() []string {
	retval := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		switch v := item.(type) {
		case map[string]interface{}:
			retval = append(retval, itemKeyFromMap(v["id"], v["name"]))
		case map[interface{}]interface{}: // yaml.v2 style maps.
			retval = append(retval, itemKeyFromMap(v["id"], v["name"]))
		default:
			retval = append(retval, helper.GetStringFromInterface(v))
		}
	}
	return retval
}

func itemKeyFromMap(id interface{}, name interface{}) string {
	if s := helper.GetStringFromInterface(id); s != "" {
		return s
	}
	return helper.GetStringFromInterface(name)
}
