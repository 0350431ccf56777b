package annotation

import (
	"github.com/relloyd/deltapipe/helper"
)

// Annotation is the subset of an item's annotation JSON that is needed to build rows.
type Annotation struct {
	Metadata  Metadata   `json:"metadata"`
	Instances []Instance `json:"instances"`
}

type Metadata struct {
	ID   interface{} `json:"id,omitempty"`
	Name string      `json:"name"`
}

// Instance is one answer on an item.
// For form components the first element of ElementPath is the component id.
type Instance struct {
	ElementPath []interface{} `json:"element_path,omitempty"`
	Attributes  []Attribute   `json:"attributes"`
}

type Attribute struct {
	Name interface{} `json:"name"`
}

// Keys returns the identifiers that a trigger may use to refer to the annotated item.
func (a Annotation) Keys() []string {
	retval := make([]string, 0, 2)
	if id := helper.GetStringFromInterface(a.Metadata.ID); id != "" {
		retval = append(retval, id)
	}
	if a.Metadata.Name != "" {
		retval = append(retval, a.Metadata.Name)
	}
	return retval
}

// componentID returns the component that the instance answers, or "" if it is not a component instance.
func (i Instance) componentID() string {
	if len(i.ElementPath) == 0 {
		return ""
	}
	return helper.GetStringFromInterface(i.ElementPath[0])
}

// value returns the first attribute name of the instance.
func (i Instance) value() (string, bool) {
	if len(i.Attributes) == 0 {
		return "", false
	}
	return helper.GetStringFromInterface(i.Attributes[0].Name), true
}
