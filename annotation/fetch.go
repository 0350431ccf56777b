package annotation

import (
	"context"
	"fmt"

	"github.com/relloyd/deltapipe/logger"
	"github.com/relloyd/deltapipe/stream"
	"github.com/samber/lo"
)

// FetchError is returned when annotations cannot be fetched or when an item or component does not resolve.
type FetchError struct {
	ItemID      string
	ComponentID string
	Err         error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("error fetching annotations: %v", e.Err)
	case e.ItemID != "":
		return fmt.Sprintf("item %q was not found in the annotation project", e.ItemID)
	default:
		return fmt.Sprintf("component %q was not found on any of the selected items", e.ComponentID)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchRows returns one row per item in itemIDs, in the same order.
// Row values follow the order of componentIDs.
func FetchRows(ctx context.Context, log logger.Logger, client Client, projectID string, teamID string, itemIDs []string, componentIDs []string) ([]stream.Row, error) {
	log.Info("downloading annotations for ", len(itemIDs), " items")
	annotations, err := client.GetAnnotations(ctx, projectID, teamID, itemIDs)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	byKey := make(map[string]Annotation, len(annotations)*2)
	for _, a := range annotations {
		for _, k := range a.Keys() {
			if _, ok := byKey[k]; !ok {
				byKey[k] = a
			}
		}
	}
	rows := make([]stream.Row, 0, len(itemIDs))
	resolved := make([]bool, len(componentIDs))
	for _, id := range itemIDs {
		a, ok := byKey[id]
		if !ok {
			return nil, &FetchError{ItemID: id}
		}
		values, found := FindComponentValues(a, componentIDs)
		for idx := range found {
			resolved[idx] = resolved[idx] || found[idx]
		}
		rows = append(rows, stream.NewRowWithValues(id, values))
		log.Trace("item ", id, " values: ", values)
	}
	if len(itemIDs) > 0 {
		if idx := lo.IndexOf(resolved, false); idx >= 0 {
			return nil, &FetchError{ComponentID: componentIDs[idx]}
		}
	}
	log.Info("built ", len(rows), " rows")
	return rows, nil
}

// FindComponentValues returns the value of each component on the annotation.
// The value is the first attribute name of the last instance that answers the component.
// Components without an answer get an empty value and found[i] reports whether the component appeared at all.
func FindComponentValues(a Annotation, componentIDs []string) (values []string, found []bool) {
	values = make([]string, len(componentIDs))
	found = make([]bool, len(componentIDs))
	for idx, componentID := range componentIDs {
		for _, inst := range a.Instances {
			if inst.componentID() != componentID {
				continue
			}
			found[idx] = true
			if v, ok := inst.value(); ok {
				values[idx] = v
			}
		}
	}
	return
}
