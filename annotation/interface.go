//go:generate mockgen -package mocks -destination mocks/interface.go -source=interface.go
package annotation

import (
	"context"
)

// Client fetches annotations from the annotation platform.
type Client interface {
	// GetAnnotations returns the annotations of the given items.
	// Items unknown to the platform are omitted from the result rather than reported as an error.
	GetAnnotations(ctx context.Context, projectID string, teamID string, itemIDs []string) ([]Annotation, error)
}
