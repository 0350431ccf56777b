package actions

import (
	"context"

	"github.com/relloyd/deltapipe/annotation"
	"github.com/relloyd/deltapipe/config"
	"github.com/relloyd/deltapipe/logger"
)

// DefaultsGetter supplies default event parameters, e.g. *config.File.
type DefaultsGetter interface {
	GetAll() (map[string]interface{}, error)
}

type DefaultsGetterSetter interface {
	Get(key string, out interface{}) error
	Set(key string, val interface{}) error
	Delete(key string) error
}

// TriggerRunner runs the pipeline for one trigger.
type TriggerRunner interface {
	Run(ctx context.Context, t config.Trigger) (RunResult, error)
}

// AnnotationClientFunc builds the annotation platform client for a run.
type AnnotationClientFunc func(log logger.Logger, token string) annotation.Client
