package task

import (
	"errors"
	"fmt"
)

// ErrUnknownTaskType is returned when no factory is registered for a type.
var ErrUnknownTaskType = errors.New("unknown task type")

// Registry maps task types to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates a registry holding factories. A later factory replaces
// an earlier one of the same type.
func NewRegistry(factories ...Factory) *Registry {
	r := &Registry{factories: make(map[string]Factory, len(factories))}
	for _, f := range factories {
		r.factories[f.Type()] = f
	}
	return r
}

// Factory returns the factory for taskType.
func (r *Registry) Factory(taskType string) (Factory, error) {
	f, ok := r.factories[taskType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaskType, taskType)
	}
	return f, nil
}

// Types lists the registered task types.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	return types
}

// Restore rebuilds a persisted task with the factory for its type.
func (r *Registry) Restore(rec Record) (Task, error) {
	f, err := r.Factory(rec.Type)
	if err != nil {
		return nil, err
	}
	return f.Restore(rec)
}
