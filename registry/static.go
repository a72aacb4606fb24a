package registry

import (
	"context"
	"strings"

	"github.com/goliatone/go-activitylog/pkg/types"
)

// Static serves a fixed entity list, typically loaded from configuration.
type Static struct {
	entities []types.RegisteredEntity
}

var _ types.EntityRegistry = (*Static)(nil)

// NewStatic normalizes entities, dropping blanks and duplicate models. A
// missing resource name defaults to the model identifier.
func NewStatic(entities ...types.RegisteredEntity) *Static {
	seen := make(map[string]bool, len(entities))
	out := make([]types.RegisteredEntity, 0, len(entities))
	for _, entity := range entities {
		entity.Model = strings.TrimSpace(entity.Model)
		entity.Resource = strings.TrimSpace(entity.Resource)
		if entity.Model == "" || seen[entity.Model] {
			continue
		}
		if entity.Resource == "" {
			entity.Resource = entity.Model
		}
		seen[entity.Model] = true
		out = append(out, entity)
	}
	return &Static{entities: out}
}

// Entities implements types.EntityRegistry.
func (s *Static) Entities(context.Context) ([]types.RegisteredEntity, error) {
	if s == nil {
		return nil, nil
	}
	out := make([]types.RegisteredEntity, len(s.entities))
	copy(out, s.entities)
	return out, nil
}

// Chain merges several registries in order. The first registry to report a
// model wins.
type Chain []types.EntityRegistry

var _ types.EntityRegistry = Chain(nil)

// Entities implements types.EntityRegistry.
func (c Chain) Entities(ctx context.Context) ([]types.RegisteredEntity, error) {
	var all []types.RegisteredEntity
	for _, registry := range c {
		if registry == nil {
			continue
		}
		entities, err := registry.Entities(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, entities...)
	}
	return NewStatic(all...).entities, nil
}
