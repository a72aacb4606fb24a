package registry

import (
	"context"
	"errors"
	"sort"

	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/uptrace/bun"
)

// SubjectRegistryConfig configures the Bun-backed subject registry.
type SubjectRegistryConfig struct {
	DB     *bun.DB
	Table  string
	Logger types.Logger
}

// SubjectRegistry discovers entity types from the subject_type values already
// recorded in the activity table. It suits hosts without an admin registry.
type SubjectRegistry struct {
	db     *bun.DB
	table  string
	logger types.Logger
}

var _ types.EntityRegistry = (*SubjectRegistry)(nil)

// NewSubjectRegistry constructs the registry.
func NewSubjectRegistry(cfg SubjectRegistryConfig) (*SubjectRegistry, error) {
	if cfg.DB == nil {
		return nil, errors.New("subject registry: db must be provided")
	}
	table := cfg.Table
	if table == "" {
		table = "activity_log"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &SubjectRegistry{db: cfg.DB, table: table, logger: logger}, nil
}

// Entities implements types.EntityRegistry.
func (r *SubjectRegistry) Entities(ctx context.Context) ([]types.RegisteredEntity, error) {
	var subjectTypes []string
	err := r.db.NewSelect().
		Table(r.table).
		ColumnExpr("DISTINCT subject_type").
		Where("subject_type IS NOT NULL").
		Where("subject_type <> ''").
		Scan(ctx, &subjectTypes)
	if err != nil {
		r.logger.Error("subject registry: discovery failed", err, "table", r.table)
		return nil, err
	}
	sort.Strings(subjectTypes)

	entities := make([]types.RegisteredEntity, 0, len(subjectTypes))
	for _, subjectType := range subjectTypes {
		entities = append(entities, types.RegisteredEntity{Resource: subjectType, Model: subjectType})
	}
	r.logger.Debug("subject registry: discovered subject types", "count", len(entities))
	return entities, nil
}
