package crudsvc

import (
	"fmt"
	"time"

	"github.com/goliatone/go-activitylog/crudguard"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
)

// GuardAdapter is the part of crudguard.Adapter the services rely on.
type GuardAdapter interface {
	Enforce(in crudguard.GuardInput) (crudguard.GuardResult, error)
}

type serviceOptions struct {
	logger     types.Logger
	dateFormat string
	location   *time.Location
}

// ServiceOption customizes the CRUD service.
type ServiceOption func(*serviceOptions)

// WithLogger wires a logger for service diagnostics.
func WithLogger(logger types.Logger) ServiceOption {
	return func(cfg *serviceOptions) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithDateFilter sets the pattern and location used to read the logged_at
// filter.
func WithDateFilter(pattern string, loc *time.Location) ServiceOption {
	return func(cfg *serviceOptions) {
		cfg.dateFormat = pattern
		if loc != nil {
			cfg.location = loc
		}
	}
}

func applyOptions(opts []ServiceOption) serviceOptions {
	cfg := serviceOptions{
		logger:   types.NopLogger{},
		location: time.UTC,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func notSupported(op crud.CrudOperation) error {
	return goerrors.New(
		fmt.Sprintf("go-activitylog: crud operation %s disabled for the activity log", op),
		goerrors.CategoryValidation,
	).WithCode(goerrors.CodeBadRequest)
}

// ReadOnlyRoutes disables every write route of a controller.
func ReadOnlyRoutes() crud.RouteConfig {
	disabled := crud.RouteOptions{Enabled: crud.BoolPtr(false)}
	return crud.RouteConfig{
		Operations: map[crud.CrudOperation]crud.RouteOptions{
			crud.OpCreate:      disabled,
			crud.OpUpdate:      disabled,
			crud.OpDelete:      disabled,
			crud.OpCreateBatch: disabled,
			crud.OpUpdateBatch: disabled,
			crud.OpDeleteBatch: disabled,
		},
	}
}

// ControllerOptions returns the go-crud options that mount svc as a read
// only controller.
func ControllerOptions[T any](svc crud.Service[T]) []crud.Option[T] {
	return []crud.Option[T]{
		crud.WithService(svc),
		crud.WithRouteConfig[T](ReadOnlyRoutes()),
	}
}
