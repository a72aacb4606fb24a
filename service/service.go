package service

import (
	"context"
	"time"

	"github.com/goliatone/go-activitylog/display"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-activitylog/query"
	"github.com/goliatone/go-activitylog/resource"
	"github.com/goliatone/go-activitylog/scope"
	"github.com/goliatone/go-activitylog/taxonomy"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-masker"
)

// Service is the entry point for the activity log viewer. It wires the
// repository, registries and policies supplied by the host application and
// memoizes the resolved log taxonomy.
type Service struct {
	cfg        Config
	queries    Queries
	scopeGuard scope.Guard
	presenter  *display.Presenter
	logNames   *taxonomy.Options
	colors     *taxonomy.Options
	issues     []taxonomy.Issue
}

// Queries exposes read-model helpers.
type Queries struct {
	ActivityList   *query.ActivityListQuery
	ActivityDetail *query.ActivityDetailQuery
}

// SubjectsConfig configures subject type discovery. Discovery is on unless
// Disabled is set, matching resources.enabled defaulting to true.
type SubjectsConfig struct {
	Disabled         bool
	Exclude          []string
	ActivityResource string
}

// Config captures all dependencies and settings.
type Config struct {
	ActivityRepository types.ActivityRepository
	EntityRegistry     types.EntityRegistry
	CauserDirectory    types.CauserDirectory
	FeatureGate        featuregate.FeatureGate
	Taxonomy           taxonomy.Config
	// TaxonomyIssues are problems found while decoding Taxonomy. They are
	// logged and reported alongside the validation issues.
	TaxonomyIssues []taxonomy.Issue
	Subjects       SubjectsConfig
	Resource       resource.Config
	// Location renders timestamps; defaults to UTC.
	Location *time.Location
	// ScopeResolver overrides the tenant resolver derived from
	// Resource.Unscoped.
	ScopeResolver       types.ScopeResolver
	AuthorizationPolicy types.AuthorizationPolicy
	Masker              *masker.Masker
	Logger              types.Logger
}

// New constructs a Service. Configuration errors in the log taxonomy are
// logged once as warnings; the affected categories are skipped.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)

	issues := append(append([]taxonomy.Issue(nil), norm.TaxonomyIssues...), taxonomy.Validate(norm.Taxonomy)...)
	for _, issue := range issues {
		norm.Logger.Warn("go-activitylog: log category skipped", "category", issue.Category, "reason", issue.Message)
	}

	colors := taxonomy.LogNameColors(norm.Taxonomy)
	s := &Service{
		cfg:        norm,
		scopeGuard: scope.Ensure(scope.NewGuard(norm.ScopeResolver, norm.AuthorizationPolicy)),
		logNames:   taxonomy.LogNameOptions(norm.Taxonomy),
		colors:     colors,
		issues:     issues,
		presenter: display.NewPresenter(display.Config{
			DateTimeFormat: norm.Resource.DateTimeFormat,
			Location:       norm.Location,
			Colors:         colors,
			Masker:         norm.Masker,
		}),
	}
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.ScopeResolver == nil {
		cfg.ScopeResolver = scope.TenantResolver{Unscoped: cfg.Resource.Unscoped}
	}
	if cfg.AuthorizationPolicy == nil {
		cfg.AuthorizationPolicy = scope.RolePolicy{}
	}
	if cfg.Subjects.ActivityResource == "" {
		cfg.Subjects.ActivityResource = cfg.Resource.Slug
	}
	return cfg
}

func (s *Service) buildQueries() Queries {
	opts := []query.ActivityQueryOption{
		query.WithLogger(s.cfg.Logger),
		query.WithCauserDirectory(s.cfg.CauserDirectory),
	}
	return Queries{
		ActivityList:   query.NewActivityListQuery(s.cfg.ActivityRepository, s.scopeGuard, opts...),
		ActivityDetail: query.NewActivityDetailQuery(s.cfg.ActivityRepository, s.scopeGuard, opts...),
	}
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Presenter returns the entry presenter configured with the badge colors.
func (s *Service) Presenter() *display.Presenter {
	return s.presenter
}

// ConfigIssues returns the taxonomy problems found at construction.
func (s *Service) ConfigIssues() []taxonomy.Issue {
	return append([]taxonomy.Issue(nil), s.issues...)
}

// LogNameOptions returns a copy of the memoized log name options.
func (s *Service) LogNameOptions() *taxonomy.Options {
	return s.logNames.Clone()
}

// LogNameColors returns a copy of the memoized color mapping.
func (s *Service) LogNameColors() *taxonomy.Options {
	return s.colors.Clone()
}

// SubjectTypeOptions discovers subject types for the actor's scope. An empty
// mapping is returned when discovery is disabled, gated off or no registry
// was configured.
func (s *Service) SubjectTypeOptions(ctx context.Context, actor types.ActorRef, scopeFilter types.ScopeFilter) (*taxonomy.Options, error) {
	if s.cfg.Subjects.Disabled || s.cfg.EntityRegistry == nil {
		return taxonomy.NewOptions(), nil
	}
	enabled, err := featureEnabled(ctx, s.cfg.FeatureGate, FeatureSubjectDiscovery, scopeFilter, actor.ID)
	if err != nil {
		s.cfg.Logger.Warn("go-activitylog: subject discovery gate failed", "error", err)
		return taxonomy.NewOptions(), nil
	}
	if !enabled {
		return taxonomy.NewOptions(), nil
	}
	entities, err := s.cfg.EntityRegistry.Entities(ctx)
	if err != nil {
		return nil, err
	}
	return taxonomy.SubjectTypeOptions(entities, taxonomy.SubjectQuery{
		Enabled:          true,
		Exclude:          s.cfg.Subjects.Exclude,
		ActivityResource: s.cfg.Subjects.ActivityResource,
	}), nil
}

// Resource builds the admin resource descriptor for the actor's scope.
func (s *Service) Resource(ctx context.Context, actor types.ActorRef, scopeFilter types.ScopeFilter) (resource.Resource, error) {
	subjects, err := s.SubjectTypeOptions(ctx, actor, scopeFilter)
	if err != nil {
		return resource.Resource{}, err
	}
	return resource.Build(s.cfg.Resource, resource.Taxonomy{
		LogNames:     s.LogNameOptions(),
		Colors:       s.LogNameColors(),
		SubjectTypes: subjects,
	}), nil
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil && s.cfg.ActivityRepository != nil
}

// HealthCheck surfaces missing dependencies.
func (s *Service) HealthCheck(context.Context) error {
	if s == nil {
		return types.ErrServiceNotReady
	}
	if s.cfg.ActivityRepository == nil {
		return types.ErrMissingActivityRepository
	}
	return nil
}
