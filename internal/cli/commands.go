package cli

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-activitylog/activity"
	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-activitylog/resource"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// withService loads config, opens the database and runs fn with the
// reader stored on the context.
func withService(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, app *App, actor types.ActorRef, scope types.ScopeFilter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := loadApp(ctx, flags)
	if err != nil {
		return err
	}
	defer app.Close()
	if err := app.buildService(ctx); err != nil {
		return err
	}
	ctx, actor, scope, err := actorContext(ctx, flags)
	if err != nil {
		return err
	}
	return fn(ctx, app, actor, scope)
}

func migrateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the activity_log table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			app, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.openDB(ctx, true); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s migrations applied (%s)\n", okMark(), app.Config().Persistence.Driver)
			return nil
		},
	}
}

type listFlags struct {
	logName     string
	subjectType string
	subjectID   string
	causerID    string
	old         string
	new         string
	date        string
	sort        string
	asc         bool
	limit       int
	offset      int
}

func (f listFlags) values() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			values.Set(key, value)
		}
	}
	set(resource.FilterLogName, f.logName)
	set(resource.FilterSubjectType, f.subjectType)
	set(resource.FilterOld, f.old)
	set(resource.FilterNew, f.new)
	set(resource.FilterLoggedAt, f.date)
	return values
}

func (f listFlags) filter(state resource.FilterState, actor types.ActorRef, scope types.ScopeFilter) types.ActivityFilter {
	return state.Apply(types.ActivityFilter{
		Actor:     actor,
		Scope:     scope,
		SubjectID: strings.TrimSpace(f.subjectID),
		CauserID:  strings.TrimSpace(f.causerID),
		Sort:      types.Sort{Field: types.ParseSortField(f.sort), Asc: f.asc},
		Pagination: types.Pagination{
			Limit:  f.limit,
			Offset: f.offset,
		},
	})
}

func listCmd(flags *rootFlags) *cobra.Command {
	lf := &listFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activity entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, flags, func(ctx context.Context, app *App, actor types.ActorRef, scope types.ScopeFilter) error {
				settings := app.Config().ActivityLog
				loc, err := settings.Location()
				if err != nil {
					return err
				}
				state, err := resource.ParseFilterState(lf.values(), settings.DateFormat, loc)
				if err != nil {
					return err
				}
				page, err := app.service.Queries().ActivityList.Query(ctx, lf.filter(state, actor, scope))
				if err != nil {
					return fmt.Errorf("failed to list activity: %w", err)
				}
				views := app.service.Presenter().PresentAll(page.Entries)
				if flags.json {
					fmt.Fprintln(cmd.OutOrStdout(), print.MaybeHighlightJSON(map[string]any{
						"entries":     views,
						"total":       page.Total,
						"next_offset": page.NextOffset,
						"has_more":    page.HasMore,
					}))
					return nil
				}
				renderEntries(cmd.OutOrStdout(), views)
				renderIndicators(cmd.OutOrStdout(), state.Indicators(resource.DefaultLabels()))
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d entries\n", len(views), page.Total)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&lf.logName, "log-name", "", "filter by log name")
	f.StringVar(&lf.subjectType, "subject-type", "", "filter by subject type")
	f.StringVar(&lf.subjectID, "subject-id", "", "filter by subject id")
	f.StringVar(&lf.causerID, "causer-id", "", "filter by causer id")
	f.StringVar(&lf.old, "old", "", "match text in old attributes")
	f.StringVar(&lf.new, "new", "", "match text in new attributes")
	f.StringVar(&lf.date, "date", "", "entries logged on this day (YYYY-MM-DD or date_format)")
	f.StringVar(&lf.sort, "sort", string(types.SortByCreatedAt), "sort column (created_at, log_name, event)")
	f.BoolVar(&lf.asc, "asc", false, "ascending order")
	f.IntVar(&lf.limit, "limit", activity.DefaultPageSize, "page size")
	f.IntVar(&lf.offset, "offset", 0, "page offset")
	return cmd
}

func showCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one activity entry with its properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			return withService(cmd, flags, func(ctx context.Context, app *App, actor types.ActorRef, scope types.ScopeFilter) error {
				entry, err := app.service.Queries().ActivityDetail.Query(ctx, types.ActivityDetailRequest{
					Actor: actor,
					Scope: scope,
					ID:    id,
				})
				if err != nil {
					return fmt.Errorf("failed to load entry: %w", err)
				}
				view := app.service.Presenter().Present(entry)
				if flags.json {
					fmt.Fprintln(cmd.OutOrStdout(), print.MaybeHighlightJSON(view))
					return nil
				}
				renderDetail(cmd.OutOrStdout(), view)
				return nil
			})
		},
	}
}

func optionsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the resolved log names, badge colors and subject types",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, flags, func(ctx context.Context, app *App, actor types.ActorRef, scope types.ScopeFilter) error {
				subjects, err := app.service.SubjectTypeOptions(ctx, actor, scope)
				if err != nil {
					return err
				}
				logNames := app.service.LogNameOptions()
				colors := app.service.LogNameColors()
				if flags.json {
					fmt.Fprintln(cmd.OutOrStdout(), print.MaybeHighlightJSON(map[string]any{
						"log_names":     logNames,
						"colors":        colors,
						"subject_types": subjects,
					}))
					return nil
				}
				renderOptions(cmd.OutOrStdout(), logNames, colors, subjects)
				renderIssues(cmd.OutOrStdout(), app.service.ConfigIssues())
				return nil
			})
		},
	}
}

func resourceCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resource",
		Short: "Print the admin resource descriptor as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, flags, func(ctx context.Context, app *App, actor types.ActorRef, scope types.ScopeFilter) error {
				res, err := app.service.Resource(ctx, actor, scope)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), print.MaybeHighlightJSON(res))
				return nil
			})
		},
	}
}

func configCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			app, err := loadApp(ctx, flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), print.MaybeHighlightJSON(app.Config()))
			return nil
		},
	}
}
