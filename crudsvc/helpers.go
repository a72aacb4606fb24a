package crudsvc

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/goliatone/go-activitylog/resource"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

var filterKeys = []string{
	resource.FilterLogName,
	resource.FilterSubjectType,
	resource.FilterOld,
	resource.FilterNew,
	resource.FilterLoggedAt,
}

func filterValues(ctx crud.Context) url.Values {
	values := url.Values{}
	for _, key := range filterKeys {
		if raw := strings.TrimSpace(ctx.Query(key)); raw != "" {
			values.Set(key, raw)
		}
	}
	return values
}

func queryInt(ctx crud.Context, key string, def int) int {
	if value := strings.TrimSpace(ctx.Query(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return def
}

func querySort(ctx crud.Context) types.Sort {
	field := ctx.Query("sort")
	desc := true
	// "-log_name" style sorting, as well as an explicit order param.
	if strings.HasPrefix(field, "-") {
		field = strings.TrimPrefix(field, "-")
	} else if field != "" {
		desc = false
	}
	switch strings.ToLower(strings.TrimSpace(ctx.Query("order"))) {
	case "asc":
		desc = false
	case "desc":
		desc = true
	}
	return types.Sort{Field: types.ParseSortField(field), Asc: !desc}
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryValidation, "go-activitylog: invalid activity id").
			WithCode(goerrors.CodeBadRequest).
			WithTextCode("ACTIVITY_ID_INVALID")
	}
	return id, nil
}

func mapQueryError(err error) error {
	if err == nil {
		return nil
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return err
	}
	switch {
	case errors.Is(err, types.ErrActivityNotFound):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "go-activitylog: activity entry not found").
			WithCode(goerrors.CodeNotFound).
			WithTextCode("ACTIVITY_NOT_FOUND")
	case errors.Is(err, types.ErrUnauthorizedScope), errors.Is(err, types.ErrTenantScopeRequired):
		return goerrors.Wrap(err, goerrors.CategoryAuthz, "go-activitylog: activity not visible in scope").
			WithCode(goerrors.CodeForbidden).
			WithTextCode("SCOPE_DENIED")
	case errors.Is(err, types.ErrActorRequired), errors.Is(err, types.ErrActivityIDRequired):
		return goerrors.Wrap(err, goerrors.CategoryValidation, "go-activitylog: invalid activity request").
			WithCode(goerrors.CodeBadRequest)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "go-activitylog: activity query failed").
		WithCode(goerrors.CodeInternal)
}
