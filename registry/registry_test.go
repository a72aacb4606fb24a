package registry

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-activitylog/pkg/types"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestStatic_NormalizesEntities(t *testing.T) {
	reg := NewStatic(
		types.RegisteredEntity{Resource: " posts ", Model: "blog_post"},
		types.RegisteredEntity{Resource: "articles", Model: "blog_post"},
		types.RegisteredEntity{Model: "models.User"},
		types.RegisteredEntity{Resource: "empty"},
	)

	entities, err := reg.Entities(context.Background())
	require.NoError(t, err)
	require.Equal(t, []types.RegisteredEntity{
		{Resource: "posts", Model: "blog_post"},
		{Resource: "models.User", Model: "models.User"},
	}, entities)
}

func TestChain_FirstRegistryWins(t *testing.T) {
	chain := Chain{
		NewStatic(types.RegisteredEntity{Resource: "posts", Model: "blog_post"}),
		nil,
		NewStatic(
			types.RegisteredEntity{Resource: "other", Model: "blog_post"},
			types.RegisteredEntity{Resource: "tags", Model: "tag"},
		),
	}
	entities, err := chain.Entities(context.Background())
	require.NoError(t, err)
	require.Equal(t, []types.RegisteredEntity{
		{Resource: "posts", Model: "blog_post"},
		{Resource: "tags", Model: "tag"},
	}, entities)
}

func TestSubjectRegistry_DiscoversDistinctTypes(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	for _, stmt := range []string{
		"INSERT INTO activity_log (id, subject_type, created_at) VALUES ('a', 'users', CURRENT_TIMESTAMP)",
		"INSERT INTO activity_log (id, subject_type, created_at) VALUES ('b', 'blog_post', CURRENT_TIMESTAMP)",
		"INSERT INTO activity_log (id, subject_type, created_at) VALUES ('c', 'users', CURRENT_TIMESTAMP)",
		"INSERT INTO activity_log (id, subject_type, created_at) VALUES ('d', NULL, CURRENT_TIMESTAMP)",
	} {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}

	reg, err := NewSubjectRegistry(SubjectRegistryConfig{DB: db})
	require.NoError(t, err)
	entities, err := reg.Entities(ctx)
	require.NoError(t, err)
	require.Equal(t, []types.RegisteredEntity{
		{Resource: "blog_post", Model: "blog_post"},
		{Resource: "users", Model: "users"},
	}, entities)

	_, err = NewSubjectRegistry(SubjectRegistryConfig{})
	require.Error(t, err)
}

func newTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	content, err := os.ReadFile("../data/sql/migrations/sqlite/00001_activity_log.up.sql")
	require.NoError(t, err)
	for _, stmt := range strings.Split(string(content), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}
