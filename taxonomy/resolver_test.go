package taxonomy

import (
	"encoding/json"
	"testing"

	"github.com/goliatone/go-activitylog/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestLogNameOptions_BuiltinOrder(t *testing.T) {
	cfg := Config{
		Models:    CategoryConfig{Enabled: true, LogName: "model"},
		Resources: CategoryConfig{Enabled: true, LogName: "resource"},
	}

	options := LogNameOptions(cfg)
	require.Equal(t, []string{"resource", "model"}, options.Keys())
	require.Equal(t, map[string]string{"resource": "resource", "model": "model"}, options.Map())
}

func TestLogNameOptions_SkipsDisabledAndEmpty(t *testing.T) {
	cfg := Config{
		Resources:     CategoryConfig{Enabled: false, LogName: "resource"},
		Models:        CategoryConfig{Enabled: true, LogName: "  "},
		Access:        CategoryConfig{Enabled: true, LogName: "access"},
		Notifications: CategoryConfig{Enabled: true, LogName: "notification"},
		Custom:        []CustomCategory{{LogName: ""}, {LogName: "billing"}},
	}

	require.Equal(t, []string{"access", "notification", "billing"}, LogNameOptions(cfg).Keys())

	issues := Validate(cfg)
	require.Len(t, issues, 2)
	require.Equal(t, "models", issues[0].Category)
	require.Equal(t, "custom[0]", issues[1].Category)
}

func TestLogNameOptions_DuplicateKeepsFirstPosition(t *testing.T) {
	cfg := Config{
		Resources: CategoryConfig{Enabled: true, LogName: "shared"},
		Models:    CategoryConfig{Enabled: true, LogName: "model"},
		Custom:    []CustomCategory{{LogName: "shared"}},
	}
	require.Equal(t, []string{"shared", "model"}, LogNameOptions(cfg).Keys())
}

func TestLogNameColors_UncoloredCategoryAbsent(t *testing.T) {
	cfg := Config{
		Resources: CategoryConfig{Enabled: true, LogName: "resource", Color: "success"},
		Access:    CategoryConfig{Enabled: true, LogName: "access"},
	}

	colors := LogNameColors(cfg)
	require.Equal(t, map[string]string{"success": "resource"}, colors.Map())
	_, found := colors.KeyFor("access")
	require.False(t, found)
	require.Empty(t, ColorFor(colors, "access"))
	require.Equal(t, "success", ColorFor(colors, "resource"))
}

func TestLogNameColors_SameLogNameKeepsLastColor(t *testing.T) {
	cfg := Config{
		Custom: []CustomCategory{
			{LogName: "security", Color: "warning"},
			{LogName: "security", Color: "danger"},
		},
	}
	require.Equal(t, map[string]string{"danger": "security"}, LogNameColors(cfg).Map())
}

func TestLogNameColors_ColorCollisionLastWriteWins(t *testing.T) {
	cfg := Config{
		Resources: CategoryConfig{Enabled: true, LogName: "resource", Color: "danger"},
		Access:    CategoryConfig{Enabled: true, LogName: "access", Color: "danger"},
	}
	require.Equal(t, map[string]string{"danger": "access"}, LogNameColors(cfg).Map())
}

func TestResolvers_Scenario(t *testing.T) {
	cfg := Config{
		Resources: CategoryConfig{Enabled: true, LogName: "resource", Color: "success"},
		Models:    CategoryConfig{Enabled: false},
		Custom:    []CustomCategory{{LogName: "security", Color: "danger"}},
	}

	options := LogNameOptions(cfg)
	require.Equal(t, []string{"resource", "security"}, options.Keys())
	require.Equal(t, map[string]string{"resource": "resource", "security": "security"}, options.Map())

	colors := LogNameColors(cfg)
	require.Equal(t, map[string]string{"success": "resource", "danger": "security"}, colors.Map())

	raw, err := json.Marshal(colors)
	require.NoError(t, err)
	require.JSONEq(t, `{"success":"resource","danger":"security"}`, string(raw))
	require.Equal(t, `{"success":"resource","danger":"security"}`, string(raw))
}

func TestResolvers_Idempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Custom = []CustomCategory{{LogName: "Billing", Color: "primary"}}

	require.Equal(t, LogNameOptions(cfg).Keys(), LogNameOptions(cfg).Keys())
	require.Equal(t, LogNameColors(cfg).Map(), LogNameColors(cfg).Map())

	entities := []types.RegisteredEntity{{Resource: "posts", Model: "blog_post"}}
	query := SubjectQuery{Enabled: true}
	require.Equal(t, SubjectTypeOptions(entities, query).Map(), SubjectTypeOptions(entities, query).Map())
}

func TestResolvers_EmptyConfig(t *testing.T) {
	var cfg Config
	require.True(t, cfg.IsZero())
	require.Zero(t, LogNameOptions(cfg).Len())
	require.Zero(t, LogNameColors(cfg).Len())
	require.Empty(t, Validate(cfg))

	raw, err := json.Marshal(LogNameOptions(cfg))
	require.NoError(t, err)
	require.Equal(t, "{}", string(raw))
}

func TestSubjectTypeOptions(t *testing.T) {
	entities := []types.RegisteredEntity{
		{Resource: "posts", Model: `App\Models\BlogPost`},
		{Resource: "users", Model: "models.User"},
		{Resource: "activity-logs", Model: "activitylog.Activity"},
		{Resource: "invoices", Model: "billing.Invoice"},
		{Resource: "tags", Model: "tag_group"},
		{Resource: "orphans", Model: ""},
	}

	options := SubjectTypeOptions(entities, SubjectQuery{
		Enabled: true,
		Exclude: []string{"invoices"},
	})
	require.Equal(t, []string{`App\Models\BlogPost`, "models.User", "tag_group"}, options.Keys())
	label, _ := options.Get(`App\Models\BlogPost`)
	require.Equal(t, "Blog Post", label)
	label, _ = options.Get("tag_group")
	require.Equal(t, "Tag Group", label)

	disabled := SubjectTypeOptions(entities, SubjectQuery{Enabled: false})
	require.Zero(t, disabled.Len())
}

func TestSubjectTypeOptions_CustomActivityResource(t *testing.T) {
	entities := []types.RegisteredEntity{
		{Resource: "audit", Model: "audit.Entry"},
		{Resource: "activity-logs", Model: "crm.Lead"},
	}
	options := SubjectTypeOptions(entities, SubjectQuery{Enabled: true, ActivityResource: "audit"})
	require.Equal(t, []string{"crm.Lead"}, options.Keys())
}

func TestHeadline(t *testing.T) {
	cases := map[string]string{
		"blog_post":  "Blog Post",
		"BlogPost":   "Blog Post",
		"blog-post":  "Blog Post",
		"user":       "User",
		"":           "",
		"order_item": "Order Item",
	}
	for input, expected := range cases {
		require.Equal(t, expected, Headline(input), input)
	}
	require.Equal(t, "BlogPost", ShortName("*models.BlogPost"))
	require.Equal(t, "Blog Post", TypeLabel("content/blog_post"))
}
