package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPropertiesReservedKeys(t *testing.T) {
	props := Properties{
		"old":        map[string]any{"title": "draft"},
		"attributes": map[string]any{"title": "published"},
		"ip":         "10.0.0.1",
	}

	require.Equal(t, 3, props.Len())
	require.Equal(t, "draft", props.Old()["title"])
	require.Equal(t, "published", props.Attributes()["title"])
	require.Equal(t, map[string]any{"ip": "10.0.0.1"}, props.Extra())
}

func TestPropertiesMissingOrMalformedNested(t *testing.T) {
	props := Properties{
		"old":        "not-a-map",
		"attributes": map[string]any{},
	}
	require.Nil(t, props.Old())
	require.Nil(t, props.Attributes())
	require.Nil(t, props.Extra())

	var empty Properties
	require.Zero(t, empty.Len())
	require.Nil(t, empty.Old())
	require.Nil(t, empty.Clone())
}

func TestParseSortField(t *testing.T) {
	require.Equal(t, SortByLogName, ParseSortField(" LOG_NAME "))
	require.Equal(t, SortByEvent, ParseSortField("event"))
	require.Equal(t, SortByCreatedAt, ParseSortField("subject_type"))
}

func TestActorRefIsSystemAdmin(t *testing.T) {
	require.True(t, ActorRef{Type: "System_Admin"}.IsSystemAdmin())
	require.True(t, ActorRef{Type: "superadmin"}.IsSystemAdmin())
	require.False(t, ActorRef{Type: ActorRoleTenantAdmin}.IsSystemAdmin())
	require.True(t, ActorRef{Type: " support "}.IsSupport())
}
