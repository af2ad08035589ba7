package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltari/agentkit"
	"github.com/veltari/agentkit/pschema"
	"github.com/veltari/agentkit/toolspec"
)

// setupTestCatalog creates a miniredis instance and returns a connected RedisCatalog.
func setupTestCatalog(t *testing.T) (*RedisCatalog, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cat, err := NewRedisCatalog(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = cat.Close()
		mr.Close()
	})

	return cat, mr
}

func searchSpec() *toolspec.ToolSpec {
	params := pschema.Object(map[string]*pschema.Node{
		"query": pschema.String().Describe("Search query"),
		"limit": pschema.Int().Min(1).Default(10),
	})
	return toolspec.NewToolSpec("search", "Search the knowledge base", params, []string{"kb:read"})
}

func TestNewRedisCatalog(t *testing.T) {
	t.Run("successful connection", func(t *testing.T) {
		mr := miniredis.RunT(t)
		defer mr.Close()

		cat, err := NewRedisCatalog(RedisOptions{
			URL: fmt.Sprintf("redis://%s", mr.Addr()),
		})
		require.NoError(t, err)
		require.NotNil(t, cat)
		defer cat.Close()
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewRedisCatalog(RedisOptions{URL: "not-a-url"})
		require.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, err := NewRedisCatalog(RedisOptions{
			URL:            "redis://127.0.0.1:1",
			ConnectTimeout: 100 * time.Millisecond,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, agentkit.ErrCatalogUnavailable)
	})
}

func TestPublishAndGet(t *testing.T) {
	cat, _ := setupTestCatalog(t)
	ctx := context.Background()

	spec := searchSpec()
	require.NoError(t, cat.Publish(ctx, spec))

	got, err := cat.Get(ctx, "search")
	require.NoError(t, err)
	assert.Equal(t, "search", got.Name)
	assert.Equal(t, []string{"kb:read"}, got.RequiredPermissions)
	require.NotNil(t, got.Parameters)
	assert.Contains(t, got.Parameters.Properties, "query")
	assert.Equal(t, []string{"query"}, got.Parameters.Required)
}

func TestPublish_Validation(t *testing.T) {
	cat, _ := setupTestCatalog(t)
	ctx := context.Background()

	assert.Error(t, cat.Publish(ctx, nil))
	assert.Error(t, cat.Publish(ctx, &toolspec.ToolSpec{}))
}

func TestPublish_Overwrite(t *testing.T) {
	cat, _ := setupTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Publish(ctx, searchSpec()))

	updated := searchSpec()
	updated.Description = "Search the knowledge base (v2)"
	require.NoError(t, cat.Publish(ctx, updated))

	got, err := cat.Get(ctx, "search")
	require.NoError(t, err)
	assert.Equal(t, "Search the knowledge base (v2)", got.Description)

	specs, err := cat.List(ctx)
	require.NoError(t, err)
	assert.Len(t, specs, 1)
}

func TestGet_NotFound(t *testing.T) {
	cat, _ := setupTestCatalog(t)

	_, err := cat.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, agentkit.ErrToolNotFound)
}

func TestList(t *testing.T) {
	cat, _ := setupTestCatalog(t)
	ctx := context.Background()

	specs, err := cat.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, specs)

	require.NoError(t, cat.Publish(ctx, searchSpec()))
	other := toolspec.NewToolSpec("ping", "Liveness probe", pschema.Object(nil), nil)
	require.NoError(t, cat.Publish(ctx, other))

	specs, err = cat.List(ctx)
	require.NoError(t, err)
	assert.Len(t, specs, 2)
}

func TestList_SkipsCorruptEntries(t *testing.T) {
	cat, mr := setupTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Publish(ctx, searchSpec()))

	// A name in the available set whose descriptor is missing.
	_, err := mr.SAdd(availableSet, "ghost")
	require.NoError(t, err)

	specs, err := cat.List(ctx)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "search", specs[0].Name)
}

func TestUnpublish(t *testing.T) {
	cat, _ := setupTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Publish(ctx, searchSpec()))
	require.NoError(t, cat.Unpublish(ctx, "search"))

	_, err := cat.Get(ctx, "search")
	assert.ErrorIs(t, err, agentkit.ErrToolNotFound)

	specs, err := cat.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, specs)

	// Unknown name is a no-op.
	assert.NoError(t, cat.Unpublish(ctx, "missing"))
}

func TestHeartbeat(t *testing.T) {
	cat, mr := setupTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Heartbeat(ctx, "search"))

	key := fmt.Sprintf(healthKey, "search")
	val, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "ok", val)

	// Health key expires after the TTL.
	mr.FastForward(heartbeatTTL + time.Second)
	_, err = mr.Get(key)
	assert.Error(t, err)
}
