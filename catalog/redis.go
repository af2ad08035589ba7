package catalog

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veltari/agentkit"
	"github.com/veltari/agentkit/toolspec"
)

const (
	availableSet  = "catalog:tools:available"
	heartbeatTTL  = 30 * time.Second
	descriptorKey = "catalog:tools:%s"
	healthKey     = "catalog:tools:%s:health"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations.
	WriteTimeout time.Duration
}

// RedisCatalog implements Catalog using go-redis/v9.
//
// Descriptors are stored as JSON under catalog:tools:<name>, with the set of
// published names in catalog:tools:available.
type RedisCatalog struct {
	client *redis.Client
}

// NewRedisCatalog creates a Redis-backed catalog and verifies connectivity.
func NewRedisCatalog(opts RedisOptions) (*RedisCatalog, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, agentkit.NewConfigurationError("catalog.new",
			fmt.Errorf("failed to parse Redis URL: %w", err))
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, agentkit.NewNetworkError("catalog.new",
			fmt.Errorf("%w: %v", agentkit.ErrCatalogUnavailable, err))
	}

	return &RedisCatalog{client: client}, nil
}

// Publish writes a tool descriptor and adds the tool to the available set.
// Publishing an existing name overwrites the stored descriptor.
func (c *RedisCatalog) Publish(ctx context.Context, spec *toolspec.ToolSpec) error {
	if spec == nil || spec.Name == "" {
		return agentkit.NewValidationError("catalog.publish",
			fmt.Errorf("descriptor must have a name"))
	}

	data, err := json.Marshal(spec)
	if err != nil {
		return agentkit.NewInternalError("catalog.publish",
			fmt.Errorf("failed to marshal descriptor: %w", err))
	}

	key := fmt.Sprintf(descriptorKey, spec.Name)
	if err := c.client.Set(ctx, key, data, 0).Err(); err != nil {
		return agentkit.NewNetworkError("catalog.publish",
			fmt.Errorf("failed to store descriptor %s: %w", spec.Name, err))
	}

	if err := c.client.SAdd(ctx, availableSet, spec.Name).Err(); err != nil {
		return agentkit.NewNetworkError("catalog.publish",
			fmt.Errorf("failed to add %s to available set: %w", spec.Name, err))
	}

	return nil
}

// Get returns the descriptor for a published tool.
// Returns ErrToolNotFound if the tool is not in the catalog.
func (c *RedisCatalog) Get(ctx context.Context, name string) (*toolspec.ToolSpec, error) {
	key := fmt.Sprintf(descriptorKey, name)
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, agentkit.NewNotFoundError("catalog.get",
				fmt.Errorf("%q: %w", name, agentkit.ErrToolNotFound))
		}
		return nil, agentkit.NewNetworkError("catalog.get",
			fmt.Errorf("failed to fetch descriptor %s: %w", name, err))
	}

	var spec toolspec.ToolSpec
	if err := json.Unmarshal([]byte(data), &spec); err != nil {
		return nil, agentkit.NewInternalError("catalog.get",
			fmt.Errorf("failed to unmarshal descriptor %s: %w", name, err))
	}

	return &spec, nil
}

// List returns descriptors for all published tools. Entries whose stored
// descriptor is missing or invalid are skipped.
func (c *RedisCatalog) List(ctx context.Context) ([]*toolspec.ToolSpec, error) {
	names, err := c.client.SMembers(ctx, availableSet).Result()
	if err != nil {
		return nil, agentkit.NewNetworkError("catalog.list",
			fmt.Errorf("failed to list available tools: %w", err))
	}

	specs := make([]*toolspec.ToolSpec, 0, len(names))
	for _, name := range names {
		spec, err := c.Get(ctx, name)
		if err != nil {
			// Skip tools with missing or invalid descriptors
			continue
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

// Unpublish removes a tool descriptor and drops the tool from the
// available set. Unpublishing an unknown name is a no-op.
func (c *RedisCatalog) Unpublish(ctx context.Context, name string) error {
	if err := c.client.SRem(ctx, availableSet, name).Err(); err != nil {
		return agentkit.NewNetworkError("catalog.unpublish",
			fmt.Errorf("failed to remove %s from available set: %w", name, err))
	}

	key := fmt.Sprintf(descriptorKey, name)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return agentkit.NewNetworkError("catalog.unpublish",
			fmt.Errorf("failed to delete descriptor %s: %w", name, err))
	}

	return nil
}

// Heartbeat refreshes the publisher health key with a 30s TTL.
func (c *RedisCatalog) Heartbeat(ctx context.Context, name string) error {
	key := fmt.Sprintf(healthKey, name)
	if err := c.client.Set(ctx, key, "ok", heartbeatTTL).Err(); err != nil {
		return agentkit.NewNetworkError("catalog.heartbeat",
			fmt.Errorf("failed to set heartbeat for %s: %w", name, err))
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCatalog) Close() error {
	return c.client.Close()
}
