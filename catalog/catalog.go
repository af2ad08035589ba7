package catalog

import (
	"context"

	"github.com/veltari/agentkit/toolspec"
)

// Catalog defines the interface for a shared tool descriptor catalog.
//
// A catalog lets one process publish the descriptors of the tools it serves
// so other processes can list them without holding the tools themselves.
type Catalog interface {
	// Publish writes a tool descriptor to the catalog and marks the tool
	// as available.
	Publish(ctx context.Context, spec *toolspec.ToolSpec) error

	// Get returns the descriptor for a published tool.
	Get(ctx context.Context, name string) (*toolspec.ToolSpec, error)

	// List returns descriptors for all published tools.
	List(ctx context.Context) ([]*toolspec.ToolSpec, error)

	// Unpublish removes a tool descriptor from the catalog.
	Unpublish(ctx context.Context, name string) error

	// Heartbeat refreshes the health key for a publisher with a short TTL.
	Heartbeat(ctx context.Context, name string) error

	// Close closes the catalog connection.
	Close() error
}
