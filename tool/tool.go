package tool

import (
	"context"

	"github.com/veltari/agentkit/pschema"
	"github.com/veltari/agentkit/toolspec"
)

// Tool is the interface for callable tools.
// Tools receive a JSON object of named arguments from the agent runtime and
// return a JSON object of results.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Version returns the semantic version of this tool.
	Version() string

	// Description returns a human-readable description of what this tool does.
	Description() string

	// Tags returns a list of tags for categorizing and discovering this tool.
	Tags() []string

	// Permissions returns the permission names a caller must hold to
	// invoke this tool.
	Permissions() []string

	// Params returns the parameter schema describing the tool's accepted
	// arguments.
	Params() *pschema.Node

	// Spec returns the compiled descriptor advertised to the agent runtime.
	Spec() *toolspec.ToolSpec

	// Execute runs the tool with the given arguments.
	// Context is used for cancellation, deadlines, and request-scoped values.
	Execute(ctx context.Context, args map[string]any) (map[string]any, error)
}
