package tool

import (
	"context"
	"errors"

	"github.com/veltari/agentkit/pschema"
	"github.com/veltari/agentkit/toolspec"
)

// ExecuteFunc is a function that implements the tool's execution logic.
type ExecuteFunc func(ctx context.Context, args map[string]any) (map[string]any, error)

// Config holds the configuration for building a Tool.
type Config struct {
	name        string
	version     string
	description string
	tags        []string
	permissions []string
	params      *pschema.Node
	executeFunc ExecuteFunc
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		version:     "1.0.0",
		tags:        []string{},
		permissions: []string{},
		params:      pschema.Object(nil),
	}
}

// SetName sets the tool name.
func (c *Config) SetName(name string) *Config {
	c.name = name
	return c
}

// SetVersion sets the tool version.
func (c *Config) SetVersion(version string) *Config {
	c.version = version
	return c
}

// SetDescription sets the tool description.
func (c *Config) SetDescription(desc string) *Config {
	c.description = desc
	return c
}

// SetTags sets the tool tags.
func (c *Config) SetTags(tags []string) *Config {
	c.tags = tags
	return c
}

// SetPermissions sets the permissions required to invoke the tool.
func (c *Config) SetPermissions(permissions []string) *Config {
	c.permissions = permissions
	return c
}

// SetParams sets the parameter schema. The node should be object-kind: the
// runtime invokes tools with a JSON object of named arguments.
func (c *Config) SetParams(params *pschema.Node) *Config {
	c.params = params
	return c
}

// SetExecuteFunc sets the execution function.
func (c *Config) SetExecuteFunc(fn ExecuteFunc) *Config {
	c.executeFunc = fn
	return c
}

// kitTool is the internal implementation of the Tool interface.
type kitTool struct {
	name        string
	version     string
	description string
	tags        []string
	permissions []string
	params      *pschema.Node
	executeFunc ExecuteFunc
}

// New creates a new Tool from the provided Config.
// Returns an error if required fields (name, executeFunc) are missing.
func New(cfg *Config) (Tool, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.name == "" {
		return nil, errors.New("tool name is required")
	}

	if cfg.executeFunc == nil {
		return nil, errors.New("execute function is required")
	}

	return &kitTool{
		name:        cfg.name,
		version:     cfg.version,
		description: cfg.description,
		tags:        cfg.tags,
		permissions: cfg.permissions,
		params:      cfg.params,
		executeFunc: cfg.executeFunc,
	}, nil
}

// Name returns the tool name.
func (t *kitTool) Name() string {
	return t.name
}

// Version returns the tool version.
func (t *kitTool) Version() string {
	return t.version
}

// Description returns the tool description.
func (t *kitTool) Description() string {
	return t.description
}

// Tags returns the tool tags.
func (t *kitTool) Tags() []string {
	return t.tags
}

// Permissions returns the required permission names.
func (t *kitTool) Permissions() []string {
	return t.permissions
}

// Params returns the parameter schema.
func (t *kitTool) Params() *pschema.Node {
	return t.params
}

// Spec returns the compiled tool descriptor. The underlying descriptor is
// computed once per schema and shared across tools using the same schema.
func (t *kitTool) Spec() *toolspec.ToolSpec {
	return toolspec.NewToolSpec(t.name, t.description, t.params, t.permissions)
}

// Execute validates the arguments against the parameter schema and runs the
// tool's execution function.
func (t *kitTool) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	if t.params != nil {
		if err := t.params.Validate(args); err != nil {
			return nil, err
		}
	}

	return t.executeFunc(ctx, args)
}
