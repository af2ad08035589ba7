package toolspec

import (
	"github.com/veltari/agentkit/pschema"
)

// defaultCompiler backs the package-level helpers. Schemas are declared as
// package variables and compiled from the registration path, so one shared
// cache for the process is the common case.
var defaultCompiler = NewCompiler()

// Compile compiles the node with the package-level compiler. Repeated calls
// with the same node return the same descriptor pointer.
func Compile(n *pschema.Node) *Schema {
	return defaultCompiler.Compile(n)
}

// NewToolSpec assembles a tool descriptor using the package-level compiler.
//
// The parameters node should be object-kind: the runtime invokes tools with a
// JSON object of named arguments. Neither the name nor the permission list is
// validated here; the registry that accepts the descriptor owns those rules.
func NewToolSpec(name, description string, params *pschema.Node, permissions []string) *ToolSpec {
	return defaultCompiler.ToolSpec(name, description, params, permissions)
}
