// Package pschema provides builder-style parameter schema nodes for
// describing a tool's accepted arguments.
//
// A schema is a tree of *Node values built from constructor functions and
// fluent constraint methods. Nodes are declared once, typically as package
// variables, and compiled into portable JSON descriptors by package toolspec.
//
// # Basic usage
//
// Creating simple schemas:
//
//	name := pschema.String().MinLength(1).MaxLength(80)
//	age  := pschema.Int().Min(0)
//	tags := pschema.Array(pschema.String())
//
// Creating object schemas:
//
//	user := pschema.Object(map[string]*pschema.Node{
//		"name":  pschema.String().Describe("Full name"),
//		"email": pschema.String().Format("email"),
//		"age":   pschema.Int().Min(0).Optional(),
//	})
//
// # Wrapper modifiers
//
// Optional, Nullable, and Default wrap a node without changing its base type.
// Wrappers stack in any order and any combination:
//
//	limit := pschema.Int().Min(1).Default(10)
//	note  := pschema.String().Nullable().Optional()
//
// A default may also be produced by a factory, invoked when the schema is
// compiled:
//
//	stamp := pschema.String().DefaultFunc(func() any {
//		return time.Now().Format(time.RFC3339)
//	})
//
// # Validation
//
// Validate checks runtime argument values against the schema:
//
//	err := user.Validate(map[string]any{
//		"name":  "Ada",
//		"email": "ada@example.com",
//	})
//
// Fields wrapped in Optional, Nullable, or Default may be omitted; nullable
// fields additionally accept explicit null.
package pschema
