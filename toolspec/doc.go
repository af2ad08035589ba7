// Package toolspec compiles parameter schemas into portable tool descriptors.
//
// The compiler walks a pschema.Node tree and produces a JSON-Schema-like
// Schema value describing the tool's accepted arguments, plus the enclosing
// ToolSpec record that a registration layer advertises to an LLM-driven agent
// runtime.
//
// # Compilation model
//
// Compilation is a pure structural transform with three load-bearing rules:
//
//   - Total: it never panics and never returns an error. Shapes the compiler
//     does not recognize become {type: "any"}; a default-value factory that
//     panics yields a field with no default. A failure here would abort
//     registration of every tool in the same batch, so degraded output is
//     preferred to no output.
//
//   - Memoized by identity: each distinct *pschema.Node compiles to exactly
//     one *Schema, and repeated compilations return that same pointer.
//
//   - Cycle-safe: an object descriptor is cached before its fields are
//     walked, so schemas that refer back to themselves compile without
//     unbounded recursion, and the nested occurrence is the same descriptor
//     pointer as the outer one.
//
// # Usage
//
//	params := pschema.Object(map[string]*pschema.Node{
//		"name": pschema.String(),
//		"age":  pschema.Number().Optional(),
//		"tags": pschema.Array(pschema.String()).Default([]string{}),
//	})
//
//	spec := toolspec.NewToolSpec("register_user", "Register a user",
//		params, []string{"users:write"})
//
// spec.Parameters now describes name as required, age as an optional number,
// and tags as an optional array of strings with default [].
//
// The package-level helpers share one process-wide compiler and are meant for
// the single-goroutine registration path at startup. Use NewCompiler for an
// isolated cache, and serialize access if compiling concurrently.
package toolspec
