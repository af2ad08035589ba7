// Package tool provides the Tool interface and a builder-style Config for
// constructing tools.
//
// A tool couples four things: identifying metadata, a parameter schema
// (package pschema) describing its accepted arguments, the permissions a
// caller must hold, and the execution function itself. The compiled
// descriptor for registration is available through Spec().
//
// Example:
//
//	t, err := tool.New(tool.NewConfig().
//		SetName("search").
//		SetDescription("Search the knowledge base").
//		SetParams(pschema.Object(map[string]*pschema.Node{
//			"query": pschema.String(),
//			"limit": pschema.Int().Min(1).Default(10),
//		})).
//		SetPermissions([]string{"kb:read"}).
//		SetExecuteFunc(run))
//
// Execute validates incoming arguments against the parameter schema before
// invoking the execution function, so execution logic can assume the
// arguments are well-formed.
package tool
