// Package agentkit provides an SDK for describing callable tools and
// advertising them to an LLM-driven agent runtime.
//
// A tool's accepted arguments are declared once, as a builder-style parameter
// schema (package pschema), and compiled into a portable JSON descriptor
// (package toolspec) that the runtime uses to decide when and how to call the
// tool. The remaining packages wire that descriptor into a running system:
//
//   - tool: the Tool interface and its builder-style Config
//   - registry: in-process tool registry and etcd-backed server presence
//   - catalog: redis-backed descriptor catalog read by the runtime
//   - component: toolkit.yaml manifest loading
//   - telemetry: OpenTelemetry tracer provider helpers
//
// # Declaring a tool
//
//	params := pschema.Object(map[string]*pschema.Node{
//		"query": pschema.String().Describe("Search query"),
//		"limit": pschema.Int().Min(1).Max(100).Default(10),
//	})
//
//	t, err := tool.New(tool.NewConfig().
//		SetName("search").
//		SetDescription("Search the knowledge base").
//		SetParams(params).
//		SetPermissions([]string{"kb:read"}).
//		SetExecuteFunc(run))
//
// The compiled descriptor is available as t.Spec() and is computed at most
// once per schema; registering the same schema from several tools shares one
// descriptor.
//
// # Error handling
//
// Fallible operations return structured errors that work with errors.Is and
// errors.As:
//
//	if errors.Is(err, agentkit.ErrToolNotFound) {
//		// handle missing tool
//	}
//
// The schema compiler itself never fails; see package toolspec for its
// degradation rules.
package agentkit
