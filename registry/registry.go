package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/veltari/agentkit"
	"github.com/veltari/agentkit/tool"
	"github.com/veltari/agentkit/toolspec"
)

// Registry is an in-process tool registry.
//
// It holds registered tools keyed by name and compiles each tool's parameter
// schema once, through a registry-owned compiler, so that tools sharing a
// schema share one compiled descriptor.
//
// Thread-safety: all methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	tools    map[string]tool.Tool
	specs    map[string]*toolspec.ToolSpec
	compiler *toolspec.Compiler
	closed   bool

	logger    *slog.Logger
	tracer    trace.Tracer
	regCount  metric.Int64Counter
	execCount metric.Int64Counter
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer used for registration and execution spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Registry) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithMeter sets the meter used for registration and execution counters.
func WithMeter(meter metric.Meter) Option {
	return func(r *Registry) {
		if meter == nil {
			return
		}
		r.regCount, _ = meter.Int64Counter("agentkit.registry.registrations")
		r.execCount, _ = meter.Int64Counter("agentkit.registry.executions")
	}
}

// New creates an empty Registry.
//
// Without options the registry logs nothing, records no spans, and records
// no metrics.
func New(opts ...Option) *Registry {
	meter := metricnoop.NewMeterProvider().Meter("agentkit-registry")
	regCount, _ := meter.Int64Counter("agentkit.registry.registrations")
	execCount, _ := meter.Int64Counter("agentkit.registry.executions")

	r := &Registry{
		tools:     make(map[string]tool.Tool),
		specs:     make(map[string]*toolspec.ToolSpec),
		compiler:  toolspec.NewCompiler(),
		logger:    slog.New(slog.DiscardHandler),
		tracer:    noop.NewTracerProvider().Tracer("agentkit-registry"),
		regCount:  regCount,
		execCount: execCount,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a tool to the registry and compiles its descriptor.
//
// Returns ErrDuplicateTool if a tool with the same name is already
// registered, and ErrRegistryClosed after Close.
func (r *Registry) Register(ctx context.Context, t tool.Tool) error {
	_, span := r.tracer.Start(ctx, "registry.register")
	defer span.End()

	if t == nil {
		return agentkit.NewValidationError("registry.register", errors.New("tool cannot be nil"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return agentkit.NewInternalError("registry.register", agentkit.ErrRegistryClosed)
	}

	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return agentkit.NewValidationError("registry.register",
			fmt.Errorf("%q: %w", name, agentkit.ErrDuplicateTool))
	}

	r.tools[name] = t
	r.specs[name] = r.compiler.ToolSpec(name, t.Description(), t.Params(), t.Permissions())

	r.regCount.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", name)))
	r.logger.Debug("tool registered", "tool", name, "version", t.Version())

	return nil
}

// RegisterBatch registers multiple tools.
//
// Each tool is registered independently: a failure on one tool does not
// prevent the others from registering. The returned error joins the
// per-tool failures, or is nil if all registrations succeeded.
func (r *Registry) RegisterBatch(ctx context.Context, tools []tool.Tool) error {
	var errs []error
	for _, t := range tools {
		if err := r.Register(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get returns the registered tool with the given name.
//
// Returns ErrToolNotFound if no tool with that name is registered.
func (r *Registry) Get(name string) (tool.Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tools[name]
	if !exists {
		return nil, agentkit.NewNotFoundError("registry.get",
			fmt.Errorf("%q: %w", name, agentkit.ErrToolNotFound))
	}
	return t, nil
}

// Spec returns the compiled descriptor for the named tool.
//
// Returns ErrToolNotFound if no tool with that name is registered.
func (r *Registry) Spec(name string) (*toolspec.ToolSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, exists := r.specs[name]
	if !exists {
		return nil, agentkit.NewNotFoundError("registry.spec",
			fmt.Errorf("%q: %w", name, agentkit.ErrToolNotFound))
	}
	return spec, nil
}

// Specs returns the compiled descriptors for all registered tools,
// sorted by tool name. This is the set advertised to the agent runtime.
func (r *Registry) Specs() []*toolspec.ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]*toolspec.ToolSpec, 0, len(r.specs))
	for _, spec := range r.specs {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// List returns the names of all registered tools, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute looks up the named tool and runs it with the given arguments.
//
// Returns ErrToolNotFound if no tool with that name is registered. Argument
// validation is handled by the tool itself.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	ctx, span := r.tracer.Start(ctx, "registry.execute")
	defer span.End()

	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	r.execCount.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", name)))
	return t.Execute(ctx, args)
}

// Close marks the registry as closed. Subsequent Register calls fail with
// ErrRegistryClosed. Lookup methods continue to work so in-flight callers
// can drain.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
