package toolspec

import (
	"log/slog"
	"reflect"
	"slices"
	"sort"

	"github.com/veltari/agentkit/pschema"
)

// Compiler turns parameter schema nodes into descriptors.
//
// Results are memoized by node identity: compiling the same *pschema.Node
// twice returns the same *Schema pointer. The cache grows monotonically and
// is never evicted; the set of schemas in a process is finite and static.
//
// Compilation is total. It never panics and never returns an error:
// unrecognized node shapes degrade to {type: "any"} and failing default
// factories degrade to "no default". A panic during tool registration would
// silently remove the whole batch of tools being registered, which is worse
// than a degraded descriptor.
//
// A Compiler is not safe for concurrent use. The registration path runs on a
// single goroutine at startup; callers that compile from several goroutines
// must serialize access themselves (registry.Registry does).
type Compiler struct {
	cache  map[*pschema.Node]*Schema
	logger *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger installs a logger that records, at debug level, every spot where
// the compiler degraded its output. Degradation never changes the result;
// without a logger it is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCompiler creates an empty compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		cache:  make(map[*pschema.Node]*Schema),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile returns the descriptor for the given schema node, computing it on
// first use and returning the cached descriptor afterwards.
func (c *Compiler) Compile(n *pschema.Node) *Schema {
	return c.compileField(n)
}

// ToolSpec assembles the final tool descriptor. The parameters node should be
// object-kind; name and permissions are passed through unvalidated, since
// checking them is the registry's job.
func (c *Compiler) ToolSpec(name, description string, params *pschema.Node, permissions []string) *ToolSpec {
	return &ToolSpec{
		Name:                name,
		Description:         description,
		Parameters:          c.Compile(params),
		RequiredPermissions: permissions,
	}
}

// compileField compiles one field position: wrapper layers resolved, field
// semantics (optional, nullable, default, description) merged over the base
// descriptor. Results are cached under the outermost node so a wrapped schema
// reused across fields compiles once.
func (c *Compiler) compileField(n *pschema.Node) *Schema {
	if s, ok := c.cache[n]; ok {
		return s
	}

	info := c.resolveWrappers(n)
	base := c.compileNode(info.base)

	if !info.optional && !info.nullable && !info.hasDefault &&
		(info.description == "" || info.description == base.Description) {
		// Nothing field-specific to layer on; share the base descriptor.
		// For self-referential schemas this shared pointer is what ties
		// the nested occurrence back to the enclosing descriptor.
		c.cache[n] = base
		return base
	}

	merged := base.clone()
	if info.description != "" {
		merged.Description = info.description
	}
	if info.hasDefault {
		merged.Default = info.defaultValue
	}
	if info.nullable {
		merged.Type = merged.Type.withNull()
	}
	if info.optional {
		merged.Optional = true
	}
	c.cache[n] = merged
	return merged
}

// compileNode compiles a base (non-wrapper) node, dispatching on its type
// family.
func (c *Compiler) compileNode(n *pschema.Node) *Schema {
	if n == nil {
		c.logger.Debug("nil schema node; emitting any")
		return &Schema{Type: TypeSet{"any"}}
	}
	if s, ok := c.cache[n]; ok {
		return s
	}

	var s *Schema
	switch n.Kind {
	case pschema.KindObject:
		return c.compileObject(n)

	case pschema.KindString:
		s = &Schema{
			Type:      TypeSet{"string"},
			MinLength: n.MinLen,
			MaxLength: n.MaxLen,
			Format:    n.Fmt,
			Pattern:   n.Regex,
		}

	case pschema.KindNumber:
		s = &Schema{Type: TypeSet{"number"}}
		if n.IntegerOnly {
			s.Type = TypeSet{"integer"}
		}
		if n.Minimum != nil {
			if n.ExclusiveMin {
				s.ExclusiveMinimum = n.Minimum
			} else {
				s.Minimum = n.Minimum
			}
		}
		if n.Maximum != nil {
			if n.ExclusiveMax {
				s.ExclusiveMaximum = n.Maximum
			} else {
				s.Maximum = n.Maximum
			}
		}

	case pschema.KindBoolean:
		s = &Schema{Type: TypeSet{"boolean"}}

	case pschema.KindEnum:
		s = &Schema{Type: TypeSet{"string"}, Enum: slices.Clone(n.Members)}

	case pschema.KindLiteral:
		s = &Schema{Const: n.Value}
		if name := jsonTypeName(n.Value); name != "" {
			s.Type = TypeSet{name}
		}

	case pschema.KindArray:
		s = &Schema{
			Type:     TypeSet{"array"},
			MinItems: n.MinElems,
			MaxItems: n.MaxElems,
		}
		if n.Desc != "" {
			s.Description = n.Desc
		}
		// Cache before descending into the element: an element referring
		// back to this array must find it already present.
		c.cache[n] = s
		s.Items = c.compileField(n.Elem)
		return s

	case pschema.KindMap:
		s = &Schema{Type: TypeSet{"object"}}
		if n.Desc != "" {
			s.Description = n.Desc
		}
		c.cache[n] = s
		s.AdditionalProperties = c.compileField(n.Elem)
		return s

	default:
		c.logger.Debug("unsupported schema kind; emitting any", "kind", string(n.Kind))
		s = &Schema{Type: TypeSet{"any"}}
	}

	if n.Desc != "" {
		s.Description = n.Desc
	}
	c.cache[n] = s
	return s
}

// compileObject walks an object schema field by field.
//
// The empty shell is cached under the object's identity before any field is
// compiled, and the properties map is filled in place afterwards. This
// ordering is correctness-critical, not an optimization: a field whose type
// transitively refers back to this object finds the shell in the cache and
// reuses it, which is what breaks the recursion.
func (c *Compiler) compileObject(n *pschema.Node) *Schema {
	if s, ok := c.cache[n]; ok {
		return s
	}

	shell := &Schema{
		Type:       TypeSet{"object"},
		Properties: make(map[string]*Schema, len(n.Fields)),
	}
	if n.Desc != "" {
		shell.Description = n.Desc
	}
	c.cache[n] = shell

	names := make([]string, 0, len(n.Fields))
	for name := range n.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	// Required is written before the field walk so that a field referring
	// back into this object through a wrapper clones a complete shell. Any
	// wrapper layer makes a field omittable, so the required set is exactly
	// the unwrapped fields.
	var required []string
	for _, name := range names {
		if f := n.Fields[name]; f != nil && !f.IsWrapper() {
			required = append(required, name)
		}
	}
	shell.Required = required

	for _, name := range names {
		shell.Properties[name] = c.compileField(n.Fields[name])
	}
	return shell
}

// jsonTypeName maps a literal's Go value to its JSON type name.
// Unrepresentable values return "" and the type keyword is omitted.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	}
	return ""
}
