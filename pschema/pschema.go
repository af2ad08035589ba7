package pschema

// Kind identifies the type family of a schema node.
type Kind string

// Base type families.
const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindEnum    Kind = "enum"
	KindLiteral Kind = "literal"
	KindMap     Kind = "map"
	KindObject  Kind = "object"
)

// Wrapper modifiers. A wrapper decorates another node with optional, nullable,
// or default semantics without altering its base type family.
const (
	KindOptional Kind = "optional"
	KindNullable Kind = "nullable"
	KindDefault  Kind = "default"
)

// Node is one parameter-schema value: a base type with its validation
// constraints, or a wrapper modifier around another node.
//
// Nodes are declared once, as package-level values, and must not be modified
// after the tools using them have been registered. The descriptor compiler
// keys its cache on node identity, so the same *Node used in several places
// compiles to one shared descriptor.
//
// Self-referential schemas are expressed by assigning into an object's Fields
// map after construction:
//
//	var section = pschema.Object(map[string]*pschema.Node{
//		"title": pschema.String(),
//	})
//
//	func init() {
//		section.Fields["children"] = pschema.Array(section).Optional()
//	}
type Node struct {
	Kind Kind

	// Desc is the human-readable description attached to this node.
	Desc string

	// Wrapped is the node decorated by an optional/nullable/default wrapper.
	Wrapped *Node

	// DefaultValue and DefaultFn carry a default wrapper's payload.
	// DefaultFn, when set, is invoked with no arguments at compile time.
	DefaultValue any
	DefaultFn    func() any

	// Fields holds an object's named field schemas.
	Fields map[string]*Node

	// Elem is the element schema of an array or the value schema of a map.
	Elem *Node

	// Members holds an enum's allowed string values.
	Members []string

	// Value is a literal's constant value.
	Value any

	// String constraints.
	MinLen *int
	MaxLen *int
	Fmt    string
	Regex  string

	// Number constraints.
	Minimum      *float64
	Maximum      *float64
	ExclusiveMin bool
	ExclusiveMax bool
	IntegerOnly  bool

	// Array constraints.
	MinElems *int
	MaxElems *int
}

// String creates a string schema node.
func String() *Node {
	return &Node{Kind: KindString}
}

// Number creates a number schema node accepting integers and floats.
func Number() *Node {
	return &Node{Kind: KindNumber}
}

// Int creates a number schema node restricted to integers.
func Int() *Node {
	return &Node{Kind: KindNumber, IntegerOnly: true}
}

// Bool creates a boolean schema node.
func Bool() *Node {
	return &Node{Kind: KindBoolean}
}

// Array creates an array schema node with the given element schema.
func Array(elem *Node) *Node {
	return &Node{Kind: KindArray, Elem: elem}
}

// Enum creates a schema node accepting one of the given string values.
func Enum(members ...string) *Node {
	return &Node{Kind: KindEnum, Members: members}
}

// Literal creates a schema node accepting exactly the given constant value.
func Literal(value any) *Node {
	return &Node{Kind: KindLiteral, Value: value}
}

// Map creates a schema node for an object with arbitrary string keys whose
// values all match the given schema.
func Map(elem *Node) *Node {
	return &Node{Kind: KindMap, Elem: elem}
}

// Object creates an object schema node with the given named fields.
// A nil fields map creates an object with no declared fields.
func Object(fields map[string]*Node) *Node {
	if fields == nil {
		fields = make(map[string]*Node)
	}
	return &Node{Kind: KindObject, Fields: fields}
}

// Optional wraps the node so the field it describes may be omitted.
func (n *Node) Optional() *Node {
	return &Node{Kind: KindOptional, Wrapped: n}
}

// Nullable wraps the node so it additionally accepts null. A nullable field
// may also be omitted.
func (n *Node) Nullable() *Node {
	return &Node{Kind: KindNullable, Wrapped: n}
}

// Default wraps the node with a fixed default value. A field with a default
// may be omitted.
func (n *Node) Default(value any) *Node {
	return &Node{Kind: KindDefault, Wrapped: n, DefaultValue: value}
}

// DefaultFunc wraps the node with a default-value factory. The factory is
// invoked once, with no arguments, when the schema is compiled.
func (n *Node) DefaultFunc(fn func() any) *Node {
	return &Node{Kind: KindDefault, Wrapped: n, DefaultFn: fn}
}

// Describe sets the node's description and returns the node.
func (n *Node) Describe(desc string) *Node {
	n.Desc = desc
	return n
}

// MinLength sets the minimum string length.
func (n *Node) MinLength(min int) *Node {
	n.MinLen = &min
	return n
}

// MaxLength sets the maximum string length.
func (n *Node) MaxLength(max int) *Node {
	n.MaxLen = &max
	return n
}

// Length requires an exact string length.
func (n *Node) Length(exact int) *Node {
	v := exact
	n.MinLen = &v
	n.MaxLen = &v
	return n
}

// Format declares a well-known string format such as "email", "uri", or
// "uuid". The format name is carried into the descriptor as-is.
func (n *Node) Format(format string) *Node {
	n.Fmt = format
	return n
}

// Pattern requires the string to match the given regular expression.
func (n *Node) Pattern(expr string) *Node {
	n.Regex = expr
	return n
}

// Min sets the inclusive minimum for a number.
func (n *Node) Min(min float64) *Node {
	n.Minimum = &min
	n.ExclusiveMin = false
	return n
}

// Max sets the inclusive maximum for a number.
func (n *Node) Max(max float64) *Node {
	n.Maximum = &max
	n.ExclusiveMax = false
	return n
}

// GreaterThan sets an exclusive minimum for a number.
func (n *Node) GreaterThan(min float64) *Node {
	n.Minimum = &min
	n.ExclusiveMin = true
	return n
}

// LessThan sets an exclusive maximum for a number.
func (n *Node) LessThan(max float64) *Node {
	n.Maximum = &max
	n.ExclusiveMax = true
	return n
}

// MinItems sets the minimum number of array elements.
func (n *Node) MinItems(min int) *Node {
	n.MinElems = &min
	return n
}

// MaxItems sets the maximum number of array elements.
func (n *Node) MaxItems(max int) *Node {
	n.MaxElems = &max
	return n
}

// IsWrapper reports whether the node is an optional, nullable, or default
// wrapper rather than a base type.
func (n *Node) IsWrapper() bool {
	switch n.Kind {
	case KindOptional, KindNullable, KindDefault:
		return true
	}
	return false
}

// Base returns the innermost non-wrapper node.
func (n *Node) Base() *Node {
	cur := n
	for cur != nil && cur.IsWrapper() {
		cur = cur.Wrapped
	}
	return cur
}
