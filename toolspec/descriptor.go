package toolspec

import "encoding/json"

// TypeSet is the value of a descriptor's "type" keyword. It usually holds a
// single type name; a nullable field holds the base type plus "null".
// A single-element set marshals as a bare string, matching JSON Schema.
type TypeSet []string

// MarshalJSON emits a bare string for a single-element set and a JSON array
// otherwise.
func (t TypeSet) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON accepts either a bare string or an array of strings.
func (t *TypeSet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TypeSet{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*t = many
	return nil
}

// Contains reports whether the set includes the given type name.
func (t TypeSet) Contains(name string) bool {
	for _, member := range t {
		if member == name {
			return true
		}
	}
	return false
}

// withNull returns the set with "null" merged in. An existing "null" member
// is neither removed nor duplicated. The receiver is never modified.
func (t TypeSet) withNull() TypeSet {
	if t.Contains("null") {
		return t
	}
	out := make(TypeSet, 0, len(t)+1)
	out = append(out, t...)
	return append(out, "null")
}

// Schema is a compiled parameter descriptor: a JSON-Schema-like declarative
// description of one schema node, suitable for advertising to an agent
// runtime.
//
// Descriptors for the same schema node are shared by pointer; consumers must
// treat them as read-only.
type Schema struct {
	Type        TypeSet `json:"type,omitempty"`
	Description string  `json:"description,omitempty"`
	Default     any     `json:"default,omitempty"`

	// Enum and Const describe closed value sets.
	Enum  []string `json:"enum,omitempty"`
	Const any      `json:"const,omitempty"`

	// Object and array structure.
	Items                *Schema            `json:"items,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`

	// String constraints.
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Format    string `json:"format,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Number constraints.
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`

	// Array constraints.
	MinItems *int `json:"minItems,omitempty"`
	MaxItems *int `json:"maxItems,omitempty"`

	// Optional marks a field the caller may omit. This is an extension
	// keyword; "required" on the enclosing object carries the same
	// information for standard JSON Schema consumers.
	Optional bool `json:"optional,omitempty"`
}

// clone returns a shallow copy. Nested descriptors stay shared; the copy is
// used to layer field-level adjustments over a shared base descriptor.
func (s *Schema) clone() *Schema {
	dup := *s
	return &dup
}

// ToolSpec is the final registration artifact: everything the agent runtime
// needs to advertise one callable tool.
type ToolSpec struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Parameters          *Schema  `json:"parameters"`
	RequiredPermissions []string `json:"required_permissions"`
}
