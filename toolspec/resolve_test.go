package toolspec

import (
	"testing"

	"github.com/veltari/agentkit/pschema"
)

func TestResolveWrappersPlainNode(t *testing.T) {
	c := NewCompiler()
	base := pschema.String()

	info := c.resolveWrappers(base)

	if info.base != base {
		t.Error("base should be the node itself")
	}
	if info.optional || info.nullable || info.hasDefault {
		t.Errorf("plain node resolved with flags set: %+v", info)
	}
}

func TestResolveWrappersStacked(t *testing.T) {
	c := NewCompiler()
	base := pschema.Int()
	wrapped := base.Default(3).Nullable().Optional()

	info := c.resolveWrappers(wrapped)

	if info.base != base {
		t.Error("resolution should reach the innermost base node")
	}
	if !info.optional || !info.nullable || !info.hasDefault {
		t.Errorf("flags = %+v, want all set", info)
	}
	if info.defaultValue != 3 {
		t.Errorf("defaultValue = %v, want 3", info.defaultValue)
	}
}

func TestResolveWrappersNullableImpliesOptional(t *testing.T) {
	c := NewCompiler()
	info := c.resolveWrappers(pschema.String().Nullable())

	if !info.optional {
		t.Error("nullable should imply optional")
	}
}

func TestResolveWrappersOuterDefaultWins(t *testing.T) {
	c := NewCompiler()
	n := pschema.Int().Default(1).Default(2)

	info := c.resolveWrappers(n)

	if info.defaultValue != 2 {
		t.Errorf("defaultValue = %v, want the outermost default", info.defaultValue)
	}
}

func TestResolveWrappersFailedOuterFactoryFallsThrough(t *testing.T) {
	c := NewCompiler()
	n := pschema.Int().Default(1).DefaultFunc(func() any {
		panic("unavailable")
	})

	info := c.resolveWrappers(n)

	if !info.hasDefault || info.defaultValue != 1 {
		t.Errorf("info = %+v, want the inner fixed default", info)
	}
}

func TestResolveWrappersDescriptionPrecedence(t *testing.T) {
	c := NewCompiler()
	n := pschema.String().Describe("base").Optional().Describe("outer")

	info := c.resolveWrappers(n)

	if info.description != "outer" {
		t.Errorf("description = %q, want outer", info.description)
	}
}

func TestCallRecoversPanic(t *testing.T) {
	v, ok := call(func() any { return 42 })
	if !ok || v != 42 {
		t.Errorf("call = (%v, %v), want (42, true)", v, ok)
	}

	v, ok = call(func() any { panic("boom") })
	if ok || v != nil {
		t.Errorf("call after panic = (%v, %v), want (nil, false)", v, ok)
	}
}
