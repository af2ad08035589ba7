package tool

import (
	"context"
	"testing"

	"github.com/veltari/agentkit/pschema"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg == nil {
		t.Fatal("NewConfig() returned nil")
	}

	if cfg.version != "1.0.0" {
		t.Errorf("NewConfig() default version = %v, want %v", cfg.version, "1.0.0")
	}

	if cfg.params == nil {
		t.Error("NewConfig() params should default to an empty object schema")
	}

	if cfg.tags == nil || cfg.permissions == nil {
		t.Error("NewConfig() tags and permissions should not be nil")
	}
}

func TestConfig_MethodChaining(t *testing.T) {
	params := pschema.Object(map[string]*pschema.Node{
		"query": pschema.String(),
	})

	cfg := NewConfig().
		SetName("search").
		SetVersion("2.0.0").
		SetDescription("Search the knowledge base").
		SetTags([]string{"search", "kb"}).
		SetPermissions([]string{"kb:read"}).
		SetParams(params)

	if cfg.name != "search" {
		t.Errorf("name = %v, want search", cfg.name)
	}
	if cfg.version != "2.0.0" {
		t.Errorf("version = %v, want 2.0.0", cfg.version)
	}
	if cfg.params != params {
		t.Error("params should be the provided schema node")
	}
	if len(cfg.permissions) != 1 || cfg.permissions[0] != "kb:read" {
		t.Errorf("permissions = %v", cfg.permissions)
	}
}

func TestNew_RequiredFields(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should fail")
	}

	if _, err := New(NewConfig()); err == nil {
		t.Error("New() without a name should fail")
	}

	cfg := NewConfig().SetName("t")
	if _, err := New(cfg); err == nil {
		t.Error("New() without an execute function should fail")
	}

	cfg.SetExecuteFunc(func(ctx context.Context, args map[string]any) (map[string]any, error) {
		return nil, nil
	})
	if _, err := New(cfg); err != nil {
		t.Errorf("New() with name and execute function failed: %v", err)
	}
}

func TestExecute_ValidatesArguments(t *testing.T) {
	var invoked bool
	tl, err := New(NewConfig().
		SetName("echo").
		SetParams(pschema.Object(map[string]*pschema.Node{
			"message": pschema.String(),
		})).
		SetExecuteFunc(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			invoked = true
			return map[string]any{"echo": args["message"]}, nil
		}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	out, err := tl.Execute(context.Background(), map[string]any{"message": "hi"})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if out["echo"] != "hi" {
		t.Errorf("output = %v", out)
	}

	invoked = false
	if _, err := tl.Execute(context.Background(), map[string]any{"message": 3}); err == nil {
		t.Error("Execute() should reject arguments that fail validation")
	}
	if invoked {
		t.Error("execution function should not run on invalid arguments")
	}
}

func TestSpec(t *testing.T) {
	params := pschema.Object(map[string]*pschema.Node{
		"query": pschema.String(),
		"limit": pschema.Int().Default(10),
	})
	tl, err := New(NewConfig().
		SetName("search").
		SetDescription("Search the knowledge base").
		SetPermissions([]string{"kb:read"}).
		SetParams(params).
		SetExecuteFunc(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return nil, nil
		}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	spec := tl.Spec()
	if spec.Name != "search" {
		t.Errorf("spec name = %v", spec.Name)
	}
	if spec.Parameters == nil || spec.Parameters.Properties["query"] == nil {
		t.Fatal("spec should describe the query parameter")
	}
	if len(spec.Parameters.Required) != 1 || spec.Parameters.Required[0] != "query" {
		t.Errorf("spec required = %v, want [query]", spec.Parameters.Required)
	}

	// Descriptors are memoized by schema identity, so two tools sharing a
	// schema share one parameters descriptor.
	other, _ := New(NewConfig().
		SetName("search_v2").
		SetParams(params).
		SetExecuteFunc(func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return nil, nil
		}))
	if other.Spec().Parameters != spec.Parameters {
		t.Error("tools sharing a schema should share the compiled parameters descriptor")
	}
}
