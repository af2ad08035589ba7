package pschema

import (
	"strings"
	"testing"
)

func TestValidateString(t *testing.T) {
	n := String().MinLength(3).MaxLength(5)

	if err := n.Validate("abcd"); err != nil {
		t.Errorf("expected valid string, got error: %v", err)
	}
	if err := n.Validate("ab"); err == nil {
		t.Error("expected error for too-short string, got nil")
	}
	if err := n.Validate("abcdef"); err == nil {
		t.Error("expected error for too-long string, got nil")
	}
	if err := n.Validate(123); err == nil {
		t.Error("expected error for integer, got nil")
	}
}

func TestValidatePattern(t *testing.T) {
	n := String().Pattern("^[a-z]+$")

	if err := n.Validate("hello"); err != nil {
		t.Errorf("expected valid string, got error: %v", err)
	}
	if err := n.Validate("Hello"); err == nil {
		t.Error("expected pattern mismatch error, got nil")
	}
}

func TestValidateNumber(t *testing.T) {
	n := Number().Min(0).Max(10)

	for _, v := range []any{0, 5, 10, 2.5, int64(7), uint8(3)} {
		if err := n.Validate(v); err != nil {
			t.Errorf("expected %T(%v) to be valid, got error: %v", v, v, err)
		}
	}
	if err := n.Validate(-1); err == nil {
		t.Error("expected error below minimum, got nil")
	}
	if err := n.Validate(11); err == nil {
		t.Error("expected error above maximum, got nil")
	}
	if err := n.Validate("7"); err == nil {
		t.Error("expected error for string, got nil")
	}
}

func TestValidateInteger(t *testing.T) {
	n := Int()

	if err := n.Validate(7); err != nil {
		t.Errorf("expected valid integer, got error: %v", err)
	}
	// JSON numbers arrive as float64; whole floats are accepted.
	if err := n.Validate(float64(7)); err != nil {
		t.Errorf("expected whole float to be valid, got error: %v", err)
	}
	if err := n.Validate(7.5); err == nil {
		t.Error("expected error for fractional value, got nil")
	}
}

func TestValidateExclusiveBounds(t *testing.T) {
	n := Number().GreaterThan(0)

	if err := n.Validate(0); err == nil {
		t.Error("expected error at exclusive bound, got nil")
	}
	if err := n.Validate(0.1); err != nil {
		t.Errorf("expected value above bound to be valid, got error: %v", err)
	}
}

func TestValidateArray(t *testing.T) {
	n := Array(String()).MinItems(1).MaxItems(3)

	if err := n.Validate([]any{"a", "b"}); err != nil {
		t.Errorf("expected valid array, got error: %v", err)
	}
	if err := n.Validate([]any{}); err == nil {
		t.Error("expected error for empty array, got nil")
	}
	if err := n.Validate([]any{"a", 1}); err == nil {
		t.Error("expected error for mixed element types, got nil")
	}
}

func TestValidateEnum(t *testing.T) {
	n := Enum("fast", "slow")

	if err := n.Validate("fast"); err != nil {
		t.Errorf("expected valid member, got error: %v", err)
	}
	if err := n.Validate("medium"); err == nil {
		t.Error("expected error for unknown member, got nil")
	}
}

func TestValidateLiteral(t *testing.T) {
	if err := Literal("v2").Validate("v2"); err != nil {
		t.Errorf("expected matching literal, got error: %v", err)
	}
	if err := Literal("v2").Validate("v1"); err == nil {
		t.Error("expected error for mismatched literal, got nil")
	}
	// Numeric literals compare across Go numeric types.
	if err := Literal(7).Validate(float64(7)); err != nil {
		t.Errorf("expected numeric literal match, got error: %v", err)
	}
}

func TestValidateMap(t *testing.T) {
	n := Map(Number())

	if err := n.Validate(map[string]any{"a": 1, "b": 2.5}); err != nil {
		t.Errorf("expected valid map, got error: %v", err)
	}
	if err := n.Validate(map[string]any{"a": "x"}); err == nil {
		t.Error("expected error for non-number value, got nil")
	}
}

func TestValidateObject(t *testing.T) {
	n := Object(map[string]*Node{
		"name": String(),
		"age":  Int().Optional(),
	})

	if err := n.Validate(map[string]any{"name": "Ada"}); err != nil {
		t.Errorf("expected optional field to be omittable, got error: %v", err)
	}

	err := n.Validate(map[string]any{"age": 30})
	if err == nil {
		t.Fatal("expected error for missing required field, got nil")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error should name the missing field, got: %v", err)
	}

	// Undeclared keys are ignored.
	if err := n.Validate(map[string]any{"name": "Ada", "trace_id": "x"}); err != nil {
		t.Errorf("expected undeclared key to be ignored, got error: %v", err)
	}
}

func TestValidateNullable(t *testing.T) {
	plain := String()
	nullable := String().Nullable()

	if err := plain.Validate(nil); err == nil {
		t.Error("expected error for null on non-nullable field, got nil")
	}
	if err := nullable.Validate(nil); err != nil {
		t.Errorf("expected null to be accepted, got error: %v", err)
	}
	if err := nullable.Validate("x"); err != nil {
		t.Errorf("expected string to be accepted, got error: %v", err)
	}
}

func TestValidateDefaultWrapper(t *testing.T) {
	n := Object(map[string]*Node{
		"limit": Int().Default(10),
	})

	// Defaults make the field omittable but do not change what a present
	// value must look like.
	if err := n.Validate(map[string]any{}); err != nil {
		t.Errorf("expected defaulted field to be omittable, got error: %v", err)
	}
	if err := n.Validate(map[string]any{"limit": "ten"}); err == nil {
		t.Error("expected error for wrong type on defaulted field, got nil")
	}
}

func TestValidateSelfReferentialSchema(t *testing.T) {
	section := Object(map[string]*Node{
		"title": String(),
	})
	section.Fields["children"] = Array(section).Optional()

	doc := map[string]any{
		"title": "root",
		"children": []any{
			map[string]any{"title": "leaf"},
		},
	}
	if err := section.Validate(doc); err != nil {
		t.Errorf("expected nested document to validate, got error: %v", err)
	}

	bad := map[string]any{
		"title":    "root",
		"children": []any{map[string]any{}},
	}
	if err := section.Validate(bad); err == nil {
		t.Error("expected error for nested missing title, got nil")
	}
}
