package pschema

import (
	"fmt"
	"reflect"
	"regexp"
)

// Validate checks the given value against this schema node.
// It returns an error describing the first violation found, or nil.
//
// Validation is the runtime counterpart of the compiled descriptor: the
// descriptor tells the agent runtime what to send, Validate checks what
// actually arrived.
func (n *Node) Validate(value any) error {
	nullable := false
	cur := n
	for cur != nil && cur.IsWrapper() {
		if cur.Kind == KindNullable {
			nullable = true
		}
		cur = cur.Wrapped
	}
	if cur == nil {
		return nil
	}

	if value == nil {
		if nullable {
			return nil
		}
		return fmt.Errorf("expected %s, got null", cur.Kind)
	}

	switch cur.Kind {
	case KindString:
		return cur.validateString(value)
	case KindNumber:
		return cur.validateNumber(value)
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
		return nil
	case KindArray:
		return cur.validateArray(value)
	case KindEnum:
		return cur.validateEnum(value)
	case KindLiteral:
		return cur.validateLiteral(value)
	case KindMap:
		return cur.validateMap(value)
	case KindObject:
		return cur.validateObject(value)
	}

	// Unknown kinds accept anything, mirroring the compiler's degradation
	// to {type: "any"}.
	return nil
}

func (n *Node) validateString(value any) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}

	if n.MinLen != nil && len(str) < *n.MinLen {
		return fmt.Errorf("string length %d is less than minimum %d", len(str), *n.MinLen)
	}
	if n.MaxLen != nil && len(str) > *n.MaxLen {
		return fmt.Errorf("string length %d is greater than maximum %d", len(str), *n.MaxLen)
	}

	if n.Regex != "" {
		matched, err := regexp.MatchString(n.Regex, str)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("string does not match pattern %s", n.Regex)
		}
	}

	return nil
}

func (n *Node) validateNumber(value any) error {
	num, ok := toFloat(value)
	if !ok {
		return fmt.Errorf("expected number, got %T", value)
	}

	if n.IntegerOnly && num != float64(int64(num)) {
		return fmt.Errorf("expected integer, got %v", value)
	}

	if n.Minimum != nil {
		if n.ExclusiveMin && num <= *n.Minimum {
			return fmt.Errorf("value %v must be greater than %v", num, *n.Minimum)
		}
		if !n.ExclusiveMin && num < *n.Minimum {
			return fmt.Errorf("value %v is less than minimum %v", num, *n.Minimum)
		}
	}
	if n.Maximum != nil {
		if n.ExclusiveMax && num >= *n.Maximum {
			return fmt.Errorf("value %v must be less than %v", num, *n.Maximum)
		}
		if !n.ExclusiveMax && num > *n.Maximum {
			return fmt.Errorf("value %v is greater than maximum %v", num, *n.Maximum)
		}
	}

	return nil
}

func (n *Node) validateArray(value any) error {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Errorf("expected array, got %T", value)
	}

	if n.MinElems != nil && v.Len() < *n.MinElems {
		return fmt.Errorf("array length %d is less than minimum %d", v.Len(), *n.MinElems)
	}
	if n.MaxElems != nil && v.Len() > *n.MaxElems {
		return fmt.Errorf("array length %d is greater than maximum %d", v.Len(), *n.MaxElems)
	}

	if n.Elem != nil {
		for i := 0; i < v.Len(); i++ {
			if err := n.Elem.Validate(v.Index(i).Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}

	return nil
}

func (n *Node) validateEnum(value any) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	for _, member := range n.Members {
		if str == member {
			return nil
		}
	}
	return fmt.Errorf("value %q is not one of the allowed values: %v", str, n.Members)
}

func (n *Node) validateLiteral(value any) error {
	if lit, ok := toFloat(n.Value); ok {
		if num, ok := toFloat(value); ok && num == lit {
			return nil
		}
	} else if reflect.DeepEqual(value, n.Value) {
		return nil
	}
	return fmt.Errorf("value %v does not equal the literal %v", value, n.Value)
}

func (n *Node) validateMap(value any) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected object, got %T", value)
	}
	if n.Elem == nil {
		return nil
	}
	for key, val := range obj {
		if err := n.Elem.Validate(val); err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
	}
	return nil
}

func (n *Node) validateObject(value any) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected object, got %T", value)
	}

	for name, field := range n.Fields {
		val, present := obj[name]
		if !present {
			if field.IsWrapper() {
				continue
			}
			return fmt.Errorf("required field %s is missing", name)
		}
		if err := field.Validate(val); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}

	// Undeclared keys are accepted and ignored; the runtime may send
	// envelope metadata alongside tool arguments.
	return nil
}

// toFloat widens any Go numeric value to a float64.
func toFloat(value any) (float64, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}
