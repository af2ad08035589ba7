package toolspec

import (
	"github.com/veltari/agentkit/pschema"
)

// fieldInfo is the result of unwrapping a field's wrapper modifiers: the
// innermost base node plus the accumulated field semantics.
type fieldInfo struct {
	base         *pschema.Node
	optional     bool
	nullable     bool
	hasDefault   bool
	defaultValue any
	description  string
}

// resolveWrappers peels optional, nullable, and default wrappers off the node
// one layer at a time, in whatever order and depth they were stacked.
//
// The first non-empty description seen walking outward-to-inward wins, so an
// outer wrapper's description overrides the base node's own. hasDefault is
// only set once a default value actually resolves: a factory that panics
// leaves the field optional but without a default.
func (c *Compiler) resolveWrappers(n *pschema.Node) fieldInfo {
	var info fieldInfo
	for cur := n; cur != nil; cur = cur.Wrapped {
		if info.description == "" && cur.Desc != "" {
			info.description = cur.Desc
		}
		switch cur.Kind {
		case pschema.KindOptional:
			info.optional = true
		case pschema.KindNullable:
			info.optional = true
			info.nullable = true
		case pschema.KindDefault:
			info.optional = true
			if info.hasDefault {
				continue
			}
			if cur.DefaultFn != nil {
				if v, ok := call(cur.DefaultFn); ok {
					info.hasDefault = true
					info.defaultValue = v
				} else {
					c.logger.Debug("default factory panicked; omitting default")
				}
			} else {
				info.hasDefault = true
				info.defaultValue = cur.DefaultValue
			}
		default:
			info.base = cur
			return info
		}
	}
	return info
}

// call invokes a default-value factory and converts a panic into an explicit
// failure result. A factory failure must not abort compilation: a panic here
// during tool registration would take down every sibling tool registered in
// the same batch.
func call(fn func() any) (v any, ok bool) {
	defer func() {
		if recover() != nil {
			v, ok = nil, false
		}
	}()
	return fn(), true
}
