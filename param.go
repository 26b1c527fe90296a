package sdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robosim/sdf/sdfmath"
)

// valueOps is one row of the closed type table: the canonical type name
// plus the parse/format pair for its text encoding. Stored Param values
// are only ever produced by a row's parse function, so a Param can never
// hold a value that disagrees with its declared type.
type valueOps struct {
	name    string
	parse   func(s string) (any, error)
	format  func(v any) string
	ordered bool
}

var paramTypes = map[string]*valueOps{
	"bool": {
		name:   "bool",
		parse:  parseBool,
		format: func(v any) string { return strconv.FormatBool(v.(bool)) },
	},
	"char": {
		name:   "char",
		parse:  parseChar,
		format: func(v any) string { return string([]byte{v.(byte)}) },
	},
	"string": {
		name:   "string",
		parse:  func(s string) (any, error) { return s, nil },
		format: func(v any) string { return v.(string) },
	},
	"int": {
		name: "int",
		parse: func(s string) (any, error) {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			return n, err
		},
		format:  func(v any) string { return strconv.Itoa(v.(int)) },
		ordered: true,
	},
	"unsigned int": {
		name: "unsigned int",
		parse: func(s string) (any, error) {
			n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
			return uint(n), err
		},
		format:  func(v any) string { return strconv.FormatUint(uint64(v.(uint)), 10) },
		ordered: true,
	},
	"uint64_t": {
		name: "uint64_t",
		parse: func(s string) (any, error) {
			n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
			return n, err
		},
		format:  func(v any) string { return strconv.FormatUint(v.(uint64), 10) },
		ordered: true,
	},
	"float": {
		name: "float",
		parse: func(s string) (any, error) {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
			return float32(f), err
		},
		format:  func(v any) string { return strconv.FormatFloat(float64(v.(float32)), 'g', -1, 32) },
		ordered: true,
	},
	"double": {
		name: "double",
		parse: func(s string) (any, error) {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			return f, err
		},
		format:  func(v any) string { return strconv.FormatFloat(v.(float64), 'g', -1, 64) },
		ordered: true,
	},
	"time": {
		name: "time",
		parse: func(s string) (any, error) {
			t, err := sdfmath.ParseTime(s)
			return t, err
		},
		format: func(v any) string { return v.(sdfmath.Time).String() },
	},
	"angle": {
		name: "angle",
		parse: func(s string) (any, error) {
			a, err := sdfmath.ParseAngle(s)
			return a, err
		},
		format:  func(v any) string { return v.(sdfmath.Angle).String() },
		ordered: true,
	},
	"color": {
		name: "color",
		parse: func(s string) (any, error) {
			c, err := sdfmath.ParseColor(s)
			return c, err
		},
		format: func(v any) string { return v.(sdfmath.Color).String() },
	},
	"vector2i": {
		name: "vector2i",
		parse: func(s string) (any, error) {
			v, err := sdfmath.ParseVector2i(s)
			return v, err
		},
		format: func(v any) string { return v.(sdfmath.Vector2i).String() },
	},
	"vector2d": {
		name: "vector2d",
		parse: func(s string) (any, error) {
			v, err := sdfmath.ParseVector2d(s)
			return v, err
		},
		format: func(v any) string { return v.(sdfmath.Vector2d).String() },
	},
	"vector3": {
		name: "vector3",
		parse: func(s string) (any, error) {
			v, err := sdfmath.ParseVector3(s)
			return v, err
		},
		format: func(v any) string { return v.(sdfmath.Vector3).String() },
	},
	"quaternion": {
		name: "quaternion",
		parse: func(s string) (any, error) {
			q, err := sdfmath.ParseQuaternion(s)
			return q, err
		},
		format: func(v any) string { return v.(sdfmath.Quaternion).String() },
	},
	"pose": {
		name: "pose",
		parse: func(s string) (any, error) {
			p, err := sdfmath.ParsePose(s)
			return p, err
		},
		format: func(v any) string { return v.(sdfmath.Pose).String() },
	},
}

// paramTypeAliases maps accepted spellings onto canonical table keys.
var paramTypeAliases = map[string]string{
	"uint":    "unsigned int",
	"uint64":  "uint64_t",
	"float32": "float",
	"float64": "double",
}

func lookupParamType(typeName string) (*valueOps, bool) {
	if canon, ok := paramTypeAliases[typeName]; ok {
		typeName = canon
	}
	ops, ok := paramTypes[typeName]
	return ops, ok
}

func parseBool(s string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return nil, fmt.Errorf("bool: cannot parse %q", s)
}

func parseChar(s string) (any, error) {
	t := strings.TrimSpace(s)
	if len(t) != 1 {
		return nil, fmt.Errorf("char: expected a single character, got %q", s)
	}
	return t[0], nil
}

// ParamValue is the closed set of Go types a Param can hold.
type ParamValue interface {
	bool | byte | string | int | uint | uint64 | float32 | float64 |
		sdfmath.Time | sdfmath.Angle | sdfmath.Color | sdfmath.Vector2i |
		sdfmath.Vector2d | sdfmath.Vector3 | sdfmath.Quaternion | sdfmath.Pose
}

// canonicalTypeFor maps a Go value onto its canonical type-table name.
func canonicalTypeFor(v any) (string, bool) {
	switch v.(type) {
	case bool:
		return "bool", true
	case byte:
		return "char", true
	case string:
		return "string", true
	case int:
		return "int", true
	case uint:
		return "unsigned int", true
	case uint64:
		return "uint64_t", true
	case float32:
		return "float", true
	case float64:
		return "double", true
	case sdfmath.Time:
		return "time", true
	case sdfmath.Angle:
		return "angle", true
	case sdfmath.Color:
		return "color", true
	case sdfmath.Vector2i:
		return "vector2i", true
	case sdfmath.Vector2d:
		return "vector2d", true
	case sdfmath.Vector3:
		return "vector3", true
	case sdfmath.Quaternion:
		return "quaternion", true
	case sdfmath.Pose:
		return "pose", true
	}
	return "", false
}

// Param is a single named, typed value with a default. The set flag
// records whether the value was ever assigned explicitly; reading a
// default never flips it.
type Param struct {
	key          string
	ops          *valueOps
	value        any
	defaultValue any
	minValue     any
	maxValue     any
	required     bool
	set          bool
	description  string
	updateFunc   func() any

	// strValue remembers the exact text a successful SetFromString stored,
	// so printing reproduces the author's spelling (precision, notation)
	// instead of a reformatted value.
	strValue string
	strSet   bool
}

// NewParam builds a Param. The default value must parse under the given
// type name; typeName accepts canonical names ("double", "unsigned int",
// "vector3", ...) and Go-style aliases ("float64", "uint", ...).
func NewParam(key, typeName, defaultValue string, required bool, description string) (*Param, error) {
	ops, ok := lookupParamType(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown parameter type %q for key %q", typeName, key)
	}
	def, err := ops.parse(defaultValue)
	if err != nil {
		return nil, fmt.Errorf("invalid default for key %q: %w", key, err)
	}
	return &Param{
		key:          key,
		ops:          ops,
		value:        def,
		defaultValue: def,
		required:     required,
		description:  description,
	}, nil
}

// NewParamWithBounds builds a Param with inclusive bounds. Empty bound
// strings leave that side unbounded. Bounds are only valid on ordered
// scalar types.
func NewParamWithBounds(key, typeName, defaultValue string, required bool, minValue, maxValue, description string) (*Param, error) {
	p, err := NewParam(key, typeName, defaultValue, required, description)
	if err != nil {
		return nil, err
	}
	if minValue == "" && maxValue == "" {
		return p, nil
	}
	if !p.ops.ordered {
		return nil, fmt.Errorf("type %q for key %q does not support bounds", p.ops.name, key)
	}
	if minValue != "" {
		v, err := p.ops.parse(minValue)
		if err != nil {
			return nil, fmt.Errorf("invalid min value for key %q: %w", key, err)
		}
		p.minValue = v
	}
	if maxValue != "" {
		v, err := p.ops.parse(maxValue)
		if err != nil {
			return nil, fmt.Errorf("invalid max value for key %q: %w", key, err)
		}
		p.maxValue = v
	}
	if err := p.checkBounds(p.defaultValue); err != nil {
		return nil, fmt.Errorf("default for key %q: %w", key, err)
	}
	return p, nil
}

// Key returns the parameter name.
func (p *Param) Key() string { return p.key }

// TypeName returns the canonical type name the Param was declared with.
func (p *Param) TypeName() string { return p.ops.name }

// Required reports whether the schema marks this parameter required.
func (p *Param) Required() bool { return p.required }

// WasSet reports whether the value was explicitly assigned.
func (p *Param) WasSet() bool { return p.set }

// Description returns the schema description text.
func (p *Param) Description() string { return p.description }

// SetDescription replaces the schema description text.
func (p *Param) SetDescription(desc string) { p.description = desc }

// Any returns the current value as an any.
func (p *Param) Any() any { return p.value }

// GetAsString returns the current value in text form: the exact string it
// was last set from when one is known, otherwise the canonical formatting
// of the stored value.
func (p *Param) GetAsString() string {
	if p.strSet {
		return p.strValue
	}
	return p.ops.format(p.value)
}

// GetDefaultAsString formats the default value in its canonical text form.
func (p *Param) GetDefaultAsString() string {
	return p.ops.format(p.defaultValue)
}

// MinValueAsString returns the formatted lower bound, if one was declared.
func (p *Param) MinValueAsString() (string, bool) {
	if p.minValue == nil {
		return "", false
	}
	return p.ops.format(p.minValue), true
}

// MaxValueAsString returns the formatted upper bound, if one was declared.
func (p *Param) MaxValueAsString() (string, bool) {
	if p.maxValue == nil {
		return "", false
	}
	return p.ops.format(p.maxValue), true
}

// SetFromString parses the input against the declared type and stores the
// result. On failure the stored value is left unchanged. An empty input
// restores the default for optional parameters and fails for required
// ones.
func (p *Param) SetFromString(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if p.required {
			return fmt.Errorf("empty value for required parameter %q", p.key)
		}
		p.value = p.defaultValue
		p.strSet = false
		return nil
	}
	v, err := p.ops.parse(value)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", p.key, err)
	}
	if err := p.checkBounds(v); err != nil {
		return fmt.Errorf("parameter %q: %w", p.key, err)
	}
	p.value = v
	p.set = true
	p.strValue = trimmed
	p.strSet = true
	return nil
}

// Reset restores the default value and clears the set flag.
func (p *Param) Reset() {
	p.value = p.defaultValue
	p.set = false
	p.strSet = false
}

// Clone returns an independent copy sharing no mutable state.
func (p *Param) Clone() *Param {
	c := *p
	return &c
}

// SetUpdateFunc installs a callback invoked by Update to recompute the
// value.
func (p *Param) SetUpdateFunc(f func() any) { p.updateFunc = f }

// Update invokes the installed callback, if any, and stores its result.
// The result must match the declared type.
func (p *Param) Update() error {
	if p.updateFunc == nil {
		return nil
	}
	v := p.updateFunc()
	got, ok := canonicalTypeFor(v)
	if !ok || got != p.ops.name {
		return fmt.Errorf("update for parameter %q produced %T, want %s", p.key, v, p.ops.name)
	}
	if err := p.checkBounds(v); err != nil {
		return fmt.Errorf("update for parameter %q: %w", p.key, err)
	}
	p.value = v
	p.set = true
	p.strSet = false
	return nil
}

func (p *Param) checkBounds(v any) error {
	if p.minValue != nil && compareValues(v, p.minValue) < 0 {
		return fmt.Errorf("value %s below minimum %s", p.ops.format(v), p.ops.format(p.minValue))
	}
	if p.maxValue != nil && compareValues(v, p.maxValue) > 0 {
		return fmt.Errorf("value %s above maximum %s", p.ops.format(v), p.ops.format(p.maxValue))
	}
	return nil
}

// compareValues orders two values of the same ordered scalar type.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case int:
		return cmpOrdered(av, b.(int))
	case uint:
		return cmpOrdered(av, b.(uint))
	case uint64:
		return cmpOrdered(av, b.(uint64))
	case float32:
		return cmpOrdered(av, b.(float32))
	case float64:
		return cmpOrdered(av, b.(float64))
	case sdfmath.Angle:
		return cmpOrdered(av, b.(sdfmath.Angle))
	}
	return 0
}

func cmpOrdered[T int | uint | uint64 | float32 | float64 | sdfmath.Angle](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Get returns the current value as T. When T matches the declared type the
// value is returned directly; otherwise the read goes through the text
// form, so compatible cross-type reads succeed and incompatible ones fail.
func Get[T ParamValue](p *Param) (T, error) {
	var zero T
	if p == nil {
		return zero, fmt.Errorf("nil parameter")
	}
	return convertValue[T](p, p.value)
}

// GetDefault returns the default value as T, with the same conversion
// rules as Get.
func GetDefault[T ParamValue](p *Param) (T, error) {
	var zero T
	if p == nil {
		return zero, fmt.Errorf("nil parameter")
	}
	return convertValue[T](p, p.defaultValue)
}

func convertValue[T ParamValue](p *Param, stored any) (T, error) {
	if v, ok := stored.(T); ok {
		return v, nil
	}
	var zero T
	name, ok := canonicalTypeFor(zero)
	if !ok {
		return zero, fmt.Errorf("unsupported target type %T", zero)
	}
	v, err := paramTypes[name].parse(p.ops.format(stored))
	if err != nil {
		return zero, fmt.Errorf("cannot read parameter %q (%s) as %s: %w", p.key, p.ops.name, name, err)
	}
	return v.(T), nil
}

// Set assigns a typed value. The value travels through its text form, so
// assignment obeys the same conversion and bounds rules as SetFromString.
func Set[T ParamValue](p *Param, value T) error {
	if p == nil {
		return fmt.Errorf("nil parameter")
	}
	name, ok := canonicalTypeFor(value)
	if !ok {
		return fmt.Errorf("unsupported value type %T", value)
	}
	return p.SetFromString(paramTypes[name].format(value))
}
