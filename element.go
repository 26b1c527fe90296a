package sdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robosim/sdf/errors"
)

// Element is one node of the document tree: a name, ordered attribute
// parameters, an optional value parameter, ordered children, and the
// schema descriptions new children are instantiated from.
//
// Elements carry provenance for error reporting: the source file, the
// line the element started on (0 when unknown), and the version of the
// document it was originally parsed from. The explicit-in-file flag
// distinguishes nodes an author wrote from nodes the schema filled in.
type Element struct {
	name         string
	required     string
	description  string
	attributes   []*Param
	value        *Param
	children     []*Element
	descriptions []*Element
	parent       *Element

	filePath            string
	lineNumber          int
	originalVersion     string
	explicitlySetInFile bool
}

// NewElement returns an empty element with the given name.
func NewElement(name string) *Element {
	return &Element{name: name, explicitlySetInFile: true}
}

// Name returns the element's tag name.
func (e *Element) Name() string { return e.name }

// SetName replaces the element's tag name.
func (e *Element) SetName(name string) { e.name = name }

// Required returns the occurrence constraint string from the schema:
// "0" optional, "1" exactly one, "+" at least one, "*" any number.
func (e *Element) Required() string { return e.required }

// SetRequired sets the occurrence constraint string.
func (e *Element) SetRequired(req string) { e.required = req }

// Description returns the schema description text.
func (e *Element) Description() string { return e.description }

// SetDescription replaces the schema description text.
func (e *Element) SetDescription(desc string) { e.description = desc }

// Parent returns the enclosing element, nil at the tree root.
func (e *Element) Parent() *Element { return e.parent }

// SetParent reattaches the element under a new parent without moving it
// in any child list. Most callers want InsertElement instead.
func (e *Element) SetParent(parent *Element) { e.parent = parent }

// AddAttribute declares an attribute parameter. Duplicate keys are
// rejected.
func (e *Element) AddAttribute(key, typeName, defaultValue string, required bool, description string) error {
	if e.GetAttribute(key) != nil {
		return fmt.Errorf("element %q already has attribute %q", e.name, key)
	}
	p, err := NewParam(key, typeName, defaultValue, required, description)
	if err != nil {
		return fmt.Errorf("element %q: %w", e.name, err)
	}
	e.attributes = append(e.attributes, p)
	return nil
}

// AddValue declares the element's value parameter.
func (e *Element) AddValue(typeName, defaultValue string, required bool, description string) error {
	p, err := NewParam(e.name, typeName, defaultValue, required, description)
	if err != nil {
		return fmt.Errorf("element %q: %w", e.name, err)
	}
	e.value = p
	return nil
}

// AddValueWithBounds declares the element's value parameter with
// inclusive bounds. Empty bound strings leave that side unbounded.
func (e *Element) AddValueWithBounds(typeName, defaultValue string, required bool, minValue, maxValue, description string) error {
	p, err := NewParamWithBounds(e.name, typeName, defaultValue, required, minValue, maxValue, description)
	if err != nil {
		return fmt.Errorf("element %q: %w", e.name, err)
	}
	e.value = p
	return nil
}

// GetAttribute returns the attribute with the given key, or nil.
func (e *Element) GetAttribute(key string) *Param {
	for _, p := range e.attributes {
		if p.Key() == key {
			return p
		}
	}
	return nil
}

// HasAttribute reports whether an attribute with the key is declared.
func (e *Element) HasAttribute(key string) bool {
	return e.GetAttribute(key) != nil
}

// GetAttributeSet reports whether the attribute exists and was explicitly
// assigned.
func (e *Element) GetAttributeSet(key string) bool {
	p := e.GetAttribute(key)
	return p != nil && p.WasSet()
}

// RemoveAttribute deletes the attribute with the given key.
func (e *Element) RemoveAttribute(key string) {
	for i, p := range e.attributes {
		if p.Key() == key {
			e.attributes = append(e.attributes[:i], e.attributes[i+1:]...)
			return
		}
	}
}

// Attributes returns the ordered attribute parameters. The slice is the
// element's own storage; callers must not modify it.
func (e *Element) Attributes() []*Param { return e.attributes }

// AttributeCount returns the number of declared attributes.
func (e *Element) AttributeCount() int { return len(e.attributes) }

// Value returns the element's value parameter, nil when the element
// carries no text value.
func (e *Element) Value() *Param { return e.value }

// HasValue reports whether a value parameter is declared.
func (e *Element) HasValue() bool { return e.value != nil }

// Children returns the ordered child elements. The slice is the element's
// own storage; callers must not modify it.
func (e *Element) Children() []*Element { return e.children }

// HasElement reports whether a child with the given name exists.
func (e *Element) HasElement(name string) bool {
	return e.FindElement(name) != nil
}

// FindElement returns the first child with the given name, or nil.
func (e *Element) FindElement(name string) *Element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// GetElement returns the first child with the given name, or nil. It never
// creates; use AddElement to instantiate a child from its description.
func (e *Element) GetElement(name string) *Element {
	return e.FindElement(name)
}

// GetFirstElement returns the first child, or nil.
func (e *Element) GetFirstElement() *Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// GetNextElement returns the next sibling after e whose name matches, or
// nil. An empty name matches any sibling. Together with FindElement this
// iterates repeated children:
//
//	for c := parent.FindElement("link"); c != nil; c = c.GetNextElement("link") { ... }
func (e *Element) GetNextElement(name string) *Element {
	if e.parent == nil {
		return nil
	}
	found := false
	for _, c := range e.parent.children {
		if c == e {
			found = true
			continue
		}
		if found && (name == "" || c.name == name) {
			return c
		}
	}
	return nil
}

// AddElementDescription registers a schema template new children can be
// instantiated from.
func (e *Element) AddElementDescription(desc *Element) {
	e.descriptions = append(e.descriptions, desc)
}

// GetElementDescription returns the child description with the given
// name, or nil.
func (e *Element) GetElementDescription(name string) *Element {
	for _, d := range e.descriptions {
		if d.name == name {
			return d
		}
	}
	return nil
}

// HasElementDescription reports whether a child description with the name
// is registered.
func (e *Element) HasElementDescription(name string) bool {
	return e.GetElementDescription(name) != nil
}

// AddElement instantiates a child from its registered description,
// appends it, and returns it. Required grandchildren ("1") are
// instantiated recursively.
func (e *Element) AddElement(name string) (*Element, error) {
	desc := e.GetElementDescription(name)
	if desc == nil {
		return nil, fmt.Errorf("element %q has no description for child %q", e.name, name)
	}
	child := desc.instantiate()
	child.parent = e
	e.children = append(e.children, child)
	for _, d := range child.descriptions {
		if d.required == "1" {
			if _, err := child.AddElement(d.name); err != nil {
				return nil, err
			}
		}
	}
	return child, nil
}

// instantiate clones a description into a fresh, childless element ready
// to receive document data.
func (e *Element) instantiate() *Element {
	c := &Element{
		name:                e.name,
		required:            e.required,
		description:         e.description,
		explicitlySetInFile: true,
	}
	for _, p := range e.attributes {
		c.attributes = append(c.attributes, p.Clone())
	}
	if e.value != nil {
		c.value = e.value.Clone()
	}
	for _, d := range e.descriptions {
		c.descriptions = append(c.descriptions, d)
	}
	return c
}

// InsertElement appends an existing element as a child. With setParent the
// child is reattached to e. Inserting an element into its own subtree is
// rejected.
func (e *Element) InsertElement(child *Element, setParent bool) error {
	for p := e; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("element %q cannot become a child of its own subtree", child.name)
		}
	}
	if setParent {
		child.parent = e
	}
	e.children = append(e.children, child)
	return nil
}

// RemoveChild detaches the child from the element.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// ClearElements removes all children.
func (e *Element) ClearElements() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// Clear removes all children, resets every parameter to its default, and
// drops provenance.
func (e *Element) Clear() {
	e.ClearElements()
	for _, p := range e.attributes {
		p.Reset()
	}
	if e.value != nil {
		e.value.Reset()
	}
	e.filePath = ""
	e.lineNumber = 0
	e.originalVersion = ""
}

// Clone returns a deep copy of the subtree. The copy shares no parameter
// state with the source; its root has no parent.
func (e *Element) Clone() *Element {
	c := &Element{
		name:                e.name,
		required:            e.required,
		description:         e.description,
		filePath:            e.filePath,
		lineNumber:          e.lineNumber,
		originalVersion:     e.originalVersion,
		explicitlySetInFile: e.explicitlySetInFile,
	}
	for _, p := range e.attributes {
		c.attributes = append(c.attributes, p.Clone())
	}
	if e.value != nil {
		c.value = e.value.Clone()
	}
	// Descriptions are immutable templates shared between instances; they
	// may reference themselves (nested models), so they are never deep
	// copied.
	c.descriptions = append(c.descriptions, e.descriptions...)
	for _, ch := range e.children {
		cc := ch.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// FilePath returns the source file the element was parsed from.
func (e *Element) FilePath() string { return e.filePath }

// SetFilePath records the source file on the element and its subtree.
func (e *Element) SetFilePath(path string) {
	e.filePath = path
	for _, c := range e.children {
		c.SetFilePath(path)
	}
}

// LineNumber returns the line the element started on, 0 when unknown.
func (e *Element) LineNumber() int { return e.lineNumber }

// SetLineNumber records the element's source line.
func (e *Element) SetLineNumber(line int) { e.lineNumber = line }

// OriginalVersion returns the document version the element was parsed
// from.
func (e *Element) OriginalVersion() string { return e.originalVersion }

// SetOriginalVersion records the document version on the element and its
// subtree.
func (e *Element) SetOriginalVersion(version string) {
	e.originalVersion = version
	for _, c := range e.children {
		c.SetOriginalVersion(version)
	}
}

// ExplicitlySetInFile reports whether the element came from the source
// document rather than schema defaults.
func (e *Element) ExplicitlySetInFile() bool { return e.explicitlySetInFile }

// SetExplicitlySetInFile marks the element and its subtree.
func (e *Element) SetExplicitlySetInFile(explicit bool) {
	e.explicitlySetInFile = explicit
	for _, c := range e.children {
		c.SetExplicitlySetInFile(explicit)
	}
}

// XMLPath returns the element's location as a rooted path with sibling
// indexes, for example /sdf/model[0]/link[1].
func (e *Element) XMLPath() string {
	if e.parent == nil {
		return "/" + e.name
	}
	idx := 0
	total := 0
	for _, c := range e.parent.children {
		if c.name != e.name {
			continue
		}
		if c == e {
			idx = total
		}
		total++
	}
	seg := e.name
	if total > 1 {
		seg += "[" + strconv.Itoa(idx) + "]"
	}
	return e.parent.XMLPath() + "/" + seg
}

// errorLocation annotates a structured error with this element's
// provenance.
func (e *Element) errorLocation(err errors.Error) errors.Error {
	return err.WithLocation(e.filePath, e.lineNumber, e.XMLPath())
}

// GetValue reads a typed value from the element: key "" reads the
// element's own value, otherwise the named attribute, then the first
// child with that name, then the child's schema default. The bool
// reports whether a value was actually found and converted; on any miss
// the provided default is returned.
func GetValue[T ParamValue](e *Element, key string, defaultValue T) (T, bool) {
	if e == nil {
		return defaultValue, false
	}
	if key == "" {
		if e.value == nil {
			return defaultValue, false
		}
		v, err := Get[T](e.value)
		if err != nil {
			return defaultValue, false
		}
		return v, true
	}
	if p := e.GetAttribute(key); p != nil {
		v, err := Get[T](p)
		if err != nil {
			return defaultValue, false
		}
		return v, true
	}
	if c := e.FindElement(key); c != nil {
		return GetValue[T](c, "", defaultValue)
	}
	if d := e.GetElementDescription(key); d != nil && d.value != nil {
		if v, err := GetDefault[T](d.value); err == nil {
			return v, false
		}
	}
	return defaultValue, false
}

// SetValue assigns the element's own value. The element must declare a
// value parameter.
func SetValue[T ParamValue](e *Element, value T) error {
	if e == nil || e.value == nil {
		return fmt.Errorf("element has no value parameter")
	}
	return Set(e.value, value)
}

// nameForErrors renders the element name with its name attribute when one
// is set, matching how loaders identify entities in messages.
func (e *Element) nameForErrors() string {
	if p := e.GetAttribute("name"); p != nil && p.WasSet() {
		return e.name + " " + strings.TrimSpace(p.GetAsString())
	}
	return e.name
}
