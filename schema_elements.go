package sdf

import (
	"fmt"
	"sync"

	"github.com/robosim/sdf/schema"
)

// Description templates are built once from the embedded schema and
// shared between all documents. Instances clone the parameters of their
// template but keep pointing at the shared child descriptions, which may
// reference themselves (a model can contain models).

var descriptionTemplates struct {
	once   sync.Once
	byName map[string]*Element
	err    error
}

// ElementDescription returns the shared description template for an
// element kind. The returned element must not be modified.
func ElementDescription(name string) (*Element, error) {
	descriptionTemplates.once.Do(func() {
		reg, err := schema.Default()
		if err != nil {
			descriptionTemplates.err = err
			return
		}
		descriptionTemplates.byName, descriptionTemplates.err = buildDescriptions(reg)
	})
	if descriptionTemplates.err != nil {
		return nil, descriptionTemplates.err
	}
	d, ok := descriptionTemplates.byName[name]
	if !ok {
		return nil, fmt.Errorf("no description for element %q", name)
	}
	return d, nil
}

// CreateElement instantiates a fresh element of the named kind from its
// description, with all always-required children filled in.
func CreateElement(name string) (*Element, error) {
	desc, err := ElementDescription(name)
	if err != nil {
		return nil, err
	}
	e := desc.instantiate()
	for _, d := range e.descriptions {
		if d.required == "1" {
			if _, err := e.AddElement(d.name); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

// requiredFixup defers an occurrence override on a ref child until every
// template has its children wired, so the replacement copy sees the
// complete child list of its target.
type requiredFixup struct {
	parent *Element
	index  int
	want   string
}

func buildDescriptions(reg *schema.Registry) (map[string]*Element, error) {
	byName := make(map[string]*Element, len(reg.Names()))

	// First pass: shells only, so refs can point anywhere, cycles
	// included.
	for _, name := range reg.Names() {
		doc, _ := reg.Lookup(name)
		shell, err := descriptionShell(doc)
		if err != nil {
			return nil, err
		}
		byName[name] = shell
	}

	var fixups []requiredFixup
	for _, name := range reg.Names() {
		doc, _ := reg.Lookup(name)
		if err := wireChildren(byName[name], doc, byName, &fixups); err != nil {
			return nil, err
		}
	}

	for _, f := range fixups {
		orig := f.parent.descriptions[f.index]
		cp := *orig
		cp.required = f.want
		f.parent.descriptions[f.index] = &cp
	}
	return byName, nil
}

func descriptionShell(doc *schema.Doc) (*Element, error) {
	e := NewElement(doc.Element)
	e.SetRequired(doc.Required)
	e.SetDescription(doc.Description)
	for _, a := range doc.Attributes {
		if err := e.AddAttribute(a.Name, a.Type, a.Default, a.Required, a.Description); err != nil {
			return nil, fmt.Errorf("description %q: %w", doc.Element, err)
		}
	}
	if v := doc.Value; v != nil {
		if err := e.AddValueWithBounds(v.Type, v.Default, v.Required, v.Min, v.Max, v.Description); err != nil {
			return nil, fmt.Errorf("description %q: %w", doc.Element, err)
		}
	}
	return e, nil
}

// wireChildren appends one description per child entry, in order, so
// child indices line up with doc.Children for the fixup pass.
func wireChildren(parent *Element, doc *schema.Doc, byName map[string]*Element, fixups *[]requiredFixup) error {
	for i, c := range doc.Children {
		switch {
		case c.Ref != "" && c.Inline != nil:
			return fmt.Errorf("description %q: child %d has both ref and inline", doc.Element, i)
		case c.Ref != "":
			target, ok := byName[c.Ref]
			if !ok {
				return fmt.Errorf("description %q: unknown child ref %q", doc.Element, c.Ref)
			}
			parent.AddElementDescription(target)
			if c.Required != "" && c.Required != target.required {
				*fixups = append(*fixups, requiredFixup{parent: parent, index: i, want: c.Required})
			}
		case c.Inline != nil:
			shell, err := descriptionShell(c.Inline)
			if err != nil {
				return err
			}
			if err := wireChildren(shell, c.Inline, byName, fixups); err != nil {
				return err
			}
			if c.Required != "" {
				shell.SetRequired(c.Required)
			}
			parent.AddElementDescription(shell)
		default:
			return fmt.Errorf("description %q: child %d has neither ref nor inline", doc.Element, i)
		}
	}
	return nil
}
