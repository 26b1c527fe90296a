package sdf

import (
	"github.com/beevik/etree"
)

// PrintConfig controls how an element tree is rendered back to markup.
type PrintConfig struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// IncludeDefaults also emits optional parameters that were never set.
	IncludeDefaults bool
	// Declaration prepends the XML declaration.
	Declaration bool
}

// DefaultPrintConfig returns the standard rendering options.
func DefaultPrintConfig() PrintConfig {
	return PrintConfig{Indent: 2}
}

// ToString renders the element subtree as markup. Attributes and values
// appear when they were set or are required; unset optional parameters
// are omitted unless config asks for defaults.
func (e *Element) ToString(config PrintConfig) (string, error) {
	doc := etree.NewDocument()
	if config.Declaration {
		doc.CreateProcInst("xml", `version="1.0"`)
	}
	appendMarkup(&doc.Element, e, config)
	indent := config.Indent
	if indent <= 0 {
		indent = 2
	}
	doc.Indent(indent)
	return doc.WriteToString()
}

func appendMarkup(parent *etree.Element, e *Element, config PrintConfig) {
	x := parent.CreateElement(e.Name())
	for _, attr := range e.Attributes() {
		if attr.WasSet() || attr.Required() || config.IncludeDefaults {
			x.CreateAttr(attr.Key(), attr.GetAsString())
		}
	}
	if v := e.Value(); v != nil && len(e.Children()) == 0 {
		if v.WasSet() || v.Required() || config.IncludeDefaults {
			x.SetText(v.GetAsString())
		}
	}
	for _, child := range e.Children() {
		appendMarkup(x, child, config)
	}
}
