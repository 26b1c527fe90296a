package sdf

import (
	"github.com/robosim/sdf/errors"
)

// Plugin names a runtime extension together with its free-form
// configuration: child elements the schema does not describe travel
// through unchanged.
type Plugin struct {
	name     string
	filename string
	contents []*Element

	elem *Element
}

// Load populates the plugin from a <plugin> element.
func (p *Plugin) Load(e *Element) errors.Errors {
	p.elem = e

	if e.Name() != "plugin" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a plugin, but the element is not a <plugin>"))}
	}

	var errs errors.Errors
	name, ok := loadName(e)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"a plugin name is required, but the name is not set")))
	}
	p.name = name

	p.filename, ok = GetValue(e, "filename", "")
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"a plugin filename is required, but the filename is not set")))
	}

	for child := e.GetFirstElement(); child != nil; child = child.GetNextElement("") {
		p.contents = append(p.contents, child.Clone())
	}
	return errs
}

// Name returns the plugin instance name.
func (p *Plugin) Name() string { return p.name }

// SetName replaces the plugin instance name.
func (p *Plugin) SetName(name string) { p.name = name }

// Filename returns the library implementing the plugin.
func (p *Plugin) Filename() string { return p.filename }

// SetFilename replaces the plugin library name.
func (p *Plugin) SetFilename(filename string) { p.filename = filename }

// Contents returns the plugin's free-form configuration elements.
func (p *Plugin) Contents() []*Element { return p.contents }

// InsertContent appends a configuration element.
func (p *Plugin) InsertContent(content *Element) {
	p.contents = append(p.contents, content.Clone())
}

// Element returns the element this plugin was loaded from.
func (p *Plugin) Element() *Element { return p.elem }
