package sdf

import (
	"github.com/robosim/sdf/errors"
)

// Root is the top level of a loaded document: its format version, any
// number of worlds, and at most one freestanding model or actor. Loading
// through Root is what builds the frame graphs and wires every domain
// object's graph pointer; objects loaded directly from elements stay
// unwired.
type Root struct {
	version string
	worlds  []World
	model   *Model
	actor   *Actor
	elem    *Element
}

// LoadFile parses the file at path and loads the document from it.
func (r *Root) LoadFile(path string, config ParserConfig) errors.Errors {
	elem, errs := ParseFile(path, config)
	if elem == nil {
		return errs
	}
	return append(errs, r.Load(elem)...)
}

// LoadString parses an in-memory document and loads it.
func (r *Root) LoadString(data string, config ParserConfig) errors.Errors {
	elem, errs := ParseString(data, config)
	if elem == nil {
		return errs
	}
	return append(errs, r.Load(elem)...)
}

// Load populates the document from a parsed <sdf> element, then builds
// the frame graph of every world and model scope.
func (r *Root) Load(e *Element) errors.Errors {
	r.elem = e

	if e.Name() != "sdf" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a document root, but the element is not an <sdf>"))}
	}

	var errs errors.Errors
	version, ok := GetValue(e, "version", "")
	if !ok || version == "" {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"the <sdf> version attribute is required, but it is not set")))
	}
	r.version = version

	worlds, worldErrs := loadUniqueRepeated[World](e, "world")
	r.worlds = worlds
	errs = append(errs, worldErrs...)

	if modelElem := e.FindElement("model"); modelElem != nil {
		r.model = &Model{}
		errs = append(errs, r.model.Load(modelElem)...)
	}
	if actorElem := e.FindElement("actor"); actorElem != nil {
		r.actor = &Actor{}
		errs = append(errs, r.actor.Load(actorElem)...)
	}

	for i := range r.worlds {
		errs = append(errs, buildWorldGraph(&r.worlds[i])...)
	}
	if r.model != nil {
		errs = append(errs, buildModelGraph(r.model)...)
	}
	return errs
}

// Version returns the declared format version.
func (r *Root) Version() string { return r.version }

// SetVersion replaces the format version.
func (r *Root) SetVersion(version string) { r.version = version }

// WorldCount returns the number of worlds.
func (r *Root) WorldCount() int { return len(r.worlds) }

// WorldByIndex returns a world by index, nil when out of range.
func (r *Root) WorldByIndex(index int) *World {
	if index < 0 || index >= len(r.worlds) {
		return nil
	}
	return &r.worlds[index]
}

// WorldByName returns the named world, or nil.
func (r *Root) WorldByName(name string) *World {
	for i := range r.worlds {
		if r.worlds[i].Name() == name {
			return &r.worlds[i]
		}
	}
	return nil
}

// WorldNameExists reports whether a world with the name exists.
func (r *Root) WorldNameExists(name string) bool { return r.WorldByName(name) != nil }

// Model returns the freestanding model, nil when the document has none.
func (r *Root) Model() *Model { return r.model }

// Actor returns the freestanding actor, nil when the document has none.
func (r *Root) Actor() *Actor { return r.actor }

// Element returns the element this document was loaded from.
func (r *Root) Element() *Element { return r.elem }

// ToString renders the document back to markup.
func (r *Root) ToString(config PrintConfig) (string, error) {
	if r.elem == nil {
		return "", errors.New(errors.CodeElementMissing,
			"the document has no element to print")
	}
	return r.elem.ToString(config)
}
