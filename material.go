package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/sdfmath"
)

// Material describes the surface appearance of a visual.
type Material struct {
	Ambient  sdfmath.Color
	Diffuse  sdfmath.Color
	Specular sdfmath.Color
	Emissive sdfmath.Color

	elem *Element
}

// Element returns the element this material was loaded from.
func (m *Material) Element() *Element { return m.elem }

// Load populates the material from a <material> element. Every color is
// optional and defaults to opaque black.
func (m *Material) Load(e *Element) errors.Errors {
	m.elem = e
	black := sdfmath.Color{R: 0, G: 0, B: 0, A: 1}
	m.Ambient = black
	m.Diffuse = black
	m.Specular = black
	m.Emissive = black

	if e == nil {
		return errors.Errors{errors.New(errors.CodeElementMissing,
			"attempting to load a material, but the element is nil")}
	}
	if e.Name() != "material" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a material, but the element is not a <material>"))}
	}

	var errs errors.Errors
	errs = append(errs, loadColor(e, "ambient", &m.Ambient)...)
	errs = append(errs, loadColor(e, "diffuse", &m.Diffuse)...)
	errs = append(errs, loadColor(e, "specular", &m.Specular)...)
	errs = append(errs, loadColor(e, "emissive", &m.Emissive)...)
	return errs
}

func loadColor(e *Element, childName string, dst *sdfmath.Color) errors.Errors {
	child := e.FindElement(childName)
	if child == nil {
		return nil
	}
	c, ok := GetValue(child, "", *dst)
	if !ok {
		return errors.Errors{child.errorLocation(errors.Newf(errors.CodeElementInvalid,
			"invalid <%s> color for a <material>", childName))}
	}
	*dst = c
	return nil
}
