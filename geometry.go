package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/sdfmath"
)

// GeometryType identifies which shape a geometry holds.
type GeometryType int

const (
	GeometryEmpty GeometryType = iota
	GeometryBox
	GeometryCapsule
	GeometryCylinder
	GeometryEllipsoid
	GeometryPlane
	GeometrySphere
)

// Geometry is the shape of a collision or visual. At most one shape is
// populated; Type reports which.
type Geometry struct {
	Type GeometryType

	Box       *Box
	Capsule   *Capsule
	Cylinder  *Cylinder
	Ellipsoid *Ellipsoid
	Plane     *Plane
	Sphere    *Sphere

	elem *Element
}

// Element returns the element this geometry was loaded from, nil for
// hand-built geometries.
func (g *Geometry) Element() *Element { return g.elem }

// Load populates the geometry from a <geometry> element. The first shape
// child present decides the type; an empty geometry is valid and stays
// GeometryEmpty.
func (g *Geometry) Load(e *Element) errors.Errors {
	g.elem = e
	if e == nil {
		return errors.Errors{errors.New(errors.CodeElementMissing,
			"attempting to load a geometry, but the element is nil")}
	}
	if e.Name() != "geometry" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a geometry, but the element is not a <geometry>"))}
	}

	switch {
	case e.HasElement("box"):
		g.Type = GeometryBox
		g.Box = &Box{}
		return g.Box.Load(e.FindElement("box"))
	case e.HasElement("capsule"):
		g.Type = GeometryCapsule
		g.Capsule = &Capsule{}
		return g.Capsule.Load(e.FindElement("capsule"))
	case e.HasElement("cylinder"):
		g.Type = GeometryCylinder
		g.Cylinder = &Cylinder{}
		return g.Cylinder.Load(e.FindElement("cylinder"))
	case e.HasElement("ellipsoid"):
		g.Type = GeometryEllipsoid
		g.Ellipsoid = &Ellipsoid{}
		return g.Ellipsoid.Load(e.FindElement("ellipsoid"))
	case e.HasElement("plane"):
		g.Type = GeometryPlane
		g.Plane = &Plane{}
		return g.Plane.Load(e.FindElement("plane"))
	case e.HasElement("sphere"):
		g.Type = GeometrySphere
		g.Sphere = &Sphere{}
		return g.Sphere.Load(e.FindElement("sphere"))
	}
	g.Type = GeometryEmpty
	return nil
}

// Box is a box shape described by its side lengths.
type Box struct {
	Size sdfmath.Vector3

	elem *Element
}

// Element returns the element this shape was loaded from.
func (b *Box) Element() *Element { return b.elem }

// Load populates the box from a <box> element.
func (b *Box) Load(e *Element) errors.Errors {
	b.elem = e
	b.Size = sdfmath.Vector3{X: 1, Y: 1, Z: 1}
	errs, ok := shapeStart(e, "box")
	if !ok {
		return errs
	}
	errs = append(errs, loadShapeValue(e, "size", "box", &b.Size)...)
	return errs
}

// Sphere is a sphere shape described by its radius.
type Sphere struct {
	Radius float64

	elem *Element
}

// Element returns the element this shape was loaded from.
func (s *Sphere) Element() *Element { return s.elem }

// Load populates the sphere from a <sphere> element.
func (s *Sphere) Load(e *Element) errors.Errors {
	s.elem = e
	s.Radius = 1
	errs, ok := shapeStart(e, "sphere")
	if !ok {
		return errs
	}
	errs = append(errs, loadShapeValue(e, "radius", "sphere", &s.Radius)...)
	return errs
}

// Cylinder is a cylinder shape aligned with the local Z axis.
type Cylinder struct {
	Radius float64
	Length float64

	elem *Element
}

// Element returns the element this shape was loaded from.
func (c *Cylinder) Element() *Element { return c.elem }

// Load populates the cylinder from a <cylinder> element.
func (c *Cylinder) Load(e *Element) errors.Errors {
	c.elem = e
	c.Radius = 1
	c.Length = 1
	errs, ok := shapeStart(e, "cylinder")
	if !ok {
		return errs
	}
	errs = append(errs, loadShapeValue(e, "radius", "cylinder", &c.Radius)...)
	errs = append(errs, loadShapeValue(e, "length", "cylinder", &c.Length)...)
	return errs
}

// Capsule is a cylinder capped with hemispheres, aligned with the local
// Z axis. Length covers the cylindrical portion only.
type Capsule struct {
	Radius float64
	Length float64

	elem *Element
}

// Element returns the element this shape was loaded from.
func (c *Capsule) Element() *Element { return c.elem }

// Load populates the capsule from a <capsule> element.
func (c *Capsule) Load(e *Element) errors.Errors {
	c.elem = e
	c.Radius = 0.5
	c.Length = 1
	errs, ok := shapeStart(e, "capsule")
	if !ok {
		return errs
	}
	errs = append(errs, loadShapeValue(e, "radius", "capsule", &c.Radius)...)
	errs = append(errs, loadShapeValue(e, "length", "capsule", &c.Length)...)
	return errs
}

// Ellipsoid is an ellipsoid shape described by its three semi-axes.
type Ellipsoid struct {
	Radii sdfmath.Vector3

	elem *Element
}

// Element returns the element this shape was loaded from.
func (el *Ellipsoid) Element() *Element { return el.elem }

// Load populates the ellipsoid from an <ellipsoid> element.
func (el *Ellipsoid) Load(e *Element) errors.Errors {
	el.elem = e
	el.Radii = sdfmath.Vector3{X: 1, Y: 1, Z: 1}
	errs, ok := shapeStart(e, "ellipsoid")
	if !ok {
		return errs
	}
	errs = append(errs, loadShapeValue(e, "radii", "ellipsoid", &el.Radii)...)
	return errs
}

// Plane is an infinite plane, with a bounded size for rendering.
type Plane struct {
	Normal sdfmath.Vector3
	Size   sdfmath.Vector2d

	elem *Element
}

// Element returns the element this shape was loaded from.
func (p *Plane) Element() *Element { return p.elem }

// Load populates the plane from a <plane> element. The size is optional.
func (p *Plane) Load(e *Element) errors.Errors {
	p.elem = e
	p.Normal = sdfmath.Vector3{X: 0, Y: 0, Z: 1}
	p.Size = sdfmath.Vector2d{X: 1, Y: 1}
	errs, ok := shapeStart(e, "plane")
	if !ok {
		return errs
	}
	errs = append(errs, loadShapeValue(e, "normal", "plane", &p.Normal)...)
	if sizeElem := e.FindElement("size"); sizeElem != nil {
		size, ok := GetValue(sizeElem, "", p.Size)
		if !ok {
			errs = append(errs, sizeElem.errorLocation(errors.New(errors.CodeElementInvalid,
				"invalid <size> data for a <plane> geometry")))
		}
		p.Size = size
	}
	return errs
}

// shapeStart performs the shared nil and element-name checks. ok reports
// whether loading may continue.
func shapeStart(e *Element, name string) (errors.Errors, bool) {
	if e == nil {
		return errors.Errors{errors.Newf(errors.CodeElementMissing,
			"attempting to load a %s, but the element is nil", name)}, false
	}
	if e.Name() != name {
		return errors.Errors{e.errorLocation(errors.Newf(errors.CodeElementIncorrectType,
			"attempting to load a %s geometry, but the element is not a <%s>", name, name))}, false
	}
	return nil, true
}

// loadShapeValue reads a required child value of a shape, keeping the
// preset default and recording the problem when the child is absent or
// unusable.
func loadShapeValue[T ParamValue](e *Element, childName, shapeName string, dst *T) errors.Errors {
	child := e.FindElement(childName)
	if child == nil {
		return errors.Errors{e.errorLocation(errors.Newf(errors.CodeElementMissing,
			"%s geometry is missing a <%s> child element", shapeName, childName))}
	}
	v, ok := GetValue(child, "", *dst)
	if !ok {
		return errors.Errors{child.errorLocation(errors.Newf(errors.CodeElementInvalid,
			"invalid <%s> data for a <%s> geometry", childName, shapeName))}
	}
	*dst = v
	return nil
}
