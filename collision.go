package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/frames"
	"github.com/robosim/sdf/sdfmath"
)

// Collision is the collision geometry of a link.
type Collision struct {
	name           string
	rawPose        sdfmath.Pose
	poseRelativeTo string
	geom           Geometry

	xmlParentName string
	graph         *frames.Graph
	elem          *Element
}

// Load populates the collision from a <collision> element.
func (c *Collision) Load(e *Element) errors.Errors {
	c.elem = e

	// The wrong element kind is not recoverable.
	if e.Name() != "collision" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a collision, but the element is not a <collision>"))}
	}

	var errs errors.Errors
	name, ok := loadName(e)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"a collision name is required, but the name is not set")))
	}
	c.name = name
	if isReservedName(c.name) {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeReservedName,
			"the supplied collision name [%s] is reserved", c.name)))
	}

	// The pose is optional.
	c.rawPose, c.poseRelativeTo, _ = loadPose(e)

	errs = append(errs, c.geom.Load(e.FindElement("geometry"))...)
	return errs
}

// Name returns the collision name.
func (c *Collision) Name() string { return c.name }

// SetName replaces the collision name.
func (c *Collision) SetName(name string) { c.name = name }

// Geom returns the collision's geometry.
func (c *Collision) Geom() *Geometry { return &c.geom }

// SetGeom replaces the collision's geometry.
func (c *Collision) SetGeom(geom Geometry) { c.geom = geom }

// RawPose returns the pose as written, relative to PoseRelativeTo.
func (c *Collision) RawPose() sdfmath.Pose { return c.rawPose }

// SetRawPose replaces the raw pose.
func (c *Collision) SetRawPose(pose sdfmath.Pose) { c.rawPose = pose }

// PoseRelativeTo returns the frame the raw pose is expressed in, empty
// meaning the parent link.
func (c *Collision) PoseRelativeTo() string { return c.poseRelativeTo }

// SetPoseRelativeTo replaces the relative-to frame name.
func (c *Collision) SetPoseRelativeTo(frame string) { c.poseRelativeTo = frame }

// SemanticPose returns a resolve handle for the collision pose. It is
// usable once the enclosing model wired its frame graph.
func (c *Collision) SemanticPose() SemanticPose {
	return makeSemanticPose("", c.rawPose, c.poseRelativeTo, c.xmlParentName, c.graph)
}

// Element returns the element this collision was loaded from.
func (c *Collision) Element() *Element { return c.elem }

func (c *Collision) setXMLParentName(name string) { c.xmlParentName = name }

func (c *Collision) setPoseGraph(graph *frames.Graph) { c.graph = graph }
