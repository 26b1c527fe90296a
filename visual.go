package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/frames"
	"github.com/robosim/sdf/sdfmath"
)

// Visual is the visual geometry of a link.
type Visual struct {
	name           string
	rawPose        sdfmath.Pose
	poseRelativeTo string
	geom           Geometry
	material       *Material
	transparency   float64
	castShadows    bool

	xmlParentName string
	graph         *frames.Graph
	elem          *Element
}

// Load populates the visual from a <visual> element.
func (v *Visual) Load(e *Element) errors.Errors {
	v.elem = e
	v.castShadows = true

	if e.Name() != "visual" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a visual, but the element is not a <visual>"))}
	}

	var errs errors.Errors
	name, ok := loadName(e)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"a visual name is required, but the name is not set")))
	}
	v.name = name
	if isReservedName(v.name) {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeReservedName,
			"the supplied visual name [%s] is reserved", v.name)))
	}

	v.rawPose, v.poseRelativeTo, _ = loadPose(e)
	v.transparency, _ = GetValue(e, "transparency", 0.0)
	v.castShadows, _ = GetValue(e, "cast_shadows", true)

	if matElem := e.FindElement("material"); matElem != nil {
		v.material = &Material{}
		errs = append(errs, v.material.Load(matElem)...)
	}

	errs = append(errs, v.geom.Load(e.FindElement("geometry"))...)
	return errs
}

// Name returns the visual name.
func (v *Visual) Name() string { return v.name }

// SetName replaces the visual name.
func (v *Visual) SetName(name string) { v.name = name }

// Geom returns the visual's geometry.
func (v *Visual) Geom() *Geometry { return &v.geom }

// SetGeom replaces the visual's geometry.
func (v *Visual) SetGeom(geom Geometry) { v.geom = geom }

// Material returns the visual's material, nil when none was given.
func (v *Visual) Material() *Material { return v.material }

// SetMaterial replaces the visual's material.
func (v *Visual) SetMaterial(m *Material) { v.material = m }

// Transparency returns the visual's transparency, 0 opaque through 1
// invisible.
func (v *Visual) Transparency() float64 { return v.transparency }

// SetTransparency replaces the transparency.
func (v *Visual) SetTransparency(t float64) { v.transparency = t }

// CastShadows reports whether the visual casts shadows.
func (v *Visual) CastShadows() bool { return v.castShadows }

// SetCastShadows toggles shadow casting.
func (v *Visual) SetCastShadows(cast bool) { v.castShadows = cast }

// RawPose returns the pose as written, relative to PoseRelativeTo.
func (v *Visual) RawPose() sdfmath.Pose { return v.rawPose }

// SetRawPose replaces the raw pose.
func (v *Visual) SetRawPose(pose sdfmath.Pose) { v.rawPose = pose }

// PoseRelativeTo returns the frame the raw pose is expressed in, empty
// meaning the parent link.
func (v *Visual) PoseRelativeTo() string { return v.poseRelativeTo }

// SetPoseRelativeTo replaces the relative-to frame name.
func (v *Visual) SetPoseRelativeTo(frame string) { v.poseRelativeTo = frame }

// SemanticPose returns a resolve handle for the visual pose.
func (v *Visual) SemanticPose() SemanticPose {
	return makeSemanticPose("", v.rawPose, v.poseRelativeTo, v.xmlParentName, v.graph)
}

// Element returns the element this visual was loaded from.
func (v *Visual) Element() *Element { return v.elem }

func (v *Visual) setXMLParentName(name string) { v.xmlParentName = name }

func (v *Visual) setPoseGraph(graph *frames.Graph) { v.graph = graph }
