package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/frames"
	"github.com/robosim/sdf/sdfmath"
)

// JointType identifies the motion constraint of a joint.
type JointType int

const (
	JointInvalid JointType = iota
	// JointBall constrains to rotation about a point.
	JointBall
	// JointContinuous rotates about an axis without limits.
	JointContinuous
	// JointFixed allows no motion.
	JointFixed
	// JointGearbox couples two rotations by a ratio.
	JointGearbox
	// JointPrismatic slides along an axis.
	JointPrismatic
	// JointRevolute rotates about an axis within limits.
	JointRevolute
	// JointRevolute2 rotates about two axes within limits.
	JointRevolute2
	// JointScrew couples rotation and translation along one axis.
	JointScrew
	// JointUniversal rotates about two perpendicular axes.
	JointUniversal
)

var jointTypeNames = map[string]JointType{
	"ball":       JointBall,
	"continuous": JointContinuous,
	"fixed":      JointFixed,
	"gearbox":    JointGearbox,
	"prismatic":  JointPrismatic,
	"revolute":   JointRevolute,
	"revolute2":  JointRevolute2,
	"screw":      JointScrew,
	"universal":  JointUniversal,
}

// String returns the type's document spelling, "invalid" for JointInvalid.
func (t JointType) String() string {
	for name, jt := range jointTypeNames {
		if jt == t {
			return name
		}
	}
	return "invalid"
}

// JointAxis is one axis of motion of a joint.
type JointAxis struct {
	xyz         sdfmath.Vector3
	expressedIn string
	lower       float64
	upper       float64
	effort      float64
	maxVelocity float64

	xmlParentName string
	graph         *frames.Graph
	elem          *Element
}

// Load populates the axis from an <axis> or <axis2> element.
func (a *JointAxis) Load(e *Element) errors.Errors {
	a.elem = e
	a.xyz = sdfmath.Vector3{X: 0, Y: 0, Z: 1}
	a.lower = -1e16
	a.upper = 1e16
	a.effort = -1
	a.maxVelocity = -1

	var errs errors.Errors
	if xyzElem := e.FindElement("xyz"); xyzElem != nil {
		xyz, ok := GetValue(xyzElem, "", a.xyz)
		if !ok {
			errs = append(errs, xyzElem.errorLocation(errors.New(errors.CodeElementInvalid,
				"invalid <xyz> data for a joint axis")))
		}
		if (xyz == sdfmath.Vector3{}) {
			errs = append(errs, xyzElem.errorLocation(errors.New(errors.CodeElementInvalid,
				"the norm of the xyz vector cannot be zero")))
		} else {
			a.xyz = xyz
		}
		a.expressedIn, _ = GetValue(xyzElem, "expressed_in", "")
	} else {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeElementMissing,
			"a joint axis is missing its <xyz> child element")))
	}

	if limit := e.FindElement("limit"); limit != nil {
		a.lower, _ = GetValue(limit, "lower", a.lower)
		a.upper, _ = GetValue(limit, "upper", a.upper)
		a.effort, _ = GetValue(limit, "effort", a.effort)
		a.maxVelocity, _ = GetValue(limit, "velocity", a.maxVelocity)
	}
	return errs
}

// Xyz returns the axis direction, expressed in XyzExpressedIn.
func (a *JointAxis) Xyz() sdfmath.Vector3 { return a.xyz }

// SetXyz replaces the axis direction.
func (a *JointAxis) SetXyz(xyz sdfmath.Vector3) { a.xyz = xyz }

// XyzExpressedIn returns the frame the direction is expressed in, empty
// meaning the joint frame.
func (a *JointAxis) XyzExpressedIn() string { return a.expressedIn }

// SetXyzExpressedIn replaces the expressed-in frame name.
func (a *JointAxis) SetXyzExpressedIn(frame string) { a.expressedIn = frame }

// Lower returns the lower position limit, radians or meters by joint
// type.
func (a *JointAxis) Lower() float64 { return a.lower }

// Upper returns the upper position limit.
func (a *JointAxis) Upper() float64 { return a.upper }

// Effort returns the maximum joint effort; unbounded maps to +Inf.
func (a *JointAxis) Effort() float64 { return infiniteIfNegative(a.effort) }

// MaxVelocity returns the maximum joint velocity; unbounded maps to +Inf.
func (a *JointAxis) MaxVelocity() float64 { return infiniteIfNegative(a.maxVelocity) }

// ResolveXyz expresses the axis direction in the resolveTo frame. Empty
// resolveTo means the joint frame.
func (a *JointAxis) ResolveXyz(resolveTo string) (sdfmath.Vector3, errors.Errors) {
	if a.graph == nil {
		return sdfmath.Vector3{}, errors.Errors{errors.New(errors.CodePoseRelativeToGraph,
			"joint axis has an invalid pointer to its frame graph")}
	}
	from := a.expressedIn
	if from == "" {
		from = a.xmlParentName
	}
	if resolveTo == "" {
		resolveTo = a.xmlParentName
	}
	pose, errs := a.graph.ResolvePose(from, resolveTo)
	if len(errs) > 0 {
		return sdfmath.Vector3{}, errs
	}
	return pose.Rot.Rotate(a.xyz), nil
}

// Element returns the element this axis was loaded from.
func (a *JointAxis) Element() *Element { return a.elem }

// Joint is a connection constraining the motion of two links.
type Joint struct {
	name           string
	jointType      JointType
	parentLinkName string
	childLinkName  string
	axis           [2]*JointAxis
	rawPose        sdfmath.Pose
	poseRelativeTo string

	graph *frames.Graph
	elem  *Element
}

// Load populates the joint from a <joint> element.
func (j *Joint) Load(e *Element) errors.Errors {
	j.elem = e

	if e.Name() != "joint" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a joint, but the element is not a <joint>"))}
	}

	var errs errors.Errors
	name, ok := loadName(e)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"a joint name is required, but the name is not set")))
	}
	j.name = name
	if isReservedName(j.name) {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeReservedName,
			"the supplied joint name [%s] is reserved", j.name)))
	}

	typeName, ok := GetValue(e, "type", "")
	if !ok || typeName == "" {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeAttributeMissing,
			"a joint type is required, but it is not set")))
	} else if jt, known := jointTypeNames[typeName]; known {
		j.jointType = jt
	} else {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeAttributeInvalid,
			"joint type of %q is invalid", typeName)))
	}

	j.parentLinkName, _ = GetValue(e, "parent", "")
	if j.parentLinkName == "" {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeElementMissing,
			"the parent element is missing from joint [%s]", j.name)))
	}
	j.childLinkName, _ = GetValue(e, "child", "")
	if j.childLinkName == "" {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeElementMissing,
			"the child element is missing from joint [%s]", j.name)))
	}
	if j.childLinkName == "world" {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeElementInvalid,
			"joint [%s] specified invalid child link [world]", j.name)))
	}
	if j.childLinkName != "" && j.childLinkName == j.parentLinkName {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeElementInvalid,
			"joint [%s] must specify different link names for parent and child", j.name)))
	}

	for i, axisName := range []string{"axis", "axis2"} {
		if axisElem := e.FindElement(axisName); axisElem != nil {
			axis := &JointAxis{}
			errs = append(errs, axis.Load(axisElem)...)
			axis.xmlParentName = j.name
			j.axis[i] = axis
		}
	}

	j.rawPose, j.poseRelativeTo, _ = loadPose(e)
	return errs
}

// Name returns the joint name.
func (j *Joint) Name() string { return j.name }

// SetName replaces the joint name.
func (j *Joint) SetName(name string) { j.name = name }

// Type returns the joint type.
func (j *Joint) Type() JointType { return j.jointType }

// SetType replaces the joint type.
func (j *Joint) SetType(t JointType) { j.jointType = t }

// ParentLinkName returns the name of the parent frame or link.
func (j *Joint) ParentLinkName() string { return j.parentLinkName }

// SetParentLinkName replaces the parent name.
func (j *Joint) SetParentLinkName(name string) { j.parentLinkName = name }

// ChildLinkName returns the name of the child frame or link.
func (j *Joint) ChildLinkName() string { return j.childLinkName }

// SetChildLinkName replaces the child name.
func (j *Joint) SetChildLinkName(name string) { j.childLinkName = name }

// Axis returns the motion axis by index, 0 or 1; nil when the joint does
// not declare it.
func (j *Joint) Axis(index int) *JointAxis {
	if index < 0 || index >= len(j.axis) {
		return nil
	}
	return j.axis[index]
}

// RawPose returns the pose as written, relative to PoseRelativeTo.
func (j *Joint) RawPose() sdfmath.Pose { return j.rawPose }

// SetRawPose replaces the raw pose.
func (j *Joint) SetRawPose(pose sdfmath.Pose) { j.rawPose = pose }

// PoseRelativeTo returns the frame the raw pose is expressed in, empty
// meaning the child link.
func (j *Joint) PoseRelativeTo() string { return j.poseRelativeTo }

// SetPoseRelativeTo replaces the relative-to frame name.
func (j *Joint) SetPoseRelativeTo(frame string) { j.poseRelativeTo = frame }

// SemanticPose returns a resolve handle for the joint pose. The joint is
// a graph vertex; its default resolve target is the child link.
func (j *Joint) SemanticPose() SemanticPose {
	return makeSemanticPose(j.name, j.rawPose, j.poseRelativeTo, j.childLinkName, j.graph)
}

// Element returns the element this joint was loaded from.
func (j *Joint) Element() *Element { return j.elem }

// setPoseGraph wires the scope graph into the joint and its axes.
func (j *Joint) setPoseGraph(graph *frames.Graph) {
	j.graph = graph
	for _, axis := range j.axis {
		if axis != nil {
			axis.graph = graph
		}
	}
}
