package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/frames"
	"github.com/robosim/sdf/sdfmath"
)

// Frame is an explicit named frame of reference attached to an entity of
// its scope.
type Frame struct {
	name           string
	attachedTo     string
	rawPose        sdfmath.Pose
	poseRelativeTo string

	graph *frames.Graph
	elem  *Element
}

// Load populates the frame from a <frame> element.
func (f *Frame) Load(e *Element) errors.Errors {
	f.elem = e

	if e.Name() != "frame" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a frame, but the element is not a <frame>"))}
	}

	var errs errors.Errors
	name, ok := loadName(e)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"a frame name is required, but the name is not set")))
	}
	f.name = name
	if isReservedName(f.name) {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeReservedName,
			"the supplied frame name [%s] is reserved", f.name)))
	}

	f.attachedTo, _ = GetValue(e, "attached_to", "")
	if f.attachedTo != "" {
		if !isValidFrameReference(f.attachedTo) {
			errs = append(errs, e.errorLocation(errors.Newf(errors.CodeReservedName,
				"the attached_to name [%s] is reserved", f.attachedTo)))
		}
		if f.attachedTo == f.name {
			errs = append(errs, e.errorLocation(errors.Newf(errors.CodeFrameInvalid,
				"frame [%s] cannot be attached to itself", f.name)))
		}
	}

	f.rawPose, f.poseRelativeTo, _ = loadPose(e)
	return errs
}

// Name returns the frame name.
func (f *Frame) Name() string { return f.name }

// SetName replaces the frame name.
func (f *Frame) SetName(name string) { f.name = name }

// AttachedTo returns the name of the frame or entity this frame is
// attached to, empty meaning the scope frame.
func (f *Frame) AttachedTo() string { return f.attachedTo }

// SetAttachedTo replaces the attached-to name.
func (f *Frame) SetAttachedTo(name string) { f.attachedTo = name }

// RawPose returns the pose as written, relative to PoseRelativeTo.
func (f *Frame) RawPose() sdfmath.Pose { return f.rawPose }

// SetRawPose replaces the raw pose.
func (f *Frame) SetRawPose(pose sdfmath.Pose) { f.rawPose = pose }

// PoseRelativeTo returns the frame the raw pose is expressed in, empty
// meaning the attached-to frame or the scope frame.
func (f *Frame) PoseRelativeTo() string { return f.poseRelativeTo }

// SetPoseRelativeTo replaces the relative-to frame name.
func (f *Frame) SetPoseRelativeTo(frame string) { f.poseRelativeTo = frame }

// SemanticPose returns a resolve handle for the frame pose. The frame is
// a graph vertex; its default resolve target is its attached-to frame.
func (f *Frame) SemanticPose() SemanticPose {
	return makeSemanticPose(f.name, f.rawPose, f.poseRelativeTo, f.attachedTo, f.graph)
}

// Element returns the element this frame was loaded from.
func (f *Frame) Element() *Element { return f.elem }

func (f *Frame) setPoseGraph(graph *frames.Graph) { f.graph = graph }
