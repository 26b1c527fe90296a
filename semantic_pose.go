package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/frames"
	"github.com/robosim/sdf/sdfmath"
)

// SemanticPose is the resolve handle a domain object hands out for its
// pose. It couples the raw pose and declared relative-to name with the
// frame graph of the enclosing scope, so the pose can be expressed in any
// frame of that scope.
//
// Objects that are themselves graph vertices (links, joints, frames,
// models) carry their vertex name and resolve it directly; leaf objects
// (collisions, visuals) resolve their relative-to frame and reapply the
// raw pose on top.
type SemanticPose struct {
	name             string
	rawPose          sdfmath.Pose
	relativeTo       string
	defaultResolveTo string
	graph            *frames.Graph
}

func makeSemanticPose(name string, raw sdfmath.Pose, relativeTo, defaultResolveTo string, graph *frames.Graph) SemanticPose {
	return SemanticPose{
		name:             name,
		rawPose:          raw,
		relativeTo:       relativeTo,
		defaultResolveTo: defaultResolveTo,
		graph:            graph,
	}
}

// RawPose returns the pose as written, without any graph resolution.
func (s SemanticPose) RawPose() sdfmath.Pose { return s.rawPose }

// RelativeTo returns the declared relative-to frame name, empty when the
// pose is relative to its structural parent.
func (s SemanticPose) RelativeTo() string { return s.relativeTo }

// Resolve expresses the pose in the resolveTo frame. Empty resolveTo
// means the object's structural parent, or the scope root for objects
// without one. A SemanticPose detached from any graph cannot resolve.
func (s SemanticPose) Resolve(resolveTo string) (sdfmath.Pose, errors.Errors) {
	if s.graph == nil {
		return sdfmath.PoseIdentity(), errors.Errors{errors.New(errors.CodePoseRelativeToGraph,
			"pose has an invalid pointer to its frame graph")}
	}
	if resolveTo == "" {
		resolveTo = s.defaultResolveTo
		if resolveTo == "" {
			resolveTo = s.graph.ScopeName()
		}
	}

	if s.name != "" {
		return s.graph.ResolvePose(s.name, resolveTo)
	}

	relativeTo := s.relativeTo
	if relativeTo == "" {
		relativeTo = s.defaultResolveTo
	}
	resolved, errs := s.graph.ResolvePose(relativeTo, resolveTo)
	if len(errs) > 0 {
		return sdfmath.PoseIdentity(), errs
	}
	return resolved.Mul(s.rawPose), nil
}
