package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/frames"
	"github.com/robosim/sdf/sdfmath"
)

// Link is a rigid body of a model.
type Link struct {
	name           string
	rawPose        sdfmath.Pose
	poseRelativeTo string
	gravity        bool
	selfCollide    bool
	collisions     []Collision
	visuals        []Visual

	graph *frames.Graph
	elem  *Element
}

// Load populates the link from a <link> element.
func (l *Link) Load(e *Element) errors.Errors {
	l.elem = e
	l.gravity = true

	if e.Name() != "link" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a link, but the element is not a <link>"))}
	}

	var errs errors.Errors
	name, ok := loadName(e)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"a link name is required, but the name is not set")))
	}
	l.name = name
	if isReservedName(l.name) {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeReservedName,
			"the supplied link name [%s] is reserved", l.name)))
	}

	l.rawPose, l.poseRelativeTo, _ = loadPose(e)
	l.gravity, _ = GetValue(e, "gravity", true)
	l.selfCollide, _ = GetValue(e, "self_collide", false)

	collisions, collisionErrs := loadUniqueRepeated[Collision](e, "collision")
	l.collisions = collisions
	errs = append(errs, collisionErrs...)

	visuals, visualErrs := loadUniqueRepeated[Visual](e, "visual")
	l.visuals = visuals
	errs = append(errs, visualErrs...)

	for i := range l.collisions {
		l.collisions[i].setXMLParentName(l.name)
	}
	for i := range l.visuals {
		l.visuals[i].setXMLParentName(l.name)
	}
	return errs
}

// Name returns the link name.
func (l *Link) Name() string { return l.name }

// SetName replaces the link name.
func (l *Link) SetName(name string) { l.name = name }

// Gravity reports whether the link is affected by gravity.
func (l *Link) Gravity() bool { return l.gravity }

// SetGravity toggles gravity for the link.
func (l *Link) SetGravity(gravity bool) { l.gravity = gravity }

// SelfCollide reports whether the link collides with links of its own
// model.
func (l *Link) SelfCollide() bool { return l.selfCollide }

// SetSelfCollide toggles self collision.
func (l *Link) SetSelfCollide(selfCollide bool) { l.selfCollide = selfCollide }

// CollisionCount returns the number of collisions.
func (l *Link) CollisionCount() int { return len(l.collisions) }

// CollisionByIndex returns a collision by index, nil when out of range.
func (l *Link) CollisionByIndex(index int) *Collision {
	if index < 0 || index >= len(l.collisions) {
		return nil
	}
	return &l.collisions[index]
}

// CollisionByName returns the named collision, or nil.
func (l *Link) CollisionByName(name string) *Collision {
	for i := range l.collisions {
		if l.collisions[i].Name() == name {
			return &l.collisions[i]
		}
	}
	return nil
}

// CollisionNameExists reports whether a collision with the name exists.
func (l *Link) CollisionNameExists(name string) bool {
	return l.CollisionByName(name) != nil
}

// VisualCount returns the number of visuals.
func (l *Link) VisualCount() int { return len(l.visuals) }

// VisualByIndex returns a visual by index, nil when out of range.
func (l *Link) VisualByIndex(index int) *Visual {
	if index < 0 || index >= len(l.visuals) {
		return nil
	}
	return &l.visuals[index]
}

// VisualByName returns the named visual, or nil.
func (l *Link) VisualByName(name string) *Visual {
	for i := range l.visuals {
		if l.visuals[i].Name() == name {
			return &l.visuals[i]
		}
	}
	return nil
}

// VisualNameExists reports whether a visual with the name exists.
func (l *Link) VisualNameExists(name string) bool {
	return l.VisualByName(name) != nil
}

// RawPose returns the pose as written, relative to PoseRelativeTo.
func (l *Link) RawPose() sdfmath.Pose { return l.rawPose }

// SetRawPose replaces the raw pose.
func (l *Link) SetRawPose(pose sdfmath.Pose) { l.rawPose = pose }

// PoseRelativeTo returns the frame the raw pose is expressed in, empty
// meaning the model frame.
func (l *Link) PoseRelativeTo() string { return l.poseRelativeTo }

// SetPoseRelativeTo replaces the relative-to frame name.
func (l *Link) SetPoseRelativeTo(frame string) { l.poseRelativeTo = frame }

// SemanticPose returns a resolve handle for the link pose. The link is a
// graph vertex, so resolution starts at the link frame itself.
func (l *Link) SemanticPose() SemanticPose {
	return makeSemanticPose(l.name, l.rawPose, l.poseRelativeTo, frames.ModelScopeName, l.graph)
}

// Element returns the element this link was loaded from.
func (l *Link) Element() *Element { return l.elem }

// setPoseGraph wires the scope graph into the link and its collisions and
// visuals.
func (l *Link) setPoseGraph(graph *frames.Graph) {
	l.graph = graph
	for i := range l.collisions {
		l.collisions[i].setPoseGraph(graph)
	}
	for i := range l.visuals {
		l.visuals[i].setPoseGraph(graph)
	}
}
