package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/frames"
	"github.com/robosim/sdf/sdfmath"
)

// Model is a named collection of links, joints, frames, and nested models
// forming one simulated entity. A loaded model owns the frame graph of
// its scope; nested models own their own.
type Model struct {
	name           string
	static         bool
	canonicalLink  string
	rawPose        sdfmath.Pose
	poseRelativeTo string
	links          []Link
	joints         []Joint
	frames         []Frame
	models         []Model
	plugins        []Plugin

	// graph is the scope this model owns; parentGraph is the scope the
	// model appears in as a vertex, nil for an unattached model.
	graph       *frames.Graph
	parentGraph *frames.Graph
	elem        *Element
}

// Load populates the model from a <model> element. Frame graphs are not
// built here; the enclosing Root (or World) does that once the whole
// document is in memory.
func (m *Model) Load(e *Element) errors.Errors {
	m.elem = e

	if e.Name() != "model" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a model, but the element is not a <model>"))}
	}

	var errs errors.Errors
	name, ok := loadName(e)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"a model name is required, but the name is not set")))
	}
	m.name = name
	if isReservedName(m.name) {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeReservedName,
			"the supplied model name [%s] is reserved", m.name)))
	}

	m.canonicalLink, _ = GetValue(e, "canonical_link", "")
	m.static, _ = GetValue(e, "static", false)
	m.rawPose, m.poseRelativeTo, _ = loadPose(e)

	links, linkErrs := loadUniqueRepeated[Link](e, "link")
	m.links = links
	errs = append(errs, linkErrs...)

	joints, jointErrs := loadUniqueRepeated[Joint](e, "joint")
	m.joints = joints
	errs = append(errs, jointErrs...)

	frameObjs, frameErrs := loadUniqueRepeated[Frame](e, "frame")
	m.frames = frameObjs
	errs = append(errs, frameErrs...)

	models, modelErrs := loadUniqueRepeated[Model](e, "model")
	m.models = models
	errs = append(errs, modelErrs...)

	plugins, pluginErrs := loadRepeated[Plugin](e, "plugin")
	m.plugins = plugins
	errs = append(errs, pluginErrs...)

	if len(m.links) == 0 && len(m.models) == 0 {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeElementMissing,
			"a model must have at least one link")))
	}

	if m.canonicalLink != "" && !m.LinkNameExists(m.canonicalLink) && m.ModelByName(m.canonicalLink) == nil {
		errs = append(errs, e.errorLocation(errors.Newf(errors.CodeFrameInvalid,
			"canonical_link [%s] does not match a link or nested model name in model [%s]",
			m.canonicalLink, m.name)))
	}

	return errs
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// SetName replaces the model name.
func (m *Model) SetName(name string) { m.name = name }

// Static reports whether the model is immovable.
func (m *Model) Static() bool { return m.static }

// SetStatic toggles the static flag.
func (m *Model) SetStatic(static bool) { m.static = static }

// CanonicalLinkName returns the declared canonical link name, empty when
// the first link is implied.
func (m *Model) CanonicalLinkName() string { return m.canonicalLink }

// SetCanonicalLinkName replaces the canonical link name.
func (m *Model) SetCanonicalLinkName(name string) { m.canonicalLink = name }

// CanonicalLink returns the link the implicit model frame is attached to:
// the named canonical link, or the first link when none is named. Nil for
// a model with no direct links.
func (m *Model) CanonicalLink() *Link {
	if m.canonicalLink != "" {
		return m.LinkByName(m.canonicalLink)
	}
	if len(m.links) == 0 {
		return nil
	}
	return &m.links[0]
}

// LinkCount returns the number of direct links.
func (m *Model) LinkCount() int { return len(m.links) }

// LinkByIndex returns a link by index, nil when out of range.
func (m *Model) LinkByIndex(index int) *Link {
	if index < 0 || index >= len(m.links) {
		return nil
	}
	return &m.links[index]
}

// LinkByName returns the named link, or nil.
func (m *Model) LinkByName(name string) *Link {
	for i := range m.links {
		if m.links[i].Name() == name {
			return &m.links[i]
		}
	}
	return nil
}

// LinkNameExists reports whether a link with the name exists.
func (m *Model) LinkNameExists(name string) bool { return m.LinkByName(name) != nil }

// JointCount returns the number of joints.
func (m *Model) JointCount() int { return len(m.joints) }

// JointByIndex returns a joint by index, nil when out of range.
func (m *Model) JointByIndex(index int) *Joint {
	if index < 0 || index >= len(m.joints) {
		return nil
	}
	return &m.joints[index]
}

// JointByName returns the named joint, or nil.
func (m *Model) JointByName(name string) *Joint {
	for i := range m.joints {
		if m.joints[i].Name() == name {
			return &m.joints[i]
		}
	}
	return nil
}

// JointNameExists reports whether a joint with the name exists.
func (m *Model) JointNameExists(name string) bool { return m.JointByName(name) != nil }

// FrameCount returns the number of explicit frames.
func (m *Model) FrameCount() int { return len(m.frames) }

// FrameByIndex returns a frame by index, nil when out of range.
func (m *Model) FrameByIndex(index int) *Frame {
	if index < 0 || index >= len(m.frames) {
		return nil
	}
	return &m.frames[index]
}

// FrameByName returns the named frame, or nil.
func (m *Model) FrameByName(name string) *Frame {
	for i := range m.frames {
		if m.frames[i].Name() == name {
			return &m.frames[i]
		}
	}
	return nil
}

// FrameNameExists reports whether a frame with the name exists.
func (m *Model) FrameNameExists(name string) bool { return m.FrameByName(name) != nil }

// ModelCount returns the number of nested models.
func (m *Model) ModelCount() int { return len(m.models) }

// ModelByIndex returns a nested model by index, nil when out of range.
func (m *Model) ModelByIndex(index int) *Model {
	if index < 0 || index >= len(m.models) {
		return nil
	}
	return &m.models[index]
}

// ModelByName returns the named nested model, or nil.
func (m *Model) ModelByName(name string) *Model {
	for i := range m.models {
		if m.models[i].Name() == name {
			return &m.models[i]
		}
	}
	return nil
}

// ModelNameExists reports whether a nested model with the name exists.
func (m *Model) ModelNameExists(name string) bool { return m.ModelByName(name) != nil }

// PluginCount returns the number of plugins.
func (m *Model) PluginCount() int { return len(m.plugins) }

// PluginByIndex returns a plugin by index, nil when out of range.
func (m *Model) PluginByIndex(index int) *Plugin {
	if index < 0 || index >= len(m.plugins) {
		return nil
	}
	return &m.plugins[index]
}

// RawPose returns the pose as written, relative to PoseRelativeTo.
func (m *Model) RawPose() sdfmath.Pose { return m.rawPose }

// SetRawPose replaces the raw pose.
func (m *Model) SetRawPose(pose sdfmath.Pose) { m.rawPose = pose }

// PoseRelativeTo returns the frame the raw pose is expressed in, empty
// meaning the enclosing scope frame.
func (m *Model) PoseRelativeTo() string { return m.poseRelativeTo }

// SetPoseRelativeTo replaces the relative-to frame name.
func (m *Model) SetPoseRelativeTo(frame string) { m.poseRelativeTo = frame }

// PoseGraph returns the frame graph of the model's own scope, nil until
// the enclosing Root built it.
func (m *Model) PoseGraph() *frames.Graph { return m.graph }

// SemanticPose returns a resolve handle for the model pose within its
// enclosing scope. It stays unresolvable for a top-level model outside
// any world.
func (m *Model) SemanticPose() SemanticPose {
	return makeSemanticPose(m.name, m.rawPose, m.poseRelativeTo, "", m.parentGraph)
}

// Element returns the element this model was loaded from.
func (m *Model) Element() *Element { return m.elem }

func (m *Model) setPoseGraph(graph *frames.Graph) { m.parentGraph = graph }
