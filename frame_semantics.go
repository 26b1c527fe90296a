package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/frames"
	"github.com/robosim/sdf/sdfmath"
)

// graphBuilder accumulates one scope's frame graph. Registration and edge
// errors never stop the build; the finished graph stays usable for every
// frame that is not on a bad chain.
type graphBuilder struct {
	graph     *frames.Graph
	scopeKind string
	scopeName string
	errs      errors.Errors
}

func (b *graphBuilder) locate(elem *Element, err error) errors.Error {
	e, ok := err.(errors.Error)
	if !ok {
		e = errors.New(errors.CodePoseRelativeToGraph, err.Error())
	}
	if elem == nil {
		return e
	}
	return elem.errorLocation(e)
}

// addVertex registers one frame name. Entities whose load already failed
// to produce a name are skipped rather than piling on errors.
func (b *graphBuilder) addVertex(name string, elem *Element) frames.VertexID {
	if name == "" {
		return frames.InvalidVertexID
	}
	id, err := b.graph.AddVertex(name)
	if err != nil {
		b.errs = append(b.errs, b.locate(elem, err))
		return frames.InvalidVertexID
	}
	return id
}

// addEdge connects a registered frame to its relative-to target. attrName
// names the attribute the target came from, for diagnostics.
func (b *graphBuilder) addEdge(from frames.VertexID, kind, name, attrName, target string, pose sdfmath.Pose, elem *Element) {
	if from == frames.InvalidVertexID {
		return
	}
	to, ok := b.graph.VertexByName(target)
	if !ok {
		b.errs = append(b.errs, b.locate(elem, errors.Newf(errors.CodeFrameInvalid,
			"%s name[%s] specified by %s with name[%s] does not match a link, joint, or frame name in %s with name[%s]",
			attrName, target, kind, name, b.scopeKind, b.scopeName)))
		return
	}
	if err := b.graph.AddEdge(from, to, pose); err != nil {
		b.errs = append(b.errs, b.locate(elem, err))
	}
}

// buildModelGraph constructs the pose graph of one model scope and wires
// it into the model and its members. Every link, joint, explicit frame,
// and nested model becomes a vertex; nested models then build their own
// scopes recursively.
func buildModelGraph(m *Model) errors.Errors {
	g := frames.NewGraph(frames.ModelScopeName)
	b := graphBuilder{graph: g, scopeKind: "model", scopeName: m.name}

	linkIDs := make([]frames.VertexID, len(m.links))
	for i := range m.links {
		linkIDs[i] = b.addVertex(m.links[i].Name(), m.links[i].Element())
	}
	jointIDs := make([]frames.VertexID, len(m.joints))
	for i := range m.joints {
		jointIDs[i] = b.addVertex(m.joints[i].Name(), m.joints[i].Element())
	}
	frameIDs := make([]frames.VertexID, len(m.frames))
	for i := range m.frames {
		frameIDs[i] = b.addVertex(m.frames[i].Name(), m.frames[i].Element())
	}
	modelIDs := make([]frames.VertexID, len(m.models))
	for i := range m.models {
		modelIDs[i] = b.addVertex(m.models[i].Name(), m.models[i].Element())
	}

	for i := range m.links {
		l := &m.links[i]
		attr, target := "relative_to", l.PoseRelativeTo()
		if target == "" {
			target = frames.ModelScopeName
		}
		b.addEdge(linkIDs[i], "link", l.Name(), attr, target, l.RawPose(), l.Element())
	}
	for i := range m.joints {
		j := &m.joints[i]
		attr, target := "relative_to", j.PoseRelativeTo()
		if target == "" {
			attr, target = "child frame", j.ChildLinkName()
			if target == "" {
				// The missing child was already reported at load; keep the
				// joint anchored so the rest of the scope resolves.
				target = frames.ModelScopeName
			}
		}
		b.addEdge(jointIDs[i], "joint", j.Name(), attr, target, j.RawPose(), j.Element())
	}
	for i := range m.frames {
		f := &m.frames[i]
		attr, target := "relative_to", f.PoseRelativeTo()
		if target == "" {
			attr, target = "attached_to", f.AttachedTo()
			if target == "" {
				target = frames.ModelScopeName
			}
		}
		b.addEdge(frameIDs[i], "frame", f.Name(), attr, target, f.RawPose(), f.Element())
	}
	for i := range m.models {
		n := &m.models[i]
		attr, target := "relative_to", n.PoseRelativeTo()
		if target == "" {
			target = frames.ModelScopeName
		}
		b.addEdge(modelIDs[i], "model", n.Name(), attr, target, n.RawPose(), n.Element())
	}

	b.errs = append(b.errs, g.ValidateAcyclic()...)

	m.graph = g
	for i := range m.links {
		m.links[i].setPoseGraph(g)
	}
	for i := range m.joints {
		m.joints[i].setPoseGraph(g)
	}
	for i := range m.frames {
		m.frames[i].setPoseGraph(g)
	}
	for i := range m.models {
		m.models[i].setPoseGraph(g)
		b.errs = append(b.errs, buildModelGraph(&m.models[i])...)
	}
	return b.errs
}

// buildWorldGraph constructs the pose graph of a world scope. Models and
// explicit frames become vertices; each model then builds its own scope.
// Actors keep world-relative raw poses and are not part of the graph.
func buildWorldGraph(w *World) errors.Errors {
	g := frames.NewGraph(frames.WorldScopeName)
	b := graphBuilder{graph: g, scopeKind: "world", scopeName: w.name}

	modelIDs := make([]frames.VertexID, len(w.models))
	for i := range w.models {
		modelIDs[i] = b.addVertex(w.models[i].Name(), w.models[i].Element())
	}
	frameIDs := make([]frames.VertexID, len(w.frames))
	for i := range w.frames {
		frameIDs[i] = b.addVertex(w.frames[i].Name(), w.frames[i].Element())
	}

	for i := range w.models {
		m := &w.models[i]
		attr, target := "relative_to", m.PoseRelativeTo()
		if target == "" {
			target = frames.WorldScopeName
		}
		b.addEdge(modelIDs[i], "model", m.Name(), attr, target, m.RawPose(), m.Element())
	}
	for i := range w.frames {
		f := &w.frames[i]
		attr, target := "relative_to", f.PoseRelativeTo()
		if target == "" {
			attr, target = "attached_to", f.AttachedTo()
			if target == "" {
				target = frames.WorldScopeName
			}
		}
		b.addEdge(frameIDs[i], "frame", f.Name(), attr, target, f.RawPose(), f.Element())
	}

	b.errs = append(b.errs, g.ValidateAcyclic()...)

	w.graph = g
	for i := range w.models {
		w.models[i].setPoseGraph(g)
		b.errs = append(b.errs, buildModelGraph(&w.models[i])...)
	}
	for i := range w.frames {
		w.frames[i].setPoseGraph(g)
	}
	return b.errs
}
