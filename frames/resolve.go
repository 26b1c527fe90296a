package frames

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/sdfmath"
)

// ResolvePose returns the pose of frame from expressed in frame to,
// composing edge transforms through their lowest shared ancestor. Unknown
// names fail with frame-invalid; chains that loop or never reach the
// scope root fail with the corresponding graph error.
func (g *Graph) ResolvePose(from, to string) (sdfmath.Pose, errors.Errors) {
	fromID, ok := g.VertexByName(from)
	if !ok {
		return sdfmath.PoseIdentity(), errors.Errors{errors.Newf(errors.CodeFrameInvalid,
			"frame %q does not exist in scope %q", from, g.scope)}
	}
	toID, ok := g.VertexByName(to)
	if !ok {
		return sdfmath.PoseIdentity(), errors.Errors{errors.Newf(errors.CodeFrameInvalid,
			"frame %q does not exist in scope %q", to, g.scope)}
	}
	return g.ResolvePoseVertex(fromID, toID)
}

// ResolvePoseVertex is ResolvePose addressed by vertex instead of name.
func (g *Graph) ResolvePoseVertex(from, to VertexID) (sdfmath.Pose, errors.Errors) {
	if !g.valid(from) || !g.valid(to) {
		return sdfmath.PoseIdentity(), errors.Errors{errors.Newf(errors.CodePoseRelativeToGraph,
			"vertex out of range in scope %q", g.scope)}
	}
	if from == to {
		return sdfmath.PoseIdentity(), nil
	}

	fromChain, errs := g.chainToRoot(from)
	if errs != nil {
		return sdfmath.PoseIdentity(), errs
	}
	if pos, ok := fromChain.position(to); ok {
		// to is an ancestor of from: compose the prefix directly.
		return fromChain.composeTo(pos), nil
	}

	toChain, errs := g.chainToRoot(to)
	if errs != nil {
		return sdfmath.PoseIdentity(), errs
	}
	anchor := g.root
	for _, step := range toChain.ids {
		if _, ok := fromChain.position(step); ok {
			anchor = step
			break
		}
	}
	fromPos, _ := fromChain.position(anchor)
	toPos, _ := toChain.position(anchor)
	xAnchorFrom := fromChain.composeTo(fromPos)
	xAnchorTo := toChain.composeTo(toPos)
	return xAnchorTo.Inverse().Mul(xAnchorFrom), nil
}

// ResolvePoseRelativeToRoot returns the pose of the frame expressed in
// the scope root.
func (g *Graph) ResolvePoseRelativeToRoot(id VertexID) (sdfmath.Pose, errors.Errors) {
	return g.ResolvePoseVertex(id, g.root)
}

// chain is a root-ward walk: ids[0] is the start vertex and ids ends at
// the scope root; poses[i] is the edge transform leaving ids[i].
type chain struct {
	ids   []VertexID
	poses []sdfmath.Pose
	index map[VertexID]int
}

func (c *chain) position(id VertexID) (int, bool) {
	pos, ok := c.index[id]
	return pos, ok
}

// composeTo multiplies edge transforms from the start vertex up to, but
// not including, the vertex at the given chain position, yielding the
// pose of the start frame expressed in that vertex's frame.
func (c *chain) composeTo(pos int) sdfmath.Pose {
	acc := sdfmath.PoseIdentity()
	for i := 0; i < pos; i++ {
		acc = c.poses[i].Mul(acc)
	}
	return acc
}

func (g *Graph) chainToRoot(start VertexID) (*chain, errors.Errors) {
	c := &chain{index: make(map[VertexID]int)}
	id := start
	for {
		if g.vertices[id].poisoned {
			return nil, errors.Errors{errors.Newf(errors.CodePoseRelativeToCycle,
				"frame %q is on an invalid relative-to chain in scope %q",
				g.vertices[id].name, g.scope)}
		}
		if _, seen := c.index[id]; seen {
			return nil, errors.Errors{errors.Newf(errors.CodePoseRelativeToCycle,
				"relative-to cycle through frame %q in scope %q",
				g.vertices[id].name, g.scope)}
		}
		c.index[id] = len(c.ids)
		c.ids = append(c.ids, id)
		e := g.vertices[id].out
		if e == nil {
			if id != g.root {
				return nil, errors.Errors{errors.Newf(errors.CodePoseRelativeToGraph,
					"frame %q is not connected to scope root %q",
					g.vertices[id].name, g.scope)}
			}
			return c, nil
		}
		c.poses = append(c.poses, e.pose)
		id = e.to
	}
}
