// Package frames implements the relative-pose graph: named frames
// connected by directed relative-to edges, each edge carrying the pose of
// its source frame expressed in its target frame.
//
// A graph covers one scope (a model or a world). Every frame is a vertex;
// at most one outgoing edge leaves each vertex; every chain of outgoing
// edges must end at the scope root. Graphs are built once by the scope
// owner and then only read.
package frames

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/sdfmath"
)

// VertexID addresses a vertex inside its graph. IDs are stable for the
// life of the graph.
type VertexID int

// InvalidVertexID is returned by lookups that fail.
const InvalidVertexID VertexID = -1

// Scope root names. Frames with no declared relative-to attach here.
const (
	// ModelScopeName is the implicit frame of a model scope.
	ModelScopeName = "__model__"
	// WorldScopeName is the frame of a world scope.
	WorldScopeName = "world"
)

type edge struct {
	to   VertexID
	pose sdfmath.Pose // pose of the source frame in the target frame
}

type vertex struct {
	name     string
	out      *edge
	poisoned bool // on or under a relative-to cycle, unresolvable
}

// Graph is an arena of frame vertices for one scope. The zero value is
// not usable; construct with NewGraph.
type Graph struct {
	vertices []vertex
	byName   map[string]VertexID
	root     VertexID
	scope    string
}

// NewGraph returns a graph whose root vertex carries the scope name
// ("__model__" for model scopes, "world" for world scopes).
func NewGraph(scopeName string) *Graph {
	g := &Graph{
		byName: make(map[string]VertexID),
		scope:  scopeName,
	}
	g.root = g.addVertex(scopeName)
	return g
}

func (g *Graph) addVertex(name string) VertexID {
	id := VertexID(len(g.vertices))
	g.vertices = append(g.vertices, vertex{name: name})
	g.byName[name] = id
	return id
}

// ScopeName returns the name of the scope root frame.
func (g *Graph) ScopeName() string { return g.scope }

// Root returns the scope root vertex.
func (g *Graph) Root() VertexID { return g.root }

// VertexCount returns the number of registered frames, root included.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// AddVertex registers a frame name and returns its vertex. Registering a
// name twice fails with a duplicate-name error and keeps the first
// registration.
func (g *Graph) AddVertex(name string) (VertexID, error) {
	if _, exists := g.byName[name]; exists {
		return InvalidVertexID, errors.Newf(errors.CodeDuplicateName,
			"frame %q already exists in scope %q", name, g.scope)
	}
	return g.addVertex(name), nil
}

// VertexByName looks a frame up by name.
func (g *Graph) VertexByName(name string) (VertexID, bool) {
	id, ok := g.byName[name]
	return id, ok
}

// Name returns the frame name of a vertex, or "" for an invalid id.
func (g *Graph) Name(id VertexID) string {
	if !g.valid(id) {
		return ""
	}
	return g.vertices[id].name
}

func (g *Graph) valid(id VertexID) bool {
	return id >= 0 && int(id) < len(g.vertices)
}

// AddEdge records that frame from is posed relative to frame to. Each
// frame may declare at most one such relationship, the scope root none,
// and no frame may be relative to itself.
func (g *Graph) AddEdge(from, to VertexID, pose sdfmath.Pose) error {
	if !g.valid(from) || !g.valid(to) {
		return errors.Newf(errors.CodePoseRelativeToGraph,
			"edge endpoints out of range in scope %q", g.scope)
	}
	if from == to {
		return errors.Newf(errors.CodeFrameInvalid,
			"frame %q is relative to itself", g.vertices[from].name)
	}
	if from == g.root {
		return errors.Newf(errors.CodePoseRelativeToGraph,
			"scope root %q cannot be relative to another frame", g.scope)
	}
	if g.vertices[from].out != nil {
		return errors.Newf(errors.CodePoseRelativeToGraph,
			"frame %q already has a relative-to frame", g.vertices[from].name)
	}
	g.vertices[from].out = &edge{to: to, pose: pose}
	return nil
}

// ValidateAcyclic walks every vertex's outgoing chain and reports chains
// that loop or fail to reach the scope root. Every vertex on a bad chain
// is marked unresolvable; the rest of the graph stays usable.
func (g *Graph) ValidateAcyclic() errors.Errors {
	var errs errors.Errors

	const (
		unvisited = iota
		onPath
		ok
		bad
	)
	state := make([]int, len(g.vertices))
	state[g.root] = ok

	for start := range g.vertices {
		if state[start] != unvisited {
			continue
		}
		var path []VertexID
		id := VertexID(start)
		verdict := ok
		for {
			if state[id] == ok || state[id] == bad {
				verdict = state[id]
				break
			}
			if state[id] == onPath {
				// The chain re-entered itself.
				errs = errors.Append(errs, errors.Newf(errors.CodePoseRelativeToCycle,
					"relative-to cycle through frame %q in scope %q",
					g.vertices[id].name, g.scope))
				verdict = bad
				break
			}
			state[id] = onPath
			path = append(path, id)
			e := g.vertices[id].out
			if e == nil {
				errs = errors.Append(errs, errors.Newf(errors.CodePoseRelativeToGraph,
					"frame %q is not connected to scope root %q",
					g.vertices[id].name, g.scope))
				verdict = bad
				break
			}
			id = e.to
		}
		for _, v := range path {
			state[v] = verdict
			if verdict == bad {
				g.vertices[v].poisoned = true
			}
		}
	}
	return errs
}
