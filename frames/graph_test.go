package frames_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/frames"
	"github.com/robosim/sdf/sdfmath"
)

func mustAdd(t *testing.T, g *frames.Graph, name string) frames.VertexID {
	t.Helper()
	id, err := g.AddVertex(name)
	require.NoError(t, err)
	return id
}

func assertPos(t *testing.T, got sdfmath.Pose, x, y, z float64) {
	t.Helper()
	assert.InDelta(t, x, got.Pos.X, 1e-9)
	assert.InDelta(t, y, got.Pos.Y, 1e-9)
	assert.InDelta(t, z, got.Pos.Z, 1e-9)
}

func TestNewGraph(t *testing.T) {
	g := frames.NewGraph("__model__")
	require.NotNil(t, g)
	assert.Equal(t, "__model__", g.ScopeName())
	assert.Equal(t, 1, g.VertexCount())
	assert.Equal(t, "__model__", g.Name(g.Root()))

	id, ok := g.VertexByName("__model__")
	require.True(t, ok)
	assert.Equal(t, g.Root(), id)
}

func TestAddVertex(t *testing.T) {
	g := frames.NewGraph("world")
	mustAdd(t, g, "base")

	_, err := g.AddVertex("base")
	require.Error(t, err)
	errs, ok := errors.AsErrors(err)
	require.True(t, ok)
	assert.True(t, errs.HasCode(errors.CodeDuplicateName))
	assert.Equal(t, 2, g.VertexCount())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := frames.NewGraph("__model__")
		a := mustAdd(t, g, "a")
		require.NoError(t, g.AddEdge(a, g.Root(), sdfmath.NewPose(1, 0, 0, 0, 0, 0)))
	})

	t.Run("error cases", func(t *testing.T) {
		g := frames.NewGraph("__model__")
		a := mustAdd(t, g, "a")
		b := mustAdd(t, g, "b")

		err := g.AddEdge(a, a, sdfmath.PoseIdentity())
		assert.ErrorContains(t, err, "relative to itself")

		err = g.AddEdge(g.Root(), a, sdfmath.PoseIdentity())
		assert.ErrorContains(t, err, "scope root")

		require.NoError(t, g.AddEdge(a, b, sdfmath.PoseIdentity()))
		err = g.AddEdge(a, g.Root(), sdfmath.PoseIdentity())
		assert.ErrorContains(t, err, "already has a relative-to frame")

		err = g.AddEdge(frames.VertexID(99), a, sdfmath.PoseIdentity())
		assert.ErrorContains(t, err, "out of range")
	})
}

func TestValidateAcyclic(t *testing.T) {
	t.Run("valid tree has no errors", func(t *testing.T) {
		g := frames.NewGraph("__model__")
		a := mustAdd(t, g, "a")
		b := mustAdd(t, g, "b")
		require.NoError(t, g.AddEdge(a, g.Root(), sdfmath.PoseIdentity()))
		require.NoError(t, g.AddEdge(b, a, sdfmath.PoseIdentity()))
		assert.Empty(t, g.ValidateAcyclic())
	})

	t.Run("cycle is reported and poisons its chain only", func(t *testing.T) {
		g := frames.NewGraph("__model__")
		x := mustAdd(t, g, "x")
		y := mustAdd(t, g, "y")
		z := mustAdd(t, g, "z")
		ok := mustAdd(t, g, "ok")
		require.NoError(t, g.AddEdge(x, y, sdfmath.PoseIdentity()))
		require.NoError(t, g.AddEdge(y, z, sdfmath.PoseIdentity()))
		require.NoError(t, g.AddEdge(z, x, sdfmath.PoseIdentity()))
		require.NoError(t, g.AddEdge(ok, g.Root(), sdfmath.PoseIdentity()))

		errs := g.ValidateAcyclic()
		require.Len(t, errs, 1)
		assert.Equal(t, errors.CodePoseRelativeToCycle, errs[0].Code)

		_, rerrs := g.ResolvePose("x", "__model__")
		require.NotEmpty(t, rerrs)
		assert.Equal(t, errors.CodePoseRelativeToCycle, rerrs[0].Code)

		got, rerrs := g.ResolvePose("ok", "__model__")
		require.Empty(t, rerrs)
		assertPos(t, got, 0, 0, 0)
	})

	t.Run("disconnected frame is reported", func(t *testing.T) {
		g := frames.NewGraph("world")
		mustAdd(t, g, "floating")
		errs := g.ValidateAcyclic()
		require.Len(t, errs, 1)
		assert.Equal(t, errors.CodePoseRelativeToGraph, errs[0].Code)
	})
}

func TestResolvePose(t *testing.T) {
	t.Run("same frame is identity", func(t *testing.T) {
		g := frames.NewGraph("__model__")
		a := mustAdd(t, g, "a")
		require.NoError(t, g.AddEdge(a, g.Root(), sdfmath.NewPose(5, 5, 5, 0, 0, 1)))
		got, errs := g.ResolvePose("a", "a")
		require.Empty(t, errs)
		assertPos(t, got, 0, 0, 0)
	})

	t.Run("direct edge returns the edge transform", func(t *testing.T) {
		g := frames.NewGraph("__model__")
		a := mustAdd(t, g, "a")
		b := mustAdd(t, g, "b")
		require.NoError(t, g.AddEdge(b, g.Root(), sdfmath.PoseIdentity()))
		require.NoError(t, g.AddEdge(a, b, sdfmath.NewPose(2, 3, 4, 0, 0, 0)))
		got, errs := g.ResolvePose("a", "b")
		require.Empty(t, errs)
		assertPos(t, got, 2, 3, 4)
	})

	t.Run("translations compose child to parent", func(t *testing.T) {
		g := frames.NewGraph("__model__")
		a := mustAdd(t, g, "a")
		b := mustAdd(t, g, "b")
		c := mustAdd(t, g, "c")
		require.NoError(t, g.AddEdge(c, g.Root(), sdfmath.PoseIdentity()))
		require.NoError(t, g.AddEdge(b, c, sdfmath.NewPose(0, 1, 0, 0, 0, 0)))
		require.NoError(t, g.AddEdge(a, b, sdfmath.NewPose(1, 0, 0, 0, 0, 0)))
		got, errs := g.ResolvePose("a", "c")
		require.Empty(t, errs)
		assertPos(t, got, 1, 1, 0)
	})

	t.Run("resolution through a common ancestor", func(t *testing.T) {
		g := frames.NewGraph("world")
		a := mustAdd(t, g, "a")
		b := mustAdd(t, g, "b")
		c := mustAdd(t, g, "c")
		require.NoError(t, g.AddEdge(a, g.Root(), sdfmath.NewPose(0, 0, 0, 0, 0, math.Pi/2)))
		require.NoError(t, g.AddEdge(b, g.Root(), sdfmath.NewPose(1, 0, 0, 0, 0, 0)))
		require.NoError(t, g.AddEdge(c, a, sdfmath.NewPose(0, 1, 0, 0, 0, 0)))

		got, errs := g.ResolvePose("a", "b")
		require.Empty(t, errs)
		assertPos(t, got, -1, 0, 0)
		_, _, yaw := got.Rot.Euler()
		assert.InDelta(t, math.Pi/2, yaw, 1e-9)

		got, errs = g.ResolvePose("c", "b")
		require.Empty(t, errs)
		assertPos(t, got, -2, 0, 0)
	})

	t.Run("unknown frames fail with frame-invalid", func(t *testing.T) {
		g := frames.NewGraph("world")
		_, errs := g.ResolvePose("ghost", "world")
		require.Len(t, errs, 1)
		assert.Equal(t, errors.CodeFrameInvalid, errs[0].Code)

		_, errs = g.ResolvePose("world", "ghost")
		require.Len(t, errs, 1)
		assert.Equal(t, errors.CodeFrameInvalid, errs[0].Code)
	})

	t.Run("resolve relative to root", func(t *testing.T) {
		g := frames.NewGraph("__model__")
		a := mustAdd(t, g, "a")
		b := mustAdd(t, g, "b")
		require.NoError(t, g.AddEdge(a, g.Root(), sdfmath.NewPose(1, 2, 3, 0, 0, 0)))
		require.NoError(t, g.AddEdge(b, a, sdfmath.NewPose(1, 0, 0, 0, 0, 0)))
		got, errs := g.ResolvePoseRelativeToRoot(b)
		require.Empty(t, errs)
		assertPos(t, got, 2, 2, 3)
	})

	t.Run("unvalidated cycle still fails during the walk", func(t *testing.T) {
		g := frames.NewGraph("__model__")
		x := mustAdd(t, g, "x")
		y := mustAdd(t, g, "y")
		require.NoError(t, g.AddEdge(x, y, sdfmath.PoseIdentity()))
		require.NoError(t, g.AddEdge(y, x, sdfmath.PoseIdentity()))
		_, errs := g.ResolvePose("x", "__model__")
		require.NotEmpty(t, errs)
		assert.Equal(t, errors.CodePoseRelativeToCycle, errs[0].Code)
	})
}
