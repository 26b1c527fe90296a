package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/frames"
	"github.com/robosim/sdf/sdfmath"
)

// World is a complete simulation scene: gravity, top-level models,
// explicit frames, and actors. A loaded world owns the world-scope
// frame graph.
type World struct {
	name    string
	gravity sdfmath.Vector3
	models  []Model
	frames  []Frame
	actors  []Actor
	plugins []Plugin

	graph *frames.Graph
	elem  *Element
}

// Load populates the world from a <world> element. The frame graph is
// built afterwards by the enclosing Root.
func (w *World) Load(e *Element) errors.Errors {
	w.elem = e
	w.gravity = sdfmath.Vector3{X: 0, Y: 0, Z: -9.8}

	if e.Name() != "world" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load a world, but the element is not a <world>"))}
	}

	var errs errors.Errors
	name, ok := loadName(e)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"a world name is required, but the name is not set")))
	}
	w.name = name

	w.gravity, _ = GetValue(e, "gravity", w.gravity)

	models, modelErrs := loadUniqueRepeated[Model](e, "model")
	w.models = models
	errs = append(errs, modelErrs...)

	frameObjs, frameErrs := loadUniqueRepeated[Frame](e, "frame")
	w.frames = frameObjs
	errs = append(errs, frameErrs...)

	actors, actorErrs := loadUniqueRepeated[Actor](e, "actor")
	w.actors = actors
	errs = append(errs, actorErrs...)

	plugins, pluginErrs := loadRepeated[Plugin](e, "plugin")
	w.plugins = plugins
	errs = append(errs, pluginErrs...)

	return errs
}

// Name returns the world name.
func (w *World) Name() string { return w.name }

// SetName replaces the world name.
func (w *World) SetName(name string) { w.name = name }

// Gravity returns the gravity vector in m/s^2, expressed in the world
// frame.
func (w *World) Gravity() sdfmath.Vector3 { return w.gravity }

// SetGravity replaces the gravity vector.
func (w *World) SetGravity(gravity sdfmath.Vector3) { w.gravity = gravity }

// ModelCount returns the number of top-level models.
func (w *World) ModelCount() int { return len(w.models) }

// ModelByIndex returns a model by index, nil when out of range.
func (w *World) ModelByIndex(index int) *Model {
	if index < 0 || index >= len(w.models) {
		return nil
	}
	return &w.models[index]
}

// ModelByName returns the named model, or nil.
func (w *World) ModelByName(name string) *Model {
	for i := range w.models {
		if w.models[i].Name() == name {
			return &w.models[i]
		}
	}
	return nil
}

// ModelNameExists reports whether a model with the name exists.
func (w *World) ModelNameExists(name string) bool { return w.ModelByName(name) != nil }

// FrameCount returns the number of explicit frames.
func (w *World) FrameCount() int { return len(w.frames) }

// FrameByIndex returns a frame by index, nil when out of range.
func (w *World) FrameByIndex(index int) *Frame {
	if index < 0 || index >= len(w.frames) {
		return nil
	}
	return &w.frames[index]
}

// FrameByName returns the named frame, or nil.
func (w *World) FrameByName(name string) *Frame {
	for i := range w.frames {
		if w.frames[i].Name() == name {
			return &w.frames[i]
		}
	}
	return nil
}

// FrameNameExists reports whether a frame with the name exists.
func (w *World) FrameNameExists(name string) bool { return w.FrameByName(name) != nil }

// ActorCount returns the number of actors.
func (w *World) ActorCount() int { return len(w.actors) }

// ActorByIndex returns an actor by index, nil when out of range.
func (w *World) ActorByIndex(index int) *Actor {
	if index < 0 || index >= len(w.actors) {
		return nil
	}
	return &w.actors[index]
}

// ActorByName returns the named actor, or nil.
func (w *World) ActorByName(name string) *Actor {
	for i := range w.actors {
		if w.actors[i].Name() == name {
			return &w.actors[i]
		}
	}
	return nil
}

// ActorNameExists reports whether an actor with the name exists.
func (w *World) ActorNameExists(name string) bool { return w.ActorByName(name) != nil }

// PluginCount returns the number of plugins.
func (w *World) PluginCount() int { return len(w.plugins) }

// PluginByIndex returns a plugin by index, nil when out of range.
func (w *World) PluginByIndex(index int) *Plugin {
	if index < 0 || index >= len(w.plugins) {
		return nil
	}
	return &w.plugins[index]
}

// PoseGraph returns the world-scope frame graph, nil until the enclosing
// Root built it.
func (w *World) PoseGraph() *frames.Graph { return w.graph }

// Element returns the element this world was loaded from.
func (w *World) Element() *Element { return w.elem }
