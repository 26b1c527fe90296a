package sdf

import (
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/sdfmath"
)

// Animation is a named skeletal animation an actor's script can play.
type Animation struct {
	name         string
	filename     string
	scale        float64
	interpolateX bool

	elem *Element
}

// Load populates the animation from an <animation> element.
func (a *Animation) Load(e *Element) errors.Errors {
	a.elem = e
	a.name = "__default__"
	a.filename = "__default__"
	a.scale = 1

	var errs errors.Errors
	name, ok := loadName(e)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"an <animation> requires a name attribute")))
	} else {
		a.name = name
	}

	filename, ok := GetValue(e, "filename", a.filename)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeElementMissing,
			"an <animation> requires a <filename>")))
	}
	a.filename = filename

	a.scale, _ = GetValue(e, "scale", a.scale)
	a.interpolateX, _ = GetValue(e, "interpolate_x", a.interpolateX)
	return errs
}

// Name returns the animation name.
func (a *Animation) Name() string { return a.name }

// SetName replaces the animation name.
func (a *Animation) SetName(name string) { a.name = name }

// Filename returns the animation file path.
func (a *Animation) Filename() string { return a.filename }

// SetFilename replaces the animation file path.
func (a *Animation) SetFilename(filename string) { a.filename = filename }

// Scale returns the uniform skeleton scale.
func (a *Animation) Scale() float64 { return a.scale }

// SetScale replaces the skeleton scale.
func (a *Animation) SetScale(scale float64) { a.scale = scale }

// InterpolateX reports whether X translation is interpolated from the
// animation.
func (a *Animation) InterpolateX() bool { return a.interpolateX }

// SetInterpolateX toggles X interpolation.
func (a *Animation) SetInterpolateX(interpolate bool) { a.interpolateX = interpolate }

// Element returns the element this animation was loaded from.
func (a *Animation) Element() *Element { return a.elem }

// Waypoint is one timed pose along a trajectory.
type Waypoint struct {
	time float64
	pose sdfmath.Pose

	elem *Element
}

// Load populates the waypoint from a <waypoint> element.
func (w *Waypoint) Load(e *Element) errors.Errors {
	w.elem = e

	var errs errors.Errors
	t, ok := GetValue(e, "time", 0.0)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeElementMissing,
			"a <waypoint> requires a <time>")))
	}
	w.time = t

	pose, ok := GetValue(e, "pose", sdfmath.PoseIdentity())
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeElementMissing,
			"a <waypoint> requires a <pose>")))
	}
	w.pose = pose
	return errs
}

// Time returns seconds from script start at which the pose is reached.
func (w *Waypoint) Time() float64 { return w.time }

// SetTime replaces the waypoint time.
func (w *Waypoint) SetTime(t float64) { w.time = t }

// Pose returns the pose to be reached.
func (w *Waypoint) Pose() sdfmath.Pose { return w.pose }

// SetPose replaces the waypoint pose.
func (w *Waypoint) SetPose(pose sdfmath.Pose) { w.pose = pose }

// Element returns the element this waypoint was loaded from.
func (w *Waypoint) Element() *Element { return w.elem }

// Trajectory is a sequence of waypoints tied to one animation type.
type Trajectory struct {
	id        int
	trajType  string
	tension   float64
	waypoints []Waypoint

	elem *Element
}

// Load populates the trajectory from a <trajectory> element.
func (t *Trajectory) Load(e *Element) errors.Errors {
	t.elem = e
	t.trajType = "__default__"

	var errs errors.Errors
	id, ok := GetValue(e, "id", 0)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeElementMissing,
			"a <trajectory> requires an <id>")))
	}
	t.id = id

	trajType, ok := GetValue(e, "type", t.trajType)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeElementMissing,
			"a <trajectory> requires a <type>")))
	}
	t.trajType = trajType

	t.tension, _ = GetValue(e, "tension", 0.0)

	waypoints, waypointErrs := loadRepeated[Waypoint](e, "waypoint")
	t.waypoints = waypoints
	errs = append(errs, waypointErrs...)
	return errs
}

// ID returns the trajectory ordering key.
func (t *Trajectory) ID() int { return t.id }

// SetID replaces the ordering key.
func (t *Trajectory) SetID(id int) { t.id = id }

// Type returns the name of the animation the trajectory plays.
func (t *Trajectory) Type() string { return t.trajType }

// SetType replaces the animation name.
func (t *Trajectory) SetType(trajType string) { t.trajType = trajType }

// Tension returns the spline tension through the waypoints.
func (t *Trajectory) Tension() float64 { return t.tension }

// SetTension replaces the spline tension.
func (t *Trajectory) SetTension(tension float64) { t.tension = tension }

// WaypointCount returns the number of waypoints.
func (t *Trajectory) WaypointCount() int { return len(t.waypoints) }

// WaypointByIndex returns a waypoint by index, nil when out of range.
func (t *Trajectory) WaypointByIndex(index int) *Waypoint {
	if index < 0 || index >= len(t.waypoints) {
		return nil
	}
	return &t.waypoints[index]
}

// AddWaypoint appends a waypoint.
func (t *Trajectory) AddWaypoint(w Waypoint) { t.waypoints = append(t.waypoints, w) }

// Element returns the element this trajectory was loaded from.
func (t *Trajectory) Element() *Element { return t.elem }

// Actor is an animated entity following scripted trajectories.
type Actor struct {
	name           string
	rawPose        sdfmath.Pose
	poseRelativeTo string
	skinFilename   string
	skinScale      float64
	animations     []Animation

	scriptLoop       bool
	scriptDelayStart float64
	scriptAutoStart  bool
	trajectories     []Trajectory

	links  []Link
	joints []Joint

	elem *Element
}

// Load populates the actor from an <actor> element.
func (a *Actor) Load(e *Element) errors.Errors {
	a.elem = e
	a.name = "__default__"
	a.skinFilename = "__default__"
	a.skinScale = 1
	a.scriptLoop = true
	a.scriptAutoStart = true

	if e.Name() != "actor" {
		return errors.Errors{e.errorLocation(errors.New(errors.CodeElementIncorrectType,
			"attempting to load an actor, but the element is not an <actor>"))}
	}

	var errs errors.Errors
	name, ok := loadName(e)
	if !ok {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeAttributeMissing,
			"an actor name is required, but the name is not set")))
	} else {
		a.name = name
	}

	a.rawPose, a.poseRelativeTo, _ = loadPose(e)

	if skin := e.FindElement("skin"); skin != nil {
		filename, ok := GetValue(skin, "filename", a.skinFilename)
		if !ok {
			errs = append(errs, skin.errorLocation(errors.New(errors.CodeElementMissing,
				"a <skin> requires a <filename>")))
		}
		a.skinFilename = filename
		a.skinScale, _ = GetValue(skin, "scale", a.skinScale)
	}

	animations, animationErrs := loadUniqueRepeated[Animation](e, "animation")
	a.animations = animations
	errs = append(errs, animationErrs...)

	script := e.FindElement("script")
	if script == nil {
		errs = append(errs, e.errorLocation(errors.New(errors.CodeElementMissing,
			"an <actor> requires a <script>")))
	} else {
		a.scriptLoop, _ = GetValue(script, "loop", a.scriptLoop)
		a.scriptDelayStart, _ = GetValue(script, "delay_start", a.scriptDelayStart)
		a.scriptAutoStart, _ = GetValue(script, "auto_start", a.scriptAutoStart)

		trajectories, trajectoryErrs := loadRepeated[Trajectory](script, "trajectory")
		a.trajectories = trajectories
		errs = append(errs, trajectoryErrs...)
	}

	links, linkErrs := loadRepeated[Link](e, "link")
	a.links = links
	errs = append(errs, linkErrs...)

	joints, jointErrs := loadRepeated[Joint](e, "joint")
	a.joints = joints
	errs = append(errs, jointErrs...)

	return errs
}

// Name returns the actor name.
func (a *Actor) Name() string { return a.name }

// SetName replaces the actor name.
func (a *Actor) SetName(name string) { a.name = name }

// RawPose returns the pose as written, relative to PoseRelativeTo.
func (a *Actor) RawPose() sdfmath.Pose { return a.rawPose }

// SetRawPose replaces the raw pose.
func (a *Actor) SetRawPose(pose sdfmath.Pose) { a.rawPose = pose }

// PoseRelativeTo returns the frame the raw pose is expressed in, empty
// meaning the world frame.
func (a *Actor) PoseRelativeTo() string { return a.poseRelativeTo }

// SetPoseRelativeTo replaces the relative-to frame name.
func (a *Actor) SetPoseRelativeTo(frame string) { a.poseRelativeTo = frame }

// SkinFilename returns the path to the skin mesh file.
func (a *Actor) SkinFilename() string { return a.skinFilename }

// SetSkinFilename replaces the skin mesh path.
func (a *Actor) SetSkinFilename(filename string) { a.skinFilename = filename }

// SkinScale returns the uniform skin scale.
func (a *Actor) SkinScale() float64 { return a.skinScale }

// SetSkinScale replaces the skin scale.
func (a *Actor) SetSkinScale(scale float64) { a.skinScale = scale }

// AnimationCount returns the number of animations.
func (a *Actor) AnimationCount() int { return len(a.animations) }

// AnimationByIndex returns an animation by index, nil when out of range.
func (a *Actor) AnimationByIndex(index int) *Animation {
	if index < 0 || index >= len(a.animations) {
		return nil
	}
	return &a.animations[index]
}

// AnimationNameExists reports whether an animation with the name exists.
func (a *Actor) AnimationNameExists(name string) bool {
	for i := range a.animations {
		if a.animations[i].Name() == name {
			return true
		}
	}
	return false
}

// AddAnimation appends an animation.
func (a *Actor) AddAnimation(anim Animation) { a.animations = append(a.animations, anim) }

// ScriptLoop reports whether the script restarts when it ends.
func (a *Actor) ScriptLoop() bool { return a.scriptLoop }

// SetScriptLoop toggles script looping.
func (a *Actor) SetScriptLoop(loop bool) { a.scriptLoop = loop }

// ScriptDelayStart returns seconds to wait before starting the script.
func (a *Actor) ScriptDelayStart() float64 { return a.scriptDelayStart }

// SetScriptDelayStart replaces the start delay.
func (a *Actor) SetScriptDelayStart(delay float64) { a.scriptDelayStart = delay }

// ScriptAutoStart reports whether the script starts with the world.
func (a *Actor) ScriptAutoStart() bool { return a.scriptAutoStart }

// SetScriptAutoStart toggles automatic start.
func (a *Actor) SetScriptAutoStart(autoStart bool) { a.scriptAutoStart = autoStart }

// TrajectoryCount returns the number of trajectories.
func (a *Actor) TrajectoryCount() int { return len(a.trajectories) }

// TrajectoryByIndex returns a trajectory by index, nil when out of range.
func (a *Actor) TrajectoryByIndex(index int) *Trajectory {
	if index < 0 || index >= len(a.trajectories) {
		return nil
	}
	return &a.trajectories[index]
}

// TrajectoryIDExists reports whether a trajectory with the id exists.
func (a *Actor) TrajectoryIDExists(id int) bool {
	for i := range a.trajectories {
		if a.trajectories[i].ID() == id {
			return true
		}
	}
	return false
}

// AddTrajectory appends a trajectory.
func (a *Actor) AddTrajectory(t Trajectory) { a.trajectories = append(a.trajectories, t) }

// LinkCount returns the number of actor links.
func (a *Actor) LinkCount() int { return len(a.links) }

// LinkByIndex returns an actor link by index, nil when out of range.
func (a *Actor) LinkByIndex(index int) *Link {
	if index < 0 || index >= len(a.links) {
		return nil
	}
	return &a.links[index]
}

// JointCount returns the number of actor joints.
func (a *Actor) JointCount() int { return len(a.joints) }

// JointByIndex returns an actor joint by index, nil when out of range.
func (a *Actor) JointByIndex(index int) *Joint {
	if index < 0 || index >= len(a.joints) {
		return nil
	}
	return &a.joints[index]
}

// Element returns the element this actor was loaded from.
func (a *Actor) Element() *Element { return a.elem }
