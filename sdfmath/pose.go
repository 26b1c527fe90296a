package sdfmath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pose is a rigid-body transform: a translation followed by a rotation.
// A Pose X_PC placed on a frame-graph edge is the pose of the child frame
// C expressed in the parent frame P.
type Pose struct {
	Pos Vector3
	Rot Quaternion
}

// PoseIdentity returns the zero translation, no-rotation pose.
func PoseIdentity() Pose {
	return Pose{Rot: QuaternionIdentity()}
}

// NewPose builds a pose from a translation and Euler angles in radians.
func NewPose(x, y, z, roll, pitch, yaw float64) Pose {
	return Pose{
		Pos: Vector3{X: x, Y: y, Z: z},
		Rot: QuaternionFromEuler(roll, pitch, yaw),
	}
}

// Mul composes transforms: X_AB.Mul(X_BC) == X_AC.
func (p Pose) Mul(o Pose) Pose {
	return Pose{
		Pos: p.Pos.Add(p.Rot.Rotate(o.Pos)),
		Rot: p.Rot.Mul(o.Rot),
	}
}

// Inverse returns the transform in the opposite direction, so that
// p.Mul(p.Inverse()) is identity up to rounding.
func (p Pose) Inverse() Pose {
	inv := p.Rot.Inverse()
	return Pose{
		Pos: inv.Rotate(p.Pos.Neg()),
		Rot: inv,
	}
}

// String renders the six-component form: x y z roll pitch yaw, radians.
func (p Pose) String() string {
	roll, pitch, yaw := p.Rot.Euler()
	return p.Pos.String() + " " +
		formatFloat(roll) + " " + formatFloat(pitch) + " " + formatFloat(yaw)
}

// ParsePose parses the six-component Euler form with angles in radians.
func ParsePose(s string) (Pose, error) {
	return ParsePoseEuler(s, false)
}

// ParsePoseEuler parses "x y z roll pitch yaw". When degrees is true the
// three angles are converted from degrees.
func ParsePoseEuler(s string, degrees bool) (Pose, error) {
	c, err := parseFloats(s, 6, "pose")
	if err != nil {
		return Pose{}, err
	}
	if degrees {
		for i := 3; i < 6; i++ {
			c[i] *= math.Pi / 180
		}
	}
	return NewPose(c[0], c[1], c[2], c[3], c[4], c[5]), nil
}

// ParsePoseQuatXYZW parses the seven-component quaternion form
// "x y z qx qy qz qw".
func ParsePoseQuatXYZW(s string) (Pose, error) {
	c, err := parseFloats(s, 7, "pose")
	if err != nil {
		return Pose{}, err
	}
	return Pose{
		Pos: Vector3{X: c[0], Y: c[1], Z: c[2]},
		Rot: Quaternion{X: c[3], Y: c[4], Z: c[5], W: c[6]}.Normalized(),
	}, nil
}

// Time is a timestamp or duration split into whole seconds and
// nanoseconds, text form "sec nsec".
type Time struct {
	Sec  int64
	Nsec int64
}

func (t Time) String() string {
	return strconv.FormatInt(t.Sec, 10) + " " + strconv.FormatInt(t.Nsec, 10)
}

// ParseTime parses two whitespace-separated integers, seconds then
// nanoseconds.
func ParseTime(s string) (Time, error) {
	f, err := splitFields(s, 2)
	if err != nil {
		return Time{}, fmt.Errorf("time: %w", err)
	}
	sec, err := strconv.ParseInt(f[0], 10, 64)
	if err != nil {
		return Time{}, fmt.Errorf("time: %w", err)
	}
	nsec, err := strconv.ParseInt(f[1], 10, 64)
	if err != nil {
		return Time{}, fmt.Errorf("time: %w", err)
	}
	return Time{Sec: sec, Nsec: nsec}, nil
}

// Angle is a plane angle in radians carried as a distinct type so angle
// parameters keep their unit on round trips.
type Angle float64

// Radian returns the angle in radians.
func (a Angle) Radian() float64 { return float64(a) }

// Degree returns the angle in degrees.
func (a Angle) Degree() float64 { return float64(a) * 180 / math.Pi }

func (a Angle) String() string {
	return formatFloat(float64(a))
}

// ParseAngle parses a single float, radians.
func ParseAngle(s string) (Angle, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("angle: %w", err)
	}
	return Angle(v), nil
}

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

func (c Color) String() string {
	return formatFloat(c.R) + " " + formatFloat(c.G) + " " +
		formatFloat(c.B) + " " + formatFloat(c.A)
}

// ParseColor parses "r g b" or "r g b a"; a missing alpha defaults to 1.
func ParseColor(s string) (Color, error) {
	f := strings.Fields(s)
	if len(f) != 3 && len(f) != 4 {
		return Color{}, fmt.Errorf("color: expected 3 or 4 components, got %d in %q", len(f), s)
	}
	out := [4]float64{0, 0, 0, 1}
	for i, tok := range f {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Color{}, fmt.Errorf("color: component %d: %w", i, err)
		}
		out[i] = v
	}
	return Color{R: out[0], G: out[1], B: out[2], A: out[3]}, nil
}
