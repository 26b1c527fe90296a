// Package sdfmath provides the small geometry types carried by document
// parameters: vectors, quaternions, poses, angles, colors and timestamps.
//
// Every type has a canonical text form of whitespace-separated components
// and a Parse counterpart; these are the encodings used for attribute and
// element values. Quaternion arithmetic is backed by gonum's quat package.
package sdfmath

import (
	"fmt"
	"strconv"
	"strings"
)

// Vector2i is a 2D integer vector.
type Vector2i struct {
	X, Y int
}

func (v Vector2i) String() string {
	return strconv.Itoa(v.X) + " " + strconv.Itoa(v.Y)
}

// ParseVector2i parses two whitespace-separated integers.
func ParseVector2i(s string) (Vector2i, error) {
	f, err := splitFields(s, 2)
	if err != nil {
		return Vector2i{}, err
	}
	x, err := strconv.Atoi(f[0])
	if err != nil {
		return Vector2i{}, fmt.Errorf("vector2i: %w", err)
	}
	y, err := strconv.Atoi(f[1])
	if err != nil {
		return Vector2i{}, fmt.Errorf("vector2i: %w", err)
	}
	return Vector2i{X: x, Y: y}, nil
}

// Vector2d is a 2D float vector.
type Vector2d struct {
	X, Y float64
}

func (v Vector2d) String() string {
	return formatFloat(v.X) + " " + formatFloat(v.Y)
}

// ParseVector2d parses two whitespace-separated floats.
func ParseVector2d(s string) (Vector2d, error) {
	c, err := parseFloats(s, 2, "vector2d")
	if err != nil {
		return Vector2d{}, err
	}
	return Vector2d{X: c[0], Y: c[1]}, nil
}

// Vector3 is a 3D float vector.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Neg returns -v.
func (v Vector3) Neg() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

func (v Vector3) String() string {
	return formatFloat(v.X) + " " + formatFloat(v.Y) + " " + formatFloat(v.Z)
}

// ParseVector3 parses three whitespace-separated floats.
func ParseVector3(s string) (Vector3, error) {
	c, err := parseFloats(s, 3, "vector3")
	if err != nil {
		return Vector3{}, err
	}
	return Vector3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// formatFloat renders the shortest decimal text that round-trips the value.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func splitFields(s string, want int) ([]string, error) {
	f := strings.Fields(s)
	if len(f) != want {
		return nil, fmt.Errorf("expected %d components, got %d in %q", want, len(f), s)
	}
	return f, nil
}

func parseFloats(s string, want int, kind string) ([]float64, error) {
	f, err := splitFields(s, want)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	out := make([]float64, want)
	for i, tok := range f {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: component %d: %w", kind, i, err)
		}
		out[i] = v
	}
	return out, nil
}
