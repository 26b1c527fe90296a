package sdfmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quaternion is a rotation stored as w + xi + yj + zk. Operations assume
// unit quaternions; constructors and parsers normalize.
type Quaternion struct {
	W, X, Y, Z float64
}

// QuaternionIdentity returns the no-rotation quaternion.
func QuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

func (q Quaternion) num() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

func quaternionFromNum(n quat.Number) Quaternion {
	return Quaternion{W: n.Real, X: n.Imag, Y: n.Jmag, Z: n.Kmag}
}

// Mul returns the quaternion product q*o. Applied to a vector, o rotates
// first.
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return quaternionFromNum(quat.Mul(q.num(), o.num()))
}

// Inverse returns the reverse rotation.
func (q Quaternion) Inverse() Quaternion {
	return quaternionFromNum(quat.Inv(q.num()))
}

// Normalized returns the unit quaternion with q's direction, or identity
// when q is zero.
func (q Quaternion) Normalized() Quaternion {
	a := quat.Abs(q.num())
	if a == 0 {
		return QuaternionIdentity()
	}
	return quaternionFromNum(quat.Scale(1/a, q.num()))
}

// Rotate applies the rotation to a vector via q v q*.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q.num(), p), quat.Conj(q.num()))
	return Vector3{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// QuaternionFromEuler builds the rotation from roll, pitch, yaw in radians
// (rotation about fixed X, then Y, then Z).
func QuaternionFromEuler(roll, pitch, yaw float64) Quaternion {
	phi, theta, psi := roll/2, pitch/2, yaw/2
	sphi, cphi := math.Sincos(phi)
	stheta, ctheta := math.Sincos(theta)
	spsi, cpsi := math.Sincos(psi)
	return Quaternion{
		W: cphi*ctheta*cpsi + sphi*stheta*spsi,
		X: sphi*ctheta*cpsi - cphi*stheta*spsi,
		Y: cphi*stheta*cpsi + sphi*ctheta*spsi,
		Z: cphi*ctheta*spsi - sphi*stheta*cpsi,
	}.Normalized()
}

// Euler returns roll, pitch, yaw in radians. Pitch is clamped to
// [-pi/2, pi/2]; at the gimbal singularity roll and yaw are not unique and
// the returned pair is one valid decomposition.
func (q Quaternion) Euler() (roll, pitch, yaw float64) {
	n := q.Normalized()
	sinp := 2 * (n.W*n.Y - n.X*n.Z)
	if sinp > 1 {
		sinp = 1
	} else if sinp < -1 {
		sinp = -1
	}
	roll = math.Atan2(2*(n.W*n.X+n.Y*n.Z), 1-2*(n.X*n.X+n.Y*n.Y))
	pitch = math.Asin(sinp)
	yaw = math.Atan2(2*(n.W*n.Z+n.X*n.Y), 1-2*(n.Y*n.Y+n.Z*n.Z))
	return roll, pitch, yaw
}

// String renders the four components in x y z w order, the order used by
// the quaternion pose form.
func (q Quaternion) String() string {
	return formatFloat(q.X) + " " + formatFloat(q.Y) + " " +
		formatFloat(q.Z) + " " + formatFloat(q.W)
}

// ParseQuaternion parses four whitespace-separated floats in x y z w order
// and normalizes the result.
func ParseQuaternion(s string) (Quaternion, error) {
	c, err := parseFloats(s, 4, "quaternion")
	if err != nil {
		return Quaternion{}, err
	}
	return Quaternion{X: c[0], Y: c[1], Z: c[2], W: c[3]}.Normalized(), nil
}
