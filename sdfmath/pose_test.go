package sdfmath_test

import (
	"math"
	"testing"

	"github.com/robosim/sdf/sdfmath"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func nearVec(a, b sdfmath.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestPoseMul_TranslationChain(t *testing.T) {
	xBA := sdfmath.NewPose(1, 0, 0, 0, 0, 0)
	xCB := sdfmath.NewPose(0, 1, 0, 0, 0, 0)
	got := xCB.Mul(xBA)
	if !nearVec(got.Pos, sdfmath.Vector3{X: 1, Y: 1, Z: 0}) {
		t.Fatalf("composed translation = %v, want (1 1 0)", got.Pos)
	}
}

func TestPoseMul_RotationThenTranslation(t *testing.T) {
	// A yaw of +90 degrees turns the child's +X into the parent's +Y.
	xPA := sdfmath.NewPose(0, 0, 0, 0, 0, math.Pi/2)
	xAB := sdfmath.NewPose(1, 0, 0, 0, 0, 0)
	got := xPA.Mul(xAB)
	if !nearVec(got.Pos, sdfmath.Vector3{X: 0, Y: 1, Z: 0}) {
		t.Fatalf("rotated translation = %v, want (0 1 0)", got.Pos)
	}
}

func TestPoseInverse_RoundTrip(t *testing.T) {
	p := sdfmath.NewPose(1, 2, 3, 0.1, -0.4, 2.2)
	id := p.Mul(p.Inverse())
	if !nearVec(id.Pos, sdfmath.Vector3{}) {
		t.Fatalf("p * p^-1 position = %v, want origin", id.Pos)
	}
	roll, pitch, yaw := id.Rot.Euler()
	if !near(roll, 0) || !near(pitch, 0) || !near(yaw, 0) {
		t.Fatalf("p * p^-1 rotation = (%v %v %v), want zero", roll, pitch, yaw)
	}
}

func TestParsePose_EulerAndDegrees(t *testing.T) {
	p, err := sdfmath.ParsePose("1 2 3 0 0 0")
	if err != nil {
		t.Fatalf("ParsePose: %v", err)
	}
	if !nearVec(p.Pos, sdfmath.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("position = %v", p.Pos)
	}

	deg, err := sdfmath.ParsePoseEuler("0 0 0 0 0 90", true)
	if err != nil {
		t.Fatalf("ParsePoseEuler: %v", err)
	}
	_, _, yaw := deg.Rot.Euler()
	if !near(yaw, math.Pi/2) {
		t.Fatalf("yaw = %v, want pi/2", yaw)
	}

	if _, err := sdfmath.ParsePose("1 2 3"); err == nil {
		t.Fatalf("expected error for 3 components")
	}
	if _, err := sdfmath.ParsePose("1 2 3 a b c"); err == nil {
		t.Fatalf("expected error for non-numeric angles")
	}
}

func TestParsePoseQuatXYZW(t *testing.T) {
	// 90 degree yaw: qz = sin(pi/4), qw = cos(pi/4).
	s := "1 0 0 0 0 0.7071067811865476 0.7071067811865476"
	p, err := sdfmath.ParsePoseQuatXYZW(s)
	if err != nil {
		t.Fatalf("ParsePoseQuatXYZW: %v", err)
	}
	_, _, yaw := p.Rot.Euler()
	if !near(yaw, math.Pi/2) {
		t.Fatalf("yaw = %v, want pi/2", yaw)
	}
	if !nearVec(p.Pos, sdfmath.Vector3{X: 1, Y: 0, Z: 0}) {
		t.Fatalf("position = %v", p.Pos)
	}
}

func TestPoseString_RoundTrip(t *testing.T) {
	p := sdfmath.NewPose(1, -2, 3.5, 0.25, -0.5, 1.25)
	back, err := sdfmath.ParsePose(p.String())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !nearVec(back.Pos, p.Pos) {
		t.Fatalf("position drifted: %v vs %v", back.Pos, p.Pos)
	}
	r1, p1, y1 := p.Rot.Euler()
	r2, p2, y2 := back.Rot.Euler()
	if !near(r1, r2) || !near(p1, p2) || !near(y1, y2) {
		t.Fatalf("rotation drifted: (%v %v %v) vs (%v %v %v)", r2, p2, y2, r1, p1, y1)
	}
}

func TestQuaternionRotate(t *testing.T) {
	q := sdfmath.QuaternionFromEuler(0, 0, math.Pi/2)
	got := q.Rotate(sdfmath.Vector3{X: 1})
	if !nearVec(got, sdfmath.Vector3{Y: 1}) {
		t.Fatalf("rotated = %v, want (0 1 0)", got)
	}
}

func TestQuaternionEuler_RoundTrip(t *testing.T) {
	cases := [][3]float64{
		{0, 0, 0},
		{0.3, 0, 0},
		{0, -0.7, 0},
		{0, 0, 2.1},
		{0.1, 0.2, 0.3},
		{-1.2, 0.4, -2.9},
	}
	for _, c := range cases {
		q := sdfmath.QuaternionFromEuler(c[0], c[1], c[2])
		roll, pitch, yaw := q.Euler()
		if !near(roll, c[0]) || !near(pitch, c[1]) || !near(yaw, c[2]) {
			t.Fatalf("euler round trip %v -> (%v %v %v)", c, roll, pitch, yaw)
		}
	}
}

func TestTimeAngleColorParse(t *testing.T) {
	tm, err := sdfmath.ParseTime("12 500000000")
	if err != nil || tm.Sec != 12 || tm.Nsec != 500000000 {
		t.Fatalf("ParseTime = %v, %v", tm, err)
	}
	if tm.String() != "12 500000000" {
		t.Fatalf("Time.String = %q", tm.String())
	}

	a, err := sdfmath.ParseAngle("1.5707963267948966")
	if err != nil || !near(a.Degree(), 90) {
		t.Fatalf("ParseAngle = %v, %v", a, err)
	}

	c, err := sdfmath.ParseColor("0.1 0.2 0.3")
	if err != nil || !near(c.A, 1) {
		t.Fatalf("ParseColor alpha default = %v, %v", c, err)
	}
	if _, err := sdfmath.ParseColor("0.1 0.2"); err == nil {
		t.Fatalf("expected error for 2 components")
	}
}

func TestParseVectors(t *testing.T) {
	v2i, err := sdfmath.ParseVector2i("4 -5")
	if err != nil || v2i != (sdfmath.Vector2i{X: 4, Y: -5}) {
		t.Fatalf("ParseVector2i = %v, %v", v2i, err)
	}
	if _, err := sdfmath.ParseVector2i("4.5 1"); err == nil {
		t.Fatalf("expected error for float in vector2i")
	}
	v3, err := sdfmath.ParseVector3(" 1   2\t3 ")
	if err != nil || !nearVec(v3, sdfmath.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("ParseVector3 = %v, %v", v3, err)
	}
	if v3.String() != "1 2 3" {
		t.Fatalf("Vector3.String = %q", v3.String())
	}
}
