package sdf_test

import (
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sdf "github.com/robosim/sdf"
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/sdfmath"
)

func posesNear(a, b sdfmath.Pose) bool {
	near := func(x, y float64) bool { return math.Abs(x-y) <= 1e-9 }
	ar, ap, ay := a.Rot.Euler()
	br, bp, by := b.Rot.Euler()
	return near(a.Pos.X, b.Pos.X) && near(a.Pos.Y, b.Pos.Y) && near(a.Pos.Z, b.Pos.Z) &&
		near(ar, br) && near(ap, bp) && near(ay, by)
}

const miniDoc = `<sdf version="1.9">
  <model name="box_bot">
    <link name="chassis">
      <pose>1 2 3 0 0 0</pose>
      <collision name="hull">
        <geometry>
          <box>
            <size>2 1 0.5</size>
          </box>
        </geometry>
      </collision>
    </link>
  </model>
</sdf>`

// quietConfig is the default config with warnings routed away from the
// test output.
func quietConfig() sdf.ParserConfig {
	config := sdf.DefaultParserConfig()
	config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return config
}

func TestParse_ModelDocument(t *testing.T) {
	root, errs := sdf.ParseString(miniDoc, sdf.DefaultParserConfig())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if root.Name() != "sdf" {
		t.Fatalf("root is <%s>", root.Name())
	}
	version, ok := sdf.GetValue(root, "version", "")
	if !ok || version != "1.9" {
		t.Fatalf("version = %q, %v", version, ok)
	}

	model := root.FindElement("model")
	if model == nil {
		t.Fatalf("model not parsed")
	}
	if name, _ := sdf.GetValue(model, "name", ""); name != "box_bot" {
		t.Fatalf("model name = %q", name)
	}
	link := model.FindElement("link")
	if link == nil {
		t.Fatalf("link not parsed")
	}
	pose, ok := sdf.GetValue(link, "pose", sdfmath.PoseIdentity())
	if !ok {
		t.Fatalf("pose not readable")
	}
	if pose.Pos != (sdfmath.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("pose.Pos = %v", pose.Pos)
	}

	box := link.FindElement("collision").FindElement("geometry").FindElement("box")
	size, ok := sdf.GetValue(box, "size", sdfmath.Vector3{})
	if !ok || size != (sdfmath.Vector3{X: 2, Y: 1, Z: 0.5}) {
		t.Fatalf("box size = %v, %v", size, ok)
	}

	if got := link.OriginalVersion(); got != "1.9" {
		t.Fatalf("OriginalVersion = %q, want propagated 1.9", got)
	}
}

func TestParse_LineNumbers(t *testing.T) {
	root, errs := sdf.ParseString(miniDoc, sdf.DefaultParserConfig())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if root.LineNumber() != 1 {
		t.Fatalf("sdf line = %d", root.LineNumber())
	}
	model := root.FindElement("model")
	if model.LineNumber() != 2 {
		t.Fatalf("model line = %d", model.LineNumber())
	}
	if link := model.FindElement("link"); link.LineNumber() != 3 {
		t.Fatalf("link line = %d", link.LineNumber())
	}
}

func TestParse_WrongRootElement(t *testing.T) {
	root, errs := sdf.ParseString(`<robot name="r2"/>`, sdf.DefaultParserConfig())
	if root != nil {
		t.Fatalf("expected nil tree for a non-sdf root")
	}
	if !errs.HasCode(errors.CodeElementIncorrectType) {
		t.Fatalf("errors = %v", errs)
	}
}

func TestParse_MalformedMarkup(t *testing.T) {
	root, errs := sdf.ParseString("<sdf version=\"1.9\">\n  <model name=\"m\">\n</sdf>", sdf.DefaultParserConfig())
	if root != nil {
		t.Fatalf("expected nil tree for malformed markup")
	}
	if !errs.HasCode(errors.CodeParse) {
		t.Fatalf("errors = %v", errs)
	}
	if !strings.Contains(errs[0].Message, "line 3") {
		t.Fatalf("parse error should carry the line: %q", errs[0].Message)
	}
}

func TestParse_NoRootElement(t *testing.T) {
	_, errs := sdf.ParseString("   ", sdf.DefaultParserConfig())
	if !errs.HasCode(errors.CodeParse) {
		t.Fatalf("errors = %v", errs)
	}
}

func TestParse_ContentAfterRootClosed(t *testing.T) {
	_, errs := sdf.ParseString(`<sdf version="1.9"></sdf><sdf version="1.9"/>`, sdf.DefaultParserConfig())
	if !errs.HasCode(errors.CodeParse) {
		t.Fatalf("errors = %v", errs)
	}
}

func TestParse_MissingRequiredAttribute(t *testing.T) {
	root, errs := sdf.ParseString(`<sdf><model name="m"><link name="l"/></model></sdf>`, sdf.DefaultParserConfig())
	if root == nil {
		t.Fatalf("tree should survive a missing attribute")
	}
	if !errs.HasCode(errors.CodeAttributeMissing) {
		t.Fatalf("errors = %v", errs)
	}
}

func TestParse_InvalidAttributeReportedOnce(t *testing.T) {
	doc := `<sdf version="1.9">
  <model name="m">
    <link name="l">
      <visual name="v">
        <cast_shadows>maybe</cast_shadows>
      </visual>
    </link>
  </model>
</sdf>`
	_, errs := sdf.ParseString(doc, sdf.DefaultParserConfig())
	if !errs.HasCode(errors.CodeElementInvalid) {
		t.Fatalf("errors = %v", errs)
	}

	// A provided-but-unparsable required attribute must not also be
	// reported missing.
	doc = `<sdf version="1.9"><world name="w"><model name="m"><link name="l"><pose degrees="narp">0 0 0 0 0 0</pose></link></model></world></sdf>`
	_, errs = sdf.ParseString(doc, sdf.DefaultParserConfig())
	if !errs.HasCode(errors.CodeAttributeInvalid) {
		t.Fatalf("errors = %v", errs)
	}
	if errs.HasCode(errors.CodeAttributeMissing) {
		t.Fatalf("invalid attribute double-reported as missing: %v", errs)
	}
}

func TestParse_MissingRequiredChild(t *testing.T) {
	doc := `<sdf version="1.9">
  <model name="m">
    <link name="l">
      <collision name="c"/>
    </link>
  </model>
</sdf>`
	root, errs := sdf.ParseString(doc, sdf.DefaultParserConfig())
	if root == nil {
		t.Fatalf("tree should survive a missing child")
	}
	if !errs.HasCode(errors.CodeElementMissing) {
		t.Fatalf("collision without geometry must be reported: %v", errs)
	}
}

func TestParse_UnknownContentPolicies(t *testing.T) {
	doc := `<sdf version="1.9">
  <model name="m" vendor="acme">
    <link name="l"/>
    <gadget id="7">spinner</gadget>
  </model>
</sdf>`

	root, errs := sdf.ParseString(doc, quietConfig())
	if len(errs) != 0 {
		t.Fatalf("default policy should only log: %v", errs)
	}
	gadget := root.FindElement("model").FindElement("gadget")
	if gadget == nil {
		t.Fatalf("unknown element not preserved")
	}
	if id, _ := sdf.GetValue(gadget, "id", ""); id != "7" {
		t.Fatalf("verbatim attribute id = %q", id)
	}
	if text, _ := sdf.GetValue(gadget, "", ""); text != "spinner" {
		t.Fatalf("verbatim value = %q", text)
	}

	_, errs = sdf.ParseString(doc, sdf.ParserConfig{})
	if !errs.HasCode(errors.CodeUnknownElement) {
		t.Fatalf("pedantic reading must report the element: %v", errs)
	}
	if !errs.HasCode(errors.CodeUnknownAttribute) {
		t.Fatalf("pedantic reading must report the attribute: %v", errs)
	}
}

func TestParse_PoseRotationFormats(t *testing.T) {
	cases := []struct {
		name string
		pose string
		want sdfmath.Pose
		code errors.Code
	}{
		{
			name: "euler radians",
			pose: `<pose>1 0 0 0 0 1.5707963267948966</pose>`,
			want: sdfmath.NewPose(1, 0, 0, 0, 0, 1.5707963267948966),
		},
		{
			name: "euler degrees",
			pose: `<pose degrees="true">1 0 0 0 0 90</pose>`,
			want: sdfmath.NewPose(1, 0, 0, 0, 0, 1.5707963267948966),
		},
		{
			name: "quaternion",
			pose: `<pose rotation_format="quat_xyzw">1 0 0 0 0 0.7071067811865476 0.7071067811865476</pose>`,
			want: sdfmath.NewPose(1, 0, 0, 0, 0, 1.5707963267948966),
		},
		{
			name: "degrees with quaternion",
			pose: `<pose rotation_format="quat_xyzw" degrees="true">1 0 0 0 0 0.707 0.707</pose>`,
			code: errors.CodeAttributeInvalid,
		},
		{
			name: "unknown format",
			pose: `<pose rotation_format="axis_angle">1 0 0 0 0 0</pose>`,
			code: errors.CodeAttributeInvalid,
		},
		{
			name: "wrong arity",
			pose: `<pose>1 2 3</pose>`,
			code: errors.CodeElementInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := `<sdf version="1.9"><model name="m"><link name="l">` + tc.pose + `</link></model></sdf>`
			root, errs := sdf.ParseString(doc, sdf.DefaultParserConfig())
			if tc.code != "" {
				if !errs.HasCode(tc.code) {
					t.Fatalf("errors = %v, want code %s", errs, tc.code)
				}
				return
			}
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			link := root.FindElement("model").FindElement("link")
			got, ok := sdf.GetValue(link, "pose", sdfmath.PoseIdentity())
			if !ok {
				t.Fatalf("pose not readable")
			}
			if !posesNear(got, tc.want) {
				t.Fatalf("pose = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParse_TextOnValuelessElement(t *testing.T) {
	doc := `<sdf version="1.9"><model name="m">loose text<link name="l"/></model></sdf>`
	_, errs := sdf.ParseString(doc, sdf.ParserConfig{})
	if !errs.HasCode(errors.CodeUnknownElement) {
		t.Fatalf("errors = %v", errs)
	}
	if _, errs := sdf.ParseString(doc, quietConfig()); len(errs) != 0 {
		t.Fatalf("default policy should only log: %v", errs)
	}
}

func TestParseFile(t *testing.T) {
	_, errs := sdf.ParseFile(filepath.Join(t.TempDir(), "absent.sdf"), sdf.DefaultParserConfig())
	if !errs.HasCode(errors.CodeFileRead) {
		t.Fatalf("errors = %v", errs)
	}

	path := filepath.Join(t.TempDir(), "mini.sdf")
	if err := os.WriteFile(path, []byte(miniDoc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	root, errs := sdf.ParseFile(path, sdf.DefaultParserConfig())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if root.FilePath() != path {
		t.Fatalf("FilePath = %q", root.FilePath())
	}
	if model := root.FindElement("model"); model.FilePath() != path {
		t.Fatalf("child FilePath = %q", model.FilePath())
	}
}
