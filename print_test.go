package sdf_test

import (
	"strings"
	"testing"

	sdf "github.com/robosim/sdf"
	"github.com/robosim/sdf/sdfmath"
)

func TestToString_RoundTripKeepsStructure(t *testing.T) {
	root, errs := sdf.ParseString(miniDoc, sdf.DefaultParserConfig())
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}

	out, err := root.ToString(sdf.DefaultPrintConfig())
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}

	back, errs := sdf.ParseString(out, sdf.DefaultParserConfig())
	if len(errs) != 0 {
		t.Fatalf("reparse: %v\n%s", errs, out)
	}
	if v, _ := sdf.GetValue(back, "version", ""); v != "1.9" {
		t.Fatalf("version lost: %q", v)
	}
	link := back.FindElement("model").FindElement("link")
	if link == nil {
		t.Fatalf("structure lost:\n%s", out)
	}
	pose, ok := sdf.GetValue(link, "pose", sdfmath.PoseIdentity())
	if !ok || !posesNear(pose, sdfmath.NewPose(1, 2, 3, 0, 0, 0)) {
		t.Fatalf("pose drifted: %v", pose)
	}
	box := link.FindElement("collision").FindElement("geometry").FindElement("box")
	if size, _ := sdf.GetValue(box, "size", sdfmath.Vector3{}); size != (sdfmath.Vector3{X: 2, Y: 1, Z: 0.5}) {
		t.Fatalf("box size drifted: %v", size)
	}
}

func TestToString_OmitsUnsetOptionals(t *testing.T) {
	elem, err := sdf.CreateElement("link")
	if err != nil {
		t.Fatalf("CreateElement: %v", err)
	}
	_ = elem.GetAttribute("name").SetFromString("chassis")

	out, err := elem.ToString(sdf.DefaultPrintConfig())
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if strings.Contains(out, "gravity") {
		t.Fatalf("unset optional child printed:\n%s", out)
	}
	if !strings.Contains(out, `name="chassis"`) {
		t.Fatalf("set attribute missing:\n%s", out)
	}
}

func TestToString_IncludeDefaults(t *testing.T) {
	root, errs := sdf.ParseString(miniDoc, sdf.DefaultParserConfig())
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}

	out, err := root.ToString(sdf.PrintConfig{Indent: 2, IncludeDefaults: true})
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if !strings.Contains(out, `rotation_format="euler_rpy"`) {
		t.Fatalf("default attribute not emitted:\n%s", out)
	}

	out, err = root.ToString(sdf.DefaultPrintConfig())
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if strings.Contains(out, "rotation_format") {
		t.Fatalf("unset optional attribute printed:\n%s", out)
	}
}

func TestToString_Declaration(t *testing.T) {
	root, errs := sdf.ParseString(`<sdf version="1.9"/>`, sdf.DefaultParserConfig())
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}
	out, err := root.ToString(sdf.PrintConfig{Indent: 2, Declaration: true})
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if !strings.HasPrefix(out, "<?xml") {
		t.Fatalf("declaration missing:\n%s", out)
	}
	out, err = root.ToString(sdf.DefaultPrintConfig())
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if strings.HasPrefix(out, "<?xml") {
		t.Fatalf("declaration printed without being asked:\n%s", out)
	}
}

func TestToString_VerbatimContentSurvives(t *testing.T) {
	doc := `<sdf version="1.9">
  <model name="m">
    <link name="l"/>
    <plugin name="p" filename="libdrive.so">
      <wheel_radius>0.3</wheel_radius>
    </plugin>
  </model>
</sdf>`
	root, errs := sdf.ParseString(doc, quietConfig())
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}
	out, err := root.ToString(sdf.DefaultPrintConfig())
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if !strings.Contains(out, "<wheel_radius>0.3</wheel_radius>") {
		t.Fatalf("free-form plugin content lost:\n%s", out)
	}
}
