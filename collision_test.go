package sdf_test

import (
	"testing"

	sdf "github.com/robosim/sdf"
	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/sdfmath"
)

// parseLink returns the <link> element of a single-link model document.
func parseLink(t *testing.T, inner string) *sdf.Element {
	t.Helper()
	doc := `<sdf version="1.9"><model name="m"><link name="l">` + inner + `</link></model></sdf>`
	root, errs := sdf.ParseString(doc, sdf.DefaultParserConfig())
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}
	return root.FindElement("model").FindElement("link")
}

func TestCollision_Load(t *testing.T) {
	link := parseLink(t, `
    <collision name="hull">
      <pose relative_to="anchor">1 0 0 0 0 0</pose>
      <geometry><sphere><radius>0.5</radius></sphere></geometry>
    </collision>`)

	var c sdf.Collision
	if errs := c.Load(link.FindElement("collision")); len(errs) != 0 {
		t.Fatalf("load: %v", errs)
	}
	if c.Name() != "hull" {
		t.Fatalf("name = %q", c.Name())
	}
	if c.PoseRelativeTo() != "anchor" {
		t.Fatalf("relative_to = %q", c.PoseRelativeTo())
	}
	if c.RawPose().Pos != (sdfmath.Vector3{X: 1}) {
		t.Fatalf("pose = %v", c.RawPose())
	}
	if c.Geom().Type != sdf.GeometrySphere || c.Geom().Sphere.Radius != 0.5 {
		t.Fatalf("geometry = %+v", c.Geom())
	}
}

func TestCollision_WrongElement(t *testing.T) {
	var c sdf.Collision
	errs := c.Load(sdf.NewElement("visual"))
	if len(errs) != 1 || errs[0].Code != errors.CodeElementIncorrectType {
		t.Fatalf("errors = %v", errs)
	}
}

func TestCollision_HandBuiltMissingPieces(t *testing.T) {
	var c sdf.Collision
	errs := c.Load(sdf.NewElement("collision"))
	if !errs.HasCode(errors.CodeAttributeMissing) {
		t.Fatalf("missing name not reported: %v", errs)
	}
	if !errs.HasCode(errors.CodeElementMissing) {
		t.Fatalf("missing geometry not reported: %v", errs)
	}
}

func TestCollision_ParsedMissingNameReportedOnce(t *testing.T) {
	doc := `<sdf version="1.9"><model name="m"><link name="l"><collision><geometry/></collision></link></model></sdf>`
	root, parseErrs := sdf.ParseString(doc, sdf.DefaultParserConfig())
	if !parseErrs.HasCode(errors.CodeAttributeMissing) {
		t.Fatalf("parse errors = %v", parseErrs)
	}

	// The reader already reported the missing name; the loader reads the
	// described attribute's default without piling on.
	collision := root.FindElement("model").FindElement("link").FindElement("collision")
	var c sdf.Collision
	if errs := c.Load(collision); len(errs) != 0 {
		t.Fatalf("load errors = %v", errs)
	}
	if c.Name() != "" {
		t.Fatalf("name = %q", c.Name())
	}
}

func TestCollision_ReservedName(t *testing.T) {
	var c sdf.Collision
	elem := sdf.NewElement("collision")
	if err := elem.AddAttribute("name", "string", "", true, ""); err != nil {
		t.Fatalf("AddAttribute: %v", err)
	}
	_ = elem.GetAttribute("name").SetFromString("__hull__")
	errs := c.Load(elem)
	if !errs.HasCode(errors.CodeReservedName) {
		t.Fatalf("errors = %v", errs)
	}
}

func TestVisual_Load(t *testing.T) {
	link := parseLink(t, `
    <visual name="skin">
      <cast_shadows>false</cast_shadows>
      <transparency>0.25</transparency>
      <geometry><box><size>1 1 1</size></box></geometry>
      <material>
        <ambient>0.1 0.2 0.3 1</ambient>
        <diffuse>0.4 0.5 0.6 1</diffuse>
      </material>
    </visual>`)

	var v sdf.Visual
	if errs := v.Load(link.FindElement("visual")); len(errs) != 0 {
		t.Fatalf("load: %v", errs)
	}
	if v.Name() != "skin" {
		t.Fatalf("name = %q", v.Name())
	}
	if v.CastShadows() {
		t.Fatalf("cast_shadows should be false")
	}
	if v.Transparency() != 0.25 {
		t.Fatalf("transparency = %v", v.Transparency())
	}
	mat := v.Material()
	if mat == nil {
		t.Fatalf("material not loaded")
	}
	if mat.Ambient != (sdfmath.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}) {
		t.Fatalf("ambient = %v", mat.Ambient)
	}
	if mat.Diffuse != (sdfmath.Color{R: 0.4, G: 0.5, B: 0.6, A: 1}) {
		t.Fatalf("diffuse = %v", mat.Diffuse)
	}
	// Colors that were not given keep the opaque black default.
	if mat.Specular != (sdfmath.Color{A: 1}) {
		t.Fatalf("specular = %v", mat.Specular)
	}
}

func TestVisual_Defaults(t *testing.T) {
	link := parseLink(t, `<visual name="skin"><geometry/></visual>`)
	var v sdf.Visual
	if errs := v.Load(link.FindElement("visual")); len(errs) != 0 {
		t.Fatalf("load: %v", errs)
	}
	if !v.CastShadows() {
		t.Fatalf("cast_shadows default must be true")
	}
	if v.Transparency() != 0 {
		t.Fatalf("transparency default = %v", v.Transparency())
	}
	if v.Material() != nil {
		t.Fatalf("absent material must stay nil")
	}
}

func TestMaterial_WrongElement(t *testing.T) {
	var m sdf.Material
	errs := m.Load(sdf.NewElement("visual"))
	if !errs.HasCode(errors.CodeElementIncorrectType) {
		t.Fatalf("errors = %v", errs)
	}
}
