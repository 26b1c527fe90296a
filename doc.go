package sdf

// Package sdf provides:
//
// - A schema-checked DOM for robot and world description documents (ParseString/ParseFile, Element)
// - Typed access to the DOM via generics (Get/Set/GetValue) with per-type parsing of the wire text
// - A stable error model via errors.Errors (code, message, file, line, element path)
// - Domain objects (Root, World, Model, Link, Joint, ...) loaded from the DOM with their own validation
// - Frame-semantics pose resolution through per-scope graphs (SemanticPose, frames.Graph)
// - Round-trip printing that preserves unknown content and only emits what was set (ToString)
//
// Design policy:
// - Keep the document model and domain objects in the root package; put the
//   schema tables under schema/, pose math under sdfmath/, the pose graph
//   under frames/, error codes under errors/, and the CLI under cmd/sdftool.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	var root sdf.Root
//	errs := root.LoadFile("robot.sdf", sdf.DefaultParserConfig())
//
//	model := root.Model()
//	pose, errs := model.LinkByName("arm").SemanticPose().Resolve("")
//
//	out, err := root.ToString(sdf.DefaultPrintConfig())
