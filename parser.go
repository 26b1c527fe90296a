package sdf

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/robosim/sdf/errors"
	"github.com/robosim/sdf/sdfmath"
)

// ParseFile reads the document at path into an element tree rooted at the
// <sdf> element. Recoverable problems are reported through the returned
// error list and, depending on config, may leave the tree partially
// populated.
func ParseFile(path string, config ParserConfig) (*Element, errors.Errors) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errors{errors.Newf(errors.CodeFileRead, "reading %s: %v", path, err)}
	}
	return Parse(bytes.NewReader(data), path, config)
}

// ParseString reads a document from an XML string.
func ParseString(data string, config ParserConfig) (*Element, errors.Errors) {
	return Parse(strings.NewReader(data), "", config)
}

// Parse reads a document from r. source names the input in error
// locations; empty means unknown.
func Parse(r io.Reader, source string, config ParserConfig) (*Element, errors.Errors) {
	raw, err := decodeRaw(r)
	if err != nil {
		e, ok := err.(errors.Error)
		if !ok {
			e = errors.Newf(errors.CodeParse, "%v", err)
		}
		if source != "" {
			e.FilePath = source
		}
		return nil, errors.Errors{e}
	}
	if raw.name != "sdf" {
		e := errors.Newf(errors.CodeElementIncorrectType, "root element is <%s>, expected <sdf>", raw.name)
		e.FilePath = source
		e.LineNumber = raw.line
		return nil, errors.Errors{e}
	}

	desc, err := ElementDescription("sdf")
	if err != nil {
		return nil, errors.Errors{errors.Newf(errors.CodeParse, "%v", err)}
	}

	p := &parser{config: config, source: source}
	root := desc.instantiate()
	root.SetFilePath(source)
	p.populate(root, raw)

	version, _ := GetValue[string](root, "version", "")
	setOriginalVersion(root, version)
	return root, p.errs
}

// rawNode is the schema-unaware stage of reading: names, attributes and
// text as they appear in the markup, plus the line each element starts on.
type rawNode struct {
	name     string
	attrs    []xml.Attr
	text     string
	children []*rawNode
	line     int
}

func decodeRaw(r io.Reader) (*rawNode, error) {
	decoder := xml.NewDecoder(r)

	var stack []*rawNode
	var root *rawNode
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, _ := decoder.InputPos()
			return nil, errors.Newf(errors.CodeParse, "line %d: %v", line, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, errors.Newf(errors.CodeParse, "unexpected element <%s> after the root element closed", t.Name.Local)
			}
			line, _ := decoder.InputPos()
			node := &rawNode{
				name:  t.Name.Local,
				attrs: make([]xml.Attr, len(t.Attr)),
				line:  line,
			}
			copy(node.attrs, t.Attr)
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			} else {
				root = node
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New(errors.CodeParse, "document has no root element")
	}
	return root, nil
}

// parser fills description instances from raw nodes, accumulating
// problems as it walks.
type parser struct {
	config ParserConfig
	source string
	errs   errors.Errors
}

func (p *parser) fail(elem *Element, err errors.Error) {
	p.errs = errors.Append(p.errs, elem.errorLocation(err))
}

func (p *parser) warn(policy EnforcementPolicy, elem *Element, err errors.Error) {
	p.errs = addRecoverableWarning(policy, p.config, elem.errorLocation(err), p.errs)
}

// populate fills elem, an instantiated description, from raw. Children are
// inserted before being populated so error locations carry their paths.
func (p *parser) populate(elem *Element, raw *rawNode) {
	elem.SetFilePath(p.source)
	elem.SetLineNumber(raw.line)

	provided := make(map[string]bool, len(raw.attrs))
	for _, attr := range raw.attrs {
		if ignorableAttr(attr) {
			continue
		}
		param := elem.GetAttribute(attr.Name.Local)
		if param == nil {
			p.warn(p.config.UnrecognizedElementsPolicy, elem, errors.Newf(errors.CodeUnknownAttribute,
				"attribute %q in element <%s> is not described, ignoring", attr.Name.Local, elem.Name()))
			continue
		}
		provided[attr.Name.Local] = true
		if err := param.SetFromString(attr.Value); err != nil {
			p.fail(elem, errors.Newf(errors.CodeAttributeInvalid,
				"attribute %q in element <%s>: %v", attr.Name.Local, elem.Name(), err))
		}
	}
	for _, param := range elem.Attributes() {
		if param.Required() && !param.WasSet() && !provided[param.Key()] {
			p.fail(elem, errors.Newf(errors.CodeAttributeMissing,
				"element <%s> is missing required attribute %q", elem.Name(), param.Key()))
		}
	}

	if text := strings.TrimSpace(raw.text); text != "" {
		p.setValue(elem, text)
	}

	for _, rawChild := range raw.children {
		desc := elem.GetElementDescription(rawChild.name)
		if desc == nil {
			p.warn(p.config.UnrecognizedElementsPolicy, elem, errors.Newf(errors.CodeUnknownElement,
				"element <%s>, child of <%s>, is not described, copying verbatim", rawChild.name, elem.Name()))
			elem.InsertElement(p.copyVerbatim(rawChild), true)
			continue
		}
		child := desc.instantiate()
		elem.InsertElement(child, true)
		p.populate(child, rawChild)
	}

	for _, desc := range elem.descriptions {
		if (desc.required == "1" || desc.required == "+") && !elem.HasElement(desc.name) {
			p.fail(elem, errors.Newf(errors.CodeElementMissing,
				"element <%s> is missing required child <%s>", elem.Name(), desc.name))
		}
	}
}

// setValue parses the element text into its value parameter. Pose values
// honor the rotation_format and degrees attributes.
func (p *parser) setValue(elem *Element, text string) {
	value := elem.Value()
	if value == nil {
		p.warn(p.config.UnrecognizedElementsPolicy, elem, errors.Newf(errors.CodeUnknownElement,
			"element <%s> does not take a value, ignoring %q", elem.Name(), text))
		return
	}
	if value.TypeName() == "pose" {
		p.setPoseValue(elem, text)
		return
	}
	if err := value.SetFromString(text); err != nil {
		p.fail(elem, errors.Newf(errors.CodeElementInvalid, "element <%s>: %v", elem.Name(), err))
	}
}

func (p *parser) setPoseValue(elem *Element, text string) {
	format, _ := GetValue[string](elem, "rotation_format", "euler_rpy")
	degrees, _ := GetValue[bool](elem, "degrees", false)

	var pose sdfmath.Pose
	var err error
	switch format {
	case "euler_rpy":
		pose, err = sdfmath.ParsePoseEuler(text, degrees)
	case "quat_xyzw":
		if degrees {
			p.fail(elem, errors.New(errors.CodeAttributeInvalid,
				"degrees attribute is not supported with rotation_format quat_xyzw"))
			return
		}
		pose, err = sdfmath.ParsePoseQuatXYZW(text)
	default:
		p.fail(elem, errors.Newf(errors.CodeAttributeInvalid,
			"unrecognized rotation_format %q", format))
		return
	}
	if err != nil {
		p.fail(elem, errors.Newf(errors.CodeElementInvalid, "element <%s>: %v", elem.Name(), err))
		return
	}
	if err := Set(elem.Value(), pose); err != nil {
		p.fail(elem, errors.Newf(errors.CodeElementInvalid, "element <%s>: %v", elem.Name(), err))
	}
}

// copyVerbatim turns an undescribed node into a free-form element whose
// attributes and value are plain strings.
func (p *parser) copyVerbatim(raw *rawNode) *Element {
	elem := NewElement(raw.name)
	elem.SetFilePath(p.source)
	elem.SetLineNumber(raw.line)
	for _, attr := range raw.attrs {
		if ignorableAttr(attr) {
			continue
		}
		if err := elem.AddAttribute(attr.Name.Local, "string", "", false, ""); err != nil {
			continue
		}
		if err := elem.GetAttribute(attr.Name.Local).SetFromString(attr.Value); err != nil {
			p.fail(elem, errors.Newf(errors.CodeAttributeInvalid,
				"attribute %q in element <%s>: %v", attr.Name.Local, elem.Name(), err))
		}
	}
	if text := strings.TrimSpace(raw.text); text != "" {
		if err := elem.AddValue("string", "", false, ""); err == nil {
			elem.Value().SetFromString(text)
		}
	}
	for _, rawChild := range raw.children {
		elem.InsertElement(p.copyVerbatim(rawChild), true)
	}
	return elem
}

func ignorableAttr(attr xml.Attr) bool {
	return attr.Name.Space != "" || attr.Name.Local == "xmlns"
}

func setOriginalVersion(elem *Element, version string) {
	elem.SetOriginalVersion(version)
	for _, child := range elem.Children() {
		setOriginalVersion(child, version)
	}
}
