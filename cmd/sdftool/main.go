// Command sdftool inspects simulation description files: it validates
// them, reprints them, dumps their element trees as JSON, and resolves
// poses between frames.
package main

import (
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	sdf "github.com/robosim/sdf"
	"github.com/robosim/sdf/frames"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	case "print":
		printCmd(os.Args[2:])
	case "dump":
		dumpCmd(os.Args[2:])
	case "resolve":
		resolveCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `sdftool

Usage:
  sdftool check [-strict] [-json] <file>...
  sdftool print [-indent N] [-defaults] [-declaration] <file>
  sdftool dump [-compact] <file>
  sdftool resolve -from FRAME [-to FRAME] [-world NAME] [-model NAME] <file>`)
}

// problem is the JSON shape of one reported error.
type problem struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	XMLPath string `json:"xmlPath,omitempty"`
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var strict, asJSON bool
	fs.BoolVar(&strict, "strict", false, "treat every recoverable problem as an error")
	fs.BoolVar(&asJSON, "json", false, "report problems as JSON on stdout")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	config := sdf.DefaultParserConfig()
	if strict {
		config = sdf.ParserConfig{}
	}

	failed := false
	problems := []problem{}
	for _, path := range fs.Args() {
		var root sdf.Root
		errs := root.LoadFile(path, config)
		if len(errs) == 0 {
			if !asJSON {
				fmt.Printf("%s: OK\n", path)
			}
			continue
		}
		failed = true
		for _, e := range errs {
			if asJSON {
				problems = append(problems, problem{
					File:    path,
					Code:    string(e.Code),
					Message: e.Message,
					Line:    e.LineNumber,
					XMLPath: e.XMLPath,
				})
				continue
			}
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
		}
	}
	if asJSON {
		out, err := json.MarshalIndent(problems, "", "  ")
		if err != nil {
			fatalf("encoding report: %v", err)
		}
		fmt.Println(string(out))
	}
	if failed {
		os.Exit(1)
	}
}

func printCmd(args []string) {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	var indent int
	var defaults, declaration bool
	fs.IntVar(&indent, "indent", 2, "spaces per nesting level")
	fs.BoolVar(&defaults, "defaults", false, "emit attributes and values left at their defaults")
	fs.BoolVar(&declaration, "declaration", false, "emit the XML declaration")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	elem, errs := sdf.ParseFile(fs.Arg(0), sdf.DefaultParserConfig())
	if elem == nil {
		fatalf("%s: %v", fs.Arg(0), errs)
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s: %s\n", fs.Arg(0), e.Error())
	}

	out, err := elem.ToString(sdf.PrintConfig{
		Indent:          indent,
		IncludeDefaults: defaults,
		Declaration:     declaration,
	})
	if err != nil {
		fatalf("printing: %v", err)
	}
	fmt.Print(out)
}

// jsonElement mirrors one element for the dump subcommand.
type jsonElement struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Value      string            `json:"value,omitempty"`
	Children   []jsonElement     `json:"children,omitempty"`
}

func toJSONElement(e *sdf.Element) jsonElement {
	j := jsonElement{Name: e.Name()}
	for _, attr := range e.Attributes() {
		if !attr.WasSet() {
			continue
		}
		if j.Attributes == nil {
			j.Attributes = make(map[string]string)
		}
		j.Attributes[attr.Key()] = attr.GetAsString()
	}
	if v := e.Value(); v != nil && v.WasSet() {
		j.Value = v.GetAsString()
	}
	for _, child := range e.Children() {
		j.Children = append(j.Children, toJSONElement(child))
	}
	return j
}

func dumpCmd(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	var compact bool
	fs.BoolVar(&compact, "compact", false, "single-line output")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	elem, errs := sdf.ParseFile(fs.Arg(0), sdf.DefaultParserConfig())
	if elem == nil {
		fatalf("%s: %v", fs.Arg(0), errs)
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s: %s\n", fs.Arg(0), e.Error())
	}

	tree := toJSONElement(elem)
	var out []byte
	var err error
	if compact {
		out, err = json.Marshal(tree)
	} else {
		out, err = json.MarshalIndent(tree, "", "  ")
	}
	if err != nil {
		fatalf("encoding tree: %v", err)
	}
	fmt.Println(string(out))
}

func resolveCmd(args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	var from, to, world, model string
	fs.StringVar(&from, "from", "", "frame whose pose to resolve")
	fs.StringVar(&to, "to", "", "frame to express the pose in (default: the scope root)")
	fs.StringVar(&world, "world", "", "world holding the frames (default: the first world)")
	fs.StringVar(&model, "model", "", "model scope inside the world (default: the world scope itself)")
	_ = fs.Parse(args)
	if fs.NArg() != 1 || from == "" {
		fs.Usage()
		os.Exit(2)
	}

	var root sdf.Root
	if errs := root.LoadFile(fs.Arg(0), sdf.DefaultParserConfig()); len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", fs.Arg(0), e.Error())
		}
		os.Exit(1)
	}

	graph, err := scopeGraph(&root, world, model)
	if err != nil {
		fatalf("%v", err)
	}
	if to == "" {
		to = graph.ScopeName()
	}
	pose, errs := graph.ResolvePose(from, to)
	if len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s\n", e.Error())
		}
		os.Exit(1)
	}
	fmt.Printf("%s\n", pose)
}

// scopeGraph picks the frame graph the resolve flags address.
func scopeGraph(root *sdf.Root, world, model string) (*frames.Graph, error) {
	if world == "" && root.WorldCount() == 0 {
		m := root.Model()
		if m == nil {
			return nil, fmt.Errorf("the document has no world and no model")
		}
		if model != "" && model != m.Name() {
			m = m.ModelByName(model)
			if m == nil {
				return nil, fmt.Errorf("model %q not found", model)
			}
		}
		return m.PoseGraph(), nil
	}

	w := root.WorldByIndex(0)
	if world != "" {
		w = root.WorldByName(world)
		if w == nil {
			return nil, fmt.Errorf("world %q not found", world)
		}
	}
	if model == "" {
		return w.PoseGraph(), nil
	}
	m := w.ModelByName(model)
	if m == nil {
		return nil, fmt.Errorf("model %q not found in world %q", model, w.Name())
	}
	return m.PoseGraph(), nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
