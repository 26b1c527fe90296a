// Package schema holds the element descriptions the document model is
// validated against: which attributes an element carries, what value it
// may hold, and which children it accepts. Descriptions ship embedded as
// multi-document YAML and are looked up by element name through a
// Registry.
package schema

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed descriptions/*.yaml
var descriptionsFS embed.FS

// Attribute describes one attribute of an element.
type Attribute struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Default     string `yaml:"default"`
	Required    bool   `yaml:"required"`
	Description string `yaml:"description"`
}

// Value describes the text value an element may carry.
type Value struct {
	Type        string `yaml:"type"`
	Default     string `yaml:"default"`
	Required    bool   `yaml:"required"`
	Min         string `yaml:"min"`
	Max         string `yaml:"max"`
	Description string `yaml:"description"`
}

// Child names a child an element accepts: either a ref to another
// top-level description, with an optional occurrence override, or an
// inline description for small one-off children.
type Child struct {
	Ref      string `yaml:"ref"`
	Required string `yaml:"required"`
	Inline   *Doc   `yaml:"inline"`
}

// Doc is one element description document.
type Doc struct {
	Element     string      `yaml:"element"`
	Required    string      `yaml:"required"`
	Description string      `yaml:"description"`
	Attributes  []Attribute `yaml:"attributes"`
	Value       *Value      `yaml:"value"`
	Children    []Child     `yaml:"children"`
}

// Registry maps element names to their descriptions.
type Registry struct {
	docs map[string]*Doc
}

// Lookup returns the description for an element name.
func (r *Registry) Lookup(name string) (*Doc, bool) {
	d, ok := r.docs[name]
	return d, ok
}

// Names returns every described element name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.docs))
	for n := range r.docs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Parse reads a multi-document YAML stream of element descriptions.
func Parse(data []byte) ([]*Doc, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []*Doc
	for {
		var d Doc
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("schema: %w", err)
		}
		if d.Element == "" {
			return nil, fmt.Errorf("schema: description without an element name")
		}
		docs = append(docs, &d)
	}
	return docs, nil
}

// LoadFS builds a registry from every .yaml file under dir in the given
// filesystem. Duplicate element names across files are rejected.
func LoadFS(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	r := &Registry{docs: make(map[string]*Doc)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
		docs, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("schema: %s: %w", entry.Name(), err)
		}
		for _, d := range docs {
			if _, exists := r.docs[d.Element]; exists {
				return nil, fmt.Errorf("schema: %s: duplicate description for %q", entry.Name(), d.Element)
			}
			r.docs[d.Element] = d
		}
	}
	return r, nil
}

var defaultRegistry struct {
	once sync.Once
	reg  *Registry
	err  error
}

// Default returns the registry built from the embedded descriptions.
func Default() (*Registry, error) {
	defaultRegistry.once.Do(func() {
		defaultRegistry.reg, defaultRegistry.err = LoadFS(descriptionsFS, "descriptions")
	})
	return defaultRegistry.reg, defaultRegistry.err
}
