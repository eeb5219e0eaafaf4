package locator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// entry is the YAML form of a candidate:
//
//	login.email:
//	  - css: "#Email"
//	  - within: ".footer"
//	    css: "input[type=email]"
//	  - css: "button"
//	    contains: "Log in"
type entry struct {
	CSS      string `yaml:"css"`
	Within   string `yaml:"within,omitempty"`
	Contains string `yaml:"contains,omitempty"`
}

func (e entry) candidate() Candidate {
	switch {
	case e.Within != "":
		return Within(e.Within, e.CSS)
	case e.Contains != "":
		return Containing(e.CSS, e.Contains)
	default:
		return CSS(e.CSS)
	}
}

func entryOf(c Candidate) entry {
	switch c.Kind {
	case Scoped:
		return entry{CSS: c.Selector, Within: c.Scope}
	case Keyword:
		return entry{CSS: c.Selector, Contains: c.Keyword}
	default:
		return entry{CSS: c.Selector}
	}
}

// Catalog holds candidate overrides keyed by spec name. A nil catalog
// resolves every spec to itself.
type Catalog struct {
	specs map[string]Spec
}

// LoadCatalog parses a YAML catalog. Every entry must yield a valid spec.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var raw map[string][]entry
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return &Catalog{specs: map[string]Spec{}}, nil
		}
		return nil, fmt.Errorf("failed to decode locator catalog: %w", err)
	}

	cat := &Catalog{specs: make(map[string]Spec, len(raw))}
	for name, entries := range raw {
		cs := make([]Candidate, 0, len(entries))
		for _, e := range entries {
			cs = append(cs, e.candidate())
		}
		spec, err := New(name, cs...)
		if err != nil {
			return nil, fmt.Errorf("invalid locator catalog: %w", err)
		}
		cat.specs[name] = spec
	}
	return cat, nil
}

// LoadCatalogFile reads a catalog from path
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open locator catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Resolve returns the override for s when the catalog has one, else s
func (c *Catalog) Resolve(s Spec) Spec {
	if c == nil {
		return s
	}
	if o, ok := c.specs[s.Name()]; ok {
		return o
	}
	return s
}

// Names returns the overridden spec names, sorted
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.specs))
	for n := range c.specs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MarshalCatalog writes specs in the catalog YAML format. Names are emitted
// in sorted order so the output is stable.
func MarshalCatalog(specs []Spec) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	sorted := make([]Spec, len(specs))
	copy(sorted, specs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })

	for _, s := range sorted {
		entries := make([]entry, 0, s.Len())
		for _, c := range s.candidates {
			entries = append(entries, entryOf(c))
		}
		var value yaml.Node
		if err := value.Encode(entries); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", s.Name(), err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: s.Name()},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode locator catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
