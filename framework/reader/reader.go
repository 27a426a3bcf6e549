package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/validation"
)

// Top-level sections of a definition document.
const (
	SectionBeans         = "beans"
	SectionComponentScan = "component-scan"
)

// Scanner registers annotated classes under base packages.
type Scanner interface {
	Scan(basePackages ...string) ([]*beans.Descriptor, error)
}

// Reader loads YAML bean definitions into a registry:
//
//	beans:
//	  - id: petStore
//	    class: petstore.service.PetStoreService
//	    scope: prototype
//	    constructor-args:
//	      - ref: accountDao
//	      - value: "1"
//	        name: version
//	    properties:
//	      - name: owner
//	        value: liuxin
//	component-scan:
//	  base-package: petstore.dao,petstore.service
//
// Sections are applied in document order. A document is parsed and validated
// completely before anything is registered.
type Reader struct {
	registry *beans.Registry
	scanner  Scanner
	logger   *zap.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithScanner enables component-scan sections.
func WithScanner(s Scanner) Option {
	return func(r *Reader) { r.scanner = s }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a reader registering into registry.
func New(registry *beans.Registry, opts ...Option) *Reader {
	r := &Reader{registry: registry, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ── Sources ───────────────────────────────────────────────────────────────────

// LoadFile loads one definition file and returns the number of descriptors
// it registered.
func (r *Reader) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &DefinitionStoreError{Resource: path, Err: err}
	}
	return r.load(path, data)
}

// LoadFS loads every file of fsys matching the glob patterns, patterns in
// order and matches sorted within a pattern.
func (r *Reader) LoadFS(fsys fs.FS, patterns ...string) (int, error) {
	total := 0
	for _, pattern := range patterns {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return total, &DefinitionStoreError{Resource: pattern, Err: err}
		}
		if len(matches) == 0 {
			return total, &DefinitionStoreError{Resource: pattern, Err: fs.ErrNotExist}
		}
		for _, name := range matches {
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return total, &DefinitionStoreError{Resource: name, Err: err}
			}
			n, err := r.load(name, data)
			total += n
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// Load reads a definition document from src. resource names it in errors.
func (r *Reader) Load(resource string, src io.Reader) (int, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, &DefinitionStoreError{Resource: resource, Err: err}
	}
	return r.load(resource, data)
}

// ── Parsing ───────────────────────────────────────────────────────────────────

// step is one registration action, kept in document order.
type step struct {
	descriptor *beans.Descriptor
	scan       []string
}

func (r *Reader) load(resource string, data []byte) (int, error) {
	steps, err := parse(data, r.scanner != nil)
	if err != nil {
		return 0, &DefinitionStoreError{Resource: resource, Err: err}
	}

	count := 0
	for _, s := range steps {
		if s.descriptor != nil {
			if err := r.registry.Register(s.descriptor.ID, s.descriptor); err != nil {
				return count, &DefinitionStoreError{Resource: resource, Err: err}
			}
			count++
			continue
		}
		found, err := r.scanner.Scan(s.scan...)
		count += len(found)
		if err != nil {
			return count, &DefinitionStoreError{Resource: resource, Err: err}
		}
	}

	r.logger.Info("bean definitions loaded",
		zap.String("resource", resource),
		zap.Int("count", count))
	return count, nil
}

func parse(data []byte, canScan bool) ([]step, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: document must be a mapping", root.Line)
	}

	var steps []step
	seen := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if seen[key.Value] {
			return nil, fmt.Errorf("line %d: duplicate section %q", key.Line, key.Value)
		}
		seen[key.Value] = true

		switch key.Value {
		case SectionBeans:
			descriptors, err := parseBeans(value)
			if err != nil {
				return nil, err
			}
			for _, d := range descriptors {
				steps = append(steps, step{descriptor: d})
			}
		case SectionComponentScan:
			if !canScan {
				return nil, fmt.Errorf("line %d: component-scan requires a scanner", key.Line)
			}
			packages, err := parseScan(value)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step{scan: packages})
		default:
			return nil, fmt.Errorf("line %d: unknown section %q", key.Line, key.Value)
		}
	}
	return steps, nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

type beanDef struct {
	ID              string     `yaml:"id"`
	Class           string     `yaml:"class"`
	Scope           *string    `yaml:"scope"`
	ConstructorArgs []valueDef `yaml:"constructor-args"`
	Properties      []valueDef `yaml:"properties"`
}

type valueDef struct {
	Name  string  `yaml:"name"`
	Type  string  `yaml:"type"`
	Ref   *string `yaml:"ref"`
	Value *string `yaml:"value"`
}

var (
	beanRules = validation.Rules{
		"id":    "required|identifier",
		"class": "required|identifier",
		"scope": "sometimes|in:singleton,prototype",
	}
	argRules = validation.Rules{
		"ref":   "required_without:value|prohibited_with:value|sometimes|identifier",
		"value": "required_without:ref",
		"name":  "sometimes|identifier",
	}
	propertyRules = validation.Rules{
		"name":  "required|identifier",
		"ref":   "required_without:value|prohibited_with:value|sometimes|identifier",
		"value": "required_without:ref",
	}
)

func parseBeans(node *yaml.Node) ([]*beans.Descriptor, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: %s must be a list", node.Line, SectionBeans)
	}

	out := make([]*beans.Descriptor, 0, len(node.Content))
	ids := make(map[string]int)
	for i, item := range node.Content {
		var def beanDef
		if err := item.Decode(&def); err != nil {
			return nil, fmt.Errorf("beans[%d]: %w", i, err)
		}
		d, err := def.descriptor()
		if err != nil {
			return nil, fmt.Errorf("beans[%d] (line %d): %w", i, item.Line, err)
		}
		if line, dup := ids[d.ID]; dup {
			return nil, fmt.Errorf("beans[%d] (line %d): id %q already defined on line %d", i, item.Line, d.ID, line)
		}
		ids[d.ID] = item.Line
		out = append(out, d)
	}
	return out, nil
}

func (def beanDef) descriptor() (*beans.Descriptor, error) {
	data := map[string]string{"id": def.ID, "class": def.Class}
	if def.Scope != nil {
		data["scope"] = *def.Scope
	}
	if err := validation.Make(data, beanRules).Validate(); err != nil {
		return nil, err
	}

	d := beans.NewDescriptor(def.ID, def.Class)
	if def.Scope != nil {
		scope, err := beans.ParseScope(*def.Scope)
		if err != nil {
			return nil, err
		}
		d.Scope = scope
	}

	for i, a := range def.ConstructorArgs {
		if err := validation.Make(a.data(), argRules).Validate(); err != nil {
			return nil, fmt.Errorf("constructor-args[%d]: %w", i, err)
		}
		d.AddConstructorArg(beans.ConstructorArgument{Type: a.Type, Name: a.Name, Value: a.spec()})
	}

	names := make(map[string]bool)
	for i, p := range def.Properties {
		if err := validation.Make(p.data(), propertyRules).Validate(); err != nil {
			return nil, fmt.Errorf("properties[%d]: %w", i, err)
		}
		if names[p.Name] {
			return nil, fmt.Errorf("properties[%d]: duplicate property %q", i, p.Name)
		}
		names[p.Name] = true
		d.SetProperty(p.Name, p.spec())
	}
	return d, nil
}

func (v valueDef) data() map[string]string {
	data := make(map[string]string)
	if v.Name != "" {
		data["name"] = v.Name
	}
	if v.Type != "" {
		data["type"] = v.Type
	}
	if v.Ref != nil {
		data["ref"] = *v.Ref
	}
	if v.Value != nil {
		data["value"] = *v.Value
	}
	return data
}

func (v valueDef) spec() beans.ValueSpec {
	if v.Ref != nil {
		return beans.Reference{BeanID: *v.Ref}
	}
	return beans.Literal{Text: *v.Value}
}

type scanDef struct {
	BasePackage string `yaml:"base-package"`
}

func parseScan(node *yaml.Node) ([]string, error) {
	var def scanDef
	if err := node.Decode(&def); err != nil {
		return nil, fmt.Errorf("%s: %w", SectionComponentScan, err)
	}
	var packages []string
	for _, p := range strings.Split(def.BasePackage, ",") {
		if p = strings.TrimSpace(p); p != "" {
			packages = append(packages, p)
		}
	}
	if len(packages) == 0 {
		return nil, fmt.Errorf("line %d: %s needs a base-package", node.Line, SectionComponentScan)
	}
	return packages, nil
}

// IsDefinitionStoreError reports whether err came from a definition source.
func IsDefinitionStoreError(err error) bool {
	return errors.Is(err, ErrDefinitionStore)
}
