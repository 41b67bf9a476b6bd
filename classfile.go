package reactive

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ClassSpec is the declarative form of a class, as read from a class file.
type ClassSpec struct {
	Name     string         `yaml:"name"`
	Extends  string         `yaml:"extends,omitempty"`
	Fields   []string       `yaml:"fields,omitempty"`
	Defaults map[string]any `yaml:"defaults,omitempty"`
	Guards   []string       `yaml:"guards,omitempty"`
}

// ClassFile lists class declarations. A class may only extend one declared
// before it.
type ClassFile struct {
	Classes []ClassSpec `yaml:"classes"`
}

// LoadClasses parses a YAML class file and defines every class it lists.
// Fields named only in defaults are registered after the listed fields, in
// key order. opts apply to each class (WithRegistry, typically).
func LoadClasses(data []byte, opts ...ClassOption) (map[string]*Class, error) {
	var file ClassFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("reactive: parse class file: %w", err)
	}
	return DefineClasses(file, opts...)
}

// DefineClasses defines the classes of an already decoded class file.
// Nothing is registered when the file is invalid.
func DefineClasses(file ClassFile, opts ...ClassOption) (map[string]*Class, error) {
	if err := file.validate(); err != nil {
		return nil, err
	}

	classes := make(map[string]*Class, len(file.Classes))
	for _, decl := range file.Classes {
		classOpts := append([]ClassOption{}, opts...)
		if decl.Extends != "" {
			classOpts = append(classOpts, Extends(classes[decl.Extends]))
		}
		class := DefineClass(decl.Name, classOpts...)

		declared := make(map[string]struct{}, len(decl.Fields))
		for _, field := range decl.Fields {
			declared[field] = struct{}{}
			if value, ok := decl.Defaults[field]; ok {
				class.Field(field, value)
				continue
			}
			class.Watch(field)
		}
		for _, field := range sortedKeys(decl.Defaults) {
			if _, ok := declared[field]; ok {
				continue
			}
			class.Field(field, decl.Defaults[field])
		}
		class.Guard(decl.Guards...)
		classes[decl.Name] = class
	}
	return classes, nil
}

func (f ClassFile) validate() error {
	seen := make(map[string]struct{}, len(f.Classes))
	for i, decl := range f.Classes {
		name := decl.Name
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("reactive: class #%d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("reactive: class %s declared twice", name)
		}
		if decl.Extends != "" {
			if _, ok := seen[decl.Extends]; !ok {
				return fmt.Errorf("reactive: class %s extends %s which is not declared before it", name, decl.Extends)
			}
		}
		for _, field := range decl.Fields {
			if err := validateFieldName(field); err != nil {
				return fmt.Errorf("reactive: class %s: %w", name, err)
			}
		}
		for _, field := range sortedKeys(decl.Defaults) {
			if err := validateFieldName(field); err != nil {
				return fmt.Errorf("reactive: class %s: %w", name, err)
			}
		}
		for _, guard := range decl.Guards {
			if strings.TrimSpace(guard) == "" {
				return fmt.Errorf("reactive: class %s: guard expression must not be empty", name)
			}
		}
		seen[name] = struct{}{}
	}
	return nil
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
