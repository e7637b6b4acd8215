// Package runtimereg implements the Runtime Registry of spec §4.8: a
// compile-time table of extern functions and namespaced getters exposed to
// user code (e.g. "Viper.Terminal.Say", "Viper.Math.Pi"). The table itself
// is data, authored in registry.yaml and loaded with gopkg.in/yaml.v3 via
// go:embed, the way a registry of this size would be maintained in
// practice rather than as hand-written Go literals.
package runtimereg

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var registryYAML []byte

// FunctionEntry is one extern function signature.
type FunctionEntry struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params"`
	Ret    string   `yaml:"ret"`
}

// GetterEntry is one namespaced property getter (e.g. "Viper.Math.Pi").
type GetterEntry struct {
	Name string `yaml:"name"`
	Ret  string `yaml:"ret"`
}

type document struct {
	Functions []FunctionEntry `yaml:"functions"`
	Getters   []GetterEntry   `yaml:"getters"`
}

// Registry is the parsed, queryable form of registry.yaml.
type Registry struct {
	functions map[string]FunctionEntry
	getters   map[string]GetterEntry
	order     []string // dotted names in declaration order, for deterministic iteration
}

// Load parses the embedded registry.yaml. It panics on malformed embedded
// data, which would indicate a broken build rather than a runtime
// condition — the registry ships inside the binary.
func Load() *Registry {
	var doc document
	if err := yaml.Unmarshal(registryYAML, &doc); err != nil {
		panic("runtimereg: malformed embedded registry.yaml: " + err.Error())
	}
	r := &Registry{
		functions: make(map[string]FunctionEntry, len(doc.Functions)),
		getters:   make(map[string]GetterEntry, len(doc.Getters)),
	}
	for _, f := range doc.Functions {
		r.functions[f.Name] = f
		r.order = append(r.order, f.Name)
	}
	for _, g := range doc.Getters {
		r.getters[g.Name] = g
	}
	return r
}

// LookupFunction returns the extern function entry for a dotted name.
func (r *Registry) LookupFunction(dottedName string) (FunctionEntry, bool) {
	e, ok := r.functions[dottedName]
	return e, ok
}

// LookupGetter returns the namespaced getter entry for a dotted name.
func (r *Registry) LookupGetter(dottedName string) (GetterEntry, bool) {
	e, ok := r.getters[dottedName]
	return e, ok
}

// Functions returns every registered dotted function name, in the order
// registry.yaml declares them.
func (r *Registry) Functions() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Getters returns every registered dotted getter name.
func (r *Registry) Getters() []string {
	out := make([]string, 0, len(r.getters))
	for name := range r.getters {
		out = append(out, name)
	}
	return out
}

// NamespaceOf returns the namespace prefix of a dotted name, e.g.
// "Viper.Math.Sqrt" -> "Viper.Math".
func NamespaceOf(dottedName string) string {
	i := strings.LastIndex(dottedName, ".")
	if i < 0 {
		return ""
	}
	return dottedName[:i]
}

// MemberOf returns the last dotted segment, e.g. "Viper.Math.Sqrt" -> "Sqrt".
func MemberOf(dottedName string) string {
	i := strings.LastIndex(dottedName, ".")
	if i < 0 {
		return dottedName
	}
	return dottedName[i+1:]
}
