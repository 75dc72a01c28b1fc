package indices

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// ReservedName is the ranking mode that resolves a watchlist group instead of an index.
const ReservedName = "watchlist"

// Index is a named, ordered constituent list
type Index struct {
	Name    string   `json:"name" mapstructure:"-"`
	Label   string   `json:"label" mapstructure:"label"`
	Symbols []string `json:"symbols" mapstructure:"stocks"`
}

// Registry is the immutable index table built once at start-up.
// ⭐ SSOT: 정적 지수 구성종목은 여기서만
type Registry struct {
	byName map[string]Index
}

// Default returns the registry of built-in indices
func Default() *Registry {
	r, _ := newRegistry(builtin())
	return r
}

// Load returns the built-in indices merged with the override file at path.
// Entries in the file replace built-ins of the same name. An empty path
// returns Default().
//
//	indices:
//	  idx30:
//	    label: IDX30
//	    stocks: [ADRO, AMMN, ...]
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read indices file: %w", err)
	}

	var file struct {
		Indices map[string]Index `mapstructure:"indices"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal indices file: %w", err)
	}

	merged := make(map[string]Index)
	for _, idx := range builtin() {
		merged[idx.Name] = idx
	}
	for name, idx := range file.Indices {
		idx.Name = name
		merged[strings.ToLower(name)] = idx
	}

	list := make([]Index, 0, len(merged))
	for _, idx := range merged {
		list = append(list, idx)
	}
	return newRegistry(list)
}

func newRegistry(list []Index) (*Registry, error) {
	r := &Registry{byName: make(map[string]Index, len(list))}
	for _, idx := range list {
		name := strings.ToLower(strings.TrimSpace(idx.Name))
		if name == "" {
			return nil, fmt.Errorf("index name is empty")
		}
		if name == ReservedName {
			return nil, fmt.Errorf("index name %q is reserved", ReservedName)
		}
		if len(idx.Symbols) == 0 {
			return nil, fmt.Errorf("index %s has no symbols", name)
		}

		label := idx.Label
		if label == "" {
			label = strings.ToUpper(name)
		}
		r.byName[name] = Index{Name: name, Label: label, Symbols: dedupe(idx.Symbols)}
	}
	return r, nil
}

// dedupe upper-cases symbols and drops repeats, keeping first occurrence order
func dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Lookup returns a copy of the named index
func (r *Registry) Lookup(name string) (Index, bool) {
	idx, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Index{}, false
	}
	idx.Symbols = append([]string(nil), idx.Symbols...)
	return idx, true
}

// Symbols returns the members of the named index
func (r *Registry) Symbols(name string) ([]string, bool) {
	idx, ok := r.Lookup(name)
	return idx.Symbols, ok
}

// Names returns the configured index names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every index sorted by name
func (r *Registry) All() []Index {
	out := make([]Index, 0, len(r.byName))
	for _, name := range r.Names() {
		idx, _ := r.Lookup(name)
		out = append(out, idx)
	}
	return out
}
