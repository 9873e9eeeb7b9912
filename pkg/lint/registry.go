package lint

import (
	"cmp"
	"slices"
	"strings"
	"sync"
)

// Registry holds the known rules. Lookups by ID or name ignore case, so
// "HI001", "hi001" and "indent" all find the same rule.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule   // folded ID -> rule
	names map[string]string // folded name -> folded ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
		names: make(map[string]string),
	}
}

func fold(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	id := fold(rule.ID())

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.rules[id]; ok {
		delete(r.names, fold(old.Name()))
	}
	r.rules[id] = rule
	if name := fold(rule.Name()); name != "" {
		r.names[name] = id
	}
}

// Get finds a rule by ID, falling back to its name.
func (r *Registry) Get(key string) (Rule, bool) {
	k := fold(key)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.rules[k]; ok {
		return rule, true
	}
	if id, ok := r.names[k]; ok {
		return r.rules[id], true
	}
	return nil, false
}

// GetByID finds a rule by ID only.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[fold(id)]
	return rule, ok
}

// Resolve returns the canonical ID for a rule ID or name.
func (r *Registry) Resolve(key string) (string, bool) {
	rule, ok := r.Get(key)
	if !ok {
		return "", false
	}
	return rule.ID(), true
}

// Rules returns the registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Rule) int { return cmp.Compare(a.ID(), b.ID()) })
	return out
}

// IDs returns the registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	rules := r.Rules()
	ids := make([]string, len(rules))
	for i, rule := range rules {
		ids[i] = rule.ID()
	}
	return ids
}

// DefaultRegistry holds the built-in rules, registered by package rules.
//
//nolint:gochecknoglobals // populated from init in package rules
var DefaultRegistry = NewRegistry()
