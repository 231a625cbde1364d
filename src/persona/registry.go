package persona

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	Programming = "プログラミング専門家"
	Health      = "健康・医療専門家"
	Business    = "ビジネス・経営専門家"
	Education   = "教育・学習専門家"
)

// ErrUnknownPersona is matched by every UnknownPersonaError via errors.Is.
var ErrUnknownPersona = errors.New("persona: unknown persona")

// UnknownPersonaError reports a lookup for an id outside the registered set.
type UnknownPersonaError struct {
	ID string
}

func (e *UnknownPersonaError) Error() string {
	return fmt.Sprintf("persona: unknown persona %q", e.ID)
}

func (e *UnknownPersonaError) Is(target error) bool {
	return target == ErrUnknownPersona
}

// Persona is a named expert role and the system instruction that conditions the model.
type Persona struct {
	ID                string
	Alias             string
	SystemInstruction string
	Description       string
	Caution           string
}

// Registry is the read-only persona table. The zero value is empty; use New or Default.
type Registry struct {
	order   []string
	byID    map[string]Persona
	byAlias map[string]string
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, built on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// New builds a registry from the fixed persona table.
func New() *Registry {
	r := &Registry{
		order:   make([]string, 0, len(table)),
		byID:    make(map[string]Persona, len(table)),
		byAlias: make(map[string]string, len(table)),
	}
	for _, p := range table {
		r.order = append(r.order, p.ID)
		r.byID[p.ID] = p
		r.byAlias[p.Alias] = p.ID
	}
	return r
}

// Lookup returns the persona registered under id.
func (r *Registry) Lookup(id string) (Persona, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return Persona{}, &UnknownPersonaError{ID: id}
}

// Resolve accepts either a canonical id or its ASCII alias.
func (r *Registry) Resolve(key string) (Persona, error) {
	key = strings.TrimSpace(key)
	if p, ok := r.byID[key]; ok {
		return p, nil
	}
	if id, ok := r.byAlias[strings.ToLower(key)]; ok {
		return r.byID[id], nil
	}
	return Persona{}, &UnknownPersonaError{ID: key}
}

// IDs lists the canonical ids in display order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// All returns every persona in display order.
func (r *Registry) All() []Persona {
	out := make([]Persona, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len reports the number of registered personas.
func (r *Registry) Len() int { return len(r.order) }
