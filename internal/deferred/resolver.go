package deferred

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/geomlayers/internal/ctxlog"
	"github.com/vk/geomlayers/internal/registry"
)

// Scope describes where a deferred reference is declared.
type Scope int

const (
	// ScopeModule marks a module/top-level declaration, which is rejected.
	// It is deliberately the zero value, so an unset scope fails closed.
	ScopeModule Scope = iota
	// ScopeCall marks a declaration inside an operation's body. This is the
	// only valid scope.
	ScopeCall
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeCall:
		return "call"
	case ScopeModule:
		return "module"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// LoadFunc loads the defining unit of an entity type and returns that type's
// facility, typically a constructor or factory. First execution is the first
// point the unit may be loaded. Load functions must be pure with respect to
// global state: running one twice must be harmless.
type LoadFunc func(ctx context.Context) (any, error)

// Resolver owns the table of lazily-loadable units and the record of which
// units have loaded. One resolver serves a whole process.
type Resolver struct {
	reg *registry.Registry

	mutex       sync.Mutex
	units       map[string]LoadFunc
	loaded      map[string]any
	loadedOrder []string
}

// NewResolver creates a Resolver backed by the given layer registry.
func NewResolver(reg *registry.Registry) *Resolver {
	return &Resolver{
		reg:    reg,
		units:  make(map[string]LoadFunc),
		loaded: make(map[string]any),
	}
}

// RegisterUnit registers the load function for an entity type's defining
// unit. Registration is wiring, not loading: the function does not run here.
// Registering a unit twice, or for a type absent from the layer table, is a
// programmer error.
func (r *Resolver) RegisterUnit(name string, load LoadFunc) {
	if !r.reg.Contains(name) {
		panic(fmt.Sprintf("cannot register unit for unknown entity type '%s'", name))
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.units[name]; exists {
		panic(fmt.Sprintf("unit for entity type '%s' already registered", name))
	}
	slog.Debug("Registering entity unit.", "name", name)
	r.units[name] = load
}

// Declare creates a deferred reference from one entity type to another. It
// fails with an InvalidScopeError for module scope and with an
// UnknownTypeError when either name is absent from the layer table. The
// referenced unit is not loaded here.
func (r *Resolver) Declare(from, to string, scope Scope) (*Reference, error) {
	if scope != ScopeCall {
		return nil, &InvalidScopeError{From: from, To: to, Scope: scope}
	}
	if _, err := r.reg.LayerOf(from); err != nil {
		return nil, err
	}
	if _, err := r.reg.LayerOf(to); err != nil {
		return nil, err
	}

	return &Reference{resolver: r, from: from, to: to}, nil
}

// LoadedUnits returns the names of all units loaded so far, in load order.
func (r *Resolver) LoadedUnits() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	out := make([]string, len(r.loadedOrder))
	copy(out, r.loadedOrder)
	return out
}

// loadUnit returns the facility for the named unit, loading it on first use.
// The load chain travels in the context so a load function that itself
// resolves deferred references cannot silently close a cycle back onto a unit
// already being loaded.
func (r *Resolver) loadUnit(ctx context.Context, name string) (any, error) {
	chain := chainFromContext(ctx)
	for _, loading := range chain {
		if loading == name {
			return nil, &LoadCycleError{Chain: append(append([]string{}, chain...), name)}
		}
	}

	r.mutex.Lock()
	if facility, ok := r.loaded[name]; ok {
		r.mutex.Unlock()
		return facility, nil
	}
	load, ok := r.units[name]
	r.mutex.Unlock()

	if !ok {
		return nil, fmt.Errorf("no unit registered for entity type '%s'", name)
	}

	// Run the load outside the lock. Two goroutines racing on first use may
	// both run it; the second result is discarded below, which is safe
	// because load functions are pure.
	ctxlog.FromContext(ctx).Debug("Loading entity unit.", "name", name, "chain", chain)
	facility, err := load(contextWithChain(ctx, append(append([]string{}, chain...), name)))
	if err != nil {
		return nil, fmt.Errorf("failed to load unit for entity type '%s': %w", name, err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	if winner, ok := r.loaded[name]; ok {
		return winner, nil
	}
	r.loaded[name] = facility
	r.loadedOrder = append(r.loadedOrder, name)
	return facility, nil
}

// chainKey is an unexported context key type for the unit load chain.
type chainKey struct{}

func contextWithChain(ctx context.Context, chain []string) context.Context {
	return context.WithValue(ctx, chainKey{}, chain)
}

func chainFromContext(ctx context.Context) []string {
	if chain, ok := ctx.Value(chainKey{}).([]string); ok {
		return chain
	}
	return nil
}
