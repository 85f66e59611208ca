package transform

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

var (
	// ErrDuplicateEdge is returned when a (source, target) pair is registered twice.
	ErrDuplicateEdge = errors.New("transformation already registered")
	// ErrFrozen is returned when registering on a frozen registry.
	ErrFrozen = errors.New("registry is frozen")
)

type edgeKey struct {
	source reflect.Type
	target reflect.Type
}

// Registry holds conversion edges indexed by source and target type.
// Populate it at startup, call Freeze, then share it freely between goroutines.
type Registry struct {
	mu     sync.RWMutex
	edges  map[edgeKey]any
	frozen bool
}

// Edge describes one registered conversion, for diagnostics.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{edges: make(map[edgeKey]any)}
}

// Register adds the conversion S -> T. The function returns false when
// its input cannot be converted (for example a required field is absent).
func Register[S, T any](r *Registry, fn func(S) (T, bool)) error {
	key := edgeKey{source: typeOf[S](), target: typeOf[T]()}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: %s -> %s", ErrFrozen, key.source, key.target)
	}
	if _, exists := r.edges[key]; exists {
		return fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, key.source, key.target)
	}
	r.edges[key] = fn
	return nil
}

// MustRegister is Register that panics on error. Use it in startup wiring.
func MustRegister[S, T any](r *Registry, fn func(S) (T, bool)) {
	if err := Register(r, fn); err != nil {
		panic(err)
	}
}

// Freeze stops further registration.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Transform builds a T from src using the edge registered for src's
// runtime type. A *S source uses the S edge when no *S edge exists.
// The second result is false when no edge matches or the edge rejects src.
func Transform[T any](r *Registry, src any) (T, bool) {
	var zero T
	if r == nil || src == nil {
		return zero, false
	}

	target := typeOf[T]()
	st := reflect.TypeOf(src)

	if fn, ok := r.lookup(st, target); ok {
		return call[T](fn, reflect.ValueOf(src))
	}

	if st.Kind() == reflect.Pointer {
		v := reflect.ValueOf(src)
		if v.IsNil() {
			return zero, false
		}
		if fn, ok := r.lookup(st.Elem(), target); ok {
			return call[T](fn, v.Elem())
		}
	}
	return zero, false
}

// TransformAll converts every source it can and skips the rest.
func TransformAll[T any](r *Registry, srcs []any) []T {
	out := make([]T, 0, len(srcs))
	for _, src := range srcs {
		if v, ok := Transform[T](r, src); ok {
			out = append(out, v)
		}
	}
	return out
}

// Has reports whether an edge exists from src's runtime type to T.
func Has[T any](r *Registry, src any) bool {
	if r == nil || src == nil {
		return false
	}
	target := typeOf[T]()
	st := reflect.TypeOf(src)
	if _, ok := r.lookup(st, target); ok {
		return true
	}
	if st.Kind() == reflect.Pointer {
		_, ok := r.lookup(st.Elem(), target)
		return ok
	}
	return false
}

// Edges lists registered conversions sorted by target then source.
func (r *Registry) Edges() []Edge {
	r.mu.RLock()
	out := make([]Edge, 0, len(r.edges))
	for k := range r.edges {
		out = append(out, Edge{Source: k.source.String(), Target: k.target.String()})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].Source < out[j].Source
	})
	return out
}

// Len returns the number of registered edges.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.edges)
}

func (r *Registry) lookup(source, target reflect.Type) (any, bool) {
	r.mu.RLock()
	fn, ok := r.edges[edgeKey{source: source, target: target}]
	r.mu.RUnlock()
	return fn, ok
}

// call invokes a stored func(S) (T, bool) with v, which has type S.
func call[T any](fn any, v reflect.Value) (T, bool) {
	var zero T
	out := reflect.ValueOf(fn).Call([]reflect.Value{v})
	if !out[1].Bool() {
		return zero, false
	}
	res, ok := out[0].Interface().(T)
	if !ok {
		return zero, false
	}
	return res, true
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
