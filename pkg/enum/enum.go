package enum

import (
	"fmt"
	"reflect"
)

// registry keeps the members of one string-backed enum type, in
// registration order.
type registry struct {
	byName map[string]any
	values []any
}

var registries = map[reflect.Type]*registry{}

// New registers a member of a string-backed enum type and returns it.
// Registering the same name twice keeps the first registration.
func New[T comparable](value T) T {
	t := reflect.TypeOf(value)
	r, ok := registries[t]
	if !ok {
		r = &registry{byName: make(map[string]any)}
		registries[t] = r
	}

	name := reflect.ValueOf(value).String()
	if _, exists := r.byName[name]; !exists {
		r.byName[name] = value
		r.values = append(r.values, value)
	}

	return value
}

// ToEnum resolves a string back to the registered member of T.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	r, ok := registries[reflect.TypeOf(zero)]
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	value, ok := r.byName[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return value.(T), nil
}
