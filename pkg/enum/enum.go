package enum

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	enumManager = map[reflect.Type]any{}
	managerLock sync.RWMutex
)

type enum[T comparable] struct {
	toEnum map[string]T
	values []T
}

// New registers value as a member of its enumeration type and returns it. Members keep the
// order of registration, which Values and Index expose.
func New[T comparable](value T) T {
	managerLock.Lock()
	defer managerLock.Unlock()

	t := reflect.TypeOf(value)
	e, ok := enumManager[t].(*enum[T])
	if !ok {
		e = &enum[T]{toEnum: make(map[string]T)}
		enumManager[t] = e
	}

	key := fmt.Sprint(value)
	if _, ok := e.toEnum[key]; !ok {
		e.values = append(e.values, value)
	}
	e.toEnum[key] = value

	return value
}

func get[T comparable]() (*enum[T], bool) {
	var defaultT T

	managerLock.RLock()
	defer managerLock.RUnlock()

	e, ok := enumManager[reflect.TypeOf(defaultT)].(*enum[T])
	return e, ok
}

// ToEnum parses s into a registered member of T.
func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := get[T]()
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

func IsValid[T comparable](value T) bool {
	e, ok := get[T]()
	if !ok {
		return false
	}

	_, ok = e.toEnum[fmt.Sprint(value)]
	return ok
}

// Values returns all members of T in registration order.
func Values[T comparable]() []T {
	e, ok := get[T]()
	if !ok {
		return nil
	}

	result := make([]T, len(e.values))
	copy(result, e.values)
	return result
}

// Index returns the registration position of value, or -1 if value is not a member of T.
func Index[T comparable](value T) int {
	e, ok := get[T]()
	if !ok {
		return -1
	}

	for i, v := range e.values {
		if v == value {
			return i
		}
	}

	return -1
}
