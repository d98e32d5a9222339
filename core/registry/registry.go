// Package registry holds process-wide values that extension packages fill
// during init. A key can be locked once startup is done; later writes panic
// in the packages that own the key.
package registry

import (
	"errors"
	"fmt"
	"sync"
)

// ErrLocked is returned when a locked key is written.
var ErrLocked = errors.New("registry key locked")

type Registry struct {
	mu     sync.RWMutex
	values map[string]interface{}
	locked map[string]bool
}

// GlobalRegistry is shared by the cmd, cron and api registries.
var GlobalRegistry = New()

func New() *Registry {
	return &Registry{
		values: make(map[string]interface{}),
		locked: make(map[string]bool),
	}
}

func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

// SetGlobal stores v under key. It reports false and ignores the write when
// the key is locked.
func (r *Registry) SetGlobal(key string, v interface{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked[key] {
		return false
	}
	r.values[key] = v
	return true
}

func (r *Registry) Lock(key string) {
	r.mu.Lock()
	r.locked[key] = true
	r.mu.Unlock()
}

func (r *Registry) IsLocked(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked[key]
}

// UnlockForTesting reopens a locked key.
func (r *Registry) UnlockForTesting(key string) {
	r.mu.Lock()
	delete(r.locked, key)
	r.mu.Unlock()
}

// Append adds v to the list stored under key in one step.
func Append[T any](r *Registry, key string, v T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked[key] {
		return fmt.Errorf("%w: %s", ErrLocked, key)
	}
	list, _ := r.values[key].([]T)
	r.values[key] = append(list, v)
	return nil
}

// List returns a copy of the list stored under key. A missing key or a value
// of another type yields nil.
func List[T any](r *Registry, key string) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, _ := r.values[key].([]T)
	if len(list) == 0 {
		return nil
	}
	return append([]T(nil), list...)
}
