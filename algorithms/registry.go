// Package algorithms keeps the table of particle algorithms the simulator
// can instantiate by name.
package algorithms

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/pthm-cable/amoebot/particle"
)

// ErrUnknownAlgorithm is returned by Lookup for unregistered names.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Factory creates one particle of an algorithm.
type Factory func(host particle.Host, id uint32, pos particle.Position) particle.Algorithm

var (
	mu       sync.RWMutex
	registry = make(map[string]Factory)
)

// Register makes an algorithm available under name. It is meant to be called
// from init and panics on duplicate or empty registrations.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if name == "" || f == nil {
		panic("algorithms: Register needs a name and a factory")
	}
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("algorithms: %q registered twice", name))
	}
	registry[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return f, nil
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
