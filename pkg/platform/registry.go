package platform

import (
	"fmt"
	"sync"

	"github.com/kart-io/eventcast/pkg/logger"
)

// Registry manages adapter factories and lazily created instances.
// Instances are created on first use and cached; credentials are
// injected at factory-construction time, never read ad hoc mid-call.
type Registry struct {
	factories map[string]Factory
	adapters  map[string]Adapter
	logger    logger.Logger
	mutex     sync.RWMutex
}

// NewRegistry creates an empty adapter registry.
func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.Discard
	}
	return &Registry{
		factories: make(map[string]Factory),
		adapters:  make(map[string]Adapter),
		logger:    log,
	}
}

// RegisterFactory registers a factory under a platform name. An
// existing registration for the same name is replaced.
func (r *Registry) RegisterFactory(name string, factory Factory) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.factories[name] = factory
	delete(r.adapters, name)
	r.logger.Debug("adapter factory registered", "platform", name)
}

// RegisterAdapter registers an already constructed adapter instance.
func (r *Registry) RegisterAdapter(a Adapter) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.adapters[a.Name()] = a
	r.logger.Debug("adapter registered", "platform", a.Name())
}

// Get returns the adapter for a platform name, creating it from its
// factory if necessary.
func (r *Registry) Get(name string) (Adapter, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if a, ok := r.adapters[name]; ok {
		return a, nil
	}

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("platform %s not registered", name)
	}

	a, err := factory(r.logger)
	if err != nil {
		return nil, fmt.Errorf("create adapter %s: %w", name, err)
	}

	r.adapters[name] = a
	r.logger.Debug("adapter created and cached", "platform", name)
	return a, nil
}

// Resolve maps an ordered list of platform names to adapter instances,
// preserving order.
func (r *Registry) Resolve(names []string) ([]Adapter, error) {
	adapters := make([]Adapter, 0, len(names))
	for _, name := range names {
		a, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}

// List returns the names of all registered platforms.
func (r *Registry) List() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	seen := make(map[string]bool, len(r.factories)+len(r.adapters))
	names := make([]string, 0, len(r.factories)+len(r.adapters))
	for name := range r.factories {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range r.adapters {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
