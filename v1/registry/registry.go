package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/embedgate/embedgate/v1/config"
	"github.com/embedgate/embedgate/v1/provider"
)

// Constructor builds a provider handle from a resolved descriptor.
// The default is provider.New; tests substitute fakes.
type Constructor func(desc *config.ClientDescriptor) (provider.API, error)

// RegisteredClient pairs a resolved descriptor with its constructed,
// reusable provider handle. Neither field is mutated after registration.
type RegisteredClient struct {
	Name       string
	Descriptor *config.ClientDescriptor
	Handle     provider.API
}

// Registry is the table of named clients. It is safe for concurrent use;
// the internal lock is held only for the duration of a register or lookup,
// never across a network call.
type Registry struct {
	mu        sync.RWMutex
	clients   map[string]*RegisteredClient
	construct Constructor
}

// New returns a Registry that constructs real provider handles.
func New() *Registry {
	return NewWithConstructor(func(desc *config.ClientDescriptor) (provider.API, error) {
		return provider.New(desc)
	})
}

// NewWithConstructor returns a Registry using a custom handle constructor.
func NewWithConstructor(construct Constructor) *Registry {
	return &Registry{
		clients:   make(map[string]*RegisteredClient),
		construct: construct,
	}
}

// Register resolves the descriptor into a live client under the given
// name. Handle construction is eager: configuration errors surface here,
// not on the first embedding call. Registering an existing name replaces
// the prior entry (last write wins) and closes the replaced handle.
func (r *Registry) Register(name string, desc *config.ClientDescriptor) error {
	handle, err := r.construct(desc)
	if err != nil {
		return fmt.Errorf("registry: client %q: %w", name, err)
	}

	r.mu.Lock()
	old := r.clients[name]
	r.clients[name] = &RegisteredClient{Name: name, Descriptor: desc, Handle: handle}
	r.mu.Unlock()

	if old != nil {
		// Best effort; the replaced handle holds no state worth failing over.
		_ = old.Handle.Close()
	}
	return nil
}

// Lookup returns the client registered under name.
func (r *Registry) Lookup(name string) (*RegisteredClient, error) {
	r.mu.RLock()
	client, ok := r.clients[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrClientNotFound, name)
	}
	return client, nil
}

// Names returns the registered client names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Close drops every registered client and closes its handle. There is no
// per-client destroy operation; all clients are torn down together at
// session end.
func (r *Registry) Close() error {
	r.mu.Lock()
	clients := r.clients
	r.clients = make(map[string]*RegisteredClient)
	r.mu.Unlock()

	var firstErr error
	for _, client := range clients {
		if err := client.Handle.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
