// Package registry maps client-state type URLs and client types to the
// light-client implementations serving them. The registry is an explicit
// mapping owned by the host and passed by reference into each handler call;
// there is no process-wide singleton.
package registry

import (
	"fmt"

	"github.com/teebridge/teelc/modules/core/exported"
)

// Registry resolves light-client implementations. Registration is keyed by
// the client-state type URL; a secondary index by client type serves
// by-client-ID resolution.
type Registry struct {
	byTypeURL    map[string]exported.LightClient
	byClientType map[string]exported.LightClient
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byTypeURL:    make(map[string]exported.LightClient),
		byClientType: make(map[string]exported.LightClient),
	}
}

// AddRoute registers a light client for the given client-state type URL. It
// returns the Registry so AddRoute calls can be linked. It panics on
// duplicate registration: routes are wired once at host startup and a
// duplicate is a programmer error, not runtime input.
func (r *Registry) AddRoute(clientStateTypeURL string, lc exported.LightClient) *Registry {
	if _, ok := r.byTypeURL[clientStateTypeURL]; ok {
		panic(fmt.Errorf("route %s has already been registered", clientStateTypeURL))
	}
	clientType := lc.ClientType()
	if _, ok := r.byClientType[clientType]; ok {
		panic(fmt.Errorf("client type %s has already been registered", clientType))
	}

	r.byTypeURL[clientStateTypeURL] = lc
	r.byClientType[clientType] = lc
	return r
}

// GetRouteByTypeURL returns the light client registered for a client-state
// type URL.
func (r *Registry) GetRouteByTypeURL(clientStateTypeURL string) (exported.LightClient, bool) {
	lc, ok := r.byTypeURL[clientStateTypeURL]
	return lc, ok
}

// GetRoute returns the light client registered for a client type.
func (r *Registry) GetRoute(clientType string) (exported.LightClient, bool) {
	lc, ok := r.byClientType[clientType]
	return lc, ok
}
