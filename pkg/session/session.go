// Package session holds the per-process state shared between requests: the
// loaded road network and the snapped point list. One producer writes (the
// upload handlers), many solve requests read; replacement is wholesale.
package session

import (
	"sync"

	"github.com/paulmach/orb/geojson"

	"tsp_router/pkg/graph"
	"tsp_router/pkg/routing"
)

// Network bundles a loaded road graph with its derived artifacts.
type Network struct {
	Graph   *graph.Graph
	GeoJSON *geojson.FeatureCollection
	Bounds  graph.Bounds
	Snapper *routing.Snapper
}

// Session is the process-wide state, guarded by a read/write lock.
type Session struct {
	mu      sync.RWMutex
	network *Network
	points  []routing.SnappedPoint
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// SetNetwork replaces the loaded network and invalidates any snapped points
// derived from the previous one.
func (s *Session) SetNetwork(n *Network) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.network = n
	s.points = nil
}

// Network returns the current network, or nil when none is loaded.
func (s *Session) Network() *Network {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.network
}

// SetPoints replaces the snapped point list.
func (s *Session) SetPoints(points []routing.SnappedPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points = points
}

// Points returns the current snapped point list, or nil when none is loaded.
func (s *Session) Points() []routing.SnappedPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.points
}
