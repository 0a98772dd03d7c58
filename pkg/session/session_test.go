package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"tsp_router/pkg/graph"
	"tsp_router/pkg/routing"
)

func TestEmptySession(t *testing.T) {
	s := New()
	assert.Nil(t, s.Network())
	assert.Nil(t, s.Points())
}

func TestSetNetworkInvalidatesPoints(t *testing.T) {
	s := New()
	s.SetNetwork(&Network{Graph: &graph.Graph{}})
	s.SetPoints([]routing.SnappedPoint{{ID: 1}})
	assert.Len(t, s.Points(), 1)

	// A new network load replaces everything wholesale.
	s.SetNetwork(&Network{Graph: &graph.Graph{}})
	assert.Nil(t, s.Points())
}

func TestConcurrentReaders(t *testing.T) {
	s := New()
	s.SetNetwork(&Network{Graph: &graph.Graph{}})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Network()
				_ = s.Points()
			}
		}()
	}
	// One writer alongside the readers.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			s.SetPoints([]routing.SnappedPoint{{ID: j}})
		}
	}()
	wg.Wait()

	assert.NotNil(t, s.Network())
}
