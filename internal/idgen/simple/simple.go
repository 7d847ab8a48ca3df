package simple

import (
	"context"
	"sync"
)

// Generator hands out increasing numeric product ids.
type Generator struct {
	mu      sync.Mutex
	counter int
}

func New() *Generator {
	//nolint:exhaustruct
	return &Generator{}
}

func (g *Generator) GetID(_ context.Context) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++

	return g.counter, nil
}

// Reserve makes sure later ids are greater than id. Seeded records use it.
func (g *Generator) Reserve(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.counter {
		g.counter = id
	}
}
