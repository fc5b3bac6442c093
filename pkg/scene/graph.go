package scene

import (
	"slices"

	"github.com/taigrr/diorama/pkg/shader"
)

// Graph is an ordered list of drawables. Order is draw order; occlusion
// between 3D items is left to the depth test.
type Graph struct {
	items []Drawable
}

// NewGraph creates a graph holding items.
func NewGraph(items ...Drawable) *Graph {
	return &Graph{items: slices.Clone(items)}
}

// Add appends drawables.
func (g *Graph) Add(d ...Drawable) {
	g.items = append(g.items, d...)
}

// Len returns the number of drawables.
func (g *Graph) Len() int {
	return len(g.items)
}

// Items returns a copy of the drawable list.
func (g *Graph) Items() []Drawable {
	return slices.Clone(g.items)
}

// Count returns how many drawables are of kind k.
func (g *Graph) Count(k Kind) int {
	n := 0
	for _, d := range g.items {
		if d.Kind() == k {
			n++
		}
	}
	return n
}

// Clear drops every drawable at once.
func (g *Graph) Clear() {
	g.items = nil
}

// Draw draws every item in order.
func (g *Graph) Draw(c *shader.Contract) {
	for _, d := range g.items {
		d.Draw(c)
	}
}
