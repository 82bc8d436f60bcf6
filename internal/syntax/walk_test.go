package syntax

// Test Plan for Walk:
// - Depth-first and breadth-first visit orders
// - Returning false stops the walk
// - A nil root visits nothing
// - Deep trees are walked without recursion
// - Order names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

//	    r
//	   / \
//	  a   b
//	 / \   \
//	c   d   e
func sampleTree() *Node {
	return NewNode("r", "", Point{}, Point{},
		NewNode("a", "", Point{}, Point{}, leaf("c"), leaf("d")),
		NewNode("b", "", Point{}, Point{}, leaf("e")),
	)
}

func kindsVisited(root *Node, order Order, stopAt string) []string {
	var kinds []string
	Walk(root, order, func(n *Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != stopAt
	})
	return kinds
}

func TestWalk_Orders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		order Order
		want  []string
	}{
		{name: "depth first pre-order", order: DepthFirst, want: []string{"r", "a", "c", "d", "b", "e"}},
		{name: "breadth first", order: BreadthFirst, want: []string{"r", "a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, kindsVisited(sampleTree(), tt.order, ""))
		})
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"r", "a", "c"}, kindsVisited(sampleTree(), DepthFirst, "c"))
	assert.Equal(t, []string{"r", "a", "b"}, kindsVisited(sampleTree(), BreadthFirst, "b"))
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	called := false
	Walk(nil, DepthFirst, func(*Node) bool {
		called = true
		return true
	})
	assert.False(t, called)
}

func TestWalk_DeepTreeDoesNotRecurse(t *testing.T) {
	t.Parallel()

	n := leaf("leaf")
	for range 100_000 {
		n = NewNode("wrapper", "", Point{}, Point{}, n)
	}

	count := 0
	Walk(n, DepthFirst, func(*Node) bool {
		count++
		return true
	})
	assert.Equal(t, 100_001, count)
}

func TestOrder_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "depth_first", DepthFirst.String())
	assert.Equal(t, "breadth_first", BreadthFirst.String())
	assert.Equal(t, "unknown", Order(9).String())
}
