package syntax

// Order selects how Walk visits a tree.
type Order int

const (
	// DepthFirst visits a node before its children, children in source order.
	DepthFirst Order = iota
	// BreadthFirst visits the tree level by level, left to right.
	BreadthFirst
)

// String returns the order name used in log records.
func (o Order) String() string {
	switch o {
	case DepthFirst:
		return "depth_first"
	case BreadthFirst:
		return "breadth_first"
	default:
		return "unknown"
	}
}

// Walk visits every node reachable from root in the given order.
// The visitor returns false to stop the walk entirely.
// Both orders are iterative so deeply nested inputs cannot exhaust the stack.
func Walk(root *Node, order Order, visit func(*Node) bool) {
	if root == nil {
		return
	}
	if order == BreadthFirst {
		walkBreadthFirst(root, visit)
		return
	}
	walkDepthFirst(root, visit)
}

func walkDepthFirst(root *Node, visit func(*Node) bool) {
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(n) {
			return
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
}

func walkBreadthFirst(root *Node, visit func(*Node) bool) {
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if !visit(n) {
			return
		}
		queue = append(queue, n.children...)
	}
}
