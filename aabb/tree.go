package aabb

import "iter"

// A tree mapping bounding boxes to values. Used for cheap, imprecise collision
// detection: candidates found here can then be checked with a more expensive
// exact test.
//
// The zero value is an empty tree.
type Tree[V any] struct {
	root *treeNode[V]
	size int
}

// A node is a leaf when it has no children.
type treeNode[V any] struct {
	box         Aabb
	value       V
	left, right *treeNode[V]
}

func (n *treeNode[V]) isLeaf() bool {
	return n.left == nil
}

func (t *Tree[V]) Len() int {
	return t.size
}

// Insert a value with its box.
func (t *Tree[V]) Insert(box Aabb, value V) {
	leaf := &treeNode[V]{box: box, value: value}
	t.size++
	if t.root == nil {
		t.root = leaf
		return
	}
	t.root = t.root.insert(leaf)
}

// Descend towards whichever child grows least, or make a new parent here if
// that is cheaper than pushing the leaf down either side.
func (n *treeNode[V]) insert(leaf *treeNode[V]) *treeNode[V] {
	if n.isLeaf() {
		return &treeNode[V]{box: n.box.Join(leaf.box), left: n, right: leaf}
	}

	combined := n.box.Join(leaf.box)
	newParentCost := 2 * combined.Area()
	minPushDownCost := 2 * (combined.Area() - n.box.Area())
	leftCost := n.left.insertCost(leaf.box) + minPushDownCost
	rightCost := n.right.insertCost(leaf.box) + minPushDownCost

	switch {
	case newParentCost < leftCost && newParentCost < rightCost:
		return &treeNode[V]{box: combined, left: leaf, right: n}
	case leftCost < rightCost:
		n.left = n.left.insert(leaf)
	default:
		n.right = n.right.insert(leaf)
	}
	n.box = combined
	return n
}

func (n *treeNode[V]) insertCost(box Aabb) float64 {
	joined := n.box.Join(box).Area()
	if n.isLeaf() {
		return joined
	}
	return joined - n.box.Area()
}

// Overlapping yields every box in the tree whose interior intersects box,
// along with its value. Order is not defined.
func (t *Tree[V]) Overlapping(box Aabb) iter.Seq2[Aabb, V] {
	return func(yield func(Aabb, V) bool) {
		if t.root == nil || !t.root.box.Intersects(box) {
			return
		}
		stack := []*treeNode[V]{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n.isLeaf() {
				if !yield(n.box, n.value) {
					return
				}
				continue
			}
			if box.Intersects(n.left.box) {
				stack = append(stack, n.left)
			}
			if box.Intersects(n.right.box) {
				stack = append(stack, n.right)
			}
		}
	}
}

// AnyOverlap reports whether anything in the tree intersects box.
func (t *Tree[V]) AnyOverlap(box Aabb) bool {
	for range t.Overlapping(box) {
		return true
	}
	return false
}
