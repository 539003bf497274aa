package skiplist

// Node is one tower of the list: an optional element plus forward links,
// one per level the node participates in. The slice index is the level; a
// nil entry means the chain ends there. Only the sentinel head carries no
// element.
type Node[T any] struct {
	elem    *T
	forward []*Node[T]
}

// newNode returns an element-free node whose tower spans height levels.
// The sentinel head is built this way.
func newNode[T any](height int) *Node[T] {
	if height < 0 {
		height = 0
	}
	return &Node[T]{forward: make([]*Node[T], height)}
}

// newElemNode returns a node carrying v with height forward slots.
func newElemNode[T any](v T, height int) *Node[T] {
	n := newNode[T](height)
	n.elem = &v
	return n
}

// Value returns the node's element. The second return is false for the
// sentinel head, which has none.
func (n *Node[T]) Value() (T, bool) {
	if n.elem == nil {
		var zero T
		return zero, false
	}
	return *n.elem, true
}

// Height returns the number of levels this node's tower spans.
func (n *Node[T]) Height() int {
	return len(n.forward)
}

// Next returns the forward link at level, or nil when level falls outside
// [0, Height()). Out-of-range access is not an error.
func (n *Node[T]) Next(level int) *Node[T] {
	if level < 0 || level >= len(n.forward) {
		return nil
	}
	return n.forward[level]
}

// SetNext overwrites the forward link at level. Out-of-range levels are
// silently ignored.
func (n *Node[T]) SetNext(level int, to *Node[T]) {
	if level < 0 || level >= len(n.forward) {
		return
	}
	n.forward[level] = to
}

// Grow appends one empty slot to the top of the tower.
func (n *Node[T]) Grow() {
	n.forward = append(n.forward, nil)
}

// MaybeGrow grows the tower by one level when the coin lands heads.
func (n *Node[T]) MaybeGrow(c Coin) {
	if c.Flip() {
		n.Grow()
	}
}

// Trim discards every slot at levels >= height and shrinks the tower to
// height. Targets outside [0, Height()) leave the tower unchanged.
func (n *Node[T]) Trim(height int) {
	if height < 0 || height >= len(n.forward) {
		return
	}
	for level := height; level < len(n.forward); level++ {
		n.forward[level] = nil
	}
	n.forward = n.forward[:height]
}
