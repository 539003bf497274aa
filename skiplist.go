package skiplist

import (
	"cmp"
	"math"
)

// CompareFunc reports the ordering of a and b with cmp.Compare semantics:
// negative when a sorts before b, zero when they are equal, positive when
// a sorts after b.
type CompareFunc[T any] func(a, b T) int

// operation tags the mutation that just ran, so height adaptation knows
// which direction the cap may move.
type operation int

const (
	opInsert operation = iota
	opDelete
)

// SkipList is an in-memory ordered multiset backed by probabilistic
// express lanes. The level-0 chain links every element in sorted order;
// higher levels thin out by repeated coin flips. The cap on tower height
// tracks ceil(log2(size)): it grows on inserts and trims every tower on
// deletes as the element count crosses powers of two.
//
// Equal elements may be inserted more than once; Delete removes the first
// match. A SkipList is not safe for concurrent use, callers sharing one
// across goroutines must serialize access themselves.
type SkipList[T any] struct {
	cmp          CompareFunc[T]
	head         *Node[T]
	maxHeight    int
	customHeight int // 0 means the construction height was auto-computed
	size         int
	coin         Coin
}

// New returns an empty list ordered by cmp.Compare.
func New[T cmp.Ordered](opts ...Option) *SkipList[T] {
	return NewFunc(cmp.Compare[T], opts...)
}

// NewFunc returns an empty list ordered by the given comparison.
func NewFunc[T any](compare CompareFunc[T], opts ...Option) *SkipList[T] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.coin == nil {
		cfg.coin = NewCoin(newRandomSeed())
	}

	height := cfg.height
	if height == 0 {
		height = calculateHeight(0)
	}

	return &SkipList[T]{
		cmp:          compare,
		head:         newNode[T](height),
		maxHeight:    height,
		customHeight: cfg.height,
		coin:         cfg.coin,
	}
}

// Insert adds v with a randomly drawn tower height: one level, plus one
// more per consecutive heads, up to one level past the current cap.
func (l *SkipList[T]) Insert(v T) {
	l.insert(v, l.randomHeight())
}

// InsertWithHeight adds v with an explicit tower height. Heights below 1
// clamp to 1 so the new node always joins the level-0 chain.
func (l *SkipList[T]) InsertWithHeight(v T, height int) {
	if height < 1 {
		height = 1
	}
	l.insert(v, height)
}

func (l *SkipList[T]) insert(v T, height int) {
	n := newElemNode(v, height)
	drops := l.findDropNodes(v, height)

	// Splice the tower in at every level that recorded a drop node.
	// Levels at or above the node's own height recorded none.
	for i, drop := range drops {
		if drop == nil {
			continue
		}
		n.SetNext(i, drop.Next(i))
		drop.SetNext(i, n)
	}

	l.size++
	l.attemptHeightChange(opInsert)
}

// Delete removes the first element equal to v and reports whether a
// removal happened. Absent values leave the list untouched.
func (l *SkipList[T]) Delete(v T) bool {
	drops := l.findDropNodes(v, l.maxHeight)

	// Resume the walk from the highest drop node that carries an element.
	// When the descent never left the head, that is the head itself.
	start := countElemDrops(drops)
	if start < 1 {
		start = 1
	}

	cand := drops[start-1].Next(0)
	for cand != nil && l.cmp(*cand.elem, v) != 0 {
		cand = cand.Next(0)
	}
	if cand == nil {
		return false
	}

	unlinked := false
	for i := 0; i < cand.Height() && i < len(drops); i++ {
		if drops[i] == nil {
			continue
		}
		drops[i].SetNext(i, cand.Next(i))
		unlinked = true
	}
	if unlinked {
		l.size--
		l.attemptHeightChange(opDelete)
	}
	return unlinked
}

// Contains reports whether an element equal to v is present.
func (l *SkipList[T]) Contains(v T) bool {
	curr := l.head
	for level := l.maxHeight - 1; level >= 0; level-- {
		for next := curr.Next(level); next != nil && l.cmp(*next.elem, v) < 0; next = curr.Next(level) {
			curr = next
		}
	}

	succ := curr.Next(0)
	if succ == nil {
		return false
	}
	sv, ok := succ.Value()
	return ok && l.cmp(sv, v) == 0
}

// Len returns the number of live elements.
func (l *SkipList[T]) Len() int { return l.size }

// Height returns the list's current cap on tower height. It always equals
// the head tower's height.
func (l *SkipList[T]) Height() int { return l.maxHeight }

// CustomHeight returns the fixed construction height and whether one was
// supplied.
func (l *SkipList[T]) CustomHeight() (int, bool) {
	return l.customHeight, l.customHeight != 0
}

// Head returns the sentinel node. It carries no element and its tower
// spans every active level. Following Next at level 0 from it visits all
// elements in sorted order.
func (l *SkipList[T]) Head() *Node[T] { return l.head }

// Compare orders a against b with the comparison the list was built on.
func (l *SkipList[T]) Compare(a, b T) int { return l.cmp(a, b) }

// findDropNodes locates, per level, the rightmost node whose element
// orders strictly before v. The descent is strictly top-down and the
// stopping node at each level seeds the walk one level below. Only levels
// below bound record their stop; entry 0 holds at least the head.
func (l *SkipList[T]) findDropNodes(v T, bound int) []*Node[T] {
	drops := make([]*Node[T], l.maxHeight)
	drops[0] = l.head

	curr := l.head
	for level := l.maxHeight - 1; level >= 0; level-- {
		for next := curr.Next(level); next != nil && l.cmp(*next.elem, v) < 0; next = curr.Next(level) {
			curr = next
		}
		if level < bound {
			drops[level] = curr
		}
	}
	return drops
}

// attemptHeightChange moves the height cap toward ceil(log2(size)) after
// a mutation. An insert raises the cap one level at a time; a delete
// trims every tower on the abandoned levels down to the target.
func (l *SkipList[T]) attemptHeightChange(op operation) {
	target := calculateHeight(l.size)

	switch {
	case op == opInsert && target > l.maxHeight:
		// Head gains the new level outright; every node chained on it
		// flips for its own extra level.
		l.head.Grow()
		for curr := l.head.Next(l.maxHeight); curr != nil; curr = curr.Next(l.maxHeight) {
			curr.MaybeGrow(l.coin)
		}
		l.maxHeight = target
	case op == opDelete && target < l.maxHeight:
		for curr := l.head; curr != nil; curr = curr.Next(target - 1) {
			curr.Trim(target)
		}
		l.maxHeight = target
	}
}

// randomHeight draws a tower height geometrically: start at one level and
// keep growing while the coin lands heads, stopping one level past the
// current cap at the latest.
func (l *SkipList[T]) randomHeight() int {
	h := 1
	for h <= l.maxHeight && l.coin.Flip() {
		h++
	}
	return h
}

// countElemDrops reports how many recorded drop nodes carry an element,
// which is the number of levels the descent advanced past the head on.
func countElemDrops[T any](drops []*Node[T]) int {
	count := 0
	for _, d := range drops {
		if d == nil {
			continue
		}
		if _, ok := d.Value(); ok {
			count++
		}
	}
	return count
}

// calculateHeight returns the tower-height cap for a list of the given
// size: a single level through the first element, ceil(log2(size))
// beyond that.
func calculateHeight(size int) int {
	if size <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(size))))
}
