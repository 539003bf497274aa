package skiplist

import "testing"

func TestNodeValue(t *testing.T) {
	t.Parallel()

	sentinel := newNode[int](3)
	if v, ok := sentinel.Value(); ok || v != 0 {
		t.Errorf("expected zero value and false for the sentinel, got %v %t", v, ok)
	}

	n := newElemNode(42, 1)
	if v, ok := n.Value(); !ok || v != 42 {
		t.Errorf("expected 42 and true, got %v %t", v, ok)
	}
}

func TestNodeHeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		height int
		want   int
	}{
		{name: "regular", height: 4, want: 4},
		{name: "zero", height: 0, want: 0},
		{name: "negative clamps to zero", height: -3, want: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := newNode[string](tt.height).Height(); got != tt.want {
				t.Errorf("expected height %d, got %d", tt.want, got)
			}
		})
	}
}

func TestNodeNextOutOfRange(t *testing.T) {
	t.Parallel()

	n := newElemNode(1, 2)
	if got := n.Next(-1); got != nil {
		t.Errorf("expected nil below level 0, got %v", got)
	}
	if got := n.Next(2); got != nil {
		t.Errorf("expected nil at the tower top, got %v", got)
	}
}

func TestNodeSetNext(t *testing.T) {
	t.Parallel()

	a := newElemNode(1, 2)
	b := newElemNode(2, 1)

	a.SetNext(0, b)
	if a.Next(0) != b {
		t.Errorf("expected level 0 to link to b")
	}
	if a.Next(1) != nil {
		t.Errorf("expected level 1 to stay empty, got %v", a.Next(1))
	}

	// Out-of-range writes are silently dropped.
	a.SetNext(2, b)
	a.SetNext(-1, b)
	if a.Height() != 2 {
		t.Errorf("expected height 2, got %d", a.Height())
	}
	if a.Next(1) != nil || a.Next(2) != nil {
		t.Errorf("out-of-range SetNext must not link anything")
	}
}

func TestNodeGrow(t *testing.T) {
	t.Parallel()

	n := newElemNode(7, 1)
	n.SetNext(0, newElemNode(9, 1))

	n.Grow()
	if n.Height() != 2 {
		t.Errorf("expected height 2, got %d", n.Height())
	}
	if n.Next(1) != nil {
		t.Errorf("expected the new top slot to be empty, got %v", n.Next(1))
	}
	if n.Next(0) == nil {
		t.Errorf("growing must not disturb existing links")
	}
}

func TestNodeMaybeGrow(t *testing.T) {
	t.Parallel()

	heads := CoinFunc(func() bool { return true })
	tails := CoinFunc(func() bool { return false })

	n := newElemNode(1, 1)
	n.MaybeGrow(tails)
	if n.Height() != 1 {
		t.Errorf("expected tails to leave the tower at 1, got %d", n.Height())
	}
	n.MaybeGrow(heads)
	if n.Height() != 2 {
		t.Errorf("expected heads to grow the tower to 2, got %d", n.Height())
	}
}

func TestNodeTrim(t *testing.T) {
	t.Parallel()

	build := func() *Node[int] {
		n := newElemNode(5, 4)
		for i := 0; i < 4; i++ {
			n.SetNext(i, newElemNode(6, 4))
		}
		return n
	}

	t.Run("in range", func(t *testing.T) {
		t.Parallel()
		n := build()
		n.Trim(2)
		if n.Height() != 2 {
			t.Errorf("expected height 2, got %d", n.Height())
		}
		if n.Next(2) != nil || n.Next(3) != nil {
			t.Errorf("expected removed levels to read as absent")
		}
		if n.Next(0) == nil || n.Next(1) == nil {
			t.Errorf("expected surviving levels to keep their links")
		}
	})

	t.Run("to zero", func(t *testing.T) {
		t.Parallel()
		n := build()
		n.Trim(0)
		if n.Height() != 0 {
			t.Errorf("expected height 0, got %d", n.Height())
		}
	})

	t.Run("at or above height is a no-op", func(t *testing.T) {
		t.Parallel()
		n := build()
		n.Trim(4)
		n.Trim(9)
		if n.Height() != 4 {
			t.Errorf("expected height 4, got %d", n.Height())
		}
	})

	t.Run("negative is a no-op", func(t *testing.T) {
		t.Parallel()
		n := build()
		n.Trim(-1)
		if n.Height() != 4 {
			t.Errorf("expected height 4, got %d", n.Height())
		}
	})
}
