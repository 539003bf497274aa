package analysis_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skiplist "github.com/chrisrsipes/skiplists"
	"github.com/chrisrsipes/skiplists/analysis"
)

// fixedList builds a list with a hand-picked shape:
//
//	L2  10  --  --  --
//	L1  10  20  --  40
//	L0  10  20  30  40
func fixedList(t *testing.T) *skiplist.SkipList[int] {
	t.Helper()
	tails := skiplist.CoinFunc(func() bool { return false })
	l := skiplist.New[int](skiplist.WithHeight(3), skiplist.WithCoin(tails))
	l.InsertWithHeight(10, 3)
	l.InsertWithHeight(20, 2)
	l.InsertWithHeight(30, 1)
	l.InsertWithHeight(40, 2)
	return l
}

func TestSummary(t *testing.T) {
	t.Parallel()

	s := analysis.Summary(fixedList(t))
	require.Equal(t, 4, s.Len)
	assert.Equal(t, 3, s.Height)
	assert.Equal(t, []int{4, 3, 1}, s.LevelCounts)
	assert.InDelta(t, 2.0, s.MeanTower, 1e-9)
	assert.Equal(t, 3, s.MaxTower)
}

func TestSummaryEmpty(t *testing.T) {
	t.Parallel()

	s := analysis.Summary(skiplist.New[int]())
	assert.Equal(t, 0, s.Len)
	assert.Equal(t, 1, s.Height)
	assert.Equal(t, []int{0}, s.LevelCounts)
	assert.Zero(t, s.MeanTower)
	assert.Zero(t, s.MaxTower)
}

func TestLevelCounts(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{4, 3, 1}, analysis.LevelCounts(fixedList(t)))
	assert.Equal(t, []int{0}, analysis.LevelCounts(skiplist.New[string]()))
}

func TestSearchSteps(t *testing.T) {
	t.Parallel()

	l := fixedList(t)
	tests := []struct {
		target int
		want   int
	}{
		{target: 5, want: 2},
		{target: 10, want: 2},
		{target: 30, want: 4},
		{target: 40, want: 5},
		{target: 50, want: 5},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, analysis.SearchSteps(l, tt.target),
			"steps to %d", tt.target)
	}

	assert.Zero(t, analysis.SearchSteps(skiplist.New[int](), 7))
}

func TestExpectedSteps(t *testing.T) {
	t.Parallel()

	l := fixedList(t)

	assert.InDelta(t, 3.0, analysis.ExpectedSteps(l, map[int]float64{10: 0.5, 30: 0.5}), 1e-9)

	// Weights are normalized, not assumed to sum to 1.
	assert.InDelta(t, 3.5, analysis.ExpectedSteps(l, map[int]float64{10: 1, 30: 3}), 1e-9)

	// Non-positive weights drop out.
	assert.InDelta(t, 4.0, analysis.ExpectedSteps(l, map[int]float64{10: -1, 30: 2}), 1e-9)

	assert.Zero(t, analysis.ExpectedSteps(l, nil))
}

func TestFprint(t *testing.T) {
	t.Parallel()

	t.Run("full sketch", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, analysis.Fprint(&buf, fixedList(t), 0, 0))
		want := "L2  10  --  --  --\n" +
			"L1  10  20  --  40\n" +
			"L0  10  20  30  40\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("capped levels", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, analysis.Fprint(&buf, fixedList(t), 2, 0))
		want := "L1  10  20  --  40\n" +
			"L0  10  20  30  40\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("capped nodes", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, analysis.Fprint(&buf, fixedList(t), 0, 2))
		want := "L2  10  --\n" +
			"L1  10  20\n" +
			"L0  10  20  ...\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, analysis.Fprint(&buf, skiplist.New[int](), 0, 0))
		assert.Equal(t, "L0\n", buf.String())
	})
}
