// Package analysis derives structure statistics from a skip list through
// its exported node accessors. Nothing here mutates the list.
package analysis

import (
	"fmt"
	"io"
	"strings"

	skiplist "github.com/chrisrsipes/skiplists"
)

// Stats summarizes the shape of a list at one point in time.
type Stats struct {
	// Len is the number of live elements.
	Len int
	// Height is the list's tower-height cap.
	Height int
	// LevelCounts holds the number of towers linked on each level,
	// indexed by level.
	LevelCounts []int
	// MeanTower is the average allocated tower height across elements,
	// 0 for an empty list.
	MeanTower float64
	// MaxTower is the tallest allocated tower among elements.
	MaxTower int
}

// Summary collects Stats for l in one pass over its chains.
func Summary[T any](l *skiplist.SkipList[T]) Stats {
	s := Stats{
		Len:         l.Len(),
		Height:      l.Height(),
		LevelCounts: LevelCounts(l),
	}
	total := 0
	for n := l.Head().Next(0); n != nil; n = n.Next(0) {
		h := n.Height()
		total += h
		if h > s.MaxTower {
			s.MaxTower = h
		}
	}
	if s.Len > 0 {
		s.MeanTower = float64(total) / float64(s.Len)
	}
	return s
}

// LevelCounts reports how many towers each level links, indexed by
// level. Entry 0 always equals the list's length.
func LevelCounts[T any](l *skiplist.SkipList[T]) []int {
	counts := make([]int, l.Height())
	for level := range counts {
		for n := l.Head().Next(level); n != nil; n = n.Next(level) {
			counts[level]++
		}
	}
	return counts
}

// SearchSteps reports the number of pointer moves a lookup for target
// performs: one per forward advance plus one per level descended. The
// count is exact for the list's current shape.
func SearchSteps[T any](l *skiplist.SkipList[T], target T) int {
	steps := 0
	curr := l.Head()
	for level := l.Height() - 1; level >= 0; level-- {
		for next := curr.Next(level); next != nil; next = curr.Next(level) {
			v, _ := next.Value()
			if l.Compare(v, target) >= 0 {
				break
			}
			curr = next
			steps++
		}
		if level > 0 {
			steps++
		}
	}
	return steps
}

// ExpectedSteps returns the probability-weighted mean of SearchSteps
// over the targets in dist. Weights need not sum to 1; they are
// normalized, and entries with non-positive weight are skipped. An
// empty distribution yields 0.
func ExpectedSteps[T comparable](l *skiplist.SkipList[T], dist map[T]float64) float64 {
	var weighted, total float64
	for v, p := range dist {
		if p <= 0 {
			continue
		}
		weighted += float64(SearchSteps(l, v)) * p
		total += p
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// Fprint writes a lane sketch of l to w, one line per level from the top
// lane down. Each element occupies a fixed column; dashes mark lanes
// that skip it. maxLevels bounds the lanes shown and maxNodes the
// columns; zero or negative means unbounded, and a trailing ellipsis
// marks a truncated ground lane.
func Fprint[T any](w io.Writer, l *skiplist.SkipList[T], maxLevels, maxNodes int) error {
	levels := l.Height()
	if maxLevels > 0 && maxLevels < levels {
		levels = maxLevels
	}

	var cells []string
	index := make(map[*skiplist.Node[T]]int)
	truncated := false
	for n := l.Head().Next(0); n != nil; n = n.Next(0) {
		if maxNodes > 0 && len(cells) == maxNodes {
			truncated = true
			break
		}
		v, _ := n.Value()
		index[n] = len(cells)
		cells = append(cells, fmt.Sprint(v))
	}

	width := 1
	for _, c := range cells {
		if len(c) > width {
			width = len(c)
		}
	}

	for level := levels - 1; level >= 0; level-- {
		row := make([]string, len(cells))
		for i := range row {
			row[i] = strings.Repeat("-", width)
		}
		for n := l.Head().Next(level); n != nil; n = n.Next(level) {
			i, ok := index[n]
			if !ok {
				// Order carries past the cutoff, so the rest of the
				// lane is cut too.
				break
			}
			row[i] = fmt.Sprintf("%*s", width, cells[i])
		}
		line := fmt.Sprintf("L%d", level)
		if len(row) > 0 {
			line += "  " + strings.Join(row, "  ")
		}
		if level == 0 && truncated {
			line += "  ..."
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
