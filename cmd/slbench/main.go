// Command slbench replays an operation stream against a skip list and
// reports per-run timing and structure statistics.
//
//	slbench -workload hot-read.json -runs 5
//	slbench -stream hot-read.slops -elems words -print
//
// Streams come either from a workload definition built on the fly or
// from a SLOPS file written by slgen. The words mode maps every key to
// a distinct word and orders the list with a string comparator.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/emirpasic/gods/utils"
	"github.com/olekukonko/tablewriter"

	skiplist "github.com/chrisrsipes/skiplists"
	"github.com/chrisrsipes/skiplists/analysis"
	"github.com/chrisrsipes/skiplists/datastream"
)

type runResult struct {
	run       int
	elapsed   time.Duration
	ops       int
	inserts   int
	deletes   int
	hits      int
	height    int
	meanSteps float64
}

func main() {
	var (
		workloadPath = flag.String("workload", "", "workload definition JSON to build and replay")
		streamPath   = flag.String("stream", "", "SLOPS stream file to replay")
		runs         = flag.Int("runs", 5, "how many times to replay the stream")
		elems        = flag.String("elems", "ints", "element kind: ints or words")
		seed         = flag.Uint64("seed", 1, "seed for the list's level coin")
		sketch       = flag.Bool("print", false, "render the list sketch after the last run")
	)
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("slbench: ")

	stream, name := loadStream(*workloadPath, *streamPath)
	fmt.Printf("%s: %d ops over %d keys\n", name, len(stream.Ops), len(stream.Weights))

	var results []runResult
	switch *elems {
	case "ints":
		results = replayInts(stream, *runs, *seed, *sketch)
	case "words":
		results = replayWords(stream, *runs, *seed, *sketch)
	default:
		log.Fatalf("unknown element kind %q", *elems)
	}

	render(os.Stdout, results)
}

func loadStream(workloadPath, streamPath string) (*datastream.Stream, string) {
	switch {
	case workloadPath != "" && streamPath != "":
		log.Fatal("use either -workload or -stream, not both")
	case workloadPath != "":
		w, err := datastream.LoadWorkload(workloadPath)
		if err != nil {
			log.Fatal(err)
		}
		s, err := w.Build()
		if err != nil {
			log.Fatal(err)
		}
		return s, w.Name
	case streamPath != "":
		s, err := datastream.ReadStream(streamPath)
		if err != nil {
			log.Fatal(err)
		}
		return s, filepath.Base(streamPath)
	}
	log.Fatal("one of -workload or -stream is required")
	return nil, ""
}

func replayInts(stream *datastream.Stream, runs int, seed uint64, sketch bool) []runResult {
	results := make([]runResult, 0, runs)
	for run := 1; run <= runs; run++ {
		l := skiplist.New[int64](skiplist.WithCoin(skiplist.NewCoin(seed + uint64(run))))

		res := replay(l, stream.Sequence(), func(k int64) int64 { return k })
		res.run = run
		res.height = l.Height()
		res.meanSteps = analysis.ExpectedSteps(l, stream.Weights)
		results = append(results, res)

		if sketch && run == runs {
			if err := analysis.Fprint(os.Stdout, l, 8, 16); err != nil {
				log.Fatal(err)
			}
		}
	}
	return results
}

func replayWords(stream *datastream.Stream, runs int, seed uint64, sketch bool) []runResult {
	keyWords := wordKeys(stream)
	dist := make(map[string]float64, len(stream.Weights))
	for k, w := range stream.Weights {
		dist[keyWords[k]] = w
	}

	compare := func(a, b string) int { return utils.StringComparator(a, b) }

	results := make([]runResult, 0, runs)
	for run := 1; run <= runs; run++ {
		l := skiplist.NewFunc(compare, skiplist.WithCoin(skiplist.NewCoin(seed+uint64(run))))

		res := replay(l, stream.Sequence(), func(k int64) string { return keyWords[k] })
		res.run = run
		res.height = l.Height()
		res.meanSteps = analysis.ExpectedSteps(l, dist)
		results = append(results, res)

		if sketch && run == runs {
			if err := analysis.Fprint(os.Stdout, l, 8, 16); err != nil {
				log.Fatal(err)
			}
		}
	}
	return results
}

// wordKeys maps every key the stream touches to a distinct word, in
// ascending key order so the mapping is reproducible.
func wordKeys(stream *datastream.Stream) map[int64]string {
	distinct := make(map[int64]struct{}, len(stream.Weights))
	for k := range stream.Weights {
		distinct[k] = struct{}{}
	}
	for _, op := range stream.Ops {
		distinct[op.Key] = struct{}{}
	}
	keys := make([]int64, 0, len(distinct))
	for k := range distinct {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	words := datastream.Words(len(keys))
	m := make(map[int64]string, len(keys))
	for i, k := range keys {
		m[k] = words[i]
	}
	return m
}

func replay[T any](l *skiplist.SkipList[T], seq *datastream.Sequence, key func(int64) T) runResult {
	res := runResult{ops: seq.Len()}
	start := time.Now()
	for op, ok := seq.Next(); ok; op, ok = seq.Next() {
		v := key(op.Key)
		switch op.Type {
		case datastream.OpInsert:
			l.Insert(v)
			res.inserts++
		case datastream.OpDelete:
			if l.Delete(v) {
				res.deletes++
			}
		case datastream.OpContains:
			if l.Contains(v) {
				res.hits++
			}
		}
	}
	res.elapsed = time.Since(start)
	return res
}

func render(w io.Writer, results []runResult) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		opsPerSec := float64(r.ops) / r.elapsed.Seconds()
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.run),
			fmt.Sprintf("%.3f", float64(r.elapsed.Microseconds())/1000),
			fmt.Sprintf("%.0f", opsPerSec),
			fmt.Sprintf("%d", r.inserts),
			fmt.Sprintf("%d", r.deletes),
			fmt.Sprintf("%d", r.hits),
			fmt.Sprintf("%d", r.height),
			fmt.Sprintf("%.3f", r.meanSteps),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Run", "Ms", "Ops/s", "Inserts", "Deletes", "Hits", "Height", "MeanSteps"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}
