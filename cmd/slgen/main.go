// Command slgen builds a SLOPS stream file from a workload definition.
//
//	slgen -workload hot-read.json -out hot-read.slops
//
// The workload's op count and seed can be overridden per invocation, so
// one definition can fan out into a family of stream files.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/chrisrsipes/skiplists/datastream"
)

func main() {
	var (
		workloadPath = flag.String("workload", "", "workload definition JSON (required)")
		out          = flag.String("out", "", "output stream file (default <name>.slops)")
		nums         = flag.Int("nums", 0, "override the workload's op count")
		seed         = flag.Uint64("seed", 0, "override the workload's seed")
	)
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("slgen: ")

	if *workloadPath == "" {
		log.Fatal("-workload is required")
	}
	w, err := datastream.LoadWorkload(*workloadPath)
	if err != nil {
		log.Fatal(err)
	}
	if *nums > 0 {
		w.Ops = *nums
	}
	if *seed != 0 {
		w.Seed = *seed
	}

	path := *out
	if path == "" {
		path = w.Name + ".slops"
	}

	stream, err := w.Build()
	if err != nil {
		log.Fatal(err)
	}
	if err := datastream.WriteStream(path, stream); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %d ops over %d keys -> %s\n", w.Name, len(stream.Ops), len(stream.Weights), path)
}
