package datastream

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed workload.schema.json
var workloadSchemaJSON []byte

var (
	workloadSchemaOnce sync.Once
	workloadSchema     *jsonschema.Schema
	workloadSchemaErr  error
)

func compiledWorkloadSchema() (*jsonschema.Schema, error) {
	workloadSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("workload.schema.json", bytes.NewReader(workloadSchemaJSON)); err != nil {
			workloadSchemaErr = err
			return
		}
		workloadSchema, workloadSchemaErr = compiler.Compile("workload.schema.json")
	})
	return workloadSchema, workloadSchemaErr
}

// Distribution names accepted in workload definitions.
const (
	DistZipf    = "zipf"
	DistUniform = "uniform"
)

// Default zipf parameters applied when a zipf workload leaves them out.
const (
	defaultZipfS = 1.2
	defaultZipfV = 1.0
)

// ZipfParams tunes the zipf rank distribution of a workload.
type ZipfParams struct {
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// Workload describes a reproducible operation stream: how many distinct
// elements to touch, how their ranks are drawn, and the operation mix.
type Workload struct {
	Name         string      `json:"name"`
	Seed         uint64      `json:"seed"`
	Elements     int         `json:"elements"`
	Distribution string      `json:"distribution"`
	Zipf         *ZipfParams `json:"zipf,omitempty"`
	// Ops is the total stream length; it must cover every element at
	// least once.
	Ops int `json:"ops"`
	// WarmupFraction sizes the stream prefix that touches every
	// element; it never shrinks below Elements draws.
	WarmupFraction float64 `json:"warmup_fraction"`
	// DeleteRatio is the chance a draw of a present key deletes it
	// instead of querying it.
	DeleteRatio float64 `json:"delete_ratio"`
}

// ParseWorkload validates data against the embedded workload schema and
// unmarshals it.
func ParseWorkload(data []byte) (*Workload, error) {
	schema, err := compiledWorkloadSchema()
	if err != nil {
		return nil, fmt.Errorf("datastream: compile workload schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("datastream: parse workload: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		slog.Debug("workload rejected by schema", "error", err)
		return nil, fmt.Errorf("datastream: validate workload: %w", err)
	}

	var w Workload
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("datastream: parse workload: %w", err)
	}
	slog.Debug("workload parsed", "name", w.Name, "elements", w.Elements, "ops", w.Ops)
	return &w, nil
}

// LoadWorkload reads and parses a workload definition file.
func LoadWorkload(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWorkload(data)
}

// Stream is a generated operation stream together with the distribution
// its keys were drawn from.
type Stream struct {
	// Weights maps each key to its draw probability.
	Weights map[int64]float64
	// Ops is the operation sequence.
	Ops []Operation
}

// Sequence returns a replay cursor over the stream's operations.
func (s *Stream) Sequence() *Sequence { return NewSequence(s.Ops) }

// Build generates the workload's operation stream. The stream keeps a
// present set while it is laid out, so every key's first touch is an
// insert and deletes only ever hit present keys; a later draw of a
// deleted key reinserts it. The warmup prefix covers every key at least
// once, in shuffled order.
func (w *Workload) Build() (*Stream, error) {
	if w.Elements <= 0 {
		return nil, fmt.Errorf("datastream: invalid element count %d", w.Elements)
	}
	if w.Ops < w.Elements {
		return nil, fmt.Errorf("datastream: ops %d cannot cover %d elements", w.Ops, w.Elements)
	}
	if w.DeleteRatio < 0 || w.DeleteRatio > 1 {
		return nil, fmt.Errorf("datastream: delete ratio %v outside [0, 1]", w.DeleteRatio)
	}
	if w.WarmupFraction < 0 || w.WarmupFraction > 1 {
		return nil, fmt.Errorf("datastream: warmup fraction %v outside [0, 1]", w.WarmupFraction)
	}

	var source RankSource
	switch w.Distribution {
	case DistZipf:
		p := w.Zipf
		if p == nil {
			p = &ZipfParams{S: defaultZipfS, V: defaultZipfV}
		}
		z, err := NewZipfRanks(w.Elements, p.S, p.V, w.Seed)
		if err != nil {
			return nil, err
		}
		source = z
	case DistUniform:
		u, err := NewUniformRanks(w.Elements, w.Seed)
		if err != nil {
			return nil, err
		}
		source = u
	default:
		return nil, fmt.Errorf("datastream: unknown distribution %q", w.Distribution)
	}

	// Stream index 1 keeps the op mixing independent of the rank draws.
	rng := rand.New(rand.NewPCG(w.Seed, 1))

	// Ranks are hot-first; shuffling the key assignment spreads the hot
	// keys through the key space.
	rankToKey := make([]int64, w.Elements)
	for i := range rankToKey {
		rankToKey[i] = int64(i)
	}
	rng.Shuffle(len(rankToKey), func(i, j int) {
		rankToKey[i], rankToKey[j] = rankToKey[j], rankToKey[i]
	})

	weights := source.Weights()
	dist := make(map[int64]float64, w.Elements)
	for rank, key := range rankToKey {
		dist[key] = weights[rank]
	}

	warmup := int(float64(w.Ops) * w.WarmupFraction)
	if warmup < w.Elements {
		warmup = w.Elements
	}
	warmupKeys := make([]int64, warmup)
	copy(warmupKeys, rankToKey)
	for i := w.Elements; i < warmup; i++ {
		warmupKeys[i] = rankToKey[source.Next()]
	}
	rng.Shuffle(len(warmupKeys), func(i, j int) {
		warmupKeys[i], warmupKeys[j] = warmupKeys[j], warmupKeys[i]
	})

	ops := make([]Operation, 0, w.Ops)
	present := make(map[int64]bool, w.Elements)
	appendOp := func(key int64) {
		var typ OpType
		switch {
		case !present[key]:
			typ = OpInsert
			present[key] = true
		case rng.Float64() < w.DeleteRatio:
			typ = OpDelete
			present[key] = false
		default:
			typ = OpContains
		}
		ops = append(ops, Operation{Type: typ, Key: key})
	}

	for _, key := range warmupKeys {
		appendOp(key)
	}
	for i := warmup; i < w.Ops; i++ {
		appendOp(rankToKey[source.Next()])
	}

	return &Stream{Weights: dist, Ops: ops}, nil
}
