// Package datastream models replayable operation streams for driving a
// skip list: rank samplers over fixed distributions, schema-validated
// workload definitions, and a compact on-disk stream format.
package datastream

// OpType identifies one kind of list operation in a stream.
type OpType uint8

const (
	OpInsert OpType = iota
	OpDelete
	OpContains
)

func (t OpType) String() string {
	switch t {
	case OpInsert:
		return "Insert"
	case OpDelete:
		return "Delete"
	case OpContains:
		return "Contains"
	default:
		return "Unknown"
	}
}

// Operation is one step of a stream.
type Operation struct {
	Type OpType
	Key  int64
}

// Sequence replays a fixed operation stream in order.
type Sequence struct {
	ops []Operation
	pos int
}

// NewSequence copies ops into a replay cursor positioned at the start.
func NewSequence(ops []Operation) *Sequence {
	cp := make([]Operation, len(ops))
	copy(cp, ops)
	return &Sequence{ops: cp}
}

// Next returns the next operation, or false once the stream is done.
func (s *Sequence) Next() (Operation, bool) {
	if s.pos >= len(s.ops) {
		return Operation{}, false
	}
	op := s.ops[s.pos]
	s.pos++
	return op, true
}

// NextN returns up to n following operations as a fresh slice, nil once
// the stream is done.
func (s *Sequence) NextN(n int) []Operation {
	if n <= 0 || s.pos >= len(s.ops) {
		return nil
	}
	end := s.pos + n
	if end > len(s.ops) {
		end = len(s.ops)
	}
	cp := make([]Operation, end-s.pos)
	copy(cp, s.ops[s.pos:end])
	s.pos = end
	return cp
}

// Reset moves the cursor back to the start.
func (s *Sequence) Reset() { s.pos = 0 }

// Len returns the total number of operations in the stream.
func (s *Sequence) Len() int { return len(s.ops) }
