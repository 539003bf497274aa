package datastream

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/golang/snappy"
)

// Stream file layout ("SLOPS", LittleEndian):
//
//	[8]byte  magic
//	uint16   version
//	uint16   reserved
//	uint32   weight count, then per entry key int64 + weight float64,
//	         ascending by key
//	uint64   op count
//	blocks of 9-byte records (type uint8 + key int64), each block
//	snappy-compressed and framed as
//	uint32 raw length + uint32 compressed length + block bytes
var (
	slopsMagic   = [8]byte{'S', 'L', 'O', 'P', 'S', 0, 1, 0}
	slopsVersion = uint16(1)
)

var (
	// ErrBadMagic reports a stream file that does not start with the
	// SLOPS magic.
	ErrBadMagic = errors.New("datastream: bad stream file magic")
	// ErrBadVersion reports a stream file version this package cannot
	// read.
	ErrBadVersion = errors.New("datastream: unsupported stream file version")
)

const (
	opWireSize  = 9
	opsPerBlock = 4096
)

// WriteStream writes s to path in the SLOPS format. Identical streams
// produce byte-identical files.
func WriteStream(path string, s *Stream) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)

	if err := writeStreamTo(bw, s); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeStreamTo(w io.Writer, s *Stream) error {
	if _, err := w.Write(slopsMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, slopsVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil { // reserved
		return err
	}

	keys := make([]int64, 0, len(s.Weights))
	for k := range s.Weights {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	if err := binary.Write(w, binary.LittleEndian, uint32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := binary.Write(w, binary.LittleEndian, k); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, s.Weights[k]); err != nil {
			return err
		}
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(s.Ops))); err != nil {
		return err
	}

	raw := make([]byte, 0, opsPerBlock*opWireSize)
	var compressed []byte
	flush := func() error {
		if len(raw) == 0 {
			return nil
		}
		compressed = snappy.Encode(compressed, raw)
		if err := binary.Write(w, binary.LittleEndian, uint32(len(raw))); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(compressed))); err != nil {
			return err
		}
		if _, err := w.Write(compressed); err != nil {
			return err
		}
		raw = raw[:0]
		return nil
	}

	for _, op := range s.Ops {
		raw = append(raw, byte(op.Type))
		raw = binary.LittleEndian.AppendUint64(raw, uint64(op.Key))
		if len(raw) >= opsPerBlock*opWireSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

// ReadStream reads a SLOPS file back into a Stream.
func ReadStream(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readStreamFrom(bufio.NewReader(f))
}

func readStreamFrom(r io.Reader) (*Stream, error) {
	var magic [8]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("datastream: read stream header: %w", err)
	}
	if magic != slopsMagic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, magic[:])
	}
	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("datastream: read stream header: %w", err)
	}
	if version != slopsVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}
	var reserved uint16
	if err := binary.Read(r, binary.LittleEndian, &reserved); err != nil {
		return nil, fmt.Errorf("datastream: read stream header: %w", err)
	}

	var weightCount uint32
	if err := binary.Read(r, binary.LittleEndian, &weightCount); err != nil {
		return nil, fmt.Errorf("datastream: read weight table: %w", err)
	}
	weights := make(map[int64]float64, weightCount)
	for i := uint32(0); i < weightCount; i++ {
		var key int64
		var weight float64
		if err := binary.Read(r, binary.LittleEndian, &key); err != nil {
			return nil, fmt.Errorf("datastream: read weight table: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &weight); err != nil {
			return nil, fmt.Errorf("datastream: read weight table: %w", err)
		}
		weights[key] = weight
	}

	var opCount uint64
	if err := binary.Read(r, binary.LittleEndian, &opCount); err != nil {
		return nil, fmt.Errorf("datastream: read op count: %w", err)
	}

	// The count comes from the file, so cap the preallocation at one
	// block's worth.
	capHint := opCount
	if capHint > opsPerBlock {
		capHint = opsPerBlock
	}
	ops := make([]Operation, 0, capHint)
	var compressed []byte
	for uint64(len(ops)) < opCount {
		var rawLen, compLen uint32
		if err := binary.Read(r, binary.LittleEndian, &rawLen); err != nil {
			return nil, fmt.Errorf("datastream: read block header: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &compLen); err != nil {
			return nil, fmt.Errorf("datastream: read block header: %w", err)
		}
		if rawLen == 0 || rawLen%opWireSize != 0 {
			return nil, fmt.Errorf("datastream: corrupt block: raw length %d", rawLen)
		}
		if cap(compressed) < int(compLen) {
			compressed = make([]byte, compLen)
		}
		compressed = compressed[:compLen]
		if _, err := io.ReadFull(r, compressed); err != nil {
			return nil, fmt.Errorf("datastream: read block: %w", err)
		}
		raw, err := snappy.Decode(nil, compressed)
		if err != nil {
			return nil, fmt.Errorf("datastream: decompress block: %w", err)
		}
		if len(raw) != int(rawLen) {
			return nil, fmt.Errorf("datastream: corrupt block: got %d raw bytes, header says %d", len(raw), rawLen)
		}
		for off := 0; off < len(raw); off += opWireSize {
			ops = append(ops, Operation{
				Type: OpType(raw[off]),
				Key:  int64(binary.LittleEndian.Uint64(raw[off+1 : off+opWireSize])),
			})
		}
	}
	if uint64(len(ops)) != opCount {
		return nil, fmt.Errorf("datastream: corrupt stream: got %d ops, header says %d", len(ops), opCount)
	}

	return &Stream{Weights: weights, Ops: ops}, nil
}
