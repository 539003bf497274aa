package datastream_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisrsipes/skiplists/datastream"
)

func TestStreamRoundTrip(t *testing.T) {
	t.Parallel()

	w := &datastream.Workload{
		Name:           "roundtrip",
		Seed:           9,
		Elements:       32,
		Distribution:   datastream.DistZipf,
		Zipf:           &datastream.ZipfParams{S: 1.5, V: 1},
		Ops:            10000,
		WarmupFraction: 0.3,
		DeleteRatio:    0.1,
	}
	s, err := w.Build()
	require.NoError(t, err)

	// 10000 ops span multiple blocks.
	path := filepath.Join(t.TempDir(), "workload.slops")
	require.NoError(t, datastream.WriteStream(path, s))

	got, err := datastream.ReadStream(path)
	require.NoError(t, err)
	assert.Equal(t, s.Weights, got.Weights)
	assert.Equal(t, s.Ops, got.Ops)
}

func TestStreamRoundTripEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.slops")
	s := &datastream.Stream{Weights: map[int64]float64{}, Ops: nil}
	require.NoError(t, datastream.WriteStream(path, s))

	got, err := datastream.ReadStream(path)
	require.NoError(t, err)
	assert.Empty(t, got.Ops)
	assert.Empty(t, got.Weights)
}

func TestReadStreamBadMagic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.slops")
	require.NoError(t, os.WriteFile(path, []byte("NOTSLOPSxxxx"), 0o644))

	_, err := datastream.ReadStream(path)
	assert.ErrorIs(t, err, datastream.ErrBadMagic)
}

func TestReadStreamBadVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	buf.Write([]byte{'S', 'L', 'O', 'P', 'S', 0, 1, 0})
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(99)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(0)))

	path := filepath.Join(t.TempDir(), "ver.slops")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err := datastream.ReadStream(path)
	assert.ErrorIs(t, err, datastream.ErrBadVersion)
}

func TestReadStreamTruncated(t *testing.T) {
	t.Parallel()

	s := &datastream.Stream{
		Weights: map[int64]float64{1: 1},
		Ops:     []datastream.Operation{{Type: datastream.OpInsert, Key: 1}},
	}
	path := filepath.Join(t.TempDir(), "trunc.slops")
	require.NoError(t, datastream.WriteStream(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-4], 0o644))

	_, err = datastream.ReadStream(path)
	assert.Error(t, err)
}

func TestStreamSequence(t *testing.T) {
	t.Parallel()

	s := &datastream.Stream{
		Ops: []datastream.Operation{
			{Type: datastream.OpInsert, Key: 4},
			{Type: datastream.OpDelete, Key: 4},
		},
	}
	seq := s.Sequence()
	require.Equal(t, 2, seq.Len())
	op, ok := seq.Next()
	require.True(t, ok)
	assert.Equal(t, s.Ops[0], op)
}
