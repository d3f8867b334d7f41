package mp4

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probablykasper/redlux"
)

func be32(vals ...uint32) []byte {
	b := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.BigEndian.PutUint32(b[i*4:], v)
	}
	return b
}

func TestParseStsz(t *testing.T) {
	t.Parallel()

	t.Run("fixed_size", func(t *testing.T) {
		t.Parallel()

		count, fixed, sizes, err := parseStsz(be32(0, 512, 40))
		require.NoError(t, err)
		require.Equal(t, uint32(40), count)
		require.Equal(t, uint32(512), fixed)
		require.Nil(t, sizes)
	})

	t.Run("size_table", func(t *testing.T) {
		t.Parallel()

		count, fixed, sizes, err := parseStsz(be32(0, 0, 3, 10, 20, 30))
		require.NoError(t, err)
		require.Equal(t, uint32(3), count)
		require.Zero(t, fixed)
		require.Equal(t, []uint32{10, 20, 30}, sizes)
	})

	t.Run("short_payload", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := parseStsz(be32(0, 0))
		require.Error(t, err)
	})

	t.Run("count_beyond_payload", func(t *testing.T) {
		t.Parallel()

		_, _, _, err := parseStsz(be32(0, 0, 5, 10))
		require.Error(t, err)
	})
}

func TestParseStsc(t *testing.T) {
	t.Parallel()

	t.Run("runs", func(t *testing.T) {
		t.Parallel()

		runs, err := parseStsc(be32(0, 2, 1, 4, 1, 3, 2, 1))
		require.NoError(t, err)
		require.Equal(t, []chunkRun{
			{firstChunk: 1, samplesPerChunk: 4},
			{firstChunk: 3, samplesPerChunk: 2},
		}, runs)
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		_, err := parseStsc(be32(0, 2, 1, 4, 1))
		require.Error(t, err)
	})
}

func TestParseStco(t *testing.T) {
	t.Parallel()

	offsets, err := parseStco(be32(0, 3, 100, 4096, 70000))
	require.NoError(t, err)
	require.Equal(t, []uint32{100, 4096, 70000}, offsets)

	_, err = parseStco(be32(0, 4, 100))
	require.Error(t, err)
}

func TestFlattenSampleTable(t *testing.T) {
	t.Parallel()

	t.Run("variable_sizes_two_runs", func(t *testing.T) {
		t.Parallel()

		runs := []chunkRun{
			{firstChunk: 1, samplesPerChunk: 2},
			{firstChunk: 2, samplesPerChunk: 3},
		}
		samples, err := flattenSampleTable(5, 0, []uint32{1, 2, 3, 4, 5}, runs, []uint32{100, 200})
		require.NoError(t, err)
		require.Equal(t, []redlux.Sample{
			{Offset: 100, Size: 1},
			{Offset: 101, Size: 2},
			{Offset: 200, Size: 3},
			{Offset: 203, Size: 4},
			{Offset: 207, Size: 5},
		}, samples)
	})

	t.Run("fixed_size", func(t *testing.T) {
		t.Parallel()

		runs := []chunkRun{{firstChunk: 1, samplesPerChunk: 2}}
		samples, err := flattenSampleTable(4, 8, nil, runs, []uint32{0, 64})
		require.NoError(t, err)
		require.Equal(t, []redlux.Sample{
			{Offset: 0, Size: 8},
			{Offset: 8, Size: 8},
			{Offset: 64, Size: 8},
			{Offset: 72, Size: 8},
		}, samples)
	})

	t.Run("last_chunk_short", func(t *testing.T) {
		t.Parallel()

		// The final chunk holds fewer samples than its run declares.
		runs := []chunkRun{{firstChunk: 1, samplesPerChunk: 3}}
		samples, err := flattenSampleTable(4, 10, nil, runs, []uint32{100, 200})
		require.NoError(t, err)
		require.Len(t, samples, 4)
		require.Equal(t, redlux.Sample{Offset: 200, Size: 10}, samples[3])
	})

	t.Run("empty_track", func(t *testing.T) {
		t.Parallel()

		samples, err := flattenSampleTable(0, 0, nil, nil, nil)
		require.NoError(t, err)
		require.Empty(t, samples)
	})

	t.Run("missing_chunks", func(t *testing.T) {
		t.Parallel()

		_, err := flattenSampleTable(3, 10, nil, nil, []uint32{100})
		require.Error(t, err)
	})

	t.Run("count_exceeds_chunks", func(t *testing.T) {
		t.Parallel()

		runs := []chunkRun{{firstChunk: 1, samplesPerChunk: 1}}
		_, err := flattenSampleTable(3, 10, nil, runs, []uint32{100})
		require.Error(t, err)
	})
}
