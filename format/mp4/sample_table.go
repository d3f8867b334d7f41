//nolint:mnd // .
package mp4

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/probablykasper/redlux"
)

// chunkRun is one stsc entry: starting with firstChunk (1-based), every
// chunk holds samplesPerChunk samples, until the next run begins.
type chunkRun struct {
	firstChunk      uint32
	samplesPerChunk uint32
}

// parseStsz decodes a sample size box payload. A non-zero fixed size means
// every sample has that size and no table follows.
func parseStsz(payload []byte) (count, fixed uint32, sizes []uint32, err error) {
	const headerLen = 12 // version/flags, sample_size, sample_count
	if len(payload) < headerLen {
		return 0, 0, nil, errors.New("mp4: short stsz payload")
	}
	fixed = binary.BigEndian.Uint32(payload[4:8])
	count = binary.BigEndian.Uint32(payload[8:12])
	if fixed != 0 {
		return count, fixed, nil, nil
	}
	if uint64(len(payload)-headerLen) < uint64(count)*4 {
		return 0, 0, nil, fmt.Errorf("mp4: stsz declares %d samples beyond its payload", count)
	}
	sizes = make([]uint32, count)
	for i := range sizes {
		sizes[i] = binary.BigEndian.Uint32(payload[headerLen+i*4:])
	}
	return count, 0, sizes, nil
}

// parseStsc decodes a sample-to-chunk box payload.
func parseStsc(payload []byte) ([]chunkRun, error) {
	const headerLen = 8 // version/flags, entry_count
	const entryLen = 12 // first_chunk, samples_per_chunk, sample_description_index
	if len(payload) < headerLen {
		return nil, errors.New("mp4: short stsc payload")
	}
	count := binary.BigEndian.Uint32(payload[4:8])
	if uint64(len(payload)-headerLen) < uint64(count)*entryLen {
		return nil, fmt.Errorf("mp4: stsc declares %d entries beyond its payload", count)
	}
	runs := make([]chunkRun, count)
	for i := range runs {
		base := headerLen + i*entryLen
		runs[i] = chunkRun{
			firstChunk:      binary.BigEndian.Uint32(payload[base:]),
			samplesPerChunk: binary.BigEndian.Uint32(payload[base+4:]),
		}
	}
	return runs, nil
}

// parseStco decodes a 32-bit chunk offset box payload. Offsets are absolute
// file positions.
func parseStco(payload []byte) ([]uint32, error) {
	const headerLen = 8 // version/flags, entry_count
	if len(payload) < headerLen {
		return nil, errors.New("mp4: short stco payload")
	}
	count := binary.BigEndian.Uint32(payload[4:8])
	if uint64(len(payload)-headerLen) < uint64(count)*4 {
		return nil, fmt.Errorf("mp4: stco declares %d entries beyond its payload", count)
	}
	offsets := make([]uint32, count)
	for i := range offsets {
		offsets[i] = binary.BigEndian.Uint32(payload[headerLen+i*4:])
	}
	return offsets, nil
}

// flattenSampleTable expands the chunked stsc/stco layout into one flat,
// decode-ordered descriptor per sample.
func flattenSampleTable(count, fixed uint32, sizes []uint32, runs []chunkRun, chunkOffsets []uint32) ([]redlux.Sample, error) {
	if count == 0 {
		return nil, nil
	}
	if len(runs) == 0 || len(chunkOffsets) == 0 {
		return nil, errors.New("mp4: sample table without chunk entries")
	}

	samples := make([]redlux.Sample, 0, count)
	run := 0
	for chunk := uint32(1); chunk <= uint32(len(chunkOffsets)); chunk++ {
		for run+1 < len(runs) && chunk >= runs[run+1].firstChunk {
			run++
		}
		offset := int64(chunkOffsets[chunk-1])
		for s := uint32(0); s < runs[run].samplesPerChunk; s++ {
			idx := uint32(len(samples))
			if idx == count {
				return samples, nil
			}
			size := fixed
			if fixed == 0 {
				size = sizes[idx]
			}
			samples = append(samples, redlux.Sample{Offset: offset, Size: size})
			offset += int64(size)
		}
	}

	if uint32(len(samples)) != count {
		return nil, fmt.Errorf("mp4: stsz declares %d samples but chunks hold %d", count, len(samples))
	}
	return samples, nil
}
