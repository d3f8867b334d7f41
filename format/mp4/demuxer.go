// Package mp4 adapts MPEG-4 containers parsed by github.com/alfg/mp4 into
// the track and sample-table view consumed by the ADTS layer. The box
// hierarchy itself is the parser's job; this package only interprets the
// leaf payloads it needs (stsd/esds for codec configuration, stsz/stsc/stco
// for the sample table).
package mp4

import (
	"errors"
	"fmt"
	"io"
	"os"

	alfg "github.com/alfg/mp4"
	"github.com/alfg/mp4/atom"

	"github.com/probablykasper/redlux"
	"github.com/probablykasper/redlux/utils/logger"
)

type Demuxer struct {
	r    *os.File
	url  string
	cont *container
}

func NewDemuxer(url string) redlux.Demuxer {
	dmx := new(Demuxer)
	dmx.url = url
	return dmx
}

func (dmx *Demuxer) String() string {
	return "MP4_DEMUXER " + dmx.url
}

func (dmx *Demuxer) Demux() (redlux.Container, error) {
	if dmx.cont != nil {
		return dmx.cont, nil
	}

	var err error
	if dmx.r, err = os.Open(dmx.url); err != nil {
		return nil, err
	}

	info, err := dmx.r.Stat()
	if err != nil {
		return nil, err
	}

	v, err := alfg.OpenFromReader(dmx.r, info.Size())
	if err != nil {
		return nil, fmt.Errorf("mp4: parsing box hierarchy failed(%w)", err)
	}

	if dmx.cont, err = dmx.probe(v); err != nil {
		dmx.cont = nil
		return nil, err
	}
	return dmx.cont, nil
}

func (dmx *Demuxer) Close() {
	if dmx.r != nil {
		dmx.r.Close()
	}
}

func (dmx *Demuxer) probe(v *atom.Mp4Reader) (c *container, err error) {
	if v.Moov == nil {
		return nil, errors.New("mp4: 'moov' atom not found")
	}

	c = &container{r: dmx.r}
	for i, trak := range v.Moov.Traks {
		track, err := dmx.buildTrack(trak)
		if err != nil {
			return nil, fmt.Errorf("mp4: track %d: %w", i, err)
		}
		if track == nil {
			logger.Debugf(dmx, "track %d has no usable sample table, skipping", i)
			continue
		}
		logger.Debugf(dmx, "track %d: codec=%v samples=%d", i, track.Codec, len(track.Samples))
		c.tracks = append(c.tracks, track)
	}
	return c, nil
}

func (dmx *Demuxer) buildTrack(trak *atom.TrakBox) (*redlux.Track, error) {
	if trak == nil || trak.Mdia == nil || trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return nil, nil
	}
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsd == nil || stbl.Stsz == nil || stbl.Stsc == nil || stbl.Stco == nil {
		return nil, nil
	}

	stsdPayload, err := dmx.boxPayload(stbl.Stsd.Start, stbl.Stsd.Size)
	if err != nil {
		return nil, err
	}
	entry, err := parseStsd(stsdPayload)
	if err != nil {
		return nil, err
	}

	stszPayload, err := dmx.boxPayload(stbl.Stsz.Start, stbl.Stsz.Size)
	if err != nil {
		return nil, err
	}
	count, fixed, sizes, err := parseStsz(stszPayload)
	if err != nil {
		return nil, err
	}

	stscPayload, err := dmx.boxPayload(stbl.Stsc.Start, stbl.Stsc.Size)
	if err != nil {
		return nil, err
	}
	runs, err := parseStsc(stscPayload)
	if err != nil {
		return nil, err
	}

	stcoPayload, err := dmx.boxPayload(stbl.Stco.Start, stbl.Stco.Size)
	if err != nil {
		return nil, err
	}
	chunkOffsets, err := parseStco(stcoPayload)
	if err != nil {
		return nil, err
	}

	samples, err := flattenSampleTable(count, fixed, sizes, runs, chunkOffsets)
	if err != nil {
		return nil, err
	}

	return &redlux.Track{
		Codec:   entry.codec,
		Config:  entry.decConfig,
		Samples: samples,
	}, nil
}

// boxPayload reads a box's contents, skipping the 8-byte size/type header.
// Box start offsets are absolute within the file.
func (dmx *Demuxer) boxPayload(start, size int64) ([]byte, error) {
	const boxHeaderLen = 8
	if size < boxHeaderLen {
		return nil, fmt.Errorf("mp4: truncated box at offset %d", start)
	}
	buf := make([]byte, size-boxHeaderLen)
	if _, err := io.ReadFull(io.NewSectionReader(dmx.r, start+boxHeaderLen, size-boxHeaderLen), buf); err != nil {
		return nil, fmt.Errorf("mp4: reading box payload at offset %d failed(%w)", start, err)
	}
	return buf, nil
}
