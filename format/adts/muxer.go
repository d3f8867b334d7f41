// Package adts turns the raw AAC track of a parsed MPEG-4 container into an
// ADTS elementary stream, one self-describing frame per source sample.
package adts

import (
	"fmt"
	"io"

	"github.com/probablykasper/redlux"
	"github.com/probablykasper/redlux/codec/aac"
	"github.com/probablykasper/redlux/utils/logger"
)

// Muxer walks a container's first AAC track in decode order and emits each
// sample as header-plus-payload. It is a one-shot forward cursor: once
// exhausted or failed it stays that way.
type Muxer struct {
	r      io.ReaderAt
	track  *redlux.Track
	params aac.CodecParameters
	cursor int
	err    error
}

// NewMuxer selects the first AAC track of the container and validates its
// codec configuration. A container without any AAC track yields
// redlux.MissingAudioTrackError; a configuration the ADTS header cannot
// express yields aac.UnsupportedCodecError.
func NewMuxer(cont redlux.Container) (mux *Muxer, err error) {
	var track *redlux.Track
	for _, t := range cont.Tracks() {
		if t.Codec == redlux.AAC {
			track = t
			break
		}
	}
	if track == nil {
		return nil, redlux.MissingAudioTrackError{}
	}

	mux = &Muxer{r: cont, track: track}
	if mux.params, err = aac.NewCodecDataFromMPEG4AudioConfigBytes(track.Config); err != nil {
		return nil, fmt.Errorf("adts: %w", err)
	}

	// Probe the header once so unsupported configurations surface here
	// rather than on the first frame.
	if _, err = aac.NewADTSHeader(mux.params.Config, 0); err != nil {
		return nil, err
	}

	logger.Debugf(mux, "aac track: %d samples, %d Hz, %d channels",
		len(track.Samples), mux.params.SampleRate(), mux.params.Channels())
	return mux, nil
}

func (mux *Muxer) String() string {
	return "ADTS_MUXER"
}

// CodecParameters describes the stream being produced. Decoders need the
// output sample rate and channel count from here, not from the headers,
// which always carry the core configuration.
func (mux *Muxer) CodecParameters() aac.CodecParameters {
	return mux.params
}

// NextFrame returns the next sample wrapped in a 7-byte ADTS header, or
// io.EOF after the last one. Any other error is terminal: the same error
// comes back on every later call.
func (mux *Muxer) NextFrame() ([]byte, error) {
	if mux.err != nil {
		return nil, mux.err
	}
	if mux.cursor == len(mux.track.Samples) {
		mux.err = io.EOF
		return nil, io.EOF
	}

	sample := mux.track.Samples[mux.cursor]
	header, err := aac.NewADTSHeader(mux.params.Config, int(sample.Size))
	if err != nil {
		mux.err = err
		return nil, err
	}

	frame := make([]byte, aac.ADTSHeaderLength+sample.Size)
	copy(frame, header[:])
	if _, err = mux.r.ReadAt(frame[aac.ADTSHeaderLength:], sample.Offset); err != nil {
		mux.err = err
		return nil, err
	}

	mux.cursor++
	return frame, nil
}
