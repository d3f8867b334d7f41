package adts

// Reader adapts the frame-at-a-time muxer to io.Reader. Frames are never
// resynthesized: the byte stream is identical however the reads are sized.
type Reader struct {
	mux  *Muxer
	rest []byte
}

// Reader wraps the muxer in a byte-stream view. The muxer's cursor is
// shared: interleaving NextFrame calls with reads skips frames.
func (mux *Muxer) Reader() *Reader {
	return &Reader{mux: mux}
}

func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(r.rest) == 0 {
		frame, err := r.mux.NextFrame()
		if err != nil {
			return 0, err
		}
		r.rest = frame
	}
	n := copy(p, r.rest)
	r.rest = r.rest[n:]
	return n, nil
}
