package mp4

import (
	"io"

	"github.com/probablykasper/redlux"
)

// container is the parsed view handed to consumers: the flattened track list
// plus byte-range access to the media data.
type container struct {
	r      io.ReaderAt
	tracks []*redlux.Track
}

func (c *container) Tracks() []*redlux.Track {
	return c.tracks
}

func (c *container) ReadAt(p []byte, off int64) (int, error) {
	return c.r.ReadAt(p, off)
}
