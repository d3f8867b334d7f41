package bits

import "io"

// Writer packs big-endian bit fields and emits whole bytes to W.
type Writer struct {
	W       io.Writer
	pending uint64
	n       int // pending bit count, always < 8 after a flushBytes
}

// WriteBits appends the low n bits (n <= 32) of v.
func (w *Writer) WriteBits(v uint, n int) error {
	w.pending = w.pending<<uint(n) | uint64(v)&(1<<uint(n)-1)
	w.n += n
	return w.flushBytes()
}

func (w *Writer) flushBytes() error {
	for w.n >= 8 {
		b := byte(w.pending >> uint(w.n-8))
		if _, err := w.W.Write([]byte{b}); err != nil {
			return err
		}
		w.n -= 8
	}
	return nil
}

// FlushBits pads the pending bits with zeros up to a byte boundary and
// writes them out.
func (w *Writer) FlushBits() error {
	if w.n == 0 {
		return nil
	}
	return w.WriteBits(0, 8-w.n)
}
