// Package bits provides big-endian bit-level access to byte buffers.
package bits

import "errors"

// ErrNotEnoughBits is returned when a read runs past the end of the buffer.
var ErrNotEnoughBits = errors.New("bits: not enough bits")

// Reader reads big-endian bit fields from a byte slice.
type Reader struct {
	buf    []byte
	offset int // in bits
}

// NewReader returns a Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// BitsLeft returns the number of unread bits.
func (r *Reader) BitsLeft() int {
	return len(r.buf)*8 - r.offset
}

// Read reads the next n bits (n <= 32) as an unsigned integer.
func (r *Reader) Read(n int) (v uint, err error) {
	if n < 0 || n > 32 {
		return 0, ErrNotEnoughBits
	}
	if r.BitsLeft() < n {
		r.offset = len(r.buf) * 8
		return 0, ErrNotEnoughBits
	}
	for i := 0; i < n; i++ {
		b := r.buf[r.offset>>3] >> (7 - r.offset&0x7) & 1
		v = v<<1 | uint(b)
		r.offset++
	}
	return v, nil
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (uint8, error) {
	v, err := r.Read(1)
	return uint8(v), err
}

// Peek returns the next n bits (n <= 32) without advancing. Bits beyond the
// end of the buffer read as zero.
func (r *Reader) Peek(n int) (v uint) {
	clone := *r
	if left := clone.BitsLeft(); left < n {
		got, _ := clone.Read(left)
		return got << uint(n-left)
	}
	v, _ = clone.Read(n)
	return v
}

// Skip advances past n bits.
func (r *Reader) Skip(n int) error {
	if r.BitsLeft() < n {
		r.offset = len(r.buf) * 8
		return ErrNotEnoughBits
	}
	r.offset += n
	return nil
}
