package huffman

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// BitWriter packs codes into bytes, most significant bit first, and counts
// the bits written.  Whole bytes go to the underlying writer as soon as they
// fill; Close pads the last byte with zero bits.
type BitWriter struct {
	bw    *bitio.Writer
	count uint64
}

// NewBitWriter returns a BitWriter on top of w.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{bw: bitio.NewWriter(w)}
}

// WriteBit appends a single bit.
func (w *BitWriter) WriteBit(bit bool) error {
	if err := w.bw.WriteBool(bit); err != nil {
		return errors.Wrap(err, "writing payload bit")
	}
	w.count++
	return nil
}

// WriteCode appends the bits of code, up to 64 at a time.
func (w *BitWriter) WriteCode(code Code) error {
	for start := 0; start < code.Len(); start += 64 {
		end := start + 64
		if end > code.Len() {
			end = code.Len()
		}
		var chunk uint64
		for i := start; i < end; i++ {
			chunk <<= 1
			if code.Bit(i) {
				chunk |= 1
			}
		}
		if err := w.bw.WriteBits(chunk, uint8(end-start)); err != nil {
			return errors.Wrap(err, "writing payload bits")
		}
	}
	w.count += uint64(code.Len())
	return nil
}

// Count returns the number of meaningful bits written so far, padding
// excluded.
func (w *BitWriter) Count() uint64 {
	return w.count
}

// Close flushes the final partial byte.  It does not close the underlying
// writer.
func (w *BitWriter) Close() error {
	return errors.Wrap(w.bw.Close(), "flushing payload")
}

// BitReader yields exactly n bits from a packed payload and then reports
// io.EOF, so padding bits are never returned.
type BitReader struct {
	br        *bitio.Reader
	remaining uint64
}

// NewBitReader returns a BitReader that reads n bits from r.
func NewBitReader(r io.Reader, n uint64) *BitReader {
	return &BitReader{br: bitio.NewReader(r), remaining: n}
}

// ReadBit returns the next bit.  Running out of input before n bits have been
// read is reported as ErrCorrupt.
func (r *BitReader) ReadBit() (bool, error) {
	if r.remaining == 0 {
		return false, io.EOF
	}
	bit, err := r.br.ReadBool()
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return false, errors.Wrapf(ErrCorrupt, "payload ended with %d bits unread", r.remaining)
	}
	if err != nil {
		return false, errors.Wrap(err, "reading payload bit")
	}
	r.remaining--
	return bit, nil
}

// Remaining returns the number of bits still to be read.
func (r *BitReader) Remaining() uint64 {
	return r.remaining
}
