package huffman

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Stream is a parsed compressed stream.
type Stream struct {
	Frequencies FrequencyTable
	Payload     []byte
	TotalBits   uint32
}

// ParseStream splits data into header, payload and trailer.  The payload must
// be exactly as long as the trailer's bit count requires.
func ParseStream(data []byte) (*Stream, error) {
	if len(data) < HeaderSize+TrailerSize {
		return nil, errors.Wrapf(ErrCorrupt, "stream is %d bytes, need at least %d", len(data), HeaderSize+TrailerSize)
	}
	s := new(Stream)
	if err := s.Frequencies.UnmarshalBinary(data[:HeaderSize]); err != nil {
		return nil, err
	}
	tail := len(data) - TrailerSize
	s.Payload = data[HeaderSize:tail]
	s.TotalBits = binary.LittleEndian.Uint32(data[tail:])
	if need := (uint64(s.TotalBits) + 7) / 8; uint64(len(s.Payload)) != need {
		return nil, errors.Wrapf(ErrCorrupt, "payload is %d bytes, %d bits need %d", len(s.Payload), s.TotalBits, need)
	}
	return s, nil
}

// Compress counts the bytes of input, builds their code table and writes the
// complete stream to w.
func Compress(w io.Writer, input []byte) error {
	freq, err := Count(input)
	if err != nil {
		return err
	}
	codes := NewCodeTable(freq)
	if bits := codes.EncodedBits(freq); bits > math.MaxUint32 {
		return errors.Wrapf(ErrTooLarge, "payload would be %d bits", bits)
	}
	_, err = EncodeTo(w, codes, freq, bytes.NewReader(input))
	return err
}

// Decompress reads a complete stream from r and writes the decoded bytes to
// w.  On top of Decode it checks that the trailer agrees with the bit total
// the header implies, which catches most edited or mismatched headers.
func Decompress(w io.Writer, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "reading stream")
	}
	s, err := ParseStream(data)
	if err != nil {
		return err
	}
	tree := BuildTree(s.Frequencies)
	if want := GenerateCodes(tree).EncodedBits(s.Frequencies); want != uint64(s.TotalBits) {
		return errors.Wrapf(ErrHeaderMismatch, "header implies %d bits, trailer says %d", want, s.TotalBits)
	}
	return decodeTree(w, tree, bytes.NewReader(s.Payload), s.TotalBits)
}

// CompressionWriter buffers everything written to it and emits the
// compressed stream on Close, since the code table depends on the whole
// input.  It is not safe for concurrent use.
type CompressionWriter struct {
	w      io.Writer
	buf    bytes.Buffer
	closed bool
}

// NewWriter returns a CompressionWriter that writes the stream to w.
func NewWriter(w io.Writer) io.WriteCloser {
	return &CompressionWriter{w: w}
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	if cw.closed {
		return 0, ErrClosed
	}
	return cw.buf.Write(data)
}

// Close compresses the buffered input.  It does not close the underlying
// writer.
func (cw *CompressionWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true
	err := Compress(cw.w, cw.buf.Bytes())
	cw.buf.Reset()
	return err
}

// DecompressionReader decodes a whole stream on the first Read and serves the
// result from memory.  It is not safe for concurrent use.
type DecompressionReader struct {
	r   io.Reader
	out *bytes.Reader
	err error
}

// NewReader returns a DecompressionReader over the stream in r.
func NewReader(r io.Reader) io.Reader {
	return &DecompressionReader{r: r}
}

func (dr *DecompressionReader) Read(data []byte) (int, error) {
	if dr.out == nil && dr.err == nil {
		var buf bytes.Buffer
		dr.err = Decompress(&buf, dr.r)
		dr.out = bytes.NewReader(buf.Bytes())
	}
	if dr.err != nil {
		return 0, dr.err
	}
	return dr.out.Read(data)
}
