package huffman

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// TrailerSize is the size in bytes of the bit-count trailer.
const TrailerSize = 4

// Encode encodes input with codes.  It returns the stream header (freq,
// verbatim), the zero-padded payload and the exact number of meaningful
// payload bits.  freq is persisted as given; it should be the table codes was
// built from, otherwise the result cannot be decoded.
func Encode(codes *CodeTable, freq FrequencyTable, input []byte) (header, payload []byte, totalBits uint32, err error) {
	header, err = freq.MarshalBinary()
	if err != nil {
		return nil, nil, 0, err
	}
	var buf bytes.Buffer
	totalBits, err = encodePayload(&buf, codes, bytes.NewReader(input))
	if err != nil {
		return nil, nil, 0, err
	}
	return header, buf.Bytes(), totalBits, nil
}

// EncodeTo writes a complete stream (header, payload and trailer) for the
// bytes read from r to w and returns the number of payload bits.  Any I/O
// error aborts the operation; nothing is retried.
func EncodeTo(w io.Writer, codes *CodeTable, freq FrequencyTable, r io.Reader) (uint32, error) {
	header, err := freq.MarshalBinary()
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(header); err != nil {
		return 0, errors.Wrap(err, "writing header")
	}
	totalBits, err := encodePayload(w, codes, r)
	if err != nil {
		return 0, err
	}
	if err := writeTrailer(w, totalBits); err != nil {
		return 0, err
	}
	return totalBits, nil
}

func encodePayload(w io.Writer, codes *CodeTable, r io.Reader) (uint32, error) {
	bw := NewBitWriter(w)
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, errors.Wrap(err, "reading input")
		}
		code := codes[b]
		if bw.Count()+uint64(code.Len()) > math.MaxUint32 {
			return 0, errors.Wrapf(ErrTooLarge, "payload exceeds %d bits", uint32(math.MaxUint32))
		}
		if err := bw.WriteCode(code); err != nil {
			return 0, err
		}
	}
	if err := bw.Close(); err != nil {
		return 0, err
	}
	return uint32(bw.Count()), nil
}

func writeTrailer(w io.Writer, totalBits uint32) error {
	var tail [TrailerSize]byte
	binary.LittleEndian.PutUint32(tail[:], totalBits)
	if _, err := w.Write(tail[:]); err != nil {
		return errors.Wrap(err, "writing trailer")
	}
	return nil
}
