package huffman

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// NumSymbols is the size of the alphabet: every byte value is a symbol.
const NumSymbols = 256

// HeaderSize is the size in bytes of a persisted FrequencyTable.
const HeaderSize = NumSymbols * 4

// FrequencyTable holds one occurrence count per symbol, indexed by symbol.
type FrequencyTable [NumSymbols]uint32

// Count tallies the bytes of data.
func Count(data []byte) (FrequencyTable, error) {
	var freq FrequencyTable
	if uint64(len(data)) > math.MaxUint32 {
		return freq, errors.Wrapf(ErrTooLarge, "%d input bytes", len(data))
	}
	for _, b := range data {
		freq[b]++
	}
	return freq, nil
}

// CountFrequencies reads r to EOF and tallies every byte read.
func CountFrequencies(r io.Reader) (FrequencyTable, error) {
	var freq FrequencyTable
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return freq, nil
		}
		if err != nil {
			return freq, errors.Wrap(err, "counting frequencies")
		}
		if freq[b] == math.MaxUint32 {
			return freq, errors.Wrapf(ErrTooLarge, "symbol %d occurs more than %d times", b, uint32(math.MaxUint32))
		}
		freq[b]++
	}
}

// Total returns the sum of all counts.
func (freq FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range freq {
		total += uint64(count)
	}
	return total
}

// Distinct returns the number of symbols with a non-zero count.
func (freq FrequencyTable) Distinct() int {
	n := 0
	for _, count := range freq {
		if count != 0 {
			n++
		}
	}
	return n
}

// MarshalBinary encodes the table as the 1024-byte stream header.
func (freq FrequencyTable) MarshalBinary() ([]byte, error) {
	out := make([]byte, HeaderSize)
	for symbol, count := range freq {
		binary.LittleEndian.PutUint32(out[symbol*4:], count)
	}
	return out, nil
}

// UnmarshalBinary decodes a stream header produced by MarshalBinary.
func (freq *FrequencyTable) UnmarshalBinary(data []byte) error {
	if len(data) != HeaderSize {
		return errors.Wrapf(ErrCorrupt, "header is %d bytes, want %d", len(data), HeaderSize)
	}
	for symbol := range freq {
		freq[symbol] = binary.LittleEndian.Uint32(data[symbol*4:])
	}
	return nil
}
