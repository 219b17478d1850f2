package huffman

import (
	"github.com/pkg/errors"
)

// ErrCorrupt is returned when a stream is shorter than its own header and
// trailer claim, e.g. a truncated file.
var ErrCorrupt = errors.New("huffman: corrupt stream")

// ErrMalformed is returned when the payload bits run out while the decoder is
// in the middle of a code.
var ErrMalformed = errors.New("huffman: malformed stream")

// ErrTooLarge is returned when a count or the payload bit total does not fit
// in the fixed-width uint32 fields of the format.
var ErrTooLarge = errors.New("huffman: input too large for format")

// ErrHeaderMismatch is returned by Decompress when the trailer bit count
// disagrees with the bit total implied by the header counts.
var ErrHeaderMismatch = errors.New("huffman: header does not match payload")

// ErrClosed is returned when writing to a closed CompressionWriter.
var ErrClosed = errors.New("huffman: write to closed writer")
