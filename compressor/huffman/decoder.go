package huffman

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Decode rebuilds the tree for freq and decodes exactly totalBits bits of
// payload.  Padding after the last meaningful bit is ignored.
//
// A payload too short to hold totalBits bits is reported as ErrCorrupt, and
// running out of bits in the middle of a code as ErrMalformed.  A freq that
// differs from the one used to encode is not detected.
func Decode(freq FrequencyTable, payload []byte, totalBits uint32) ([]byte, error) {
	if err := checkPayloadLen(len(payload), totalBits); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := decodeTree(&out, BuildTree(freq), bytes.NewReader(payload), totalBits); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecodeFrom is the streaming form of Decode: payload bits are read from r and
// decoded symbols are written to w.
func DecodeFrom(w io.Writer, freq FrequencyTable, r io.Reader, totalBits uint32) error {
	return decodeTree(w, BuildTree(freq), r, totalBits)
}

func decodeTree(w io.Writer, tree *Tree, r io.Reader, totalBits uint32) error {
	br := NewBitReader(r, uint64(totalBits))
	out := bufio.NewWriter(w)
	cursor := rootId
	for br.Remaining() != 0 {
		bit, err := br.ReadBit()
		if err != nil {
			return err
		}
		cursor = tree.step(cursor, bit)
		if tree.nodes[cursor].isLeaf() {
			if err := out.WriteByte(byte(cursor)); err != nil {
				return errors.Wrap(err, "writing output")
			}
			cursor = rootId
		}
	}
	if cursor != rootId {
		return errors.Wrapf(ErrMalformed, "%d bits end inside a code", totalBits)
	}
	return errors.Wrap(out.Flush(), "writing output")
}

func checkPayloadLen(n int, totalBits uint32) error {
	need := (uint64(totalBits) + 7) / 8
	if uint64(n) < need {
		return errors.Wrapf(ErrCorrupt, "payload is %d bytes, %d bits need %d", n, totalBits, need)
	}
	return nil
}
