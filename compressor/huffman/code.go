package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// Code is the bit sequence assigned to a symbol, written as '0' and '1'
// characters with the first bit first.
type Code string

// Len returns the number of bits in the code.
func (c Code) Len() int {
	return len(c)
}

// Bit reports whether bit i of the code is 1.
func (c Code) Bit(i int) bool {
	return c[i] == '1'
}

// String returns the quoted bit string.
func (c Code) String() string {
	return strconv.Quote(string(c))
}

var _ fmt.Stringer = Code("")

// CodeTable maps each symbol to its code.  It is built once per tree and is
// read-only afterwards.
type CodeTable [NumSymbols]Code

// GenerateCodes derives the code of every leaf from its path in tree: 0 for
// each step to a left child, 1 for each step to a right child.
func GenerateCodes(tree *Tree) *CodeTable {
	codes := new(CodeTable)
	tree.walk(func(symbol byte, path Code) {
		assert.Assertf(path.Len() > 0, "symbol %d has an empty code", symbol)
		assert.Assertf(path.Len() < NumSymbols, "symbol %d has a %d-bit code", symbol, path.Len())
		codes[symbol] = path
	})
	return codes
}

// NewCodeTable is a convenience function that builds the tree for freq and
// returns its codes.
func NewCodeTable(freq FrequencyTable) *CodeTable {
	return GenerateCodes(BuildTree(freq))
}

// Code returns the code for symbol.
func (ct *CodeTable) Code(symbol byte) Code {
	return ct[symbol]
}

// EncodedBits returns the exact number of payload bits needed to encode an
// input whose byte counts are freq.
func (ct *CodeTable) EncodedBits(freq FrequencyTable) uint64 {
	var total uint64
	for symbol, count := range freq {
		total += uint64(count) * uint64(ct[symbol].Len())
	}
	return total
}

// MinLen and MaxLen return the shortest and longest code lengths in the
// table.
func (ct *CodeTable) MinLen() int {
	shortest := ct[0].Len()
	for _, code := range ct[1:] {
		if code.Len() < shortest {
			shortest = code.Len()
		}
	}
	return shortest
}

func (ct *CodeTable) MaxLen() int {
	longest := 0
	for _, code := range ct {
		if code.Len() > longest {
			longest = code.Len()
		}
	}
	return longest
}

// Dump writes one "symbol<TAB>code" line per symbol to w.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for symbol, code := range ct {
		fmt.Fprintf(&buf, "%d\t%s\n", symbol, string(code))
	}
	return buf.WriteTo(w)
}
