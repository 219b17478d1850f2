package huffman

import (
	"math/big"
	"math/rand"
	"strings"
	"testing"

	icza "github.com/icza/huffman"
)

// fibonacciFrequencies produces the most skewed tree a table of this size
// allows.
func fibonacciFrequencies(n int) FrequencyTable {
	var freq FrequencyTable
	a, b := uint32(1), uint32(1)
	for symbol := 0; symbol < n; symbol++ {
		freq[symbol] = a
		a, b = b, a+b
	}
	return freq
}

func randomFrequencies(seed int64) FrequencyTable {
	rng := rand.New(rand.NewSource(seed))
	var freq FrequencyTable
	for symbol := range freq {
		if rng.Intn(3) != 0 {
			freq[symbol] = uint32(rng.Intn(1000))
		}
	}
	return freq
}

func testFrequencyTables() map[string]FrequencyTable {
	return map[string]FrequencyTable{
		"empty":       {},
		"aaaa":        makeTestFrequencies("aaaa"),
		"abc":         makeTestFrequencies("aaaaabbbcc"),
		"abracadabra": makeTestFrequencies("abracadabra"),
		"fibonacci":   fibonacciFrequencies(40),
		"random":      randomFrequencies(42),
	}
}

func TestCodeTable_PrefixFree(t *testing.T) {
	for name, freq := range testFrequencyTables() {
		t.Run(name, func(t *testing.T) {
			codes := NewCodeTable(freq)
			for a := 0; a < NumSymbols; a++ {
				for b := 0; b < NumSymbols; b++ {
					if a == b {
						continue
					}
					if strings.HasPrefix(string(codes[b]), string(codes[a])) {
						t.Fatalf("code of %d (%s) is a prefix of code of %d (%s)", a, codes[a], b, codes[b])
					}
				}
			}
		})
	}
}

func TestCodeTable_Kraft(t *testing.T) {
	one := big.NewRat(1, 1)
	for name, freq := range testFrequencyTables() {
		t.Run(name, func(t *testing.T) {
			codes := NewCodeTable(freq)
			sum := new(big.Rat)
			for _, code := range codes {
				denom := new(big.Int).Lsh(big.NewInt(1), uint(code.Len()))
				sum.Add(sum, new(big.Rat).SetFrac(big.NewInt(1), denom))
			}
			if sum.Cmp(one) != 0 {
				t.Errorf("expected Kraft sum 1, got %s", sum.RatString())
			}
		})
	}
}

func TestCodeTable_Optimal(t *testing.T) {
	for name, freq := range testFrequencyTables() {
		t.Run(name, func(t *testing.T) {
			leaves := make([]*icza.Node, NumSymbols)
			for symbol := range leaves {
				leaves[symbol] = &icza.Node{Value: icza.ValueType(symbol), Count: int(freq[symbol])}
			}
			byValue := make([]*icza.Node, NumSymbols)
			copy(byValue, leaves)
			icza.Build(leaves)

			var expect uint64
			for symbol, leaf := range byValue {
				_, bits := leaf.Code()
				expect += uint64(freq[symbol]) * uint64(bits)
			}
			actual := NewCodeTable(freq).EncodedBits(freq)
			if expect != actual {
				t.Errorf("weighted code length is not optimal:\n\texpect: %d\n\tactual: %d", expect, actual)
			}
		})
	}
}

func TestCodeTable_FrequentSymbolsGetShorterCodes(t *testing.T) {
	var freq FrequencyTable
	freq['a'], freq['b'], freq['c'] = 5, 3, 2
	codes := NewCodeTable(freq)

	la, lb, lc := codes.Code('a').Len(), codes.Code('b').Len(), codes.Code('c').Len()
	if !(la <= lb && lb <= lc) {
		t.Errorf("expected len(a) <= len(b) <= len(c), got %d, %d, %d", la, lb, lc)
	}

	expect := map[byte]Code{'a': "0", 'b': "11", 'c': "101"}
	for symbol, code := range expect {
		if actual := codes.Code(symbol); actual != code {
			t.Errorf("wrong code for %q:\n\texpect: %s\n\tactual: %s", symbol, code, actual)
		}
	}
}

func TestCodeTable_SingleSymbol(t *testing.T) {
	codes := NewCodeTable(makeTestFrequencies("aaaa"))
	if expect, actual := Code("1"), codes.Code('a'); expect != actual {
		t.Errorf("wrong code for 'a':\n\texpect: %s\n\tactual: %s", expect, actual)
	}
	if codes.MinLen() == 0 {
		t.Errorf("some symbol has an empty code")
	}
}

func TestCodeTable_Skewed(t *testing.T) {
	codes := NewCodeTable(fibonacciFrequencies(40))
	if codes.MaxLen() <= 8 {
		t.Errorf("expected a skewed tree, longest code is %d bits", codes.MaxLen())
	}
	if codes.MinLen() != 1 {
		t.Errorf("expected the most frequent symbol to get 1 bit, got %d", codes.MinLen())
	}
}

func TestCodeTable_EncodedBits(t *testing.T) {
	freq := makeTestFrequencies("abracadabra")
	codes := NewCodeTable(freq)
	if expect, actual := uint64(24), codes.EncodedBits(freq); expect != actual {
		t.Errorf("wrong bit total:\n\texpect: %d\n\tactual: %d", expect, actual)
	}
}

func TestCodeTable_Dump(t *testing.T) {
	codes := NewCodeTable(FrequencyTable{})

	var buf strings.Builder
	if _, err := codes.Dump(&buf); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != NumSymbols {
		t.Fatalf("expected %d lines, got %d", NumSymbols, len(lines))
	}
	if expect, actual := "0\t00000000", lines[0]; expect != actual {
		t.Errorf("wrong first line:\n\texpect: %q\n\tactual: %q", expect, actual)
	}
	if expect, actual := "255\t11111111", lines[255]; expect != actual {
		t.Errorf("wrong last line:\n\texpect: %q\n\tactual: %q", expect, actual)
	}
}

func TestCode_String(t *testing.T) {
	if expect, actual := `"0110"`, Code("0110").String(); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}
