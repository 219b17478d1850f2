package huffman

import (
	"container/heap"
	"math/rand"
	"testing"
)

func makeTestFrequencies(s string) FrequencyTable {
	freq, err := Count([]byte(s))
	if err != nil {
		panic(err)
	}
	return freq
}

func TestBuildTree_Shape(t *testing.T) {
	inputs := map[string]FrequencyTable{
		"empty":       {},
		"aaaa":        makeTestFrequencies("aaaa"),
		"abracadabra": makeTestFrequencies("abracadabra"),
	}
	for name, freq := range inputs {
		t.Run(name, func(t *testing.T) {
			tree := BuildTree(freq)

			var leaves, internals int
			for id, node := range tree.nodes {
				if node.isLeaf() {
					leaves++
					if node.right != noChild {
						t.Errorf("leaf %d has a right child", id)
					}
					if node.freq != uint64(freq[id]) {
						t.Errorf("leaf %d: expected frequency %d, got %d", id, freq[id], node.freq)
					}
					continue
				}
				internals++
				if node.right == noChild {
					t.Errorf("internal node %d has a single child", id)
				}
				if sum := tree.nodes[node.left].freq + tree.nodes[node.right].freq; sum != node.freq {
					t.Errorf("internal node %d: expected frequency %d, got %d", id, sum, node.freq)
				}
			}
			if leaves != NumSymbols {
				t.Errorf("expected %d leaves, got %d", NumSymbols, leaves)
			}
			if internals != NumSymbols-1 {
				t.Errorf("expected %d internal nodes, got %d", NumSymbols-1, internals)
			}
			if tree.Weight() != freq.Total() {
				t.Errorf("expected weight %d, got %d", freq.Total(), tree.Weight())
			}
		})
	}
}

func TestBuildTree_AllZero(t *testing.T) {
	codes := NewCodeTable(FrequencyTable{})
	for symbol, code := range codes {
		if code.Len() != 8 {
			t.Errorf("symbol %d: expected an 8-bit code, got %s", symbol, code)
		}
	}
	if expect, actual := Code("00000000"), codes[0]; expect != actual {
		t.Errorf("wrong code for symbol 0:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
	if expect, actual := Code("11111111"), codes[255]; expect != actual {
		t.Errorf("wrong code for symbol 255:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}

func TestBuildTree_Deterministic(t *testing.T) {
	freq := makeTestFrequencies("the quick brown fox jumps over the lazy dog")
	a := BuildTree(freq)
	b := BuildTree(freq)
	if a.nodes != b.nodes {
		t.Errorf("two builds from the same table produced different trees")
	}
	if *GenerateCodes(a) != *GenerateCodes(b) {
		t.Errorf("two builds from the same table produced different codes")
	}
}

func TestHeap_InsertionOrder(t *testing.T) {
	var nodes [numNodes]huffmanNode
	for id := range nodes {
		// many equal frequencies so that only the tie-break decides
		nodes[id] = huffmanNode{freq: uint64(id % 3), left: noChild, right: noChild}
	}

	extractAll := func(order []int) []int {
		hub := huffmanHeap{nodes: &nodes}
		for _, id := range order {
			hub.insert(id)
		}
		out := make([]int, 0, len(order))
		for hub.Len() != 0 {
			out = append(out, hub.extractMin())
		}
		return out
	}

	order := make([]int, numNodes)
	for i := range order {
		order[i] = i
	}
	expect := extractAll(order)

	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 10; round++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		actual := extractAll(order)
		for i := range expect {
			if expect[i] != actual[i] {
				t.Fatalf("round %d: extraction %d differs: expect %d, actual %d", round, i, expect[i], actual[i])
			}
		}
	}

	for i := 1; i < len(expect); i++ {
		prev, cur := nodes[expect[i-1]], nodes[expect[i]]
		if prev.freq > cur.freq || (prev.freq == cur.freq && expect[i-1] > expect[i]) {
			t.Errorf("extraction %d out of order: %d then %d", i, expect[i-1], expect[i])
		}
	}
}

func TestHeap_LeafBeatsInternalOnTie(t *testing.T) {
	var nodes [numNodes]huffmanNode
	nodes[300] = huffmanNode{freq: 7, left: 1, right: 2}
	nodes[200] = huffmanNode{freq: 7, left: noChild, right: noChild}

	hub := huffmanHeap{nodes: &nodes}
	heap.Init(&hub)
	hub.insert(300)
	hub.insert(200)
	if id := hub.extractMin(); id != 200 {
		t.Errorf("expected leaf 200 first, got %d", id)
	}
}
