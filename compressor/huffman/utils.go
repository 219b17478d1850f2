package huffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

const (
	numNodes = 2*NumSymbols - 1
	rootId   = numNodes - 1
	noChild  = -1
)

// huffmanNode is either a leaf (no children, id == symbol) or an internal
// node owning exactly two children.
type huffmanNode struct {
	freq        uint64
	left, right int
}

func (node huffmanNode) isLeaf() bool {
	return node.left == noChild
}

// Tree is a Huffman tree over the full byte alphabet.  The nodes live in an
// arena: ids 0..255 are the leaves (id == symbol), ids 256..510 are the
// internal nodes in creation order, and the root is always the last one.
type Tree struct {
	nodes [numNodes]huffmanNode
}

// huffmanHeap orders node ids by frequency, then by id.  Leaf ids are their
// symbols and internal ids grow with insertion, so equal frequencies resolve
// the same way on every build.
type huffmanHeap struct {
	ids   []int
	nodes *[numNodes]huffmanNode
}

func (hub *huffmanHeap) Push(item any) {
	hub.ids = append(hub.ids, item.(int))
}

func (hub *huffmanHeap) Pop() any {
	last := len(hub.ids) - 1
	popped := hub.ids[last]
	hub.ids = hub.ids[:last]
	return popped
}

func (hub *huffmanHeap) Len() int {
	return len(hub.ids)
}

func (hub *huffmanHeap) Less(i, j int) bool {
	a, b := hub.ids[i], hub.ids[j]
	fa, fb := hub.nodes[a].freq, hub.nodes[b].freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}

func (hub *huffmanHeap) Swap(i, j int) {
	hub.ids[i], hub.ids[j] = hub.ids[j], hub.ids[i]
}

func (hub *huffmanHeap) insert(id int) {
	heap.Push(hub, id)
}

func (hub *huffmanHeap) extractMin() int {
	return heap.Pop(hub).(int)
}

var _ heap.Interface = (*huffmanHeap)(nil)

// BuildTree builds the Huffman tree for freq.  All 256 symbols become leaves,
// including those with a count of zero, so the result always has 256 leaves
// and 255 internal nodes.  The first node extracted from the heap becomes the
// left child and the second the right child.
func BuildTree(freq FrequencyTable) *Tree {
	tree := new(Tree)
	hub := huffmanHeap{
		ids:   make([]int, 0, NumSymbols),
		nodes: &tree.nodes,
	}
	for symbol := 0; symbol < NumSymbols; symbol++ {
		tree.nodes[symbol] = huffmanNode{
			freq:  uint64(freq[symbol]),
			left:  noChild,
			right: noChild,
		}
		hub.insert(symbol)
	}

	monoId := NumSymbols
	for hub.Len() > 1 {
		x := hub.extractMin()
		y := hub.extractMin()
		tree.nodes[monoId] = huffmanNode{
			freq:  tree.nodes[x].freq + tree.nodes[y].freq,
			left:  x,
			right: y,
		}
		hub.insert(monoId)
		monoId++
	}

	root := hub.extractMin()
	assert.Assertf(monoId == numNodes, "built %d nodes, want %d", monoId, numNodes)
	assert.Assertf(root == rootId, "root is node %d, want %d", root, rootId)
	return tree
}

// Weight returns the frequency of the root, i.e. the total of all counts.
func (t *Tree) Weight() uint64 {
	return t.nodes[rootId].freq
}

// step moves from an internal node to one of its children.
func (t *Tree) step(id int, bit bool) int {
	node := t.nodes[id]
	if bit {
		return node.right
	}
	return node.left
}

// walk visits every leaf depth-first, left before right, handing it the path
// from the root.  An explicit stack keeps the depth of the Go call stack
// constant no matter how skewed the tree is.
func (t *Tree) walk(visit func(symbol byte, path Code)) {
	type stackItem struct {
		id   int
		path Code
	}

	stack := make([]stackItem, 0, NumSymbols)
	stack = append(stack, stackItem{id: rootId})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[top.id]
		if node.isLeaf() {
			visit(byte(top.id), top.path)
			continue
		}
		assert.Assertf(node.right != noChild, "internal node %d has a single child", top.id)

		// right is pushed first so the left subtree is visited first
		stack = append(stack, stackItem{id: node.right, path: top.path + "1"})
		stack = append(stack, stackItem{id: node.left, path: top.path + "0"})
	}
}
