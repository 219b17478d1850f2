// Package huffman implements a static, two-pass Huffman coder over the byte
// alphabet.
//
// A FrequencyTable of 256 counts is turned into a Tree whose shape depends
// only on the table, so the decoding side can rebuild the identical tree from
// the persisted counts.  The persisted stream is laid out as
//
//	header   256 x uint32 little-endian counts, symbol order 0..255
//	payload  code bits, most significant bit first, zero padded to a byte
//	trailer  uint32 little-endian count of meaningful payload bits
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffman
