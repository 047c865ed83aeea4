// Copyright 2012 8pen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bindict

import (
	"io"
	"math"

	"go.uber.org/zap"

	bindictlog "github.com/eightpen/bindict/internal/log"
	"github.com/eightpen/bindict/internal/timing"
	"github.com/eightpen/bindict/trie"
)

// Encoder serialises builder tries (trie.Node) into the byte image
// described by §3/§6.1. Call EncodeUnigrams once, then EncodeNgrams once;
// EncodeNgrams resolves each n-gram edge's word against the unigram image
// EncodeUnigrams just wrote, so the order is mandatory.
type Encoder struct {
	buf    []byte
	pos    uint32
	logger *zap.Logger
}

// NewEncoder returns an Encoder with an empty working buffer.
func NewEncoder(opts ...EncoderOption) *Encoder {
	cfg := encoderConfig{bufferSize: defaultBufferSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Encoder{
		buf:    make([]byte, cfg.bufferSize),
		pos:    unigramsOffset,
		logger: bindictlog.Get(),
	}
}

// ensure grows buf, doubling it, until it can hold at least upto bytes.
// It never grows past the 24-bit address space; a request beyond that is
// an EncodeOverflowError.
func (e *Encoder) ensure(upto uint32) error {
	if upto > maxAddress {
		return encodeOverflow(upto)
	}
	if int(upto) <= len(e.buf) {
		return nil
	}
	newSize := len(e.buf)
	if newSize == 0 {
		newSize = 4096
	}
	for newSize < int(upto) {
		newSize *= 2
	}
	if newSize > maxAddress+1 {
		newSize = maxAddress + 1
	}
	grown := make([]byte, newSize)
	copy(grown, e.buf)
	e.buf = grown
	return nil
}

// EncodeUnigrams serialises the unigram trie rooted at root, writing the
// 6-byte unigram header and the pre-order node walk described in §4.3.
func (e *Encoder) EncodeUnigrams(root trie.Node) error {
	mon := timing.NewMonitor(e.logger, "encode_unigrams")
	defer mon.Stop()

	if err := e.ensure(unigramHeaderSize); err != nil {
		return err
	}
	numNodes := root.Count()
	putUint24(e.buf, 0, uint32(numNodes))
	// bytes 3..5 (n-gram region offset) are filled in by EncodeNgrams.
	putUint24(e.buf, 3, 0)
	e.pos = unigramsOffset

	_, err := e.addUnigramNode(root, 0, 0)
	return err
}

// addUnigramNode implements the pre-order, address-reserving walk of
// §4.3: record this node's offset, write its header (char, weight, child
// count, parent), reserve space for child pointers, recurse into each
// child in insertion order, then backfill the reserved slots.
func (e *Encoder) addUnigramNode(node trie.Node, char byte, parent uint32) (uint32, error) {
	children := node.Children()
	offset := e.pos

	if err := e.ensure(offset + unigramChildrenOff + uint32(len(children))*3); err != nil {
		return 0, err
	}

	weight, hasWeight := node.Weight()
	e.buf[offset+unigramCharOff] = char
	e.buf[offset+unigramWeightOff] = unigramWeightByte(weight, hasWeight)
	e.buf[offset+unigramChildCntOff] = clampByte(len(children))
	putUint24(e.buf, int(offset+unigramParentOff), parent)

	childrenOff := offset + unigramChildrenOff
	e.pos = childrenOff + uint32(len(children))*3

	for i, label := range children {
		child, _ := node.Child(label)
		childOff, err := e.addUnigramNode(child, label[0], offset)
		if err != nil {
			return 0, err
		}
		putUint24(e.buf, int(childrenOff)+3*i, childOff)
	}
	return offset, nil
}

// unigramWeightByte quantises a unigram weight: floor, clamp to 0..255,
// and round a set weight that quantises to zero up to 1 so encoders never
// silently emit a non-final node for a word the dictionary should
// recognise (§4.3 "Weight quantisation"). An absent weight (a non-final
// prefix node) stays 0.
func unigramWeightByte(weight float64, hasWeight bool) byte {
	if !hasWeight {
		return 0
	}
	b := clampByte(int(math.Floor(weight)))
	if b == 0 {
		return 1
	}
	return b
}

// EncodeNgrams serialises the n-gram trie rooted at root. Must be called
// after EncodeUnigrams: each n-gram edge's word is resolved to its
// unigram tail address by walking the unigram image just written.
func (e *Encoder) EncodeNgrams(root trie.Node) error {
	mon := timing.NewMonitor(e.logger, "encode_ngrams")
	defer mon.Stop()

	ngramsOffset := e.pos
	putUint24(e.buf, 3, ngramsOffset)

	if err := e.ensure(ngramsOffset + ngramHeaderSize); err != nil {
		return err
	}
	numNodes := root.Count()
	putUint24(e.buf, int(ngramsOffset), uint32(numNodes))
	e.pos = ngramsOffset + ngramHeaderSize

	_, err := e.addNgramNode(root, "")
	return err
}

// addNgramNode mirrors addUnigramNode for the n-gram trie: the per-node
// payload is a unigram tail address (0 for the root, which carries no
// word) rather than a character.
func (e *Encoder) addNgramNode(node trie.Node, word string) (uint32, error) {
	children := node.Children()
	offset := e.pos

	if err := e.ensure(offset + ngramChildrenOff + uint32(len(children))*3); err != nil {
		return 0, err
	}

	var tail uint32
	if word != "" {
		tail = e.findUnigram(word)
	}
	weight, hasWeight := node.Weight()

	putUint24(e.buf, int(offset+ngramUnigramTailOff), tail)
	e.buf[offset+ngramWeightOff] = ngramWeightByte(weight, hasWeight)
	e.buf[offset+ngramChildCntOff] = clampByte(len(children))

	childrenOff := offset + ngramChildrenOff
	e.pos = childrenOff + uint32(len(children))*3

	for i, label := range children {
		child, _ := node.Child(label)
		childOff, err := e.addNgramNode(child, label)
		if err != nil {
			return 0, err
		}
		putUint24(e.buf, int(childrenOff)+3*i, childOff)
	}
	return offset, nil
}

// ngramWeightByte quantises an n-gram weight: floor then clamp (§4.3).
// Unlike unigram weights, a zero n-gram weight is left as 0 — the spec
// notes this is rare in practice since the encoder writes a weight for
// every n-gram node, but does not require rounding it up.
func ngramWeightByte(weight float64, hasWeight bool) byte {
	if !hasWeight {
		return 0
	}
	return clampByte(int(math.Floor(weight)))
}

// findUnigram resolves word to its unigram tail address by walking the
// unigram image this Encoder has already written, using the same
// algorithm as the Reader's find_unigram (§4.4) but without caching: a
// word that labels several n-gram edges is walked again for each. Returns 0
// if word is not present in the unigram trie (§4.3: "a missing word
// resolves to 0").
func (e *Encoder) findUnigram(word string) uint32 {
	offset := uint32(unigramsOffset)
	for i := 0; i < len(word); i++ {
		childCount := int(e.buf[offset+unigramChildCntOff])
		found := false
		for c := 0; c < childCount; c++ {
			childOff := readUint24(e.buf, int(offset+unigramChildrenOff)+3*c)
			if e.buf[childOff+unigramCharOff] == word[i] {
				offset = childOff
				found = true
				break
			}
		}
		if !found {
			return 0
		}
	}
	if len(word) == 0 {
		return 0
	}
	return offset
}

// Bytes returns the encoded image trimmed to its high-water mark (§4.3
// "Trimming"). The returned slice aliases the Encoder's internal buffer;
// callers that intend to keep mutating the Encoder afterwards (they
// shouldn't — an Encoder is single-use) should copy it.
func (e *Encoder) Bytes() []byte {
	return e.buf[:e.pos]
}

// WriteTo writes the trimmed image to w, implementing io.WriterTo. This
// is the Go analogue of the original's write_to_file.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(e.Bytes())
	return int64(n), err
}
