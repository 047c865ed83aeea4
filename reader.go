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
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	bindictlog "github.com/eightpen/bindict/internal/log"
)

// Prediction is one ranked next-word candidate returned by
// Reader.Predictions.
type Prediction struct {
	Word   string
	Weight uint8
}

// Correction is the result of Reader.Corrections. If Known is non-empty,
// it is the set of known words (with their stored weights) the ladder in
// §4.4 settled on — the word itself, an edit-distance-1 hit, or an
// edit-distance-2 hit, whichever tier was non-empty first. If Known is
// empty, no correction is available and Word (the original query) is the
// only thing callers have to fall back on — the "NotFound, not an error"
// case of §7, and the resolution of the spec's correction-return-shape
// Open Question (see DESIGN.md).
type Correction struct {
	Word  string
	Known map[string]uint8
}

// Reader owns a byte image and answers the four lookup queries of §4.4.
// It is not safe for concurrent use: its caches are mutated on every
// query without synchronization (§5). Callers needing concurrent access
// should open one Reader per goroutine over the same IndexFile (cheap —
// the file is immutable) or serialize access themselves.
type Reader struct {
	file IndexFile

	unigramCount uint32
	ngramsOffset uint32
	ngramCount   uint32

	cacheEnabled bool
	wordCache    map[string]uint32
	ngramCache   map[string]uint32

	logger *zap.Logger
}

// Open loads the header of f and returns a Reader ready to query. It
// validates that the n-gram region offset the header claims actually
// falls inside the file, failing fast with CorruptImage rather than
// deferring the check to the first query.
func Open(f IndexFile, opts ...ReaderOption) (*Reader, error) {
	cfg := readerConfig{cacheEnabled: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	if size < unigramHeaderSize {
		return nil, corruptImage(0, "file shorter than unigram header")
	}

	header, err := f.Read(0, unigramHeaderSize)
	if err != nil {
		return nil, wrapCorruptImage(0, "failed to read unigram header", err)
	}
	unigramCount := readUint24(header, 0)
	ngramsOffset := readUint24(header, 3)
	if ngramsOffset < unigramsOffset || ngramsOffset+ngramHeaderSize > size {
		return nil, corruptImage(ngramsOffset, "n-gram region offset out of bounds")
	}

	ngramHeader, err := f.Read(ngramsOffset, ngramHeaderSize)
	if err != nil {
		return nil, wrapCorruptImage(ngramsOffset, "failed to read n-gram header", err)
	}

	r := &Reader{
		file:         f,
		unigramCount: unigramCount,
		ngramsOffset: ngramsOffset,
		ngramCount:   readUint24(ngramHeader, 0),
		cacheEnabled: cfg.cacheEnabled,
		logger:       bindictlog.Get(),
	}
	if r.cacheEnabled {
		r.wordCache = map[string]uint32{}
		r.ngramCache = map[string]uint32{}
	}
	return r, nil
}

// Close releases the underlying IndexFile.
func (r *Reader) Close() { r.file.Close() }

func readByteAt(f IndexFile, off uint32) (byte, error) {
	b, err := f.Read(off, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func readU24At(f IndexFile, off uint32) (uint32, error) {
	b, err := f.Read(off, 3)
	if err != nil {
		return 0, err
	}
	return readUint24(b, 0), nil
}

func (r *Reader) unigramWeight(node uint32) (uint8, error) {
	b, err := readByteAt(r.file, node+unigramWeightOff)
	return uint8(b), err
}

func (r *Reader) ngramWeight(node uint32) (uint8, error) {
	b, err := readByteAt(r.file, node+ngramWeightOff)
	return uint8(b), err
}

// findUnigram resolves word to its unigram node address, or 0 if not
// found (§4.4). Every fully-consumed prefix along a successful path is
// cached, not just the final word, matching the original's memoisation of
// intermediate prefixes.
func (r *Reader) findUnigram(word string) (uint32, error) {
	if r.cacheEnabled {
		if off, ok := r.wordCache[word]; ok {
			return off, nil
		}
	}
	return r.findUnigramFrom(word, unigramsOffset, "")
}

func (r *Reader) findUnigramFrom(word string, offset uint32, prefix string) (uint32, error) {
	if len(word) == 0 {
		if len(prefix) > 0 {
			if r.cacheEnabled {
				r.wordCache[prefix] = offset
			}
			return offset, nil
		}
		return 0, nil
	}

	head := word[0]
	childCount, err := readByteAt(r.file, offset+unigramChildCntOff)
	if err != nil {
		return 0, err
	}
	for i := 0; i < int(childCount); i++ {
		childOff, err := readU24At(r.file, offset+unigramChildrenOff+uint32(3*i))
		if err != nil {
			return 0, err
		}
		c, err := readByteAt(r.file, childOff+unigramCharOff)
		if err != nil {
			return 0, err
		}
		if c == head {
			next := prefix + string(head)
			if r.cacheEnabled {
				r.wordCache[next] = childOff
			}
			return r.findUnigramFrom(word[1:], childOff, next)
		}
	}
	return 0, nil
}

// Exists reports whether word is a final unigram node (§4.4 exists).
func (r *Reader) Exists(word string) (bool, error) {
	off, err := r.findUnigram(word)
	if err != nil {
		return false, err
	}
	if off == 0 {
		return false, nil
	}
	w, err := r.unigramWeight(off)
	if err != nil {
		return false, err
	}
	return w > 0, nil
}

// ngramCacheKey builds the positional-concatenation key described in §9:
// distinct phrases that resolve to the same address chain (e.g. both
// contain only unknown words, all mapped to address 0) collide on
// purpose — both collide to "no prediction".
func ngramCacheKey(addrs []uint32) string {
	var b strings.Builder
	for _, a := range addrs {
		b.WriteString(strconv.FormatUint(uint64(a), 10))
		b.WriteByte('_')
	}
	return b.String()
}

// findNgram walks the n-gram trie, descending into the child whose
// unigram-tail field matches each successive address in addrs, and
// returns the address of the final node in that chain (or 0 if the chain
// does not exist).
func (r *Reader) findNgram(addrs []uint32) (uint32, error) {
	if r.cacheEnabled {
		if off, ok := r.ngramCache[ngramCacheKey(addrs)]; ok {
			return off, nil
		}
	}
	return r.findNgramFrom(addrs, r.ngramsOffset+ngramHeaderSize, nil)
}

func (r *Reader) findNgramFrom(addrs []uint32, offset uint32, prefix []uint32) (uint32, error) {
	if len(addrs) == 0 {
		if len(prefix) > 0 {
			if r.cacheEnabled {
				r.ngramCache[ngramCacheKey(prefix)] = offset
			}
			return offset, nil
		}
		return 0, nil
	}

	head := addrs[0]
	childCount, err := readByteAt(r.file, offset+ngramChildCntOff)
	if err != nil {
		return 0, err
	}
	for i := 0; i < int(childCount); i++ {
		childOff, err := readU24At(r.file, offset+ngramChildrenOff+uint32(3*i))
		if err != nil {
			return 0, err
		}
		tail, err := readU24At(r.file, childOff+ngramUnigramTailOff)
		if err != nil {
			return 0, err
		}
		if tail == head {
			next := append(append([]uint32{}, prefix...), head)
			return r.findNgramFrom(addrs[1:], childOff, next)
		}
	}
	return 0, nil
}

// ancestors returns the chain of unigram node addresses from the
// root-most labelled node down to node, inclusive, by following parent
// pointers (§4.4 "Ancestor reconstruction").
func (r *Reader) ancestors(node uint32) ([]uint32, error) {
	chain := []uint32{node}
	parent, err := r.parentOf(node)
	if err != nil {
		return nil, err
	}
	for parent > unigramsOffset {
		chain = append([]uint32{parent}, chain...)
		parent, err = r.parentOf(parent)
		if err != nil {
			return nil, err
		}
	}
	return chain, nil
}

func (r *Reader) parentOf(node uint32) (uint32, error) {
	if node == 0 || node >= r.ngramsOffset {
		return 0, nil
	}
	return readU24At(r.file, node+unigramParentOff)
}

// constructWord reconstructs a word from an ancestor chain produced by
// ancestors, skipping the root's synthetic zero byte.
func (r *Reader) constructWord(chain []uint32) (string, error) {
	var b strings.Builder
	for _, node := range chain {
		c, err := readByteAt(r.file, node+unigramCharOff)
		if err != nil {
			return "", err
		}
		if c == 0 {
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

func (r *Reader) wordAt(node uint32) (string, error) {
	chain, err := r.ancestors(node)
	if err != nil {
		return "", err
	}
	return r.constructWord(chain)
}

// Predictions returns ranked next-word candidates for phrase, sorted by
// non-increasing weight with stable insertion-order tie-breaking (§4.4
// predictions, §8 "Sort stability").
func (r *Reader) Predictions(phrase []string) ([]Prediction, error) {
	addrs := make([]uint32, len(phrase))
	for i, w := range phrase {
		off, err := r.findUnigram(w)
		if err != nil {
			return nil, err
		}
		addrs[i] = off
	}

	node, err := r.findNgram(addrs)
	if err != nil {
		return nil, err
	}
	if node == 0 {
		return nil, nil
	}

	childCount, err := readByteAt(r.file, node+ngramChildCntOff)
	if err != nil {
		return nil, err
	}

	preds := make([]Prediction, 0, childCount)
	for i := 0; i < int(childCount); i++ {
		childOff, err := readU24At(r.file, node+ngramChildrenOff+uint32(3*i))
		if err != nil {
			return nil, err
		}
		weight, err := r.ngramWeight(childOff)
		if err != nil {
			return nil, err
		}
		tail, err := readU24At(r.file, childOff+ngramUnigramTailOff)
		if err != nil {
			return nil, err
		}
		if tail == 0 {
			continue
		}
		word, err := r.wordAt(tail)
		if err != nil {
			return nil, err
		}
		preds = append(preds, Prediction{Word: word, Weight: weight})
	}

	sort.SliceStable(preds, func(i, j int) bool { return preds[i].Weight > preds[j].Weight })
	return preds, nil
}

// known filters words to the ones that are final unigrams, returning a
// map of word to stored weight (§4.4 "known(S)").
func (r *Reader) known(words map[string]struct{}) (map[string]uint8, error) {
	out := map[string]uint8{}
	for word := range words {
		off, err := r.findUnigram(word)
		if err != nil {
			return nil, err
		}
		if off == 0 {
			continue
		}
		weight, err := r.unigramWeight(off)
		if err != nil {
			return nil, err
		}
		if weight > 0 {
			out[word] = weight
		}
	}
	return out, nil
}

// knownVariations returns the edit-distance-2 closure of word, restricted
// to known (final unigram) words (§4.4 known_variations).
func (r *Reader) knownVariations(word string) (map[string]uint8, error) {
	candidates := variations2(word)
	return r.known(candidates)
}

// Corrections evaluates the correction ladder of §4.4 in order, returning
// the first non-empty tier: the word itself, edit-distance-1 hits,
// edit-distance-2 hits, or (if none known) a Correction with an empty
// Known map and Word set to the query, signalling "no correction
// available" (§8 "Correction preference").
func (r *Reader) Corrections(word string) (Correction, error) {
	if self, err := r.known(map[string]struct{}{word: {}}); err != nil {
		return Correction{}, err
	} else if len(self) > 0 {
		return Correction{Word: word, Known: self}, nil
	}

	if d1, err := r.known(variations(word)); err != nil {
		return Correction{}, err
	} else if len(d1) > 0 {
		return Correction{Word: word, Known: d1}, nil
	}

	d2, err := r.knownVariations(word)
	if err != nil {
		return Correction{}, err
	}
	if len(d2) > 0 {
		return Correction{Word: word, Known: d2}, nil
	}

	return Correction{Word: word, Known: map[string]uint8{}}, nil
}

// unigramChildren returns (address, weight) pairs for node's children.
func (r *Reader) unigramChildren(node uint32) ([]struct {
	Addr   uint32
	Weight uint8
}, error) {
	childCount, err := readByteAt(r.file, node+unigramChildCntOff)
	if err != nil {
		return nil, err
	}
	out := make([]struct {
		Addr   uint32
		Weight uint8
	}, 0, childCount)
	for i := 0; i < int(childCount); i++ {
		childOff, err := readU24At(r.file, node+unigramChildrenOff+uint32(3*i))
		if err != nil {
			return nil, err
		}
		weight, err := r.unigramWeight(childOff)
		if err != nil {
			return nil, err
		}
		out = append(out, struct {
			Addr   uint32
			Weight uint8
		}{childOff, weight})
	}
	return out, nil
}

// descendants performs the depth-bounded DFS of §4.4 completions step 2:
// at depth 0, yield node iff final; otherwise collect every child whose
// weight is positive and recurse into all children with depth-1.
func (r *Reader) descendants(node uint32, depth int, out map[uint32]struct{}) error {
	if depth == 0 {
		w, err := r.unigramWeight(node)
		if err != nil {
			return err
		}
		if w > 0 {
			out[node] = struct{}{}
		}
		return nil
	}

	children, err := r.unigramChildren(node)
	if err != nil {
		return err
	}
	for _, child := range children {
		if child.Weight > 0 {
			out[child.Addr] = struct{}{}
		}
		if err := r.descendants(child.Addr, depth-1, out); err != nil {
			return err
		}
	}
	return nil
}

// Completions returns every final word reachable from prefix within at
// most depth additional characters (§4.4 completions). An unknown prefix
// yields no completions.
func (r *Reader) Completions(prefix string, depth int) ([]string, error) {
	node, err := r.findUnigram(prefix)
	if err != nil {
		return nil, err
	}
	if node == 0 {
		return nil, nil
	}

	found := map[uint32]struct{}{}
	if err := r.descendants(node, depth, found); err != nil {
		return nil, err
	}

	words := make([]string, 0, len(found))
	for addr := range found {
		w, err := r.wordAt(addr)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}
