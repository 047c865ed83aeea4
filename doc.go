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

// Package bindict implements a compact binary n-gram dictionary for
// predictive text: two interlocked tries (a character trie of unigrams
// and a word trie of n-grams referencing unigram addresses) packed into a
// single byte image addressed by 24-bit offsets, suitable for
// memory-mapping on constrained devices.
//
// An Encoder turns two builder tries (see package trie) into that byte
// image. A Reader opens the image (via OpenFile for a memory-mapped file,
// or NewMemIndexFile for bytes already in memory) and answers four
// queries: Exists, Predictions, Corrections, and Completions.
package bindict
