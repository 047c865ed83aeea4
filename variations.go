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

// alphabet is the fixed set of characters correction candidates are
// generated over. It matches original_source/scripts/corrector.py exactly.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

// variations returns the set of strings reachable from word by exactly one
// single deletion, adjacent transposition, single-character replacement,
// or single-character insertion. Replacement includes the same letter, so
// a non-empty word is itself in the set. The result has no duplicates. Ported directly from corrector.py's `variations`, a la
// Peter Norvig's spelling corrector.
func variations(word string) map[string]struct{} {
	n := len(word)
	out := make(map[string]struct{}, n*(len(alphabet)+2))

	for i := 0; i <= n; i++ {
		head, tail := word[:i], word[i:]

		// delete: drop the first rune of tail.
		if len(tail) > 0 {
			out[head+tail[1:]] = struct{}{}
		}

		// transpose: swap the first two runes of tail.
		if len(tail) > 1 {
			out[head+string(tail[1])+string(tail[0])+tail[2:]] = struct{}{}
		}

		// replace: substitute the first rune of tail.
		if len(tail) > 0 {
			for j := 0; j < len(alphabet); j++ {
				out[head+alphabet[j:j+1]+tail[1:]] = struct{}{}
			}
		}

		// insert: add a letter at this gap, including the final one past tail.
		for j := 0; j < len(alphabet); j++ {
			out[head+alphabet[j:j+1]+tail] = struct{}{}
		}
	}

	return out
}

// variations2 returns the edit-distance-2 closure of word: the image of
// variations composed with itself, i.e. every variation of every
// variation of word.
func variations2(word string) map[string]struct{} {
	out := make(map[string]struct{})
	for v1 := range variations(word) {
		for v2 := range variations(v1) {
			out[v2] = struct{}{}
		}
	}
	return out
}
