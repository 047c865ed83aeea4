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

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/eightpen/bindict/trie"
)

// loadUnigrams reads a tab-separated "word<TAB>weight" corpus file into a
// unigram trie. This is the Go replacement for the tokeniser/corpus-parsing
// concern the core package deliberately excludes (spec.md §1): parsing
// lives in the CLI, not in the library.
func loadUnigrams(t *trie.Tree, path string) error {
	return eachLine(path, func(line string) error {
		word, weight, err := splitWeighted(line)
		if err != nil {
			return err
		}
		t.InsertWord(word, weight)
		return nil
	})
}

// loadNgrams reads a tab-separated "word1 word2 ... wordN<TAB>weight"
// corpus file into an n-gram trie.
func loadNgrams(t *trie.Tree, path string) error {
	return eachLine(path, func(line string) error {
		phrase, weight, err := splitWeighted(line)
		if err != nil {
			return err
		}
		words := strings.Fields(phrase)
		if len(words) < 2 {
			return fmt.Errorf("n-gram phrase %q has fewer than 2 words", phrase)
		}
		t.InsertPhrase(words, weight)
		return nil
	})
}

func splitWeighted(line string) (key string, weight float64, err error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("expected <key>\\t<weight>, got %q", line)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid weight in %q: %w", line, err)
	}
	return strings.TrimSpace(parts[0]), w, nil
}

func eachLine(path string, fn func(string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
