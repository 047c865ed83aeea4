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

// Command bindict builds and queries binary n-gram dictionaries: the Go
// replacement for original_source/python/makedict.py.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/peterbourgon/ff/v3/ffcli"
	"go.uber.org/zap"

	"github.com/eightpen/bindict"
	bindictlog "github.com/eightpen/bindict/internal/log"
	"github.com/eightpen/bindict/trie"
)

func main() {
	root := &ffcli.Command{
		Name:        "bindict",
		ShortUsage:  "bindict <subcommand> [flags] [args...]",
		ShortHelp:   "build and query binary n-gram dictionaries",
		Subcommands: []*ffcli.Command{buildCmd(), queryCmd()},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}

	if err := root.ParseAndRun(context.Background(), os.Args[1:]); err != nil && err != flag.ErrHelp {
		fmt.Fprintln(os.Stderr, "bindict:", err)
		os.Exit(1)
	}
}

func buildCmd() *ffcli.Command {
	fs := flag.NewFlagSet("bindict build", flag.ExitOnError)
	var (
		unigramsPath = fs.String("unigrams", "", "unigram corpus file (word<TAB>weight per line)")
		ngramsPath   = fs.String("ngrams", "", "comma-separated n-gram corpus files (word1 word2 ...<TAB>weight per line)")
		output       = fs.String("o", "", "output dictionary file")
		demo         = fs.Bool("demo", false, "ignore -unigrams/-ngrams and encode the built-in demo dictionary")
	)

	return &ffcli.Command{
		Name:       "build",
		ShortUsage: "bindict build -o <output> [-unigrams <file>] [-ngrams <file,...>] | -demo",
		ShortHelp:  "build a binary dictionary from corpus files",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if *output == "" {
				return fmt.Errorf("missing -o output file")
			}

			unigrams := trie.NewTree()
			ngrams := trie.NewTree()

			if *demo {
				demoDictionary(unigrams, ngrams)
			} else {
				if *unigramsPath == "" && *ngramsPath == "" {
					return fmt.Errorf("must specify -unigrams, -ngrams, or -demo")
				}
				if *unigramsPath != "" {
					if err := loadUnigrams(unigrams, *unigramsPath); err != nil {
						return err
					}
				}
				for _, p := range strings.Split(*ngramsPath, ",") {
					if p == "" {
						continue
					}
					if err := loadNgrams(ngrams, p); err != nil {
						return err
					}
				}
			}

			return build(unigrams, ngrams, *output)
		},
	}
}

func build(unigrams, ngrams *trie.Tree, output string) error {
	logger := bindictlog.Get()

	enc := bindict.NewEncoder()
	if err := enc.EncodeUnigrams(unigrams); err != nil {
		return err
	}
	if err := enc.EncodeNgrams(ngrams); err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := enc.WriteTo(f)
	if err != nil {
		return err
	}

	logger.Info("wrote dictionary",
		zap.String("path", output),
		zap.String("size", humanize.Bytes(uint64(n))),
	)
	return nil
}

// demoDictionary populates unigrams/ngrams with the scenario dictionary
// from spec.md §8 ("Concrete scenarios"), the Go analogue of
// python/makedict.py's generate_test_dict.
func demoDictionary(unigrams, ngrams *trie.Tree) {
	for word, weight := range map[string]float64{
		"a": 200, "hi": 130, "hello": 120, "there": 140,
		"how": 150, "are": 80, "you": 200, "your": 100,
	} {
		unigrams.InsertWord(word, weight)
	}

	phrases := []struct {
		words  []string
		weight float64
	}{
		{[]string{"hello", "there"}, 20},
		{[]string{"hello", "you"}, 25},
		{[]string{"how", "are", "you"}, 80},
		{[]string{"you", "are", "there"}, 30},
		{[]string{"are", "you", "there"}, 60},
	}
	for _, p := range phrases {
		ngrams.InsertPhrase(p.words, p.weight)
	}
}

func queryCmd() *ffcli.Command {
	fs := flag.NewFlagSet("bindict query", flag.ExitOnError)
	dictPath := fs.String("dict", "", "path to a binary dictionary file")

	return &ffcli.Command{
		Name:       "query",
		ShortUsage: "bindict query -dict <file> exists|predict|correct|complete <args...>",
		ShortHelp:  "query a binary dictionary",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			if *dictPath == "" {
				return fmt.Errorf("missing -dict")
			}
			if len(args) < 1 {
				return fmt.Errorf("missing query kind: exists|predict|correct|complete")
			}

			f, err := bindict.OpenFile(*dictPath)
			if err != nil {
				return err
			}
			defer f.Close()

			r, err := bindict.Open(f)
			if err != nil {
				return err
			}
			defer r.Close()

			return runQuery(r, args[0], args[1:])
		},
	}
}

func runQuery(r *bindict.Reader, kind string, args []string) error {
	switch kind {
	case "exists":
		if len(args) != 1 {
			return fmt.Errorf("exists requires exactly one word")
		}
		ok, err := r.Exists(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ok)

	case "predict":
		if len(args) == 0 {
			return fmt.Errorf("predict requires a phrase")
		}
		preds, err := r.Predictions(args)
		if err != nil {
			return err
		}
		for _, p := range preds {
			fmt.Printf("%s\t%d\n", p.Word, p.Weight)
		}

	case "correct":
		if len(args) != 1 {
			return fmt.Errorf("correct requires exactly one word")
		}
		c, err := r.Corrections(args[0])
		if err != nil {
			return err
		}
		if len(c.Known) == 0 {
			fmt.Println(c.Word)
			return nil
		}
		for word, weight := range c.Known {
			fmt.Printf("%s\t%d\n", word, weight)
		}

	case "complete":
		if len(args) != 2 {
			return fmt.Errorf("complete requires <prefix> <depth>")
		}
		depth, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid depth %q: %w", args[1], err)
		}
		words, err := r.Completions(args[0], depth)
		if err != nil {
			return err
		}
		for _, w := range words {
			fmt.Println(w)
		}

	default:
		return fmt.Errorf("unknown query kind %q", kind)
	}
	return nil
}
