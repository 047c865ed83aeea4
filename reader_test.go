package bindict

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func openScenarioReader(t *testing.T, opts ...ReaderOption) *Reader {
	t.Helper()
	buf := encodeScenario(t)
	f := NewMemIndexFile("scenario", buf)
	r, err := Open(f, opts...)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func TestExists(t *testing.T) {
	r := openScenarioReader(t)

	ok, err := r.Exists("hello")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Exists("a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Exists("hellos")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.Exists("h")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPredictionsAfterHello(t *testing.T) {
	r := openScenarioReader(t)

	preds, err := r.Predictions([]string{"hello"})
	require.NoError(t, err)

	// "hello you" (25) outranks "hello there" (20); Predictions sorts by
	// non-increasing weight, so this is the exact expected ordering.
	want := []Prediction{
		{Word: "you", Weight: 25},
		{Word: "there", Weight: 20},
	}
	if diff := cmp.Diff(want, preds); diff != "" {
		t.Errorf("Predictions([\"hello\"]) mismatch (-want +got):\n%s", diff)
	}
}

func TestPredictionsAfterHowAre(t *testing.T) {
	r := openScenarioReader(t)

	preds, err := r.Predictions([]string{"how", "are"})
	require.NoError(t, err)

	words := make([]string, 0, len(preds))
	for _, p := range preds {
		words = append(words, p.Word)
	}
	require.Contains(t, words, "you")
}

func TestPredictionsUnknownPhraseIsEmpty(t *testing.T) {
	r := openScenarioReader(t)

	preds, err := r.Predictions([]string{"nope", "never"})
	require.NoError(t, err)
	require.Empty(t, preds)
}

func TestCorrectionsTypo(t *testing.T) {
	r := openScenarioReader(t)

	c, err := r.Corrections("yuu")
	require.NoError(t, err)
	require.Contains(t, c.Known, "you")
}

func TestCorrectionsReplacedLetter(t *testing.T) {
	r := openScenarioReader(t)

	c, err := r.Corrections("yuur")
	require.NoError(t, err)
	require.Contains(t, c.Known, "your")
}

func TestCorrectionsExactWordPreferred(t *testing.T) {
	r := openScenarioReader(t)

	c, err := r.Corrections("you")
	require.NoError(t, err)
	require.Contains(t, c.Known, "you")
	// exact-match tier returns only the word itself, not its neighbours.
	require.Len(t, c.Known, 1)
}

func TestCorrectionsUnknownFallsBackEmpty(t *testing.T) {
	r := openScenarioReader(t)

	c, err := r.Corrections("zzzzzzzzzz")
	require.NoError(t, err)
	require.Empty(t, c.Known)
	require.Equal(t, "zzzzzzzzzz", c.Word)
}

func TestCompletionsDepthOne(t *testing.T) {
	r := openScenarioReader(t)

	words, err := r.Completions("yo", 1)
	require.NoError(t, err)
	require.Contains(t, words, "you")
	require.NotContains(t, words, "your")
}

func TestCompletionsDepthTwo(t *testing.T) {
	r := openScenarioReader(t)

	words, err := r.Completions("yo", 2)
	require.NoError(t, err)

	// Completions returns a set (map iteration order), so compare it to
	// the expected set unordered rather than asserting exact slice order.
	want := []string{"you", "your"}
	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(want, words, sortStrings); diff != "" {
		t.Errorf("Completions(\"yo\", 2) mismatch (-want +got):\n%s", diff)
	}
}

func TestCompletionsExcludesNonFinalNode(t *testing.T) {
	r := openScenarioReader(t)

	words, err := r.Completions("y", 1)
	require.NoError(t, err)
	require.NotContains(t, words, "yo")
}

func TestCompletionsUnknownPrefixIsEmpty(t *testing.T) {
	r := openScenarioReader(t)

	words, err := r.Completions("zz", 2)
	require.NoError(t, err)
	require.Empty(t, words)
}

func TestCacheTransparency(t *testing.T) {
	cached := openScenarioReader(t, WithCache(true))
	uncached := openScenarioReader(t, WithCache(false))

	for _, word := range []string{"hello", "hi", "nope", "you"} {
		gotCached, err := cached.Exists(word)
		require.NoError(t, err)
		gotUncached, err := uncached.Exists(word)
		require.NoError(t, err)
		require.Equal(t, gotUncached, gotCached, "word %q", word)
	}

	predCached, err := cached.Predictions([]string{"hello"})
	require.NoError(t, err)
	predUncached, err := uncached.Predictions([]string{"hello"})
	require.NoError(t, err)
	if diff := cmp.Diff(predUncached, predCached); diff != "" {
		t.Errorf("Predictions differ between cached and uncached readers (-uncached +cached):\n%s", diff)
	}

	compCached, err := cached.Completions("yo", 2)
	require.NoError(t, err)
	compUncached, err := uncached.Completions("yo", 2)
	require.NoError(t, err)
	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(compUncached, compCached, sortStrings); diff != "" {
		t.Errorf("Completions differ between cached and uncached readers (-uncached +cached):\n%s", diff)
	}
}

func TestOpenRejectsTruncatedImage(t *testing.T) {
	f := NewMemIndexFile("short", []byte{0, 0})
	_, err := Open(f)
	require.Error(t, err)
	var corrupt *CorruptImageError
	require.ErrorAs(t, err, &corrupt)
}

func TestOpenRejectsBadNgramOffset(t *testing.T) {
	buf := make([]byte, unigramHeaderSize)
	putUint24(buf, 0, 1)
	putUint24(buf, 3, 0xFFFFFF) // way out of bounds
	f := NewMemIndexFile("bad-offset", buf)
	_, err := Open(f)
	require.Error(t, err)
}
