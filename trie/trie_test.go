package trie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertWordSplitsIntoBytes(t *testing.T) {
	tree := NewTree()
	tree.InsertWord("hi", 10)

	h, ok := tree.Child("h")
	require.True(t, ok)
	i, ok := h.Child("i")
	require.True(t, ok)

	w, hasWeight := i.Weight()
	require.True(t, hasWeight)
	require.Equal(t, 10.0, w)
}

func TestInsertSharesCommonPrefix(t *testing.T) {
	tree := NewTree()
	tree.InsertWord("hi", 10)
	h1, _ := tree.Child("h")

	tree.InsertWord("hello", 20)
	h2, _ := tree.Child("h")
	require.Same(t, h1.(*Tree), h2.(*Tree))
	require.Equal(t, []string{"h"}, tree.Children())
}

func TestIntermediateNodeHasNoWeight(t *testing.T) {
	tree := NewTree()
	tree.InsertWord("hello", 20)

	h, _ := tree.Child("h")
	_, hasWeight := h.Weight()
	require.False(t, hasWeight)
}

func TestChildrenPreserveInsertionOrder(t *testing.T) {
	tree := NewTree()
	tree.InsertWord("there", 1)
	tree.InsertWord("a", 1)
	tree.InsertWord("hi", 1)

	require.Equal(t, []string{"t", "a", "h"}, tree.Children())
}

func TestChildMissingReturnsFalse(t *testing.T) {
	tree := NewTree()
	_, ok := tree.Child("z")
	require.False(t, ok)
}

func TestCountIncludesRootAndAllNodes(t *testing.T) {
	tree := NewTree()
	tree.InsertWord("hi", 1)
	// root + h + i = 3 nodes.
	require.Equal(t, 3, tree.Count())
}

func TestInsertPhraseUsesWholeWordEdges(t *testing.T) {
	tree := NewTree()
	tree.InsertPhrase([]string{"how", "are", "you"}, 80)

	how, ok := tree.Child("how")
	require.True(t, ok)
	are, ok := how.Child("are")
	require.True(t, ok)
	you, ok := are.Child("you")
	require.True(t, ok)

	w, hasWeight := you.Weight()
	require.True(t, hasWeight)
	require.Equal(t, 80.0, w)
}

func TestReinsertOverwritesWeight(t *testing.T) {
	tree := NewTree()
	tree.InsertWord("a", 1)
	tree.InsertWord("a", 2)

	w, ok := tree.Child("a")
	require.True(t, ok)
	weight, hasWeight := w.Weight()
	require.True(t, hasWeight)
	require.Equal(t, 2.0, weight)
}
