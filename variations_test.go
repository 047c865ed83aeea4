package bindict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariationsDeletes(t *testing.T) {
	v := variations("you")
	require.Contains(t, v, "ou")
	require.Contains(t, v, "yu")
	require.Contains(t, v, "yo")
}

func TestVariationsTranspose(t *testing.T) {
	v := variations("hte")
	require.Contains(t, v, "the")
}

func TestVariationsReplace(t *testing.T) {
	v := variations("you")
	require.Contains(t, v, "yon")
	require.Contains(t, v, "yoa")
}

func TestVariationsInsert(t *testing.T) {
	v := variations("you")
	require.Contains(t, v, "your")
}

func TestVariationsNoDuplicates(t *testing.T) {
	v := variations("aa")
	// "aa" deleted either character yields the same single "a" - must
	// collapse to one entry since variations returns a set.
	count := 0
	for s := range v {
		if s == "a" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestVariations2IsComposition(t *testing.T) {
	v2 := variations2("yuu")
	require.Contains(t, v2, "you")
}
