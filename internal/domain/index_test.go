package domain_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pnidkit/internal/domain"
	"pnidkit/internal/testutil"
)

func handles(ps []domain.Placement) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Handle()
	}
	return out
}

func TestBuildIndex_KeepsDuplicates(t *testing.T) {
	a1 := testutil.NewPlacement("Valve", 0, 0).WithHandle("A1").WithAttr("TAG", "V-1")
	b1 := testutil.NewPlacement("Border", 0, 0).WithHandle("B1")
	a2 := testutil.NewPlacement("Valve", 5, 5).WithHandle("A2").WithAttr("TAG", "V-1")
	c1 := testutil.NewPlacement("valve", 5, 5).WithHandle("C1")

	idx := domain.BuildIndex(testutil.Placements(a1, b1, a2, c1))

	assert.Equal(t, 4, idx.Len())
	assert.Equal(t, []string{"Valve", "Border", "valve"}, idx.Names())
	assert.Equal(t, []string{"A1", "A2"}, handles(idx.Lookup("Valve")))
	assert.Equal(t, []string{"C1"}, handles(idx.Lookup("valve")))
	assert.Equal(t, 1, idx.Count("Border"))
	assert.Equal(t, []string{"A1", "A2", "B1", "C1"}, handles(idx.All()))
}

func TestLookup_MissReturnsEmpty(t *testing.T) {
	idx := domain.BuildIndex(nil)
	assert.Empty(t, idx.Lookup("Nothing"))
	assert.Equal(t, 0, idx.Len())

	var nilIdx *domain.SymbolIndex
	assert.Empty(t, nilIdx.Lookup("Nothing"))
}

func TestSearch_FullMatchOnly(t *testing.T) {
	idx := domain.BuildIndex(testutil.Placements(
		testutil.NewPlacement("STRAINER_Y", 0, 0).WithHandle("S1"),
		testutil.NewPlacement("Border_A1", 0, 0).WithHandle("B1"),
		testutil.NewPlacement("STRAINER_T", 0, 0).WithHandle("S2"),
		testutil.NewPlacement("OLD_STRAINER_Y", 0, 0).WithHandle("X1"),
		testutil.NewPlacement("STRAINER_Y", 0, 0).WithHandle("S3"),
	))

	got := idx.Search(regexp.MustCompile(`STRAINER_.*`))
	assert.Equal(t, []string{"S1", "S3", "S2"}, handles(got))

	// An unanchored prefix is not enough.
	got = idx.Search(regexp.MustCompile(`Border`))
	assert.Empty(t, got)

	got, err := idx.SearchPattern(`Border_A\d`)
	require.NoError(t, err)
	assert.Equal(t, []string{"B1"}, handles(got))
}

func TestSearchPattern_InvalidExpression(t *testing.T) {
	idx := domain.BuildIndex(nil)
	_, err := idx.SearchPattern(`Border(`)
	assert.Error(t, err)
}
