package bed12

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandStrands(t *testing.T) {
	ts := []Transcript{
		{Name: "Y", Strand: "-", BlockSizes: []int64{4}, BlockStarts: []int64{0}},
		{Name: "X", Strand: ".", ChromStart: 9, ChromEnd: 20, BlockCount: 1, BlockSizes: []int64{11}, BlockStarts: []int64{0}},
		{Name: "A", Strand: "+", BlockSizes: []int64{2}, BlockStarts: []int64{0}},
	}

	got := ExpandStrands(ts)
	require.Len(t, got, 4)

	names := make([]string, len(got))
	for i, tr := range got {
		names[i] = tr.Name
	}
	assert.Equal(t, []string{"A", "X(+)", "X(-)", "Y"}, names)

	plus, minus := got[1], got[2]
	assert.Equal(t, "+", plus.Strand)
	assert.Equal(t, "-", minus.Strand)
	for _, tr := range []Transcript{plus, minus} {
		assert.Equal(t, int64(9), tr.ChromStart)
		assert.Equal(t, int64(20), tr.ChromEnd)
		assert.Equal(t, []int64{11}, tr.BlockSizes)
	}

	// copies do not share block storage
	plus.BlockSizes[0] = 99
	assert.Equal(t, int64(11), minus.BlockSizes[0])
}

func TestExpandStrands_AllStranded(t *testing.T) {
	ts := []Transcript{{Name: "B", Strand: "+"}, {Name: "A", Strand: "-"}}
	got := ExpandStrands(ts)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}

func TestExpandStrands_EmptyStrandCountsAsUnknown(t *testing.T) {
	got := ExpandStrands([]Transcript{{Name: "Z"}})
	require.Len(t, got, 2)
	assert.Equal(t, "Z(+)", got[0].Name)
	assert.Equal(t, "Z(-)", got[1].Name)
}
