package bed12

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_TwoExonTranscript(t *testing.T) {
	exons := []Exon{
		{Chrom: "chr1", Start: 200, End: 250, Name: "X", Score: ".", Strand: "+"},
		{Chrom: "chr1", Start: 100, End: 150, Name: "X", Score: ".", Strand: "+"},
	}

	got, err := Aggregate(exons, true)
	require.NoError(t, err)

	want := []Transcript{{
		Chrom:       "chr1",
		ChromStart:  99,
		ChromEnd:    250,
		Name:        "X",
		Score:       ".",
		Strand:      "+",
		ThickStart:  250,
		ThickEnd:    99,
		RGB:         "0,0,255",
		BlockCount:  2,
		BlockSizes:  []int64{51, 51},
		BlockStarts: []int64{0, 100},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t,
		"chr1\t99\t250\tX\t.\t+\t250\t99\t0,0,255\t2\t51,51\t0,100",
		strings.Join(got[0].Fields(), "\t"))

	// input untouched
	assert.Equal(t, int64(200), exons[0].Start)
}

func TestAggregate_OneRowPerName(t *testing.T) {
	exons := []Exon{
		{Chrom: "chr2", Start: 10, End: 20, Name: "B", Strand: "-"},
		{Chrom: "chr1", Start: 5, End: 9, Name: "A", Strand: "+"},
		{Chrom: "chr2", Start: 30, End: 40, Name: "B", Strand: "-"},
		{Chrom: "chr1", Start: 1, End: 3, Name: "A", Strand: "+"},
		{Chrom: "chr3", Start: 7, End: 7, Name: "C", Strand: "."},
	}

	got, err := Aggregate(exons, true)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"A", "B", "C"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, 2, got[0].BlockCount)
	assert.Equal(t, 2, got[1].BlockCount)
	assert.Equal(t, 1, got[2].BlockCount)
	assert.Equal(t, []int64{1}, got[2].BlockSizes, "single-base exon has size 1")
}

func TestAggregate_BlockGeometryRoundTrip(t *testing.T) {
	exons := []Exon{
		{Chrom: "chr7", Start: 1000, End: 1099, Name: "T1", Strand: "+"},
		{Chrom: "chr7", Start: 1500, End: 1520, Name: "T1", Strand: "+"},
		{Chrom: "chr7", Start: 1200, End: 1300, Name: "T1", Strand: "+"},
		{Chrom: "chr7", Start: 50, End: 60, Name: "T2", Strand: "-"},
		{Chrom: "chr7", Start: 80, End: 95, Name: "T2", Strand: "-"},
	}

	got, err := Aggregate(exons, true)
	require.NoError(t, err)

	byName := make(map[string][]Exon)
	for _, e := range exons {
		byName[e.Name] = append(byName[e.Name], e)
	}

	for _, tr := range got {
		src := byName[tr.Name]
		SortExons(src)

		require.Equal(t, len(src), tr.BlockCount)
		require.Len(t, tr.BlockSizes, tr.BlockCount)
		require.Len(t, tr.BlockStarts, tr.BlockCount)
		assert.Greater(t, tr.ChromEnd, tr.ChromStart)
		assert.Equal(t, int64(0), tr.BlockStarts[0])

		var sum, want int64
		for i, e := range src {
			assert.Equal(t, e.Start, tr.ChromStart+tr.BlockStarts[i]+1, "%s block %d start", tr.Name, i)
			assert.Equal(t, e.End, tr.ChromStart+tr.BlockStarts[i]+tr.BlockSizes[i], "%s block %d end", tr.Name, i)
			if i > 0 {
				assert.GreaterOrEqual(t, tr.BlockStarts[i], tr.BlockStarts[i-1])
			}
			sum += tr.BlockSizes[i]
			want += e.End - e.Start + 1
		}
		assert.Equal(t, want, sum)
	}
}

func TestAggregate_StrandedSplitsSameName(t *testing.T) {
	exons := []Exon{
		{Chrom: "chr1", Start: 100, End: 200, Name: "G", Strand: "+"},
		{Chrom: "chr1", Start: 300, End: 400, Name: "G", Strand: "-"},
	}

	stranded, err := Aggregate(exons, true)
	require.NoError(t, err)
	require.Len(t, stranded, 2)
	assert.Equal(t, "+", stranded[0].Strand)
	assert.Equal(t, "-", stranded[1].Strand)
	assert.Equal(t, 1, stranded[1].BlockCount)
	assert.Equal(t, int64(299), stranded[1].ChromStart)

	merged, err := Aggregate(exons, false)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, 2, merged[0].BlockCount)
}

func TestAggregate_DefaultsScoreAndStrand(t *testing.T) {
	got, err := Aggregate([]Exon{{Chrom: "chr1", Start: 1, End: 5, Name: "N"}}, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ".", got[0].Score)
	assert.Equal(t, ".", got[0].Strand)
}

func TestAggregate_IgnoresExonScores(t *testing.T) {
	got, err := Aggregate([]Exon{
		{Chrom: "chr1", Start: 100, End: 150, Name: "X", Score: "5", Strand: "+"},
		{Chrom: "chr1", Start: 200, End: 250, Name: "X", Score: "7", Strand: "+"},
		{Chrom: "chr1", Start: 300, End: 350, Name: "Y", Score: "900", Strand: "-"},
	}, true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, tr := range got {
		assert.Equal(t, Score, tr.Score, tr.Name)
	}
}

func TestAggregate_MixedChromosomes(t *testing.T) {
	_, err := Aggregate([]Exon{
		{Chrom: "chr1", Start: 1, End: 5, Name: "N", Strand: "+"},
		{Chrom: "chr2", Start: 10, End: 15, Name: "N", Strand: "+"},
	}, true)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Message, "chr1")
	assert.Contains(t, fe.Message, "chr2")
}

func TestAggregate_Empty(t *testing.T) {
	got, err := Aggregate(nil, true)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGroupStable(t *testing.T) {
	items := []string{"b1", "a1", "b2", "c1", "a2"}
	groups := GroupStable(items, func(s string) byte { return s[0] })

	assert.Equal(t, [][]string{{"b1", "b2"}, {"a1", "a2"}, {"c1"}}, groups)
}

func TestSortExons_Stable(t *testing.T) {
	exons := []Exon{
		{Name: "B", Start: 5, Score: "first"},
		{Name: "A", Start: 9},
		{Name: "B", Start: 5, Score: "second"},
		{Name: "A", Start: 1},
	}
	SortExons(exons)

	assert.Equal(t, "A", exons[0].Name)
	assert.Equal(t, int64(1), exons[0].Start)
	assert.Equal(t, "first", exons[2].Score)
	assert.Equal(t, "second", exons[3].Score)
}

func TestColumns(t *testing.T) {
	all := Columns(false)
	require.Len(t, all, 12)
	assert.Equal(t, "chrom", all[0])
	assert.Equal(t, "blockStarts", all[11])

	clustered := Columns(true)
	assert.Equal(t, all[:10], clustered)

	// callers get their own copy
	clustered[0] = "x"
	assert.Equal(t, "chrom", Columns(true)[0])
}

func TestTranscript_FieldsFollowColumns(t *testing.T) {
	tr := Transcript{
		Chrom: "chr1", ChromStart: 99, ChromEnd: 250, Name: "X", Score: Score, Strand: "+",
		ThickStart: 250, ThickEnd: 99, RGB: RGB, BlockCount: 2,
		BlockSizes: []int64{51, 51}, BlockStarts: []int64{0, 100},
	}

	fields := tr.Fields()
	cols := Columns(false)
	require.Len(t, fields, len(cols))
	for i, col := range cols {
		assert.NotEmpty(t, fields[i], col)
		assert.Equal(t, tr.Field(col), fields[i], col)
	}
	assert.Equal(t, "51,51", tr.Field("blockSizes"))
	assert.Equal(t, "", tr.Field("unknown"))
}
