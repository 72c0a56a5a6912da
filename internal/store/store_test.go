package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/bed12/internal/bed12"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(afero.NewOsFs(), "")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTranscripts() []bed12.Transcript {
	return []bed12.Transcript{
		{
			Chrom: "chr1", ChromStart: 99, ChromEnd: 250, Name: "X", Score: ".", Strand: "+",
			ThickStart: 250, ThickEnd: 99, RGB: bed12.RGB, BlockCount: 2,
			BlockSizes: []int64{51, 51}, BlockStarts: []int64{0, 100},
		},
		{
			Chrom: "chr2", ChromStart: 9, ChromEnd: 20, Name: "A", Score: ".", Strand: ".",
			ThickStart: 20, ThickEnd: 9, RGB: bed12.RGB, BlockCount: 1,
			BlockSizes: []int64{11}, BlockStarts: []int64{0},
		},
	}
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	s, err := Open(afero.NewOsFs(), filepath.Join(dir, "bed12.duckdb"))
	require.NoError(t, err)
	defer s.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpen_DirectoryError(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := Open(fs, "/readonly/db/bed12.duckdb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create database directory")
}

func TestSchema_FollowsColumns(t *testing.T) {
	s := openInMemory(t)

	rows, err := s.DB().Query(`SELECT column_name FROM information_schema.columns
		WHERE table_name = 'bed12' ORDER BY ordinal_position`)
	require.NoError(t, err)
	defer rows.Close()

	var got []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		got = append(got, name)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []string{
		"source", "chrom", "chrom_start", "chrom_end", "name", "score", "strand",
		"thick_start", "thick_end", "rgb", "block_count", "block_sizes", "block_starts",
	}, got)
}

func TestWriteAndReadTranscripts(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteTranscripts("in.gtf", sampleTranscripts()))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := s.Transcripts("in.gtf")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// ordered by name
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, sampleTranscripts()[0], got[1])

	none, err := s.Transcripts("other.gtf")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWriteTranscripts_ReplacesSource(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.WriteTranscripts("a.csv", sampleTranscripts()))
	require.NoError(t, s.WriteTranscripts("b.csv", sampleTranscripts()[:1]))
	require.NoError(t, s.WriteTranscripts("a.csv", sampleTranscripts()[1:]))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := s.Transcripts("a.csv")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
}

func TestRecordSource(t *testing.T) {
	s := openInMemory(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/in.gtf", []byte("0123456789"), 0644))
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes("/data/in.gtf", mtime, mtime))

	fp, err := StatFile(fs, "/data/in.gtf")
	require.NoError(t, err)
	assert.Equal(t, int64(10), fp.Size)

	src, err := s.LookupSource("/data/in.gtf")
	require.NoError(t, err)
	assert.Nil(t, src)

	require.NoError(t, s.RecordSource(fp, 3))
	require.NoError(t, s.RecordSource(fp, 5))

	src, err = s.LookupSource("/data/in.gtf")
	require.NoError(t, err)
	require.NotNil(t, src)
	assert.Equal(t, int64(10), src.Size)
	assert.Equal(t, int64(5), src.Transcripts)
	assert.True(t, mtime.Equal(src.ModTime), "mod time %v", src.ModTime)
	assert.False(t, src.LoadedAt.IsZero())
}

func TestStatFile_Missing(t *testing.T) {
	_, err := StatFile(afero.NewMemMapFs(), "/nope")
	assert.Error(t, err)
}
