package store

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/bed12/internal/bed12"
)

// WriteTranscripts replaces the transcripts stored for source with ts,
// batch-inserting through the Appender API.
func (s *Store) WriteTranscripts(source string, ts []bed12.Transcript) error {
	if _, err := s.db.Exec("DELETE FROM bed12 WHERE source = ?", source); err != nil {
		return fmt.Errorf("clear transcripts for %s: %w", source, err)
	}
	if len(ts) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "bed12")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, t := range ts {
		if err := appender.AppendRow(
			source, t.Chrom, t.ChromStart, t.ChromEnd, t.Name, t.Score, t.Strand,
			t.ThickStart, t.ThickEnd, t.RGB, int64(t.BlockCount),
			bed12.FormatBlocks(t.BlockSizes), bed12.FormatBlocks(t.BlockStarts),
		); err != nil {
			return fmt.Errorf("append transcript %s: %w", t.Name, err)
		}
	}

	return appender.Flush()
}

// Count returns the number of stored transcripts across all sources.
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM bed12").Scan(&count); err != nil {
		return 0, fmt.Errorf("count transcripts: %w", err)
	}
	return count, nil
}

// Transcripts returns the transcripts stored for source, ordered by name.
func (s *Store) Transcripts(source string) ([]bed12.Transcript, error) {
	query := "SELECT " + strings.Join(sqlColumns(), ", ") +
		" FROM bed12 WHERE source = ? ORDER BY name"
	rows, err := s.db.Query(query, source)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()

	var ts []bed12.Transcript
	for rows.Next() {
		var (
			t              bed12.Transcript
			blockCount     int64
			sizes, offsets string
		)
		if err := rows.Scan(
			&t.Chrom, &t.ChromStart, &t.ChromEnd, &t.Name, &t.Score, &t.Strand,
			&t.ThickStart, &t.ThickEnd, &t.RGB, &blockCount, &sizes, &offsets,
		); err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		t.BlockCount = int(blockCount)
		if t.BlockSizes, err = bed12.ParseBlocks(sizes); err != nil {
			return nil, fmt.Errorf("transcript %s block sizes: %w", t.Name, err)
		}
		if t.BlockStarts, err = bed12.ParseBlocks(offsets); err != nil {
			return nil, fmt.Errorf("transcript %s block starts: %w", t.Name, err)
		}
		ts = append(ts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}
	return ts, nil
}
