// Package store persists converted BED12 transcripts in DuckDB so that
// several conversions can be collected and queried together.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/spf13/afero"

	"github.com/inodb/bed12/internal/bed12"
)

// Store manages a DuckDB connection holding converted transcripts.
type Store struct {
	db *sql.DB
}

// Open opens or creates a DuckDB database at the given path, creating its
// directory on fs. DuckDB itself opens path on the OS filesystem.
// Use an empty string for an in-memory database.
func Open(fs afero.Fs, path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(bed12TableDDL()); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS sources (
		path VARCHAR PRIMARY KEY,
		size BIGINT,
		mod_time TIMESTAMP,
		transcripts BIGINT,
		loaded_at TIMESTAMP
	)`)
	return err
}

// integerColumns are the BED12 columns stored as BIGINT; the rest are VARCHAR.
var integerColumns = map[string]bool{
	"chromStart": true,
	"chromEnd":   true,
	"thickStart": true,
	"thickEnd":   true,
	"blockCount": true,
}

// bed12TableDDL creates the bed12 table: a source column followed by the
// BED12 columns in output order.
func bed12TableDDL() string {
	defs := []string{"source VARCHAR"}
	for _, col := range bed12.Columns(false) {
		typ := "VARCHAR"
		if integerColumns[col] {
			typ = "BIGINT"
		}
		defs = append(defs, sqlName(col)+" "+typ)
	}
	return "CREATE TABLE IF NOT EXISTS bed12 (\n\t" + strings.Join(defs, ",\n\t") + "\n)"
}

// sqlColumns returns the SQL names of the BED12 columns in output order.
func sqlColumns() []string {
	cols := bed12.Columns(false)
	for i, col := range cols {
		cols[i] = sqlName(col)
	}
	return cols
}

// sqlName converts a BED12 column name to snake case: chromStart -> chrom_start.
func sqlName(col string) string {
	var b strings.Builder
	for _, r := range col {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
