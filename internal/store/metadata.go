package store

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from a file on fs.
func StatFile(fs afero.Fs, path string) (FileFingerprint, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Source is a recorded conversion input.
type Source struct {
	FileFingerprint
	Transcripts int64
	LoadedAt    time.Time
}

// RecordSource upserts the fingerprint of a converted input and the number of
// transcripts it produced.
func (s *Store) RecordSource(fp FileFingerprint, transcripts int) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO sources (path, size, mod_time, transcripts, loaded_at)
		VALUES (?, ?, ?, ?, ?)`,
		fp.Path, fp.Size, fp.ModTime.UTC(), int64(transcripts), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record source %s: %w", fp.Path, err)
	}
	return nil
}

// LookupSource returns the recorded fingerprint for path, or nil if none.
func (s *Store) LookupSource(path string) (*Source, error) {
	rows, err := s.db.Query(`SELECT path, size, mod_time, transcripts, loaded_at
		FROM sources WHERE path = ?`, path)
	if err != nil {
		return nil, fmt.Errorf("query source: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var src Source
	if err := rows.Scan(&src.Path, &src.Size, &src.ModTime, &src.Transcripts, &src.LoadedAt); err != nil {
		return nil, fmt.Errorf("scan source: %w", err)
	}
	return &src, nil
}
