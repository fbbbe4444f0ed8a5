package storage

import (
	"context"

	"simtest/internal/domain"
)

// Storage persists and loads the last harness run (e.g. for the failures viewer).
type Storage interface {
	Save(report *domain.RunReport) error
	Load() (*domain.RunReport, error)
	Path() string
}

// Recorder appends run outcomes to a long-lived history.
type Recorder interface {
	Record(ctx context.Context, report *domain.RunReport) error
	Close() error
}

var (
	_ Storage  = (*JSONStorage)(nil)
	_ Recorder = (*HistoryStore)(nil)
)

// Open returns the Storage for the results file at path
func Open(path string) Storage {
	return NewJSONStorage(path)
}

// OpenRecorder connects the run history described by dsn
func OpenRecorder(ctx context.Context, dsn string) (Recorder, error) {
	history, err := OpenHistory(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return history, nil
}

// JSONStorage stores results in a JSON file at a fixed path.
type JSONStorage struct {
	path string
}

// NewJSONStorage returns a Storage that reads/writes the given JSON path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the file the storage reads and writes
func (s *JSONStorage) Path() string {
	return s.path
}
