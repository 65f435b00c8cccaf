// Package snapshot persists the whole workspace state as one JSON file.
//
// Every mutation rewrites the full file. Writes go through a temp file and
// a rename, so a reader never observes a half-written document, but there
// is no merge: with two writers the last one wins.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "kitchen/internal/platform/errors"
)

type Chat struct {
	User     string    `json:"user"`
	Text     string    `json:"text"`
	PostedAt time.Time `json:"posted_at"`
}

type Timer struct {
	Stage     string    `json:"stage"`
	Author    string    `json:"author,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

type Document struct {
	Hours     map[string]float64 `json:"hours"`
	Chats     []Chat             `json:"chats"`
	Workloads map[string]string  `json:"workloads"`
	Timer     *Timer             `json:"timer,omitempty"`
}

func Empty() Document {
	return Document{
		Hours:     map[string]float64{},
		Chats:     []Chat{},
		Workloads: map[string]string{},
	}
}

type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// Load reads the full document. A missing file is an empty document.
func (s *FileStore) Load(_ context.Context) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Update loads the document, applies fn and writes the result back. When fn
// fails nothing is written and its error is returned as is.
func (s *FileStore) Update(_ context.Context, fn func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.write(doc)
}

func (s *FileStore) read() (Document, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty(), nil
		}
		return Document{}, fmt.Errorf("%w: read snapshot: %v", apperrors.ErrPersistence, err)
	}
	doc := Empty()
	if err := json.Unmarshal(payload, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: decode snapshot %s: %v", apperrors.ErrPersistence, s.path, err)
	}
	if doc.Hours == nil {
		doc.Hours = map[string]float64{}
	}
	if doc.Chats == nil {
		doc.Chats = []Chat{}
	}
	if doc.Workloads == nil {
		doc.Workloads = map[string]string{}
	}
	return doc, nil
}

func (s *FileStore) write(doc Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create snapshot dir: %v", apperrors.ErrPersistence, err)
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %v", apperrors.ErrPersistence, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp snapshot: %v", apperrors.ErrPersistence, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(append(payload, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: write snapshot: %v", apperrors.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: close snapshot: %v", apperrors.ErrPersistence, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: replace snapshot: %v", apperrors.ErrPersistence, err)
	}
	return nil
}
