package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hylla/tickit/internal/app"
	"github.com/hylla/tickit/internal/domain"
)

// Repository stores the task collection as a single JSON document.
type Repository struct {
	path string
}

// document is the on-disk layout: {"task":[{"title":"...","completed":false}]}.
type document struct {
	Task []taskRecord `json:"task"`
}

type taskRecord struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Open prepares the data file, creating its directory and an empty file when missing.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json data path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create data file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close data file: %w", err)
	}
	return &Repository{path: path}, nil
}

// Path returns the data file location.
func (r *Repository) Path() string {
	return r.path
}

// Load reads every stored task in order. An empty file yields no tasks.
func (r *Repository) Load(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []domain.Task{}, nil
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(r.path), errors.Join(app.ErrMalformedData, err))
	}
	out := make([]domain.Task, 0, len(doc.Task))
	for _, rec := range doc.Task {
		out = append(out, domain.Task{Title: rec.Title, Completed: rec.Completed})
	}
	return out, nil
}

// Save replaces the stored document with tasks.
func (r *Repository) Save(ctx context.Context, tasks []domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc := document{Task: make([]taskRecord, 0, len(tasks))}
	for _, task := range tasks {
		doc.Task = append(doc.Task, taskRecord{Title: task.Title, Completed: task.Completed})
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := writeFileAtomic(r.path, encoded); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a sibling temp file and renames it over path, so an
// interrupted save leaves the previous document intact.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
