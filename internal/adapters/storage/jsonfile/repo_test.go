package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hylla/tickit/internal/app"
	"github.com/hylla/tickit/internal/domain"
)

func TestOpenCreatesDirAndEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "data.json")
	repo, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected empty data file, got %d bytes", info.Size())
	}
	if repo.Path() != path {
		t.Fatalf("Path() = %q, want %q", repo.Path(), path)
	}

	tasks, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %#v", tasks)
	}
}

func TestOpenKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	content := `{"task":[{"title":"keep","completed":true}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	repo, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	tasks, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "keep" || !tasks[0].Completed {
		t.Fatalf("unexpected tasks %#v", tasks)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestOpenFailsWhenDirIsAFile(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Open(filepath.Join(blocker, "data.json")); err == nil {
		t.Fatal("expected error when parent is a regular file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	want := []domain.Task{
		{Title: "A", Completed: false},
		{Title: "B", Completed: true},
		{Title: "A", Completed: false},
		{Title: "  spaced \"quoted\" ✔", Completed: false},
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("task %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestSaveWritesDocumentLayout(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	repo, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	cases := []struct {
		name  string
		tasks []domain.Task
		want  string
	}{
		{name: "empty", tasks: nil, want: `{"task":[]}`},
		{name: "one", tasks: []domain.Task{{Title: "A", Completed: true}}, want: `{"task":[{"title":"A","completed":true}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := repo.Save(ctx, tc.tasks); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if string(raw) != tc.want {
				t.Fatalf("file = %s, want %s", raw, tc.want)
			}
		})
	}
}

func TestLoadMalformedData(t *testing.T) {
	cases := map[string]string{
		"garbage":     "not json",
		"truncated":   `{"task":[{"title":"A"`,
		"wrong shape": `{"task":{"title":"A"}}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.json")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			repo, err := Open(path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			_, err = repo.Load(context.Background())
			if !errors.Is(err, app.ErrMalformedData) {
				t.Fatalf("expected ErrMalformedData, got %v", err)
			}
		})
	}
}

func TestLoadWhitespaceOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("\n  \n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	repo, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	tasks, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %#v", tasks)
	}
}

func TestLoadTasksDegradesThroughRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	repo, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	tasks, degraded, err := app.LoadTasks(context.Background(), repo)
	if err != nil {
		t.Fatalf("LoadTasks() error = %v", err)
	}
	if !degraded || len(tasks) != 0 {
		t.Fatalf("expected degraded empty load, got degraded=%t tasks=%#v", degraded, tasks)
	}
}

func TestCanceledContext(t *testing.T) {
	repo, err := Open(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load() error = %v, want context.Canceled", err)
	}
	if err := repo.Save(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Save() error = %v, want context.Canceled", err)
	}
}

func TestSaveReplacesFileWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	repo, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	for _, title := range []string{"first", "second"} {
		if err := repo.Save(context.Background(), []domain.Task{domain.NewTask(title)}); err != nil {
			t.Fatalf("Save(%q) error = %v", title, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "data.json" {
		t.Fatalf("expected only data.json after saves, got %v", entries)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Fatalf("data file mode = %o, want 644", perm)
	}
	tasks, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "second" {
		t.Fatalf("unexpected tasks %#v", tasks)
	}
}

func TestWriteFileAtomicFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "data.json")
	// A non-empty directory at the target makes the final rename fail.
	if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := writeFileAtomic(target, []byte(`{"task":[]}`)); err == nil {
		t.Fatal("expected rename over a directory to fail")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "data.json" || !entries[0].IsDir() {
		t.Fatalf("expected temp file removed after failure, got %v", entries)
	}
}
