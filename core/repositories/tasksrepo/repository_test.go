package tasksrepo

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tasmag/tasmag/core/repositories"
	"github.com/tasmag/tasmag/sdk/logger"
)

// memStorer is an in-memory Storer used to exercise the repository rules.
type memStorer struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]Task
	updates int
}

func newMemStorer() *memStorer {
	return &memStorer{records: make(map[int64]Task)}
}

func (s *memStorer) List(ctx context.Context) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, 0, len(s.records))
	for _, t := range s.records {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStorer) Get(ctx context.Context, id int64) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.records[id]
	if !ok {
		return Task{}, repositories.ErrNotFound
	}
	return t, nil
}

func (s *memStorer) Create(ctx context.Context, task Task) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	task.ID = s.nextID
	s.records[task.ID] = task
	return task, nil
}

func (s *memStorer) Update(ctx context.Context, task Task) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[task.ID]; !ok {
		return Task{}, repositories.ErrNotFound
	}
	s.updates++
	s.records[task.ID] = task
	return task, nil
}

func (s *memStorer) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *memStorer) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[id]
	return ok, nil
}

func (s *memStorer) SearchByName(ctx context.Context, term string) ([]Task, error) {
	all, _ := s.List(ctx)
	out := make([]Task, 0)
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(term)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func newTestRepository(t *testing.T) (*Repository, *memStorer) {
	t.Helper()

	store := newMemStorer()
	repo := NewRepository(logger.NewDefault(logger.WithOutput(io.Discard)), store)
	repo.now = func() time.Time {
		return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	}
	return repo, store
}

func statusPtr(s Status) *Status {
	return &s
}

func TestCreateAssignsIDsAndDefaults(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, NewTask{Name: "task1", Description: "description1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := repo.Create(ctx, NewTask{Name: "task2", Status: statusPtr(StatusCompleted)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if first.Status != StatusPending {
		t.Errorf("default status = %s, want %s", first.Status, StatusPending)
	}
	if second.Status != StatusCompleted {
		t.Errorf("status = %s, want %s", second.Status, StatusCompleted)
	}
	if !first.CreatedAt.Equal(repo.now()) {
		t.Errorf("createdAt = %v, want %v", first.CreatedAt, repo.now())
	}
	if first.DueDate != nil {
		t.Errorf("dueDate = %v, want nil", first.DueDate)
	}
}

func TestUpdateKeepsIdentityAndCreatedAt(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, NewTask{Name: "task1", Status: statusPtr(StatusInProgress)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	repo.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	due := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	updated, err := repo.Update(ctx, created.ID, UpdateTask{Name: "renamed", Description: "d", DueDate: &due})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("id = %d, want %d", updated.ID, created.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if updated.Name != "renamed" || updated.Description != "d" {
		t.Errorf("fields not replaced: %+v", updated)
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Errorf("dueDate = %v, want %v", updated.DueDate, due)
	}
	if updated.Status != StatusPending {
		t.Errorf("omitted status = %s, want %s", updated.Status, StatusPending)
	}
}

func TestUpdateMissingDoesNotWrite(t *testing.T) {
	repo, store := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, 42, UpdateTask{Name: "ghost"})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false", err)
	}
	if store.updates != 0 {
		t.Errorf("updates = %d, want 0", store.updates)
	}

	list, _ := repo.List(ctx)
	if len(list) != 0 {
		t.Errorf("list size = %d, want 0", len(list))
	}
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	created, _ := repo.Create(ctx, NewTask{Name: "task1"})

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !IsNotFound(err) {
		t.Errorf("get after delete err = %v, want not found", err)
	}
	if err := repo.Delete(ctx, created.ID); !IsNotFound(err) {
		t.Errorf("second delete err = %v, want not found", err)
	}

	exists, err := repo.Exists(ctx, created.ID)
	if err != nil || exists {
		t.Errorf("exists = %v, %v, want false, nil", exists, err)
	}
}

func TestSearchByName(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	for _, name := range []string{"Write Report", "report review", "Groceries"} {
		if _, err := repo.Create(ctx, NewTask{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	got, err := repo.SearchByName(ctx, "REPORT")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matches = %d, want 2", len(got))
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		got, err := ParseStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStatus(%s) = %s, %v", s, got, err)
		}
	}

	if _, err := ParseStatus("pending"); err == nil {
		t.Error("lower case status accepted")
	}
	if _, err := ParseStatus("DONE"); err == nil {
		t.Error("unknown status accepted")
	}
}
