// Package tasksgormstore implements tasksrepo.Storer on gorm, backing the
// embedded sqlite deployment and the end to end tests.
package tasksgormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tasmag/tasmag/core/repositories"
	"github.com/tasmag/tasmag/core/repositories/tasksrepo"
	"github.com/tasmag/tasmag/sdk/logger"
	"gorm.io/gorm"
)

// record is the gorm model for the tasks table.
type record struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	Name        string     `gorm:"not null;default:''"`
	Description string     `gorm:"not null;default:''"`
	CreatedAt   time.Time  `gorm:"not null"`
	DueDate     *time.Time `gorm:"column:due_date"`
	Status      string     `gorm:"size:32;not null;default:'PENDING'"`
}

func (record) TableName() string {
	return "tasks"
}

func toRecord(t tasksrepo.Task) record {
	return record{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
	}
}

func (r record) toTask() tasksrepo.Task {
	var due *time.Time
	if r.DueDate != nil {
		d := r.DueDate.UTC()
		due = &d
	}
	return tasksrepo.Task{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC(),
		DueDate:     due,
		Status:      tasksrepo.Status(r.Status),
	}
}

func toTasks(records []record) []tasksrepo.Task {
	tasks := make([]tasksrepo.Task, len(records))
	for i, r := range records {
		tasks[i] = r.toTask()
	}
	return tasks
}

type Store struct {
	log *logger.Logger
	db  *gorm.DB
}

func NewStore(log *logger.Logger, db *gorm.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// Migrate creates or updates the tasks table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migrate tasks: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	var records []record
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return toTasks(records), nil
}

func (s *Store) Get(ctx context.Context, id int64) (tasksrepo.Task, error) {
	var r record
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tasksrepo.Task{}, fmt.Errorf("task %d: %w", id, repositories.ErrNotFound)
		}
		return tasksrepo.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return r.toTask(), nil
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	r := toRecord(task)
	r.ID = 0
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return tasksrepo.Task{}, fmt.Errorf("create task: %w", err)
	}
	return r.toTask(), nil
}

// Update writes every mutable column. created_at is never touched.
func (s *Store) Update(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	r := toRecord(task)
	result := s.db.WithContext(ctx).
		Model(&record{}).
		Where("id = ?", r.ID).
		Updates(map[string]any{
			"name":        r.Name,
			"description": r.Description,
			"due_date":    r.DueDate,
			"status":      r.Status,
		})
	if result.Error != nil {
		return tasksrepo.Task{}, fmt.Errorf("update task %d: %w", task.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return tasksrepo.Task{}, fmt.Errorf("task %d: %w", task.ID, repositories.ErrNotFound)
	}
	return task, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&record{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("task %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&record{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("task %d exists: %w", id, err)
	}
	return count > 0, nil
}

func (s *Store) SearchByName(ctx context.Context, term string) ([]tasksrepo.Task, error) {
	var records []record
	err := s.db.WithContext(ctx).
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, repositories.ContainsPattern(term)).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("search tasks %q: %w", term, err)
	}
	return toTasks(records), nil
}
