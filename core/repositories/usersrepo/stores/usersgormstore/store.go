// Package usersgormstore implements usersrepo.Storer on gorm.
package usersgormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasmag/tasmag/core/repositories"
	"github.com/tasmag/tasmag/core/repositories/usersrepo"
	"github.com/tasmag/tasmag/sdk/logger"
	"gorm.io/gorm"
)

// record is the gorm model for the users table.
type record struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Username string `gorm:"not null;default:''"`
	Email    string `gorm:"not null;default:'';index"`
	Password string `gorm:"not null;default:''"`
}

func (record) TableName() string {
	return "users"
}

func (r record) toUser() usersrepo.User {
	return usersrepo.User{
		ID:       r.ID,
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
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

// Migrate creates or updates the users table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]usersrepo.User, error) {
	var records []record
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]usersrepo.User, len(records))
	for i, r := range records {
		users[i] = r.toUser()
	}
	return users, nil
}

func (s *Store) Get(ctx context.Context, id int64) (usersrepo.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *Store) Create(ctx context.Context, user usersrepo.User) (usersrepo.User, error) {
	r := record{
		Username: user.Username,
		Email:    user.Email,
		Password: user.Password,
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return usersrepo.User{}, fmt.Errorf("create user: %w", err)
	}
	return r.toUser(), nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&record{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&record{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("user %d exists: %w", id, err)
	}
	return count > 0, nil
}

// first returns the lowest-id user matching the condition.
func (s *Store) first(ctx context.Context, query string, arg any) (usersrepo.User, error) {
	var r record
	if err := s.db.WithContext(ctx).Where(query, arg).Order("id").First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usersrepo.User{}, fmt.Errorf("user: %w", repositories.ErrNotFound)
		}
		return usersrepo.User{}, fmt.Errorf("get user: %w", err)
	}
	return r.toUser(), nil
}
