// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"auth_portal/internal/feature/auth/domain/entity"
	"auth_portal/internal/feature/auth/usecase"
)

// userMySQL is a MySQL implementation of the UserRepository interface.
// It performs database operations through GORM.
type userMySQL struct {
	db *gorm.DB
}

// Compile-time check that userMySQL implements UserRepository.
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL creates a new instance of userMySQL with the given gorm.DB
// connection. Constructor for dependency injection.
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// Create adds the user to the database. Each GORM write runs in its own
// transaction, so a failed insert leaves nothing behind.
// The unique index on username is the atomic uniqueness guarantee: when
// two registrations of the same name race, exactly one insert succeeds
// and the other returns usecase.ErrDuplicateUsername.
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		// MySQL error 1062: duplicate entry for a unique key
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrDuplicateUsername
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// FindByUsername retrieves a user by exact username match.
// It returns usecase.ErrUserNotFound if the user does not exist.
func (r *userMySQL) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
