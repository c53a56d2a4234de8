package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadirin/hadirin-backend-go/internal/domain/user"
	"github.com/hadirin/hadirin-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// GetByEmail implements user.UserRepository.
func (u *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	var usr user.User
	err := q.QueryRow(ctx, `
		SELECT id, company_id, employee_id, email, password_hash, is_admin, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(
		&usr.ID, &usr.CompanyID, &usr.EmployeeID, &usr.Email, &usr.PasswordHash, &usr.IsAdmin,
		&usr.CreatedAt, &usr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	}

	return usr, nil
}

// GetByID implements user.UserRepository.
func (u *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	var usr user.User
	err := q.QueryRow(ctx, `
		SELECT id, company_id, employee_id, email, password_hash, is_admin, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&usr.ID, &usr.CompanyID, &usr.EmployeeID, &usr.Email, &usr.PasswordHash, &usr.IsAdmin,
		&usr.CreatedAt, &usr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return usr, nil
}
