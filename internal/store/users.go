package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"playlistke/internal/models"
)

// dummyPasswordHash keeps login timing uniform when the email is unknown.
var dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")

const userColumns = `id, email, name, is_active, is_admin, created_at`

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *Store) CreateUser(ctx context.Context, email, name, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns+`
	`, email, name, hash).Scan(
		&user.ID, &user.Email, &user.Name, &user.IsActive, &user.IsAdmin, &user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// VerifyCredentials checks an email/password pair and returns the account.
// An unknown email still pays for a bcrypt comparison.
func (s *Store) VerifyCredentials(ctx context.Context, email, password string) (models.User, error) {
	var (
		user models.User
		hash []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`, hashed_password
		FROM users
		WHERE email = $1
	`, strings.TrimSpace(strings.ToLower(email))).Scan(
		&user.ID, &user.Email, &user.Name, &user.IsActive, &user.IsAdmin, &user.CreatedAt, &hash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.User{}, ErrAccountDisabled
	}
	return user, nil
}

// GetUser returns a user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.Name, &user.IsActive, &user.IsAdmin, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UserPatch holds the optional fields of a profile update. Nil fields are
// left untouched.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

// UpdateUser applies a patch to the user's own profile.
func (s *Store) UpdateUser(ctx context.Context, id int64, patch UserPatch) (models.User, error) {
	set := []string{}
	args := []any{}
	argIdx := 1

	if patch.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, strings.TrimSpace(*patch.Name))
		argIdx++
	}
	if patch.Email != nil {
		set = append(set, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, strings.TrimSpace(strings.ToLower(*patch.Email)))
		argIdx++
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		set = append(set, fmt.Sprintf("hashed_password = $%d", argIdx))
		args = append(args, hash)
		argIdx++
	}

	if len(set) == 0 {
		return s.GetUser(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING `+userColumns, strings.Join(set, ", "), argIdx)

	var user models.User
	err := s.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.Name, &user.IsActive, &user.IsAdmin, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
