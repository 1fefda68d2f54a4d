package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (email, name, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, is_active, is_admin, created_at
	`)).
		WithArgs("amina@example.com", "Amina", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "name", "is_active", "is_admin", "created_at",
		}).AddRow(int64(1), "amina@example.com", "Amina", true, false, time.Now()))

	user, err := s.CreateUser(context.Background(), " Amina@Example.com ", " Amina ", "s3cret-pass")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if user.ID != 1 || user.Email != "amina@example.com" || !user.IsActive {
		t.Fatalf("unexpected user: %#v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = s.CreateUser(context.Background(), "amina@example.com", "Amina", "s3cret-pass")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserMissingFields(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	if _, err := s.CreateUser(context.Background(), "", "Amina", "pass"); err == nil {
		t.Fatal("expected error for empty email")
	}
	if _, err := s.CreateUser(context.Background(), "amina@example.com", "Amina", ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyCredentialsSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, email, name, is_active, is_admin, created_at, hashed_password
		FROM users
		WHERE email = $1
	`)).
		WithArgs("amina@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "name", "is_active", "is_admin", "created_at", "hashed_password",
		}).AddRow(int64(1), "amina@example.com", "Amina", true, false, time.Now(), hash))

	user, err := s.VerifyCredentials(context.Background(), "Amina@Example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("VerifyCredentials error: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("unexpected user: %#v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVerifyCredentialsWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users`)).
		WithArgs("amina@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "name", "is_active", "is_admin", "created_at", "hashed_password",
		}).AddRow(int64(1), "amina@example.com", "Amina", true, false, time.Now(), hash))

	if _, err := s.VerifyCredentials(context.Background(), "amina@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyCredentialsUnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users`)).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	if _, err := s.VerifyCredentials(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyCredentialsDisabledAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users`)).
		WithArgs("amina@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "name", "is_active", "is_admin", "created_at", "hashed_password",
		}).AddRow(int64(1), "amina@example.com", "Amina", false, false, time.Now(), hash))

	if _, err := s.VerifyCredentials(context.Background(), "amina@example.com", "s3cret-pass"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, email, name, is_active, is_admin, created_at
		FROM users
		WHERE id = $1
	`)).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	if _, err := s.GetUser(context.Background(), 999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserEmptyPatchReadsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, email, name, is_active, is_admin, created_at
		FROM users
		WHERE id = $1
	`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "name", "is_active", "is_admin", "created_at",
		}).AddRow(int64(4), "amina@example.com", "Amina", true, false, time.Now()))

	user, err := s.UpdateUser(context.Background(), 4, UserPatch{})
	if err != nil {
		t.Fatalf("UpdateUser error: %v", err)
	}
	if user.ID != 4 {
		t.Fatalf("unexpected user: %#v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateUserNameAndEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		UPDATE users
		SET name = $1, email = $2
		WHERE id = $3
		RETURNING id, email, name, is_active, is_admin, created_at
	`)).
		WithArgs("Wanjiru", "wanjiru@example.com", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "name", "is_active", "is_admin", "created_at",
		}).AddRow(int64(4), "wanjiru@example.com", "Wanjiru", true, false, time.Now()))

	name := " Wanjiru "
	email := "Wanjiru@Example.com"
	user, err := s.UpdateUser(context.Background(), 4, UserPatch{Name: &name, Email: &email})
	if err != nil {
		t.Fatalf("UpdateUser error: %v", err)
	}
	if user.Name != "Wanjiru" || user.Email != "wanjiru@example.com" {
		t.Fatalf("unexpected user: %#v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
