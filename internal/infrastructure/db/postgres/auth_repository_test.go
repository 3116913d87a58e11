package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ignaciodev/taskflow/internal/core/domain"
)

func newAuthRepoWithMock(t *testing.T) (*AuthRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewAuthRepository(db), mock, db
}

var userColumns = []string{"id", "name", "email", "password_hash", "created_at"}

func TestAuthRepository_Create(t *testing.T) {
	repo, mock, db := newAuthRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*email,\s*password_hash,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`

	mock.ExpectExec(q).
		WithArgs("u1", "Alice", "alice@example.com", "hash", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", CreatedAt: now}
	created, err := repo.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID != "u1" {
		t.Fatalf("unexpected user: %+v", created)
	}
}

func TestAuthRepository_Create_DuplicateEmail(t *testing.T) {
	repo, mock, db := newAuthRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	user := &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", CreatedAt: time.Now()}
	if _, err := repo.Create(context.Background(), user); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthRepository_FindByEmail(t *testing.T) {
	repo, mock, db := newAuthRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	q := `(?s)^SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows(userColumns).AddRow("u1", "Alice", "alice@example.com", "hash", now)
	mock.ExpectQuery(q).WithArgs("alice@example.com").WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if user.ID != "u1" || user.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newAuthRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("missing@example.com").WillReturnError(sql.ErrNoRows)

	if _, err := repo.FindByEmail(context.Background(), "missing@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthRepository_FindByID_NotFound(t *testing.T) {
	repo, mock, db := newAuthRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
