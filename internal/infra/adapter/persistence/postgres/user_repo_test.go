package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"news-portal/internal/domain/entity"
	pg "news-portal/internal/infra/adapter/persistence/postgres"
)

func TestUserRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "Alice", "alice@example.com", "hash", "admin", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &entity.User{Name: "Alice", Email: "Alice@Example.com", PasswordHash: "hash", Role: entity.RoleAdmin}
	repo := pg.NewUserRepo(db)
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if u.ID == "" || u.Email != "alice@example.com" {
		t.Fatalf("user not updated: %+v", u)
	}
}

func TestUserRepo_Create_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	repo := pg.NewUserRepo(db)
	err := repo.Create(context.Background(), &entity.User{Name: "A", Email: "a@b.c", PasswordHash: "h", Role: entity.RoleUser})
	if !errors.Is(err, entity.ErrDuplicateEmail) {
		t.Fatalf("err=%v, want ErrDuplicateEmail", err)
	}
}

func TestUserRepo_FindByEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM users").
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}).
			AddRow(ownerID, "Bob", "bob@example.com", "hash", "user", created))

	repo := pg.NewUserRepo(db)
	u, err := repo.FindByEmail(context.Background(), "BOB@example.com")
	if err != nil {
		t.Fatalf("FindByEmail err=%v", err)
	}
	if u == nil || u.ID != ownerID || u.Role != entity.RoleUser {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestUserRepo_FindByID_Missing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM users").
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"}))

	repo := pg.NewUserRepo(db)
	u, err := repo.FindByID(context.Background(), ownerID)
	if err != nil || u != nil {
		t.Fatalf("u=%v err=%v, want nil,nil", u, err)
	}

	u, err = repo.FindByID(context.Background(), "garbage")
	if err != nil || u != nil {
		t.Fatalf("u=%v err=%v, want nil,nil", u, err)
	}
}
