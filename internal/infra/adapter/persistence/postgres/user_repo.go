package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

// uniqueViolation is the SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) Create(ctx context.Context, u *entity.User) error {
	const query = `
INSERT INTO users (id, name, email, password_hash, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	id := uuid.NewString()
	now := time.Now().UTC()
	email := strings.ToLower(u.Email)
	_, err := repo.db.ExecContext(ctx, query, id, u.Name, email, u.PasswordHash, string(u.Role), now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return entity.ErrDuplicateEmail
		}
		return fmt.Errorf("Create: %w", err)
	}
	u.ID = entity.UserID(id)
	u.Email = email
	u.CreatedAt = now
	return nil
}

func (repo *UserRepo) FindByID(ctx context.Context, id entity.UserID) (*entity.User, error) {
	if !validID(id.String()) {
		return nil, nil
	}
	return repo.findOne(ctx, "id", id.String())
}

func (repo *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "email", strings.ToLower(email))
}

func (repo *UserRepo) findOne(ctx context.Context, column, value string) (*entity.User, error) {
	query := fmt.Sprintf(`
SELECT id, name, email, password_hash, role, created_at
FROM users
WHERE %s = $1
LIMIT 1`, column)

	var (
		u    entity.User
		id   string
		role string
	)
	err := repo.db.QueryRowContext(ctx, query, value).
		Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by %s: %w", column, err)
	}
	u.ID = entity.UserID(id)
	u.Role = entity.Role(role)
	return &u, nil
}
