package repositories

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pentlavallir/Landscaping-US/internal/models"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	ListByRole(ctx context.Context, role string) ([]*models.User, error)
	ListOwnersForProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.User, error)

	Update(ctx context.Context, u *models.User) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context) (int, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO users (id, username, password_hash, full_name, role, email, phone, property_id, created_at)
        VALUES (?,?,?,?,?,?,?,?,?)
    `,
		u.ID,
		u.Username,
		u.PasswordHash,
		u.FullName,
		u.Role,
		u.Email,
		u.Phone,
		nullUUID(u.PropertyID),
		formatTime(u.CreatedAt),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return utils.ErrUsernameExists
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, baseSelectUser()+" WHERE u.id=?", id))
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, baseSelectUser()+" WHERE u.username=?", username))
}

func (r *userRepo) ListAll(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx, baseSelectUser()+" ORDER BY u.username")
}

func (r *userRepo) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	return r.list(ctx, baseSelectUser()+" WHERE u.role=? ORDER BY u.username", role)
}

func (r *userRepo) ListOwnersForProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.User, error) {
	return r.list(ctx, baseSelectUser()+" WHERE u.role='owner' AND u.property_id=? ORDER BY u.username", propertyID)
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx, `
        UPDATE users SET full_name=?, role=?, email=?, phone=?, property_id=?
        WHERE id=?
    `,
		u.FullName, u.Role, u.Email, u.Phone, nullUUID(u.PropertyID), u.ID,
	)
	return err
}

func (r *userRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash=? WHERE id=?`, hash, id)
	return err
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return utils.ErrHasDependents
	}
	return err
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *userRepo) list(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func baseSelectUser() string {
	return `
        SELECT
            u.id, u.username, u.password_hash, u.full_name, u.role,
            u.email, u.phone, u.property_id, u.created_at,
            COALESCE(p.name, '')
        FROM users u
        LEFT JOIN properties p ON p.id = u.property_id
    `
}

func scanUser(row row) (*models.User, error) {
	var (
		u          models.User
		propertyID uuid.NullUUID
		createdAt  string
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.FullName,
		&u.Role,
		&u.Email,
		&u.Phone,
		&propertyID,
		&createdAt,
		&u.PropertyName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	u.PropertyID = uuidPtr(propertyID)
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}
