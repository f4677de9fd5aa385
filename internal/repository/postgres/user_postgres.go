package postgres

import (
	"context"
	"database/sql"

	"docms/internal/model"
	"docms/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = "id, username, email, password_hash, is_active, created_at, last_login_at"

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.IsActive,
		&u.CreatedAt,
		&u.LastLoginAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, username, email, password_hash, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.IsActive,
		u.CreatedAt,
	)
	return scanUser(row)
}

// FindByID fetches a single active user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND is_active = TRUE
	`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// List returns active users using LIMIT/OFFSET pagination and a total count.
func (r *UserPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	const qCount = `SELECT COUNT(*) FROM users WHERE is_active = TRUE`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.User]{Items: items, Total: total}, nil
}

// Update applies the non-nil fields of upd in a single statement.
// COALESCE keeps the stored value wherever the payload field is nil, so the
// merge is atomic and no read-modify-write round trip is needed.
func (r *UserPostgres) Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error) {
	const q = `
		UPDATE users
		SET username      = COALESCE($2, username),
		    email         = COALESCE($3, email),
		    password_hash = COALESCE($4, password_hash),
		    is_active     = COALESCE($5, is_active)
		WHERE id = $1 AND is_active = TRUE
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		id,
		upd.Username,
		upd.Email,
		upd.PasswordHash,
		upd.IsActive,
	)
	return scanUser(row)
}

// Deactivate soft-deletes a user. The row stays in the table.
func (r *UserPostgres) Deactivate(ctx context.Context, id string) error {
	const q = `UPDATE users SET is_active = FALSE WHERE id = $1 AND is_active = TRUE`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
