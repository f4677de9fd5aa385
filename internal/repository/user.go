package repository

import (
	"context"

	"docms/internal/model"
)

// UserRepository defines data access for users using SQL queries only.
// All read paths filter to active users; deactivated rows stay in the table
// but are invisible here. Missing rows surface as sql.ErrNoRows.
type UserRepository interface {
	// Create inserts a new user row and returns the stored record.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns an active user by ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// List returns a page of active users plus the total active count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.User], error)

	// Update applies the non-nil fields of upd to an active user.
	// Returns sql.ErrNoRows if no active row matches id.
	Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error)

	// Deactivate soft-deletes a user (is_active=false). Returns sql.ErrNoRows
	// if no active row matches id; the row is never physically removed.
	Deactivate(ctx context.Context, id string) error
}
