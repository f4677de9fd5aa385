package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"docms/internal/model"
	"docms/internal/repository"
)

// CreateUserInput carries the fields required to register a user.
// Password is plaintext here and only here; it is hashed before anything is
// persisted.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput is a sparse update; nil fields are left unchanged.
// A provided Password is re-hashed before the merge.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	IsActive *bool
}

// UserListResult is the service-level DTO for paginated users.
type UserListResult struct {
	Items []model.User `json:"data"`
	Total int          `json:"total"`
}

// UserService defines the use cases for managing users.
type UserService interface {
	// Create registers a user, storing a bcrypt digest of the password.
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)

	// List returns active users using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*UserListResult, error)

	// Get returns a single active user by ID.
	Get(ctx context.Context, id string) (*model.User, error)

	// Update applies the provided fields; a present Password is re-hashed.
	Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error)

	// Delete deactivates a user (soft delete).
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo         repository.UserRepository
	defaultLimit int
}

// NewUserService constructs a new UserService. defaultLimit is applied when a
// caller passes a non-positive limit.
func NewUserService(repo repository.UserRepository, defaultLimit int) UserService {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &userService{repo: repo, defaultLimit: defaultLimit}
}

// HashPassword returns the bcrypt digest of a plaintext password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// VerifyPassword reports whether the plaintext password matches the digest.
func VerifyPassword(digest, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	digest, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: digest,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, u)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username or email already taken", ErrDuplicate)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return stored, nil
}

func (s *userService) List(ctx context.Context, limit, offset int) (*UserListResult, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &UserListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	upd := model.UserUpdate{
		Username: in.Username,
		Email:    in.Email,
		IsActive: in.IsActive,
	}
	// Never let plaintext reach the repository; replace it with its digest.
	if in.Password != nil {
		digest, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &digest
	}

	u, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username or email already taken", ErrDuplicate)
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
