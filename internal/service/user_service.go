package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/auth"
	"taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const bcryptCost = 10

// UserService handles registration, login, and profile operations.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*model.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error
}

type userService struct {
	repo repository.UserRepository
	jwt  *auth.JWTService
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, jwt *auth.JWTService) UserService {
	return &userService{
		repo: repo,
		jwt:  jwt,
	}
}

// Register creates a user with a hashed password and issues a session token.
// A taken email or username is a conflict; the caller cannot tell which of
// the two collided.
func (s *userService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)

	existing, err := s.repo.FindByUsernameOrEmail(ctx, username, email)
	if err == nil && existing != nil {
		return nil, "", errors.ErrUserExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.DefaultRole,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwt.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// return the same error so accounts cannot be enumerated.
func (s *userService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.repo.FindActiveByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return user, nil
}

// UpdateUsername changes the only editable profile field. The new username is
// trimmed and must remain unique across other users.
func (s *userService) UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, errors.ErrUsernameTooShort
	}

	taken, err := s.repo.FindByUsernameExcluding(ctx, username, id)
	if err == nil && taken != nil {
		return nil, errors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = username
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password with the same comparison used
// at login, then persists a hash of the new one.
func (s *userService) ChangePassword(ctx context.Context, id uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashed)
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
