package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alisoliman/recipe-app-api/dto"
	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/alisoliman/recipe-app-api/models"
	"github.com/alisoliman/recipe-app-api/repositories"
)

const minPasswordLength = 5

// UserService manages accounts and credentials
type UserService struct {
	users repositories.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// NormalizeEmail trims and lower-cases an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser creates an active account with a hashed password
func (s *UserService) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	return s.create(ctx, &models.User{Email: email, Name: name, IsActive: true}, password)
}

// CreateSuperuser creates an account with staff and superuser privileges
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return s.create(ctx, &models.User{Email: email, IsActive: true, IsStaff: true, IsSuperuser: true}, password)
}

func (s *UserService) create(ctx context.Context, user *models.User, password string) (*models.User, error) {
	user.Email = NormalizeEmail(user.Email)
	if user.Email == "" {
		return nil, apperrors.FieldError("email", "Users must have an email address.")
	}

	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hashing failed: %w", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.FieldError("email", "User with this email already exists.")
		}
		return nil, fmt.Errorf("create user failed: %w", err)
	}
	return user, nil
}

// Register validates a public sign-up request and creates the account
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if len(req.Password) < minPasswordLength {
		return nil, apperrors.FieldError("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
	}
	return s.CreateUser(ctx, req.Email, req.Password, req.Name)
}

// Authenticate returns the active user matching the credentials
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	invalid := apperrors.FieldError("non_field_errors", "Unable to authenticate with provided credentials.")

	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, invalid
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile applies the provided fields of req to user
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, req dto.UpdateProfileRequest) (*models.User, error) {
	updated := *user
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return nil, apperrors.FieldError("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
		}
		if err := updated.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("hashing failed: %w", err)
		}
	}
	if err := s.users.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListUsers returns every account
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
