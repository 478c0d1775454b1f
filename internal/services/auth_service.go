package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskmarket.com/taskmarket/internal/apperrors"
	"taskmarket.com/taskmarket/internal/auth"
	"taskmarket.com/taskmarket/internal/constants"
	model "taskmarket.com/taskmarket/internal/models"
	repository "taskmarket.com/taskmarket/internal/repositories"
)

const bcryptCost = 12

// AuthService is the identity directory: it registers users, issues and
// resolves bearer tokens, and bootstraps the admin account.
type AuthService struct {
	users  *repository.UserRepository
	tokens auth.TokenStore
}

func NewAuthService(users *repository.UserRepository, tokens auth.TokenStore) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Caller is the resolved identity attached to every authenticated request.
type Caller struct {
	UserID string
	Role   constants.Role
}

func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*model.User, string, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateRegistration(fullName, email, password); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", apperrors.Conflict("EMAIL_ALREADY_IN_USE", "Email is already registered")
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.InvalidCredentials()
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.InvalidCredentials()
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// ResolveCaller maps a bearer token to the caller's identity and role.
func (s *AuthService) ResolveCaller(ctx context.Context, token string) (*Caller, error) {
	userID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			return nil, apperrors.Unauthorized("Invalid or expired token")
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("Invalid token subject")
		}
		return nil, err
	}

	return &Caller{UserID: user.ID, Role: user.Role}, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdminUser creates the admin account once at startup. An existing
// admin wins regardless of configured email; a non-admin already holding the
// configured email is a startup error.
func (s *AuthService) EnsureAdminUser(ctx context.Context, email, password, fullName string) error {
	if _, err := s.users.FindAdmin(ctx); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role == constants.RoleAdmin {
			return nil
		}
		return fmt.Errorf("cannot create admin account: %s is already used by a non-admin user", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.RoleAdmin,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		// Another instance may have bootstrapped between our checks.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil
		}
		return err
	}

	log.Printf("admin account %s created", email)
	return nil
}

func validateRegistration(fullName, email, password string) error {
	var details []apperrors.Detail

	if len(fullName) < 2 || len(fullName) > 120 {
		details = append(details, apperrors.Detail{
			Field: "fullName", Message: "fullName must be between 2 and 120 characters",
		})
	}
	if !strings.Contains(email, "@") || len(email) < 3 || len(email) > 254 {
		details = append(details, apperrors.Detail{
			Field: "email", Message: "email must be a valid address",
		})
	}
	if len(password) < 8 || len(password) > 72 {
		details = append(details, apperrors.Detail{
			Field: "password", Message: "password must be between 8 and 72 characters",
		})
	}

	if len(details) > 0 {
		return apperrors.Validation("Invalid input", details...)
	}
	return nil
}
