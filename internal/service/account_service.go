package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/pantraqa/internal/api"
	"github.com/vbonduro/pantraqa/internal/domain"
)

// accountAPI is the subset of api.Client that AccountService requires.
type accountAPI interface {
	Login(ctx context.Context, email, password string) (*api.Session, error)
	Register(ctx context.Context, r api.RegisterRequest) (*api.Session, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ChangeUserRole(ctx context.Context, id int64, role domain.Role) error
	DeleteUser(ctx context.Context, id int64) error
}

// AccountService covers sign-in, registration and user administration.
type AccountService struct {
	api    accountAPI
	logger *slog.Logger
}

func NewAccountService(client accountAPI, logger *slog.Logger) *AccountService {
	return &AccountService{api: client, logger: logger}
}

func (s *AccountService) Login(ctx context.Context, in LoginInput) (*api.Session, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	sess, err := s.api.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	s.logger.Info("user logged in", "user_id", sess.User.ID, "role", sess.User.Role)
	return sess, nil
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*api.Session, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	req := api.RegisterRequest{Email: in.Email, Name: in.Name, Password: in.Password, Role: in.Role}
	sess, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	s.logger.Info("user registered", "user_id", sess.User.ID, "role", sess.User.Role)
	return sess, nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ChangeRole assigns role to the user with id. role must be one of the known
// roles.
func (s *AccountService) ChangeRole(ctx context.Context, id int64, role string) (domain.Role, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return "", FieldError("role", "Choose a valid role")
	}
	if err := s.api.ChangeUserRole(ctx, id, r); err != nil {
		return "", fmt.Errorf("failed to change role of user %d: %w", id, err)
	}
	s.logger.Info("user role changed", "user_id", id, "role", r)
	return r, nil
}

func (s *AccountService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
