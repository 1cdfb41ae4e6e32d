package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"backoffice/internal/model"

	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	api    UserAPI
	logger zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(api UserAPI, logger zerolog.Logger) UserService {
	return &userService{
		api:    api,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrMissingID
	}

	user, err := s.api.GetUser(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *userService) Create(ctx context.Context, user model.User) (*model.User, error) {
	if err := validateUser(user, true); err != nil {
		return nil, err
	}

	created, err := s.api.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID.String()).Msg("user created")
	return &created, nil
}

func (s *userService) Update(ctx context.Context, id string, user model.User) (*model.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrMissingID
	}
	if err := validateUser(user, false); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateUser(ctx, id, user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &updated, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return model.ErrMissingID
	}

	if err := s.api.DeleteUser(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// validateUser mirrors the console form checks; a password is only required on creation.
func validateUser(u model.User, creating bool) error {
	v := &model.ValidationError{}
	if strings.TrimSpace(u.Name) == "" {
		v.Add("name", "Name is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		v.Add("email", "Email is not valid")
	}
	if creating && len(u.Password) < 6 {
		v.Add("password", "Password must be at least 6 characters")
	}
	return v.OrNil()
}
