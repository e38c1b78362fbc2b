package auth

import (
	"context"
	"errors"

	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/models"
)

// UserFinder is the slice of the credential store the service needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type Service struct {
	users  UserFinder
	tokens *TokenMaker
}

func NewService(users UserFinder, tokens *TokenMaker) *Service {
	return &Service{users: users, tokens: tokens}
}

// Authenticate returns the user when the credentials check out and
// (nil, nil) otherwise. Unknown username and wrong password are
// deliberately indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// Login authenticates and issues an access token bound to the username.
func (s *Service) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, httperr.NewUnauthenticated("invalid_credentials")
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
