package users

import (
	"context"
	"errors"

	"playlistke/internal/models"
	"playlistke/internal/store"
	"playlistke/internal/token"
)

// Store captures the persistence needs for account workflows.
type Store interface {
	CreateUser(ctx context.Context, email, name, password string) (models.User, error)
	VerifyCredentials(ctx context.Context, email, password string) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	UpdateUser(ctx context.Context, id int64, patch store.UserPatch) (models.User, error)
}

// Tokens mints and verifies bearer tokens.
type Tokens interface {
	Mint(userID int64, email string) (string, error)
	Verify(tokenString string) (token.Claims, error)
}

// Login is the result of a successful authentication.
type Login struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// Service coordinates registration, login and profile workflows.
type Service interface {
	Register(ctx context.Context, email, name, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (Login, error)
	CurrentUser(ctx context.Context, tokenString string) (models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, patch store.UserPatch) (models.User, error)
}

type service struct {
	store  Store
	tokens Tokens
}

// New constructs a Service backed by the provided Store and token manager.
func New(store Store, tokens Tokens) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Register(ctx context.Context, email, name, password string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	return s.store.CreateUser(ctx, email, name, password)
}

func (s *service) Authenticate(ctx context.Context, email, password string) (Login, error) {
	if err := ctx.Err(); err != nil {
		return Login{}, err
	}
	user, err := s.store.VerifyCredentials(ctx, email, password)
	if err != nil {
		return Login{}, err
	}
	accessToken, err := s.tokens.Mint(user.ID, user.Email)
	if err != nil {
		return Login{}, err
	}
	return Login{AccessToken: accessToken, TokenType: "bearer", User: user}, nil
}

// CurrentUser resolves a bearer token to an active account. Invalid tokens,
// unknown ids and disabled accounts all surface as unauthorized.
func (s *service) CurrentUser(ctx context.Context, tokenString string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return models.User{}, store.ErrUnauthorized
	}
	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, store.ErrUnauthorized
		}
		return models.User{}, err
	}
	if !user.IsActive {
		return models.User{}, store.ErrUnauthorized
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, id int64) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	return s.store.GetUser(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, patch store.UserPatch) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	return s.store.UpdateUser(ctx, userID, patch)
}
