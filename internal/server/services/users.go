// Package services contains the development backend's business logic.
// This file implements UserService: admin login and JWT issue/refresh.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
	"github.com/dmitrijs2005/nehruadmin/internal/server/auth"
	"github.com/dmitrijs2005/nehruadmin/internal/server/config"
	"github.com/dmitrijs2005/nehruadmin/internal/server/models"
	"github.com/dmitrijs2005/nehruadmin/internal/server/repositories/users"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	users                users.Repository
	jwtSecret            []byte
	accessTokenValidity  time.Duration
	refreshTokenValidity time.Duration
}

func NewUserService(r users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		users:                r,
		jwtSecret:            []byte(cfg.SecretKey),
		accessTokenValidity:  cfg.AccessTokenValidity,
		refreshTokenValidity: cfg.RefreshTokenValidity,
	}
}

// CreateAdmin stores an account with a bcrypt hash of password.
func (s *UserService) CreateAdmin(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, &models.User{Email: email, Username: email, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and mints a token pair. Unknown accounts and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, *models.User, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(u)
	if err != nil {
		return nil, nil, err
	}
	return pair, u, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := auth.ParseToken(refreshToken, auth.KindRefresh, s.jwtSecret)
	if err != nil {
		return "", err
	}
	u, err := s.userFromClaims(ctx, claims)
	if err != nil {
		return "", err
	}
	return auth.GenerateToken(claims.Subject, u.Email, auth.KindAccess, s.jwtSecret, s.accessTokenValidity)
}

// Authenticate resolves an access token to its account.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := auth.ParseToken(accessToken, auth.KindAccess, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return s.userFromClaims(ctx, claims)
}

func (s *UserService) userFromClaims(ctx context.Context, claims *auth.Claims) (*models.User, error) {
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) generateTokenPair(u *models.User) (*TokenPair, error) {
	sub := strconv.FormatInt(u.ID, 10)
	access, err := auth.GenerateToken(sub, u.Email, auth.KindAccess, s.jwtSecret, s.accessTokenValidity)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := auth.GenerateToken(sub, u.Email, auth.KindRefresh, s.jwtSecret, s.refreshTokenValidity)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
