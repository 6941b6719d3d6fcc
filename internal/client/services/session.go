package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/nehruadmin/internal/client/client"
	"github.com/dmitrijs2005/nehruadmin/internal/client/repositories/session"
	"github.com/dmitrijs2005/nehruadmin/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNotLoggedIn is returned when no session is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// refresh this long before the access token expires
const refreshLeeway = 30 * time.Second

// SessionService keeps the admin's tokens in the local session database.
//
// Token is meant to be plugged into the transport as its TokenProvider: it
// returns the stored access token, refreshing it first when it is about to
// expire. Requests made without a session go out unauthenticated.
type SessionService interface {
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Token(ctx context.Context) (string, error)
	Current(ctx context.Context) (*Session, error)
}

// Session describes the signed-in admin.
type Session struct {
	Email     string
	ExpiresAt time.Time
}

type sessionService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

func NewSessionService(c client.Client, db *sql.DB) SessionService {
	return &sessionService{client: c, db: db, now: time.Now}
}

func (s *sessionService) repo() session.Repository {
	return session.NewSQLiteRepository(s.db)
}

func (s *sessionService) Login(ctx context.Context, email string, password []byte) error {
	tokens, err := s.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := session.NewSQLiteRepository(tx)
		if err := r.Clear(ctx); err != nil {
			return err
		}
		if err := r.Set(ctx, session.KeyAccessToken, tokens.Access); err != nil {
			return err
		}
		if err := r.Set(ctx, session.KeyRefreshToken, tokens.Refresh); err != nil {
			return err
		}
		return r.Set(ctx, session.KeyEmail, email)
	})
}

func (s *sessionService) Logout(ctx context.Context) error {
	return s.repo().Clear(ctx)
}

func (s *sessionService) Token(ctx context.Context) (string, error) {
	r := s.repo()
	access, ok, err := r.Get(ctx, session.KeyAccessToken)
	if err != nil || !ok {
		return "", err
	}

	exp, err := tokenExpiry(access)
	if err != nil || exp.IsZero() || s.now().Add(refreshLeeway).Before(exp) {
		// unreadable tokens are sent as is; the server has the final say
		return access, nil
	}

	refresh, ok, err := r.Get(ctx, session.KeyRefreshToken)
	if err != nil {
		return "", err
	}
	if !ok || refresh == "" {
		return access, nil
	}

	fresh, err := s.client.Refresh(ctx, refresh)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			_ = r.Clear(ctx)
			return "", nil
		}
		return "", fmt.Errorf("refresh session: %w", err)
	}
	if err := r.Set(ctx, session.KeyAccessToken, fresh); err != nil {
		return "", err
	}
	return fresh, nil
}

func (s *sessionService) Current(ctx context.Context) (*Session, error) {
	r := s.repo()
	access, ok, err := r.Get(ctx, session.KeyAccessToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}
	email, _, err := r.Get(ctx, session.KeyEmail)
	if err != nil {
		return nil, err
	}
	exp, _ := tokenExpiry(access)
	return &Session{Email: email, ExpiresAt: exp}, nil
}

// tokenExpiry reads the exp claim without verifying the signature; only the
// server can verify it.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, err
	}
	return exp.Time, nil
}
