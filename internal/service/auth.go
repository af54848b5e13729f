package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/metrics"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/pkg/hash"
	"github.com/Skotchmaster/marketplace/pkg/logging"
	"github.com/Skotchmaster/marketplace/pkg/tokens"
)

type AuthService struct {
	Repo    *repo.GormRepo
	Tokens  *tokens.Manager
	Events  events.Publisher
	Metrics *metrics.Metrics
}

// Login exchanges credentials for an access token. Unknown users, wrong
// passwords and inactive accounts all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	acc, err := s.Repo.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 400, "reason", "unknown username")
			s.Metrics.Login(metrics.LoginFailure)
			return "", ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "reason", "cannot load account", "error", err)
		return "", err
	}

	if !hash.CheckPassword(acc.Password, password) {
		l.Warn("login_failed", "status", 400, "reason", "wrong password")
		s.Metrics.Login(metrics.LoginFailure)
		return "", ErrInvalidCredentials
	}
	if !acc.IsActive {
		l.Warn("login_failed", "status", 400, "reason", "account inactive")
		s.Metrics.Login(metrics.LoginFailure)
		return "", ErrInvalidCredentials
	}

	token, _, err := s.Tokens.Issue(acc.ID)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return "", err
	}

	s.Metrics.Login(metrics.LoginSuccess)
	publish(ctx, s.Events, events.TopicAccounts, accountKey(acc), events.TypeAccountLoggedIn, map[string]any{
		"account_id": acc.ID,
	})
	return token, nil
}

// Authenticate resolves a bearer token to a live, active account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	id, err := claims.AccountID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	acc, err := s.Repo.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountInactive
		}
		return nil, err
	}
	if !acc.IsActive {
		return nil, ErrAccountInactive
	}
	return acc, nil
}
