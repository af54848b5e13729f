package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/metrics"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/hash"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

type AccountService struct {
	Repo    *repo.GormRepo
	Events  events.Publisher
	Metrics *metrics.Metrics
}

func (s *AccountService) Register(ctx context.Context, req transport.RegisterRequest) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "account.register", "username", req.Username)

	taken, err := s.Repo.UsernameTaken(ctx, req.Username, 0)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot check username", "error", err)
		return nil, err
	}
	if taken {
		l.Warn("register_error", "status", 400, "reason", "username already exists")
		return nil, usernameConflict()
	}

	pw, err := hash.HashPassword(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		l.Warn("register_error", "status", 400, "reason", "password too long")
		return nil, FieldError("password", MsgPasswordLong)
	}
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	acc := &models.Account{
		Username:  req.Username,
		Password:  pw,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsSeller:  req.IsSeller != nil && *req.IsSeller,
		IsActive:  req.IsActive == nil || *req.IsActive,
	}
	if err := s.Repo.CreateAccount(ctx, acc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("register_error", "status", 400, "reason", "username already exists", "error", err)
			return nil, usernameConflict()
		}
		l.Error("register_error", "status", 500, "reason", "cannot add account to db", "error", err)
		return nil, err
	}

	s.Metrics.AccountRegistered()
	publish(ctx, s.Events, events.TopicAccounts, accountKey(acc), events.TypeAccountRegistered, map[string]any{
		"account_id": acc.ID,
		"username":   acc.Username,
		"is_seller":  acc.IsSeller,
	})
	return acc, nil
}

func (s *AccountService) List(ctx context.Context, offset, limit int) (int64, []models.Account, error) {
	return s.Repo.GetAccounts(ctx, offset, limit)
}

// Newest pages through the n most recently joined accounts.
func (s *AccountService) Newest(ctx context.Context, n, offset, limit int) (int64, []models.Account, error) {
	if n < 0 {
		n = 0
	}
	return s.Repo.NewestAccounts(ctx, n, offset, limit)
}

func (s *AccountService) Get(ctx context.Context, id uint) (*models.Account, error) {
	acc, err := s.Repo.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return acc, nil
}

// Editable loads account id and checks that principal may update it
// through the self-service endpoint. The lookup runs first, so an unknown
// id is reported before missing credentials.
func (s *AccountService) Editable(ctx context.Context, principal *models.Account, id uint) (*models.Account, error) {
	acc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsAuthenticated(principal) {
		return nil, ErrUnauthenticated
	}
	if !IsAccountOwner(principal, acc) {
		s.Metrics.Denied("account.update")
		return nil, ErrForbidden
	}
	return acc, nil
}

// Update applies a self-service patch. is_active is only honoured for a
// superuser principal and is otherwise dropped.
func (s *AccountService) Update(ctx context.Context, principal, acc *models.Account, req transport.PatchAccountRequest) (*models.Account, error) {
	if !IsSuperuser(principal) {
		req.IsActive = nil
	}
	return s.apply(ctx, acc, req)
}

// CanManage reports whether principal may use the management endpoint.
func (s *AccountService) CanManage(principal *models.Account) error {
	if !IsAuthenticated(principal) {
		return ErrUnauthenticated
	}
	if !IsSuperuser(principal) {
		s.Metrics.Denied("account.manage")
		return ErrForbidden
	}
	return nil
}

// Manageable checks superuser rights before looking account id up.
func (s *AccountService) Manageable(ctx context.Context, principal *models.Account, id uint) (*models.Account, error) {
	if err := s.CanManage(principal); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *AccountService) Manage(ctx context.Context, acc *models.Account, req transport.PatchAccountRequest) (*models.Account, error) {
	return s.apply(ctx, acc, req)
}

func (s *AccountService) apply(ctx context.Context, acc *models.Account, req transport.PatchAccountRequest) (*models.Account, error) {
	l := logging.FromContext(ctx).With("svc", "account.update", "account_id", acc.ID)

	if req.Username != nil && *req.Username != acc.Username {
		taken, err := s.Repo.UsernameTaken(ctx, *req.Username, acc.ID)
		if err != nil {
			l.Error("update_account_error", "status", 500, "reason", "cannot check username", "error", err)
			return nil, err
		}
		if taken {
			l.Warn("update_account_error", "status", 400, "reason", "username already exists")
			return nil, usernameConflict()
		}
		acc.Username = *req.Username
	}
	if req.Password != nil {
		pw, err := hash.HashPassword(*req.Password)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			l.Warn("update_account_error", "status", 400, "reason", "password too long")
			return nil, FieldError("password", MsgPasswordLong)
		}
		if err != nil {
			l.Error("update_account_error", "status", 500, "reason", "cannot hash the password", "error", err)
			return nil, err
		}
		acc.Password = pw
	}
	if req.FirstName != nil {
		acc.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		acc.LastName = *req.LastName
	}
	if req.IsSeller != nil {
		acc.IsSeller = *req.IsSeller
	}
	if req.IsActive != nil {
		acc.IsActive = *req.IsActive
	}

	if err := s.Repo.SaveAccount(ctx, acc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			l.Warn("update_account_error", "status", 400, "reason", "username already exists", "error", err)
			return nil, usernameConflict()
		}
		l.Error("update_account_error", "status", 500, "reason", "cannot save account", "error", err)
		return nil, err
	}

	publish(ctx, s.Events, events.TopicAccounts, accountKey(acc), events.TypeAccountUpdated, map[string]any{
		"account_id": acc.ID,
		"username":   acc.Username,
		"is_active":  acc.IsActive,
	})
	return acc, nil
}

// EnsureSuperuser creates an active superuser named username unless an
// account with that name already exists.
func (s *AccountService) EnsureSuperuser(ctx context.Context, username, password string) (bool, error) {
	taken, err := s.Repo.UsernameTaken(ctx, username, 0)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if taken {
		return false, nil
	}

	pw, err := hash.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	acc := &models.Account{
		Username:    username,
		Password:    pw,
		FirstName:   username,
		LastName:    username,
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := s.Repo.CreateAccount(ctx, acc); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

func accountKey(acc *models.Account) string {
	return strconv.FormatUint(uint64(acc.ID), 10)
}
