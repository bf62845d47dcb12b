package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NordCoder/Postbox/internal/apperr"
	domainauth "github.com/NordCoder/Postbox/internal/auth"
	"github.com/NordCoder/Postbox/internal/domain/user"
	pg "github.com/NordCoder/Postbox/internal/repository/postgres"
)

// ValidationPolicy holds the placeholder credential checks. Deployments with
// stronger requirements swap the thresholds via config instead of editing
// this package.
type ValidationPolicy struct {
	MinUsernameLen int
	MinPasswordLen int
}

var DefaultValidation = ValidationPolicy{
	MinUsernameLen: 3,
	MinPasswordLen: 12,
}

type Config struct {
	AccessTTL  time.Duration
	Validation ValidationPolicy
	Argon      domainauth.ArgonParams
	Now        func() time.Time
}

// Usecase implements login and registration on top of the user repository,
// the credential hasher and the token service.
type Usecase struct {
	users  user.Repo
	tokens *domainauth.TokenService
	log    *zap.Logger
	cfg    Config
}

func NewUsecase(users user.Repo, tokens *domainauth.TokenService, log *zap.Logger, cfg Config) *Usecase {
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.Validation == (ValidationPolicy{}) {
		cfg.Validation = DefaultValidation
	}
	if cfg.Argon == (domainauth.ArgonParams{}) {
		cfg.Argon = domainauth.DefaultArgon
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{users: users, tokens: tokens, log: log, cfg: cfg}
}

// Login checks the credentials and issues an access token whose subject is
// the user's id and whose roles come from the user row. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (u *Usecase) Login(ctx context.Context, username, password string) (*user.User, string, int64, error) {
	rec, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pg.ErrNotFound) {
			return nil, "", 0, apperr.ErrAuthenticationFailed
		}
		u.log.Error("user lookup failed", zap.Error(err))
		return nil, "", 0, apperr.ErrInternal
	}
	if !domainauth.VerifyPassword(rec.Password, password) {
		return nil, "", 0, apperr.ErrAuthenticationFailed
	}

	roles := rec.Roles
	if len(roles) == 0 {
		roles = []string{"user"}
	}
	claims := domainauth.NewClaims(strconv.FormatInt(rec.ID, 10), roles, u.cfg.AccessTTL)
	token, err := u.tokens.Issue(claims)
	if err != nil {
		return nil, "", 0, err
	}
	return rec, token, int64(u.cfg.AccessTTL.Seconds()), nil
}

// Register validates the payload, hashes the password and creates the user.
// Validation messages are client-safe and echoed verbatim.
func (u *Usecase) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	if len(username) < u.cfg.Validation.MinUsernameLen {
		return nil, apperr.Validation("Username too short")
	}
	if !isValidEmail(email) {
		return nil, apperr.Validation("Invalid email format")
	}
	if len(password) < u.cfg.Validation.MinPasswordLen {
		return nil, apperr.Validation(fmt.Sprintf("Password must be at least %d characters", u.cfg.Validation.MinPasswordLen))
	}

	rec := &user.User{
		Username: username,
		Email:    email,
		Password: domainauth.HashPassword(u.cfg.Argon, password),
		Roles:    []string{"user"},
	}
	if err := u.users.Create(ctx, rec); err != nil {
		if errors.Is(err, pg.ErrConflict) {
			return nil, apperr.Validation("Username or email already exists")
		}
		u.log.Error("user insert failed", zap.Error(err))
		return nil, apperr.ErrInternal
	}
	return rec, nil
}

// CurrentUser resolves the user row behind an authenticated subject.
func (u *Usecase) CurrentUser(ctx context.Context, subject string) (*user.User, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, apperr.ErrInvalidToken
	}
	rec, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pg.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		u.log.Error("user lookup failed", zap.Error(err))
		return nil, apperr.ErrInternal
	}
	return rec, nil
}

func isValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
