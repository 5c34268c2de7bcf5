// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, session inspection and
// logout on top of the token service.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/server/validation"
	"github.com/samber/oops"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.User
	Token auth.Token
}

// ValidationError carries per-field messages. errors.Is matches it against
// common.ErrValidation.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors.Fields(), ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrValidation
}

// UserService provides authentication-related operations:
// - Register: validate, hash, create the user and issue a token
// - Login: verify credentials and issue a token
// - Inspect: resolve a presented token to its user
// - Logout: invalidate a presented token
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenService
	hasher      auth.PasswordHasher
	validator   *validation.Validator
	logger      logging.Logger
}

// NewUserService wires the service. db may be nil for the in-memory manager.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenService,
	hasher auth.PasswordHasher, l logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		validator:   validation.New(m.Users(db)),
		logger:      l.With("module", "user_service"),
	}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*AuthResult, error) {
	errs, err := s.validator.ValidateRegister(ctx, req)
	if err != nil {
		return nil, s.internal(ctx, "AUTH_REGISTER_FAILED", "register: email check failed", err, "email", req.Email)
	}
	if !errs.Empty() {
		s.logger.Warn(ctx, "register rejected", "email", req.Email, "fields", errs.Fields())
		return nil, &ValidationError{Errors: errs}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, s.internal(ctx, "AUTH_REGISTER_FAILED", "register: hashing failed", err, "email", req.Email)
	}

	user, err := s.createUser(ctx, &models.User{Name: req.Name, Email: req.Email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Warn(ctx, "register rejected", "email", req.Email, "fields", []string{"email"})
			return nil, &ValidationError{Errors: validation.Errors{"email": {validation.Taken("email")}}}
		}
		return nil, s.internal(ctx, "AUTH_REGISTER_FAILED", "register: create user failed", err, "email", req.Email)
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, s.internal(ctx, "AUTH_REGISTER_FAILED", "register: issue token failed", err, "user_id", user.ID)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "email", user.Email)
	return &AuthResult{User: user, Token: tok}, nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*AuthResult, error) {
	if errs := s.validator.ValidateLogin(req); !errs.Empty() {
		s.logger.Warn(ctx, "login rejected", "email", req.Email, "fields", errs.Fields())
		return nil, &ValidationError{Errors: errs}
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "login failed: unknown email", "email", req.Email)
			return nil, common.ErrInvalidEmail
		}
		return nil, s.internal(ctx, "AUTH_LOGIN_FAILED", "login: user lookup failed", err, "email", req.Email)
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, s.internal(ctx, "AUTH_LOGIN_FAILED", "login: stored hash unusable", err, "user_id", user.ID)
	}
	if !ok {
		s.logger.Warn(ctx, "login failed: wrong password", "user_id", user.ID)
		return nil, common.ErrInvalidPassword
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, s.internal(ctx, "AUTH_LOGIN_FAILED", "login: issue token failed", err, "user_id", user.ID)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &AuthResult{User: user, Token: tok}, nil
}

// Inspect returns the user a valid token belongs to. A token whose user no
// longer exists is reported as invalid.
func (s *UserService) Inspect(ctx context.Context, raw string) (*models.User, error) {
	claims, err := s.tokens.Authenticate(ctx, raw)
	if err != nil {
		if errors.Is(err, common.ErrorInternal) {
			return nil, s.internal(ctx, "AUTH_INSPECT_FAILED", "inspect: authenticate failed", err)
		}
		s.logger.Debug(ctx, "token rejected", "reason", err.Error())
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Warn(ctx, "token for unknown user", "user_id", claims.UserID())
			return nil, common.ErrTokenInvalid
		}
		return nil, s.internal(ctx, "AUTH_INSPECT_FAILED", "inspect: user lookup failed", err, "user_id", claims.UserID())
	}
	return user, nil
}

// Logout invalidates raw. Only a missing token is reported as a client
// error; every other failure keeps common.ErrInvalidationFailed in its chain.
func (s *UserService) Logout(ctx context.Context, raw string) error {
	err := s.tokens.Invalidate(ctx, raw)
	if err == nil {
		s.logger.Info(ctx, "token invalidated")
		return nil
	}
	if errors.Is(err, common.ErrTokenMissing) {
		return err
	}
	if !errors.Is(err, common.ErrInvalidationFailed) {
		err = fmt.Errorf("%w: %w", common.ErrInvalidationFailed, err)
	}
	wrapped := oops.Code("AUTH_LOGOUT_FAILED").Wrap(err)
	logging.LogError(ctx, s.logger, "logout: invalidation failed", wrapped)
	return wrapped
}

// createUser inserts the user inside a transaction when a database is
// configured.
func (s *UserService) createUser(ctx context.Context, u *models.User) (*models.User, error) {
	if s.db == nil {
		return s.repomanager.Users(nil).Create(ctx, u)
	}

	var created *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.repomanager.Users(tx).Create(ctx, u)
		return err
	})
	return created, err
}

// internal wraps err as a coded ErrorInternal and logs it.
func (s *UserService) internal(ctx context.Context, code, msg string, err error, kv ...any) error {
	wrapped := oops.Code(code).With(kv...).Wrap(fmt.Errorf("%w: %w", common.ErrorInternal, err))
	logging.LogError(ctx, s.logger, msg, wrapped)
	return wrapped
}
