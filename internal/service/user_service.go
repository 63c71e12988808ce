package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tradegate/internal/domain"
	"tradegate/internal/fault"
	"tradegate/internal/platform/logger"
	"tradegate/internal/service/auth"
	"tradegate/internal/store"
)

// minPasswordLength is the shortest password accepted at signup and on
// password change.
const minPasswordLength = 8

// CreateUserInput carries the CreateUser parameters. Email is checked for
// presence only; no format rule applies. The password length rule is
// enforced in the service so it yields its own fault.
type CreateUserInput struct {
	Email    string `json:"email"    xml:"email"    validate:"required"`
	Password string `json:"password" xml:"password" validate:"required"`
	Name     string `json:"name"     xml:"name"`
}

// GetUserInput identifies the user to fetch.
type GetUserInput struct {
	ID int64 `json:"id" xml:"id" validate:"required"`
}

// UpdateUserInput carries the UpdateUser parameters. Nil and empty fields
// are left unchanged.
type UpdateUserInput struct {
	ID       int64   `json:"id"       xml:"id" validate:"required"`
	Name     *string `json:"name"     xml:"name"`
	Password *string `json:"password" xml:"password"`
}

// DeleteUserInput identifies the user to delete.
type DeleteUserInput struct {
	ID int64 `json:"id" xml:"id" validate:"required"`
}

// LoginInput carries the Login credentials.
type LoginInput struct {
	Email    string `json:"email"    xml:"email"    validate:"required"`
	Password string `json:"password" xml:"password" validate:"required"`
}

// LoginResult is the Login payload: the account plus a fresh bearer token.
type LoginResult struct {
	domain.User
	Token string `json:"token" xml:"token"`
}

// UserService implements the user account operations: signup, reads,
// self-or-admin updates and deletes, and login.
type UserService struct {
	db     *sql.DB
	users  store.UserStore
	tokens auth.TokenService
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a UserService. All dependencies except the logger
// are required.
func NewUserService(
	db *sql.DB,
	users store.UserStore,
	tokens auth.TokenService,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserService {
	if db == nil {
		panic("db cannot be nil")
	}
	if users == nil {
		panic("users cannot be nil")
	}
	if tokens == nil {
		panic("tokens cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		db:     db,
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// CreateUser registers a new account. The duplicate-email check and the
// insert run in one transaction so two concurrent signups with the same
// email cannot both pass the check.
func (s *UserService) CreateUser(ctx context.Context, in *CreateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(in.Password) < minPasswordLength {
		return nil, fault.InvalidPassword()
	}

	user, err := domain.NewUser(in.Email, s.hasher.Hash(in.Password), in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)

		_, err := txUsers.GetByEmail(ctx, in.Email)
		if err == nil {
			return store.ErrEmailExists
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}

		return txUsers.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("signup with registered email",
				slog.String("email", in.Email))
		} else {
			log.Error("failed to create user",
				slog.String("error", err.Error()),
				slog.String("email", in.Email))
		}
		return nil, err
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email))

	return user, nil
}

// ListUsers returns every account, ordered by ID.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	users, err := s.users.GetAll(ctx)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// GetUser retrieves one account by ID.
func (s *UserService) GetUser(ctx context.Context, in *GetUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found", slog.Int64("user_id", in.ID))
		} else {
			log.Error("failed to retrieve user",
				slog.String("error", err.Error()),
				slog.Int64("user_id", in.ID))
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}

// UpdateUser changes the target's name and/or password. The target must
// exist, and the caller must be the target or hold the admin role. Empty
// field values are ignored the same as omitted ones. The whole
// resolve-authorize-write sequence runs in one transaction.
func (s *UserService) UpdateUser(ctx context.Context, claims *auth.Claims, in *UpdateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)

		var err error
		user, err = txUsers.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}

		if err := authorizeUserTarget(ctx, txUsers, claims, in.ID); err != nil {
			return err
		}

		changed := false
		if in.Name != nil && *in.Name != "" {
			user.Name = *in.Name
			changed = true
		}
		if in.Password != nil && *in.Password != "" {
			if len(*in.Password) < minPasswordLength {
				return fault.InvalidPassword()
			}
			user.PasswordDigest = s.hasher.Hash(*in.Password)
			changed = true
		}
		if !changed {
			return nil
		}

		user.UpdatedAt = time.Now().UTC()
		return txUsers.Update(ctx, user)
	})
	if err != nil {
		logMutationFailure(log, "update user", err,
			slog.Int64("user_id", in.ID),
			slog.Int64("caller_id", claims.UserID))
		return nil, err
	}

	log.Info("user updated",
		slog.Int64("user_id", user.ID),
		slog.Int64("caller_id", claims.UserID))

	return user, nil
}

// DeleteUser removes the target account. The target must exist, and the
// caller must be the target or hold the admin role.
func (s *UserService) DeleteUser(ctx context.Context, claims *auth.Claims, in *DeleteUserInput) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)

		if _, err := txUsers.GetByID(ctx, in.ID); err != nil {
			return err
		}

		if err := authorizeUserTarget(ctx, txUsers, claims, in.ID); err != nil {
			return err
		}

		return txUsers.Delete(ctx, in.ID)
	})
	if err != nil {
		logMutationFailure(log, "delete user", err,
			slog.Int64("user_id", in.ID),
			slog.Int64("caller_id", claims.UserID))
		return err
	}

	log.Info("user deleted",
		slog.Int64("user_id", in.ID),
		slog.Int64("caller_id", claims.UserID))

	return nil
}

// Login verifies the credentials and issues a bearer token. Unknown emails
// and wrong passwords yield the same fault so the response never reveals
// whether an account exists.
func (s *UserService) Login(ctx context.Context, in *LoginInput) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login with unknown email", slog.String("email", in.Email))
			return nil, fault.InvalidCredentials()
		}
		log.Error("failed to retrieve user for login",
			slog.String("error", err.Error()),
			slog.String("email", in.Email))
		return nil, fmt.Errorf("failed to retrieve user for login: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordDigest) {
		log.Debug("login with wrong password",
			slog.Int64("user_id", user.ID),
			slog.String("email", in.Email))
		return nil, fault.InvalidCredentials()
	}

	token, err := s.tokens.Issue(ctx, user.ID, user.Email)
	if err != nil {
		log.Error("failed to issue token",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email))

	return &LoginResult{User: *user, Token: token}, nil
}

// authorizeUserTarget checks that the caller may manage the target account:
// callers always manage themselves, and admins manage anyone. The admin
// check re-reads the caller's stored role inside the transaction so a
// revoked admin cannot keep acting on a stale token.
func authorizeUserTarget(ctx context.Context, users store.UserStore, claims *auth.Claims, targetID int64) error {
	if claims.UserID == targetID {
		return nil
	}

	caller, err := users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return fault.Unauthorized()
		}
		return fmt.Errorf("failed to load caller: %w", err)
	}

	if !domain.CanManageUser(claims.UserID, caller.Role, targetID) {
		return fault.Unauthorized()
	}

	return nil
}

// logMutationFailure picks the log level for a failed mutation: business
// faults and store sentinels are expected and log at debug, everything else
// is a server-side failure and logs at error.
func logMutationFailure(log *slog.Logger, what string, err error, attrs ...slog.Attr) {
	var flt *fault.Fault
	expected := errors.As(err, &flt) || errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrDuplicate)

	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.String("error", err.Error()))
	for _, a := range attrs {
		args = append(args, a)
	}

	if expected {
		log.Debug("rejected "+what, args...)
	} else {
		log.Error("failed to "+what, args...)
	}
}
