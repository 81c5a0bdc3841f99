package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

type UserService struct {
	Repo   *store.DB
	Hasher PasswordHasher
	Roles  *RoleService
	Logger *logger.Logger
}

func NewUserService(repo *store.DB, hasher PasswordHasher, roles *RoleService, log *logger.Logger) *UserService {
	return &UserService{Repo: repo, Hasher: hasher, Roles: roles, Logger: log.WithComponent("users")}
}

var errBadCredentials = fmt.Errorf("invalid login or password: %w", domain.ErrUnauthorized)

// RegisterUser creates an account with the User role.
func (s *UserService) RegisterUser(ctx context.Context, in UserInput) (*domain.User, error) {
	return s.register(ctx, in, constants.RoleUser)
}

// RegisterAdmin creates an account with the Admin role.
func (s *UserService) RegisterAdmin(ctx context.Context, in UserInput) (*domain.User, error) {
	return s.register(ctx, in, constants.RoleAdmin)
}

func (s *UserService) register(ctx context.Context, in UserInput, roleTitle string) (*domain.User, error) {
	login := strings.TrimSpace(in.Login)
	nickname := strings.TrimSpace(in.Nickname)

	verr := &domain.ValidationError{}
	if login == "" {
		verr.Add("login", "is required")
	}
	if nickname == "" {
		verr.Add("nickname", "is required")
	}
	if in.Password == "" {
		verr.Add("password", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	role, err := s.Roles.ByTitle(ctx, roleTitle)
	if err != nil {
		return nil, err
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Login: login, Nickname: nickname, Password: hash, RoleID: role.ID}
	err = s.Repo.RunInTx(ctx, func(tx *store.DB) error {
		existing, err := tx.GetUserByLogin(ctx, login)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("login %q is already taken: %w", login, domain.ErrConflict)
		}
		return tx.CreateUser(ctx, user)
	})
	if store.IsUniqueViolation(err) {
		err = fmt.Errorf("login %q is already taken: %w", login, domain.ErrConflict)
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Info("User registered", "user_id", user.ID, "role", role.Title)
	user.Role = role
	return user, nil
}

// Login checks the credentials. Unknown logins and wrong passwords fail alike.
func (s *UserService) Login(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.Repo.GetUserByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errBadCredentials
	}

	ok, err := s.Hasher.Verify(password, user.Password)
	if err != nil {
		s.Logger.Warn("Stored password hash is unusable", "user_id", user.ID, "error", err)
		return nil, errBadCredentials
	}
	if !ok {
		return nil, errBadCredentials
	}

	role, err := s.Repo.GetRole(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}
