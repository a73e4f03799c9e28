package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

const absentUserPassword = "storefront:absent-user"

// AuthUseCase handles user registration and token issuance.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	// absentHash is compared against when the email is unknown so that both
	// login failures cost one hash comparison.
	absentHash func() (string, error)
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		hasher: hasher,
		tokens: strategy,
		absentHash: sync.OnceValues(func() (string, error) {
			return hasher.Hash(absentUserPassword)
		}),
	}
}

// Register creates a new user and returns it with an auth token.
func (u *AuthUseCase) Register(ctx context.Context, email, username, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if !strings.Contains(email, "@") || username == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	usr, err := u.users.Create(ctx, email, username, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Login verifies credentials. Unknown email and wrong password are both
// reported as ErrInvalidCredentials.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			if hash, hashErr := u.absentHash(); hashErr == nil {
				_ = u.hasher.Compare(hash, password)
			}
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordMismatch) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("verify password of user %d: %w", usr.ID, err)
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// ParseToken resolves a token to the identity it was issued for.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Identity, error) {
	if token == "" {
		return pkgAuth.Identity{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

func (u *AuthUseCase) issue(usr *model.User) (string, error) {
	token, err := u.tokens.IssueToken(pkgAuth.Identity{UserID: usr.ID, Email: usr.Email, Username: usr.Username})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
