package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
	testhelpers "github.com/polkiloo/storefront/internal/test"
)

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, testhelpers.StrategyStub{})

	ctx := context.Background()
	user, token, err := uc.Register(ctx, "  Alice@Example.com ", " alice ", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected normalized email in repository: %v", err)
	}
	if stored.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", stored.Username)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, testhelpers.StrategyStub{})

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "bob@example.com", "bob", "secret"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, "BOB@example.com", "bobby", "secret"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for email, got %v", err)
	}
	if _, _, err := uc.Register(ctx, "other@example.com", "bob", "secret"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists for username, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, testhelpers.StrategyStub{})

	cases := []struct {
		name                      string
		email, username, password string
	}{
		{name: "empty email", email: "", username: "user", password: "pass"},
		{name: "email without at", email: "user.example.com", username: "user", password: "pass"},
		{name: "blank username", email: "user@example.com", username: "   ", password: "pass"},
		{name: "empty password", email: "user@example.com", username: "user", password: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := uc.Register(context.Background(), tc.email, tc.username, tc.password); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
				t.Fatalf("expected invalid credentials error, got %v", err)
			}
		})
	}
}

func TestAuthUseCaseRegisterFailures(t *testing.T) {
	t.Run("hasher", func(t *testing.T) {
		uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{HashFn: func(string) (string, error) {
			return "", fmt.Errorf("hash error")
		}}, testhelpers.StrategyStub{})
		if _, _, err := uc.Register(context.Background(), "u@example.com", "u", "pass"); err == nil {
			t.Fatal("expected hashing error")
		}
	})

	t.Run("repository", func(t *testing.T) {
		repo := testhelpers.NewUserRepositoryStub()
		repo.Err = fmt.Errorf("db down: %w", domainErrors.ErrPersistence)
		uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
		if _, _, err := uc.Register(context.Background(), "u@example.com", "u", "pass"); !errors.Is(err, domainErrors.ErrPersistence) {
			t.Fatalf("expected persistence error, got %v", err)
		}
	})

	t.Run("token", func(t *testing.T) {
		strategy := testhelpers.StrategyStub{IssueFn: func(pkgAuth.Identity) (string, error) {
			return "", fmt.Errorf("cannot issue token")
		}}
		uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, strategy)
		if _, _, err := uc.Register(context.Background(), "u@example.com", "u", "pass"); err == nil {
			t.Fatal("expected token issuance error")
		}
	})
}

func TestAuthUseCaseLogin(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	var issued pkgAuth.Identity
	strategy := testhelpers.StrategyStub{IssueFn: func(identity pkgAuth.Identity) (string, error) {
		issued = identity
		return fmt.Sprintf("token-%d", identity.UserID), nil
	}}
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, strategy)

	ctx := context.Background()
	registered, _, err := uc.Register(ctx, "carol@example.com", "carol", "123456")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, err := uc.Login(ctx, "Carol@Example.com", "123456")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if user.ID != registered.ID || token != fmt.Sprintf("token-%d", registered.ID) {
		t.Fatalf("unexpected login result: %+v %q", user, token)
	}
	if issued.Email != "carol@example.com" || issued.Username != "carol" {
		t.Fatalf("token should carry profile claims, got %+v", issued)
	}
}

func TestAuthUseCaseLoginCollapsesFailures(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, testhelpers.StrategyStub{})

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "dave@example.com", "dave", "right"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPasswordToken, wrongPassword := uc.Login(ctx, "dave@example.com", "wrong")
	_, unknownToken, unknownEmail := uc.Login(ctx, "nobody@example.com", "right")

	if !errors.Is(wrongPassword, domainErrors.ErrInvalidCredentials) || !errors.Is(unknownEmail, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for both, got %v and %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failures must be indistinguishable: %q vs %q", wrongPassword, unknownEmail)
	}
	if wrongPasswordToken != "" || unknownToken != "" {
		t.Fatal("no token must be returned on failure")
	}

	if _, _, err := uc.Login(ctx, "", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for empty input, got %v", err)
	}
}

func TestAuthUseCaseLoginRepositoryError(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	repo.Err = domainErrors.ErrPersistence
	uc := NewAuthUseCase(repo, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
	if _, _, err := uc.Login(context.Background(), "a@example.com", "p"); !errors.Is(err, domainErrors.ErrPersistence) {
		t.Fatalf("expected persistence error to propagate, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, testhelpers.StrategyStub{})

	identity, err := uc.ParseToken("token-42")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if identity.UserID != 42 {
		t.Fatalf("expected id 42, got %d", identity.UserID)
	}

	if _, err := uc.ParseToken("bad-token"); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestAuthUseCaseLoginComparesHashForUnknownEmail(t *testing.T) {
	var compared []string
	hasher := testhelpers.HasherStub{CompareFn: func(hash, password string) error {
		compared = append(compared, hash)
		if hash != "hash:"+password {
			return pkgAuth.ErrPasswordMismatch
		}
		return nil
	}}
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, hasher, testhelpers.StrategyStub{})

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "erin@example.com", "erin", "right"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, email := range []string{"nobody@example.com", "ghost@example.com"} {
		if _, _, err := uc.Login(ctx, email, "right"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials, got %v", err)
		}
	}
	if _, _, err := uc.Login(ctx, "erin@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	if len(compared) != 3 {
		t.Fatalf("every failed login must cost one comparison, got %d", len(compared))
	}
	if compared[0] != "hash:"+absentUserPassword || compared[1] != compared[0] {
		t.Fatalf("unknown emails must be compared against the absent-user hash, got %v", compared)
	}
	if compared[2] != "hash:right" {
		t.Fatalf("known email must be compared against its stored hash, got %q", compared[2])
	}
}

func TestAuthUseCaseLoginSurfacesCorruptHash(t *testing.T) {
	corrupt := errors.New("crypto/bcrypt: hashedSecret too short to be a bcrypted password")
	hasher := testhelpers.HasherStub{CompareFn: func(string, string) error { return corrupt }}
	repo := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(repo, hasher, testhelpers.StrategyStub{})

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "frank@example.com", "frank", "pw"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, token, err := uc.Login(ctx, "frank@example.com", "pw")
	if !errors.Is(err, corrupt) {
		t.Fatalf("expected hash error to surface, got %v", err)
	}
	if errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("corrupt hash must not be reported as bad credentials: %v", err)
	}
	if token != "" {
		t.Fatal("no token must be returned on failure")
	}
}
