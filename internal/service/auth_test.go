package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/legalconnect/legalconnect/internal/auth"
	"github.com/legalconnect/legalconnect/internal/model"
	"github.com/legalconnect/legalconnect/internal/repository"
)

type fakeUserStore struct {
	byID    map[int64]*model.User
	byEmail map[string]*model.User
	nextID  int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[int64]*model.User),
		byEmail: make(map[string]*model.User),
		nextID:  1,
	}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now().UTC()
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func newTestAuthService(store *fakeUserStore) (*AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret-at-least-32-bytes-long", "legalconnect", time.Hour)
	return NewAuthService(store, tokens, nil), tokens
}

func TestRegister(t *testing.T) {
	store := newFakeUserStore()
	svc, tokens := newTestAuthService(store)

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Jane Citizen",
		Email:    "  Jane@Example.COM ",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned user ID")
	}
	if user.Email != "jane@example.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.Role != model.RoleUser {
		t.Errorf("role = %q, want %q", user.Role, model.RoleUser)
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password stored in plaintext")
	}

	identity, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if identity.UserID != user.ID || identity.Role != model.RoleUser {
		t.Errorf("token identity = %+v, want user %d role %q", identity, user.ID, model.RoleUser)
	}
}

func TestRegisterValidation(t *testing.T) {
	store := newFakeUserStore()
	svc, _ := newTestAuthService(store)

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"empty name", RegisterInput{Email: "a@b.com", Password: "pw"}},
		{"empty email", RegisterInput{Name: "A", Password: "pw"}},
		{"empty password", RegisterInput{Name: "A", Email: "a@b.com"}},
		{"whitespace name", RegisterInput{Name: "   ", Email: "a@b.com", Password: "pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tt.input)
			if !IsValidation(err) {
				t.Errorf("Register() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc, _ := newTestAuthService(store)

	input := RegisterInput{Name: "A", Email: "dup@example.com", Password: "pw"}
	if _, _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, _, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	svc, tokens := newTestAuthService(store)

	registered, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Jane Citizen",
		Email:    "jane@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, token, err := svc.Login(context.Background(), "JANE@example.com", "correct-password")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("user ID = %d, want %d", user.ID, registered.ID)
	}
	if _, err := tokens.Verify(token); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	store := newFakeUserStore()
	svc, _ := newTestAuthService(store)

	if _, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Jane Citizen",
		Email:    "jane@example.com",
		Password: "correct-password",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "jane@example.com", "wrong-password"},
		{"unknown email", "nobody@example.com", "correct-password"},
	}

	// Unknown email and wrong password must be indistinguishable.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestCurrentUser(t *testing.T) {
	store := newFakeUserStore()
	svc, _ := newTestAuthService(store)

	registered, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Jane Citizen",
		Email:    "jane@example.com",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("email = %q", user.Email)
	}

	if _, err := svc.CurrentUser(context.Background(), 9999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("CurrentUser(9999) error = %v, want ErrUserNotFound", err)
	}
}
