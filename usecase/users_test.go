package usecase

import (
	"context"
	"errors"
	"testing"

	"main/model"
	"main/utils"
)

func init() {
	utils.JWTSecretKey = "test_secret_key"
	utils.JWTExpirationTime = 3600
}

type memUsersStore struct {
	users []*model.User
}

func (m *memUsersStore) AddUser(ctx context.Context, user *model.User) error {
	copied := *user
	m.users = append(m.users, &copied)
	return nil
}

func (m *memUsersStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUsersStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUsersStore) FindByID(ctx context.Context, userID string) (*model.User, error) {
	for _, u := range m.users {
		if u.UserID == userID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUsersStore) SaveToken(ctx context.Context, userID, token string) error {
	for _, u := range m.users {
		if u.UserID == userID {
			u.Token = token
			return nil
		}
	}
	return errors.New("user not found")
}

func (m *memUsersStore) SetTwoFactor(ctx context.Context, userID, secret string, enabled bool) error {
	for _, u := range m.users {
		if u.UserID == userID {
			u.TwoFactorSecret = secret
			u.TwoFactorEnabled = enabled
			return nil
		}
	}
	return errors.New("user not found")
}

func TestRegister(t *testing.T) {
	svc := &UserService{Store: &memUsersStore{}}
	ctx := context.Background()

	if _, err := svc.Register(ctx, "testuser1", "testuser1@test.com", "pass123!"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  error
	}{
		{"Duplicate Username", "testuser1", "other@test.com", "pass123!", ErrUsernameTaken},
		{"Duplicate Email", "testuser2", "testuser1@test.com", "pass123!", ErrEmailTaken},
		{"Weak Password", "testuser3", "testuser3@test.com", "password", ErrWeakPassword},
		{"Valid", "testuser4", "testuser4@test.com", "pass123!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if user.UserID == "" {
					t.Error("registered user has empty id")
				}
				if user.Password == tt.password {
					t.Error("password stored in plain text")
				}
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc := &UserService{Store: &memUsersStore{}}
	ctx := context.Background()

	if _, err := svc.Register(ctx, "testuser1", "testuser1@test.com", "pass123!"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"Valid Credentials", "testuser1", "pass123!", nil},
		{"Wrong Password", "testuser1", "wrong123!", ErrInvalidCredentials},
		{"Unknown Username", "nobody", "pass123!", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.username, tt.password, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIssueTokenIdempotent(t *testing.T) {
	store := &memUsersStore{}
	svc := &UserService{Store: store}
	ctx := context.Background()

	user, err := svc.Register(ctx, "testuser1", "testuser1@test.com", "pass123!")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	first, _, err := svc.IssueToken(ctx, user)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if first == "" {
		t.Fatal("IssueToken() returned empty token")
	}

	// A second login returns the same token, not a fresh one
	reloaded, err := store.FindByID(ctx, user.UserID)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := svc.IssueToken(ctx, reloaded)
	if err != nil {
		t.Fatalf("IssueToken() second call error = %v", err)
	}
	if first != second {
		t.Errorf("token changed between logins:\n%s\n%s", first, second)
	}
}

func TestTwoFactorSetupFlow(t *testing.T) {
	store := &memUsersStore{}
	svc := &UserService{Store: store}
	ctx := context.Background()

	user, err := svc.Register(ctx, "testuser1", "testuser1@test.com", "pass123!")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Verify before setup is rejected
	if err := svc.VerifyTwoFactorSetup(ctx, user, "abcdef"); !errors.Is(err, ErrTwoFactorNotPending) {
		t.Errorf("VerifyTwoFactorSetup() error = %v, want ErrTwoFactorNotPending", err)
	}

	secret, url, err := svc.BeginTwoFactorSetup(ctx, user)
	if err != nil {
		t.Fatalf("BeginTwoFactorSetup() error = %v", err)
	}
	if secret == "" || url == "" {
		t.Fatal("setup returned empty secret or url")
	}

	// Two-factor is not yet enabled; a plain login still succeeds
	if _, err := svc.Authenticate(ctx, "testuser1", "pass123!", ""); err != nil {
		t.Errorf("Authenticate() before verification error = %v", err)
	}

	// Wrong code keeps it disabled
	pending, _ := store.FindByID(ctx, user.UserID)
	if err := svc.VerifyTwoFactorSetup(ctx, pending, "abcdef"); !errors.Is(err, ErrInvalidTwoFactorCode) {
		t.Errorf("VerifyTwoFactorSetup(bad code) error = %v, want ErrInvalidTwoFactorCode", err)
	}
}
