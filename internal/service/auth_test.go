package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/siaksi/siaksi-api/internal/domain"
	"github.com/siaksi/siaksi-api/internal/repository"
)

// fakeAuthUserRepo implements AuthUserRepository for tests.
type fakeAuthUserRepo struct {
	byEmail map[string]domain.User
	nextID  uint
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{byEmail: make(map[string]domain.User)}
}

func (f *fakeAuthUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return domain.User{}, repository.ErrUserEmailExists
	}

	f.nextID++
	user.ID = f.nextID
	user.IsActive = true
	f.byEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}

	return domain.User{}, repository.ErrUserNotFound
}

func TestSignup_HashesPassword(t *testing.T) {
	repo := newFakeAuthUserRepo()
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.User{
		Email:    "budi@kampus.ac.id",
		Password: "rahasia123",
		Name:     "Budi",
		NIM:      "112233",
		Role:     domain.RoleAnggota,
	})

	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("rahasia123")))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeAuthUserRepo()
	svc := NewAuthService(repo)

	user := domain.User{Email: "budi@kampus.ac.id", Password: "rahasia123"}

	_, err := svc.Signup(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), user)
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestLogin(t *testing.T) {
	repo := newFakeAuthUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Signup(context.Background(), domain.User{
		Email:    "budi@kampus.ac.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "budi@kampus.ac.id", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, "budi@kampus.ac.id", user.Email)

	_, err = svc.Login(context.Background(), "budi@kampus.ac.id", "salah")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "tidakada@kampus.ac.id", "rahasia123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := newFakeAuthUserRepo()
	svc := NewAuthService(repo)

	created, err := svc.Signup(context.Background(), domain.User{
		Email:    "budi@kampus.ac.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	created.IsActive = false
	repo.byEmail[created.Email] = created

	_, err = svc.Login(context.Background(), "budi@kampus.ac.id", "rahasia123")
	assert.ErrorIs(t, err, ErrUserInactive)
}
