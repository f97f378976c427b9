package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkravets/sayright/internal/config"
	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/internal/mock"
	"github.com/mkravets/sayright/internal/server/docstore"
	"github.com/mkravets/sayright/internal/utils"
	"github.com/mkravets/sayright/models"
)

func newTestAuthService(t *testing.T) (AuthService, *mock.MockUserRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, config.Auth{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "sayright-test",
		TokenDuration: time.Hour,
	}, logger.Nop())

	return svc, users
}

// ── registration ─────────────────────────────────────────────────────────────

func TestAuthService_RegisterUser(t *testing.T) {
	svc, users := newTestAuthService(t)

	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			// сервис должен передать bcrypt-хэш, а не пароль
			assert.NotEqual(t, "secret", u.Password)
			assert.NoError(t, utils.CheckPassword("secret", u.Password))
			assert.NotEmpty(t, u.UID)
			u.CreatedAt = time.Now()
			return u, nil
		})

	registered, err := svc.RegisterUser(context.Background(), models.User{Login: "john", Password: "secret", Name: "John"})
	require.NoError(t, err)

	assert.Equal(t, "john", registered.Login)
	assert.NotEmpty(t, registered.UID)
	assert.Empty(t, registered.Password, "hash must not leak back to the caller")
}

func TestAuthService_RegisterUser_InvalidData(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "john"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(context.Background(), models.User{Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_RegisterUser_DuplicateLogin(t *testing.T) {
	svc, users := newTestAuthService(t)

	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, docstore.ErrLoginAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "john", Password: "secret"})
	assert.ErrorIs(t, err, docstore.ErrLoginAlreadyExists)
}

// ── login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login(t *testing.T) {
	svc, users := newTestAuthService(t)

	hash, err := utils.HashPassword("secret")
	require.NoError(t, err)

	users.EXPECT().
		FindUserByLogin(gomock.Any(), "john").
		Return(models.User{UID: "u1", Login: "john", Password: hash}, nil)

	authenticated, err := svc.Login(context.Background(), models.User{Login: "john", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "u1", authenticated.UID)
	assert.Empty(t, authenticated.Password)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, users := newTestAuthService(t)

	hash, err := utils.HashPassword("secret")
	require.NoError(t, err)

	users.EXPECT().
		FindUserByLogin(gomock.Any(), "john").
		Return(models.User{UID: "u1", Login: "john", Password: hash}, nil)

	_, err = svc.Login(context.Background(), models.User{Login: "john", Password: "guess"})
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, users := newTestAuthService(t)

	users.EXPECT().
		FindUserByLogin(gomock.Any(), "ghost").
		Return(models.User{}, docstore.ErrNoUserWasFound)

	_, err := svc.Login(context.Background(), models.User{Login: "ghost", Password: "secret"})
	assert.ErrorIs(t, err, docstore.ErrNoUserWasFound)
}

// ── tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UID: "u1", Login: "john"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "u1", parsed.UID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	svc, _ := newTestAuthService(t)

	other := NewAuthService(nil, config.Auth{
		TokenSignKey:  "another-key",
		TokenIssuer:   "sayright-test",
		TokenDuration: time.Hour,
	}, logger.Nop())

	token, err := other.CreateToken(context.Background(), models.User{UID: "u1"})
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	svc, users := newTestAuthService(t)

	users.EXPECT().
		FindUserByLogin(gomock.Any(), "john").
		Return(models.User{}, errors.New("db is down"))

	_, err := svc.Login(context.Background(), models.User{Login: "john", Password: "secret"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrWrongPassword)
}
