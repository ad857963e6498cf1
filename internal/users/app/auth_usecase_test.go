package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newsnotes/internal/access"
	"newsnotes/internal/users/app"
	"newsnotes/internal/users/domain/entities"
	"newsnotes/internal/users/domain/services"
	"newsnotes/internal/users/ports/api"
	"newsnotes/pkg/logger"
)

type authFixture struct {
	ctx      context.Context
	users    *mockUserRepository
	password *mockPasswordService
	tokens   *mockTokenService
	sessions *mockSessionStore
	useCase  api.AuthUseCase
}

func setupAuth(t *testing.T) authFixture {
	t.Helper()
	fx := authFixture{
		ctx:      logger.NewContext(context.Background(), logger.NewNop()),
		users:    new(mockUserRepository),
		password: new(mockPasswordService),
		tokens:   new(mockTokenService),
		sessions: new(mockSessionStore),
	}
	fx.useCase = app.NewAuthUseCase(fx.users, fx.password, fx.tokens, fx.sessions)
	t.Cleanup(func() {
		fx.users.AssertExpectations(t)
		fx.password.AssertExpectations(t)
		fx.tokens.AssertExpectations(t)
		fx.sessions.AssertExpectations(t)
	})
	return fx
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	errs, ok := access.AsFieldErrors(err)
	require.True(t, ok, "expected field errors, got %v", err)
	return errs.ByField()
}

func TestSignUp_Success(t *testing.T) {
	fx := setupAuth(t)
	created := &entities.User{ID: "user-1", Username: "author", PasswordHash: "hash"}

	fx.users.On("FindByUsername", fx.ctx, "author").Return(nil, entities.ErrUserNotFound)
	fx.password.On("Hash", fx.ctx, "correct-horse").Return("hash", nil)
	fx.users.On("Create", fx.ctx, &entities.User{Username: "author", PasswordHash: "hash"}).Return(created, nil)

	user, err := fx.useCase.SignUp(fx.ctx, "  author ", "correct-horse", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, created, user)
}

func TestSignUp_FormErrors(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password1 string
		password2 string
		want      map[string][]string
	}{
		{
			name: "everything empty",
			want: map[string][]string{
				app.FieldUsername:  {app.MsgRequired},
				app.FieldPassword1: {app.MsgRequired},
				app.FieldPassword2: {app.MsgRequired},
			},
		},
		{
			name:     "bad username characters",
			username: "bad name!", password1: "correct-horse", password2: "correct-horse",
			want: map[string][]string{app.FieldUsername: {app.MsgUsernameInvalid}},
		},
		{
			name:     "username too long",
			username: strings.Repeat("a", 151), password1: "correct-horse", password2: "correct-horse",
			want: map[string][]string{app.FieldUsername: {app.MsgUsernameTooLong}},
		},
		{
			name:     "passwords differ",
			username: "author", password1: "correct-horse", password2: "battery-staple",
			want: map[string][]string{app.FieldPassword2: {app.MsgPasswordMismatch}},
		},
		{
			name:     "password too short",
			username: "author", password1: "short", password2: "short",
			want: map[string][]string{app.FieldPassword2: {app.MsgPasswordTooShort}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := setupAuth(t)

			user, err := fx.useCase.SignUp(fx.ctx, tt.username, tt.password1, tt.password2)
			assert.Nil(t, user)
			assert.Equal(t, tt.want, fieldErrors(t, err))
		})
	}
}

func TestSignUp_UsernameTaken(t *testing.T) {
	t.Run("found before insert", func(t *testing.T) {
		fx := setupAuth(t)
		fx.users.On("FindByUsername", fx.ctx, "author").Return(&entities.User{ID: "user-1"}, nil)

		_, err := fx.useCase.SignUp(fx.ctx, "author", "correct-horse", "correct-horse")
		assert.Equal(t, map[string][]string{app.FieldUsername: {app.MsgUsernameTaken}}, fieldErrors(t, err))
	})

	t.Run("lost the insert race", func(t *testing.T) {
		fx := setupAuth(t)
		fx.users.On("FindByUsername", fx.ctx, "author").Return(nil, entities.ErrUserNotFound)
		fx.password.On("Hash", fx.ctx, "correct-horse").Return("hash", nil)
		fx.users.On("Create", fx.ctx, mock.Anything).Return(nil, entities.ErrUsernameTaken)

		_, err := fx.useCase.SignUp(fx.ctx, "author", "correct-horse", "correct-horse")
		assert.Equal(t, map[string][]string{app.FieldUsername: {app.MsgUsernameTaken}}, fieldErrors(t, err))
	})
}

func TestSignUp_RepositoryFailure(t *testing.T) {
	fx := setupAuth(t)
	dbErr := errors.New("connection refused")
	fx.users.On("FindByUsername", fx.ctx, "author").Return(nil, dbErr)

	_, err := fx.useCase.SignUp(fx.ctx, "author", "correct-horse", "correct-horse")
	require.ErrorIs(t, err, dbErr)
	_, isForm := access.AsFieldErrors(err)
	assert.False(t, isForm)
}

func TestLogin(t *testing.T) {
	user := &entities.User{ID: "user-1", Username: "author", PasswordHash: "hash"}

	t.Run("success", func(t *testing.T) {
		fx := setupAuth(t)
		session := &services.Session{ID: "session-1", UserID: "user-1", Username: "author", Token: "token"}

		fx.users.On("FindByUsername", fx.ctx, "author").Return(user, nil)
		fx.password.On("Verify", fx.ctx, "correct-horse", "hash").Return(true, nil)
		fx.tokens.On("GenerateSessionToken", fx.ctx, "user-1", "author").Return(session, nil)

		got, err := fx.useCase.Login(fx.ctx, "author", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, session, got)
	})

	t.Run("unknown user", func(t *testing.T) {
		fx := setupAuth(t)
		fx.users.On("FindByUsername", fx.ctx, "ghost").Return(nil, entities.ErrUserNotFound)

		_, err := fx.useCase.Login(fx.ctx, "ghost", "correct-horse")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		fx := setupAuth(t)
		fx.users.On("FindByUsername", fx.ctx, "author").Return(user, nil)
		fx.password.On("Verify", fx.ctx, "wrong", "hash").Return(false, nil)

		_, err := fx.useCase.Login(fx.ctx, "author", "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		fx := setupAuth(t)

		_, err := fx.useCase.Login(fx.ctx, "", "")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("token failure", func(t *testing.T) {
		fx := setupAuth(t)
		fx.users.On("FindByUsername", fx.ctx, "author").Return(user, nil)
		fx.password.On("Verify", fx.ctx, "correct-horse", "hash").Return(true, nil)
		fx.tokens.On("GenerateSessionToken", fx.ctx, "user-1", "author").Return(nil, services.ErrGeneratingJWTToken)

		_, err := fx.useCase.Login(fx.ctx, "author", "correct-horse")
		assert.ErrorIs(t, err, services.ErrGeneratingJWTToken)
		assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

func TestLogout(t *testing.T) {
	t.Run("revokes for remaining lifetime", func(t *testing.T) {
		fx := setupAuth(t)
		claims := &services.JWTClaims{SessionID: "session-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}

		fx.tokens.On("ValidateSessionToken", fx.ctx, "token").Return(claims, nil)
		fx.sessions.On("Revoke", fx.ctx, "session-1", mock.MatchedBy(func(ttl time.Duration) bool {
			return ttl > 59*time.Minute && ttl <= time.Hour
		})).Return(nil)

		require.NoError(t, fx.useCase.Logout(fx.ctx, "token"))
	})

	t.Run("no cookie", func(t *testing.T) {
		fx := setupAuth(t)
		require.NoError(t, fx.useCase.Logout(fx.ctx, ""))
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		fx := setupAuth(t)
		fx.tokens.On("ValidateSessionToken", fx.ctx, "bad").Return(nil, services.ErrInvalidJWTToken)

		require.NoError(t, fx.useCase.Logout(fx.ctx, "bad"))
	})

	t.Run("store failure", func(t *testing.T) {
		fx := setupAuth(t)
		claims := &services.JWTClaims{SessionID: "session-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
		storeErr := errors.New("redis down")

		fx.tokens.On("ValidateSessionToken", fx.ctx, "token").Return(claims, nil)
		fx.sessions.On("Revoke", fx.ctx, "session-1", mock.Anything).Return(storeErr)

		assert.ErrorIs(t, fx.useCase.Logout(fx.ctx, "token"), storeErr)
	})
}

func TestResolve(t *testing.T) {
	claims := &services.JWTClaims{SessionID: "session-1", UserID: "user-1", Username: "author"}

	t.Run("active session", func(t *testing.T) {
		fx := setupAuth(t)
		fx.tokens.On("ValidateSessionToken", fx.ctx, "token").Return(claims, nil)
		fx.sessions.On("IsRevoked", fx.ctx, "session-1").Return(false, nil)

		identity, err := fx.useCase.Resolve(fx.ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, access.Identity{UserID: "user-1", Username: "author"}, identity)
	})

	t.Run("revoked session", func(t *testing.T) {
		fx := setupAuth(t)
		fx.tokens.On("ValidateSessionToken", fx.ctx, "token").Return(claims, nil)
		fx.sessions.On("IsRevoked", fx.ctx, "session-1").Return(true, nil)

		identity, err := fx.useCase.Resolve(fx.ctx, "token")
		assert.ErrorIs(t, err, services.ErrSessionRevoked)
		assert.True(t, identity.IsAnonymous())
	})

	t.Run("invalid token", func(t *testing.T) {
		fx := setupAuth(t)
		fx.tokens.On("ValidateSessionToken", fx.ctx, "bad").Return(nil, services.ErrInvalidJWTToken)

		identity, err := fx.useCase.Resolve(fx.ctx, "bad")
		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
		assert.True(t, identity.IsAnonymous())
	})

	t.Run("empty token", func(t *testing.T) {
		fx := setupAuth(t)

		identity, err := fx.useCase.Resolve(fx.ctx, "")
		assert.ErrorIs(t, err, services.ErrEmptySession)
		assert.True(t, identity.IsAnonymous())
	})

	t.Run("store failure", func(t *testing.T) {
		fx := setupAuth(t)
		fx.tokens.On("ValidateSessionToken", fx.ctx, "token").Return(claims, nil)
		fx.sessions.On("IsRevoked", fx.ctx, "session-1").Return(false, errors.New("redis down"))

		identity, err := fx.useCase.Resolve(fx.ctx, "token")
		assert.Error(t, err)
		assert.True(t, identity.IsAnonymous())
	})
}
