// Package app содержит сценарии регистрации, входа и выхода пользователей.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"newsnotes/internal/access"
	"newsnotes/internal/users/domain/entities"
	"newsnotes/internal/users/domain/services"
	"newsnotes/internal/users/ports/api"
	"newsnotes/internal/users/ports/repositories"
	svc "newsnotes/internal/users/ports/services"
	"newsnotes/pkg/logger"
)

const (
	methodSignUp  = "SignUp"
	methodLogin   = "Login"
	methodLogout  = "Logout"
	methodResolve = "Resolve"

	msgStartSignUp         = "starting user sign up"
	msgSignUpInvalid       = "sign up form is invalid"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent username"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgLogoutInvalidToken  = "logout with invalid session token"
	msgUserLoggedOut       = "user logged out successfully"
	msgSessionRevoked      = "attempt to use revoked session"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrFindingUser       = "error finding user by username"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateSession   = "failed to generate session"
	msgErrRevokeSession     = "failed to revoke session"
	msgErrCheckSession      = "failed to check session revocation"

	errCtxValidatingForm     = "validating sign up form"
	errCtxCheckingUser       = "checking existing user"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxGeneratingSession  = "generating session"
	errCtxRevokingSession    = "revoking session"
	errCtxValidatingSession  = "validating session"
	errCtxCheckingSession    = "checking session"
)

// Сообщения ошибок формы регистрации.
const (
	FieldUsername  = "username"
	FieldPassword1 = "password1"
	FieldPassword2 = "password2"

	MsgRequired         = "Обязательное поле."
	MsgUsernameTooLong  = "Убедитесь, что это значение содержит не более 150 символов."
	MsgUsernameInvalid  = "Введите правильное имя пользователя. Оно может содержать только буквы, цифры и знаки @/./+/-/_."
	MsgUsernameTaken    = "Пользователь с таким именем уже существует."
	MsgPasswordMismatch = "Введенные пароли не совпадают."
	MsgPasswordTooShort = "Введенный пароль слишком короткий. Он должен содержать как минимум 8 символов."
	MsgPasswordTooLong  = "Введенный пароль слишком длинный."
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	sessions    svc.SessionStore
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	sessions svc.SessionStore,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		sessions:    sessions,
	}
}

// SignUp регистрирует нового пользователя. Ошибки формы возвращаются как access.FieldErrors.
func (a *AuthUseCaseImpl) SignUp(ctx context.Context, username, password1, password2 string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	log := logger.Log(ctx).With(zap.String("method", methodSignUp), zap.String("username", username))
	log.Debug(ctx, msgStartSignUp)

	if errs := validateSignUp(username, password1, password2); len(errs) > 0 {
		log.Debug(ctx, msgSignUpInvalid, zap.Error(errs))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, errs)
	}

	existing, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, usernameTaken())
	}

	hash, err := a.passwordSvc.Hash(ctx, password1)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := a.userRepo.Create(ctx, &entities.User{Username: username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, entities.ErrUsernameTaken) {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, usernameTaken())
		}
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", created.ID))
	return created, nil
}

// Login проверяет учетные данные и открывает новую сессию.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (*services.Session, error) {
	username = strings.TrimSpace(username)
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	session, err := a.tokenSvc.GenerateSessionToken(ctx, user.ID, user.Username)
	if err != nil {
		log.Error(ctx, msgErrGenerateSession, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingSession, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return session, nil
}

// Logout отзывает сессию до истечения ее срока. Невалидный токен игнорируется.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))

	if token == "" {
		return nil
	}

	claims, err := a.tokenSvc.ValidateSessionToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgLogoutInvalidToken, zap.Error(err))
		return nil
	}

	if err := a.sessions.Revoke(ctx, claims.SessionID, time.Until(claims.ExpiresAt)); err != nil {
		log.Error(ctx, msgErrRevokeSession, zap.Error(err), zap.String("userID", claims.UserID))
		return fmt.Errorf("%s: %w", errCtxRevokingSession, err)
	}

	log.Info(ctx, msgUserLoggedOut, zap.String("userID", claims.UserID))
	return nil
}

// Resolve определяет пользователя по токену сессии.
// При любой ошибке возвращается анонимная Identity.
func (a *AuthUseCaseImpl) Resolve(ctx context.Context, token string) (access.Identity, error) {
	if token == "" {
		return access.Anonymous(), services.ErrEmptySession
	}

	log := logger.Log(ctx).With(zap.String("method", methodResolve))

	claims, err := a.tokenSvc.ValidateSessionToken(ctx, token)
	if err != nil {
		return access.Anonymous(), fmt.Errorf("%s: %w", errCtxValidatingSession, err)
	}

	revoked, err := a.sessions.IsRevoked(ctx, claims.SessionID)
	if err != nil {
		log.Error(ctx, msgErrCheckSession, zap.Error(err))
		return access.Anonymous(), fmt.Errorf("%s: %w", errCtxCheckingSession, err)
	}
	if revoked {
		log.Debug(ctx, msgSessionRevoked, zap.String("userID", claims.UserID))
		return access.Anonymous(), fmt.Errorf("%s: %w", errCtxCheckingSession, services.ErrSessionRevoked)
	}

	return access.Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

func validateSignUp(username, password1, password2 string) access.FieldErrors {
	var errs access.FieldErrors

	switch {
	case username == "":
		errs = errs.Add(access.NewValidationError(FieldUsername, MsgRequired))
	case utf8.RuneCountInString(username) > entities.MaxUsernameLength:
		errs = errs.Add(access.NewValidationError(FieldUsername, MsgUsernameTooLong))
	case !usernamePattern.MatchString(username):
		errs = errs.Add(access.NewValidationError(FieldUsername, MsgUsernameInvalid))
	}

	if password1 == "" {
		errs = errs.Add(access.NewValidationError(FieldPassword1, MsgRequired))
	}

	switch {
	case password2 == "":
		errs = errs.Add(access.NewValidationError(FieldPassword2, MsgRequired))
	case password1 != "" && password1 != password2:
		errs = errs.Add(access.NewValidationError(FieldPassword2, MsgPasswordMismatch))
	case utf8.RuneCountInString(password2) < services.MinPasswordLength:
		errs = errs.Add(access.NewValidationError(FieldPassword2, MsgPasswordTooShort))
	case len(password2) > services.MaxPasswordBytes:
		errs = errs.Add(access.NewValidationError(FieldPassword2, MsgPasswordTooLong))
	}

	return errs
}

func usernameTaken() access.FieldErrors {
	return access.FieldErrors{access.NewValidationError(FieldUsername, MsgUsernameTaken)}
}
