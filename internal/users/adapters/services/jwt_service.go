package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"newsnotes/internal/users/domain/services"
	svc "newsnotes/internal/users/ports/services"
	"newsnotes/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateSessionToken = "GenerateSessionToken"
	methodValidateSessionToken = "ValidateSessionToken"
	msgGeneratingSessionToken  = "generating session token"
	msgValidatingToken         = "validating token"
	msgTokenGenerated          = "token generated successfully"
	msgTokenValidated          = "token validated successfully"
	msgInvalidToken            = "invalid token format"
	msgTokenExpired            = "token has expired"
	msgEmptySecret             = "empty secret key provided"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// ErrInvalidAlgorithm представляет ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims используется для адаптации между доменной моделью и библиотекой JWT.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	config services.JWTConfig
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, sessionTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		config: services.JWTConfig{
			SecretKey:  []byte(secretKey),
			SessionTTL: sessionTTL,
		},
	}
}

func domainToJWTClaims(claims services.JWTClaims) Claims {
	return Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.SessionID,
			Subject:   claims.UserID,
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		},
	}
}

func jwtToDomainClaims(claims Claims) services.JWTClaims {
	var expiresAt, issuedAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return services.JWTClaims{
		SessionID: claims.ID,
		UserID:    claims.UserID,
		Username:  claims.Username,
		ExpiresAt: expiresAt,
		IssuedAt:  issuedAt,
	}
}

// GenerateSessionToken выпускает подписанный токен новой сессии.
func (s *ServiceJWT) GenerateSessionToken(ctx context.Context, userID, username string) (*services.Session, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateSessionToken),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgGeneratingSessionToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return nil, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrGeneratingJWTToken)
	}

	now := time.Now()
	domainClaims := services.JWTClaims{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Username:  username,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.config.SessionTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(domainClaims))

	tokenString, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", domainClaims.ExpiresAt))
	return &services.Session{
		ID:        domainClaims.SessionID,
		UserID:    userID,
		Username:  username,
		Token:     tokenString,
		ExpiresAt: domainClaims.ExpiresAt,
	}, nil
}

// ValidateSessionToken проверяет подпись и срок действия токена.
func (s *ServiceJWT) ValidateSessionToken(ctx context.Context, tokenString string) (*services.JWTClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateSessionToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.config.SecretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredJWTToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	if claims.UserID == "" || claims.ID == "" {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w: missing user_id or jti", errCtxValidatingToken, services.ErrInvalidJWTToken)
	}

	domainClaims := jwtToDomainClaims(*claims)
	log.Debug(ctx, msgTokenValidated, zap.String("userID", domainClaims.UserID))
	return &domainClaims, nil
}
