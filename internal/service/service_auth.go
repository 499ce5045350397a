package service

import (
	"context"
	"crypto/subtle"

	"github.com/MKhiriev/go-ship-sync/internal/config"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/utils"
	"github.com/MKhiriev/go-ship-sync/models"
)

// authService verifies session tokens and the shared secret of webhook
// ingestion. It never issues tokens; the account service does.
type authService struct {
	tokenSignKey  string
	tokenIssuer   string
	internalToken []byte

	logger *logger.Logger
}

func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		internalToken: []byte(cfg.InternalToken),
		logger:        logger,
	}
}

// ParseToken validates a bearer token. Every failure is reported as
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	if token.UserID <= 0 {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) VerifyInternalToken(ctx context.Context, token string) error {
	if len(a.internalToken) == 0 || subtle.ConstantTimeCompare([]byte(token), a.internalToken) != 1 {
		logger.FromContext(ctx).Warn().Str("func", "*authService.VerifyInternalToken").Msg("invalid internal token")
		return ErrInvalidInternalToken
	}
	return nil
}
