package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errInvalidTokenParams = errors.New("invalid params for generating JWT token")
	errEmptySubject       = errors.New("token has an empty subject")
	errInvalidHeader      = errors.New("invalid authorization header")
)

// GenerateJWTToken signs an HS256 session token for the given GitHub user.
//
// Tokens are normally minted by the account service that owns the OAuth
// flow; the server only verifies them. This function exists for tooling
// such as the sync monitor and for tests.
func GenerateJWTToken(issuer string, userID int64, login string, ttl time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || ttl <= 0 || signKey == "" || userID <= 0 {
		return models.Token{}, errInvalidTokenParams
	}

	now := time.Now()
	claims := &models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Login: login,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error signing JWT token: %w", err)
	}

	return models.Token{Token: token, RegisteredClaims: claims.RegisteredClaims, Login: login, SignedString: signed, UserID: userID}, nil
}

// ValidateAndParseJWTToken verifies signature, issuer and expiry of a session
// token and returns its claims with UserID taken from the subject.
func ValidateAndParseJWTToken(tokenString, signKey, issuer string) (models.Token, error) {
	claims := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error validating token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errEmptySubject
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error converting token subject to user id: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims.RegisteredClaims,
		Login:            claims.Login,
		SignedString:     tokenString,
		UserID:           userID,
	}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", errInvalidHeader
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errInvalidHeader
	}
	return token, nil
}
