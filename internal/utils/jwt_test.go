package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "ship-sync"
	testSignKey = "sign-key"
)

func TestGenerateAndValidateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 583231, "octocat", time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.String())

	parsed, err := ValidateAndParseJWTToken(token.String(), testSignKey, testIssuer)

	require.NoError(t, err)
	assert.Equal(t, int64(583231), parsed.UserID)
	assert.Equal(t, "octocat", parsed.Login)
	assert.Equal(t, "583231", parsed.Subject)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		issuer  string
		userID  int64
		ttl     time.Duration
		signKey string
	}{
		{name: "no issuer", userID: 1, ttl: time.Hour, signKey: testSignKey},
		{name: "no user", issuer: testIssuer, ttl: time.Hour, signKey: testSignKey},
		{name: "no ttl", issuer: testIssuer, userID: 1, signKey: testSignKey},
		{name: "no key", issuer: testIssuer, userID: 1, ttl: time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.userID, "", tt.ttl, tt.signKey)
			assert.ErrorIs(t, err, errInvalidTokenParams)
		})
	}
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	valid, err := GenerateJWTToken(testIssuer, 1, "", time.Hour, testSignKey)
	require.NoError(t, err)
	expired, err := GenerateJWTToken(testIssuer, 1, "", time.Nanosecond, testSignKey)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	tests := []struct {
		name    string
		token   string
		signKey string
		issuer  string
	}{
		{name: "wrong key", token: valid.String(), signKey: "other", issuer: testIssuer},
		{name: "wrong issuer", token: valid.String(), signKey: testSignKey, issuer: "someone-else"},
		{name: "expired", token: expired.String(), signKey: testSignKey, issuer: testIssuer},
		{name: "malformed", token: "not.a.token", signKey: testSignKey, issuer: testIssuer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.signKey, tt.issuer)
			assert.Error(t, err)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer   abc.def ", want: "abc.def"},
		{header: "Token abc", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
