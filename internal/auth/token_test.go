package auth_test

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/music-stream-service/internal/auth"
	"github.com/spec-kit/music-stream-service/internal/config"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifier_Verify(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.AuthConfig
		token      func(t *testing.T) string
		wantUserID string
		wantErr    bool
	}{
		{
			name: "valid token with userId claim",
			cfg:  config.AuthConfig{JWTSecret: testSecret},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"userId": "42"})
			},
			wantUserID: "42",
		},
		{
			name: "userId takes priority over sub and uid",
			cfg:  config.AuthConfig{JWTSecret: testSecret},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
					"userId": "primary", "sub": "secondary", "uid": "tertiary",
				})
			},
			wantUserID: "primary",
		},
		{
			name: "sub takes priority over uid",
			cfg:  config.AuthConfig{JWTSecret: testSecret},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
					"sub": "secondary", "uid": "tertiary",
				})
			},
			wantUserID: "secondary",
		},
		{
			name: "uid alone is accepted",
			cfg:  config.AuthConfig{JWTSecret: testSecret},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"uid": "tertiary"})
			},
			wantUserID: "tertiary",
		},
		{
			name: "numeric subject is coerced to a decimal string",
			cfg:  config.AuthConfig{JWTSecret: testSecret},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"userId": 42})
			},
			wantUserID: "42",
		},
		{
			name: "wrong secret is rejected",
			cfg:  config.AuthConfig{JWTSecret: testSecret},
			token: func(t *testing.T) string {
				return signToken(t, "some-other-secret", jwt.SigningMethodHS256, jwt.MapClaims{"userId": "42"})
			},
			wantErr: true,
		},
		{
			name: "non-HS256 algorithm is rejected",
			cfg:  config.AuthConfig{JWTSecret: testSecret},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS384, jwt.MapClaims{"userId": "42"})
			},
			wantErr: true,
		},
		{
			name: "expired token is rejected",
			cfg:  config.AuthConfig{JWTSecret: testSecret},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
					"userId": "42",
					"exp":    time.Now().Add(-time.Minute).Unix(),
				})
			},
			wantErr: true,
		},
		{
			name: "issuer constraint enforced when configured",
			cfg:  config.AuthConfig{JWTSecret: testSecret, Issuer: "music-stream"},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
					"userId": "42", "iss": "someone-else",
				})
			},
			wantErr: true,
		},
		{
			name: "issuer constraint satisfied",
			cfg:  config.AuthConfig{JWTSecret: testSecret, Issuer: "music-stream"},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
					"userId": "42", "iss": "music-stream",
				})
			},
			wantUserID: "42",
		},
		{
			name: "unconfigured issuer is not checked",
			cfg:  config.AuthConfig{JWTSecret: testSecret},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
					"userId": "42", "iss": "anything",
				})
			},
			wantUserID: "42",
		},
		{
			name: "audience constraint enforced when configured",
			cfg:  config.AuthConfig{JWTSecret: testSecret, Audience: "streaming-api"},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
					"userId": "42", "aud": "other-api",
				})
			},
			wantErr: true,
		},
		{
			name: "token without any subject claim is rejected",
			cfg:  config.AuthConfig{JWTSecret: testSecret},
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@b.c"})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := auth.NewVerifier(tt.cfg)
			identity, err := verifier.Verify(tt.token(t))
			if tt.wantErr {
				require.ErrorIs(t, err, auth.ErrInvalidToken)
				assert.Nil(t, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUserID, identity.UserID)
		})
	}
}

func TestVerifier_ClaimNormalization(t *testing.T) {
	verifier := auth.NewVerifier(config.AuthConfig{JWTSecret: testSecret})

	t.Run("roles list", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
			"userId": "42",
			"email":  "listener@example.com",
			"roles":  []string{"listener", "curator"},
		})
		identity, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "listener@example.com", identity.Email)
		assert.Equal(t, []string{"listener", "curator"}, identity.Roles)
	})

	t.Run("single role string falls back", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
			"userId": "42",
			"role":   "admin",
		})
		identity, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, []string{"admin"}, identity.Roles)
	})

	t.Run("missing roles default to empty set", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"userId": "42"})
		identity, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.NotNil(t, identity.Roles)
		assert.Empty(t, identity.Roles)
	})

	t.Run("raw claims retained", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
			"userId": "42",
			"plan":   "premium",
		})
		identity, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "premium", identity.RawClaims["plan"])
	})
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	cfg := config.AuthConfig{
		JWTSecret:             testSecret,
		Issuer:                "music-stream",
		Audience:              "streaming-api",
		AccessTokenTTLMinutes: 30,
	}

	issuer := auth.NewTokenIssuer(cfg)
	token, exp, err := issuer.Issue("user-1", "listener@example.com", []string{"listener"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	identity, err := auth.NewVerifier(cfg).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "listener@example.com", identity.Email)
	assert.Equal(t, []string{"listener"}, identity.Roles)
}
