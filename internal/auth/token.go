package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/music-stream-service/internal/config"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, expiry, issuer/audience mismatch or unusable claims. Callers
// must not surface the underlying cause to clients.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the normalized, request-scoped view of a verified token.
type Identity struct {
	UserID    string
	Email     string
	Roles     []string
	RawClaims map[string]any
}

// Verifier validates bearer tokens against a shared symmetric secret.
// Verification is pure computation; the configuration is immutable after
// construction, so a single Verifier is safe for concurrent use.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewVerifier builds a verifier from auth configuration. Issuer and
// audience constraints apply only when configured.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Verify checks the token signature and registered claims, then normalizes
// the claim set into an Identity.
func (v *Verifier) Verify(tokenStr string) (*Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	identity := normalizeClaims(claims)
	if identity.UserID == "" {
		return nil, fmt.Errorf("%w: no subject claim", ErrInvalidToken)
	}
	return identity, nil
}

// normalizeClaims maps the loose claim shapes issued across services into
// a single Identity. The subject is resolved from userId, sub, uid in that
// priority order; roles from roles, then role. The full claim set is kept
// in RawClaims for consumers that need fidelity.
func normalizeClaims(claims jwt.MapClaims) *Identity {
	identity := &Identity{
		Roles:     []string{},
		RawClaims: map[string]any(claims),
	}

	for _, key := range []string{"userId", "sub", "uid"} {
		if val, ok := claims[key]; ok {
			if id := claimToString(val); id != "" {
				identity.UserID = id
				break
			}
		}
	}

	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}

	if roles, ok := claims["roles"]; ok {
		identity.Roles = claimToStrings(roles)
	} else if role, ok := claims["role"]; ok {
		identity.Roles = claimToStrings(role)
	}

	return identity
}

func claimToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; numeric subjects become their
		// decimal form.
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

func claimToStrings(val any) []string {
	switch v := val.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := claimToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	default:
		return []string{}
	}
}

// TokenIssuer signs access tokens for the user service.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenIssuer builds an issuer from auth configuration.
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	ttlMinutes := cfg.AccessTokenTTLMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenIssuer{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      time.Duration(ttlMinutes) * time.Minute,
	}
}

// Issue builds and signs an HS256 token for the given user.
func (ti *TokenIssuer) Issue(userID, email string, roles []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ti.ttl)

	claims := jwt.MapClaims{
		"userId": userID,
		"sub":    userID,
		"email":  email,
		"roles":  roles,
		"iat":    now.Unix(),
		"exp":    expiresAt.Unix(),
	}
	if ti.issuer != "" {
		claims["iss"] = ti.issuer
	}
	if ti.audience != "" {
		claims["aud"] = ti.audience
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}
