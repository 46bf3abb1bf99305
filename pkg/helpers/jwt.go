package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager signs and verifies session tokens with a single server secret.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration

	now func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

// WithClock returns a copy of m that stamps tokens using now. Verification
// always uses the wall clock. Tests use it to mint already-expired tokens.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	cp := *m
	cp.now = now
	return &cp
}

// Claims is the session token payload.
type Claims struct {
	AccountID string `json:"aid"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// SessionSubject is what gets embedded into a minted token.
type SessionSubject struct {
	AccountID string
	Email     string
	Name      string
	Role      string
}

// Generate mints a token for sub and returns it with its expiry and id.
func (m *JWTManager) Generate(sub SessionSubject) (token string, exp time.Time, jti string, err error) {
	now := m.now()
	exp = now.Add(m.TTL)
	jti = uuid.NewString()
	claims := &Claims{
		AccountID: sub.AccountID,
		Email:     sub.Email,
		Name:      sub.Name,
		Role:      sub.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   sub.AccountID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(m.Secret)
	return token, exp, jti, err
}

// Parse verifies signature, algorithm and expiry and returns the claims.
func (m *JWTManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.AccountID == "" || claims.ID == "" {
		return nil, errors.New("token is missing required claims")
	}
	return claims, nil
}
