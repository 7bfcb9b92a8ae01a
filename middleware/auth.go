package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"restaurant-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken   = errors.New("authorization header required")
	ErrMalformedToken = errors.New("authorization header must be: Bearer <token>")
	ErrInvalidToken   = errors.New("invalid or expired token")
)

const sessionKey = "session"

// Claims is the token payload handed out on login
type Claims struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

// Session is the authenticated caller, attached to each request by AuthRequired
type Session struct {
	UserID string
	Name   string
	Phone  string
}

// TokenIssuer signs and verifies HS256 tokens with a shared secret
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed JWT for a given user
func (t *TokenIssuer) Issue(user *models.User) (string, error) {
	now := t.now()
	claims := Claims{
		ID:    user.ID,
		Name:  user.Name,
		Phone: user.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the embedded claims
func (t *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" {
		claims.ID = claims.Subject
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseBearer pulls the token segment out of an Authorization header
func ParseBearer(header string) (string, error) {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return "", ErrMissingToken
	}
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", ErrMalformedToken
	}
	return fields[1], nil
}

// AuthRequired validates the JWT and injects the session into context
func AuthRequired(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			unauthorized(c, err)
			return
		}
		authenticate(c, issuer, tokenStr)
	}
}

// WSAuth is AuthRequired for websocket upgrades, where browsers cannot set
// headers: the token may also come from ?token=
func WSAuth(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			var err error
			if tokenStr, err = ParseBearer(c.GetHeader("Authorization")); err != nil {
				unauthorized(c, err)
				return
			}
		}
		authenticate(c, issuer, tokenStr)
	}
}

func authenticate(c *gin.Context, issuer *TokenIssuer, tokenStr string) {
	claims, err := issuer.Verify(tokenStr)
	if err != nil {
		unauthorized(c, err)
		return
	}
	c.Set(sessionKey, &Session{UserID: claims.ID, Name: claims.Name, Phone: claims.Phone})
	c.Next()
}

func unauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: " + err.Error()})
}

// CurrentSession extracts the caller's session from context
func CurrentSession(c *gin.Context) (*Session, bool) {
	val, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	s, ok := val.(*Session)
	return s, ok
}
