package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoCompany = errors.New("token carries no company")

type ctxKey string

const ctxCompanyID ctxKey = "companyID"

type claims struct {
	CompanyID string `json:"company_id"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies the HS256 session tokens the dashboard
// and the TUI send as bearer tokens.
type Authenticator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func New(secret, issuer string) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer, ttl: 24 * time.Hour}
}

// IssueToken signs a session token bound to companyID.
func (a *Authenticator) IssueToken(companyID string) (string, error) {
	now := time.Now()

	c := claims{
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses a token and returns the company it is bound to.
func (a *Authenticator) Verify(token string) (string, error) {
	var c claims

	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(a.issuer))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	if c.CompanyID == "" {
		return "", ErrNoCompany
	}

	return c.CompanyID, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// token's company in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		companyID, err := a.Verify(strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			slog.Debug("rejected token", "error", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)

			return
		}

		next.ServeHTTP(w, r.WithContext(WithCompany(r.Context(), companyID)))
	})
}

func WithCompany(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, ctxCompanyID, companyID)
}

// CompanyFromContext returns the company set by Middleware, or "" outside
// an authenticated request.
func CompanyFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxCompanyID).(string)
	return id
}
