package api

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Authentication errors
var (
	ErrAuthRequired      = errors.New("authentication required")
	ErrAuthTokenMismatch = errors.New("auth token mismatch")
)

// authorizationKey is the HTTP header and gRPC metadata key carrying the token.
const authorizationKey = "authorization"

// Authenticator checks bearer tokens. An empty token disables
// authentication.
type Authenticator struct {
	token string
}

// NewAuthenticator creates an Authenticator for token.
func NewAuthenticator(token string) *Authenticator {
	return &Authenticator{token: token}
}

// IsEnabled returns true if authentication is enabled.
func (a *Authenticator) IsEnabled() bool {
	return a != nil && a.token != ""
}

// ValidateToken checks the provided token in constant time.
func (a *Authenticator) ValidateToken(provided string) error {
	if !a.IsEnabled() {
		return nil
	}
	if provided == "" {
		return ErrAuthRequired
	}
	if subtle.ConstantTimeCompare([]byte(a.token), []byte(provided)) != 1 {
		return ErrAuthTokenMismatch
	}
	return nil
}

// bearer strips an optional "Bearer " prefix.
func bearer(value string) string {
	const prefix = "bearer "
	if len(value) >= len(prefix) && strings.EqualFold(value[:len(prefix)], prefix) {
		return strings.TrimSpace(value[len(prefix):])
	}
	return strings.TrimSpace(value)
}

// Middleware rejects HTTP requests without a valid token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := a.ValidateToken(bearer(r.Header.Get(authorizationKey))); err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UnaryInterceptor rejects gRPC calls without a valid token.
func (a *Authenticator) UnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(authorizationKey); len(values) > 0 {
			token = bearer(values[0])
		}
	}
	if err := a.ValidateToken(token); err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}
	return handler(ctx, req)
}

// GenerateToken generates a cryptographically secure random token.
func GenerateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
