package http

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/logger"
	"github.com/Kavin001K/fabzclean-backend/internal/repository"
	"github.com/Kavin001K/fabzclean-backend/internal/security"
)

// AuthMiddleware validates the bearer token and injects the actor into the
// request context. Identity always comes from validated claims, never from
// the request body.
func AuthMiddleware(tokenManager security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractBearerToken(r)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}

			claims, err := tokenManager.ValidateToken(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
				return
			}

			actor := domain.Actor{
				UserID:      claims.UserID,
				Name:        claims.Name,
				Role:        domain.ParseRole(claims.Role),
				FranchiseID: claims.FranchiseID,
			}
			next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
		})
	}
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization token is not provided")
	}
	token := authHeader
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return token, nil
}

// bufferingWriter captures the response so the idempotency middleware can
// store it for replay.
type bufferingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *bufferingWriter) WriteHeader(status int) {
	b.status = status
	b.ResponseWriter.WriteHeader(status)
}

func (b *bufferingWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	b.body.Write(p)
	return b.ResponseWriter.Write(p)
}

// IdempotencyMiddleware replays the stored response for a previously seen
// Idempotency-Key, so client retries of committed mutations never
// double-apply. Requests without the header pass straight through; the
// at-most-once commit of the ledger itself does not depend on this.
func IdempotencyMiddleware(repo repository.IdempotencyRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			status, body, err := repo.Get(r.Context(), key)
			if err == nil {
				logger.Info("Idempotency hit, replaying stored response", "key", key)
				w.Header().Set("X-Idempotency-Hit", "true")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				w.Write(body)
				return
			}
			if !errors.Is(err, domain.ErrNotFound) {
				writeError(w, err)
				return
			}

			bw := &bufferingWriter{ResponseWriter: w}
			next.ServeHTTP(bw, r)

			// Only successful commits are worth replaying; a failed attempt
			// should stay retryable under the same key.
			if bw.status >= 200 && bw.status < 300 {
				if err := repo.Save(r.Context(), key, bw.status, bw.body.Bytes()); err != nil {
					logger.Error("Failed to save idempotency key", "error", err, "key", key)
				}
			}
		})
	}
}
