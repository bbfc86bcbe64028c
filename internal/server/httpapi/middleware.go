// Package httpapi implements the vaultview REST API using chi.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/dmitrijs2005/vaultview/internal/server/auth"
)

type contextKey int

const (
	ctxKeyUserID contextKey = iota
	ctxKeyPremium
)

// AuthMiddleware validates the bearer access token and stores the subject's
// user id and premium entitlement in the request context. Expired tokens
// produce a 401 whose message is exactly ErrTokenExpired, which is what
// triggers the client's refresh-and-replay.
func AuthMiddleware(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}

			claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secretKey)
			if err != nil {
				if errors.Is(err, common.ErrTokenExpired) {
					writeJSON(w, http.StatusUnauthorized, errorBody(common.ErrTokenExpired.Error()))
					return
				}
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, ctxKeyPremium, claims.Premium)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyUserID).(string)
	return id
}
