package middleware

import (
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ParseToken validates a signed token string and returns its claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}

// ParseTokenFromRequest extracts and validates the bearer token, returning claims if valid
func ParseTokenFromRequest(r *http.Request) (jwt.MapClaims, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}

	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	return ParseToken(tokenString)
}

// JWTAuthMiddleware rejects requests without a valid token whose user id
// is present in the roster, and attaches the caller's identity to the
// request context. Fails closed: handlers behind it never run without a
// resolved user.
func JWTAuthMiddleware(users []models.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := ParseTokenFromRequest(r)
			if err != nil {
				util.Error(w, http.StatusUnauthorized, err.Error())
				return
			}

			rawID, ok := claims["user_id"].(float64)
			if !ok {
				util.Error(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			// A well-formed token for an unknown user is as good as malformed.
			user, ok := models.FindUserByID(users, int(rawID))
			if !ok {
				util.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), "user_id", user.ID)
			ctx = context.WithValue(ctx, "username", user.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
