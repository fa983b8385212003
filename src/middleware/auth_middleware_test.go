package middleware

import (
	"budget-tracker-server/src/models"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testRoster = []models.User{
	{ID: 1, Username: "ana", PasswordHash: "x", DisplayName: "Ana"},
}

func signedToken(t *testing.T, userID int, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": "ana",
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var gotUserID int
	var gotUsername string
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotUserID = r.Context().Value("user_id").(int)
		gotUsername = r.Context().Value("username").(string)
	})
	handler := JWTAuthMiddleware(testRoster)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/segments", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, 1, os.Getenv("JWT_SECRET")))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if !called {
		t.Fatal("next handler not called")
	}
	if gotUserID != 1 || gotUsername != "ana" {
		t.Errorf("context = (%d, %q), want (1, ana)", gotUserID, gotUsername)
	}
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not run")
	})
	handler := JWTAuthMiddleware(testRoster)(next)

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "garbage token", token: "Bearer blah"},
		{name: "wrong secret", token: "Bearer " + signedToken(t, 1, "other-secret")},
		{name: "unknown user id", token: "Bearer " + signedToken(t, 42, "test-secret")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/segments", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", tt.token)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}
