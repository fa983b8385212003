package handlers

import (
	"budget-tracker-server/src/middleware"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func mintToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour * 168).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func Login(users []models.User) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Printf("ERROR: Failed to decode login request body: %v", err)
			util.Error(w, http.StatusBadRequest, "invalid request")
			return
		}

		user, ok := models.FindUserByUsername(users, strings.TrimSpace(credentials.Username))
		if !ok {
			log.Printf("ERROR: Failed login attempt for unknown user %q from IP %s",
				credentials.Username, r.RemoteAddr)
			util.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for user %s from IP %s",
				user.Username, r.RemoteAddr)
			util.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		tokenString, err := mintToken(*user)
		if err != nil {
			log.Printf("ERROR: Failed to generate token for user %s: %v", user.Username, err)
			util.Error(w, http.StatusInternalServerError, "error generating token")
			return
		}

		log.Printf("INFO: Successful login - User: %s, ID: %d", user.Username, user.ID)

		util.JSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"token":   tokenString,
			"user":    user.Public(),
		})
	}
}

// VerifyToken reports whether a token is valid and who it belongs to.
// Responds 200 either way; validity is in the body.
func VerifyToken(users []models.User) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.JSON(w, http.StatusOK, map[string]interface{}{"valid": false})
			return
		}

		claims, err := middleware.ParseToken(req.Token)
		if err != nil {
			util.JSON(w, http.StatusOK, map[string]interface{}{"valid": false})
			return
		}

		rawID, ok := claims["user_id"].(float64)
		if !ok {
			util.JSON(w, http.StatusOK, map[string]interface{}{"valid": false})
			return
		}

		user, ok := models.FindUserByID(users, int(rawID))
		if !ok {
			util.JSON(w, http.StatusOK, map[string]interface{}{"valid": false})
			return
		}

		util.JSON(w, http.StatusOK, map[string]interface{}{
			"valid": true,
			"user":  user.Public(),
		})
	}
}

// Logout is an acknowledgement only: tokens are self-contained, so there
// is nothing server-side to revoke.
func Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		util.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
