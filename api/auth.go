package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rynvlabs/cms/internal/models"
)

type AuthHandler struct {
	db            *gorm.DB
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(db *gorm.DB, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	Admin       adminInfo `json:"admin"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	var admin models.Admin
	err := h.db.WithContext(r.Context()).Where("email = ?", req.Email).First(&admin).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("admin lookup failed", slog.Any("err", err))
		}
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   admin.ID,
		"email": admin.Email,
		"exp":   time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, loginResponse{
		AccessToken: tokenStr,
		Admin:       adminInfo{ID: admin.ID, Name: admin.Name, Email: admin.Email},
	}, http.StatusOK)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := r.Context().Value(CtxAdminID).(uint)
	if !ok || id == 0 {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	var admin models.Admin
	if err := h.db.WithContext(r.Context()).First(&admin, id).Error; err != nil {
		http.Error(w, "Admin not found", http.StatusUnauthorized)
		return
	}

	writeJSON(w, map[string]any{
		"id":        admin.ID,
		"name":      admin.Name,
		"email":     admin.Email,
		"createdAt": admin.CreatedAt,
	}, http.StatusOK)
}
