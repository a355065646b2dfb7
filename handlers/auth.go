package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timelog/config"
	"timelog/database"
	"timelog/middleware"
	"timelog/models"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var user models.User
	if err := database.GetDB().Where("username = ?", req.Username).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":             token,
		"user":              user,
		"must_set_password": user.MustSetPassword,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		respondError(w, http.StatusBadRequest, "current password is incorrect")
		return
	}

	if len(req.NewPassword) < 5 {
		respondError(w, http.StatusBadRequest, "password must be at least 5 characters")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user.PasswordHash = string(hashedPassword)
	user.MustSetPassword = false
	if err := database.GetDB().Save(user).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update password")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

type inviteRequest struct {
	Username string      `json:"username"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

// InviteEmployee creates an account with a one-time first-login token.
// The invited user sets their password by redeeming the token.
func (h *AuthHandler) InviteEmployee(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.FullName == "" {
		respondError(w, http.StatusBadRequest, "username and full name are required")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleEmployee
	}
	if req.Role != models.RoleEmployee && req.Role != models.RoleBackoffice {
		respondError(w, http.StatusBadRequest, "invalid role")
		return
	}

	token, err := models.GenerateFirstLoginToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	// Unusable placeholder password until the token is redeemed.
	placeholder := make([]byte, 16)
	if _, err := rand.Read(placeholder); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate password")
		return
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(placeholder)), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Username:        req.Username,
		FullName:        req.FullName,
		Email:           req.Email,
		PasswordHash:    string(hashedPassword),
		Role:            req.Role,
		IsInvited:       true,
		FirstLoginToken: token,
		MustSetPassword: true,
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		respondError(w, http.StatusConflict, "failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":              user,
		"first_login_token": token,
	})
}

type firstLoginRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// FirstLogin redeems an invitation token, sets the initial password and
// signs the user in.
func (h *AuthHandler) FirstLogin(w http.ResponseWriter, r *http.Request) {
	var req firstLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Token == "" {
		respondError(w, http.StatusBadRequest, "token is required")
		return
	}
	if len(req.Password) < 5 {
		respondError(w, http.StatusBadRequest, "password must be at least 5 characters")
		return
	}

	var user models.User
	err := database.GetDB().Where("first_login_token = ?", req.Token).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(w, http.StatusNotFound, "invalid or used token")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to look up token")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user.PasswordHash = string(hashedPassword)
	user.FirstLoginToken = ""
	user.MustSetPassword = false
	if err := database.GetDB().Save(&user).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := database.GetDB().Order("full_name asc").Find(&users).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}
