package handlers

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"TRIPPLANNER_BACK-END/internal/config"
	"TRIPPLANNER_BACK-END/internal/dto"
	"TRIPPLANNER_BACK-END/internal/middleware"
	"TRIPPLANNER_BACK-END/internal/models"
	"TRIPPLANNER_BACK-END/internal/storage"
	"TRIPPLANNER_BACK-END/internal/utils"
)

// bcryptCost matches the work factor used for all stored password hashes.
const bcryptCost = 12

// AuthHandler handles registration, login, and profile requests
type AuthHandler struct {
	users storage.UserStore
	jwt   *config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users storage.UserStore, jwtCfg *config.JWTConfig) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwtCfg}
}

// Register handles user registration
// @Summary Register a new account
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	// Each rule gets its own message so the client can show a precise error.
	// Lengths count characters, not bytes, so multibyte usernames measure
	// the same as they do in the client.
	if utf8.RuneCountInString(req.Username) < 5 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Username must be at least 5 characters", "")
		return
	}
	if utf8.RuneCountInString(req.Password) < 8 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Password must be at least 8 characters", "")
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Passwords do not match", "")
		return
	}

	// Proactive check; the unique constraint still backstops races below.
	exists, err := h.users.UsernameExists(r.Context(), req.Username)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Server error", err.Error())
		return
	}
	if exists {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Username already exists", "")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password", err.Error())
		return
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Username already exists", "")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.jwt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Message: "Account created successfully",
		User:    dto.UserResponse{ID: user.ID.String(), Username: user.Username},
		Token:   token,
	})
}

// Login handles user login
// @Summary Authenticate an account
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	// An unknown username and a wrong password return the identical
	// response, so callers cannot enumerate accounts.
	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid username or password", "")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid username or password", "")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.jwt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    dto.UserResponse{ID: user.ID.String(), Username: user.Username},
		Token:   token,
	})
}

// GetProfile returns the current user's account
// @Summary Get the authenticated account
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /profile [get]
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Server error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	})
}
