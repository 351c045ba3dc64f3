package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/services"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	authService services.AuthServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService services.AuthServicer) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents the signup request payload.
type SignupRequest struct {
	Name          string             `json:"name" binding:"required,max=100"`
	Email         string             `json:"email" binding:"required,email,max=255"`
	Password      string             `json:"password" binding:"required,min=8,max=128"`
	MonthlyIncome *float64           `json:"monthly_income"`
	AccountType   models.AccountType `json:"account_type" binding:"omitempty,account_type"`
}

// SigninRequest represents the signin request payload.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the user data in auth responses.
type UserResponse struct {
	ID            uint               `json:"id"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	MonthlyIncome *float64           `json:"monthly_income"`
	AccountType   models.AccountType `json:"account_type"`
}

// AuthResponse represents the authentication response with token.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func userResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		MonthlyIncome: user.MonthlyIncome,
		AccountType:   user.AccountType,
	}
}

// Signup handles user registration.
// @Summary     Register a new user
// @Description Register a new user and issue a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SignupRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and token issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	token, user, err := h.authService.Register(req.Name, req.Email, req.Password, req.MonthlyIncome, req.AccountType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

// Signin handles user login.
// @Summary     Sign in
// @Description Authenticate a user and issue a fresh session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body SigninRequest true "User credentials"
// @Success     200 {object} AuthResponse "User authenticated and token issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  userResponse(user),
	})
}

// Me returns the profile of the authenticated user.
// @Summary     Get current user
// @Description Get the authenticated user's profile
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}
