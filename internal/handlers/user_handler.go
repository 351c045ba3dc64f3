package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/services"
)

// UserHandler handles user and group membership requests.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// AddMemberRequest represents the payload for adding a member to a group.
type AddMemberRequest struct {
	Name          string             `json:"name" binding:"required,max=100"`
	Email         string             `json:"email" binding:"required,email,max=255"`
	Password      string             `json:"password" binding:"omitempty,min=8,max=128"`
	MonthlyIncome *float64           `json:"monthly_income"`
	AccountType   models.AccountType `json:"account_type" binding:"omitempty,account_type"`
}

// UpdateProfileRequest represents the payload for updating a user profile.
type UpdateProfileRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=100"`
	MonthlyIncome *float64 `json:"monthly_income"`
}

// List returns the users visible to the authenticated user: themselves and,
// for group owners, their members.
// @Summary     List visible users
// @Description List the authenticated user and, for group accounts, its members
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} UserResponse "Visible users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /users [get]
func (h *UserHandler) List(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	users, err := h.userService.VisibleUsers(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// AddMember adds a member under a group account.
// @Summary     Add a group member
// @Description Create a member user under the authenticated group account
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddMemberRequest true "Member data"
// @Success     201 {object} UserResponse "Member created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Not a group account"
// @Failure     409 {object} ErrorResponse "Email already exists"
// @Router      /users [post]
func (h *UserHandler) AddMember(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	member, err := h.userService.AddMember(user, req.Name, req.Email, req.Password, req.MonthlyIncome, req.AccountType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userResponse(member))
}

// UpdateProfile updates the authenticated user's profile.
// @Summary     Update profile
// @Description Update the authenticated user's name or monthly income
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile updates"
// @Success     200 {object} UserResponse "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /users/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.UpdateProfile(userID, req.Name, req.MonthlyIncome)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}
