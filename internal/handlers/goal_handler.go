package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalRequest represents the payload for creating a goal.
type GoalRequest struct {
	Name          string          `json:"name" binding:"required,max=200"`
	TargetAmount  *float64        `json:"target_amount"`
	CurrentAmount *float64        `json:"current_amount"`
	TargetDate    *models.Date    `json:"target_date"`
	Type          models.GoalType `json:"type" binding:"omitempty,goal_type"`
}

// GoalUpdateRequest represents the payload for updating a goal. Omitted
// fields are left unchanged.
type GoalUpdateRequest struct {
	Name          *string            `json:"name" binding:"omitempty,max=200"`
	TargetAmount  *float64           `json:"target_amount"`
	CurrentAmount *float64           `json:"current_amount"`
	TargetDate    *models.Date       `json:"target_date"`
	Status        *models.GoalStatus `json:"status" binding:"omitempty,goal_status"`
	Type          *models.GoalType   `json:"type" binding:"omitempty,goal_type"`
}

// Create creates a savings goal for the authenticated user.
// @Summary     Create goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GoalRequest true "Goal data"
// @Success     201 {object} models.Goal "Created goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.Create(userID, req.Name, req.TargetAmount, req.CurrentAmount, req.TargetDate, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// List returns the authenticated user's goals.
// @Summary     List goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Goal] "Paginated goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.goalService.List(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update updates a goal owned by the authenticated user.
// @Summary     Update goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body GoalUpdateRequest true "Fields to update"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.Update(userID, id, services.GoalUpdate{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    req.TargetDate,
		Status:        req.Status,
		Type:          req.Type,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// Delete deletes a goal owned by the authenticated user.
// @Summary     Delete goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

// Achievements summarizes the authenticated user's goal progress.
// @Summary     Goal achievements
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.GoalAchievements "Goal progress summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /goals/achievements [get]
func (h *GoalHandler) Achievements(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	achievements, err := h.goalService.Achievements(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, achievements)
}
