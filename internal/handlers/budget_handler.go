package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// BudgetHandler handles budget CRUD and evaluation requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the payload for creating a budget.
type BudgetRequest struct {
	Category    string              `json:"category" binding:"required,max=100"`
	LimitAmount *float64            `json:"limit_amount"`
	Period      models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
	Month       int                 `json:"month" binding:"omitempty,min=1,max=12"`
	Year        int                 `json:"year" binding:"omitempty,min=1970"`
}

// BudgetUpdateRequest represents the payload for updating a budget. Omitted
// fields are left unchanged.
type BudgetUpdateRequest struct {
	Category    *string              `json:"category" binding:"omitempty,max=100"`
	LimitAmount *float64             `json:"limit_amount"`
	Period      *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
	Month       *int                 `json:"month" binding:"omitempty,min=1,max=12"`
	Year        *int                 `json:"year" binding:"omitempty,min=1970"`
}

// Create creates a budget for the authenticated user.
// @Summary     Create budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body BudgetRequest true "Budget data"
// @Success     201 {object} models.Budget "Created budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.Create(userID, req.Category, req.LimitAmount, req.Period, req.Month, req.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, budget)
}

// List returns the authenticated user's budgets.
// @Summary     List budgets
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets [get]
func (h *BudgetHandler) List(c *gin.Context) {
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

	resp, err := h.budgetService.List(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update updates a budget owned by the authenticated user.
// @Summary     Update budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Param       request body BudgetUpdateRequest true "Fields to update"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
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

	var req BudgetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.Update(userID, id, services.BudgetUpdate{
		Category:    req.Category,
		LimitAmount: req.LimitAmount,
		Period:      req.Period,
		Month:       req.Month,
		Year:        req.Year,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

// Delete deletes a budget owned by the authenticated user.
// @Summary     Delete budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) Delete(c *gin.Context) {
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

	if err := h.budgetService.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// Status evaluates the authenticated user's monthly budgets against the
// current month's spending.
// @Summary     Budget status
// @Description Evaluate monthly budgets against current month spending
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]services.BudgetStatus "Status keyed by category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /budgets/status [get]
func (h *BudgetHandler) Status(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.budgetService.Status(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
