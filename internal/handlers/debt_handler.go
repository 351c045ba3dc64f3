package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/services"
)

// DebtHandler handles debt ledger requests.
type DebtHandler struct {
	debtService services.DebtServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// DebtRequest represents the payload for recording a debt. The authenticated
// user is the debtor; to_user_id is the creditor.
type DebtRequest struct {
	ToUserID         uint         `json:"to_user_id" binding:"required"`
	Amount           *float64     `json:"amount"`
	Description      string       `json:"description" binding:"max=500"`
	Date             *models.Date `json:"date"`
	RelatedExpenseID *uint        `json:"related_expense_id"`
}

// Create records a debt from the authenticated user to another user.
// @Summary     Create debt
// @Tags        debts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body DebtRequest true "Debt data"
// @Success     201 {object} models.Debt "Created debt"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /debts [post]
func (h *DebtHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.Create(userID, req.ToUserID, req.Amount, req.Description, req.Date, req.RelatedExpenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, debt)
}

// ListPending returns pending debts the authenticated user is a party to.
// @Summary     List pending debts
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Debt "Pending debts"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /debts [get]
func (h *DebtHandler) ListPending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debts, err := h.debtService.ListPending(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, debts)
}

// Settle marks a debt as settled. Either party may settle.
// @Summary     Settle debt
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Debt ID"
// @Success     200 {object} models.Debt "Settled debt"
// @Failure     403 {object} ErrorResponse "Not a party to the debt"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id}/settle [post]
func (h *DebtHandler) Settle(c *gin.Context) {
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

	debt, err := h.debtService.Settle(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, debt)
}

// Delete removes a debt. Either party may delete.
// @Summary     Delete debt
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Debt ID"
// @Success     200 {object} MessageResponse "Debt deleted"
// @Failure     403 {object} ErrorResponse "Not a party to the debt"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Router      /debts/{id} [delete]
func (h *DebtHandler) Delete(c *gin.Context) {
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

	if err := h.debtService.Delete(userID, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Debt deleted successfully"})
}

// Summary nets the authenticated user's pending debts per counterparty.
// @Summary     Debt summary
// @Description Net pending debts per counterparty and overall balance
// @Tags        debts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.DebtSummary "Netted debt summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /debts/summary [get]
func (h *DebtHandler) Summary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.debtService.Summary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
