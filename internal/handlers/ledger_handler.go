package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/services"
)

// LedgerHandler handles income, expense, and investment records plus the
// derived financial views.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RecordRequest represents the payload for creating an income or investment.
type RecordRequest struct {
	Amount      *float64     `json:"amount"`
	Description string       `json:"description" binding:"max=500"`
	Date        *models.Date `json:"date"`
}

// ExpenseRequest represents the payload for creating an expense.
type ExpenseRequest struct {
	Amount      *float64     `json:"amount"`
	Description string       `json:"description" binding:"max=500"`
	Date        *models.Date `json:"date"`
	Category    string       `json:"category" binding:"max=100"`
}

// RecordUpdateRequest represents the payload for updating a ledger record.
// Omitted fields are left unchanged.
type RecordUpdateRequest struct {
	Amount      *float64     `json:"amount"`
	Description *string      `json:"description" binding:"omitempty,max=500"`
	Date        *models.Date `json:"date"`
	Category    *string      `json:"category" binding:"omitempty,max=100"`
}

func (r *RecordUpdateRequest) update() services.RecordUpdate {
	return services.RecordUpdate{
		Amount:      r.Amount,
		Description: r.Description,
		Date:        r.Date,
		Category:    r.Category,
	}
}

// CreateIncome records an income entry.
// @Summary     Create income
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordRequest true "Income data"
// @Success     201 {object} models.Income "Created income"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /incomes [post]
func (h *LedgerHandler) CreateIncome(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.ledgerService.CreateIncome(userID, req.Amount, req.Description, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, income)
}

// ListIncomes returns the authenticated user's income records.
// @Summary     List incomes
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Income] "Paginated incomes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /incomes [get]
func (h *LedgerHandler) ListIncomes(c *gin.Context) {
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

	resp, err := h.ledgerService.GetIncomes(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateIncome updates an income record owned by the authenticated user.
// @Summary     Update income
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income ID"
// @Param       request body RecordUpdateRequest true "Fields to update"
// @Success     200 {object} models.Income "Updated income"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Router      /incomes/{id} [put]
func (h *LedgerHandler) UpdateIncome(c *gin.Context) {
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

	var req RecordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.ledgerService.UpdateIncome(userID, id, req.update())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, income)
}

// DeleteIncome deletes an income record owned by the authenticated user.
// @Summary     Delete income
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Income ID"
// @Success     200 {object} MessageResponse "Income deleted"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Income not found"
// @Router      /incomes/{id} [delete]
func (h *LedgerHandler) DeleteIncome(c *gin.Context) {
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

	if err := h.ledgerService.DeleteIncome(userID, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
}

// CreateExpense records an expense. For group accounts the amount is split
// evenly across the owner and all members instead of creating a single
// record.
// @Summary     Create expense
// @Description Record an expense; group accounts split it across all members
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense data"
// @Success     201 {object} models.Expense "Created expense (individual accounts)"
// @Success     200 {object} services.SplitResult "Split outcome (group accounts)"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Split failed"
// @Router      /expenses [post]
func (h *LedgerHandler) CreateExpense(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if user.IsGroup() {
		result, err := h.ledgerService.SplitExpense(user, req.Amount, req.Description, req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	expense, err := h.ledgerService.CreateExpense(user.ID, req.Amount, req.Description, req.Date, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// ListExpenses returns the authenticated user's expense records.
// @Summary     List expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [get]
func (h *LedgerHandler) ListExpenses(c *gin.Context) {
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

	resp, err := h.ledgerService.GetExpenses(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateExpense updates an expense record owned by the authenticated user.
// @Summary     Update expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body RecordUpdateRequest true "Fields to update"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *LedgerHandler) UpdateExpense(c *gin.Context) {
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

	var req RecordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.ledgerService.UpdateExpense(userID, id, req.update())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

// DeleteExpense deletes an expense record owned by the authenticated user.
// @Summary     Delete expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *LedgerHandler) DeleteExpense(c *gin.Context) {
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

	if err := h.ledgerService.DeleteExpense(userID, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// CreateInvestment records an investment entry.
// @Summary     Create investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordRequest true "Investment data"
// @Success     201 {object} models.Investment "Created investment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments [post]
func (h *LedgerHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.ledgerService.CreateInvestment(userID, req.Amount, req.Description, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, investment)
}

// ListInvestments returns the authenticated user's investment records.
// @Summary     List investments
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Investment] "Paginated investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments [get]
func (h *LedgerHandler) ListInvestments(c *gin.Context) {
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

	resp, err := h.ledgerService.GetInvestments(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateInvestment updates an investment record owned by the authenticated
// user.
// @Summary     Update investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Param       request body RecordUpdateRequest true "Fields to update"
// @Success     200 {object} models.Investment "Updated investment"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [put]
func (h *LedgerHandler) UpdateInvestment(c *gin.Context) {
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

	var req RecordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.ledgerService.UpdateInvestment(userID, id, req.update())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, investment)
}

// DeleteInvestment deletes an investment record owned by the authenticated
// user.
// @Summary     Delete investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Success     200 {object} MessageResponse "Investment deleted"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [delete]
func (h *LedgerHandler) DeleteInvestment(c *gin.Context) {
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

	if err := h.ledgerService.DeleteInvestment(userID, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Investment deleted successfully"})
}

// Summary returns aggregated totals and all records for the authenticated
// user.
// @Summary     Financial summary
// @Description Aggregated income, expense, and investment totals with records
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SummaryReport "Financial summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/summary [get]
func (h *LedgerHandler) Summary(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.ledgerService.Summary(user)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// CategoryBreakdown returns expense totals grouped by category.
// @Summary     Category breakdown
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]float64 "Expense totals by category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/category-breakdown [get]
func (h *LedgerHandler) CategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.ledgerService.CategoryBreakdown(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// DailySpending returns expense totals grouped by day.
// @Summary     Daily spending
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]float64 "Expense totals by day"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/daily-spending [get]
func (h *LedgerHandler) DailySpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	daily, err := h.ledgerService.DailySpending(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, daily)
}

// HealthScore returns the composite financial health score.
// @Summary     Financial health score
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.HealthReport "Health score and component rates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/health-score [get]
func (h *LedgerHandler) HealthScore(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.ledgerService.HealthScore(user)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportCSV streams all ledger records of the authenticated user as CSV.
// @Summary     Export ledger as CSV
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {string} string "CSV export"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/export/csv [get]
func (h *LedgerHandler) ExportCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.ledgerService.ExportCSV(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="finance_export.csv"`)
	c.Status(http.StatusOK)
	for row := range rows {
		c.Writer.WriteString(row)
		c.Writer.WriteString("\n")
	}
}
