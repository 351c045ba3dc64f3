package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// budgetService handles budget CRUD and the monthly status evaluation.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// Create creates a budget. Period defaults to monthly; month and year
// default to the current calendar month.
func (s *budgetService) Create(ownerID uint, category string, limitAmount *float64, period models.BudgetPeriod, month, year int) (*models.Budget, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if period == "" {
		period = models.BudgetPeriodMonthly
	}
	now := time.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	budget := &models.Budget{
		OwnerID:     ownerID,
		Category:    category,
		LimitAmount: limitAmount,
		Period:      period,
		Month:       month,
		Year:        year,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

func (s *budgetService) getBudget(userID, budgetID uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if budget.OwnerID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &budget, nil
}

// Update updates a budget owned by the acting user.
func (s *budgetService) Update(userID, budgetID uint, upd BudgetUpdate) (*models.Budget, error) {
	budget, err := s.getBudget(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if upd.Category != nil {
		updates["category"] = *upd.Category
	}
	if upd.LimitAmount != nil {
		updates["limit_amount"] = *upd.LimitAmount
	}
	if upd.Period != nil {
		updates["period"] = *upd.Period
	}
	if upd.Month != nil {
		if *upd.Month < 1 || *upd.Month > 12 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
		}
		updates["month"] = *upd.Month
	}
	if upd.Year != nil {
		updates["year"] = *upd.Year
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return budget, nil
}

// Delete deletes a budget owned by the acting user.
func (s *budgetService) Delete(userID, budgetID uint) error {
	budget, err := s.getBudget(userID, budgetID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// List returns a page of the user's budgets.
func (s *budgetService) List(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	return listRecords[models.Budget](s.db, ownerID, page)
}

// Status evaluates the user's monthly budgets for the current calendar
// month. Budgets with other periods or months are silently excluded.
func (s *budgetService) Status(ownerID uint) (map[string]*BudgetStatus, error) {
	now := time.Now()
	return s.statusFor(ownerID, int(now.Month()), now.Year())
}

// statusFor is the evaluation pass. It is read-only and idempotent: the same
// record set always yields the same percentages and flags. When two budgets
// share a category, the later one wins.
func (s *budgetService) statusFor(ownerID uint, month, year int) (map[string]*BudgetStatus, error) {
	var budgets []models.Budget
	if err := s.db.Where("owner_id = ?", ownerID).Order("id").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.db.Where("owner_id = ?", ownerID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Expenses in the evaluation month, summed per category.
	spentByCategory := make(map[string]float64)
	for i := range expenses {
		d := expenses[i].Date
		if d == nil || int(d.Month) != month || d.Year != year {
			continue
		}
		spentByCategory[expenses[i].Category] += amt(expenses[i].Amount)
	}

	status := make(map[string]*BudgetStatus)
	for i := range budgets {
		b := &budgets[i]
		if b.Period != models.BudgetPeriodMonthly {
			continue
		}
		if b.Month != month || b.Year != year {
			continue
		}

		spent := spentByCategory[b.Category]
		limit := amt(b.LimitAmount)

		var percentage float64
		if limit > 0 {
			percentage = spent / limit * 100
		}
		isOverBudget := spent > limit
		// Over-budget takes priority; the flags never both trip.
		isNearLimit := percentage >= 80 && !isOverBudget

		status[b.Category] = &BudgetStatus{
			BudgetID:     b.ID,
			Category:     b.Category,
			Limit:        limit,
			Spent:        spent,
			Remaining:    limit - spent,
			Percentage:   percentage,
			IsOverBudget: isOverBudget,
			IsNearLimit:  isNearLimit,
		}
	}
	return status, nil
}
