package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
)

// ledgerService handles income, expense, and investment records plus the
// derived views over them.
type ledgerService struct {
	db    *gorm.DB
	users UserServicer
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB, users UserServicer) LedgerServicer {
	return &ledgerService{db: db, users: users}
}

// amt applies the nullable-amount rule: nil sums as zero. Every aggregation
// pass goes through this one helper.
func amt(a *float64) float64 {
	if a == nil {
		return 0
	}
	return *a
}

func defaultDate(date *models.Date) *models.Date {
	if date == nil {
		today := models.Today()
		return &today
	}
	return date
}

// CreateIncome creates an income record owned by the acting user.
func (s *ledgerService) CreateIncome(ownerID uint, amount *float64, description string, date *models.Date) (*models.Income, error) {
	income := &models.Income{
		OwnerID:     ownerID,
		Amount:      amount,
		Description: description,
		Date:        defaultDate(date),
	}
	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// getIncome loads by id first and checks the owner second, so a non-owner
// gets Forbidden rather than NotFound.
func (s *ledgerService) getIncome(userID, incomeID uint) (*models.Income, error) {
	var income models.Income
	if err := s.db.First(&income, incomeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if income.OwnerID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &income, nil
}

// UpdateIncome updates an income record owned by the acting user.
func (s *ledgerService) UpdateIncome(userID, incomeID uint, upd RecordUpdate) (*models.Income, error) {
	income, err := s.getIncome(userID, incomeID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(income).Updates(recordUpdates(upd, false)).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// DeleteIncome deletes an income record owned by the acting user.
func (s *ledgerService) DeleteIncome(userID, incomeID uint) error {
	income, err := s.getIncome(userID, incomeID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(income).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetIncomes returns a page of the user's income records.
func (s *ledgerService) GetIncomes(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	return listRecords[models.Income](s.db, ownerID, page)
}

// CreateExpense creates an expense record. A blank category defaults to
// "Other". Group fan-out is handled by SplitExpense, not here.
func (s *ledgerService) CreateExpense(ownerID uint, amount *float64, description string, date *models.Date, category string) (*models.Expense, error) {
	if category == "" {
		category = models.DefaultCategory
	}
	expense := &models.Expense{
		OwnerID:     ownerID,
		Amount:      amount,
		Description: description,
		Date:        defaultDate(date),
		Category:    category,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

func (s *ledgerService) getExpense(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expense.OwnerID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &expense, nil
}

// UpdateExpense updates an expense record owned by the acting user.
func (s *ledgerService) UpdateExpense(userID, expenseID uint, upd RecordUpdate) (*models.Expense, error) {
	expense, err := s.getExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(expense).Updates(recordUpdates(upd, true)).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense deletes an expense record owned by the acting user.
func (s *ledgerService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.getExpense(userID, expenseID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetExpenses returns a page of the user's expense records.
func (s *ledgerService) GetExpenses(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	return listRecords[models.Expense](s.db, ownerID, page)
}

// CreateInvestment creates an investment record owned by the acting user.
func (s *ledgerService) CreateInvestment(ownerID uint, amount *float64, description string, date *models.Date) (*models.Investment, error) {
	investment := &models.Investment{
		OwnerID:     ownerID,
		Amount:      amount,
		Description: description,
		Date:        defaultDate(date),
	}
	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

func (s *ledgerService) getInvestment(userID, investmentID uint) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.First(&investment, investmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if investment.OwnerID != userID {
		return nil, apperrors.ErrForbidden
	}
	return &investment, nil
}

// UpdateInvestment updates an investment record owned by the acting user.
func (s *ledgerService) UpdateInvestment(userID, investmentID uint, upd RecordUpdate) (*models.Investment, error) {
	investment, err := s.getInvestment(userID, investmentID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(investment).Updates(recordUpdates(upd, false)).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// DeleteInvestment deletes an investment record owned by the acting user.
func (s *ledgerService) DeleteInvestment(userID, investmentID uint) error {
	investment, err := s.getInvestment(userID, investmentID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetInvestments returns a page of the user's investment records.
func (s *ledgerService) GetInvestments(ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	return listRecords[models.Investment](s.db, ownerID, page)
}

// SplitExpense fans one expense out across a group: the owner plus each
// member gets an equal share, written atomically. Partial fan-out is never
// observable.
func (s *ledgerService) SplitExpense(owner *models.User, amount *float64, description string, date *models.Date) (*SplitResult, error) {
	members, err := s.users.Members(owner.ID)
	if err != nil {
		return nil, err
	}

	parties := 1 + len(members)
	total := amt(amount)
	share := total
	if parties > 0 {
		share = total / float64(parties)
	}

	date = defaultDate(date)
	splitDesc := description + " (split)"

	err = s.db.Transaction(func(tx *gorm.DB) error {
		ownerExpense := &models.Expense{
			OwnerID:     owner.ID,
			Amount:      &share,
			Description: splitDesc,
			Date:        date,
			Category:    models.DefaultCategory,
		}
		if err := tx.Create(ownerExpense).Error; err != nil {
			return err
		}
		for i := range members {
			memberExpense := &models.Expense{
				OwnerID:     members[i].ID,
				Amount:      &share,
				Description: splitDesc,
				Date:        date,
				Category:    models.DefaultCategory,
			}
			if err := tx.Create(memberExpense).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrSplitFailed, err)
	}

	return &SplitResult{Status: "ok", SplitPerPerson: share, Parties: parties}, nil
}

// recordUpdates builds the GORM update map from a RecordUpdate. Category is
// ignored unless the target entity carries one.
func recordUpdates(upd RecordUpdate, withCategory bool) map[string]interface{} {
	updates := make(map[string]interface{})
	if upd.Amount != nil {
		updates["amount"] = *upd.Amount
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Date != nil {
		updates["date"] = *upd.Date
	}
	if withCategory && upd.Category != nil {
		updates["category"] = *upd.Category
	}
	return updates
}

func listRecords[T any](db *gorm.DB, ownerID uint, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	page.Defaults()

	var model T
	base := db.Model(&model).Where("owner_id = ?", ownerID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []T
	if err := base.Scopes(pagination.Paginate(page)).Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(records, page.Page, page.PageSize, totalItems)
	return &result, nil
}
