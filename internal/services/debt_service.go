package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// debtService handles the pairwise debt ledger.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// Create records a pending debt from the acting user toward the creditor.
func (s *debtService) Create(fromUserID, toUserID uint, amount *float64, description string, date *models.Date, relatedExpenseID *uint) (*models.Debt, error) {
	if toUserID == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_user_id is required")
	}

	debt := &models.Debt{
		FromUserID:       fromUserID,
		ToUserID:         toUserID,
		Amount:           amount,
		Description:      description,
		Date:             defaultDate(date),
		Status:           models.DebtStatusPending,
		RelatedExpenseID: relatedExpenseID,
	}
	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debt, nil
}

// ListPending returns the pending debts where the user is debtor or creditor.
func (s *debtService) ListPending(userID uint) ([]models.Debt, error) {
	var debts []models.Debt
	err := s.db.
		Where("status = ? AND (from_user_id = ? OR to_user_id = ?)", models.DebtStatusPending, userID, userID).
		Order("id").
		Find(&debts).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debts, nil
}

func (s *debtService) getDebt(userID, debtID uint) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.First(&debt, debtID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !debt.Involves(userID) {
		return nil, apperrors.ErrForbidden
	}
	return &debt, nil
}

// Settle marks a debt settled. Only the debtor or the creditor may settle,
// and the transition is one-way: there is no unsettle.
func (s *debtService) Settle(userID, debtID uint) (*models.Debt, error) {
	debt, err := s.getDebt(userID, debtID)
	if err != nil {
		return nil, err
	}

	debt.Status = models.DebtStatusSettled
	if err := s.db.Model(debt).Update("status", models.DebtStatusSettled).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debt, nil
}

// Delete removes a debt. Either party may delete it.
func (s *debtService) Delete(userID, debtID uint) error {
	debt, err := s.getDebt(userID, debtID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(debt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Summary nets the user's pending debts per counterparty. Settled debts
// never contribute.
func (s *debtService) Summary(userID uint) (*DebtSummary, error) {
	debts, err := s.ListPending(userID)
	if err != nil {
		return nil, err
	}

	summary := &DebtSummary{
		OwedByPerson: make(map[uint]float64),
		OwedToPerson: make(map[uint]float64),
	}

	for i := range debts {
		d := &debts[i]
		amount := amt(d.Amount)
		switch {
		case d.FromUserID == userID:
			summary.TotalOwed += amount
			summary.OwedByPerson[d.ToUserID] += amount
		case d.ToUserID == userID:
			summary.TotalOwedToYou += amount
			summary.OwedToPerson[d.FromUserID] += amount
		}
	}

	summary.NetBalance = summary.TotalOwedToYou - summary.TotalOwed
	return summary, nil
}
