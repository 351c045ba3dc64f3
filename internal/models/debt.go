package models

// DebtStatus tracks whether an obligation is still outstanding.
type DebtStatus string

const (
	DebtStatusPending DebtStatus = "pending"
	DebtStatusSettled DebtStatus = "settled"
)

// Debt is a directed obligation: FromUserID owes ToUserID. The transition
// pending -> settled is one-way.
type Debt struct {
	Base
	FromUserID       uint       `gorm:"index;not null" json:"from_user_id"`
	ToUserID         uint       `gorm:"index;not null" json:"to_user_id"`
	Amount           *float64   `json:"amount"`
	Description      string     `json:"description"`
	Date             *Date      `json:"date"`
	Status           DebtStatus `gorm:"default:pending" json:"status"`
	RelatedExpenseID *uint      `json:"related_expense_id,omitempty"`
}

// Involves reports whether the user is the debtor or the creditor.
func (d *Debt) Involves(userID uint) bool {
	return d.FromUserID == userID || d.ToUserID == userID
}
